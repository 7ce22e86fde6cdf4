package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/jonathan/skill-matcher/internal/analysis"
	"github.com/jonathan/skill-matcher/internal/db"
	"github.com/jonathan/skill-matcher/internal/extraction"
	"github.com/jonathan/skill-matcher/internal/ingestion"
	"github.com/jonathan/skill-matcher/internal/matching"
	"github.com/jonathan/skill-matcher/internal/observability"
	"github.com/jonathan/skill-matcher/internal/recommend"
	"github.com/jonathan/skill-matcher/internal/schemas"
	"github.com/jonathan/skill-matcher/internal/taxonomy"
)

var errNoDatabase = errors.New("no database configured (use --db or SKILLMATCH_DATABASE_URL)")

// service wires the analysis core from the loaded configuration.
func (a *app) service() *analysis.Service {
	tax := taxonomy.Default()
	return analysis.NewService(
		extraction.New(tax, a.cfg.ExtractionOptions()),
		matching.New(tax, a.cfg.MatchWeights()),
		recommend.New(tax, recommend.DefaultOptions()),
		a.logger,
		analysis.WithMaxTextBytes(a.cfg.Server.MaxTextBytes),
	)
}

// openStore opens the history database, or returns errNoDatabase.
func (a *app) openStore(ctx context.Context) (db.Store, error) {
	if a.cfg.DatabaseURL == "" {
		return nil, errNoDatabase
	}
	store, err := db.Open(ctx, a.cfg.DatabaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	return store, nil
}

// printer returns a stderr printer in verbose mode and nil otherwise.
func (a *app) printer(cmd *cobra.Command) *observability.Printer {
	if !a.verbose {
		return nil
	}
	return observability.NewPrinter(cmd.ErrOrStderr())
}

// loadDocument reads a resume or job description, converting HTML to text.
func loadDocument(path string) (*ingestion.Document, error) {
	doc, err := ingestion.LoadDocument(path)
	if err != nil {
		return nil, fmt.Errorf("failed to load %s: %w", path, err)
	}
	return doc, nil
}

// validateOutput checks v against the named schema before it is written.
func validateOutput(schema string, v any) error {
	if err := schemas.ValidateDocument(schema, v); err != nil {
		return fmt.Errorf("output failed %s schema validation: %w", schema, err)
	}
	return nil
}

// writeJSON writes v as indented JSON to outPath, or to w when outPath is empty.
func writeJSON(w io.Writer, outPath string, v any) error {
	jsonBytes, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal JSON: %w", err)
	}
	jsonBytes = append(jsonBytes, '\n')

	if outPath == "" {
		_, err = w.Write(jsonBytes)
		return err
	}
	if err := os.WriteFile(outPath, jsonBytes, 0644); err != nil {
		return fmt.Errorf("failed to write output file: %w", err)
	}
	return nil
}
