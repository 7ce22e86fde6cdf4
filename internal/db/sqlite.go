package db

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"github.com/jonathan/skill-matcher/internal/types"
)

// timeLayout is fixed width so that stored timestamps sort lexically
const timeLayout = "2006-01-02T15:04:05.000000000Z"

// SQLite is a single-file analysis store
type SQLite struct {
	db *sql.DB
}

// OpenSQLite opens (or creates) the database at path and initializes the schema
func OpenSQLite(ctx context.Context, path string) (*SQLite, error) {
	if path == "" {
		return nil, errors.New("sqlite: empty database path")
	}
	if path != ":memory:" {
		if err := os.MkdirAll(filepath.Dir(path), 0750); err != nil {
			return nil, fmt.Errorf("sqlite: mkdir %s: %w", filepath.Dir(path), err)
		}
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("sqlite: open db: %w", err)
	}
	db.SetMaxOpenConns(1) // SQLite: single writer

	s := &SQLite{db: db}
	if err := s.initSchema(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("sqlite: init schema: %w", err)
	}
	return s, nil
}

func (s *SQLite) initSchema(ctx context.Context) error {
	_, err := s.db.ExecContext(ctx, `CREATE TABLE IF NOT EXISTS analyses (
		id                 TEXT PRIMARY KEY,
		resume_preview     TEXT NOT NULL,
		job_preview        TEXT NOT NULL,
		resume_file        TEXT NOT NULL DEFAULT '',
		job_file           TEXT NOT NULL DEFAULT '',
		overall_score      REAL NOT NULL,
		result             TEXT,
		processing_time_ms INTEGER NOT NULL DEFAULT 0,
		created_at         TEXT NOT NULL
	)`)
	if err != nil {
		return err
	}
	_, err = s.db.ExecContext(ctx, `CREATE INDEX IF NOT EXISTS analyses_created_at_idx ON analyses (created_at DESC)`)
	return err
}

// Close closes the database
func (s *SQLite) Close() {
	_ = s.db.Close()
}

// SaveAnalysis stores an analysis record
func (s *SQLite) SaveAnalysis(ctx context.Context, a *Analysis) error {
	resultJSON, err := json.Marshal(a.Result)
	if err != nil {
		return fmt.Errorf("failed to marshal match result: %w", err)
	}

	_, err = s.db.ExecContext(ctx,
		`INSERT INTO analyses (id, resume_preview, job_preview, resume_file, job_file,
		                       overall_score, result, processing_time_ms, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		a.ID.String(), a.ResumePreview, a.JobPreview, a.ResumeFile, a.JobFile,
		a.OverallScore, string(resultJSON), a.ProcessingTimeMS, a.CreatedAt.UTC().Format(timeLayout),
	)
	if err != nil {
		return fmt.Errorf("failed to save analysis: %w", err)
	}
	return nil
}

// GetAnalysis retrieves an analysis by ID, or nil if it does not exist
func (s *SQLite) GetAnalysis(ctx context.Context, id uuid.UUID) (*Analysis, error) {
	var (
		a          Analysis
		rawID      string
		resultJSON sql.NullString
		createdAt  string
	)
	err := s.db.QueryRowContext(ctx,
		`SELECT id, resume_preview, job_preview, resume_file, job_file,
		        overall_score, result, processing_time_ms, created_at
		 FROM analyses WHERE id = ?`,
		id.String(),
	).Scan(&rawID, &a.ResumePreview, &a.JobPreview, &a.ResumeFile, &a.JobFile,
		&a.OverallScore, &resultJSON, &a.ProcessingTimeMS, &createdAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get analysis: %w", err)
	}

	if err := decodeRow(&a, rawID, createdAt); err != nil {
		return nil, err
	}
	if resultJSON.Valid && resultJSON.String != "" && resultJSON.String != "null" {
		var result types.MatchResult
		if err := json.Unmarshal([]byte(resultJSON.String), &result); err != nil {
			return nil, fmt.Errorf("failed to unmarshal match result: %w", err)
		}
		a.Result = &result
	}
	return &a, nil
}

// ListAnalyses returns analyses newest first, without their full results
func (s *SQLite) ListAnalyses(ctx context.Context, limit, offset int) ([]Analysis, error) {
	limit, offset = normalizePage(limit, offset)

	rows, err := s.db.QueryContext(ctx,
		`SELECT id, resume_preview, job_preview, resume_file, job_file,
		        overall_score, processing_time_ms, created_at
		 FROM analyses ORDER BY created_at DESC, id LIMIT ? OFFSET ?`,
		limit, offset,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list analyses: %w", err)
	}
	defer func() { _ = rows.Close() }()

	analyses := []Analysis{}
	for rows.Next() {
		var (
			a         Analysis
			rawID     string
			createdAt string
		)
		if err := rows.Scan(&rawID, &a.ResumePreview, &a.JobPreview, &a.ResumeFile, &a.JobFile,
			&a.OverallScore, &a.ProcessingTimeMS, &createdAt); err != nil {
			return nil, fmt.Errorf("failed to scan analysis: %w", err)
		}
		if err := decodeRow(&a, rawID, createdAt); err != nil {
			return nil, err
		}
		analyses = append(analyses, a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate analyses: %w", err)
	}
	return analyses, nil
}

// DeleteAnalysis removes an analysis, returning ErrNotFound if it does not exist
func (s *SQLite) DeleteAnalysis(ctx context.Context, id uuid.UUID) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM analyses WHERE id = ?`, id.String())
	if err != nil {
		return fmt.Errorf("failed to delete analysis: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to delete analysis: %w", err)
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

// Statistics returns the count, mean and best overall score
func (s *SQLite) Statistics(ctx context.Context) (*Statistics, error) {
	var st Statistics
	err := s.db.QueryRowContext(ctx,
		`SELECT COUNT(*), COALESCE(AVG(overall_score), 0), COALESCE(MAX(overall_score), 0) FROM analyses`,
	).Scan(&st.Count, &st.AverageScore, &st.BestScore)
	if err != nil {
		return nil, fmt.Errorf("failed to compute statistics: %w", err)
	}
	st.AverageScore = round1(st.AverageScore)
	return &st, nil
}

func decodeRow(a *Analysis, rawID, createdAt string) error {
	id, err := uuid.Parse(rawID)
	if err != nil {
		return fmt.Errorf("invalid analysis id %q: %w", rawID, err)
	}
	ts, err := time.Parse(timeLayout, createdAt)
	if err != nil {
		return fmt.Errorf("invalid created_at %q: %w", createdAt, err)
	}
	a.ID = id
	a.CreatedAt = ts
	return nil
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}
