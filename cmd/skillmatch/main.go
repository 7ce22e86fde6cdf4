// Package main provides the skillmatch command line: skill extraction, resume
// to job matching, recommendations, analysis history and the HTTP API server.
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/jonathan/skill-matcher/internal/config"
	"github.com/jonathan/skill-matcher/internal/logging"
)

// app carries the state shared by every subcommand once flags are parsed.
type app struct {
	cfgFile     string
	debug       bool
	jsonLogs    bool
	verbose     bool
	databaseURL string

	cfg    *config.Config
	logger *zap.Logger
}

func newRootCmd() *cobra.Command {
	a := &app{}

	rootCmd := &cobra.Command{
		Use:   "skillmatch",
		Short: "Rule-based skill extraction and resume to job matching",
		Long: "skillmatch extracts technical and soft skills from resumes and job descriptions, " +
			"scores how well a resume fits a job, and suggests what to learn next.",
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.init(cmd)
		},
		PersistentPostRun: func(_ *cobra.Command, _ []string) {
			if a.logger != nil {
				_ = a.logger.Sync()
			}
		},
	}

	flags := rootCmd.PersistentFlags()
	flags.StringVar(&a.cfgFile, "config", "", "config file (default is skillmatch.yaml in current directory)")
	flags.BoolVarP(&a.debug, "debug", "d", false, "verbose/debug logging")
	flags.BoolVarP(&a.jsonLogs, "json", "j", false, "json format for logging")
	flags.BoolVarP(&a.verbose, "verbose", "v", false, "print human-readable summaries to stderr")
	flags.StringVar(&a.databaseURL, "db", "", "analysis history database: postgres:// URL or SQLite path (overrides SKILLMATCH_DATABASE_URL)")

	rootCmd.AddCommand(
		newExtractCmd(a),
		newMatchCmd(a),
		newRecommendCmd(a),
		newLearningPathCmd(a),
		newRankJobsCmd(a),
		newHistoryCmd(a),
		newServeCmd(a),
		newValidateCmd(a),
	)
	return rootCmd
}

// init loads and validates configuration, applies flag overrides and builds the logger.
func (a *app) init(cmd *cobra.Command) error {
	cfg, err := config.Load(a.cfgFile)
	if err != nil {
		return err
	}

	flags := cmd.Flags()
	if flags.Changed("debug") {
		cfg.Log.Debug = a.debug
	}
	if flags.Changed("json") {
		cfg.Log.JSON = a.jsonLogs
	}
	if flags.Changed("db") {
		cfg.DatabaseURL = a.databaseURL
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	logger, err := logging.New(cfg.Log.JSON, cfg.Log.Debug)
	if err != nil {
		return fmt.Errorf("creating a logger: %w", err)
	}

	a.cfg = cfg
	a.logger = logger
	return nil
}

func main() {
	// Load .env file if it exists
	_ = godotenv.Load()

	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
