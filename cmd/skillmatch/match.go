package main

import (
	"errors"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/jonathan/skill-matcher/internal/db"
	"github.com/jonathan/skill-matcher/internal/logging"
	"github.com/jonathan/skill-matcher/internal/schemas"
)

func newMatchCmd(a *app) *cobra.Command {
	var (
		resumeFile string
		jobFile    string
		outputFile string
		noHistory  bool
	)

	cmd := &cobra.Command{
		Use:   "match",
		Short: "Score a resume against a job description",
		Long: "Score a resume against a job description into MatchResult JSON. When a database " +
			"is configured the analysis is also recorded in the history.",
		RunE: func(cmd *cobra.Command, _ []string) error {
			resume, err := loadDocument(resumeFile)
			if err != nil {
				return err
			}
			job, err := loadDocument(jobFile)
			if err != nil {
				return err
			}

			ctx := cmd.Context()
			start := time.Now()
			result, err := a.service().Match(ctx, resume.Text, job.Text)
			if err != nil {
				return err
			}
			if err := validateOutput(schemas.MatchResult, result); err != nil {
				return err
			}

			if !noHistory {
				store, err := a.openStore(ctx)
				switch {
				case errors.Is(err, errNoDatabase):
					a.logger.Debug("history disabled, analysis not recorded")
				case err != nil:
					return err
				default:
					defer store.Close()
					record := db.NewAnalysis(resume.Text, job.Text, resumeFile, jobFile, result, time.Since(start))
					if err := store.SaveAnalysis(ctx, record); err != nil {
						return err
					}
					a.logger.Info("analysis recorded",
						zap.String(logging.FieldAnalysis, record.ID.String()),
						zap.Float64(logging.FieldScore, result.OverallScore),
					)
				}
			}

			if p := a.printer(cmd); p != nil {
				p.PrintMatch(result)
				p.PrintRecommendations(result.Recommendations)
			}
			return writeJSON(cmd.OutOrStdout(), outputFile, result)
		},
	}

	cmd.Flags().StringVarP(&resumeFile, "resume", "r", "", "Path to the resume")
	cmd.Flags().StringVarP(&jobFile, "job", "J", "", "Path to the job description")
	cmd.Flags().StringVarP(&outputFile, "out", "o", "", "Path to output JSON file (default stdout)")
	cmd.Flags().BoolVar(&noHistory, "no-history", false, "Do not record the analysis in the database")
	_ = cmd.MarkFlagRequired("resume")
	_ = cmd.MarkFlagRequired("job")
	return cmd
}
