package main

import (
	"github.com/spf13/cobra"

	"github.com/jonathan/skill-matcher/internal/analysis"
	"github.com/jonathan/skill-matcher/internal/schemas"
)

func newRankJobsCmd(a *app) *cobra.Command {
	var (
		resumeFile string
		outputFile string
		workers    int
	)

	cmd := &cobra.Command{
		Use:   "rank-jobs --resume FILE JOB_FILE...",
		Short: "Rank job descriptions by how well a resume fits them",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			resume, err := loadDocument(resumeFile)
			if err != nil {
				return err
			}

			jobs := make([]analysis.Document, 0, len(args))
			for _, path := range args {
				doc, err := loadDocument(path)
				if err != nil {
					return err
				}
				jobs = append(jobs, analysis.Document{ID: path, Text: doc.Text})
			}

			if !cmd.Flags().Changed("workers") {
				workers = a.cfg.Workers
			}
			ranked, err := a.service().RankJobs(cmd.Context(), resume.Text, jobs, workers)
			if err != nil {
				return err
			}
			for _, job := range ranked {
				if err := validateOutput(schemas.MatchResult, job.Result); err != nil {
					return err
				}
			}

			if p := a.printer(cmd); p != nil {
				p.PrintRankedJobs(ranked)
			}
			return writeJSON(cmd.OutOrStdout(), outputFile, ranked)
		},
	}

	cmd.Flags().StringVarP(&resumeFile, "resume", "r", "", "Path to the resume")
	cmd.Flags().StringVarP(&outputFile, "out", "o", "", "Path to output JSON file (default stdout)")
	cmd.Flags().IntVarP(&workers, "workers", "w", 0, "Concurrent extractions (default from config, 0 uses all CPUs)")
	_ = cmd.MarkFlagRequired("resume")
	return cmd
}
