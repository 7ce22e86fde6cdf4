package main

import (
	"github.com/spf13/cobra"

	"github.com/jonathan/skill-matcher/internal/schemas"
)

func newLearningPathCmd(a *app) *cobra.Command {
	var (
		current    []string
		target     []string
		outputFile string
	)

	cmd := &cobra.Command{
		Use:     "learning-path",
		Short:   "Stage the target skills you do not have yet",
		Long:    "Build a learning path with resources, timelines and prerequisites for every target skill missing from the current set.",
		Example: "  skillmatch learning-path --current python,sql --target python,docker,kubernetes,aws",
		RunE: func(cmd *cobra.Command, _ []string) error {
			path, err := a.service().LearningPath(cmd.Context(), current, target)
			if err != nil {
				return err
			}
			if err := validateOutput(schemas.LearningPath, path); err != nil {
				return err
			}
			if p := a.printer(cmd); p != nil {
				p.PrintLearningPath(path)
			}
			return writeJSON(cmd.OutOrStdout(), outputFile, path)
		},
	}

	cmd.Flags().StringSliceVar(&current, "current", nil, "Skills already held (comma-separated)")
	cmd.Flags().StringSliceVar(&target, "target", nil, "Skills wanted (comma-separated)")
	cmd.Flags().StringVarP(&outputFile, "out", "o", "", "Path to output JSON file (default stdout)")
	_ = cmd.MarkFlagRequired("target")
	return cmd
}
