package main

import (
	"github.com/spf13/cobra"

	"github.com/jonathan/skill-matcher/internal/schemas"
	"github.com/jonathan/skill-matcher/internal/types"
)

// recommendOutput gathers the advice derived from one match.
type recommendOutput struct {
	OverallScore    float64                `json:"overall_score"`
	Recommendations []types.Recommendation `json:"recommendations"`
	SkillGaps       []types.SkillGap       `json:"skill_gaps"`
	LearningPath    *types.LearningPath    `json:"learning_path"`
	Insights        *types.SkillInsights   `json:"resume_insights"`
}

func newRecommendCmd(a *app) *cobra.Command {
	var (
		resumeFile string
		jobFile    string
		outputFile string
	)

	cmd := &cobra.Command{
		Use:   "recommend",
		Short: "Suggest skills to learn for a job",
		Long:  "Match a resume against a job and output recommendations, skill gaps, a staged learning path and resume insights.",
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
			svc := a.service()
			resumeResult, err := svc.ExtractText(ctx, resume.Text)
			if err != nil {
				return err
			}
			jobResult, err := svc.ExtractText(ctx, job.Text)
			if err != nil {
				return err
			}
			match, err := svc.MatchExtractions(ctx, resumeResult, jobResult)
			if err != nil {
				return err
			}

			target := append(append([]string{}, match.MatchedSkills...), match.MissingSkills...)
			path, err := svc.LearningPath(ctx, match.MatchedSkills, target)
			if err != nil {
				return err
			}
			if err := validateOutput(schemas.LearningPath, path); err != nil {
				return err
			}
			insights, err := svc.Insights(ctx, resumeResult, resume.Text)
			if err != nil {
				return err
			}

			if p := a.printer(cmd); p != nil {
				p.PrintRecommendations(match.Recommendations)
				p.PrintLearningPath(path)
			}
			return writeJSON(cmd.OutOrStdout(), outputFile, recommendOutput{
				OverallScore:    match.OverallScore,
				Recommendations: match.Recommendations,
				SkillGaps:       match.SkillGaps,
				LearningPath:    path,
				Insights:        insights,
			})
		},
	}

	cmd.Flags().StringVarP(&resumeFile, "resume", "r", "", "Path to the resume")
	cmd.Flags().StringVarP(&jobFile, "job", "J", "", "Path to the job description")
	cmd.Flags().StringVarP(&outputFile, "out", "o", "", "Path to output JSON file (default stdout)")
	_ = cmd.MarkFlagRequired("resume")
	_ = cmd.MarkFlagRequired("job")
	return cmd
}
