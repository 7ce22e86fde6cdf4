package main

import (
	"github.com/spf13/cobra"

	"github.com/jonathan/skill-matcher/internal/schemas"
	"github.com/jonathan/skill-matcher/internal/types"
)

// extractOutput is an extraction result with optional profile insights.
type extractOutput struct {
	*types.ExtractionResult
	Insights *types.SkillInsights `json:"insights,omitempty"`
}

func newExtractCmd(a *app) *cobra.Command {
	var (
		inputFile  string
		outputFile string
		insights   bool
	)

	cmd := &cobra.Command{
		Use:   "extract",
		Short: "Extract skills, categories and experience from a document",
		Long:  "Extract skills from a resume or job description (.txt, .md or .html) into ExtractionResult JSON.",
		RunE: func(cmd *cobra.Command, _ []string) error {
			doc, err := loadDocument(inputFile)
			if err != nil {
				return err
			}

			ctx := cmd.Context()
			svc := a.service()
			result, err := svc.ExtractText(ctx, doc.Text)
			if err != nil {
				return err
			}
			if err := validateOutput(schemas.ExtractionResult, result); err != nil {
				return err
			}

			out := extractOutput{ExtractionResult: result}
			if insights {
				if out.Insights, err = svc.Insights(ctx, result, doc.Text); err != nil {
					return err
				}
			}

			if p := a.printer(cmd); p != nil {
				p.PrintExtraction("EXTRACTED SKILLS: "+doc.Name, result)
			}
			return writeJSON(cmd.OutOrStdout(), outputFile, out)
		},
	}

	cmd.Flags().StringVarP(&inputFile, "in", "i", "", "Path to the document")
	cmd.Flags().StringVarP(&outputFile, "out", "o", "", "Path to output JSON file (default stdout)")
	cmd.Flags().BoolVar(&insights, "insights", false, "Include strengths, suggestions and text statistics")
	_ = cmd.MarkFlagRequired("in")
	return cmd
}
