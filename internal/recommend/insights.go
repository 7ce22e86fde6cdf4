package recommend

import (
	"math"
	"sort"
	"strings"
	"unicode/utf8"

	"github.com/jonathan/skill-matcher/internal/types"
)

// Profile level boundaries on the number of categorized skills.
const (
	seniorProfileSkills       = 15
	intermediateProfileSkills = 8
	insightTopCategories      = 3
)

// Insights gives a qualitative reading of one document's skills. Skills filed
// under "other" are ignored.
func (g *Generator) Insights(result *types.ExtractionResult, text string) *types.SkillInsights {
	counts := make(map[types.Category]int)
	var present []types.Category
	total := 0
	if result != nil {
		for _, entry := range result.Categories {
			if entry.Category == types.CategoryOther || len(entry.Skills) == 0 {
				continue
			}
			counts[entry.Category] += len(entry.Skills)
			present = append(present, entry.Category)
			total += len(entry.Skills)
		}
	}

	insights := &types.SkillInsights{
		Strengths:     []string{},
		Suggestions:   []string{},
		TopCategories: []types.Category{},
	}

	if counts[types.CategoryProgrammingLanguages] >= 3 {
		insights.Strengths = append(insights.Strengths, "Strong programming background")
	}
	if counts[types.CategoryDataScience] >= 2 {
		insights.Strengths = append(insights.Strengths, "Data science and analytics capabilities")
	}
	if counts[types.CategoryCloudPlatforms] >= 2 {
		insights.Strengths = append(insights.Strengths, "Cloud and DevOps experience")
	}

	if counts[types.CategorySoftSkills] < 2 {
		insights.Suggestions = append(insights.Suggestions, "Consider highlighting more soft skills")
	}
	if counts[types.CategoryFrameworksLibraries] == 0 && counts[types.CategoryProgrammingLanguages] > 0 {
		insights.Suggestions = append(insights.Suggestions, "Consider learning web development frameworks")
	}

	switch {
	case total >= seniorProfileSkills:
		insights.ProfileLevel = "senior"
	case total >= intermediateProfileSkills:
		insights.ProfileLevel = "intermediate"
	default:
		insights.ProfileLevel = "junior"
	}

	sort.SliceStable(present, func(i, k int) bool {
		if counts[present[i]] != counts[present[k]] {
			return counts[present[i]] > counts[present[k]]
		}
		return g.rank(present[i]) < g.rank(present[k])
	})
	if len(present) > insightTopCategories {
		present = present[:insightTopCategories]
	}
	insights.TopCategories = append(insights.TopCategories, present...)

	words := len(strings.Fields(text))
	skills := 0
	if result != nil {
		skills = len(result.Skills)
	}
	insights.Text = types.TextStats{
		WordCount:    words,
		CharCount:    utf8.RuneCountInString(text),
		SkillDensity: math.Round(float64(skills)/float64(max(words, 1))*100*100) / 100,
	}
	return insights
}
