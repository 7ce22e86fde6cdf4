// Package observability provides formatted output utilities for verbose CLI mode.
package observability

import (
	"fmt"
	"io"
	"strings"
	"unicode/utf8"

	"github.com/jonathan/skill-matcher/internal/analysis"
	"github.com/jonathan/skill-matcher/internal/db"
	"github.com/jonathan/skill-matcher/internal/types"
)

const (
	// boxWidth is the default width for formatted output boxes
	boxWidth = 60
	// maxItemsToShow is the default number of items to display in lists
	maxItemsToShow = 5
)

// Printer handles formatted output for verbose mode
type Printer struct {
	out io.Writer
}

// NewPrinter creates a new Printer that writes to the given writer
func NewPrinter(out io.Writer) *Printer {
	return &Printer{out: out}
}

// printBox prints a formatted box with a title and content
//
//nolint:errcheck // writing to stderr; errors are not recoverable
func (p *Printer) printBox(title string, content string) {
	inner := boxWidth - 4
	border := strings.Repeat("─", boxWidth-2)
	fmt.Fprintf(p.out, "┌%s┐\n", border)
	fmt.Fprintf(p.out, "│ %s │\n", pad(title, inner))
	fmt.Fprintf(p.out, "├%s┤\n", border)
	for _, line := range strings.Split(content, "\n") {
		fmt.Fprintf(p.out, "│ %s │\n", pad(truncate(line, inner), inner))
	}
	fmt.Fprintf(p.out, "└%s┘\n", border)
}

// truncate shortens s to at most n runes, ending in "..." when cut.
func truncate(s string, n int) string {
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	return string([]rune(s)[:n-3]) + "..."
}

func pad(s string, n int) string {
	if gap := n - utf8.RuneCountInString(s); gap > 0 {
		return s + strings.Repeat(" ", gap)
	}
	return s
}

// list writes up to limit items as bullets, with a trailing count of the rest.
func list(sb *strings.Builder, items []string, limit int) {
	for _, item := range items[:min(len(items), limit)] {
		fmt.Fprintf(sb, "  • %s\n", item)
	}
	if len(items) > limit {
		fmt.Fprintf(sb, "  ... and %d more\n", len(items)-limit)
	}
}

// PrintExtraction outputs the skills found in one document.
func (p *Printer) PrintExtraction(title string, result *types.ExtractionResult) {
	if result == nil {
		return
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "Skills found: %d\n", result.TotalSkills)
	fmt.Fprintf(&sb, "Experience:   %d years (%s)\n", result.Experience.TotalYears, result.Experience.Level)

	if len(result.TopCategories) > 0 {
		sb.WriteString("\nTop categories:\n")
		for _, share := range result.TopCategories {
			fmt.Fprintf(&sb, "  • %s: %d (%.1f%%)\n", share.Category, share.Count, share.Percentage)
		}
	}

	names := result.SkillNames()
	if len(names) > 0 {
		sb.WriteString("\nSkills:\n")
		shown := make([]string, 0, len(names))
		for _, name := range names {
			shown = append(shown, fmt.Sprintf("%s (%.1f)", name, result.Skills[name].Confidence))
		}
		list(&sb, shown, maxItemsToShow*2)
	}

	p.printBox(title, strings.TrimSuffix(sb.String(), "\n"))
}

// PrintMatch outputs the overall score, sub-scores and the skill partition.
func (p *Printer) PrintMatch(result *types.MatchResult) {
	if result == nil {
		return
	}

	d := result.DetailedScores
	var sb strings.Builder
	fmt.Fprintf(&sb, "Overall score:    %.1f\n\n", result.OverallScore)
	fmt.Fprintf(&sb, "Skill match:      %.1f\n", d.SkillMatch)
	fmt.Fprintf(&sb, "Precision/Recall: %.1f / %.1f (F1 %.1f)\n", d.Precision, d.Recall, d.F1Score)
	fmt.Fprintf(&sb, "Weighted:         %.1f\n", d.WeightedScore)
	fmt.Fprintf(&sb, "Experience:       %.1f\n", d.ExperienceMatch)
	fmt.Fprintf(&sb, "Categories:       %.1f\n", d.CategoryMatch)

	fmt.Fprintf(&sb, "\nMatched (%d):\n", len(result.MatchedSkills))
	list(&sb, result.MatchedSkills, maxItemsToShow)

	if len(result.SkillGaps) > 0 {
		fmt.Fprintf(&sb, "\nMissing (%d):\n", len(result.SkillGaps))
		gaps := make([]string, 0, len(result.SkillGaps))
		for _, gap := range result.SkillGaps {
			gaps = append(gaps, fmt.Sprintf("%s [%s, %.1f]", gap.Skill, gap.Priority, gap.Importance))
		}
		list(&sb, gaps, maxItemsToShow)
	}

	p.printBox("MATCH RESULT", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintRecommendations outputs each recommendation with its priority.
func (p *Printer) PrintRecommendations(recs []types.Recommendation) {
	if len(recs) == 0 {
		p.printBox("RECOMMENDATIONS", "No recommendations: profile covers the job")
		return
	}

	var sb strings.Builder
	for i, rec := range recs {
		fmt.Fprintf(&sb, "[%s] %s\n", strings.ToUpper(string(rec.Priority)), rec.Topic)
		fmt.Fprintf(&sb, "  %s\n", rec.Reason)
		if i < len(recs)-1 {
			sb.WriteString("\n")
		}
	}
	p.printBox("RECOMMENDATIONS", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintLearningPath outputs the three stages and their timelines.
func (p *Printer) PrintLearningPath(path *types.LearningPath) {
	if path == nil {
		return
	}

	var sb strings.Builder
	stages := []struct {
		name   string
		skills []string
	}{
		{"Immediate focus", path.ImmediateFocus},
		{"Short term", path.ShortTerm},
		{"Long term", path.LongTerm},
	}
	for _, stage := range stages {
		if len(stage.skills) == 0 {
			continue
		}
		fmt.Fprintf(&sb, "%s:\n", stage.name)
		withTimeline := make([]string, 0, len(stage.skills))
		for _, skill := range stage.skills {
			withTimeline = append(withTimeline, fmt.Sprintf("%s (%s)", skill, path.Timeline[skill]))
		}
		list(&sb, withTimeline, maxItemsToShow)
	}
	if sb.Len() == 0 {
		sb.WriteString("Nothing to learn: all target skills are present")
	}
	p.printBox("LEARNING PATH", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintRankedJobs outputs a leaderboard of jobs for one resume.
func (p *Printer) PrintRankedJobs(ranked []analysis.RankedJob) {
	if len(ranked) == 0 {
		return
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "Jobs ranked: %d\n\n", len(ranked))
	count := min(len(ranked), maxItemsToShow*2)
	for _, job := range ranked[:count] {
		fmt.Fprintf(&sb, "#%-3d %5.1f  %s\n", job.Rank, job.Result.OverallScore, job.ID)
	}
	if len(ranked) > count {
		fmt.Fprintf(&sb, "\n... and %d more jobs", len(ranked)-count)
	}
	p.printBox("RANKED JOBS", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintHistory outputs stored analyses and their statistics.
func (p *Printer) PrintHistory(analyses []db.Analysis, stats *db.Statistics) {
	var sb strings.Builder
	if stats != nil {
		fmt.Fprintf(&sb, "Analyses: %d  Average: %.1f  Best: %.1f\n", stats.Count, stats.AverageScore, stats.BestScore)
	}
	if len(analyses) > 0 {
		sb.WriteString("\n")
	}
	for _, a := range analyses {
		fmt.Fprintf(&sb, "%s  %5.1f  %s\n", a.CreatedAt.Format("2006-01-02 15:04"), a.OverallScore, a.ID)
		fmt.Fprintf(&sb, "  %s\n", strings.ReplaceAll(a.JobPreview, "\n", " "))
	}
	if sb.Len() == 0 {
		sb.WriteString("No analyses recorded")
	}
	p.printBox("ANALYSIS HISTORY", strings.TrimSuffix(sb.String(), "\n"))
}
