// Package recommend turns a match's skill gap into prioritized improvement suggestions.
package recommend

import (
	"fmt"
	"sort"
	"strings"

	"github.com/jonathan/skill-matcher/internal/taxonomy"
	"github.com/jonathan/skill-matcher/internal/types"
)

// Options tunes the recommendation rules.
type Options struct {
	// CriticalConfidence is the job-side confidence above which a missing skill is critical.
	CriticalConfidence float64
	// MaxCriticalSkills caps how many critical skills are named.
	MaxCriticalSkills int
}

// DefaultOptions returns the standard rule settings.
func DefaultOptions() Options {
	return Options{
		CriticalConfidence: 0.8,
		MaxCriticalSkills:  3,
	}
}

// Generator applies a fixed rule cascade. It holds no mutable state.
type Generator struct {
	tax  *taxonomy.Taxonomy
	opts Options
}

// New creates a generator. The taxonomy orders category suggestions.
func New(tax *taxonomy.Taxonomy, opts Options) *Generator {
	return &Generator{tax: tax, opts: opts}
}

// Recommend runs the rules in display order: critical skills, missing
// categories, experience gap. Each rule adds at most one suggestion, and the
// same inputs always produce the same list.
func (g *Generator) Recommend(missing []string, resume, job *types.ExtractionResult) []types.Recommendation {
	recs := []types.Recommendation{}
	if job == nil {
		return recs
	}

	if rec, ok := g.criticalSkills(missing, job); ok {
		recs = append(recs, rec)
	}
	if rec, ok := g.categoryGap(resume, job); ok {
		recs = append(recs, rec)
	}
	if rec, ok := experienceGap(resume, job); ok {
		recs = append(recs, rec)
	}
	return recs
}

// FromMatch recommends from a finished match result.
func (g *Generator) FromMatch(m *types.MatchResult, resume, job *types.ExtractionResult) []types.Recommendation {
	if m == nil {
		return []types.Recommendation{}
	}
	return g.Recommend(m.MissingSkills, resume, job)
}

func (g *Generator) criticalSkills(missing []string, job *types.ExtractionResult) (types.Recommendation, bool) {
	var critical []types.ExtractedSkill
	seen := make(map[string]bool)
	for _, name := range missing {
		skill, ok := job.Skills[name]
		if !ok || seen[name] || skill.Confidence <= g.opts.CriticalConfidence {
			continue
		}
		seen[name] = true
		critical = append(critical, skill)
	}
	if len(critical) == 0 {
		return types.Recommendation{}, false
	}

	sort.SliceStable(critical, func(i, k int) bool {
		if critical[i].Confidence != critical[k].Confidence {
			return critical[i].Confidence > critical[k].Confidence
		}
		return critical[i].Name < critical[k].Name
	})
	if g.opts.MaxCriticalSkills > 0 && len(critical) > g.opts.MaxCriticalSkills {
		critical = critical[:g.opts.MaxCriticalSkills]
	}

	names := make([]string, len(critical))
	for i, s := range critical {
		names[i] = s.Name
	}
	return types.Recommendation{
		Kind:     types.KindCriticalSkills,
		Topic:    "critical skills",
		Items:    names,
		Priority: types.PriorityHigh,
		Reason:   "Focus on learning these critical skills: " + strings.Join(names, ", "),
	}, true
}

func (g *Generator) categoryGap(resume, job *types.ExtractionResult) (types.Recommendation, bool) {
	var absent []types.Category
	for _, entry := range job.Categories {
		if len(entry.Skills) == 0 {
			continue
		}
		if resume != nil && resume.Categories.Has(entry.Category) {
			continue
		}
		absent = append(absent, entry.Category)
	}
	if len(absent) == 0 {
		return types.Recommendation{}, false
	}

	sort.SliceStable(absent, func(i, k int) bool {
		return g.rank(absent[i]) < g.rank(absent[k])
	})

	names := make([]string, len(absent))
	for i, c := range absent {
		names[i] = string(c)
	}
	return types.Recommendation{
		Kind:     types.KindCategoryGap,
		Topic:    "skill categories",
		Items:    names,
		Priority: types.PriorityMedium,
		Reason:   "Consider developing skills in: " + strings.Join(names, ", "),
	}, true
}

func experienceGap(resume, job *types.ExtractionResult) (types.Recommendation, bool) {
	current := 0
	if resume != nil {
		current = resume.Experience.TotalYears
	}
	required := job.Experience.TotalYears
	if required <= current {
		return types.Recommendation{}, false
	}
	return types.Recommendation{
		Kind:     types.KindExperienceGap,
		Topic:    "industry experience",
		Priority: types.PriorityHigh,
		Reason:   fmt.Sprintf("Gain more experience (current: %d years, required: %d years)", current, required),
	}, true
}

// rank orders categories by taxonomy position, falling back to the canonical
// category order when no taxonomy is configured.
func (g *Generator) rank(c types.Category) int {
	if g.tax != nil {
		return g.tax.CategoryRank(c)
	}
	for i, known := range types.AllCategories() {
		if known == c {
			return i
		}
	}
	return len(types.AllCategories())
}
