// Package matching scores one extraction result against another and reports the skill gap.
package matching

import (
	"slices"
	"sort"

	"github.com/jonathan/skill-matcher/internal/taxonomy"
	"github.com/jonathan/skill-matcher/internal/types"
)

// Matcher compares extraction results. It is stateless apart from its
// read-only configuration and is safe for concurrent use.
type Matcher struct {
	tax     *taxonomy.Taxonomy
	weights Weights
}

// New creates a matcher. The taxonomy supplies related-skill links for the
// comparison view.
func New(tax *taxonomy.Taxonomy, weights Weights) *Matcher {
	return &Matcher{tax: tax, weights: weights}
}

// Weights returns the blend in use.
func (m *Matcher) Weights() Weights {
	return m.weights
}

// Score matches a resume extraction against a job extraction. Recommendations
// are left empty for the caller to fill.
func (m *Matcher) Score(resume, job *types.ExtractionResult) *types.MatchResult {
	if resume == nil {
		resume = types.NewExtractionResult()
	}
	if job == nil {
		job = types.NewExtractionResult()
	}

	metrics := Compute(resume, job)
	matched, missing, extra := partition(resume, job)

	return &types.MatchResult{
		OverallScore:    round1(metrics.Overall(m.weights)),
		DetailedScores:  metrics.Detailed(),
		MatchedSkills:   matched,
		MissingSkills:   missing,
		ExtraSkills:     extra,
		SkillGaps:       Gaps(missing, job),
		Recommendations: []types.Recommendation{},
		Comparison:      m.Compare(resume, job),
	}
}

// partition splits the two skill sets into R∩J, J−R and R−J, each sorted.
func partition(resume, job *types.ExtractionResult) (matched, missing, extra []string) {
	matched, missing, extra = []string{}, []string{}, []string{}
	r := resume.SkillSet()
	j := job.SkillSet()
	for _, name := range job.SkillNames() {
		if _, ok := r[name]; ok {
			matched = append(matched, name)
		} else {
			missing = append(missing, name)
		}
	}
	for _, name := range resume.SkillNames() {
		if _, ok := j[name]; !ok {
			extra = append(extra, name)
		}
	}
	return matched, missing, extra
}

// Gaps describes every missing skill the job mentions, most important first.
func Gaps(missing []string, job *types.ExtractionResult) []types.SkillGap {
	gaps := make([]types.SkillGap, 0, len(missing))
	for _, name := range missing {
		skill, ok := lookup(job, name)
		if !ok {
			continue
		}
		priority := types.PriorityMedium
		if skill.Confidence > highPriorityConfidence {
			priority = types.PriorityHigh
		}
		gaps = append(gaps, types.SkillGap{
			Skill:      name,
			Importance: skill.Confidence,
			Category:   skill.Category,
			Priority:   priority,
		})
	}
	sort.SliceStable(gaps, func(i, k int) bool {
		if gaps[i].Importance != gaps[k].Importance {
			return gaps[i].Importance > gaps[k].Importance
		}
		return gaps[i].Skill < gaps[k].Skill
	})
	return gaps
}

// Compare builds the side-by-side view: an exact row for every shared skill and
// a weak row when a resume-only skill relates to a job-only skill through the
// taxonomy. Rows are ordered by similarity, then resume skill, then job skill.
func (m *Matcher) Compare(resume, job *types.ExtractionResult) []types.Comparison {
	rows := []types.Comparison{}
	matched, missing, extra := partition(resume, job)

	for _, name := range matched {
		skill := job.Skills[name]
		rows = append(rows, types.Comparison{
			ResumeSkill:     name,
			JobSkill:        name,
			MatchType:       types.MatchExact,
			SimilarityScore: 1.0,
			Category:        skill.Category,
			Priority:        requirement(skill.Confidence),
		})
	}

	if m.tax != nil {
		for _, r := range extra {
			for _, rel := range m.tax.Related(r) {
				aliases := m.tax.ConceptAliases(rel.Concept)
				for _, js := range missing {
					if js != rel.Concept && !slices.Contains(aliases, js) {
						continue
					}
					skill := job.Skills[js]
					rows = append(rows, types.Comparison{
						ResumeSkill:     r,
						JobSkill:        js,
						MatchType:       types.MatchWeak,
						SimilarityScore: rel.Score,
						Category:        skill.Category,
						Priority:        requirement(skill.Confidence),
					})
					// one row per related concept
					break
				}
			}
		}
	}

	sort.SliceStable(rows, func(i, k int) bool {
		if rows[i].SimilarityScore != rows[k].SimilarityScore {
			return rows[i].SimilarityScore > rows[k].SimilarityScore
		}
		if rows[i].ResumeSkill != rows[k].ResumeSkill {
			return rows[i].ResumeSkill < rows[k].ResumeSkill
		}
		return rows[i].JobSkill < rows[k].JobSkill
	})
	return rows
}

func requirement(confidence float64) types.Requirement {
	if confidence > requiredConfidence {
		return types.RequirementRequired
	}
	return types.RequirementMentioned
}
