package matching

import (
	"math"

	"github.com/jonathan/skill-matcher/internal/types"
)

// Metrics holds the raw sub-scores of a match, each a fraction in [0,1].
type Metrics struct {
	Jaccard    float64
	Precision  float64
	Recall     float64
	F1         float64
	Weighted   float64
	Experience float64
	Category   float64
}

// Compute derives every sub-score from two extraction results. Ratios over an
// empty set are 0, except the "no requirement" cases which are 1.
func Compute(resume, job *types.ExtractionResult) Metrics {
	r := resume.SkillSet()
	j := job.SkillSet()

	inter := 0
	for s := range j {
		if _, ok := r[s]; ok {
			inter++
		}
	}
	union := len(r) + len(j) - inter

	m := Metrics{
		Jaccard:   ratio(inter, union),
		Precision: ratio(inter, len(r)),
		Recall:    ratio(inter, len(j)),
	}
	if m.Precision+m.Recall > 0 {
		m.F1 = 2 * m.Precision * m.Recall / (m.Precision + m.Recall)
	}
	m.Weighted = WeightedScore(resume, job)
	m.Experience = ExperienceMatch(years(resume), years(job))
	m.Category = CategoryMatch(resume, job)
	return m
}

// Overall blends the metrics with w and scales to 0-100.
func (m Metrics) Overall(w Weights) float64 {
	raw := w.Weighted*m.Weighted + w.F1*m.F1 + w.Experience*m.Experience + w.Category*m.Category
	return clamp(raw*100, 0, 100)
}

// Detailed reports the metrics as percentages rounded to one decimal.
func (m Metrics) Detailed() types.DetailedScores {
	return types.DetailedScores{
		SkillMatch:      percent(m.Jaccard),
		Precision:       percent(m.Precision),
		Recall:          percent(m.Recall),
		F1Score:         percent(m.F1),
		WeightedScore:   percent(m.Weighted),
		ExperienceMatch: percent(m.Experience),
		CategoryMatch:   percent(m.Category),
	}
}

// WeightedScore is the share of job-side confidence covered by matched skills,
// each match counting job confidence times resume confidence.
func WeightedScore(resume, job *types.ExtractionResult) float64 {
	if job == nil {
		return 0
	}
	total, matched := 0.0, 0.0
	// sorted iteration keeps the float sum reproducible
	for _, name := range job.SkillNames() {
		skill := job.Skills[name]
		total += skill.Confidence
		if rs, ok := lookup(resume, name); ok {
			matched += skill.Confidence * rs.Confidence
		}
	}
	if total == 0 {
		return 0
	}
	return matched / total
}

// ExperienceMatch gives full credit when the job asks for nothing or the resume
// meets the requirement, and linear partial credit otherwise.
func ExperienceMatch(resumeYears, jobYears int) float64 {
	if jobYears <= 0 || resumeYears >= jobYears {
		return 1
	}
	if resumeYears <= 0 {
		return 0
	}
	return float64(resumeYears) / float64(jobYears)
}

// CategoryMatch is the fraction of the job's categories also present in the
// resume, 1 when the job has none.
func CategoryMatch(resume, job *types.ExtractionResult) float64 {
	if job == nil {
		return 1
	}
	total, covered := 0, 0
	for _, entry := range job.Categories {
		if len(entry.Skills) == 0 {
			continue
		}
		total++
		if resume != nil && resume.Categories.Has(entry.Category) {
			covered++
		}
	}
	if total == 0 {
		return 1
	}
	return float64(covered) / float64(total)
}

func lookup(r *types.ExtractionResult, name string) (types.ExtractedSkill, bool) {
	if r == nil {
		return types.ExtractedSkill{}, false
	}
	s, ok := r.Skills[name]
	return s, ok
}

func ratio(n, d int) float64 {
	if d == 0 {
		return 0
	}
	return float64(n) / float64(d)
}

func years(r *types.ExtractionResult) int {
	if r == nil {
		return 0
	}
	return r.Experience.TotalYears
}

func percent(v float64) float64 {
	return round1(v * 100)
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}

func clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, v))
}
