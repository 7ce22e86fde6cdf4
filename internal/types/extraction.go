// Package types provides type definitions for structured data used throughout the skill-matcher system.
//
//nolint:revive // types is a standard Go package name pattern
package types

import "sort"

// ExperienceLevel is derived from total years of experience.
type ExperienceLevel string

// Experience levels.
const (
	LevelEntry  ExperienceLevel = "entry"
	LevelMid    ExperienceLevel = "mid"
	LevelSenior ExperienceLevel = "senior"
)

// ExtractedSkill is a single taxonomy skill found in a document.
type ExtractedSkill struct {
	Name       string   `json:"name"`
	Confidence float64  `json:"confidence"`
	Category   Category `json:"category"`
	Context    string   `json:"context"`
}

// Experience holds the years-of-experience signals parsed from a document.
type Experience struct {
	TotalYears      int             `json:"total_years"`
	SkillExperience map[string]int  `json:"skill_experience"`
	Level           ExperienceLevel `json:"experience_level"`
}

// CategoryShare is one row of the top-categories ranking.
type CategoryShare struct {
	Category   Category `json:"category"`
	Count      int      `json:"count"`
	Percentage float64  `json:"percentage"`
}

// ExtractionResult is the analysis of one document.
type ExtractionResult struct {
	Skills        map[string]ExtractedSkill `json:"skills"`
	Categories    CategoryMap               `json:"categories"`
	Experience    Experience                `json:"experience"`
	TotalSkills   int                       `json:"total_skills"`
	TopCategories []CategoryShare           `json:"top_categories"`
}

// NewExtractionResult returns an empty result with all collections initialized.
func NewExtractionResult() *ExtractionResult {
	return &ExtractionResult{
		Skills:     make(map[string]ExtractedSkill),
		Categories: CategoryMap{},
		Experience: Experience{
			SkillExperience: make(map[string]int),
			Level:           LevelEntry,
		},
		TopCategories: []CategoryShare{},
	}
}

// SkillNames returns the names of all extracted skills in ascending order.
func (r *ExtractionResult) SkillNames() []string {
	if r == nil {
		return nil
	}
	names := make([]string, 0, len(r.Skills))
	for name := range r.Skills {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// SkillSet returns the extracted skill names as a set.
func (r *ExtractionResult) SkillSet() map[string]struct{} {
	set := make(map[string]struct{})
	if r == nil {
		return set
	}
	for name := range r.Skills {
		set[name] = struct{}{}
	}
	return set
}

// Confidence returns the confidence of the named skill, or 0 if absent.
func (r *ExtractionResult) Confidence(name string) float64 {
	if r == nil {
		return 0
	}
	return r.Skills[name].Confidence
}
