// Package types provides type definitions for structured data used throughout the skill-matcher system.
//
//nolint:revive // types is a standard Go package name pattern
package types

// RecommendationKind identifies the rule that produced a recommendation.
type RecommendationKind string

// Recommendation kinds, in display order.
const (
	KindCriticalSkills RecommendationKind = "critical_skills"
	KindCategoryGap    RecommendationKind = "category_gap"
	KindExperienceGap  RecommendationKind = "experience_gap"
)

// Recommendation is a single improvement suggestion.
type Recommendation struct {
	Kind     RecommendationKind `json:"kind"`
	Topic    string             `json:"topic"`
	Items    []string           `json:"items,omitempty"`
	Priority Priority           `json:"priority"`
	Reason   string             `json:"reason"`
}

// LearningPath is a staged plan for closing a skill gap.
type LearningPath struct {
	ImmediateFocus []string            `json:"immediate_focus"`
	ShortTerm      []string            `json:"short_term"`
	LongTerm       []string            `json:"long_term"`
	Resources      map[string][]string `json:"learning_resources"`
	Timeline       map[string]string   `json:"estimated_timeline"`
	Dependencies   map[string][]string `json:"skill_dependencies"`
}

// TextStats summarizes the analyzed text.
type TextStats struct {
	WordCount    int     `json:"word_count"`
	CharCount    int     `json:"char_count"`
	SkillDensity float64 `json:"skill_density"`
}

// SkillInsights is a qualitative reading of a single document's skill profile.
type SkillInsights struct {
	Strengths     []string   `json:"strengths"`
	Suggestions   []string   `json:"suggestions"`
	ProfileLevel  string     `json:"profile_level"`
	TopCategories []Category `json:"top_categories"`
	Text          TextStats  `json:"text_analysis"`
}
