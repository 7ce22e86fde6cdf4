// Package types provides type definitions for structured data used throughout the skill-matcher system.
//
//nolint:revive // types is a standard Go package name pattern
package types

// Priority is the urgency attached to a gap or recommendation.
type Priority string

// Priorities, highest first.
const (
	PriorityHigh   Priority = "high"
	PriorityMedium Priority = "medium"
)

// MatchType distinguishes rows of the comparison view.
type MatchType string

// Comparison match types.
const (
	MatchExact MatchType = "EXACT MATCH"
	MatchWeak  MatchType = "WEAK MATCH"
)

// Requirement describes how strongly a job asks for a compared skill.
type Requirement string

// Requirement levels.
const (
	RequirementRequired  Requirement = "REQUIRED"
	RequirementMentioned Requirement = "MENTIONED"
)

// DetailedScores holds the sub-scores of a match, each on a 0-100 scale.
type DetailedScores struct {
	SkillMatch      float64 `json:"skill_match"` // Jaccard similarity
	Precision       float64 `json:"precision"`
	Recall          float64 `json:"recall"`
	F1Score         float64 `json:"f1_score"`
	WeightedScore   float64 `json:"weighted_score"`
	ExperienceMatch float64 `json:"experience_match"`
	CategoryMatch   float64 `json:"category_match"`
}

// SkillGap is a job skill missing from the resume.
type SkillGap struct {
	Skill      string   `json:"skill"`
	Importance float64  `json:"importance"`
	Category   Category `json:"category"`
	Priority   Priority `json:"priority"`
}

// Comparison is one row of the side-by-side skill comparison.
type Comparison struct {
	ResumeSkill     string      `json:"resume_skill"`
	JobSkill        string      `json:"job_skill"`
	MatchType       MatchType   `json:"match_type"`
	SimilarityScore float64     `json:"similarity_score"`
	Category        Category    `json:"category"`
	Priority        Requirement `json:"priority"`
}

// MatchResult is the outcome of scoring one document against another.
type MatchResult struct {
	OverallScore    float64          `json:"overall_score"`
	DetailedScores  DetailedScores   `json:"detailed_scores"`
	MatchedSkills   []string         `json:"matched_skills"`
	MissingSkills   []string         `json:"missing_skills"`
	ExtraSkills     []string         `json:"extra_skills"`
	SkillGaps       []SkillGap       `json:"skill_gaps"`
	Recommendations []Recommendation `json:"recommendations"`
	Comparison      []Comparison     `json:"comparison"`
}
