package extraction

import "github.com/jonathan/skill-matcher/internal/experience"

// Options tunes the extractor. The zero value is not useful; start from DefaultOptions.
type Options struct {
	// AcceptanceThreshold is the confidence a skill must exceed to be reported.
	AcceptanceThreshold float64
	// FuzzyThreshold is the minimum sequence-similarity ratio for a fuzzy hit.
	FuzzyThreshold float64
	// ContextWindow is the number of bytes kept on each side of a snippet.
	ContextWindow int
	// TopCategories limits the top_categories ranking.
	TopCategories int
	// MinFuzzyLength: only skills longer than this are fuzzy matched.
	MinFuzzyLength int
	// MaxFuzzyWords caps the n-gram length used for multi-word fuzzy matches.
	MaxFuzzyWords int
	// CollapseAliases reports canonical skill names instead of raw aliases.
	CollapseAliases bool
	Experience      experience.Levels
}

// DefaultOptions returns the standard extractor settings.
func DefaultOptions() Options {
	return Options{
		AcceptanceThreshold: 0.6,
		FuzzyThreshold:      0.8,
		ContextWindow:       50,
		TopCategories:       3,
		MinFuzzyLength:      3,
		MaxFuzzyWords:       4,
		Experience:          experience.DefaultLevels(),
	}
}
