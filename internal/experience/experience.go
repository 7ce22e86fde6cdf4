// Package experience parses years-of-experience statements from free text.
package experience

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/jonathan/skill-matcher/internal/types"
)

// Levels holds the year boundaries used to derive an experience level.
type Levels struct {
	Senior int `json:"senior" mapstructure:"senior_years"`
	Mid    int `json:"mid" mapstructure:"mid_years"`
}

// DefaultLevels returns the standard boundaries: 8 years for senior, 3 for mid.
func DefaultLevels() Levels {
	return Levels{Senior: 8, Mid: 3}
}

// Level maps total years to an experience level.
func (l Levels) Level(years int) types.ExperienceLevel {
	switch {
	case years >= l.Senior:
		return types.LevelSenior
	case years >= l.Mid:
		return types.LevelMid
	default:
		return types.LevelEntry
	}
}

var (
	// "5 years of experience", "3+ yrs exp", "5 years of Python and Django experience"
	totalYearsPattern = regexp.MustCompile(`(\d+)[+\s]*(?:years?|yrs?)\s*(?:of\s+)?(?:[\w.+#/-]+\s+){0,6}?(?:experience|exp)\b`)

	// "python: 4 years", "node.js - 2 yrs"
	skillYearsPattern = regexp.MustCompile(`(\w+(?:\.\w+)*)\s*[:-]\s*(\d+)[+\s]*(?:years?|yrs?)`)
)

// Parse extracts total years, per-token years and the derived level from text.
// Matching is case-insensitive. Numbers that do not fit in an int are ignored.
func Parse(text string, levels Levels) types.Experience {
	lower := strings.ToLower(text)

	exp := types.Experience{
		TotalYears:      TotalYears(lower),
		SkillExperience: SkillYears(lower),
	}
	exp.Level = levels.Level(exp.TotalYears)
	return exp
}

// TotalYears returns the largest N found in "N years of experience" style phrases, or 0.
func TotalYears(text string) int {
	best := 0
	for _, m := range totalYearsPattern.FindAllStringSubmatch(strings.ToLower(text), -1) {
		n, err := strconv.Atoi(m[1])
		if err != nil {
			continue
		}
		if n > best {
			best = n
		}
	}
	return best
}

// SkillYears maps the token preceding "token: N years" phrases to N. Tokens are
// kept as written (lowercased), not resolved to canonical skill names. A later
// mention of the same token overwrites an earlier one.
func SkillYears(text string) map[string]int {
	out := make(map[string]int)
	for _, m := range skillYearsPattern.FindAllStringSubmatch(strings.ToLower(text), -1) {
		n, err := strconv.Atoi(m[2])
		if err != nil {
			continue
		}
		out[m[1]] = n
	}
	return out
}
