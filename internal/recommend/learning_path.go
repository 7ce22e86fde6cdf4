package recommend

import (
	"sort"
	"strings"

	"github.com/jonathan/skill-matcher/internal/types"
)

// Stage sizes of a learning path.
const (
	immediateSkills = 3
	shortTermSkills = 5
)

const defaultTimeline = "1-2 months"

var learningResources = map[string][]string{
	"python":     {"Python.org Tutorial", "Codecademy Python", "Python Crash Course book"},
	"javascript": {"MDN JavaScript Guide", "freeCodeCamp", "You Don't Know JS books"},
	"react":      {"React Official Tutorial", "React Course on Udemy", "React Documentation"},
	"sql":        {"W3Schools SQL", "SQLBolt", "PostgreSQL Tutorial"},
	"docker":     {"Docker Official Tutorial", "Docker for Beginners", "Play with Docker"},
	"git":        {"Git Official Tutorial", "Atlassian Git Tutorial", "Pro Git book"},
}

var learningTimelines = map[string]string{
	"python":     "2-3 months",
	"java":       "3-4 months",
	"javascript": "2-3 months",
	"react":      "1-2 months",
	"angular":    "2-3 months",
	"vue":        "1-2 months",
	"git":        "1-2 weeks",
	"docker":     "2-4 weeks",
	"sql":        "1-2 months",
	"mongodb":    "2-4 weeks",
	"postgresql": "1-2 months",
}

var prerequisites = map[string][]string{
	"react":      {"javascript", "html", "css"},
	"angular":    {"typescript", "javascript", "html", "css"},
	"vue":        {"javascript", "html", "css"},
	"django":     {"python"},
	"flask":      {"python"},
	"express":    {"javascript", "node.js"},
	"tensorflow": {"python", "numpy"},
	"pytorch":    {"python"},
	"kubernetes": {"docker", "linux"},
	"terraform":  {"cloud platforms"},
}

// LearningPath stages the skills in target but not in current: the first three
// (alphabetically) are immediate, the next five short term, the rest long term.
// Every staged skill gets resources and a timeline; prerequisites are listed
// where known.
func (g *Generator) LearningPath(current, target []string) *types.LearningPath {
	have := make(map[string]bool, len(current))
	for _, s := range current {
		have[strings.ToLower(strings.TrimSpace(s))] = true
	}

	seen := make(map[string]bool)
	var missing []string
	for _, s := range target {
		key := strings.ToLower(strings.TrimSpace(s))
		if key == "" || have[key] || seen[key] {
			continue
		}
		seen[key] = true
		missing = append(missing, key)
	}
	sort.Strings(missing)

	path := &types.LearningPath{
		ImmediateFocus: stage(missing, 0, immediateSkills),
		ShortTerm:      stage(missing, immediateSkills, immediateSkills+shortTermSkills),
		LongTerm:       stage(missing, immediateSkills+shortTermSkills, len(missing)),
		Resources:      make(map[string][]string, len(missing)),
		Timeline:       make(map[string]string, len(missing)),
		Dependencies:   make(map[string][]string),
	}
	for _, s := range missing {
		path.Resources[s] = resourcesFor(s)
		path.Timeline[s] = timelineFor(s)
		if deps, ok := prerequisites[s]; ok {
			path.Dependencies[s] = append([]string(nil), deps...)
		}
	}
	return path
}

func stage(skills []string, from, to int) []string {
	if from >= len(skills) {
		return []string{}
	}
	to = min(to, len(skills))
	return append([]string{}, skills[from:to]...)
}

func resourcesFor(skill string) []string {
	if r, ok := learningResources[skill]; ok {
		return append([]string(nil), r...)
	}
	return []string{
		skill + " Official Documentation",
		skill + " Tutorial",
		"Learn " + skill + " Online",
	}
}

func timelineFor(skill string) string {
	if t, ok := learningTimelines[skill]; ok {
		return t
	}
	return defaultTimeline
}
