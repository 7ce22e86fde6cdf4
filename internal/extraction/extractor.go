// Package extraction finds taxonomy skills in free text and scores how strongly each is attested.
package extraction

import (
	"math"
	"regexp"
	"sort"
	"strings"
	"unicode/utf8"

	"github.com/pmezard/go-difflib/difflib"

	"github.com/jonathan/skill-matcher/internal/experience"
	"github.com/jonathan/skill-matcher/internal/taxonomy"
	"github.com/jonathan/skill-matcher/internal/types"
)

// Confidence terms, in tenths so that sums stay exact.
const (
	substringTenths    = 5
	boundaryTenths     = 3
	contextTenths      = 2
	perOccurrenceTenth = 1
	maxFrequencyTenths = 3
	maxTenths          = 10
)

// contextKeywords grant a one-time bonus when any of them appears in the text.
var contextKeywords = []string{"experience", "years", "proficient", "expert", "advanced", "skilled"}

type candidate struct {
	skill    string
	words    []string
	boundary *regexp.Regexp
}

// Extractor scans text for skills of a taxonomy. It holds only read-only state
// and is safe for concurrent use.
type Extractor struct {
	tax        *taxonomy.Taxonomy
	opts       Options
	candidates []candidate
}

// New builds an extractor over tax. Word-boundary patterns for every alias are
// compiled here, once.
func New(tax *taxonomy.Taxonomy, opts Options) *Extractor {
	skills := tax.AllSkills()
	candidates := make([]candidate, 0, len(skills))
	for _, s := range skills {
		candidates = append(candidates, candidate{
			skill:    s,
			words:    strings.Fields(s),
			boundary: regexp.MustCompile(`\b` + regexp.QuoteMeta(s) + `\b`),
		})
	}
	return &Extractor{tax: tax, opts: opts, candidates: candidates}
}

// Taxonomy returns the vocabulary the extractor was built with.
func (e *Extractor) Taxonomy() *taxonomy.Taxonomy {
	return e.tax
}

// Options returns the extractor's settings.
func (e *Extractor) Options() Options {
	return e.opts
}

// Extract analyzes text and returns the skills whose confidence exceeds the
// acceptance threshold, grouped by category, plus the parsed experience.
// Empty or whitespace-only text yields an empty result.
func (e *Extractor) Extract(text string) *types.ExtractionResult {
	result := types.NewExtractionResult()
	if strings.TrimSpace(text) == "" {
		return result
	}

	lower := strings.ToLower(text)
	hasContext := containsAny(lower, contextKeywords)

	// A fuzzy-only hit earns at most the context bonus, so the scan is skipped
	// unless that bonus alone can clear the threshold.
	var windows *tokenWindows
	if hasContext && float64(contextTenths)/10 > e.opts.AcceptanceThreshold {
		windows = newTokenWindows(strings.Fields(lower))
	}

	var accepted []types.ExtractedSkill
	for _, c := range e.candidates {
		substring := strings.Contains(lower, c.skill)
		boundary := c.boundary.MatchString(lower)
		if !substring && !boundary && (windows == nil || !e.fuzzyPresent(c, windows)) {
			continue
		}

		confidence := score(lower, c.skill, substring, boundary, hasContext)
		if confidence <= e.opts.AcceptanceThreshold {
			continue
		}

		accepted = append(accepted, types.ExtractedSkill{
			Name:       c.skill,
			Confidence: confidence,
			Category:   e.tax.LookupCategory(c.skill),
			Context:    snippet(text, lower, c.skill, e.opts.ContextWindow),
		})
	}

	if e.opts.CollapseAliases {
		accepted = e.collapse(accepted)
	}

	for _, s := range accepted {
		result.Skills[s.Name] = s
		result.Categories.Append(s.Category, s.Name)
	}
	result.TotalSkills = len(result.Skills)
	result.TopCategories = e.topCategories(result.Categories)
	result.Experience = experience.Parse(text, e.opts.Experience)

	return result
}

// score computes the additive confidence for a present skill, capped at 1.0.
func score(lower, skill string, substring, boundary, hasContext bool) float64 {
	tenths := 0
	if substring {
		tenths += substringTenths
	}
	if boundary {
		tenths += boundaryTenths
	}
	if hasContext {
		tenths += contextTenths
	}
	tenths += min(strings.Count(lower, skill)*perOccurrenceTenth, maxFrequencyTenths)
	return float64(min(tenths, maxTenths)) / 10
}

// tokenWindows holds the runs of consecutive tokens of one text, split into
// characters, built once per run length and shared by every candidate.
type tokenWindows struct {
	chars [][]string
	byLen map[int][][]string
}

func newTokenWindows(tokens []string) *tokenWindows {
	chars := make([][]string, len(tokens))
	for i, tok := range tokens {
		chars[i] = strings.Split(tok, "")
	}
	return &tokenWindows{chars: chars, byLen: make(map[int][][]string)}
}

// runs returns every run of n consecutive tokens, joined by single spaces.
func (w *tokenWindows) runs(n int) [][]string {
	if runs, ok := w.byLen[n]; ok {
		return runs
	}
	var runs [][]string
	if n == 1 {
		runs = w.chars
	} else {
		for i := 0; i+n <= len(w.chars); i++ {
			var run []string
			for k, c := range w.chars[i : i+n] {
				if k > 0 {
					run = append(run, " ")
				}
				run = append(run, c...)
			}
			runs = append(runs, run)
		}
	}
	w.byLen[n] = runs
	return runs
}

// fuzzyPresent compares the skill against every run of consecutive tokens with
// the same word count as the skill.
func (e *Extractor) fuzzyPresent(c candidate, windows *tokenWindows) bool {
	if len(c.skill) <= e.opts.MinFuzzyLength {
		return false
	}
	n := len(c.words)
	if n == 0 || n > e.opts.MaxFuzzyWords || n > len(windows.chars) {
		return false
	}

	matcher := difflib.NewMatcher(nil, strings.Split(c.skill, ""))
	for _, run := range windows.runs(n) {
		matcher.SetSeq1(run)
		if matcher.RealQuickRatio() < e.opts.FuzzyThreshold {
			continue
		}
		if matcher.QuickRatio() < e.opts.FuzzyThreshold {
			continue
		}
		if matcher.Ratio() >= e.opts.FuzzyThreshold {
			return true
		}
	}
	return false
}

// Similarity returns the sequence-similarity ratio of a and b in [0,1].
func Similarity(a, b string) float64 {
	return difflib.NewMatcher(strings.Split(a, ""), strings.Split(b, "")).Ratio()
}

// collapse keeps one entry per canonical skill, the alias with the highest
// confidence, renamed to the canonical name.
func (e *Extractor) collapse(skills []types.ExtractedSkill) []types.ExtractedSkill {
	index := make(map[string]int)
	out := make([]types.ExtractedSkill, 0, len(skills))
	for _, s := range skills {
		name, ok := e.tax.Canonical(s.Name)
		if !ok {
			name = s.Name
		}
		s.Name = name
		if i, seen := index[name]; seen {
			if s.Confidence > out[i].Confidence {
				out[i] = s
			}
			continue
		}
		index[name] = len(out)
		out = append(out, s)
	}
	return out
}

// topCategories ranks categories by skill count. Ties keep taxonomy order with
// "other" last. Percentages are relative to all categorized skills, "other" included.
func (e *Extractor) topCategories(categories types.CategoryMap) []types.CategoryShare {
	shares := make([]types.CategoryShare, 0, len(categories))
	total := 0
	for _, entry := range categories {
		total += len(entry.Skills)
		shares = append(shares, types.CategoryShare{Category: entry.Category, Count: len(entry.Skills)})
	}
	if total == 0 {
		return []types.CategoryShare{}
	}

	sort.SliceStable(shares, func(i, j int) bool {
		if shares[i].Count != shares[j].Count {
			return shares[i].Count > shares[j].Count
		}
		return e.tax.CategoryRank(shares[i].Category) < e.tax.CategoryRank(shares[j].Category)
	})

	if e.opts.TopCategories >= 0 && len(shares) > e.opts.TopCategories {
		shares = shares[:e.opts.TopCategories]
	}
	for i := range shares {
		shares[i].Percentage = round1(float64(shares[i].Count) / float64(total) * 100)
	}
	return shares
}

// snippet returns up to window bytes on each side of the first occurrence of
// skill, trimmed. The original casing is kept when lowercasing preserved offsets.
func snippet(text, lower, skill string, window int) string {
	idx := strings.Index(lower, skill)
	if idx < 0 {
		return ""
	}

	src := lower
	if len(text) == len(lower) {
		src = text
	}

	start := max(0, idx-window)
	end := min(len(src), idx+len(skill)+window)
	for start > 0 && !utf8.RuneStart(src[start]) {
		start--
	}
	for end < len(src) && !utf8.RuneStart(src[end]) {
		end++
	}
	return strings.TrimSpace(src[start:end])
}

func containsAny(s string, words []string) bool {
	for _, w := range words {
		if strings.Contains(s, w) {
			return true
		}
	}
	return false
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}
