// Package taxonomy provides the skill vocabulary used for extraction and matching.
//
// A Taxonomy is built once and never modified afterwards, so a single value can be
// shared by any number of goroutines.
package taxonomy

import (
	"fmt"
	"sort"
	"strings"

	"github.com/jonathan/skill-matcher/internal/types"
)

// Skill is a canonical skill together with the alias strings that refer to it.
type Skill struct {
	Name    string
	Aliases []string
}

// Group is the ordered list of skills filed under one category.
type Group struct {
	Category types.Category
	Skills   []Skill
}

// Relation links a skill to a broader concept with a similarity score in (0,1].
type Relation struct {
	Concept string  `json:"concept"`
	Score   float64 `json:"score"`
}

// Taxonomy is an immutable, ordered skill vocabulary.
type Taxonomy struct {
	groups     []Group
	categories []types.Category
	category   map[string]types.Category // alias -> first containing category
	canonical  map[string]string         // alias -> first containing canonical name
	concepts   map[string][]string       // canonical name -> aliases of its first definition
	related    map[string][]Relation
	all        []string
}

// New builds a taxonomy from groups in the given order. Aliases are lowercased and
// trimmed; when an alias appears more than once the first occurrence decides its
// category and canonical name. Relations are keyed by alias and may be nil.
func New(groups []Group, relations map[string][]Relation) (*Taxonomy, error) {
	t := &Taxonomy{
		category:  make(map[string]types.Category),
		canonical: make(map[string]string),
		concepts:  make(map[string][]string),
		related:   make(map[string][]Relation),
	}

	seenCategory := make(map[types.Category]bool)
	for gi, g := range groups {
		if !g.Category.Valid() || g.Category == types.CategoryOther {
			return nil, &BuildError{Message: fmt.Sprintf("group %d: invalid category %q", gi, g.Category)}
		}
		if seenCategory[g.Category] {
			return nil, &BuildError{Message: fmt.Sprintf("group %d: duplicate category %q", gi, g.Category)}
		}
		seenCategory[g.Category] = true

		group := Group{Category: g.Category, Skills: make([]Skill, 0, len(g.Skills))}
		for _, s := range g.Skills {
			name := normalize(s.Name)
			if name == "" {
				return nil, &BuildError{Message: fmt.Sprintf("category %s: skill with empty name", g.Category)}
			}
			aliases := make([]string, 0, len(s.Aliases))
			for _, a := range s.Aliases {
				alias := normalize(a)
				if alias == "" {
					continue
				}
				aliases = append(aliases, alias)
				if _, ok := t.category[alias]; !ok {
					t.category[alias] = g.Category
					t.canonical[alias] = name
				}
			}
			if len(aliases) == 0 {
				return nil, &BuildError{Message: fmt.Sprintf("skill %q has no aliases", name)}
			}
			if _, ok := t.concepts[name]; !ok {
				t.concepts[name] = aliases
			}
			group.Skills = append(group.Skills, Skill{Name: name, Aliases: aliases})
		}
		t.groups = append(t.groups, group)
		t.categories = append(t.categories, g.Category)
	}

	for alias, rels := range relations {
		key := normalize(alias)
		for _, r := range rels {
			if r.Score <= 0 || r.Score > 1 {
				return nil, &BuildError{Message: fmt.Sprintf("relation %s -> %s: score %v out of range", key, r.Concept, r.Score)}
			}
			t.related[key] = mergeRelation(t.related[key], Relation{Concept: normalize(r.Concept), Score: r.Score})
		}
	}

	t.all = make([]string, 0, len(t.category))
	for alias := range t.category {
		t.all = append(t.all, alias)
	}
	sort.Strings(t.all)

	return t, nil
}

// mergeRelation adds r, keeping only the highest score per concept.
func mergeRelation(rels []Relation, r Relation) []Relation {
	for i := range rels {
		if rels[i].Concept == r.Concept {
			if r.Score > rels[i].Score {
				rels[i].Score = r.Score
			}
			return rels
		}
	}
	return append(rels, r)
}

func normalize(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// AllSkills returns every alias in the taxonomy, deduplicated and sorted.
// Each alias is an independently matchable skill string.
func (t *Taxonomy) AllSkills() []string {
	out := make([]string, len(t.all))
	copy(out, t.all)
	return out
}

// LookupCategory returns the category of the first group containing s as an alias.
// The lookup is case-insensitive and exact; unknown strings map to types.CategoryOther.
func (t *Taxonomy) LookupCategory(s string) types.Category {
	if c, ok := t.category[normalize(s)]; ok {
		return c
	}
	return types.CategoryOther
}

// Canonical returns the canonical name of the first skill listing alias.
func (t *Taxonomy) Canonical(alias string) (string, bool) {
	name, ok := t.canonical[normalize(alias)]
	return name, ok
}

// Categories returns the taxonomy's categories in definition order.
func (t *Taxonomy) Categories() []types.Category {
	out := make([]types.Category, len(t.categories))
	copy(out, t.categories)
	return out
}

// CategoryRank returns the position of c in taxonomy order. Categories the
// taxonomy does not define, including types.CategoryOther, rank last.
func (t *Taxonomy) CategoryRank(c types.Category) int {
	for i, known := range t.categories {
		if known == c {
			return i
		}
	}
	return len(t.categories)
}

// Groups returns a copy of the taxonomy definition.
func (t *Taxonomy) Groups() []Group {
	out := make([]Group, len(t.groups))
	for i, g := range t.groups {
		skills := make([]Skill, len(g.Skills))
		for j, s := range g.Skills {
			skills[j] = Skill{Name: s.Name, Aliases: append([]string(nil), s.Aliases...)}
		}
		out[i] = Group{Category: g.Category, Skills: skills}
	}
	return out
}

// Related returns the concepts the alias is loosely related to, in definition order.
func (t *Taxonomy) Related(alias string) []Relation {
	return append([]Relation(nil), t.related[normalize(alias)]...)
}

// ConceptAliases returns the aliases of the first skill whose canonical name is concept.
func (t *Taxonomy) ConceptAliases(concept string) []string {
	return append([]string(nil), t.concepts[normalize(concept)]...)
}

// Size returns the number of distinct aliases.
func (t *Taxonomy) Size() int {
	return len(t.all)
}
