// Package types provides type definitions for structured data used throughout the skill-matcher system.
//
//nolint:revive // types is a standard Go package name pattern
package types

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// Category is a skill category from the taxonomy. The set is closed.
type Category string

// Known categories. CategoryOther collects skills the taxonomy cannot place.
const (
	CategoryProgrammingLanguages Category = "programming_languages"
	CategoryFrameworksLibraries  Category = "frameworks_libraries"
	CategoryDatabases            Category = "databases"
	CategoryCloudPlatforms       Category = "cloud_platforms"
	CategoryToolsTechnologies    Category = "tools_technologies"
	CategoryDataScience          Category = "data_science"
	CategorySoftSkills           Category = "soft_skills"
	CategoryOther                Category = "other"
)

// AllCategories lists every known category in canonical order, CategoryOther last.
func AllCategories() []Category {
	return []Category{
		CategoryProgrammingLanguages,
		CategoryFrameworksLibraries,
		CategoryDatabases,
		CategoryCloudPlatforms,
		CategoryToolsTechnologies,
		CategoryDataScience,
		CategorySoftSkills,
		CategoryOther,
	}
}

// Valid reports whether c is one of the known categories.
func (c Category) Valid() bool {
	for _, known := range AllCategories() {
		if c == known {
			return true
		}
	}
	return false
}

// UnmarshalJSON rejects category names outside the closed set.
func (c *Category) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	parsed := Category(s)
	if !parsed.Valid() {
		return fmt.Errorf("unknown skill category %q", s)
	}
	*c = parsed
	return nil
}

// CategorySkills is one entry of a CategoryMap.
type CategorySkills struct {
	Category Category
	Skills   []string
}

// CategoryMap maps categories to skill names while keeping insertion order.
// It serializes as a JSON object whose keys appear in that order.
type CategoryMap []CategorySkills

// Append adds skill under category c, creating the entry if needed.
func (m *CategoryMap) Append(c Category, skill string) {
	for i := range *m {
		if (*m)[i].Category == c {
			(*m)[i].Skills = append((*m)[i].Skills, skill)
			return
		}
	}
	*m = append(*m, CategorySkills{Category: c, Skills: []string{skill}})
}

// Get returns the skills recorded under c.
func (m CategoryMap) Get(c Category) []string {
	for _, entry := range m {
		if entry.Category == c {
			return entry.Skills
		}
	}
	return nil
}

// Has reports whether c has at least one skill.
func (m CategoryMap) Has(c Category) bool {
	return len(m.Get(c)) > 0
}

// Names returns the categories in insertion order.
func (m CategoryMap) Names() []Category {
	names := make([]Category, 0, len(m))
	for _, entry := range m {
		names = append(names, entry.Category)
	}
	return names
}

// MarshalJSON writes the map as an ordered JSON object.
func (m CategoryMap) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, entry := range m {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(string(entry.Category))
		if err != nil {
			return nil, err
		}
		skills := entry.Skills
		if skills == nil {
			skills = []string{}
		}
		value, err := json.Marshal(skills)
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		buf.Write(value)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// UnmarshalJSON reads an object, preserving key order.
func (m *CategoryMap) UnmarshalJSON(data []byte) error {
	if bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
		*m = nil
		return nil
	}

	dec := json.NewDecoder(bytes.NewReader(data))
	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return fmt.Errorf("categories: expected JSON object")
	}

	out := CategoryMap{}
	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return err
		}
		key, ok := keyTok.(string)
		if !ok {
			return fmt.Errorf("categories: expected string key")
		}
		category := Category(key)
		if !category.Valid() {
			return fmt.Errorf("unknown skill category %q", key)
		}
		var skills []string
		if err := dec.Decode(&skills); err != nil {
			return fmt.Errorf("categories: %s: %w", key, err)
		}
		out = append(out, CategorySkills{Category: category, Skills: skills})
	}
	if _, err := dec.Token(); err != nil {
		return err
	}

	*m = out
	return nil
}
