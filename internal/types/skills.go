package types

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// SkillCategory is one category of a SkillsMap.
type SkillCategory struct {
	Name   string
	Skills []string
}

// SkillsMap maps a category label to its skills while keeping categories in insertion order.
// It encodes as a JSON object whose members appear in that order. The zero value is empty and ready to use.
type SkillsMap struct {
	categories []SkillCategory
}

// Set stores skills under category. An existing category keeps its position.
func (m *SkillsMap) Set(category string, skills []string) {
	if skills == nil {
		skills = []string{}
	}
	for i := range m.categories {
		if m.categories[i].Name == category {
			m.categories[i].Skills = skills
			return
		}
	}
	m.categories = append(m.categories, SkillCategory{Name: category, Skills: skills})
}

// Add appends a skill to category, creating the category when needed.
func (m *SkillsMap) Add(category, skill string) {
	for i := range m.categories {
		if m.categories[i].Name == category {
			m.categories[i].Skills = append(m.categories[i].Skills, skill)
			return
		}
	}
	m.categories = append(m.categories, SkillCategory{Name: category, Skills: []string{skill}})
}

// Get returns the skills stored under category.
func (m SkillsMap) Get(category string) ([]string, bool) {
	for _, c := range m.categories {
		if c.Name == category {
			return c.Skills, true
		}
	}
	return nil, false
}

// Categories returns the category labels in order.
func (m SkillsMap) Categories() []string {
	names := make([]string, 0, len(m.categories))
	for _, c := range m.categories {
		names = append(names, c.Name)
	}
	return names
}

// Entries returns a copy of the categories in order.
func (m SkillsMap) Entries() []SkillCategory {
	out := make([]SkillCategory, len(m.categories))
	copy(out, m.categories)
	return out
}

// Len returns the number of categories.
func (m SkillsMap) Len() int {
	return len(m.categories)
}

// Count returns the total number of skills across all categories.
func (m SkillsMap) Count() int {
	n := 0
	for _, c := range m.categories {
		n = len(c.Skills) + n
	}
	return n
}

// Flatten returns skill names across all categories, first-seen category first and
// insertion order within a category, without duplicates. limit <= 0 means no limit.
func (m SkillsMap) Flatten(limit int) []string {
	seen := make(map[string]struct{})
	var out []string
	for _, c := range m.categories {
		for _, s := range c.Skills {
			if _, ok := seen[s]; ok {
				continue
			}
			seen[s] = struct{}{}
			out = append(out, s)
			if limit > 0 && len(out) == limit {
				return out
			}
		}
	}
	return out
}

// MarshalJSON implements json.Marshaler.
func (m SkillsMap) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, c := range m.categories {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := marshalNoEscape(c.Name)
		if err != nil {
			return nil, err
		}
		val, err := StringList(c.Skills).MarshalJSON()
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		buf.Write(val)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// UnmarshalJSON decodes a JSON object, preserving member order. Each member may be an
// array of skills, a single skill string, or null.
func (m *SkillsMap) UnmarshalJSON(data []byte) error {
	m.categories = nil
	data = bytes.TrimSpace(data)
	if string(data) == "null" {
		return nil
	}

	dec := json.NewDecoder(bytes.NewReader(data))
	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return fmt.Errorf("skills: expected JSON object, got %v", tok)
	}

	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return err
		}
		key, ok := keyTok.(string)
		if !ok {
			return fmt.Errorf("skills: expected string key, got %v", keyTok)
		}
		var skills StringList
		if err := dec.Decode(&skills); err != nil {
			return fmt.Errorf("skills: category %q: %w", key, err)
		}
		m.Set(key, []string(skills))
	}

	_, err = dec.Token()
	return err
}
