package extraction

import (
	"strings"

	"github.com/jonathan/pdf-extractor/internal/patterns"
	"github.com/jonathan/pdf-extractor/internal/types"
)

// UncategorizedSkills is the category used when a skills section has no "Category:" lines.
const UncategorizedSkills = "Technical Skills"

// ParseTechnicalSkills finds the technical-skills slice of text and parses it.
// It returns an empty map when no skills header is present.
func ParseTechnicalSkills(text string) types.SkillsMap {
	body, ok := patterns.FirstSlice(text, patterns.SkillsBoundaries...)
	if !ok {
		return types.SkillsMap{}
	}
	return ParseSkillsBody(body)
}

// ParseSkillsBody parses an already isolated skills section. "Category: a, b" lines
// are preferred; without any, every line is split and the unique skills are stored
// under UncategorizedSkills in first-seen order.
func ParseSkillsBody(body string) types.SkillsMap {
	body = strings.TrimSpace(body)
	if skills, ok := categorizedSkills(body); ok {
		return skills
	}
	return uncategorizedSkills(body)
}

func categorizedSkills(body string) (types.SkillsMap, bool) {
	var skills types.SkillsMap
	matches := patterns.CategorizedSkill.FindAllStringSubmatch(body, -1)
	for _, m := range matches {
		category := strings.TrimSpace(m[1])
		items := splitSkills(m[2])
		if category == "" || len(items) == 0 {
			continue
		}
		skills.Set(category, items)
	}
	return skills, len(matches) > 0
}

func uncategorizedSkills(body string) types.SkillsMap {
	var (
		all  []string
		seen = make(map[string]struct{})
	)
	for _, line := range strings.Split(body, "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasSuffix(line, ":") {
			continue
		}
		line = patterns.LeadingBullet.ReplaceAllString(line, "")
		for _, skill := range splitSkills(line) {
			if _, dup := seen[skill]; dup {
				continue
			}
			seen[skill] = struct{}{}
			all = append(all, skill)
		}
	}

	var skills types.SkillsMap
	if len(all) > 0 {
		skills.Set(UncategorizedSkills, all)
	}
	return skills
}

// splitSkills splits a line on commas, pipes, bullet glyphs and parentheses,
// dropping empty and parenthetical fragments.
func splitSkills(line string) []string {
	var out []string
	for _, part := range patterns.SkillSeparator.Split(line, -1) {
		part = strings.TrimSpace(part)
		if part == "" || strings.HasPrefix(part, "(") {
			continue
		}
		out = append(out, part)
	}
	return out
}
