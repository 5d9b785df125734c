package extraction

import (
	"strings"

	"github.com/jonathan/pdf-extractor/internal/patterns"
	"github.com/jonathan/pdf-extractor/internal/sections"
)

// summarySkillLimit is how many skills the summary names before adding "and more".
const summarySkillLimit = 5

// GenerateSummary builds a one-paragraph summary from the segmented resume: the
// objective verbatim, the first experience line, and the first five skills.
func GenerateSummary(s sections.Sections) string {
	var parts []string

	if objective := strings.TrimSpace(s.Objective()); objective != "" {
		parts = append(parts, objective)
	}

	if exp := patterns.FirstLine(s.Experience()); exp != "" {
		parts = append(parts, "Has experience in "+exp)
	}

	if body := s.Skills(); strings.TrimSpace(body) != "" {
		all := ParseSkillsBody(body).Flatten(0)
		if len(all) > 0 {
			top := all
			if len(top) > summarySkillLimit {
				top = top[:summarySkillLimit]
			}
			clause := "Skilled in " + strings.Join(top, ", ")
			if len(all) > summarySkillLimit {
				clause += " and more"
			}
			parts = append(parts, clause)
		}
	}

	return strings.Join(parts, " ")
}
