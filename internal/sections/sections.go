// Package sections splits raw resume text into its named sections.
package sections

import (
	"strings"

	"github.com/jonathan/pdf-extractor/internal/patterns"
)

// Sections maps each section key to its body text. All six keys are always present.
type Sections map[string]string

// Empty returns a Sections value with every key set to "".
func Empty() Sections {
	s := make(Sections, len(patterns.SectionHeaders))
	for _, name := range patterns.SectionNames() {
		s[name] = ""
	}
	return s
}

// Objective returns the objective body.
func (s Sections) Objective() string { return s[patterns.SectionObjective] }

// Education returns the education body.
func (s Sections) Education() string { return s[patterns.SectionEducation] }

// Experience returns the experience body.
func (s Sections) Experience() string { return s[patterns.SectionExperience] }

// Skills returns the skills body.
func (s Sections) Skills() string { return s[patterns.SectionSkills] }

// Projects returns the projects body.
func (s Sections) Projects() string { return s[patterns.SectionProjects] }

// Certifications returns the certifications body.
func (s Sections) Certifications() string { return s[patterns.SectionCertifications] }

// Segment walks text line by line and assigns each non-blank line to the section
// introduced by the most recent header line. Header lines are consumed and lines
// before the first header are dropped. Every header replaces the current section's
// body with the lines collected since, so a repeated header keeps only its last
// occurrence. At end of input the body is stored only when it is non-empty.
func Segment(text string) Sections {
	out := Empty()

	var (
		current string
		body    []string
	)

	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		if section, ok := patterns.DetectHeader(line); ok {
			if current != "" {
				out[current] = strings.Join(body, "\n")
			}
			current = section
			body = body[:0]
			continue
		}

		if current != "" {
			body = append(body, line)
		}
	}
	if current != "" && len(body) > 0 {
		out[current] = strings.Join(body, "\n")
	}

	return out
}
