package patterns

import (
	"regexp"
	"strings"
)

// Section keys produced by the segmenter.
const (
	SectionObjective      = "objective"
	SectionEducation      = "education"
	SectionExperience     = "experience"
	SectionSkills         = "skills"
	SectionProjects       = "projects"
	SectionCertifications = "certifications"
)

// HeaderSet is the keyword set that marks a line as a section header.
type HeaderSet struct {
	Section  string
	Keywords []string
}

// SectionHeaders lists header keyword sets in priority order. A line containing keywords
// of several sections belongs to the first one listed.
var SectionHeaders = []HeaderSet{
	{Section: SectionObjective, Keywords: []string{"objective", "summary", "profile", "about"}},
	{Section: SectionEducation, Keywords: []string{"education", "academic", "qualification"}},
	{Section: SectionExperience, Keywords: []string{"experience", "employment", "work history"}},
	{Section: SectionSkills, Keywords: []string{"technical skills", "skills", "technologies", "competencies"}},
	{Section: SectionProjects, Keywords: []string{"projects", "project work", "academic projects"}},
	{Section: SectionCertifications, Keywords: []string{"certifications", "certificates", "credentials"}},
}

// SectionNames returns the section keys in priority order.
func SectionNames() []string {
	names := make([]string, 0, len(SectionHeaders))
	for _, h := range SectionHeaders {
		names = append(names, h.Section)
	}
	return names
}

// DetectHeader reports which section, if any, a line introduces. Keywords match as
// case-insensitive substrings of the line.
func DetectHeader(line string) (string, bool) {
	lower := strings.ToLower(line)
	for _, h := range SectionHeaders {
		for _, kw := range h.Keywords {
			if strings.Contains(lower, kw) {
				return h.Section, true
			}
		}
	}
	return "", false
}

// Boundary locates a section slice directly in raw text. The slice starts on the line
// after the first Start match and ends before the first Stop match in the remainder,
// or at end of text.
type Boundary struct {
	Name  string
	Start *regexp.Regexp
	Stop  *regexp.Regexp
}

// Slice returns the section body. It reports false when Start does not occur or is
// not followed by a line break.
func (b Boundary) Slice(text string) (string, bool) {
	loc := b.Start.FindStringIndex(text)
	if loc == nil {
		return "", false
	}
	nl := strings.IndexByte(text[loc[1]:], '\n')
	if nl < 0 {
		return "", false
	}
	body := text[loc[1]+nl+1:]
	if b.Stop != nil {
		if stop := b.Stop.FindStringIndex(body); stop != nil {
			body = body[:stop[0]]
		}
	}
	return body, true
}

// FirstSlice tries each boundary in order and returns the first slice found.
func FirstSlice(text string, bounds ...Boundary) (string, bool) {
	for _, b := range bounds {
		if body, ok := b.Slice(text); ok {
			return body, true
		}
	}
	return "", false
}

// Section boundaries used by the structured-record extractors.
var (
	ExperienceBoundary = Boundary{
		Name:  "experience",
		Start: regexp.MustCompile(`(?i)EXPERIENCE|EMPLOYMENT|WORK HISTORY`),
		Stop:  regexp.MustCompile(`(?i)\n(?:PROJECTS|EDUCATION|SKILLS|CERTIFICATIONS)`),
	}
	ProjectsBoundary = Boundary{
		Name:  "projects",
		Start: regexp.MustCompile(`(?i)PROJECTS|PROJECT WORK`),
		Stop:  regexp.MustCompile(`(?i)\n(?:EDUCATION|SKILLS|EXPERIENCE|CERTIFICATIONS)`),
	}
	CertificationsBoundary = Boundary{
		Name:  "certifications",
		Start: regexp.MustCompile(`(?i)CERTIFICATIONS|CERTIFICATES`),
		Stop:  regexp.MustCompile(`(?i)\n(?:PROJECTS|EDUCATION|EXPERIENCE|SKILLS)`),
	}

	// allCapsHeader ends a skills slice at the next colon-terminated line made only of
	// capitals. Bare acronym lines such as "SQL" stay in the slice.
	allCapsHeader = regexp.MustCompile(`(?m)\n[ \t]*[A-Z][A-Z \t&/]+:[ \t]*$`)

	// SkillsBoundaries are the technical-skills header variants in priority order.
	SkillsBoundaries = []Boundary{
		{Name: "technical_skills", Start: regexp.MustCompile(`(?i)TECHNICAL\s+SKILLS?`), Stop: allCapsHeader},
		{Name: "technical_expertise", Start: regexp.MustCompile(`(?i)TECHNICAL\s+EXPERTISE`), Stop: allCapsHeader},
		{Name: "technical_proficiencies", Start: regexp.MustCompile(`(?i)TECHNICAL\s+PROFICIENCIES`), Stop: allCapsHeader},
		{Name: "technologies", Start: regexp.MustCompile(`(?i)TECHNOLOGIES`), Stop: allCapsHeader},
		{Name: "skills_and_technologies", Start: regexp.MustCompile(`(?i)SKILLS\s+AND\s+TECHNOLOGIES`), Stop: allCapsHeader},
	}
)

// Experience and project helpers.
var (
	// Duration is a "YEAR - YEAR" or "YEAR - Present" range.
	Duration = regexp.MustCompile(`(?:20\d{2}|19\d{2})\s*[-–]\s*(?:20\d{2}|19\d{2}|Present)`)

	// EntryStart matches text that opens a new experience entry: a capitalized run
	// without lowercase letters reaching a four-digit year.
	EntryStart = regexp.MustCompile(`\A[A-Z][^a-z]*?(?:20\d{2}|19\d{2})`)

	// SkillSeparator splits a skills line into items.
	SkillSeparator = regexp.MustCompile(`[,|•●()]`)

	// CategorizedSkill matches a "Category: skill, skill" line.
	CategorizedSkill = regexp.MustCompile(`(?m)^([^:•\n]+):\s*([^\n]+)`)

	// LeadingBullet strips a bullet marker from the start of a line.
	LeadingBullet = regexp.MustCompile(`^[•●\-]\s*`)
)
