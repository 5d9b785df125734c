// Package types provides type definitions for structured data used throughout the pdf-extractor system.
//
//nolint:revive // types is a standard Go package name pattern
package types

import "encoding/json"

// ExtractionResult is the top-level record produced for one resume document.
// It is always fully shaped: every slice and map serializes as [] or {} rather than null.
type ExtractionResult struct {
	Error          string               `json:"error,omitempty"`
	Name           string               `json:"name"`
	Email          string               `json:"email"`
	Phone          string               `json:"phone"`
	Location       string               `json:"location"`
	Education      EducationRecord      `json:"education"`
	Experience     []ExperienceEntry    `json:"experience"`
	Skills         SkillsMap            `json:"skills"`
	Projects       []ProjectEntry       `json:"projects"`
	Certifications []CertificationEntry `json:"certifications"`
	Dates          map[string]string    `json:"dates,omitempty"` // local extraction only
	Summary        string               `json:"summary"`
	ATSAnalysis    ATSAnalysis          `json:"ats_analysis"`
	SkillsAnalysis SkillsAnalysis       `json:"skills_analysis"`
}

// EducationRecord holds the education details of a resume. Fields are empty when not found.
type EducationRecord struct {
	Degree         string `json:"degree"`
	University     string `json:"university"`
	Major          string `json:"major"`
	CGPA           string `json:"cgpa"`
	GraduationYear string `json:"graduationYear"`
}

// ExperienceEntry is one position held. Duration is the raw date-range text and is not parsed.
type ExperienceEntry struct {
	Company      string     `json:"company"`
	Position     string     `json:"position"`
	Duration     string     `json:"duration"`
	Achievements StringList `json:"achievements"`
}

// ErrorPayload is the minimal output emitted when the source document cannot be read.
type ErrorPayload struct {
	Error string `json:"error"`
}

// AI extraction uses this fixed skill category set.
const (
	CategoryLanguages  = "Programming Languages"
	CategoryFrameworks = "Frameworks & Libraries"
	CategoryDatabases  = "Databases"
	CategoryTools      = "Tools & Technologies"
	CategoryOther      = "Other Skills"
)

// AICategories lists the AI skill categories in their canonical order.
var AICategories = []string{
	CategoryLanguages,
	CategoryFrameworks,
	CategoryDatabases,
	CategoryTools,
	CategoryOther,
}

// DefaultAISkills returns a SkillsMap holding every AI category with no skills.
func DefaultAISkills() SkillsMap {
	var m SkillsMap
	for _, c := range AICategories {
		m.Set(c, nil)
	}
	return m
}

// CanonicalAISkills folds m into the fixed AI category set. Known categories keep their
// skills in canonical order; skills under any other label are merged into CategoryOther
// without duplicates.
func CanonicalAISkills(m SkillsMap) SkillsMap {
	out := DefaultAISkills()
	known := make(map[string]bool, len(AICategories))
	for _, c := range AICategories {
		known[c] = true
	}

	for _, c := range m.categories {
		if known[c.Name] {
			out.Set(c.Name, append([]string(nil), c.Skills...))
		}
	}

	other, _ := out.Get(CategoryOther)
	seen := make(map[string]bool, len(other))
	for _, s := range other {
		seen[s] = true
	}
	for _, c := range m.categories {
		if known[c.Name] {
			continue
		}
		for _, s := range c.Skills {
			if seen[s] {
				continue
			}
			seen[s] = true
			out.Add(CategoryOther, s)
		}
	}
	return out
}

// DefaultResult returns the canonical default-filled result carrying errMsg.
func DefaultResult(errMsg string) *ExtractionResult {
	return &ExtractionResult{
		Error:          errMsg,
		Experience:     []ExperienceEntry{},
		Projects:       []ProjectEntry{},
		Certifications: []CertificationEntry{},
		ATSAnalysis:    DefaultATSAnalysis(),
		SkillsAnalysis: DefaultSkillsAnalysis(),
	}
}

// HasSkills reports whether the result carries at least one skill worth scoring.
func (r *ExtractionResult) HasSkills() bool {
	return r.Skills.Count() > 0
}

// Core returns a copy of r without the derived fields, used as LLM prompt input.
func (r *ExtractionResult) Core() *ExtractionResult {
	return &ExtractionResult{
		Name:           r.Name,
		Email:          r.Email,
		Phone:          r.Phone,
		Location:       r.Location,
		Education:      r.Education,
		Experience:     r.Experience,
		Skills:         r.Skills,
		Projects:       r.Projects,
		Certifications: r.Certifications,
		Summary:        r.Summary,
	}
}

// Normalize replaces nil collections with empty ones.
func (r *ExtractionResult) Normalize() {
	if r.Experience == nil {
		r.Experience = []ExperienceEntry{}
	}
	for i := range r.Experience {
		if r.Experience[i].Achievements == nil {
			r.Experience[i].Achievements = StringList{}
		}
	}
	if r.Projects == nil {
		r.Projects = []ProjectEntry{}
	}
	if r.Certifications == nil {
		r.Certifications = []CertificationEntry{}
	}
	r.ATSAnalysis.Normalize()
	r.SkillsAnalysis.Normalize()
}

// MarshalJSON normalizes a copy of r before encoding it. The caller's entries are
// left untouched.
func (r ExtractionResult) MarshalJSON() ([]byte, error) {
	type alias ExtractionResult
	r.Experience = append([]ExperienceEntry(nil), r.Experience...)
	r.Normalize()
	return marshalNoEscape(alias(r))
}

// UnmarshalJSON accepts scalar values of any JSON type for the text fields.
func (r *ExtractionResult) UnmarshalJSON(data []byte) error {
	type alias ExtractionResult
	aux := struct {
		*alias
		Error    flexText `json:"error"`
		Name     flexText `json:"name"`
		Email    flexText `json:"email"`
		Phone    flexText `json:"phone"`
		Location flexText `json:"location"`
		Summary  flexText `json:"summary"`
	}{alias: (*alias)(r)}
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	r.Error = string(aux.Error)
	r.Name = string(aux.Name)
	r.Email = string(aux.Email)
	r.Phone = string(aux.Phone)
	r.Location = string(aux.Location)
	r.Summary = string(aux.Summary)
	return nil
}

// UnmarshalJSON accepts numbers for fields such as cgpa and graduationYear.
func (e *EducationRecord) UnmarshalJSON(data []byte) error {
	var aux struct {
		Degree         flexText `json:"degree"`
		University     flexText `json:"university"`
		Major          flexText `json:"major"`
		CGPA           flexText `json:"cgpa"`
		GraduationYear flexText `json:"graduationYear"`
	}
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	*e = EducationRecord{
		Degree:         string(aux.Degree),
		University:     string(aux.University),
		Major:          string(aux.Major),
		CGPA:           string(aux.CGPA),
		GraduationYear: string(aux.GraduationYear),
	}
	return nil
}

// UnmarshalJSON accepts a single achievement string in place of a list.
func (e *ExperienceEntry) UnmarshalJSON(data []byte) error {
	var aux struct {
		Company      flexText   `json:"company"`
		Position     flexText   `json:"position"`
		Duration     flexText   `json:"duration"`
		Achievements StringList `json:"achievements"`
	}
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	if aux.Achievements == nil {
		aux.Achievements = StringList{}
	}
	*e = ExperienceEntry{
		Company:      string(aux.Company),
		Position:     string(aux.Position),
		Duration:     string(aux.Duration),
		Achievements: aux.Achievements,
	}
	return nil
}
