package extraction

import (
	"github.com/jonathan/pdf-extractor/internal/sections"
	"github.com/jonathan/pdf-extractor/internal/types"
)

// Extract runs every heuristic extractor over text and assembles a result. The
// analysis fields are left at their zero-score defaults.
func Extract(text string) *types.ExtractionResult {
	result := types.DefaultResult("")
	Fill(result, text)
	return result
}

// Fill overwrites the core fields of result with the heuristic extraction of text.
func Fill(result *types.ExtractionResult, text string) {
	result.Name = ParseName(text)
	result.Email = ParseEmail(text)
	result.Phone = ParsePhone(text)
	result.Location = ParseLocation(text)
	result.Education = ParseEducation(text)
	result.Experience = ParseExperience(text)
	result.Skills = ParseTechnicalSkills(text)
	result.Projects = ParseProjects(text)
	result.Certifications = ParseCertifications(text)
	result.Summary = GenerateSummary(sections.Segment(text))

	if dates := ParseDates(text); len(dates) > 0 {
		result.Dates = dates
	}
}
