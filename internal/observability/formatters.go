// Package observability provides formatted output utilities for verbose CLI mode.
package observability

import (
	"fmt"
	"io"
	"strings"
	"unicode/utf8"

	"github.com/jonathan/pdf-extractor/internal/pipeline/steps"
	"github.com/jonathan/pdf-extractor/internal/types"
)

const (
	// boxWidth is the default width for formatted output boxes
	boxWidth = 60
	// maxItemsToShow is the default number of items to display in lists
	maxItemsToShow = 5
)

// Printer handles formatted output for verbose mode
type Printer struct {
	out io.Writer
}

// NewPrinter creates a new Printer that writes to the given writer
func NewPrinter(out io.Writer) *Printer {
	return &Printer{out: out}
}

// printBox prints a formatted box with a title and content
//
//nolint:errcheck // writing to stderr; errors are not recoverable
func (p *Printer) printBox(title string, content string) {
	border := strings.Repeat("─", boxWidth-2)
	fmt.Fprintf(p.out, "┌%s┐\n", border)
	fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, title)
	fmt.Fprintf(p.out, "├%s┤\n", border)

	for _, line := range strings.Split(content, "\n") {
		fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, truncate(line, boxWidth-4))
	}

	fmt.Fprintf(p.out, "└%s┘\n", border)
}

// truncate shortens s to at most n runes, marking the cut with "...".
func truncate(s string, n int) string {
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	runes := []rune(s)
	return string(runes[:n-3]) + "..."
}

// PrintResult outputs every section of an extraction result.
func (p *Printer) PrintResult(result *types.ExtractionResult) {
	if result == nil {
		return
	}
	p.PrintContact(result)
	p.PrintExperience(result.Experience)
	p.PrintSkills(result.Skills)
	p.PrintScores(result)
}

// PrintContact outputs the candidate's contact details and education.
func (p *Printer) PrintContact(result *types.ExtractionResult) {
	if result == nil {
		return
	}

	var sb strings.Builder
	if result.Error != "" {
		sb.WriteString(fmt.Sprintf("⚠ %s\n\n", result.Error))
	}
	sb.WriteString(fmt.Sprintf("Name:      %s\n", orDash(result.Name)))
	sb.WriteString(fmt.Sprintf("Email:     %s\n", orDash(result.Email)))
	sb.WriteString(fmt.Sprintf("Phone:     %s\n", orDash(result.Phone)))
	sb.WriteString(fmt.Sprintf("Location:  %s\n", orDash(result.Location)))

	edu := result.Education
	if edu.Degree != "" || edu.University != "" {
		sb.WriteString("\n")
		sb.WriteString(fmt.Sprintf("Degree:    %s\n", orDash(edu.Degree)))
		sb.WriteString(fmt.Sprintf("School:    %s\n", orDash(edu.University)))
		if edu.CGPA != "" {
			sb.WriteString(fmt.Sprintf("CGPA:      %s\n", edu.CGPA))
		}
	}

	sb.WriteString(fmt.Sprintf("\nProjects: %d   Certifications: %d", len(result.Projects), len(result.Certifications)))

	p.printBox("CANDIDATE", sb.String())
}

// PrintExperience outputs the first positions with their achievement counts.
func (p *Printer) PrintExperience(entries []types.ExperienceEntry) {
	if len(entries) == 0 {
		return
	}

	var sb strings.Builder
	count := min(len(entries), maxItemsToShow)
	for i := 0; i < count; i++ {
		e := entries[i]
		sb.WriteString(fmt.Sprintf("• %s @ %s\n", orDash(e.Position), orDash(e.Company)))
		if e.Duration != "" {
			sb.WriteString(fmt.Sprintf("  %s\n", e.Duration))
		}
		if len(e.Achievements) > 0 {
			sb.WriteString(fmt.Sprintf("  %d achievements\n", len(e.Achievements)))
		}
	}
	if len(entries) > maxItemsToShow {
		sb.WriteString(fmt.Sprintf("... and %d more positions\n", len(entries)-maxItemsToShow))
	}

	p.printBox("EXPERIENCE", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintSkills outputs each skill category with its first skills.
func (p *Printer) PrintSkills(skills types.SkillsMap) {
	if skills.Count() == 0 {
		return
	}

	var sb strings.Builder
	for _, cat := range skills.Entries() {
		if len(cat.Skills) == 0 {
			continue
		}
		shown := cat.Skills[:min(len(cat.Skills), maxItemsToShow)]
		line := strings.Join(shown, ", ")
		if len(cat.Skills) > maxItemsToShow {
			line += fmt.Sprintf(" (+%d)", len(cat.Skills)-maxItemsToShow)
		}
		sb.WriteString(fmt.Sprintf("%s:\n  %s\n", cat.Name, line))
	}

	p.printBox("SKILLS", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintScores outputs the ATS and skills analysis.
func (p *Printer) PrintScores(result *types.ExtractionResult) {
	if result == nil {
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("ATS score:     %.0f\n", float64(result.ATSAnalysis.ATSScore)))
	sb.WriteString(fmt.Sprintf("Skills score:  %.0f\n", float64(result.SkillsAnalysis.OverallScore)))

	suggestions := result.ATSAnalysis.Suggestions
	if len(suggestions) > 0 {
		sb.WriteString("\nSuggestions:\n")
		count := min(len(suggestions), 3)
		for i := 0; i < count; i++ {
			sb.WriteString(fmt.Sprintf("  • %s\n", suggestions[i]))
		}
		if len(suggestions) > 3 {
			sb.WriteString(fmt.Sprintf("  ... and %d more\n", len(suggestions)-3))
		}
	}

	p.printBox("ANALYSIS", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintSteps outputs the step trace of one extraction.
func (p *Printer) PrintSteps(results []steps.StepResult) {
	if len(results) == 0 {
		return
	}

	var sb strings.Builder
	for _, r := range results {
		mark := "✓"
		switch r.Status {
		case steps.StatusFailed:
			mark = "✗"
		case steps.StatusSkipped:
			mark = "–"
		}
		sb.WriteString(fmt.Sprintf("%s %-20s %6dms\n", mark, r.Step, r.Duration))
		if r.Error != "" && r.Status == steps.StatusFailed {
			sb.WriteString(fmt.Sprintf("  %s\n", r.Error))
		}
	}

	p.printBox("PIPELINE STEPS", strings.TrimSuffix(sb.String(), "\n"))
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
