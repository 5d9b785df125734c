package patterns

import (
	"regexp"
	"strings"
	"unicode"
)

// LabelRules builds the rule table for a "Label: value" style field. The label is
// matched literally and case-insensitively.
func LabelRules(label string) Rules {
	quoted := regexp.QuoteMeta(label)
	return Rules{
		{Name: "colon", Pattern: regexp.MustCompile(`(?i)` + quoted + `\s*:\s*(.*)`), Group: 1},
		{Name: "dash", Pattern: regexp.MustCompile(`(?i)` + quoted + `\s*-\s*(.*)`), Group: 1},
		{Name: "equals", Pattern: regexp.MustCompile(`(?i)` + quoted + `\s*=\s*(.*)`), Group: 1},
		{Name: "space", Pattern: regexp.MustCompile(`(?i)` + quoted + `\s+(.*)`), Group: 1},
	}
}

// Phone tries international punctuated numbers, then US-style numbers, then any bare run of ten or more digits.
var Phone = Rules{
	{
		Name:    "international",
		Pattern: regexp.MustCompile(`\+?\d[\d \t\-()]{7,}\d`),
		Accept:  isPunctuatedPhone,
	},
	{
		Name:    "us",
		Pattern: regexp.MustCompile(`(?:\(\d{3}\)|\b\d{3})[\s.-]?\d{3}[\s.-]?\d{4}\b`),
	},
	{
		Name:    "digits",
		Pattern: regexp.MustCompile(`\d{10,}`),
	},
}

// isPunctuatedPhone accepts candidates with at least ten digits, some separator or a
// leading "+", and balanced parentheses. Bare digit runs fall through to later rules.
func isPunctuatedPhone(value string) bool {
	digits := 0
	for _, r := range value {
		if unicode.IsDigit(r) {
			digits++
		}
	}
	if digits < 10 {
		return false
	}
	if strings.Count(value, "(") != strings.Count(value, ")") {
		return false
	}
	return strings.HasPrefix(value, "+") || strings.ContainsAny(value, " \t-()")
}

// Email is a single RFC-light address pattern.
var Email = Rules{
	{Name: "address", Pattern: regexp.MustCompile(`[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}`)},
}

// Location reads a Location, Address, or City/State label.
var Location = Rules{
	{Name: "location", Pattern: regexp.MustCompile(`(?i)Location[\s:]+([^\n]+)`), Group: 1},
	{Name: "address", Pattern: regexp.MustCompile(`(?i)Address[\s:]+([^\n]+)`), Group: 1},
	{Name: "city_state", Pattern: regexp.MustCompile(`(?i)(?:City|State)[\s:]+([^\n]+)`), Group: 1},
}

// Date kinds reported by the date extractor.
const (
	BirthDate      = "birthDate"
	JoiningDate    = "joiningDate"
	GraduationDate = "graduationDate"
)

// Dates holds one independent rule per date kind. Rule names are the date kinds.
var Dates = Rules{
	{Name: BirthDate, Pattern: regexp.MustCompile(`(?i)birth\s*(?:date|day)?[\s:]+([A-Za-z0-9\s,]+)`), Group: 1},
	{Name: JoiningDate, Pattern: regexp.MustCompile(`(?i)(?:joining|start)\s*date[\s:]+([A-Za-z0-9\s,]+)`), Group: 1},
	{Name: GraduationDate, Pattern: regexp.MustCompile(`(?i)(?:graduation|completion)\s*date[\s:]+([A-Za-z0-9\s,]+)`), Group: 1},
}

// Education rules. Each is independent and matched against the whole document.
var (
	Degree = Rules{
		{Name: "degree", Pattern: regexp.MustCompile(`(?i)(?:B\.Tech|Bachelor|Master|M\.Tech|PhD)[\s\w]*`)},
	}
	University = Rules{
		{Name: "institution", Pattern: regexp.MustCompile(`(?i)(?:University|Institute|College)[\s\w]*`)},
	}
	CGPA = Rules{
		{Name: "cgpa", Pattern: regexp.MustCompile(`(?i)(?:CGPA|GPA)[:\s]+(\d+\.?\d*)`), Group: 1},
	}
)
