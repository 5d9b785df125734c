// Package extraction implements the heuristic, regex-driven resume extractors.
package extraction

import (
	"strings"

	"github.com/jonathan/pdf-extractor/internal/patterns"
)

// maxNameWords is the longest first line still accepted as a name.
const maxNameWords = 4

// ParseName returns the first non-blank line of text when it has at most four words.
func ParseName(text string) string {
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		if len(strings.Fields(line)) <= maxNameWords {
			return line
		}
		return ""
	}
	return ""
}

// ParsePhone returns the first phone number found in text.
func ParsePhone(text string) string {
	return patterns.Phone.Find(text)
}

// ParseEmail returns the first email address found in text.
func ParseEmail(text string) string {
	return patterns.Email.Find(text)
}

// ParseLocation returns the value of the first Location, Address, City or State label.
func ParseLocation(text string) string {
	return patterns.Location.Find(text)
}

// ParseLabelField returns the value following label in text, trying the
// "Label: value", "Label - value", "Label = value" and "Label value" forms in order.
func ParseLabelField(text, label string) string {
	return patterns.LabelRules(label).Find(text)
}

// ParseDates returns the raw text of each date kind found in text.
// Kinds that are not found are absent from the result.
func ParseDates(text string) map[string]string {
	dates := make(map[string]string)
	for _, rule := range patterns.Dates {
		if value, ok := rule.Match(text); ok {
			dates[rule.Name] = value
		}
	}
	return dates
}
