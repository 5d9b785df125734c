package extraction

import (
	"strings"

	"github.com/jonathan/pdf-extractor/internal/patterns"
	"github.com/jonathan/pdf-extractor/internal/types"
)

// headerSeparators split an entry header into position and company, in priority order.
var headerSeparators = []string{" at ", " - ", "|"}

// ParseExperience extracts work history entries from the experience slice of text.
func ParseExperience(text string) []types.ExperienceEntry {
	body, ok := patterns.ExperienceBoundary.Slice(text)
	if !ok {
		return []types.ExperienceEntry{}
	}

	entries := []types.ExperienceEntry{}
	for _, block := range splitEntries(body) {
		if strings.TrimSpace(block) == "" {
			continue
		}
		entry, ok := ParseExperienceBlock(block)
		if !ok {
			continue
		}
		entries = append(entries, entry)
	}
	return entries
}

// splitEntries splits body at each line break followed by a new entry header.
// The line break itself is dropped.
func splitEntries(body string) []string {
	var blocks []string
	start := 0
	for i := 0; i < len(body); i++ {
		if body[i] != '\n' {
			continue
		}
		if patterns.EntryStart.MatchString(body[i+1:]) {
			blocks = append(blocks, body[start:i])
			start = i + 1
		}
	}
	return append(blocks, body[start:])
}

// ParseExperienceBlock parses one entry. It reports false when the block has no header line.
func ParseExperienceBlock(block string) (types.ExperienceEntry, bool) {
	header, ok := headerLine(block)
	if !ok {
		return types.ExperienceEntry{}, false
	}

	duration := patterns.Duration.FindString(block)
	if duration != "" {
		header = strings.Replace(header, duration, "", 1)
	}
	header = strings.TrimRight(header, " \t,;:|-–()")

	position, company := splitHeader(header)

	return types.ExperienceEntry{
		Company:      strings.TrimSpace(company),
		Position:     strings.TrimSpace(position),
		Duration:     strings.TrimSpace(duration),
		Achievements: achievements(block),
	}, true
}

// headerLine returns the first non-blank, non-bullet line of block, cut at any inline bullet.
func headerLine(block string) (string, bool) {
	for _, line := range strings.Split(block, "\n") {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" || isBullet(trimmed) {
			continue
		}
		if i := strings.Index(trimmed, "•"); i >= 0 {
			trimmed = strings.TrimSpace(trimmed[:i])
		}
		if trimmed == "" {
			continue
		}
		return trimmed, true
	}
	return "", false
}

func splitHeader(header string) (position, company string) {
	for _, sep := range headerSeparators {
		if before, after, found := strings.Cut(header, sep); found {
			return before, after
		}
	}
	return "", header
}

func achievements(block string) types.StringList {
	out := types.StringList{}
	for _, line := range strings.Split(block, "\n") {
		line = strings.TrimSpace(line)
		if !isBullet(line) {
			continue
		}
		if item := strings.TrimSpace(strings.TrimLeft(line, "•- ")); item != "" {
			out = append(out, item)
		}
	}
	return out
}

func isBullet(line string) bool {
	return strings.HasPrefix(line, "•") || strings.HasPrefix(line, "-")
}
