package extraction

import (
	"strings"
	"unicode/utf8"

	"github.com/jonathan/pdf-extractor/internal/patterns"
	"github.com/jonathan/pdf-extractor/internal/types"
)

// minProjectLen is the rune count a project block must exceed to be kept.
const minProjectLen = 10

// blockSplitter groups the lines of a projects slice into candidate blocks.
type blockSplitter func(lines []string) []string

// projectSplitters are tried in order; the first yielding a block longer than
// minProjectLen wins.
var projectSplitters = []blockSplitter{
	titleBlocks,
	bulletBlocks,
}

// ParseProjects extracts project descriptions from the projects slice of text.
// Each project is kept as an opaque text block.
func ParseProjects(text string) []types.ProjectEntry {
	body, ok := patterns.ProjectsBoundary.Slice(text)
	if !ok {
		return []types.ProjectEntry{}
	}

	lines := strings.Split(body, "\n")
	for _, split := range projectSplitters {
		var projects []types.ProjectEntry
		for _, block := range split(lines) {
			block = strings.TrimSpace(block)
			if utf8.RuneCountInString(block) > minProjectLen {
				projects = append(projects, types.UnstructuredProject(block))
			}
		}
		if len(projects) > 0 {
			return projects
		}
	}
	return []types.ProjectEntry{}
}

// titleBlocks starts a block at a line beginning with a capital letter and holding no
// bullet. The block takes the following bullet-free lines, then any bullet lines.
func titleBlocks(lines []string) []string {
	var blocks []string
	for i := 0; i < len(lines); {
		if !isTitleLine(lines[i]) {
			i++
			continue
		}

		end := i + 1
		for end < len(lines) && !strings.Contains(lines[end], "•") {
			end++
		}
		for end < len(lines) {
			next := nextNonBlank(lines, end)
			if next == len(lines) || !startsWithBullet(lines[next]) {
				break
			}
			end = next + 1
		}

		blocks = append(blocks, strings.Join(lines[i:end], "\n"))
		i = end
	}
	return blocks
}

// bulletBlocks starts a block at each bullet line. The block takes the following
// bullet-free lines.
func bulletBlocks(lines []string) []string {
	var blocks []string
	for i := 0; i < len(lines); {
		if !startsWithBullet(lines[i]) || strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(lines[i]), "•")) == "" {
			i++
			continue
		}

		end := i + 1
		for end < len(lines) && !strings.Contains(lines[end], "•") {
			end++
		}

		blocks = append(blocks, strings.Join(lines[i:end], "\n"))
		i = end
	}
	return blocks
}

func isTitleLine(line string) bool {
	trimmed := strings.TrimLeft(line, " \t")
	if trimmed == "" || strings.Contains(trimmed, "•") {
		return false
	}
	return trimmed[0] >= 'A' && trimmed[0] <= 'Z'
}

func startsWithBullet(line string) bool {
	return strings.HasPrefix(strings.TrimLeft(line, " \t"), "•")
}

func nextNonBlank(lines []string, from int) int {
	for from < len(lines) && strings.TrimSpace(lines[from]) == "" {
		from++
	}
	return from
}
