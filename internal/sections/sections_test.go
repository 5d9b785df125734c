package sections

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSegment_NoHeaders(t *testing.T) {
	tests := []string{
		"",
		"Jane Doe\njane@example.com\n555 123 4567",
		"   \n\n\t",
	}

	for _, text := range tests {
		got := Segment(text)
		assert.Len(t, got, 6)
		for key, value := range got {
			assert.Empty(t, value, "section %s", key)
		}
	}
}

func TestSegment_Basic(t *testing.T) {
	got := Segment("EDUCATION\nBTech CS\nEXPERIENCE\nAcme Corp 2020")

	assert.Equal(t, Sections{
		"objective":      "",
		"education":      "BTech CS",
		"experience":     "Acme Corp 2020",
		"skills":         "",
		"projects":       "",
		"certifications": "",
	}, got)
}

func TestSegment_DropsPreambleAndBlankLines(t *testing.T) {
	text := `Jane Doe
jane@example.com

Career Objective
  Build reliable systems.

Technical Skills
Go, Python

   Docker
Certifications
AWS Certified Developer`

	got := Segment(text)

	assert.Equal(t, "Build reliable systems.", got.Objective())
	assert.Equal(t, "Go, Python\nDocker", got.Skills())
	assert.Equal(t, "AWS Certified Developer", got.Certifications())
	assert.Empty(t, got.Experience())
}

func TestSegment_RepeatedHeaderOverwrites(t *testing.T) {
	tests := []struct {
		name   string
		text   string
		skills string
	}{
		{
			name:   "last occurrence wins",
			text:   "SKILLS\nGo\nEXPERIENCE\nAcme 2020\nSKILLS\nRust\n",
			skills: "Rust",
		},
		{
			name:   "empty repeat followed by a header clears the section",
			text:   "SKILLS\nGo\nSKILLS\nOBJECTIVE\nhi\n",
			skills: "",
		},
		{
			name:   "empty repeat at end of input keeps the earlier body",
			text:   "Skills\nGo\nSkills",
			skills: "Go",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Segment(tt.text)
			assert.Equal(t, tt.skills, got.Skills())
		})
	}
}

func TestSegment_RepeatedHeaderKeepsOtherSections(t *testing.T) {
	got := Segment("Experience\nAcme 2020\nEducation\nBTech\nExperience\nGlobex 2018")

	assert.Equal(t, "Globex 2018", got.Experience())
	assert.Equal(t, "BTech", got.Education())
}

func TestSegment_PriorityOrder(t *testing.T) {
	// "Academic Projects" matches both education and projects keywords.
	got := Segment("Academic Projects\nCompiler in Go")

	assert.Equal(t, "Compiler in Go", got.Education())
	assert.Empty(t, got.Projects())
}
