package extraction

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/pdf-extractor/internal/sections"
	"github.com/jonathan/pdf-extractor/internal/types"
)

const sampleResume = `Jane Doe
Email: jane.doe@example.com
Phone: +1 415-555-0134
Location: San Francisco, CA
Date of Birth: 12 March 1996
OBJECTIVE
Backend engineer focused on reliable data systems.
EXPERIENCE
Senior Engineer at Acme 2021 - Present
• Led migration to Go
EDUCATION
B.Tech in Computer Science
National Institute of Technology
CGPA: 8.9
TECHNICAL SKILLS
Languages: Go, Python
Databases: PostgreSQL, Redis`

func TestExtract(t *testing.T) {
	got := Extract(sampleResume)

	assert.Empty(t, got.Error)
	assert.Equal(t, "Jane Doe", got.Name)
	assert.Equal(t, "jane.doe@example.com", got.Email)
	assert.Equal(t, "+1 415-555-0134", got.Phone)
	assert.Equal(t, "San Francisco, CA", got.Location)
	assert.Equal(t, types.EducationRecord{
		Degree:     "B.Tech in Computer Science",
		University: "Institute of Technology",
		CGPA:       "8.9",
	}, got.Education)

	require.Len(t, got.Experience, 1)
	assert.Equal(t, types.ExperienceEntry{
		Company:      "Acme",
		Position:     "Senior Engineer",
		Duration:     "2021 - Present",
		Achievements: types.StringList{"Led migration to Go"},
	}, got.Experience[0])

	assert.Equal(t, []string{"Languages", "Databases"}, got.Skills.Categories())
	assert.Empty(t, got.Projects)
	assert.Empty(t, got.Certifications)
	assert.Equal(t, map[string]string{"birthDate": "12 March 1996"}, got.Dates)
	assert.Equal(t,
		"Backend engineer focused on reliable data systems. Has experience in Senior Engineer at Acme 2021 - Present Skilled in Go, Python, PostgreSQL, Redis",
		got.Summary)

	assert.Equal(t, types.Score(0), got.ATSAnalysis.ATSScore)
	assert.Equal(t, types.Score(0), got.SkillsAnalysis.OverallScore)
}

func TestExtract_EmptyText(t *testing.T) {
	got := Extract("")

	assert.Empty(t, got.Name)
	assert.NotNil(t, got.Experience)
	assert.NotNil(t, got.Projects)
	assert.NotNil(t, got.Certifications)
	assert.Nil(t, got.Dates)
	assert.Empty(t, got.Summary)
}

func TestGenerateSummary(t *testing.T) {
	tests := []struct {
		name     string
		sections sections.Sections
		want     string
	}{
		{
			name: "all parts with more than five skills",
			sections: sections.Sections{
				"objective":  "Build reliable systems.",
				"experience": "Acme Corp 2020\nEngineer",
				"skills":     "Languages: Go, Python, Java\nTools: Docker, Git, Make",
			},
			want: "Build reliable systems. Has experience in Acme Corp 2020 Skilled in Go, Python, Java, Docker, Git and more",
		},
		{
			name: "exactly five uncategorized skills",
			sections: sections.Sections{
				"skills": "Go, Python\nJava, Docker, Git",
			},
			want: "Skilled in Go, Python, Java, Docker, Git",
		},
		{
			name: "experience only",
			sections: sections.Sections{
				"experience": "Globex 2019",
			},
			want: "Has experience in Globex 2019",
		},
		{
			name:     "empty",
			sections: sections.Empty(),
			want:     "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, GenerateSummary(tt.sections))
		})
	}
}
