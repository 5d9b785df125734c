//nolint:revive // types is a standard Go package name pattern
package types

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultResult_JSONShape(t *testing.T) {
	result := DefaultResult("Error processing data: boom")

	data, err := json.Marshal(result)
	require.NoError(t, err)

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(data, &decoded))

	assert.Equal(t, "Error processing data: boom", decoded["error"])
	assert.Equal(t, "", decoded["name"])
	assert.Equal(t, []any{}, decoded["experience"])
	assert.Equal(t, []any{}, decoded["projects"])
	assert.Equal(t, []any{}, decoded["certifications"])
	assert.Equal(t, map[string]any{}, decoded["skills"])
	assert.NotContains(t, decoded, "dates")

	ats, ok := decoded["ats_analysis"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, float64(0), ats["ats_score"])
	assert.Equal(t, []any{}, ats["suggestions"])
	assert.Equal(t, map[string]any{}, ats["improvement_areas"])

	skills, ok := decoded["skills_analysis"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, float64(0), skills["overall_score"])
	assert.Equal(t, []any{}, skills["recommendations"])
}

func TestExtractionResult_ErrorOmittedWhenEmpty(t *testing.T) {
	result := ExtractionResult{Name: "Jane Doe"}
	data, err := json.Marshal(result)
	require.NoError(t, err)
	assert.NotContains(t, string(data), `"error"`)
	assert.Contains(t, string(data), `"experience":[]`)
}

func TestExtractionResult_UnmarshalLenientShapes(t *testing.T) {
	input := `{
		"name": "Jane Doe",
		"phone": 5551234567,
		"education": {"degree": "B.Tech", "cgpa": 8.7, "graduationYear": 2021},
		"experience": [
			{"company": "Acme", "position": "Engineer", "duration": "2020 - Present", "achievements": "Shipped it"}
		],
		"skills": {"Programming Languages": ["Go", "Python"], "Databases": "PostgreSQL", "Tools & Technologies": null},
		"projects": ["Raw project text", {"name": "Parser", "description": "PDF parser", "technologies": ["Go"]}],
		"certifications": [{"name": "CKA", "issuer": "CNCF", "date": "2023"}, "AWS SAA"],
		"ats_analysis": {
			"ats_score": "72",
			"suggestions": [{"feedback": "Add metrics", "priority": "high"}, "Use keywords"],
			"improvement_areas": {"format": [{"feedback": "Use one column"}], "content": "not a list"}
		},
		"skills_analysis": {"overall_score": 81.5, "recommendations": ["Learn Rust"]}
	}`

	var result ExtractionResult
	require.NoError(t, json.Unmarshal([]byte(input), &result))

	assert.Equal(t, "Jane Doe", result.Name)
	assert.Equal(t, "5551234567", result.Phone)
	assert.Equal(t, "8.7", result.Education.CGPA)
	assert.Equal(t, "2021", result.Education.GraduationYear)

	require.Len(t, result.Experience, 1)
	assert.Equal(t, StringList{"Shipped it"}, result.Experience[0].Achievements)

	assert.Equal(t, []string{"Programming Languages", "Databases", "Tools & Technologies"}, result.Skills.Categories())
	dbs, ok := result.Skills.Get("Databases")
	require.True(t, ok)
	assert.Equal(t, []string{"PostgreSQL"}, dbs)

	require.Len(t, result.Projects, 2)
	assert.Equal(t, KindUnstructured, result.Projects[0].Kind)
	assert.Equal(t, "Raw project text", result.Projects[0].Text)
	assert.Equal(t, KindStructured, result.Projects[1].Kind)
	assert.Equal(t, "Parser", result.Projects[1].Name)
	assert.Equal(t, StringList{"Go"}, result.Projects[1].Technologies)

	require.Len(t, result.Certifications, 2)
	assert.Equal(t, "CNCF", result.Certifications[0].Issuer)
	assert.Equal(t, KindUnstructured, result.Certifications[1].Kind)

	assert.Equal(t, Score(72), result.ATSAnalysis.ATSScore)
	assert.Equal(t, FeedbackList{"Add metrics", "Use keywords"}, result.ATSAnalysis.Suggestions)
	assert.Equal(t, FeedbackList{"Use one column"}, result.ATSAnalysis.ImprovementAreas["format"])
	assert.Equal(t, FeedbackList{}, result.ATSAnalysis.ImprovementAreas["content"])
	assert.Equal(t, Score(81.5), result.SkillsAnalysis.OverallScore)
}

func TestExtractionResult_MarshalDoesNotMutate(t *testing.T) {
	r := &ExtractionResult{
		Experience: []ExperienceEntry{{Company: "Acme", Position: "Engineer"}},
	}

	data, err := json.Marshal(r)
	require.NoError(t, err)

	assert.Contains(t, string(data), `"achievements":[]`)
	assert.Nil(t, r.Experience[0].Achievements)
	assert.Nil(t, r.Projects)
}

func TestCanonicalAISkills(t *testing.T) {
	var m SkillsMap
	m.Set("Cloud", []string{"AWS", "Go"})
	m.Set(CategoryLanguages, []string{"Go"})
	m.Set(CategoryOther, []string{"Agile"})

	got := CanonicalAISkills(m)

	assert.Equal(t, AICategories, got.Categories())
	langs, _ := got.Get(CategoryLanguages)
	assert.Equal(t, []string{"Go"}, langs)
	other, _ := got.Get(CategoryOther)
	assert.Equal(t, []string{"Agile", "AWS", "Go"}, other)
	assert.Equal(t, 4, got.Count())

	original, _ := m.Get(CategoryOther)
	assert.Equal(t, []string{"Agile"}, original)
}

func TestHasSkills(t *testing.T) {
	r := DefaultResult("")
	assert.False(t, r.HasSkills())

	r.Skills = DefaultAISkills()
	assert.False(t, r.HasSkills())

	r.Skills.Add(CategoryTools, "Docker")
	assert.True(t, r.HasSkills())
}

func TestSkillsMap_PreservesOrder(t *testing.T) {
	var m SkillsMap
	m.Set("Languages", []string{"Go", "Python"})
	m.Set("Frameworks & Libraries", []string{"React"})
	m.Add("Languages", "Rust")
	m.Set("Empty", nil)

	data, err := marshalNoEscape(m)
	require.NoError(t, err)
	assert.Equal(t, `{"Languages":["Go","Python","Rust"],"Frameworks & Libraries":["React"],"Empty":[]}`, string(data))

	var decoded SkillsMap
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, m.Categories(), decoded.Categories())
	assert.Equal(t, 4, decoded.Count())
}

func TestSkillsMap_Flatten(t *testing.T) {
	var m SkillsMap
	m.Set("A", []string{"Go", "Python", "Go"})
	m.Set("B", []string{"Python", "SQL", "Docker", "Kubernetes"})

	assert.Equal(t, []string{"Go", "Python", "SQL", "Docker", "Kubernetes"}, m.Flatten(0))
	assert.Equal(t, []string{"Go", "Python", "SQL"}, m.Flatten(3))
	assert.Empty(t, SkillsMap{}.Flatten(5))
}

func TestSkillsMap_UnmarshalRejectsArray(t *testing.T) {
	var m SkillsMap
	err := json.Unmarshal([]byte(`["Go"]`), &m)
	assert.Error(t, err)
}

func TestEntries_Marshal(t *testing.T) {
	tests := []struct {
		name  string
		value any
		want  string
	}{
		{
			name:  "unstructured project",
			value: UnstructuredProject("Resume Parser built with Go"),
			want:  `"Resume Parser built with Go"`,
		},
		{
			name:  "structured project",
			value: ProjectEntry{Kind: KindStructured, Name: "Parser"},
			want:  `{"name":"Parser","description":"","technologies":[],"achievements":[]}`,
		},
		{
			name:  "unstructured certification",
			value: UnstructuredCertification("AWS Certified Developer"),
			want:  `"AWS Certified Developer"`,
		},
		{
			name:  "structured certification",
			value: CertificationEntry{Kind: KindStructured, Name: "CKA", Issuer: "CNCF", Date: "2023"},
			want:  `{"name":"CKA","issuer":"CNCF","date":"2023"}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			data, err := json.Marshal(tt.value)
			require.NoError(t, err)
			assert.Equal(t, tt.want, string(data))
		})
	}
}

func TestScore_Unmarshal(t *testing.T) {
	tests := []struct {
		input string
		want  Score
	}{
		{`85`, 85},
		{`"85"`, 85},
		{`"85%"`, 85},
		{`72.5`, 72.5},
		{`"high"`, 0},
		{`null`, 0},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			var s Score
			require.NoError(t, json.Unmarshal([]byte(tt.input), &s))
			assert.Equal(t, tt.want, s)
		})
	}
}

func TestCore_DropsDerivedFields(t *testing.T) {
	result := DefaultResult("")
	result.Name = "Jane"
	result.ATSAnalysis.ATSScore = 90
	result.Dates = map[string]string{"birthDate": "1 Jan 1990"}

	core := result.Core()
	assert.Equal(t, "Jane", core.Name)
	assert.Equal(t, Score(0), core.ATSAnalysis.ATSScore)
	assert.Nil(t, core.Dates)
}
