package types

// ATSAnalysis is the applicant-tracking-system compatibility report.
type ATSAnalysis struct {
	ATSScore         Score            `json:"ats_score"`
	SectionScores    ScoreMap         `json:"section_scores"`
	MatchingSkills   StringList       `json:"matching_skills"`
	MissingSkills    StringList       `json:"missing_skills"`
	KeywordAnalysis  KeywordAnalysis  `json:"keyword_analysis"`
	Suggestions      FeedbackList     `json:"suggestions"`
	ImprovementAreas ImprovementAreas `json:"improvement_areas"`
}

// KeywordAnalysis lists industry keywords found in and missing from a resume.
type KeywordAnalysis struct {
	FoundKeywords   StringList `json:"found_keywords"`
	MissingKeywords StringList `json:"missing_keywords"`
}

// SkillsAnalysis is the technical-skills quality report.
type SkillsAnalysis struct {
	OverallScore    Score      `json:"overall_score"`
	CategoryScores  ScoreMap   `json:"category_scores"`
	Recommendations StringList `json:"recommendations"`
}

// ScoreMap maps a label to a score and encodes nil as {}.
type ScoreMap map[string]Score

// MarshalJSON implements json.Marshaler.
func (m ScoreMap) MarshalJSON() ([]byte, error) {
	if m == nil {
		return []byte("{}"), nil
	}
	return marshalNoEscape(map[string]Score(m))
}

// ImprovementAreas maps an area (format, content, keywords, experience) to feedback
// items and encodes nil as {}.
type ImprovementAreas map[string]FeedbackList

// MarshalJSON implements json.Marshaler.
func (a ImprovementAreas) MarshalJSON() ([]byte, error) {
	if a == nil {
		return []byte("{}"), nil
	}
	return marshalNoEscape(map[string]FeedbackList(a))
}

// DefaultATSAnalysis returns the zero-score ATS report.
func DefaultATSAnalysis() ATSAnalysis {
	a := ATSAnalysis{}
	a.Normalize()
	return a
}

// DefaultSkillsAnalysis returns the zero-score skills report.
func DefaultSkillsAnalysis() SkillsAnalysis {
	s := SkillsAnalysis{}
	s.Normalize()
	return s
}

// Normalize replaces nil collections with empty ones.
func (a *ATSAnalysis) Normalize() {
	if a.SectionScores == nil {
		a.SectionScores = ScoreMap{}
	}
	if a.MatchingSkills == nil {
		a.MatchingSkills = StringList{}
	}
	if a.MissingSkills == nil {
		a.MissingSkills = StringList{}
	}
	if a.KeywordAnalysis.FoundKeywords == nil {
		a.KeywordAnalysis.FoundKeywords = StringList{}
	}
	if a.KeywordAnalysis.MissingKeywords == nil {
		a.KeywordAnalysis.MissingKeywords = StringList{}
	}
	if a.Suggestions == nil {
		a.Suggestions = FeedbackList{}
	}
	if a.ImprovementAreas == nil {
		a.ImprovementAreas = ImprovementAreas{}
	}
}

// Normalize replaces nil collections with empty ones.
func (s *SkillsAnalysis) Normalize() {
	if s.CategoryScores == nil {
		s.CategoryScores = ScoreMap{}
	}
	if s.Recommendations == nil {
		s.Recommendations = StringList{}
	}
}
