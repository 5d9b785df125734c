package extraction

import (
	"github.com/jonathan/pdf-extractor/internal/patterns"
	"github.com/jonathan/pdf-extractor/internal/types"
)

// ParseEducation scans the whole document for a degree, an institution and a CGPA.
// Major and graduation year are not detected and stay empty.
func ParseEducation(text string) types.EducationRecord {
	return types.EducationRecord{
		Degree:     patterns.Degree.Find(text),
		University: patterns.University.Find(text),
		CGPA:       patterns.CGPA.Find(text),
	}
}
