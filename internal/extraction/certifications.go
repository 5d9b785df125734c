package extraction

import (
	"strings"

	"github.com/jonathan/pdf-extractor/internal/patterns"
	"github.com/jonathan/pdf-extractor/internal/types"
)

// ParseCertifications extracts certifications from the certifications slice of text.
// The slice is split on blank lines and before bullet lines; fragments that start with
// a bullet are dropped.
func ParseCertifications(text string) []types.CertificationEntry {
	body, ok := patterns.CertificationsBoundary.Slice(text)
	if !ok {
		return []types.CertificationEntry{}
	}

	certs := []types.CertificationEntry{}
	for _, fragment := range splitCertifications(body) {
		fragment = strings.TrimSpace(fragment)
		if fragment == "" || isBullet(fragment) {
			continue
		}
		certs = append(certs, types.UnstructuredCertification(fragment))
	}
	return certs
}

func splitCertifications(body string) []string {
	var fragments []string
	start := 0
	for i := 0; i < len(body); i++ {
		if body[i] != '\n' {
			continue
		}
		rest := body[i+1:]
		switch {
		case strings.HasPrefix(rest, "•"), strings.HasPrefix(rest, "-"):
			fragments = append(fragments, body[start:i])
			start = i + 1
		case strings.HasPrefix(rest, "\n"):
			fragments = append(fragments, body[start:i])
			start = i + 2
			i++
		}
	}
	return append(fragments, body[start:])
}
