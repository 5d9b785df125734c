package types

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// EntryKind tags which extraction strategy produced a project or certification entry.
type EntryKind string

const (
	// KindUnstructured entries carry only free text (local heuristic extraction).
	KindUnstructured EntryKind = "unstructured"
	// KindStructured entries carry named fields (AI extraction).
	KindStructured EntryKind = "structured"
)

// ProjectEntry is either an opaque text block or a structured project.
// Switch on Kind before reading fields.
type ProjectEntry struct {
	Kind         EntryKind
	Text         string
	Name         string
	Description  string
	Technologies StringList
	Achievements StringList
}

// UnstructuredProject wraps a raw text block.
func UnstructuredProject(text string) ProjectEntry {
	return ProjectEntry{Kind: KindUnstructured, Text: text}
}

type structuredProject struct {
	Name         flexText   `json:"name"`
	Description  flexText   `json:"description"`
	Technologies StringList `json:"technologies"`
	Achievements StringList `json:"achievements"`
}

// MarshalJSON encodes unstructured entries as a JSON string and structured ones as an object.
func (p ProjectEntry) MarshalJSON() ([]byte, error) {
	if p.Kind == KindUnstructured {
		return marshalNoEscape(p.Text)
	}
	return marshalNoEscape(struct {
		Name         string     `json:"name"`
		Description  string     `json:"description"`
		Technologies StringList `json:"technologies"`
		Achievements StringList `json:"achievements"`
	}{p.Name, p.Description, p.Technologies, p.Achievements})
}

// UnmarshalJSON implements json.Unmarshaler.
func (p *ProjectEntry) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 {
		return fmt.Errorf("project: empty value")
	}
	switch data[0] {
	case '"':
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*p = UnstructuredProject(s)
	case '{':
		var sp structuredProject
		if err := json.Unmarshal(data, &sp); err != nil {
			return err
		}
		*p = ProjectEntry{
			Kind:         KindStructured,
			Name:         string(sp.Name),
			Description:  string(sp.Description),
			Technologies: sp.Technologies,
			Achievements: sp.Achievements,
		}
	default:
		if string(data) == "null" {
			*p = ProjectEntry{Kind: KindStructured}
			return nil
		}
		return fmt.Errorf("project: unsupported JSON value %s", data)
	}
	return nil
}

// CertificationEntry is either a flat text line or a structured certification.
// Switch on Kind before reading fields.
type CertificationEntry struct {
	Kind   EntryKind
	Text   string
	Name   string
	Issuer string
	Date   string
}

// UnstructuredCertification wraps a raw text line.
func UnstructuredCertification(text string) CertificationEntry {
	return CertificationEntry{Kind: KindUnstructured, Text: text}
}

// MarshalJSON encodes unstructured entries as a JSON string and structured ones as an object.
func (c CertificationEntry) MarshalJSON() ([]byte, error) {
	if c.Kind == KindUnstructured {
		return marshalNoEscape(c.Text)
	}
	return marshalNoEscape(struct {
		Name   string `json:"name"`
		Issuer string `json:"issuer"`
		Date   string `json:"date"`
	}{c.Name, c.Issuer, c.Date})
}

// UnmarshalJSON implements json.Unmarshaler.
func (c *CertificationEntry) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 {
		return fmt.Errorf("certification: empty value")
	}
	switch data[0] {
	case '"':
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*c = UnstructuredCertification(s)
	case '{':
		var aux struct {
			Name   flexText `json:"name"`
			Issuer flexText `json:"issuer"`
			Date   flexText `json:"date"`
		}
		if err := json.Unmarshal(data, &aux); err != nil {
			return err
		}
		*c = CertificationEntry{
			Kind:   KindStructured,
			Name:   string(aux.Name),
			Issuer: string(aux.Issuer),
			Date:   string(aux.Date),
		}
	default:
		if string(data) == "null" {
			*c = CertificationEntry{Kind: KindStructured}
			return nil
		}
		return fmt.Errorf("certification: unsupported JSON value %s", data)
	}
	return nil
}
