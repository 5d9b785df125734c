package server

import (
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jonathan/pdf-extractor/internal/pipeline"
)

func TestErrorMessages(t *testing.T) {
	assert.Equal(t, "No PDF file uploaded", (&ErrNoFile{}).Error())
	assert.Equal(t, "File size is too large. Max size is 5MB", (&ErrFileTooLarge{Limit: 5 << 20}).Error())
	assert.Equal(t, "Only PDF files are allowed", (&ErrUnsupportedType{Filename: "a.txt"}).Error())

	cause := errors.New("no xref")
	invalid := &ErrInvalidPDF{Cause: cause}
	assert.Equal(t, "Invalid PDF file: no xref", invalid.Error())
	assert.ErrorIs(t, invalid, cause)
}

func TestHTTPStatus(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected int
	}{
		{name: "ErrNoFile", err: &ErrNoFile{}, expected: http.StatusBadRequest},
		{name: "ErrInvalidPDF", err: &ErrInvalidPDF{Cause: errors.New("x")}, expected: http.StatusBadRequest},
		{name: "ErrFileTooLarge", err: &ErrFileTooLarge{Limit: 1}, expected: http.StatusRequestEntityTooLarge},
		{name: "ErrUnsupportedType", err: &ErrUnsupportedType{}, expected: http.StatusUnsupportedMediaType},
		{name: "DecodeError", err: &pipeline.DecodeError{Cause: errors.New("x")}, expected: http.StatusUnprocessableEntity},
		{name: "unknown error", err: errors.New("boom"), expected: http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, HTTPStatus(tt.err))
		})
	}
}

func TestFormatBytes(t *testing.T) {
	assert.Equal(t, "5MB", formatBytes(5<<20))
	assert.Equal(t, "512KB", formatBytes(512<<10))
	assert.Equal(t, "1500 bytes", formatBytes(1500))
}
