// Package server provides the HTTP upload API for the PDF extractor.
package server

import (
	"fmt"
	"net/http"

	"github.com/jonathan/pdf-extractor/internal/pipeline"
)

// ErrNoFile indicates the request carried no file in the upload field
type ErrNoFile struct{}

func (e *ErrNoFile) Error() string {
	return "No PDF file uploaded"
}

// ErrFileTooLarge indicates the upload exceeded the size limit
type ErrFileTooLarge struct {
	Limit int64
}

func (e *ErrFileTooLarge) Error() string {
	return fmt.Sprintf("File size is too large. Max size is %s", formatBytes(e.Limit))
}

// ErrUnsupportedType indicates the upload is not a PDF
type ErrUnsupportedType struct {
	Filename    string
	ContentType string
}

func (e *ErrUnsupportedType) Error() string {
	return "Only PDF files are allowed"
}

// ErrInvalidPDF indicates the upload claims to be a PDF but cannot be parsed
type ErrInvalidPDF struct {
	Cause error
}

func (e *ErrInvalidPDF) Error() string {
	return fmt.Sprintf("Invalid PDF file: %v", e.Cause)
}

func (e *ErrInvalidPDF) Unwrap() error {
	return e.Cause
}

// HTTPStatus returns the appropriate HTTP status code for an error
func HTTPStatus(err error) int {
	switch err.(type) {
	case *ErrNoFile, *ErrInvalidPDF:
		return http.StatusBadRequest
	case *ErrFileTooLarge:
		return http.StatusRequestEntityTooLarge
	case *ErrUnsupportedType:
		return http.StatusUnsupportedMediaType
	case *pipeline.DecodeError:
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}

func formatBytes(n int64) string {
	const mb = 1 << 20
	if n >= mb && n%mb == 0 {
		return fmt.Sprintf("%dMB", n/mb)
	}
	if n >= 1<<10 && n%(1<<10) == 0 {
		return fmt.Sprintf("%dKB", n>>10)
	}
	return fmt.Sprintf("%d bytes", n)
}
