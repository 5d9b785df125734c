// Package pdftext turns PDF documents into plain text for the extraction pipeline.
package pdftext

import (
	"context"
	"fmt"
	"os"
	"strings"

	"code.sajari.com/docconv"
	"github.com/ledongthuc/pdf"
	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"
)

// Backend names a text decoding implementation.
type Backend string

const (
	BackendLedongthuc Backend = "ledongthuc"
	BackendDocconv    Backend = "docconv"
)

// DefaultBackend is used when no backend is configured.
const DefaultBackend = BackendLedongthuc

// Decoder extracts the text of every page of a PDF, concatenated in page order.
type Decoder interface {
	Decode(ctx context.Context, path string) (string, error)
	Backend() Backend
}

// DecodeError is returned when a document cannot be opened or read.
type DecodeError struct {
	Path    string
	Message string
	Cause   error
}

func (e *DecodeError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

func (e *DecodeError) Unwrap() error {
	return e.Cause
}

// NewDecoder returns the decoder for backend. An empty backend selects DefaultBackend.
func NewDecoder(backend Backend) (Decoder, error) {
	switch backend {
	case BackendLedongthuc, "":
		return &LedongthucDecoder{}, nil
	case BackendDocconv:
		return &DocconvDecoder{}, nil
	default:
		return nil, fmt.Errorf("unknown PDF backend %q (valid: %s, %s)", backend, BackendLedongthuc, BackendDocconv)
	}
}

// LedongthucDecoder reads page text with github.com/ledongthuc/pdf.
type LedongthucDecoder struct{}

// Backend implements Decoder.
func (d *LedongthucDecoder) Backend() Backend { return BackendLedongthuc }

// Decode implements Decoder. Pages that fail to decode are skipped.
func (d *LedongthucDecoder) Decode(ctx context.Context, path string) (text string, err error) {
	if err := checkFile(path); err != nil {
		return "", err
	}

	// the reader panics on some malformed cross-reference tables
	defer func() {
		if r := recover(); r != nil {
			text = ""
			err = &DecodeError{Path: path, Message: "malformed PDF", Cause: fmt.Errorf("%v", r)}
		}
	}()

	f, reader, err := pdf.Open(path)
	if err != nil {
		return "", &DecodeError{Path: path, Message: "failed to open PDF", Cause: err}
	}
	defer f.Close()

	var sb strings.Builder
	for i := 1; i <= reader.NumPage(); i++ {
		if err := ctx.Err(); err != nil {
			return "", err
		}
		page := reader.Page(i)
		if page.V.IsNull() {
			continue
		}
		pageText, err := page.GetPlainText(nil)
		if err != nil {
			continue
		}
		sb.WriteString(pageText)
		sb.WriteString("\n")
	}

	return normalize(sb.String()), nil
}

// DocconvDecoder converts documents with code.sajari.com/docconv.
// PDF conversion shells out to pdftotext, which must be installed.
type DocconvDecoder struct{}

// Backend implements Decoder.
func (d *DocconvDecoder) Backend() Backend { return BackendDocconv }

// Decode implements Decoder.
func (d *DocconvDecoder) Decode(ctx context.Context, path string) (string, error) {
	if err := checkFile(path); err != nil {
		return "", err
	}
	if err := ctx.Err(); err != nil {
		return "", err
	}

	res, err := docconv.ConvertPath(path)
	if err != nil {
		return "", &DecodeError{Path: path, Message: "failed to convert PDF", Cause: err}
	}
	return normalize(res.Body), nil
}

// Info describes the structure of a PDF file.
type Info struct {
	Path      string `json:"path"`
	PageCount int    `json:"page_count"`
	Encrypted bool   `json:"encrypted"`
}

// Inspect parses the document structure with pdfcpu in relaxed validation mode.
// It fails on files that are not PDFs, which makes it a cheap upload check.
func Inspect(path string) (*Info, error) {
	if err := checkFile(path); err != nil {
		return nil, err
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, &DecodeError{Path: path, Message: "failed to open PDF", Cause: err}
	}
	defer f.Close()

	conf := model.NewDefaultConfiguration()
	conf.ValidationMode = model.ValidationRelaxed

	pdfCtx, err := api.ReadContext(f, conf)
	if err != nil {
		return nil, &DecodeError{Path: path, Message: "failed to parse PDF structure", Cause: err}
	}
	if err := pdfCtx.EnsurePageCount(); err != nil {
		return nil, &DecodeError{Path: path, Message: "failed to count pages", Cause: err}
	}

	return &Info{
		Path:      path,
		PageCount: pdfCtx.PageCount,
		Encrypted: pdfCtx.Encrypt != nil,
	}, nil
}

func checkFile(path string) error {
	info, err := os.Stat(path)
	if err != nil {
		return &DecodeError{Path: path, Message: "failed to read file", Cause: err}
	}
	if info.IsDir() {
		return &DecodeError{Path: path, Message: fmt.Sprintf("%s is a directory", path)}
	}
	return nil
}

// normalize converts line endings to \n.
func normalize(text string) string {
	text = strings.ReplaceAll(text, "\r\n", "\n")
	return strings.ReplaceAll(text, "\r", "\n")
}
