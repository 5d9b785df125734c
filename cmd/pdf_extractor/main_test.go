package main

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/pdf-extractor/internal/pdftext"
	"github.com/jonathan/pdf-extractor/internal/pipeline"
	"github.com/jonathan/pdf-extractor/internal/pipeline/steps"
	"github.com/jonathan/pdf-extractor/internal/testutil"
	"github.com/jonathan/pdf-extractor/internal/types"
)

type fakeExtractor struct {
	results map[string]*types.ExtractionResult
	err     error
}

func (f *fakeExtractor) ExtractFromPDF(_ context.Context, path string) (*pipeline.Output, error) {
	if f.err != nil {
		return nil, f.err
	}
	if r, ok := f.results[path]; ok {
		return &pipeline.Output{Result: r, Steps: []steps.StepResult{{Step: steps.Decode, Status: steps.StatusCompleted}}}, nil
	}
	cause := &pdftext.DecodeError{Path: path, Message: "failed to read file", Cause: os.ErrNotExist}
	return nil, &pipeline.DecodeError{Path: path, Cause: cause}
}

func sampleResult(name string) *types.ExtractionResult {
	r := types.DefaultResult("")
	r.Name = name
	r.Email = "jane@example.com"
	r.Summary = "Backend engineer & mentor."
	r.ATSAnalysis.ATSScore = 70
	return r
}

func execute(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	rootCmd.SetOut(&stdout)
	rootCmd.SetErr(&stderr)
	rootCmd.SetArgs(args)
	t.Cleanup(func() {
		rootCmd.SetOut(nil)
		rootCmd.SetErr(nil)
		rootCmd.SetArgs(nil)
	})

	err := rootCmd.ExecuteContext(context.Background())
	return stdout.String(), stderr.String(), err
}

func TestRootCommand_ArgumentCount(t *testing.T) {
	tests := []struct {
		name string
		args []string
	}{
		{name: "no arguments", args: []string{}},
		{name: "two arguments", args: []string{"a.pdf", "b.pdf"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			stdout, _, err := execute(t, tt.args...)
			require.Error(t, err)
			assert.Contains(t, err.Error(), "accepts 1 arg(s)")
			assert.Empty(t, stdout)
		})
	}
}

func TestRootCommand_MissingAPIKey(t *testing.T) {
	t.Setenv("LLM_PROVIDER", "")
	t.Setenv("GEMINI_API_KEY", "")

	stdout, _, err := execute(t, filepath.Join(t.TempDir(), "resume.pdf"))
	require.Error(t, err)
	assert.Empty(t, stdout)
}

func TestExtractOne_Success(t *testing.T) {
	extractor := &fakeExtractor{results: map[string]*types.ExtractionResult{"resume.pdf": sampleResult("Jane Doe")}}
	var stdout, stderr bytes.Buffer

	err := extractOne(context.Background(), extractor, "resume.pdf", outputOptions{Validate: true}, &stdout, &stderr)
	require.NoError(t, err)

	var got map[string]any
	require.NoError(t, json.Unmarshal(stdout.Bytes(), &got))
	assert.Equal(t, "Jane Doe", got["name"])
	assert.NotContains(t, got, "error")
	assert.Contains(t, stdout.String(), "engineer & mentor")
	assert.Empty(t, stderr.String())
}

func TestExtractOne_DecodeErrorPayload(t *testing.T) {
	var stdout, stderr bytes.Buffer

	err := extractOne(context.Background(), &fakeExtractor{}, "missing.pdf", outputOptions{}, &stdout, &stderr)
	require.NoError(t, err)

	var got map[string]any
	require.NoError(t, json.Unmarshal(stdout.Bytes(), &got))
	assert.Len(t, got, 1)
	assert.True(t, strings.HasPrefix(got["error"].(string), "Error processing PDF: "))
}

func TestExtractOne_UnexpectedError(t *testing.T) {
	var stdout, stderr bytes.Buffer

	err := extractOne(context.Background(), &fakeExtractor{err: errors.New("boom")}, "resume.pdf", outputOptions{}, &stdout, &stderr)
	require.Error(t, err)
	assert.Empty(t, stdout.String())
}

func TestExtractOne_ValidationFailureWritesNothing(t *testing.T) {
	bad := sampleResult("Jane Doe")
	bad.ATSAnalysis.ATSScore = 250
	extractor := &fakeExtractor{results: map[string]*types.ExtractionResult{"resume.pdf": bad}}
	var stdout, stderr bytes.Buffer

	err := extractOne(context.Background(), extractor, "resume.pdf", outputOptions{Validate: true}, &stdout, &stderr)
	require.Error(t, err)
	assert.Empty(t, stdout.String())
}

func TestExtractOne_Verbose(t *testing.T) {
	extractor := &fakeExtractor{results: map[string]*types.ExtractionResult{"resume.pdf": sampleResult("Jane Doe")}}
	var stdout, stderr bytes.Buffer

	err := extractOne(context.Background(), extractor, "resume.pdf", outputOptions{Verbose: true}, &stdout, &stderr)
	require.NoError(t, err)
	assert.Contains(t, stderr.String(), "CANDIDATE")
	assert.Contains(t, stderr.String(), "PIPELINE STEPS")
	assert.NotContains(t, stdout.String(), "CANDIDATE")
}

func TestLocalCommand(t *testing.T) {
	path := testutil.WritePDF(t, "resume.pdf", []string{"Jane Doe", "jane@example.com", "EDUCATION"})

	stdout, _, err := execute(t, "local", path)
	require.NoError(t, err)

	var got map[string]any
	require.NoError(t, json.Unmarshal([]byte(stdout), &got), stdout)
	assert.Equal(t, "jane@example.com", got["email"])
	assert.Contains(t, got, "ats_analysis")
	assert.NotContains(t, got, "error")
}

func TestLocalCommand_UnreadablePDF(t *testing.T) {
	stdout, _, err := execute(t, "local", filepath.Join(t.TempDir(), "missing.pdf"))
	require.NoError(t, err)

	var got map[string]any
	require.NoError(t, json.Unmarshal([]byte(stdout), &got))
	assert.Len(t, got, 1)
	assert.Contains(t, got["error"], "Error processing PDF: ")
}

func TestValidateCommand(t *testing.T) {
	valid, err := marshalJSON(sampleResult("Jane Doe"))
	require.NoError(t, err)
	validPath := testutil.WriteFile(t, "valid.json", string(valid))
	invalidPath := testutil.WriteFile(t, "invalid.json", `{"name": 42}`)

	stdout, _, err := execute(t, "validate", validPath)
	require.NoError(t, err)
	assert.Contains(t, stdout, "Validation passed")

	_, stderr, err := execute(t, "validate", invalidPath)
	require.Error(t, err)
	assert.Contains(t, stderr, "Validation failed")
}

func TestExtractBatch_JSONLines(t *testing.T) {
	extractor := &fakeExtractor{results: map[string]*types.ExtractionResult{
		"a.pdf": sampleResult("Ann"),
		"b.pdf": types.DefaultResult("Error processing data: quota"),
	}}
	var stdout bytes.Buffer

	summary, err := extractBatch(context.Background(), extractor, []string{"a.pdf", "b.pdf", "c.pdf"}, 2, "", &stdout, zerolog.Nop())
	require.NoError(t, err)
	assert.Equal(t, 3, summary.Total)
	assert.Equal(t, int64(1), summary.Succeeded)
	assert.Equal(t, int64(2), summary.Failed)
	assert.Len(t, summary.RunID, 36)

	lines := strings.Split(strings.TrimSpace(stdout.String()), "\n")
	require.Len(t, lines, 3)
	byFile := map[string]map[string]any{}
	for _, line := range lines {
		var rec struct {
			File   string         `json:"file"`
			Result map[string]any `json:"result"`
		}
		require.NoError(t, json.Unmarshal([]byte(line), &rec))
		byFile[rec.File] = rec.Result
	}
	assert.Equal(t, "Ann", byFile["a.pdf"]["name"])
	assert.Equal(t, "Error processing data: quota", byFile["b.pdf"]["error"])
	assert.Len(t, byFile["c.pdf"], 1)
}

func TestExtractBatch_OutDir(t *testing.T) {
	extractor := &fakeExtractor{results: map[string]*types.ExtractionResult{"in/resume.pdf": sampleResult("Jane Doe")}}
	outDir := filepath.Join(t.TempDir(), "out")

	_, err := extractBatch(context.Background(), extractor, []string{"in/resume.pdf"}, 0, outDir, &bytes.Buffer{}, zerolog.Nop())
	require.NoError(t, err)

	data, err := os.ReadFile(filepath.Join(outDir, "resume.json"))
	require.NoError(t, err)
	assert.Contains(t, string(data), `"name": "Jane Doe"`)
}

func TestExtractBatch_UnexpectedErrorAborts(t *testing.T) {
	_, err := extractBatch(context.Background(), &fakeExtractor{err: errors.New("boom")}, []string{"a.pdf"}, 1, "", &bytes.Buffer{}, zerolog.Nop())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "a.pdf")
}

func TestCollectPDFs(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"b.pdf", "a.PDF", "notes.txt"} {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte("x"), 0o644))
	}
	require.NoError(t, os.Mkdir(filepath.Join(dir, "nested.pdf"), 0o755))

	paths, err := collectPDFs([]string{dir, "missing.pdf"})
	require.NoError(t, err)
	assert.Equal(t, []string{filepath.Join(dir, "a.PDF"), filepath.Join(dir, "b.pdf"), "missing.pdf"}, paths)

	_, err = collectPDFs([]string{t.TempDir()})
	assert.Error(t, err)
}

func TestMarshalJSON_NoHTMLEscape(t *testing.T) {
	data, err := marshalJSON(map[string]string{"summary": "R&D <lead>"})
	require.NoError(t, err)
	assert.Equal(t, "{\n  \"summary\": \"R&D <lead>\"\n}\n", string(data))
}

func TestProgressPrinter(t *testing.T) {
	var buf bytes.Buffer
	cb := progressPrinter(&buf)
	cb(pipeline.ProgressEvent{Step: steps.Decode, Status: "started", Message: "decoding PDF"})
	cb(pipeline.ProgressEvent{Step: steps.Summary, Status: steps.StatusCompleted})

	assert.Equal(t, "[decode] started: decoding PDF\n[generate_summary] completed\n", buf.String())
}
