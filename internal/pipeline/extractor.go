// Package pipeline orchestrates extraction of one resume document: decoding, AI analysis
// and per-field enrichment with default fallbacks.
package pipeline

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/jonathan/pdf-extractor/internal/extraction"
	"github.com/jonathan/pdf-extractor/internal/pdftext"
	"github.com/jonathan/pdf-extractor/internal/pipeline/steps"
	"github.com/jonathan/pdf-extractor/internal/types"
)

// Analyzer is the AI capability the extractor composes. *analysis.Service implements it.
type Analyzer interface {
	AnalyzeResume(ctx context.Context, text string) (*types.ExtractionResult, error)
	EnhanceExtraction(ctx context.Context, initial *types.ExtractionResult, text string) (*types.ExtractionResult, error)
	GenerateSummary(ctx context.Context, result *types.ExtractionResult) (string, error)
	CalculateATSScore(ctx context.Context, result *types.ExtractionResult) (types.ATSAnalysis, error)
	ScoreTechnicalSkills(ctx context.Context, skills types.SkillsMap) (types.SkillsAnalysis, error)
}

// ProgressEvent represents a progress update during extraction
type ProgressEvent struct {
	Path    string            `json:"path,omitempty"`
	Step    string            `json:"step"`
	Status  string            `json:"status"`
	Message string            `json:"message,omitempty"`
	Result  *steps.StepResult `json:"result,omitempty"`
}

// ProgressCallback is called when extraction progress occurs
type ProgressCallback func(event ProgressEvent)

// Options holds configuration for the extractor
type Options struct {
	// Enhance runs a review pass over the first AI extraction.
	Enhance bool
	// HeuristicFallback fills the default result's core fields from local extraction
	// when the AI analysis fails.
	HeuristicFallback bool
	// Timeout bounds one document's extraction. Zero means no limit.
	Timeout    time.Duration
	OnProgress ProgressCallback
}

// DecodeError is returned when the source document cannot be read. It is the only
// failure ExtractFromPDF reports as an error.
type DecodeError struct {
	Path  string
	Cause error
}

func (e *DecodeError) Error() string {
	return e.Cause.Error()
}

func (e *DecodeError) Unwrap() error {
	return e.Cause
}

// Payload returns the minimal output emitted for an unreadable document.
func (e *DecodeError) Payload() types.ErrorPayload {
	return types.ErrorPayload{Error: fmt.Sprintf("Error processing PDF: %s", e.Cause)}
}

// Output is the result of one extraction together with its step trace.
type Output struct {
	Result *types.ExtractionResult
	Steps  []steps.StepResult
}

// Extractor turns PDF files into extraction results.
type Extractor struct {
	decoder  pdftext.Decoder
	analyzer Analyzer
	opts     Options
	log      zerolog.Logger
}

// New creates an Extractor.
func New(decoder pdftext.Decoder, analyzer Analyzer, log zerolog.Logger, opts Options) *Extractor {
	return &Extractor{
		decoder:  decoder,
		analyzer: analyzer,
		opts:     opts,
		log:      log.With().Str("component", "pipeline").Logger(),
	}
}

// ExtractFromPDF decodes the file at path and extracts it. Only a decode failure is
// returned as an error (*DecodeError); AI failures are folded into the result.
func (e *Extractor) ExtractFromPDF(ctx context.Context, path string) (*Output, error) {
	if e.opts.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, e.opts.Timeout)
		defer cancel()
	}

	trace := &steps.Trace{}
	log := e.log.With().Str("path", path).Logger()

	start := time.Now()
	e.emit(path, steps.Decode, "started", "decoding PDF", nil)
	text, err := e.decoder.Decode(ctx, path)
	if err != nil {
		res := trace.Record(steps.Decode, steps.StatusFailed, start, err)
		e.emit(path, steps.Decode, steps.StatusFailed, err.Error(), &res)
		log.Error().Err(err).Msg("failed to decode PDF")
		return nil, &DecodeError{Path: path, Cause: err}
	}
	res := trace.Record(steps.Decode, steps.StatusCompleted, start, nil)
	e.emit(path, steps.Decode, steps.StatusCompleted, fmt.Sprintf("decoded %d characters", len(text)), &res)
	log.Debug().Int("chars", len(text)).Str("backend", string(e.decoder.Backend())).Msg("decoded PDF")

	result := e.extract(ctx, path, text, trace, log)
	return &Output{Result: result, Steps: trace.Results()}, nil
}

// ExtractFromText runs the analysis and enrichment stages on already decoded text.
func (e *Extractor) ExtractFromText(ctx context.Context, text string) *Output {
	trace := &steps.Trace{}
	trace.Record(steps.Decode, steps.StatusCompleted, time.Now(), nil)
	result := e.extract(ctx, "", text, trace, e.log)
	return &Output{Result: result, Steps: trace.Results()}
}

func (e *Extractor) extract(ctx context.Context, path, text string, trace *steps.Trace, log zerolog.Logger) *types.ExtractionResult {
	result, ok := e.analyze(ctx, path, text, trace, log)
	if !ok {
		return result
	}

	if e.opts.Enhance {
		result = e.enhance(ctx, path, result, text, trace, log)
	}

	e.enrich(ctx, path, result, trace, log)
	result.Normalize()
	return result
}

// analyze runs the primary AI extraction. On failure it returns the default result
// carrying the error, optionally filled from local heuristics, and false.
func (e *Extractor) analyze(ctx context.Context, path, text string, trace *steps.Trace, log zerolog.Logger) (*types.ExtractionResult, bool) {
	start := time.Now()
	e.emit(path, steps.Analyze, "started", "running AI analysis", nil)

	result, err := e.analyzer.AnalyzeResume(ctx, text)
	if err == nil {
		res := trace.Record(steps.Analyze, steps.StatusCompleted, start, nil)
		e.emit(path, steps.Analyze, steps.StatusCompleted, "AI analysis complete", &res)
		return result, true
	}

	res := trace.Record(steps.Analyze, steps.StatusFailed, start, err)
	e.emit(path, steps.Analyze, steps.StatusFailed, err.Error(), &res)
	log.Error().Err(err).Msg("AI analysis failed, using default result")

	fallback := types.DefaultResult(fmt.Sprintf("Error processing data: %s", err))
	if e.opts.HeuristicFallback {
		start = time.Now()
		extraction.Fill(fallback, text)
		res = trace.Record(steps.HeuristicFallback, steps.StatusCompleted, start, nil)
		e.emit(path, steps.HeuristicFallback, steps.StatusCompleted, "filled core fields locally", &res)
	}

	for _, step := range []string{steps.Enhance, steps.Summary, steps.ATSScore, steps.SkillsScore} {
		if depErr := steps.ValidateDependencies(trace, step); depErr != nil {
			trace.Record(step, steps.StatusSkipped, time.Now(), depErr)
		}
	}
	return fallback, false
}

// enhance runs the review pass. Failure keeps the initial extraction.
func (e *Extractor) enhance(ctx context.Context, path string, initial *types.ExtractionResult, text string, trace *steps.Trace, log zerolog.Logger) *types.ExtractionResult {
	start := time.Now()
	enhanced, err := e.analyzer.EnhanceExtraction(ctx, initial, text)
	if err != nil {
		res := trace.Record(steps.Enhance, steps.StatusFailed, start, err)
		e.emit(path, steps.Enhance, steps.StatusFailed, err.Error(), &res)
		log.Warn().Err(err).Msg("enhancement failed, keeping initial extraction")
		return initial
	}
	res := trace.Record(steps.Enhance, steps.StatusCompleted, start, nil)
	e.emit(path, steps.Enhance, steps.StatusCompleted, "extraction reviewed", &res)
	return enhanced
}

// enrich attaches summary and scores. Each call site has its own default.
func (e *Extractor) enrich(ctx context.Context, path string, result *types.ExtractionResult, trace *steps.Trace, log zerolog.Logger) {
	start := time.Now()
	summary, err := e.analyzer.GenerateSummary(ctx, result)
	if err != nil {
		log.Warn().Err(err).Msg("summary generation failed")
		summary = ""
	}
	result.Summary = summary
	e.finish(path, trace, steps.Summary, start, err)

	start = time.Now()
	ats, err := e.analyzer.CalculateATSScore(ctx, result)
	if err != nil {
		log.Warn().Err(err).Msg("ATS scoring failed")
		ats = types.DefaultATSAnalysis()
	}
	result.ATSAnalysis = ats
	e.finish(path, trace, steps.ATSScore, start, err)

	start = time.Now()
	if !result.HasSkills() {
		result.SkillsAnalysis = types.DefaultSkillsAnalysis()
		res := trace.Record(steps.SkillsScore, steps.StatusSkipped, start, nil)
		e.emit(path, steps.SkillsScore, steps.StatusSkipped, "no skills to score", &res)
		return
	}
	scored, err := e.analyzer.ScoreTechnicalSkills(ctx, result.Skills)
	if err != nil {
		log.Warn().Err(err).Msg("skills scoring failed")
		scored = types.DefaultSkillsAnalysis()
	}
	result.SkillsAnalysis = scored
	e.finish(path, trace, steps.SkillsScore, start, err)
}

func (e *Extractor) finish(path string, trace *steps.Trace, step string, start time.Time, err error) {
	status := steps.StatusCompleted
	msg := ""
	if err != nil {
		status = steps.StatusFailed
		msg = err.Error()
	}
	res := trace.Record(step, status, start, err)
	e.emit(path, step, status, msg, &res)
}

func (e *Extractor) emit(path, step, status, message string, res *steps.StepResult) {
	if e.opts.OnProgress == nil {
		return
	}
	e.opts.OnProgress(ProgressEvent{
		Path:    path,
		Step:    step,
		Status:  status,
		Message: message,
		Result:  res,
	})
}
