// Package analysis wraps the LLM calls that extract, review, summarize and score a resume.
package analysis

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/rs/zerolog"

	"github.com/jonathan/pdf-extractor/internal/llm"
	"github.com/jonathan/pdf-extractor/internal/prompts"
	"github.com/jonathan/pdf-extractor/internal/types"
)

// Service runs resume analysis prompts against an LLM client.
type Service struct {
	client llm.Client
	log    zerolog.Logger
}

// NewService creates a Service.
func NewService(client llm.Client, log zerolog.Logger) *Service {
	return &Service{
		client: client,
		log:    log.With().Str("component", "analysis").Logger(),
	}
}

// AnalyzeResume extracts the core resume fields from raw text.
// The returned result has zero-score analysis fields and no summary.
func (s *Service) AnalyzeResume(ctx context.Context, text string) (*types.ExtractionResult, error) {
	prompt, err := prompts.Render(prompts.AnalysisFile, prompts.KeyAnalyzeResume, map[string]string{
		"ResumeText": text,
	})
	if err != nil {
		return nil, err
	}

	var result types.ExtractionResult
	if err := s.generateJSON(ctx, "analyze resume", prompt, llm.TierStandard, &result); err != nil {
		return nil, err
	}

	return aiCore(&result), nil
}

// EnhanceExtraction asks the model to review and complete an existing extraction
// against the original text.
func (s *Service) EnhanceExtraction(ctx context.Context, initial *types.ExtractionResult, text string) (*types.ExtractionResult, error) {
	extraction, err := promptJSON(initial.Core())
	if err != nil {
		return nil, &ParseError{Message: "encode extraction", Cause: err}
	}

	prompt, err := prompts.Render(prompts.AnalysisFile, prompts.KeyEnhanceExtraction, map[string]string{
		"ExtractionJSON": extraction,
		"ResumeText":     text,
	})
	if err != nil {
		return nil, err
	}

	var result types.ExtractionResult
	if err := s.generateJSON(ctx, "enhance extraction", prompt, llm.TierAdvanced, &result); err != nil {
		return nil, err
	}

	return aiCore(&result), nil
}

// GenerateSummary writes a short professional summary of the extracted resume.
func (s *Service) GenerateSummary(ctx context.Context, result *types.ExtractionResult) (string, error) {
	data, err := promptJSON(result.Core())
	if err != nil {
		return "", &ParseError{Message: "encode resume", Cause: err}
	}

	prompt, err := prompts.Render(prompts.AnalysisFile, prompts.KeyResumeSummary, map[string]string{
		"ResumeJSON": data,
	})
	if err != nil {
		return "", err
	}

	summary, err := s.client.GenerateContent(ctx, prompt, llm.TierLite)
	if err != nil {
		return "", &APICallError{Message: "generate summary", Cause: err}
	}
	return strings.TrimSpace(summary), nil
}

// CalculateATSScore scores the resume for applicant-tracking-system compatibility.
func (s *Service) CalculateATSScore(ctx context.Context, result *types.ExtractionResult) (types.ATSAnalysis, error) {
	data, err := promptJSON(result.Core())
	if err != nil {
		return types.DefaultATSAnalysis(), &ParseError{Message: "encode resume", Cause: err}
	}

	prompt, err := prompts.Render(prompts.AnalysisFile, prompts.KeyATSScore, map[string]string{
		"ResumeJSON": data,
	})
	if err != nil {
		return types.DefaultATSAnalysis(), err
	}

	var ats types.ATSAnalysis
	if err := s.generateJSON(ctx, "calculate ATS score", prompt, llm.TierStandard, &ats); err != nil {
		return types.DefaultATSAnalysis(), err
	}
	ats.Normalize()
	return ats, nil
}

// ScoreTechnicalSkills rates the skills map by relevance and market demand.
func (s *Service) ScoreTechnicalSkills(ctx context.Context, skills types.SkillsMap) (types.SkillsAnalysis, error) {
	data, err := promptJSON(skills)
	if err != nil {
		return types.DefaultSkillsAnalysis(), &ParseError{Message: "encode skills", Cause: err}
	}

	prompt, err := prompts.Render(prompts.AnalysisFile, prompts.KeySkillsScore, map[string]string{
		"SkillsJSON": data,
	})
	if err != nil {
		return types.DefaultSkillsAnalysis(), err
	}

	var scored types.SkillsAnalysis
	if err := s.generateJSON(ctx, "score technical skills", prompt, llm.TierStandard, &scored); err != nil {
		return types.DefaultSkillsAnalysis(), err
	}
	scored.Normalize()
	return scored, nil
}

// generateJSON calls the model and decodes its cleaned response into v.
func (s *Service) generateJSON(ctx context.Context, op, prompt string, tier llm.ModelTier, v any) error {
	s.log.Debug().Str("op", op).Str("model", s.client.GetModel(tier)).Int("prompt_chars", len(prompt)).Msg("calling LLM")

	raw, err := s.client.GenerateJSON(ctx, prompt, tier)
	if err != nil {
		return &APICallError{Message: op, Cause: err}
	}

	if err := llm.DecodeJSONResponse(raw, v); err != nil {
		s.log.Debug().Str("op", op).Str("response", truncate(raw, 500)).Msg("unparseable LLM response")
		return &ParseError{Message: op, Cause: err}
	}
	return nil
}

// aiCore keeps the extracted fields of a model response, with skills folded into
// the fixed category set.
func aiCore(result *types.ExtractionResult) *types.ExtractionResult {
	core := result.Core()
	core.Summary = ""
	core.Skills = types.CanonicalAISkills(core.Skills)
	core.Normalize()
	return core
}

// promptJSON renders v as indented JSON without HTML escaping.
func promptJSON(v any) (string, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return "", fmt.Errorf("failed to encode prompt data: %w", err)
	}
	return strings.TrimSpace(buf.String()), nil
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
