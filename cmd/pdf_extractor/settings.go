package main

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"math"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/jonathan/pdf-extractor/internal/analysis"
	"github.com/jonathan/pdf-extractor/internal/config"
	"github.com/jonathan/pdf-extractor/internal/llm"
	"github.com/jonathan/pdf-extractor/internal/logger"
	"github.com/jonathan/pdf-extractor/internal/pdftext"
	"github.com/jonathan/pdf-extractor/internal/pipeline"
)

// loadSettings resolves the config file, environment and defaults, then applies
// the flags that were explicitly set.
func loadSettings(cmd *cobra.Command) (config.Config, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return config.Config{}, fmt.Errorf("failed to load config: %w", err)
	}

	flags := cmd.Flags()
	if flags.Changed("provider") {
		cfg.Provider = providerName
	}
	if flags.Changed("backend") {
		cfg.PDFBackend = backendName
	}
	if flags.Changed("log-level") {
		cfg.LogLevel = logLevel
	}
	if flags.Changed("timeout") {
		cfg.TimeoutSeconds = int(math.Ceil(timeout.Seconds()))
	}
	if flags.Changed("verbose") {
		cfg.Verbose = verbose
	}
	if flags.Changed("enhance") {
		cfg.Enhance = enhance
	}
	if flags.Changed("heuristic-fallback") {
		cfg.HeuristicFallback = heuristicFallback
	}

	if err := cfg.Validate(); err != nil {
		return config.Config{}, err
	}
	return cfg, nil
}

// newLogger builds the stderr logger. Verbose runs log at debug level.
func newLogger(cfg config.Config) zerolog.Logger {
	lc := cfg.LoggerConfig()
	if cfg.Verbose && lc.Level != "debug" {
		lc.Level = "debug"
		lc.Format = "pretty"
	}
	return logger.New(lc)
}

// newExtractor wires the decoder, LLM client and analysis service into a pipeline.
// The returned close function releases the LLM client.
func newExtractor(ctx context.Context, cfg config.Config, log zerolog.Logger, onProgress pipeline.ProgressCallback) (*pipeline.Extractor, func() error, error) {
	decoder, err := pdftext.NewDecoder(pdftext.Backend(cfg.PDFBackend))
	if err != nil {
		return nil, nil, err
	}

	llmCfg, err := cfg.LLMConfig()
	if err != nil {
		return nil, nil, err
	}
	client, err := llm.NewClient(ctx, llmCfg, cfg.APIKey())
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create LLM client: %w", err)
	}

	log.Debug().
		Str("provider", string(llmCfg.Provider)).
		Str("model", client.GetModel(llm.TierStandard)).
		Str("backend", string(decoder.Backend())).
		Msg("extractor configured")

	service := analysis.NewService(client, log)
	extractor := pipeline.New(decoder, service, log, pipeline.Options{
		Enhance:           cfg.Enhance,
		HeuristicFallback: cfg.HeuristicFallback,
		Timeout:           cfg.Timeout(),
		OnProgress:        onProgress,
	})
	return extractor, client.Close, nil
}

// progressPrinter reports pipeline progress on w.
func progressPrinter(w io.Writer) pipeline.ProgressCallback {
	return func(event pipeline.ProgressEvent) {
		if event.Message == "" {
			_, _ = fmt.Fprintf(w, "[%s] %s\n", event.Step, event.Status)
			return
		}
		_, _ = fmt.Fprintf(w, "[%s] %s: %s\n", event.Step, event.Status, event.Message)
	}
}

// marshalJSON encodes v as indented JSON without HTML escaping.
func marshalJSON(v any) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return nil, fmt.Errorf("failed to marshal JSON: %w", err)
	}
	return buf.Bytes(), nil
}

// writeJSON writes v to w as indented JSON.
func writeJSON(w io.Writer, v any) error {
	data, err := marshalJSON(v)
	if err != nil {
		return err
	}
	_, err = w.Write(data)
	return err
}
