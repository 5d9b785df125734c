package main

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/jonathan/pdf-extractor/internal/observability"
	"github.com/jonathan/pdf-extractor/internal/pipeline"
	"github.com/jonathan/pdf-extractor/internal/schemas"
)

// fileExtractor is satisfied by *pipeline.Extractor.
type fileExtractor interface {
	ExtractFromPDF(ctx context.Context, path string) (*pipeline.Output, error)
}

// outputOptions controls how one extraction is reported.
type outputOptions struct {
	Validate bool
	Verbose  bool
}

func runExtract(cmd *cobra.Command, args []string) error {
	cfg, err := loadSettings(cmd)
	if err != nil {
		return err
	}
	log := newLogger(cfg)

	var onProgress pipeline.ProgressCallback
	if cfg.Verbose {
		onProgress = progressPrinter(cmd.ErrOrStderr())
	}

	ctx := cmd.Context()
	extractor, closeClient, err := newExtractor(ctx, cfg, log, onProgress)
	if err != nil {
		return err
	}
	defer func() {
		if err := closeClient(); err != nil {
			log.Warn().Err(err).Msg("failed to close LLM client")
		}
	}()

	opts := outputOptions{Validate: validateOutput, Verbose: cfg.Verbose}
	return extractOne(ctx, extractor, args[0], opts, cmd.OutOrStdout(), cmd.ErrOrStderr())
}

// extractOne runs one extraction and writes its JSON to stdout. An unreadable PDF
// produces the error payload and no error; anything unexpected is returned without
// writing to stdout.
func extractOne(ctx context.Context, extractor fileExtractor, path string, opts outputOptions, stdout, stderr io.Writer) error {
	out, err := extractor.ExtractFromPDF(ctx, path)
	if err != nil {
		var decodeErr *pipeline.DecodeError
		if errors.As(err, &decodeErr) {
			return writeJSON(stdout, decodeErr.Payload())
		}
		return fmt.Errorf("extraction failed: %w", err)
	}

	data, err := marshalJSON(out.Result)
	if err != nil {
		return err
	}
	if opts.Validate {
		if err := schemas.ValidateResult(data); err != nil {
			return fmt.Errorf("output does not match the result schema: %w", err)
		}
	}

	if opts.Verbose {
		printer := observability.NewPrinter(stderr)
		printer.PrintResult(out.Result)
		printer.PrintSteps(out.Steps)
	}

	_, err = stdout.Write(data)
	return err
}
