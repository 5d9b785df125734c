package main

import (
	"github.com/spf13/cobra"

	"github.com/jonathan/pdf-extractor/internal/extraction"
	"github.com/jonathan/pdf-extractor/internal/observability"
	"github.com/jonathan/pdf-extractor/internal/pdftext"
	"github.com/jonathan/pdf-extractor/internal/pipeline"
	"github.com/jonathan/pdf-extractor/internal/schemas"
)

var localCmd = &cobra.Command{
	Use:   "local <pdf>",
	Short: "Extract resume fields with local heuristics only",
	Long: `Decodes the PDF and runs the regex-based extractors without calling an LLM. The output has the
same shape as the AI extraction, plus the labelled dates found in the text. Scores stay at zero.`,
	Args: cobra.ExactArgs(1),
	RunE: runLocal,
}

func init() {
	rootCmd.AddCommand(localCmd)
}

func runLocal(cmd *cobra.Command, args []string) error {
	cfg, err := loadSettings(cmd)
	if err != nil {
		return err
	}
	log := newLogger(cfg)

	decoder, err := pdftext.NewDecoder(pdftext.Backend(cfg.PDFBackend))
	if err != nil {
		return err
	}

	path := args[0]
	text, err := decoder.Decode(cmd.Context(), path)
	if err != nil {
		log.Error().Err(err).Str("path", path).Msg("failed to decode PDF")
		decodeErr := &pipeline.DecodeError{Path: path, Cause: err}
		return writeJSON(cmd.OutOrStdout(), decodeErr.Payload())
	}

	result := extraction.Extract(text)
	data, err := marshalJSON(result)
	if err != nil {
		return err
	}
	if validateOutput {
		if err := schemas.ValidateResult(data); err != nil {
			return err
		}
	}
	if cfg.Verbose {
		observability.NewPrinter(cmd.ErrOrStderr()).PrintResult(result)
	}

	_, err = cmd.OutOrStdout().Write(data)
	return err
}
