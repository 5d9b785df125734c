package main

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"sync/atomic"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/jonathan/pdf-extractor/internal/pipeline"
)

var (
	batchOutDir      string
	batchConcurrency int
)

var batchCmd = &cobra.Command{
	Use:   "batch <pdf|dir>...",
	Short: "Extract many PDFs concurrently",
	Long: `Extract every given PDF (directories are expanded to the PDFs they contain). With --out-dir each
result is written to <out-dir>/<name>.json; otherwise one JSON line per file is printed to stdout.
Each document is processed on its own; an unreadable PDF yields its error payload.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runBatch,
}

func init() {
	batchCmd.Flags().StringVarP(&batchOutDir, "out-dir", "o", "", "Directory for per-file JSON results")
	batchCmd.Flags().IntVarP(&batchConcurrency, "concurrency", "n", 0, "Documents processed at once (defaults to config concurrency)")
	rootCmd.AddCommand(batchCmd)
}

// batchRecord is one line of batch output.
type batchRecord struct {
	File   string `json:"file"`
	Result any    `json:"result"`
}

// batchSummary counts the outcomes of one batch run.
type batchSummary struct {
	RunID     string
	Total     int
	Succeeded int64
	Failed    int64
}

func runBatch(cmd *cobra.Command, args []string) error {
	cfg, err := loadSettings(cmd)
	if err != nil {
		return err
	}
	if cmd.Flags().Changed("concurrency") {
		cfg.Concurrency = batchConcurrency
	}
	log := newLogger(cfg)

	paths, err := collectPDFs(args)
	if err != nil {
		return err
	}

	ctx := cmd.Context()
	extractor, closeClient, err := newExtractor(ctx, cfg, log, nil)
	if err != nil {
		return err
	}
	defer func() {
		_ = closeClient()
	}()

	summary, err := extractBatch(ctx, extractor, paths, cfg.Concurrency, batchOutDir, cmd.OutOrStdout(), log)
	if err != nil {
		return err
	}
	log.Info().
		Str("run_id", summary.RunID).
		Int("total", summary.Total).
		Int64("succeeded", summary.Succeeded).
		Int64("failed", summary.Failed).
		Msg("batch complete")
	return nil
}

// extractBatch processes paths with at most limit extractions in flight. Decode failures
// are recorded as error payloads; only write failures abort the batch.
func extractBatch(ctx context.Context, extractor fileExtractor, paths []string, limit int, outDir string, stdout io.Writer, log zerolog.Logger) (*batchSummary, error) {
	summary := &batchSummary{RunID: uuid.New().String(), Total: len(paths)}
	log = log.With().Str("run_id", summary.RunID).Logger()

	if outDir != "" {
		if err := os.MkdirAll(outDir, 0o755); err != nil {
			return nil, fmt.Errorf("failed to create output directory: %w", err)
		}
	}
	if limit <= 0 {
		limit = 1
	}

	var (
		mu        sync.Mutex
		succeeded atomic.Int64
		failed    atomic.Int64
	)

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(limit)

	for _, path := range paths {
		g.Go(func() error {
			var result any
			out, err := extractor.ExtractFromPDF(gctx, path)
			if err != nil {
				var decodeErr *pipeline.DecodeError
				if !errors.As(err, &decodeErr) {
					return fmt.Errorf("%s: %w", path, err)
				}
				failed.Add(1)
				log.Warn().Err(err).Str("path", path).Msg("skipping unreadable PDF")
				result = decodeErr.Payload()
			} else {
				if out.Result.Error != "" {
					failed.Add(1)
				} else {
					succeeded.Add(1)
				}
				result = out.Result
			}

			if outDir != "" {
				return writeResultFile(outDir, path, result)
			}

			data, err := marshalLine(batchRecord{File: path, Result: result})
			if err != nil {
				return err
			}
			mu.Lock()
			defer mu.Unlock()
			_, err = stdout.Write(data)
			return err
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	summary.Succeeded = succeeded.Load()
	summary.Failed = failed.Load()
	return summary, nil
}

// writeResultFile writes result to outDir/<base name>.json.
func writeResultFile(outDir, path string, result any) error {
	data, err := marshalJSON(result)
	if err != nil {
		return err
	}
	name := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path)) + ".json"
	if err := os.WriteFile(filepath.Join(outDir, name), data, 0o644); err != nil {
		return fmt.Errorf("failed to write result for %s: %w", path, err)
	}
	return nil
}

// marshalLine encodes v as a single JSON line.
func marshalLine(v any) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return nil, fmt.Errorf("failed to marshal JSON: %w", err)
	}
	return buf.Bytes(), nil
}

// collectPDFs expands directories to their .pdf files. Files are kept as given.
func collectPDFs(args []string) ([]string, error) {
	var paths []string
	for _, arg := range args {
		info, err := os.Stat(arg)
		if err != nil || !info.IsDir() {
			// Missing files still go through extraction and get an error payload
			paths = append(paths, arg)
			continue
		}

		entries, err := os.ReadDir(arg)
		if err != nil {
			return nil, fmt.Errorf("failed to read directory %s: %w", arg, err)
		}
		var found []string
		for _, entry := range entries {
			if !entry.IsDir() && strings.EqualFold(filepath.Ext(entry.Name()), ".pdf") {
				found = append(found, filepath.Join(arg, entry.Name()))
			}
		}
		sort.Strings(found)
		paths = append(paths, found...)
	}

	if len(paths) == 0 {
		return nil, fmt.Errorf("no PDF files found")
	}
	return paths, nil
}
