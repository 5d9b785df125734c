package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jonathan/pdf-extractor/internal/server"
)

var (
	serveAddr      string
	serveUploadDir string
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the PDF upload API server",
	Long: `Start an HTTP server that accepts resume uploads on POST /api/upload (multipart field "pdf")
and responds with the extraction JSON. Uploaded files are deleted after processing, and files left
behind are swept every hour.`,
	Args: cobra.NoArgs,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().StringVar(&serveAddr, "addr", "", "Address to listen on (defaults to SERVER_ADDR or :5000)")
	serveCmd.Flags().StringVar(&serveUploadDir, "upload-dir", "", "Directory for temporary uploads (defaults to UPLOAD_DIR or ./uploads)")
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, _ []string) error {
	cfg, err := loadSettings(cmd)
	if err != nil {
		return err
	}
	if cmd.Flags().Changed("addr") {
		cfg.Addr = serveAddr
	}
	if cmd.Flags().Changed("upload-dir") {
		cfg.UploadDir = serveUploadDir
	}
	log := newLogger(cfg)

	ctx := cmd.Context()
	extractor, closeClient, err := newExtractor(ctx, cfg, log, nil)
	if err != nil {
		return err
	}
	defer func() {
		_ = closeClient()
	}()

	srv, err := server.New(server.Config{
		Addr:           cfg.Addr,
		UploadDir:      cfg.UploadDir,
		MaxUploadBytes: cfg.MaxUploadBytes,
		UploadTTL:      cfg.UploadTTL(),
		RatePerMinute:  cfg.RatePerMinute,
	}, extractor, log)
	if err != nil {
		return fmt.Errorf("failed to create server: %w", err)
	}

	return srv.Start(ctx)
}
