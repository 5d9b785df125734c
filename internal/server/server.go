package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime"
	"net"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/jonathan/pdf-extractor/internal/pdftext"
	"github.com/jonathan/pdf-extractor/internal/pipeline"
	"github.com/jonathan/pdf-extractor/internal/server/ratelimit"
)

const (
	// uploadField is the multipart field carrying the document
	uploadField = "pdf"
	// cleanupInterval is how often stale uploads are swept
	cleanupInterval = time.Hour
	// multipartOverhead is the body allowance on top of the file size limit
	multipartOverhead = 64 << 10
)

// Extractor is the extraction capability the server exposes. *pipeline.Extractor implements it.
type Extractor interface {
	ExtractFromPDF(ctx context.Context, path string) (*pipeline.Output, error)
}

// Config holds server configuration
type Config struct {
	Addr           string
	UploadDir      string
	MaxUploadBytes int64
	UploadTTL      time.Duration
	RatePerMinute  int
}

// Server represents the HTTP server
type Server struct {
	httpServer  *http.Server
	extractor   Extractor
	rateLimiter *ratelimit.Limiter
	config      Config
	log         zerolog.Logger
	now         func() time.Time
}

// New creates a new server instance. The upload directory is created if missing.
func New(cfg Config, extractor Extractor, log zerolog.Logger) (*Server, error) {
	if cfg.UploadDir == "" {
		return nil, fmt.Errorf("upload directory is required")
	}
	if err := os.MkdirAll(cfg.UploadDir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create upload directory: %w", err)
	}
	if cfg.MaxUploadBytes <= 0 {
		cfg.MaxUploadBytes = 5 << 20
	}
	if cfg.UploadTTL <= 0 {
		cfg.UploadTTL = time.Hour
	}

	s := &Server{
		extractor:   extractor,
		rateLimiter: ratelimit.NewLimiter(ratelimit.LoadConfig(cfg.RatePerMinute)),
		config:      cfg,
		log:         log.With().Str("component", "server").Logger(),
		now:         time.Now,
	}

	s.httpServer = &http.Server{
		Addr:         cfg.Addr,
		Handler:      s.Handler(),
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 300 * time.Second, // Long timeout for AI extraction
		IdleTimeout:  60 * time.Second,
	}

	return s, nil
}

// Handler returns the routed handler with middleware applied.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("POST /api/upload", s.handleUpload)
	mux.HandleFunc("GET /health", s.handleHealth)
	return s.withRateLimit(s.withLogging(s.withCORS(mux)))
}

// Start serves requests until ctx is cancelled, then shuts down gracefully.
func (s *Server) Start(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		s.log.Info().Str("addr", s.httpServer.Addr).Str("upload_dir", s.config.UploadDir).Msg("server starting")
		if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()
	go s.cleanupLoop(ctx)

	select {
	case err, ok := <-errCh:
		s.rateLimiter.Stop()
		if ok {
			return fmt.Errorf("server error: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	s.log.Info().Msg("shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	s.rateLimiter.Stop()
	if err := s.httpServer.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown failed: %w", err)
	}
	s.log.Info().Msg("server stopped")
	return nil
}

// cleanupLoop removes stale uploads every cleanupInterval until ctx is cancelled.
func (s *Server) cleanupLoop(ctx context.Context) {
	ticker := time.NewTicker(cleanupInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			removed, err := s.cleanupUploads()
			if err != nil {
				s.log.Error().Err(err).Msg("upload cleanup failed")
				continue
			}
			if removed > 0 {
				s.log.Info().Int("removed", removed).Msg("removed stale uploads")
			}
		case <-ctx.Done():
			return
		}
	}
}

// cleanupUploads deletes files in the upload directory older than the upload TTL.
func (s *Server) cleanupUploads() (int, error) {
	entries, err := os.ReadDir(s.config.UploadDir)
	if err != nil {
		return 0, fmt.Errorf("failed to read upload directory: %w", err)
	}

	cutoff := s.now().Add(-s.config.UploadTTL)
	removed := 0
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		info, err := entry.Info()
		if err != nil {
			s.log.Warn().Err(err).Str("file", entry.Name()).Msg("failed to stat upload")
			continue
		}
		if !info.ModTime().Before(cutoff) {
			continue
		}
		if err := os.Remove(filepath.Join(s.config.UploadDir, entry.Name())); err != nil {
			s.log.Warn().Err(err).Str("file", entry.Name()).Msg("failed to remove upload")
			continue
		}
		removed++
	}
	return removed, nil
}

// handleUpload accepts one PDF, extracts it and returns the result JSON.
func (s *Server) handleUpload(w http.ResponseWriter, r *http.Request) {
	path, err := s.saveUpload(w, r)
	if err != nil {
		s.log.Warn().Err(err).Msg("rejected upload")
		s.errorResponse(w, HTTPStatus(err), err.Error())
		return
	}
	defer func() {
		if err := os.Remove(path); err != nil && !errors.Is(err, os.ErrNotExist) {
			s.log.Error().Err(err).Str("path", path).Msg("failed to delete upload")
		}
	}()

	if _, err := pdftext.Inspect(path); err != nil {
		invalid := &ErrInvalidPDF{Cause: err}
		s.errorResponse(w, HTTPStatus(invalid), invalid.Error())
		return
	}

	out, err := s.extractor.ExtractFromPDF(r.Context(), path)
	if err != nil {
		var decodeErr *pipeline.DecodeError
		if errors.As(err, &decodeErr) {
			s.jsonResponse(w, HTTPStatus(decodeErr), decodeErr.Payload())
			return
		}
		s.log.Error().Err(err).Msg("extraction failed")
		s.errorResponse(w, http.StatusInternalServerError, "Processing error")
		return
	}

	s.jsonResponse(w, http.StatusOK, out.Result)
}

// saveUpload validates the multipart upload and writes it under a unique name.
func (s *Server) saveUpload(w http.ResponseWriter, r *http.Request) (string, error) {
	limit := s.config.MaxUploadBytes
	r.Body = http.MaxBytesReader(w, r.Body, limit+multipartOverhead)

	if err := r.ParseMultipartForm(1 << 20); err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) || strings.Contains(err.Error(), "request body too large") {
			return "", &ErrFileTooLarge{Limit: limit}
		}
		return "", &ErrNoFile{}
	}
	defer func() {
		_ = r.MultipartForm.RemoveAll()
	}()

	file, header, err := r.FormFile(uploadField)
	if err != nil {
		return "", &ErrNoFile{}
	}
	defer file.Close()

	if header.Size > limit {
		return "", &ErrFileTooLarge{Limit: limit}
	}
	if !isPDF(header.Filename, header.Header.Get("Content-Type")) {
		return "", &ErrUnsupportedType{Filename: header.Filename, ContentType: header.Header.Get("Content-Type")}
	}

	path := filepath.Join(s.config.UploadDir, fmt.Sprintf("%s-%s.pdf", uploadField, uuid.New()))
	dst, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("failed to store upload: %w", err)
	}
	if _, err := io.Copy(dst, file); err != nil {
		_ = dst.Close()
		_ = os.Remove(path)
		return "", fmt.Errorf("failed to store upload: %w", err)
	}
	if err := dst.Close(); err != nil {
		_ = os.Remove(path)
		return "", fmt.Errorf("failed to store upload: %w", err)
	}

	s.log.Debug().Str("filename", header.Filename).Int64("size", header.Size).Str("path", path).Msg("stored upload")
	return path, nil
}

// isPDF accepts the PDF media type, or a .pdf name sent as a generic binary type.
func isPDF(filename, contentType string) bool {
	mediaType, _, err := mime.ParseMediaType(contentType)
	if err == nil && mediaType == "application/pdf" {
		return true
	}
	generic := contentType == "" || mediaType == "application/octet-stream"
	return generic && strings.EqualFold(filepath.Ext(filename), ".pdf")
}

// withCORS adds CORS headers
func (s *Server) withCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}

// withRateLimit adds rate limiting middleware
func (s *Server) withRateLimit(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		allowed, info := s.rateLimiter.Allow(extractClientID(r), r.URL.Path, r.Method)
		s.setRateLimitHeaders(w, info)
		if !allowed {
			s.rateLimitResponse(w, info)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// withLogging adds request logging
func (s *Server) withLogging(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		next.ServeHTTP(w, r)
		s.log.Info().
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Str("remote", r.RemoteAddr).
			Dur("duration", time.Since(start)).
			Msg("request completed")
	})
}

// handleHealth returns server health status
func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	s.jsonResponse(w, http.StatusOK, map[string]string{"status": "ok"})
}

// jsonResponse writes a JSON response
func (s *Server) jsonResponse(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(data); err != nil {
		s.log.Error().Err(err).Msg("error encoding JSON response")
	}
}

// errorResponse writes an error JSON response
func (s *Server) errorResponse(w http.ResponseWriter, status int, message string) {
	s.jsonResponse(w, status, map[string]string{"error": message})
}

// extractClientID uses the IP address from RemoteAddr.
func extractClientID(r *http.Request) string {
	ip, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return ip
}

// setRateLimitHeaders sets standard rate limit headers on the response.
func (s *Server) setRateLimitHeaders(w http.ResponseWriter, info ratelimit.Info) {
	if info.Limit > 0 {
		w.Header().Set("X-RateLimit-Limit", fmt.Sprintf("%d", info.Limit))
		w.Header().Set("X-RateLimit-Remaining", fmt.Sprintf("%d", info.Remaining))
		w.Header().Set("X-RateLimit-Reset", fmt.Sprintf("%d", info.ResetTime.Unix()))
	}
}

// rateLimitResponse writes a 429 Too Many Requests response with rate limit information.
func (s *Server) rateLimitResponse(w http.ResponseWriter, info ratelimit.Info) {
	response := map[string]any{
		"error":     "Rate limit exceeded. Please try again later.",
		"limit":     info.Limit,
		"remaining": info.Remaining,
	}
	if !info.ResetTime.IsZero() {
		response["reset_at"] = info.ResetTime.Format(time.RFC3339)
	}
	if info.RetryAfter > 0 {
		seconds := int(info.RetryAfter.Seconds()) + 1
		response["retry_after"] = seconds
		w.Header().Set("Retry-After", fmt.Sprintf("%d", seconds))
	}

	s.log.Warn().Int("limit", info.Limit).Time("reset", info.ResetTime).Msg("rate limit exceeded")
	s.jsonResponse(w, http.StatusTooManyRequests, response)
}
