// Package config provides configuration loading and validation for the CLI and server.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/jonathan/pdf-extractor/internal/llm"
	"github.com/jonathan/pdf-extractor/internal/logger"
	"github.com/jonathan/pdf-extractor/internal/pdftext"
)

// Environment variables read by FromEnv.
const (
	EnvGeminiAPIKey = "GEMINI_API_KEY"
	EnvGroqAPIKey   = "GROQ_API_KEY"
	EnvProvider     = "LLM_PROVIDER"
	EnvPDFBackend   = "PDF_BACKEND"
	EnvLogLevel     = "LOG_LEVEL"
	EnvLogFormat    = "LOG_FORMAT"
	EnvServerAddr   = "SERVER_ADDR"
	EnvUploadDir    = "UPLOAD_DIR"
)

// Config represents the extractor configuration that can be loaded from a JSON file.
// All fields are optional; missing values use defaults or are provided via CLI flags.
type Config struct {
	// LLM
	Provider     string            `json:"provider,omitempty" validate:"omitempty,oneof=gemini groq"`
	GeminiAPIKey string            `json:"gemini_api_key,omitempty"`
	GroqAPIKey   string            `json:"groq_api_key,omitempty" validate:"omitempty,startswith=gsk_"`
	Models       map[string]string `json:"models,omitempty" validate:"omitempty,dive,keys,oneof=lite standard advanced,endkeys,required"`

	// Extraction
	PDFBackend        string `json:"pdf_backend,omitempty" validate:"omitempty,oneof=ledongthuc docconv"`
	Enhance           bool   `json:"enhance,omitempty"`            // Run the review pass after the first extraction
	HeuristicFallback bool   `json:"heuristic_fallback,omitempty"` // Fill core fields locally when the AI analysis fails
	TimeoutSeconds    int    `json:"timeout_seconds,omitempty" validate:"min=0"`
	Concurrency       int    `json:"concurrency,omitempty" validate:"min=0,max=64"` // Batch worker count

	// Logging
	LogLevel  string `json:"log_level,omitempty" validate:"omitempty,oneof=debug info warn error"`
	LogFormat string `json:"log_format,omitempty" validate:"omitempty,oneof=json pretty"`
	Verbose   bool   `json:"verbose,omitempty"`

	// Server
	Addr            string `json:"addr,omitempty"`
	UploadDir       string `json:"upload_dir,omitempty"`
	MaxUploadBytes  int64  `json:"max_upload_bytes,omitempty" validate:"min=0"`
	UploadTTLMinute int    `json:"upload_ttl_minutes,omitempty" validate:"min=0"`
	RatePerMinute   int    `json:"rate_per_minute,omitempty" validate:"min=0"`
}

// Default returns the built-in defaults.
func Default() Config {
	return Config{
		Provider:        string(llm.ProviderGemini),
		PDFBackend:      string(pdftext.DefaultBackend),
		Concurrency:     4,
		LogLevel:        "info",
		LogFormat:       "json",
		Addr:            ":5000",
		UploadDir:       "uploads",
		MaxUploadBytes:  5 * 1024 * 1024,
		UploadTTLMinute: 60,
		RatePerMinute:   30,
	}
}

// LoadConfig loads configuration from a JSON file.
// Returns an error if the file cannot be read or parsed.
func LoadConfig(path string) (*Config, error) {
	if path == "" {
		return nil, fmt.Errorf("config path is empty")
	}

	if !filepath.IsAbs(path) {
		cwd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("failed to get current directory: %w", err)
		}
		path = filepath.Join(cwd, path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config JSON: %w", err)
	}

	return &cfg, nil
}

// FromEnv builds a Config from environment variables. Unset variables leave fields empty.
func FromEnv() Config {
	return Config{
		Provider:     strings.ToLower(strings.TrimSpace(os.Getenv(EnvProvider))),
		GeminiAPIKey: os.Getenv(EnvGeminiAPIKey),
		GroqAPIKey:   os.Getenv(EnvGroqAPIKey),
		PDFBackend:   os.Getenv(EnvPDFBackend),
		LogLevel:     strings.ToLower(os.Getenv(EnvLogLevel)),
		LogFormat:    strings.ToLower(os.Getenv(EnvLogFormat)),
		Addr:         os.Getenv(EnvServerAddr),
		UploadDir:    os.Getenv(EnvUploadDir),
	}
}

// Load resolves the effective configuration: the file at path (if any), then the
// environment, then Default. Earlier sources win.
func Load(path string) (Config, error) {
	cfg := Config{}
	if path != "" {
		fileCfg, err := LoadConfig(path)
		if err != nil {
			return Config{}, err
		}
		cfg = *fileCfg
	}

	cfg = cfg.MergeWithDefaults(FromEnv())
	cfg = cfg.MergeWithDefaults(Default())

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// ValidationError reports an invalid configuration field.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("config error: '%s' %s", e.Field, e.Message)
}

var validate = validator.New()

// Validate checks that the configuration has valid values.
// API keys are not required here; the LLM client checks the key of the selected provider.
func (c *Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		if verrs, ok := err.(validator.ValidationErrors); ok && len(verrs) > 0 {
			return fieldError(verrs[0])
		}
		return fmt.Errorf("config error: %w", err)
	}
	return nil
}

func fieldError(fe validator.FieldError) *ValidationError {
	field := jsonFieldName(fe.StructField())
	switch fe.Tag() {
	case "oneof":
		return &ValidationError{Field: field, Message: fmt.Sprintf("must be one of [%s], got %q", fe.Param(), fmt.Sprint(fe.Value()))}
	case "startswith":
		return &ValidationError{Field: field, Message: fmt.Sprintf("must start with %q", fe.Param())}
	case "min":
		return &ValidationError{Field: field, Message: "must be non-negative"}
	case "max":
		return &ValidationError{Field: field, Message: fmt.Sprintf("must be at most %s", fe.Param())}
	case "required":
		return &ValidationError{Field: field, Message: "must not be empty"}
	default:
		return &ValidationError{Field: field, Message: fmt.Sprintf("failed %q check", fe.Tag())}
	}
}

// jsonFieldName maps a struct field name to its JSON key.
func jsonFieldName(structField string) string {
	// map keys and values report as Models[...]
	if i := strings.IndexByte(structField, '['); i >= 0 {
		structField = structField[:i]
	}
	names := map[string]string{
		"Provider":        "provider",
		"GroqAPIKey":      "groq_api_key",
		"Models":          "models",
		"PDFBackend":      "pdf_backend",
		"TimeoutSeconds":  "timeout_seconds",
		"Concurrency":     "concurrency",
		"LogLevel":        "log_level",
		"LogFormat":       "log_format",
		"MaxUploadBytes":  "max_upload_bytes",
		"UploadTTLMinute": "upload_ttl_minutes",
		"RatePerMinute":   "rate_per_minute",
	}
	if name, ok := names[structField]; ok {
		return name
	}
	return structField
}

// MergeWithDefaults returns a new Config with empty fields filled from defaults.
func (c *Config) MergeWithDefaults(defaults Config) Config {
	result := *c

	if result.Provider == "" {
		result.Provider = defaults.Provider
	}
	if result.GeminiAPIKey == "" {
		result.GeminiAPIKey = defaults.GeminiAPIKey
	}
	if result.GroqAPIKey == "" {
		result.GroqAPIKey = defaults.GroqAPIKey
	}
	if result.PDFBackend == "" {
		result.PDFBackend = defaults.PDFBackend
	}
	if result.LogLevel == "" {
		result.LogLevel = defaults.LogLevel
	}
	if result.LogFormat == "" {
		result.LogFormat = defaults.LogFormat
	}
	if result.Addr == "" {
		result.Addr = defaults.Addr
	}
	if result.UploadDir == "" {
		result.UploadDir = defaults.UploadDir
	}

	if len(defaults.Models) > 0 {
		merged := make(map[string]string, len(defaults.Models)+len(result.Models))
		for k, v := range defaults.Models {
			merged[k] = v
		}
		for k, v := range result.Models {
			merged[k] = v
		}
		result.Models = merged
	}

	if result.TimeoutSeconds == 0 {
		result.TimeoutSeconds = defaults.TimeoutSeconds
	}
	if result.Concurrency == 0 {
		result.Concurrency = defaults.Concurrency
	}
	if result.MaxUploadBytes == 0 {
		result.MaxUploadBytes = defaults.MaxUploadBytes
	}
	if result.UploadTTLMinute == 0 {
		result.UploadTTLMinute = defaults.UploadTTLMinute
	}
	if result.RatePerMinute == 0 {
		result.RatePerMinute = defaults.RatePerMinute
	}

	// Bool fields cannot distinguish unset from false, so CLI flags always win for them.

	return result
}

// LLMProvider returns the selected provider.
func (c *Config) LLMProvider() (llm.Provider, error) {
	if c.Provider == "" {
		return llm.ProviderGemini, nil
	}
	return llm.ParseProvider(c.Provider)
}

// APIKey returns the key of the selected provider.
func (c *Config) APIKey() string {
	if p, _ := c.LLMProvider(); p == llm.ProviderGroq {
		return c.GroqAPIKey
	}
	return c.GeminiAPIKey
}

// LLMConfig returns the provider defaults with any model overrides applied.
func (c *Config) LLMConfig() (*llm.Config, error) {
	provider, err := c.LLMProvider()
	if err != nil {
		return nil, err
	}
	cfg := llm.DefaultConfigFor(provider)
	for tier, model := range c.Models {
		cfg = cfg.WithModel(llm.ModelTier(tier), model)
	}
	return cfg, nil
}

// Timeout returns the per-document timeout, or zero for none.
func (c *Config) Timeout() time.Duration {
	return time.Duration(c.TimeoutSeconds) * time.Second
}

// UploadTTL returns how long uploaded files may stay on disk.
func (c *Config) UploadTTL() time.Duration {
	return time.Duration(c.UploadTTLMinute) * time.Minute
}

// LoggerConfig returns the logger settings.
func (c *Config) LoggerConfig() logger.Config {
	return logger.Config{Level: c.LogLevel, Format: c.LogFormat}
}
