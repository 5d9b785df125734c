// Package main provides the pdf_extractor command line tool.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "pdf_extractor <pdf>",
	Short: "Extract structured resume data from a PDF",
	Long: `Reads a resume PDF, extracts contact details, education, experience, skills, projects and
certifications with an LLM, then attaches a summary, an ATS analysis and a skills score.
The result is printed to stdout as JSON.

Configuration can be loaded from a JSON file using --config. Command-line flags override config
file and environment values.`,
	Args:          cobra.ExactArgs(1),
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE:          runExtract,
}

var (
	configPath        string
	verbose           bool
	validateOutput    bool
	enhance           bool
	heuristicFallback bool
	timeout           time.Duration
	providerName      string
	backendName       string
	logLevel          string
)

func init() {
	flags := rootCmd.PersistentFlags()
	flags.StringVar(&configPath, "config", "", "Path to config.json file (values can be overridden by other flags)")
	flags.BoolVarP(&verbose, "verbose", "v", false, "Print a readable report and step trace to stderr")
	flags.BoolVar(&validateOutput, "validate", false, "Validate the output against the result schema before printing")
	flags.BoolVar(&enhance, "enhance", false, "Run a review pass over the first AI extraction")
	flags.BoolVar(&heuristicFallback, "heuristic-fallback", false, "Fill core fields from local heuristics when the AI analysis fails")
	flags.DurationVar(&timeout, "timeout", 0, "Per-document timeout, e.g. 90s (0 disables)")
	flags.StringVar(&providerName, "provider", "", "LLM provider: gemini or groq (defaults to LLM_PROVIDER or gemini)")
	flags.StringVar(&backendName, "backend", "", "PDF text backend: ledongthuc or docconv")
	flags.StringVar(&logLevel, "log-level", "", "Log level: debug, info, warn or error")
}

func main() {
	// Load .env file if it exists
	_ = godotenv.Load()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := rootCmd.ExecuteContext(ctx)
	stop()

	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
