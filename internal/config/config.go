// Package config handles command-line parsing and environment variable
// overrides for the expertpanel application.
//
// Priority order: CLI flags > Environment variables > Defaults.
package config

import (
	"flag"
	"fmt"
	"io"
	"time"

	apperrors "github.com/agbru/expertpanel/internal/errors"
	"github.com/agbru/expertpanel/internal/llm"
)

// EnvPrefix is the prefix for all environment variable overrides.
const EnvPrefix = "EXPERTPANEL_"

// Default configuration values.
const (
	DefaultModel        = "gpt-4o-mini"
	DefaultBaseURL      = "http://localhost:11434"
	DefaultTemperature  = 0.2
	DefaultMaxTokens    = 1024
	DefaultBatchTimeout = 5 * time.Minute
)

// AppConfig holds all runtime configuration for the application.
type AppConfig struct {
	// Query is the question submitted to every expert on the panel.
	Query string
	// PanelFile is an optional YAML file describing the expert panel.
	// When empty the built-in default panel is used.
	PanelFile string
	// Model is the chat-completion model identifier.
	Model string
	// BaseURL is the base URL of the OpenAI-compatible API endpoint.
	BaseURL string
	// APIKey authenticates requests. Settable only via EXPERTPANEL_API_KEY.
	APIKey string
	// Temperature is the sampling temperature passed to the model.
	Temperature float64
	// MaxTokens caps the completion length per expert.
	MaxTokens int
	// RequestTimeout bounds each individual expert request.
	RequestTimeout time.Duration
	// BatchTimeout bounds the whole panel run. Zero disables the deadline.
	BatchTimeout time.Duration
	// MaxConcurrent limits in-flight expert requests. Zero means unbounded.
	MaxConcurrent int
	// Quiet suppresses banners, spinner and the summary table.
	Quiet bool
	// Verbose enables debug-level logging.
	Verbose bool
	// JSON emits the batch results as a JSON document instead of text.
	JSON bool
	// TUI launches the interactive terminal dashboard.
	TUI bool
	// OutputFile is the path to save the transcript (empty for no file output).
	OutputFile string
	// MetricsAddr is the listen address for the Prometheus endpoint.
	// Empty disables the metrics server.
	MetricsAddr string
	// NoColor disables ANSI colors in terminal output.
	NoColor bool
}

// ParseConfig parses command-line arguments and applies environment
// variable overrides for flags that were not explicitly set.
//
// Parameters:
//   - programName: The program name used in usage output.
//   - args: The command-line arguments (without the program name).
//   - errWriter: The writer for usage and error messages.
//
// Returns:
//   - AppConfig: The parsed configuration.
//   - error: A ConfigError if parsing or validation fails, or flag.ErrHelp.
func ParseConfig(programName string, args []string, errWriter io.Writer) (AppConfig, error) {
	cfg := AppConfig{}

	fs := flag.NewFlagSet(programName, flag.ContinueOnError)
	fs.SetOutput(errWriter)

	fs.StringVar(&cfg.Query, "query", "", "Question to submit to the expert panel")
	fs.StringVar(&cfg.Query, "Q", "", "Alias for -query")
	fs.StringVar(&cfg.PanelFile, "panel", "", "YAML file describing the expert panel")
	fs.StringVar(&cfg.Model, "model", DefaultModel, "Chat-completion model identifier")
	fs.StringVar(&cfg.BaseURL, "base-url", DefaultBaseURL, "Base URL of the OpenAI-compatible API")
	fs.Float64Var(&cfg.Temperature, "temperature", DefaultTemperature, "Sampling temperature (0..2)")
	fs.IntVar(&cfg.MaxTokens, "max-tokens", DefaultMaxTokens, "Maximum completion tokens per expert")
	fs.DurationVar(&cfg.RequestTimeout, "request-timeout", llm.DefaultRequestTimeout, "Timeout for each expert request")
	fs.DurationVar(&cfg.BatchTimeout, "timeout", DefaultBatchTimeout, "Deadline for the whole panel run (0 disables)")
	fs.IntVar(&cfg.MaxConcurrent, "max-concurrent", 0, "Maximum in-flight expert requests (0 = unbounded)")
	fs.BoolVar(&cfg.Quiet, "quiet", false, "Suppress banners and the summary table")
	fs.BoolVar(&cfg.Quiet, "q", false, "Alias for -quiet")
	fs.BoolVar(&cfg.Verbose, "verbose", false, "Enable debug logging")
	fs.BoolVar(&cfg.Verbose, "v", false, "Alias for -verbose")
	fs.BoolVar(&cfg.JSON, "json", false, "Emit results as JSON")
	fs.BoolVar(&cfg.TUI, "tui", false, "Launch the interactive terminal dashboard")
	fs.StringVar(&cfg.OutputFile, "output", "", "Save the transcript to a file")
	fs.StringVar(&cfg.OutputFile, "o", "", "Alias for -output")
	fs.StringVar(&cfg.MetricsAddr, "metrics-addr", "", "Listen address for the Prometheus endpoint (empty disables)")
	fs.BoolVar(&cfg.NoColor, "no-color", false, "Disable ANSI colors")

	fs.Usage = func() {
		fmt.Fprintf(errWriter, "Usage: %s [options]\n\n", programName)
		fmt.Fprintf(errWriter, "Sends one question to a panel of expert personas concurrently and\n")
		fmt.Fprintf(errWriter, "aggregates their answers.\n\nOptions:\n")
		fs.PrintDefaults()
		fmt.Fprintf(errWriter, "\nEnvironment variables (override defaults, prefixed with %s):\n", EnvPrefix)
		fmt.Fprintf(errWriter, "  QUERY, PANEL, MODEL, BASE_URL, API_KEY, TEMPERATURE, MAX_TOKENS,\n")
		fmt.Fprintf(errWriter, "  REQUEST_TIMEOUT, TIMEOUT, MAX_CONCURRENT, QUIET, VERBOSE, JSON,\n")
		fmt.Fprintf(errWriter, "  TUI, OUTPUT, METRICS_ADDR, NO_COLOR\n")
	}

	if err := fs.Parse(args); err != nil {
		if err == flag.ErrHelp {
			return AppConfig{}, err
		}
		return AppConfig{}, apperrors.NewConfigError("%s", err.Error())
	}

	applyEnvOverrides(&cfg, fs)

	if err := validateConfig(cfg); err != nil {
		return AppConfig{}, err
	}

	return cfg, nil
}

// validateConfig checks cross-field constraints that flag parsing cannot
// express.
func validateConfig(cfg AppConfig) error {
	if cfg.Temperature < 0 || cfg.Temperature > 2 {
		return apperrors.NewConfigError("temperature must be in [0, 2], got %g", cfg.Temperature)
	}
	if cfg.MaxTokens < 0 {
		return apperrors.NewConfigError("max-tokens must be >= 0, got %d", cfg.MaxTokens)
	}
	if cfg.MaxConcurrent < 0 {
		return apperrors.NewConfigError("max-concurrent must be >= 0, got %d", cfg.MaxConcurrent)
	}
	if cfg.RequestTimeout <= 0 {
		return apperrors.NewConfigError("request-timeout must be > 0, got %s", cfg.RequestTimeout)
	}
	if cfg.BatchTimeout < 0 {
		return apperrors.NewConfigError("timeout must be >= 0, got %s", cfg.BatchTimeout)
	}
	if cfg.Quiet && cfg.TUI {
		return apperrors.NewConfigError("-quiet and -tui are mutually exclusive")
	}
	return nil
}

// ClientConfig derives the LLM client configuration from the application
// configuration.
func (c AppConfig) ClientConfig() llm.Config {
	return llm.Config{
		BaseURL:        c.BaseURL,
		APIKey:         c.APIKey,
		Model:          c.Model,
		Temperature:    float32(c.Temperature),
		MaxTokens:      c.MaxTokens,
		RequestTimeout: c.RequestTimeout,
	}
}
