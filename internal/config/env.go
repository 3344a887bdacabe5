// This file contains environment variable utilities for configuration override.

package config

import (
	"flag"
	"os"
	"strconv"
	"strings"
	"time"
)

// isFlagSet checks if a flag was explicitly set on the command line.
// This is used to determine whether to apply environment variable overrides.
func isFlagSet(fs *flag.FlagSet, name string) bool {
	found := false
	fs.Visit(func(f *flag.Flag) {
		if f.Name == name {
			found = true
		}
	})
	return found
}

// isFlagSetAny checks if any of the specified flags were explicitly set.
// This is useful for aliased flags where either the short or long form may be used.
func isFlagSetAny(fs *flag.FlagSet, names ...string) bool {
	for _, name := range names {
		if isFlagSet(fs, name) {
			return true
		}
	}
	return false
}

// envOverride declares a single environment variable override.
// Each entry maps an env key (without the EXPERTPANEL_ prefix) to the CLI
// flag name(s) it corresponds to and a function that applies the env value.
type envOverride struct {
	envKey string
	flags  []string
	apply  func(*AppConfig, string)
}

// envOverrides is the declarative table of all environment variable overrides.
var envOverrides = []envOverride{
	// String overrides
	{"QUERY", []string{"query", "Q"}, func(c *AppConfig, v string) {
		c.Query = v
	}},
	{"PANEL", []string{"panel"}, func(c *AppConfig, v string) {
		c.PanelFile = v
	}},
	{"MODEL", []string{"model"}, func(c *AppConfig, v string) {
		c.Model = v
	}},
	{"BASE_URL", []string{"base-url"}, func(c *AppConfig, v string) {
		c.BaseURL = v
	}},
	{"OUTPUT", []string{"output", "o"}, func(c *AppConfig, v string) {
		c.OutputFile = v
	}},
	{"METRICS_ADDR", []string{"metrics-addr"}, func(c *AppConfig, v string) {
		c.MetricsAddr = v
	}},

	// Numeric overrides
	{"TEMPERATURE", []string{"temperature"}, func(c *AppConfig, v string) {
		if parsed, err := strconv.ParseFloat(v, 64); err == nil {
			c.Temperature = parsed
		}
	}},
	{"MAX_TOKENS", []string{"max-tokens"}, func(c *AppConfig, v string) {
		if parsed, err := strconv.Atoi(v); err == nil {
			c.MaxTokens = parsed
		}
	}},
	{"MAX_CONCURRENT", []string{"max-concurrent"}, func(c *AppConfig, v string) {
		if parsed, err := strconv.Atoi(v); err == nil {
			c.MaxConcurrent = parsed
		}
	}},

	// Duration overrides
	{"REQUEST_TIMEOUT", []string{"request-timeout"}, func(c *AppConfig, v string) {
		if parsed, err := time.ParseDuration(v); err == nil {
			c.RequestTimeout = parsed
		}
	}},
	{"TIMEOUT", []string{"timeout"}, func(c *AppConfig, v string) {
		if parsed, err := time.ParseDuration(v); err == nil {
			c.BatchTimeout = parsed
		}
	}},

	// Boolean overrides
	{"QUIET", []string{"quiet", "q"}, func(c *AppConfig, v string) {
		c.Quiet = parseBoolEnv(v, c.Quiet)
	}},
	{"VERBOSE", []string{"verbose", "v"}, func(c *AppConfig, v string) {
		c.Verbose = parseBoolEnv(v, c.Verbose)
	}},
	{"JSON", []string{"json"}, func(c *AppConfig, v string) {
		c.JSON = parseBoolEnv(v, c.JSON)
	}},
	{"TUI", []string{"tui"}, func(c *AppConfig, v string) {
		c.TUI = parseBoolEnv(v, c.TUI)
	}},
	{"NO_COLOR", []string{"no-color"}, func(c *AppConfig, v string) {
		c.NoColor = parseBoolEnv(v, c.NoColor)
	}},
}

// parseBoolEnv parses a boolean environment variable value.
// Accepts "true", "1", "yes" as true; "false", "0", "no" as false (case-insensitive).
// Returns defaultVal if the value is not recognized.
func parseBoolEnv(val string, defaultVal bool) bool {
	switch strings.ToLower(val) {
	case "true", "1", "yes":
		return true
	case "false", "0", "no":
		return false
	}
	return defaultVal
}

// applyEnvOverrides applies environment variable values to the configuration
// for any flags that were not explicitly set on the command line.
// This implements the priority: CLI flags > Environment variables > Defaults.
//
// The API key has no corresponding flag so that it never appears in shell
// history or process listings; it is read from EXPERTPANEL_API_KEY only.
func applyEnvOverrides(config *AppConfig, fs *flag.FlagSet) {
	for _, o := range envOverrides {
		if isFlagSetAny(fs, o.flags...) {
			continue
		}
		if val := os.Getenv(EnvPrefix + o.envKey); val != "" {
			o.apply(config, val)
		}
	}
	if val := os.Getenv(EnvPrefix + "API_KEY"); val != "" {
		config.APIKey = val
	}
}
