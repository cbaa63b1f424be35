package app

import (
	"fmt"
	"os"

	"github.com/rs/zerolog"

	"github.com/hmcts/dtsse-ardoq-adapter/pkg/logging"
)

// NewLogger creates a logger from the application configuration.
// Log level precedence (highest to lowest):
//  1. --log-level flag
//  2. -v/--verbose (debug)
//  3. -q/--quiet (warn)
//  4. LOG_LEVEL environment variable
//  5. Default (info)
func NewLogger(cfg *Config) zerolog.Logger {
	level := determineLogLevel(cfg)

	return logging.NewLoggerFromConfig(&logging.Config{
		Level:     level,
		Format:    cfg.LogFormat,
		Output:    cfg.LogOutput,
		NoColor:   cfg.NoColor || os.Getenv("NO_COLOR") != "",
		AddCaller: level == "debug" || level == "trace",
	})
}

// determineLogLevel applies the precedence rules of NewLogger.
func determineLogLevel(cfg *Config) string {
	if cfg.LogLevel != "" {
		return checkedLogLevel(cfg.LogLevel)
	}

	if cfg.Verbose && cfg.Quiet {
		fmt.Fprintf(os.Stderr, "Warning: both --verbose and --quiet specified, using --quiet\n")
		return "warn"
	}
	if cfg.Verbose {
		return "debug"
	}
	if cfg.Quiet {
		return "warn"
	}
	if cfg.DefaultLogLevel != "" {
		return checkedLogLevel(cfg.DefaultLogLevel)
	}
	return "info"
}

func checkedLogLevel(level string) string {
	validated := validateLogLevel(level)
	if validated != level {
		fmt.Fprintf(os.Stderr, "Warning: invalid log level %q, using %q\n", level, validated)
	}
	return validated
}

// validateLogLevel returns level when it is known, otherwise "info".
func validateLogLevel(level string) string {
	switch level {
	case "trace", "debug", "info", "warn", "error":
		return level
	default:
		return "info"
	}
}
