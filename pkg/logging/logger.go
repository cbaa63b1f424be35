// Package logging provides structured logging for the adapter using zerolog.
// Console output is used when attached to a terminal and JSON otherwise.
//
// Example usage:
//
//	log := logging.Default()
//	log.Info().Str("repository", "my-service").Msg("Processing report")
//
//	ctx := logging.WithDependency(ctx, "org.slf4j:slf4j-api", "2.0.9")
//	logging.FromContext(ctx).Debug().Msg("Resolving component")
package logging

import (
	"os"

	"github.com/mattn/go-isatty"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// defaultLogger is used when no logger travels in the context.
var defaultLogger zerolog.Logger

func init() {
	defaultLogger = NewLoggerFromConfig(environmentConfig())
}

// environmentConfig reads LOG_LEVEL, LOG_FORMAT, LOG_OUTPUT and NO_COLOR.
// DEBUG=1 is accepted as a shortcut for LOG_LEVEL=debug.
func environmentConfig() *Config {
	cfg := defaultConfig()
	if level := os.Getenv("LOG_LEVEL"); level != "" {
		cfg.Level = level
	} else if os.Getenv("DEBUG") != "" {
		cfg.Level = "debug"
	}
	if format := os.Getenv("LOG_FORMAT"); format != "" {
		cfg.Format = format
	}
	if output := os.Getenv("LOG_OUTPUT"); output != "" {
		cfg.Output = output
	}
	return cfg
}

// Default returns the default global logger.
func Default() *zerolog.Logger {
	return &defaultLogger
}

// SetDefault replaces the default logger and zerolog's global logger.
func SetDefault(logger zerolog.Logger) {
	defaultLogger = logger
	log.Logger = logger
}

// Warn starts a new warning level event on the default logger.
func Warn() *zerolog.Event {
	return defaultLogger.Warn()
}

// isTerminal reports whether stderr is a terminal.
func isTerminal() bool {
	fd := os.Stderr.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}
