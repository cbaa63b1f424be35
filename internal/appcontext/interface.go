// Package appcontext defines what commands need from the application,
// so command packages depend on an interface instead of the CLI app.
package appcontext

import (
	"github.com/rs/zerolog"

	adapter "github.com/hmcts/dtsse-ardoq-adapter"
	"github.com/hmcts/dtsse-ardoq-adapter/internal/metrics"
)

// Interface is implemented by the CLI app and by Mock.
type Interface interface {
	// Adapter returns the configured adapter, creating it lazily.
	Adapter() (adapter.Adapter, error)

	// AdapterWithOptions creates a new adapter from configuration with
	// opts applied last, for commands that override settings.
	AdapterWithOptions(opts ...adapter.Option) (adapter.Adapter, error)

	// Metrics returns the collectors fed by every adapter the app creates.
	Metrics() *metrics.Metrics

	// Logger returns the configured logger.
	Logger() *zerolog.Logger

	// OutputFormat returns the requested output format (table, json, yaml).
	OutputFormat() string

	Version() string
	Commit() string
	Date() string
	BuiltBy() string
}
