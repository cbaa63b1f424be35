package appcontext

import (
	"github.com/rs/zerolog"

	adapter "github.com/hmcts/dtsse-ardoq-adapter"
	"github.com/hmcts/dtsse-ardoq-adapter/internal/metrics"
)

// Mock implements Interface for command tests. Unset function fields
// return zero values.
type Mock struct {
	AdapterFunc            func() (adapter.Adapter, error)
	AdapterWithOptionsFunc func(...adapter.Option) (adapter.Adapter, error)
	MetricsValue           *metrics.Metrics
	LoggerValue            *zerolog.Logger
	Format                 string
	VersionValue           string
}

var _ Interface = (*Mock)(nil)

// Adapter implements Interface.
func (m *Mock) Adapter() (adapter.Adapter, error) {
	if m.AdapterFunc != nil {
		return m.AdapterFunc()
	}
	return nil, nil
}

// AdapterWithOptions implements Interface.
func (m *Mock) AdapterWithOptions(opts ...adapter.Option) (adapter.Adapter, error) {
	if m.AdapterWithOptionsFunc != nil {
		return m.AdapterWithOptionsFunc(opts...)
	}
	return m.Adapter()
}

// Metrics implements Interface.
func (m *Mock) Metrics() *metrics.Metrics {
	if m.MetricsValue == nil {
		m.MetricsValue = metrics.New()
	}
	return m.MetricsValue
}

// Logger implements Interface; it defaults to a no-op logger.
func (m *Mock) Logger() *zerolog.Logger {
	if m.LoggerValue != nil {
		return m.LoggerValue
	}
	logger := zerolog.Nop()
	return &logger
}

// OutputFormat implements Interface.
func (m *Mock) OutputFormat() string {
	return m.Format
}

// Version implements Interface; it defaults to "dev".
func (m *Mock) Version() string {
	if m.VersionValue != "" {
		return m.VersionValue
	}
	return "dev"
}

// Commit implements Interface.
func (m *Mock) Commit() string { return "unknown" }

// Date implements Interface.
func (m *Mock) Date() string { return "unknown" }

// BuiltBy implements Interface.
func (m *Mock) BuiltBy() string { return "unknown" }
