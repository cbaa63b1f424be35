// Package app provides the application context and dependency management
// for the ardoq-adapter CLI: configuration, logging, metrics and the
// lazily built adapter shared by every command.
package app

import (
	"context"
	"sync"

	"github.com/rs/zerolog"

	adapter "github.com/hmcts/dtsse-ardoq-adapter"
	"github.com/hmcts/dtsse-ardoq-adapter/internal/appcontext"
	"github.com/hmcts/dtsse-ardoq-adapter/internal/config"
	"github.com/hmcts/dtsse-ardoq-adapter/internal/metrics"
	"github.com/hmcts/dtsse-ardoq-adapter/pkg/errors"
	"github.com/hmcts/dtsse-ardoq-adapter/pkg/logging"
)

// App represents the ardoq-adapter application with all its dependencies.
type App struct {
	// Version information
	version string
	commit  string
	date    string
	builtBy string

	config *Config
	logger *zerolog.Logger

	// Adapter instance (lazy-initialized, singleton)
	mu      sync.RWMutex
	adapter adapter.Adapter

	metricsOnce sync.Once
	metrics     *metrics.Metrics
}

var _ appcontext.Interface = (*App)(nil)

// New creates a new App with the given version information. Configuration
// is read immediately; the adapter is only built when a command needs it.
func New(version, commit, date, builtBy string, opts ...Option) (*App, error) {
	a := &App{
		version: version,
		commit:  commit,
		date:    date,
		builtBy: builtBy,
	}

	cfg, err := LoadConfig("")
	if err != nil {
		return nil, errors.WrapResource("load", "config", "", err)
	}
	a.config = cfg

	logger := NewLogger(cfg)
	a.logger = &logger

	for _, opt := range opts {
		if err := opt(a); err != nil {
			return nil, err
		}
	}

	return a, nil
}

// Version returns the version information.
func (a *App) Version() string {
	return a.version
}

// Commit returns the git commit hash.
func (a *App) Commit() string {
	return a.commit
}

// Date returns the build date.
func (a *App) Date() string {
	return a.date
}

// BuiltBy returns who built the binary.
func (a *App) BuiltBy() string {
	return a.builtBy
}

// Config returns the application configuration.
func (a *App) Config() *Config {
	return a.config
}

// Logger returns the application logger.
func (a *App) Logger() *zerolog.Logger {
	return a.logger
}

// OutputFormat returns the --format value.
func (a *App) OutputFormat() string {
	return a.config.Format
}

// Metrics returns the collectors shared by every adapter built by the app.
func (a *App) Metrics() *metrics.Metrics {
	a.metricsOnce.Do(func() {
		if a.metrics == nil {
			a.metrics = metrics.New()
		}
	})
	return a.metrics
}

// Adapter returns the shared adapter, building it on first use.
// Thread-safe through double-checked locking.
func (a *App) Adapter() (adapter.Adapter, error) {
	a.mu.RLock()
	if a.adapter != nil {
		defer a.mu.RUnlock()
		return a.adapter, nil
	}
	a.mu.RUnlock()

	a.mu.Lock()
	defer a.mu.Unlock()

	if a.adapter != nil {
		return a.adapter, nil
	}

	ad, err := a.AdapterWithOptions()
	if err != nil {
		return nil, err
	}
	a.adapter = ad
	return ad, nil
}

// AdapterWithOptions builds a new adapter from configuration, applying
// opts after the configured ones so commands can override settings.
func (a *App) AdapterWithOptions(opts ...adapter.Option) (adapter.Adapter, error) {
	settings, err := config.Load(a.config.Viper())
	if err != nil {
		return nil, err
	}

	base, err := settings.Options()
	if err != nil {
		return nil, err
	}
	base = append(base,
		adapter.WithLogger(a.logger),
		adapter.WithObserver(a.Metrics()),
	)

	a.logger.Debug().
		Str("api_url", settings.APIURL).
		Bool("batch", settings.Batch).
		Str("vcs_host", settings.VCSHost).
		Msg("Building adapter")

	return adapter.New(append(base, opts...)...)
}

// Shutdown releases application resources. Commands own their servers
// and stop them before returning.
func (a *App) Shutdown(ctx context.Context) error {
	a.logger.Debug().Msg("Shutting down application")
	return ctx.Err()
}

// Option configures an App.
type Option func(*App) error

// WithConfig replaces the loaded configuration.
func WithConfig(cfg *Config) Option {
	return func(a *App) error {
		a.config = cfg
		return nil
	}
}

// WithLogger sets a custom logger and makes it the package default.
func WithLogger(logger *zerolog.Logger) Option {
	return func(a *App) error {
		a.logger = logger
		logging.SetDefault(*logger)
		return nil
	}
}

// WithAdapter injects a prebuilt adapter, mainly for tests.
func WithAdapter(ad adapter.Adapter) Option {
	return func(a *App) error {
		a.mu.Lock()
		defer a.mu.Unlock()
		a.adapter = ad
		return nil
	}
}
