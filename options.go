package adapter

import (
	"time"

	"github.com/rs/zerolog"

	"github.com/hmcts/dtsse-ardoq-adapter/internal/transport"
	"github.com/hmcts/dtsse-ardoq-adapter/pkg/ardoq"
	"github.com/hmcts/dtsse-ardoq-adapter/pkg/errors"
)

// Option is a function that configures an Adapter
type Option func(*config) error

// config holds the settings New builds an Adapter from
type config struct {
	store       ardoq.Store
	apiURL      string
	apiKey      string
	auth        transport.Authenticator
	httpTimeout time.Duration
	workspaces  *ardoq.Workspaces
	cache       ardoq.Cache
	batch       bool
	vcsHost     string
	logger      *zerolog.Logger
	observer    Observer
}

// WithStore configures the remote store directly, bypassing the HTTP client.
func WithStore(store ardoq.Store) Option {
	return func(c *config) error {
		if store == nil {
			return errors.NewValidationError("store", nil, "must not be nil")
		}
		c.store = store
		return nil
	}
}

// WithAPI configures the Ardoq API base URL and key.
func WithAPI(url, apiKey string) Option {
	return func(c *config) error {
		if url == "" {
			return errors.NewValidationError("api_url", url, "is required")
		}
		c.apiURL = url
		c.apiKey = apiKey
		return nil
	}
}

// WithAuthenticator configures how the API key is sent. Defaults to the token scheme.
func WithAuthenticator(auth transport.Authenticator) Option {
	return func(c *config) error {
		c.auth = auth
		return nil
	}
}

// WithHTTPTimeout configures the per-request timeout against the API.
func WithHTTPTimeout(d time.Duration) Option {
	return func(c *config) error {
		if d < 0 {
			return errors.NewValidationError("http_timeout", d, "must not be negative")
		}
		c.httpTimeout = d
		return nil
	}
}

// WithWorkspaces configures the workspace table. Required.
func WithWorkspaces(ws ardoq.Workspaces) Option {
	return func(c *config) error {
		c.workspaces = &ws
		return nil
	}
}

// WithCache configures the resolver cache. Defaults to an unbounded map.
func WithCache(cache ardoq.Cache) Option {
	return func(c *config) error {
		c.cache = cache
		return nil
	}
}

// WithBatch configures whether references are submitted in one batch
// when the store supports it.
func WithBatch(enabled bool) Option {
	return func(c *config) error {
		c.batch = enabled
		return nil
	}
}

// WithVCSHost configures the hosting location used when a report names none.
func WithVCSHost(host string) Option {
	return func(c *config) error {
		c.vcsHost = host
		return nil
	}
}

// WithLogger configures the logger attached to every operation.
func WithLogger(logger *zerolog.Logger) Option {
	return func(c *config) error {
		c.logger = logger
		return nil
	}
}

// WithObserver configures a receiver for every resolution and reconciliation.
func WithObserver(o Observer) Option {
	return func(c *config) error {
		c.observer = o
		return nil
	}
}
