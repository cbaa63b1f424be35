// Package server provides the HTTP API of the adapter: report uploads,
// health, metrics and a websocket stream of remote writes.
package server

import (
	"context"
	"net/http"
	"time"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"

	adapter "github.com/hmcts/dtsse-ardoq-adapter"
	"github.com/hmcts/dtsse-ardoq-adapter/internal/metrics"
	"github.com/hmcts/dtsse-ardoq-adapter/internal/server/events"
	"github.com/hmcts/dtsse-ardoq-adapter/internal/server/events/adapters"
	"github.com/hmcts/dtsse-ardoq-adapter/internal/server/middleware"
	ws "github.com/hmcts/dtsse-ardoq-adapter/internal/server/websocket"
	"github.com/hmcts/dtsse-ardoq-adapter/pkg/ardoq"
	"github.com/hmcts/dtsse-ardoq-adapter/pkg/errors"
)

// Server holds the HTTP server state and dependencies.
type Server struct {
	adapter     adapter.Adapter
	metrics     *metrics.Metrics
	broker      *events.Broker
	wsHub       *ws.Hub
	rateLimiter *middleware.RateLimiter
	upgrader    websocket.Upgrader
	logger      *zerolog.Logger
	config      Config
	ctx         context.Context
	cancel      context.CancelFunc
	startTime   time.Time
}

// New creates a server around a. The adapter should have been built with
// m as its observer so that component and reference counters are fed.
func New(a adapter.Adapter, m *metrics.Metrics, cfg Config, logger *zerolog.Logger) (*Server, error) {
	if a == nil {
		return nil, errors.NewConfigError("server", "adapter is required", nil)
	}
	if m == nil {
		m = metrics.New()
	}
	if cfg.PathPrefix == "" {
		cfg.PathPrefix = DefaultConfig().PathPrefix
	}
	if cfg.MaxBodyBytes <= 0 {
		cfg.MaxBodyBytes = DefaultConfig().MaxBodyBytes
	}

	broker := events.NewBroker(logger)
	wsHub := ws.NewHub(logger)
	broker.Subscribe(adapters.NewWebSocketSubscriber(wsHub))

	ctx, cancel := context.WithCancel(context.Background())

	s := &Server{
		adapter: a,
		metrics: m,
		broker:  broker,
		wsHub:   wsHub,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin: func(_ *http.Request) bool {
				return true
			},
		},
		logger:    logger,
		config:    cfg,
		ctx:       ctx,
		cancel:    cancel,
		startTime: time.Now(),
	}
	if cfg.RateLimit > 0 {
		s.rateLimiter = middleware.NewRateLimiter(cfg.RateLimit, logger)
	}

	s.connectHooks()
	return s, nil
}

// connectHooks publishes every remote write to the broker.
func (s *Server) connectHooks() {
	s.adapter.OnComponentCreated(func(w ardoq.Workspace, component ardoq.ResolvedDependency) {
		s.broker.Publish(events.ComponentCreated, map[string]any{
			"workspace":   w.String(),
			"name":        component.Name,
			"version":     component.Version,
			"componentId": component.ComponentID,
		})
	})

	s.adapter.OnReferenceCreated(func(body ardoq.ReferenceBody) {
		s.broker.Publish(events.ReferenceCreated, body)
	})

	s.adapter.OnReferenceUpdated(func(id string, body ardoq.ReferenceBody) {
		s.broker.Publish(events.ReferenceUpdated, map[string]any{
			"id":        id,
			"reference": body,
		})
	})

	s.logger.Debug().Msg("Adapter hooks connected to event broker")
}

// Start starts the background services.
func (s *Server) Start() {
	go s.broker.Run(s.ctx)
	go s.wsHub.Run(s.ctx)
	if s.rateLimiter != nil {
		go s.rateLimiter.Run(s.ctx)
	}
	s.logger.Debug().Msg("Background services started")
}

// Handler returns the routes wrapped in the middleware chain.
func (s *Server) Handler() http.Handler {
	return s.setupRouter()
}

// Shutdown stops the background services.
func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info().Msg("Shutting down server background services")
	s.cancel()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-time.After(100 * time.Millisecond):
		return nil
	}
}

// Broker returns the event broker.
func (s *Server) Broker() *events.Broker {
	return s.broker
}

// WSHub returns the websocket hub.
func (s *Server) WSHub() *ws.Hub {
	return s.wsHub
}

// Metrics returns the metrics served on /metrics.
func (s *Server) Metrics() *metrics.Metrics {
	return s.metrics
}

// StartTime returns when the server was created.
func (s *Server) StartTime() time.Time {
	return s.startTime
}
