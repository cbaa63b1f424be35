package server

import (
	"net/http"

	"github.com/hmcts/dtsse-ardoq-adapter/internal/parser"
	"github.com/hmcts/dtsse-ardoq-adapter/internal/server/handlers"
	"github.com/hmcts/dtsse-ardoq-adapter/internal/server/middleware"
	"github.com/hmcts/dtsse-ardoq-adapter/pkg/constants"
)

// setupRouter creates the HTTP handler with routes and middleware.
func (s *Server) setupRouter() http.Handler {
	mux := http.NewServeMux()

	h := handlers.New(
		s.adapter,
		s.metrics,
		s.broker,
		s.wsHub,
		s.upgrader,
		s.logger,
		s.startTime,
		s.config.MaxBodyBytes,
		s.config.ReportTimeout,
	)

	s.registerRoutes(mux, h)
	return s.applyMiddleware(mux)
}

// registerRoutes registers all HTTP routes.
func (s *Server) registerRoutes(mux *http.ServeMux, h *handlers.Handlers) {
	prefix := s.config.PathPrefix

	mux.HandleFunc("/favicon.ico", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})

	mux.HandleFunc("GET /health", h.HandleHealth)
	mux.HandleFunc("GET "+prefix+"/health", h.HandleHealth)
	mux.HandleFunc("GET "+prefix+"/ready", h.HandleReady)

	for _, format := range parser.Names() {
		report := func(w http.ResponseWriter, r *http.Request) {
			h.HandleReport(w, r, format, r.PathValue("repo"))
		}
		mux.HandleFunc(prefix+"/"+format+"/{repo}", report)
		if prefix != constants.LegacyPathPrefix {
			mux.HandleFunc(constants.LegacyPathPrefix+"/"+format+"/{repo}", report)
		}
	}

	mux.HandleFunc("GET "+prefix+"/events/ws", h.HandleWebSocket)

	if s.config.MetricsEnabled {
		mux.Handle("GET /metrics", s.metrics.Handler())
	}
}

// applyMiddleware wraps handler with the middleware chain.
func (s *Server) applyMiddleware(handler http.Handler) http.Handler {
	cfg := s.config

	if s.rateLimiter != nil {
		handler = middleware.RateLimit(s.rateLimiter)(handler)
	}

	if cfg.AuthEnabled {
		authConfig := middleware.DefaultAuthConfig()
		authConfig.Enabled = true
		authConfig.APIKey = cfg.APIKey
		if cfg.AuthHeader != "" {
			authConfig.HeaderName = cfg.AuthHeader
		}
		authConfig.PublicPaths = append(authConfig.PublicPaths, cfg.PathPrefix+"/health", cfg.PathPrefix+"/ready")
		handler = middleware.Auth(authConfig, s.logger)(handler)
	}

	return middleware.Chain(
		middleware.Recovery(s.logger),
		middleware.RequestID(),
		middleware.Logger(s.logger),
	)(handler)
}
