// Package serve provides the command running the adapter's HTTP API.
package serve

import (
	"context"
	"fmt"
	"net"
	"net/http"
	"os"
	"strconv"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/hmcts/dtsse-ardoq-adapter/internal/appcontext"
	"github.com/hmcts/dtsse-ardoq-adapter/internal/server"
	"github.com/hmcts/dtsse-ardoq-adapter/pkg/constants"
	"github.com/hmcts/dtsse-ardoq-adapter/pkg/errors"
)

// NewCommand creates the serve command.
func NewCommand(app appcontext.Interface) *cobra.Command {
	defaults := server.DefaultConfig()

	cmd := &cobra.Command{
		Use:     "serve",
		Aliases: []string{"server"},
		Short:   "Start the HTTP API receiving dependency reports",
		Long: `Start the HTTP server that CI pipelines upload dependency reports to.

Endpoints:
  POST /api/v1/gradle/{repo}   Gradle "dependencies" output
  POST /api/v1/maven/{repo}    Maven "dependency:tree" output
  GET  /api/v1/events/ws       WebSocket stream of Ardoq writes
  GET  /health, /api/v1/ready  Liveness and readiness
  GET  /metrics                Prometheus metrics

Report routes are also served under /api for older pipelines. Set
?vcsHost= to override the configured VCS host for one upload.`,
		Example: `  # Start on the default port
  ardoq-adapter serve

  # Require an API key from uploaders
  SERVER_API_KEY=secret ardoq-adapter serve --auth

  # Listen on all interfaces with a higher rate limit
  ardoq-adapter serve --host 0.0.0.0 --rate-limit 600`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runServer(cmd, app)
		},
	}

	cmd.Flags().Int("port", defaults.Port, "Server port")
	cmd.Flags().String("host", defaults.Host, "Bind address")
	cmd.Flags().String("prefix", defaults.PathPrefix, "API path prefix")

	cmd.Flags().Bool("auth", false, "Require an API key on report uploads")
	cmd.Flags().String("api-key", "", "API key uploaders must send (default from SERVER_API_KEY)")
	cmd.Flags().String("auth-header", defaults.AuthHeader, "Authentication header name")

	cmd.Flags().Int("rate-limit", defaults.RateLimit, "Requests per minute per client (0 to disable)")
	cmd.Flags().Int64("max-body", defaults.MaxBodyBytes, "Largest accepted report in bytes")
	cmd.Flags().Duration("report-timeout", defaults.ReportTimeout, "Time allowed for processing one report")

	cmd.Flags().Duration("read-timeout", defaults.ReadTimeout, "HTTP read timeout")
	cmd.Flags().Duration("write-timeout", defaults.WriteTimeout, "HTTP write timeout")
	cmd.Flags().Duration("idle-timeout", defaults.IdleTimeout, "HTTP idle timeout")

	cmd.Flags().Bool("metrics", defaults.MetricsEnabled, "Enable the /metrics endpoint")

	return cmd
}

func runServer(cmd *cobra.Command, app appcontext.Interface) error {
	cfg, err := parseConfig(cmd)
	if err != nil {
		return err
	}
	logger := app.Logger()

	a, err := app.Adapter()
	if err != nil {
		return fmt.Errorf("creating adapter: %w", err)
	}

	logger.Info().
		Int("port", cfg.Port).
		Str("host", cfg.Host).
		Str("prefix", cfg.PathPrefix).
		Bool("auth", cfg.AuthEnabled).
		Int("rate_limit", cfg.RateLimit).
		Dur("report_timeout", cfg.ReportTimeout).
		Msg("Starting API server")

	srv, err := server.New(a, app.Metrics(), cfg, logger)
	if err != nil {
		return fmt.Errorf("creating server: %w", err)
	}
	srv.Start()

	httpServer := &http.Server{
		Addr:         net.JoinHostPort(cfg.Host, strconv.Itoa(cfg.Port)),
		Handler:      srv.Handler(),
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
		IdleTimeout:  cfg.IdleTimeout,
	}

	// cmd.Context() is cancelled on SIGINT/SIGTERM
	return startWithGracefulShutdown(cmd.Context(), httpServer, srv, logger)
}

// parseConfig parses command flags into server configuration.
// HTTP_PORT, HTTP_HOST and SERVER_API_KEY override unset flags.
func parseConfig(cmd *cobra.Command) (server.Config, error) {
	cfg := server.Config{
		Port:           mustGetInt(cmd, "port"),
		Host:           mustGetString(cmd, "host"),
		PathPrefix:     mustGetString(cmd, "prefix"),
		AuthEnabled:    mustGetBool(cmd, "auth"),
		APIKey:         mustGetString(cmd, "api-key"),
		AuthHeader:     mustGetString(cmd, "auth-header"),
		RateLimit:      mustGetInt(cmd, "rate-limit"),
		MaxBodyBytes:   mustGetInt64(cmd, "max-body"),
		ReportTimeout:  mustGetDuration(cmd, "report-timeout"),
		ReadTimeout:    mustGetDuration(cmd, "read-timeout"),
		WriteTimeout:   mustGetDuration(cmd, "write-timeout"),
		IdleTimeout:    mustGetDuration(cmd, "idle-timeout"),
		MetricsEnabled: mustGetBool(cmd, "metrics"),
	}

	if env := os.Getenv("HTTP_PORT"); env != "" && !cmd.Flags().Changed("port") {
		port, err := parsePort(env)
		if err != nil {
			return cfg, err
		}
		cfg.Port = port
	}
	if env := os.Getenv("HTTP_HOST"); env != "" && !cmd.Flags().Changed("host") {
		cfg.Host = env
	}
	if cfg.APIKey == "" {
		cfg.APIKey = os.Getenv("SERVER_API_KEY")
	}

	if cfg.AuthEnabled && cfg.APIKey == "" {
		return cfg, errors.NewConfigError("serve", "--auth requires --api-key or SERVER_API_KEY", nil)
	}
	return cfg, nil
}

// parsePort parses a port string, rejecting values outside 1-65535.
func parsePort(portStr string) (int, error) {
	port, err := strconv.Atoi(portStr)
	if err != nil {
		return 0, errors.NewValidationError("port", portStr, "invalid port number")
	}
	if port < 1 || port > 65535 {
		return 0, errors.NewValidationError("port", port, "port out of range")
	}
	return port, nil
}

// startWithGracefulShutdown serves until ctx is cancelled, then drains
// connections for up to constants.ShutdownTimeout.
func startWithGracefulShutdown(ctx context.Context, httpServer *http.Server, srv *server.Server, logger *zerolog.Logger) error {
	serverErr := make(chan error, 1)

	go func() {
		logger.Info().
			Str("addr", httpServer.Addr).
			Msg("HTTP server listening")

		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			serverErr <- fmt.Errorf("server failed: %w", err)
		}
	}()

	select {
	case err := <-serverErr:
		_ = srv.Shutdown(context.Background())
		return err
	case <-ctx.Done():
		logger.Info().Msg("Shutdown signal received")

		// The parent context is already cancelled
		shutdownCtx, cancel := context.WithTimeout(context.Background(), constants.ShutdownTimeout)
		defer cancel()

		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("server shutdown failed: %w", err)
		}
		if err := srv.Shutdown(shutdownCtx); err != nil {
			logger.Warn().Err(err).Msg("Background services shutdown had issues")
		}

		logger.Info().Msg("Server stopped gracefully")
		return nil
	}
}

// mustGetInt retrieves an integer flag value or panics if the flag doesn't exist.
// This should only be used for flags defined in this package.
func mustGetInt(cmd *cobra.Command, name string) int {
	val, err := cmd.Flags().GetInt(name)
	if err != nil {
		panic("programming error: failed to get flag " + name + ": " + err.Error())
	}
	return val
}

func mustGetInt64(cmd *cobra.Command, name string) int64 {
	val, err := cmd.Flags().GetInt64(name)
	if err != nil {
		panic("programming error: failed to get flag " + name + ": " + err.Error())
	}
	return val
}

func mustGetString(cmd *cobra.Command, name string) string {
	val, err := cmd.Flags().GetString(name)
	if err != nil {
		panic("programming error: failed to get flag " + name + ": " + err.Error())
	}
	return val
}

func mustGetBool(cmd *cobra.Command, name string) bool {
	val, err := cmd.Flags().GetBool(name)
	if err != nil {
		panic("programming error: failed to get flag " + name + ": " + err.Error())
	}
	return val
}

func mustGetDuration(cmd *cobra.Command, name string) time.Duration {
	val, err := cmd.Flags().GetDuration(name)
	if err != nil {
		panic("programming error: failed to get flag " + name + ": " + err.Error())
	}
	return val
}
