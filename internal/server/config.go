package server

import (
	"time"

	"github.com/hmcts/dtsse-ardoq-adapter/pkg/constants"
)

// Config holds server configuration.
type Config struct {
	Host string
	Port int

	// PathPrefix is the versioned API prefix; report routes are also served under /api.
	PathPrefix string

	// Authentication of incoming reports
	AuthEnabled bool
	AuthHeader  string
	APIKey      string

	// RateLimit is requests per minute per client (0 disables)
	RateLimit int

	// MaxBodyBytes bounds the size of an uploaded report
	MaxBodyBytes int64

	// ReportTimeout bounds the remote work done for one report
	ReportTimeout time.Duration

	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	IdleTimeout  time.Duration

	MetricsEnabled bool
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() Config {
	return Config{
		Host:           "localhost",
		Port:           8080,
		PathPrefix:     constants.APIPathPrefix,
		AuthHeader:     "X-API-Key",
		RateLimit:      100,
		MaxBodyBytes:   constants.MaxReportBytes,
		ReportTimeout:  constants.ReportTimeout,
		ReadTimeout:    30 * time.Second,
		WriteTimeout:   constants.ReportTimeout + 30*time.Second,
		IdleTimeout:    120 * time.Second,
		MetricsEnabled: true,
	}
}
