// Package constants provides shared constants used throughout the adapter.
// This includes timeouts, limits, file permissions, and the remote API values
// that must stay consistent between the client, the server and the CLI.
package constants

import "time"

// Timeout constants define various timeout durations used in the application
const (
	// DefaultHTTPTimeout is the standard timeout for requests to the Ardoq API
	DefaultHTTPTimeout = 30 * time.Second

	// DefaultTimeout is the standard timeout for general operations
	DefaultTimeout = 10 * time.Second

	// ReportTimeout bounds the processing of one dependency report
	ReportTimeout = 5 * time.Minute

	// ShutdownTimeout is how long the server waits for in-flight requests
	ShutdownTimeout = 30 * time.Second
)

// File permission constants define standard Unix file permissions
const (
	// DirPermissions is the default permission for created directories (rwxr-xr-x)
	DirPermissions = 0755

	// FilePermissions is the default permission for created files (rw-r--r--)
	FilePermissions = 0644
)

// Limit constants define various limits and capacities
const (
	// MaxReportBytes is the largest dependency report body the server accepts
	MaxReportBytes = 10 << 20

	// DefaultCacheSize is the number of resolved components kept in memory
	DefaultCacheSize = 4096

	// MaxDependencyLineLength caps a single line of parser input
	MaxDependencyLineLength = 64 << 10
)

// Server constants
const (
	// APIPathPrefix is the versioned prefix of the adapter's own HTTP API
	APIPathPrefix = "/api/v1"

	// LegacyPathPrefix serves report uploads from clients predating the versioned API
	LegacyPathPrefix = "/api"
)

// Remote API constants
const (
	// APIVersionPath is the path prefix of the Ardoq REST API
	APIVersionPath = "/api/v2"

	// IfVersionMatchLatest is the precondition value for reference updates
	IfVersionMatchLatest = "latest"

	// VersionField is the custom field holding a reference's version
	VersionField = "version"
)
