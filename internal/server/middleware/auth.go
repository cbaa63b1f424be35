package middleware

import (
	"crypto/subtle"
	"net/http"
	"strings"

	"github.com/rs/zerolog"
)

// AuthConfig configures API-key authentication of incoming reports.
type AuthConfig struct {
	Enabled     bool
	APIKey      string
	HeaderName  string
	PublicPaths []string
}

// DefaultAuthConfig returns a disabled configuration with the health,
// readiness and metrics paths public.
func DefaultAuthConfig() AuthConfig {
	return AuthConfig{
		HeaderName:  "X-API-Key",
		PublicPaths: []string{"/health", "/api/v1/health", "/api/v1/ready", "/metrics"},
	}
}

// Auth rejects requests without a valid API key.
func Auth(config AuthConfig, logger *zerolog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !config.Enabled || isPublicPath(r.URL.Path, config.PublicPaths) {
				next.ServeHTTP(w, r)
				return
			}

			apiKey := extractAPIKey(r, config.HeaderName)
			if apiKey == "" || subtle.ConstantTimeCompare([]byte(apiKey), []byte(config.APIKey)) != 1 {
				logger.Warn().
					Str("path", r.URL.Path).
					Str("remote_addr", r.RemoteAddr).
					Bool("key_provided", apiKey != "").
					Msg("Authentication failed")

				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(http.StatusUnauthorized)
				_, _ = w.Write([]byte(`{"data":null,"error":{"code":"UNAUTHORIZED","message":"Invalid or missing API key","details":"Provide a valid API key in the ` + config.HeaderName + ` header"}}`))
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

func isPublicPath(path string, publicPaths []string) bool {
	for _, p := range publicPaths {
		if path == p {
			return true
		}
	}
	return false
}

// extractAPIKey reads the configured header, then the Authorization header
// with or without a Bearer prefix.
func extractAPIKey(r *http.Request, headerName string) string {
	if apiKey := r.Header.Get(headerName); apiKey != "" {
		return apiKey
	}

	auth := r.Header.Get("Authorization")
	if after, ok := strings.CutPrefix(auth, "Bearer "); ok {
		return after
	}
	return auth
}
