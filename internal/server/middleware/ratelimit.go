package middleware

import (
	"context"
	"net"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"
)

// RateLimiter allows a fixed number of requests per client per interval.
type RateLimiter struct {
	mu       sync.RWMutex
	visitors map[string]*visitor
	limit    int
	interval time.Duration
	logger   *zerolog.Logger
}

type visitor struct {
	mu        sync.Mutex
	tokens    int
	lastReset time.Time
}

// NewRateLimiter creates a limiter of limit requests per minute per client.
func NewRateLimiter(limit int, logger *zerolog.Logger) *RateLimiter {
	return &RateLimiter{
		visitors: make(map[string]*visitor),
		limit:    limit,
		interval: time.Minute,
		logger:   logger,
	}
}

// Run evicts idle visitors until ctx is cancelled.
func (rl *RateLimiter) Run(ctx context.Context) {
	ticker := time.NewTicker(5 * time.Minute)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			rl.evict(10 * time.Minute)
		}
	}
}

// evict drops visitors idle for longer than idle.
func (rl *RateLimiter) evict(idle time.Duration) {
	rl.mu.Lock()
	defer rl.mu.Unlock()
	for ip, v := range rl.visitors {
		v.mu.Lock()
		if time.Since(v.lastReset) > idle {
			delete(rl.visitors, ip)
		}
		v.mu.Unlock()
	}
}

func (rl *RateLimiter) getVisitor(ip string) *visitor {
	rl.mu.RLock()
	v, exists := rl.visitors[ip]
	rl.mu.RUnlock()
	if exists {
		return v
	}

	rl.mu.Lock()
	defer rl.mu.Unlock()
	if v, exists = rl.visitors[ip]; !exists {
		v = &visitor{tokens: rl.limit, lastReset: time.Now()}
		rl.visitors[ip] = v
	}
	return v
}

func (rl *RateLimiter) allow(ip string) bool {
	v := rl.getVisitor(ip)

	v.mu.Lock()
	defer v.mu.Unlock()

	if time.Since(v.lastReset) > rl.interval {
		v.tokens = rl.limit
		v.lastReset = time.Now()
	}
	if v.tokens > 0 {
		v.tokens--
		return true
	}
	return false
}

// clientIP prefers the first X-Forwarded-For hop, then the remote host.
func clientIP(r *http.Request) string {
	if forwarded := r.Header.Get("X-Forwarded-For"); forwarded != "" {
		first, _, _ := strings.Cut(forwarded, ",")
		return strings.TrimSpace(first)
	}
	if host, _, err := net.SplitHostPort(r.RemoteAddr); err == nil {
		return host
	}
	return r.RemoteAddr
}

// RateLimit answers 429 once a client exceeds its allowance.
func RateLimit(rl *RateLimiter) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ip := clientIP(r)
			if !rl.allow(ip) {
				rl.logger.Warn().
					Str("ip", ip).
					Str("path", r.URL.Path).
					Msg("Rate limit exceeded")

				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(http.StatusTooManyRequests)
				if _, writeErr := w.Write([]byte(`{"data":null,"error":{"code":"RATE_LIMITED","message":"Rate limit exceeded","details":"Too many requests. Please try again later."}}`)); writeErr != nil {
					rl.logger.Error().Err(writeErr).Msg("Failed to write rate limit error response")
				}
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
