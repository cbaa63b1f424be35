// Package cache provides resolver caches for ardoq.Resolver.
// An LRU bounds memory by entry count; a TTL cache lets components that were
// deleted remotely be rediscovered after a while.
package cache

import (
	"time"

	"github.com/hmcts/dtsse-ardoq-adapter/pkg/ardoq"
	"github.com/hmcts/dtsse-ardoq-adapter/pkg/constants"
	"github.com/hmcts/dtsse-ardoq-adapter/pkg/errors"
)

var (
	_ ardoq.Cache = (*LRU)(nil)
	_ ardoq.Cache = (*TTL)(nil)
)

// Config selects and sizes a cache.
type Config struct {
	// Size bounds the LRU cache. Zero uses the default.
	Size int

	// TTL selects a TTL cache when positive.
	TTL time.Duration
}

// New builds the cache described by cfg.
func New(cfg Config) (ardoq.Cache, error) {
	if cfg.TTL > 0 {
		return NewTTL(cfg.TTL, cfg.TTL*2), nil
	}
	if cfg.Size < 0 {
		return nil, errors.NewValidationError("cache.size", cfg.Size, "must not be negative")
	}
	size := cfg.Size
	if size == 0 {
		size = constants.DefaultCacheSize
	}
	return NewLRU(size)
}
