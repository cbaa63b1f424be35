package cache

import (
	"time"

	gocache "github.com/patrickmn/go-cache"

	"github.com/hmcts/dtsse-ardoq-adapter/pkg/ardoq"
)

// TTL is a resolver cache whose entries expire.
// It uses patrickmn/go-cache, which evicts expired items on an interval.
type TTL struct {
	store *gocache.Cache
}

// NewTTL creates a cache whose entries live for ttl.
// Expired items are removed from memory every cleanupInterval.
func NewTTL(ttl, cleanupInterval time.Duration) *TTL {
	return &TTL{
		store: gocache.New(ttl, cleanupInterval),
	}
}

// Get implements ardoq.Cache.
func (c *TTL) Get(key string) (ardoq.ResolvedDependency, bool) {
	v, ok := c.store.Get(key)
	if !ok {
		return ardoq.ResolvedDependency{}, false
	}
	dep, ok := v.(ardoq.ResolvedDependency)
	return dep, ok
}

// Set implements ardoq.Cache.
func (c *TTL) Set(key string, dep ardoq.ResolvedDependency) {
	c.store.Set(key, dep, gocache.DefaultExpiration)
}
