package cache

import (
	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/hmcts/dtsse-ardoq-adapter/pkg/ardoq"
)

// LRU is a resolver cache bounded by entry count.
type LRU struct {
	store *lru.Cache[string, ardoq.ResolvedDependency]
}

// NewLRU creates a cache holding at most size entries.
func NewLRU(size int) (*LRU, error) {
	store, err := lru.New[string, ardoq.ResolvedDependency](size)
	if err != nil {
		return nil, err
	}
	return &LRU{store: store}, nil
}

// Get implements ardoq.Cache.
func (c *LRU) Get(key string) (ardoq.ResolvedDependency, bool) {
	return c.store.Get(key)
}

// Set implements ardoq.Cache.
func (c *LRU) Set(key string, dep ardoq.ResolvedDependency) {
	c.store.Add(key, dep)
}
