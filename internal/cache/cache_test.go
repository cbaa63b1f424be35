package cache

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hmcts/dtsse-ardoq-adapter/pkg/ardoq"
	"github.com/hmcts/dtsse-ardoq-adapter/pkg/errors"
)

func resolved(name, version, id string) ardoq.ResolvedDependency {
	return ardoq.ResolvedDependency{
		Dependency:  ardoq.Dependency{Name: name, Version: version},
		ComponentID: id,
	}
}

func TestCaches(t *testing.T) {
	lruCache, err := NewLRU(8)
	require.NoError(t, err)

	caches := map[string]ardoq.Cache{
		"lru": lruCache,
		"ttl": NewTTL(time.Minute, time.Minute),
	}

	for kind, c := range caches {
		t.Run(kind, func(t *testing.T) {
			_, ok := c.Get("missing")
			assert.False(t, ok)

			c.Set("a", resolved("a", "1", "id-a"))
			got, ok := c.Get("a")
			require.True(t, ok)
			assert.Equal(t, "id-a", got.ComponentID)

			c.Set("a", resolved("a", "2", "id-a2"))
			got, ok = c.Get("a")
			require.True(t, ok)
			assert.Equal(t, "2", got.Version)
		})
	}
}

func TestLRUEvictsOldest(t *testing.T) {
	c, err := NewLRU(2)
	require.NoError(t, err)

	c.Set("a", resolved("a", "1", "1"))
	c.Set("b", resolved("b", "1", "2"))
	c.Get("a")
	c.Set("c", resolved("c", "1", "3"))

	_, ok := c.Get("b")
	assert.False(t, ok, "least recently used entry should be evicted")
	_, ok = c.Get("a")
	assert.True(t, ok)
}

func TestTTLExpires(t *testing.T) {
	c := NewTTL(10*time.Millisecond, time.Minute)
	c.Set("a", resolved("a", "1", "1"))

	assert.Eventually(t, func() bool {
		_, ok := c.Get("a")
		return !ok
	}, time.Second, 5*time.Millisecond)
}

func TestNew(t *testing.T) {
	c, err := New(Config{})
	require.NoError(t, err)
	assert.IsType(t, &LRU{}, c)

	c, err = New(Config{TTL: time.Hour})
	require.NoError(t, err)
	assert.IsType(t, &TTL{}, c)

	_, err = New(Config{Size: -1})
	assert.True(t, errors.IsValidationError(err))
}
