// Package cache memoizes aggregation results for a short TTL so that bursts
// of HTTP requests share one round of list calls.
//
// Concurrent misses for the same key are collapsed with singleflight.
// Invalidate drops every entry and detaches in-flight loads, so a read that
// follows an Invalidate never observes data loaded before it.
package cache

import (
	"context"
	"strconv"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"

	"github.com/potooio/signpost/internal/metrics"
)

// LoadFunc produces the value for a key on a miss.
type LoadFunc[V any] func(ctx context.Context) V

type entry[V any] struct {
	value   V
	expires time.Time
}

// Cache is a TTL memoization keyed by string. A zero TTL disables retention
// but still deduplicates concurrent loads.
type Cache[V any] struct {
	ttl time.Duration
	now func() time.Time

	mu         sync.Mutex
	entries    map[string]entry[V]
	generation uint64

	group singleflight.Group
}

// New creates a Cache whose entries live for ttl.
func New[V any](ttl time.Duration) *Cache[V] {
	return &Cache[V]{
		ttl:     ttl,
		now:     time.Now,
		entries: make(map[string]entry[V]),
	}
}

// Get returns the cached value for key, calling load on a miss.
func (c *Cache[V]) Get(ctx context.Context, key string, load LoadFunc[V]) V {
	c.mu.Lock()
	if e, ok := c.entries[key]; ok && c.now().Before(e.expires) {
		c.mu.Unlock()
		metrics.RecordCacheLookup(true)
		return e.value
	}
	gen := c.generation
	c.mu.Unlock()
	metrics.RecordCacheLookup(false)

	// The generation is part of the flight key so that loads started before
	// an Invalidate are never shared with callers that arrive after it.
	flight := strconv.FormatUint(gen, 10) + "/" + key
	v, _, _ := c.group.Do(flight, func() (interface{}, error) {
		value := load(context.WithoutCancel(ctx))
		c.store(gen, key, value)
		return value, nil
	})
	return v.(V)
}

func (c *Cache[V]) store(gen uint64, key string, value V) {
	if c.ttl <= 0 {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	if gen != c.generation {
		return
	}
	c.entries[key] = entry[V]{value: value, expires: c.now().Add(c.ttl)}
}

// Invalidate drops every entry.
func (c *Cache[V]) Invalidate() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.generation++
	clear(c.entries)
}

// Len returns the number of live entries.
func (c *Cache[V]) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	now := c.now()
	n := 0
	for _, e := range c.entries {
		if now.Before(e.expires) {
			n++
		}
	}
	return n
}
