package market

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"golang.org/x/sync/singleflight"
)

// Cache is a TTL cache bounded to size entries, evicting the least recently
// used. Hits only take the read lock. Stored values must not be mutated.
type Cache[V any] struct {
	ttl  time.Duration
	size int
	now  func() time.Time

	mu    sync.RWMutex
	items map[string]*cacheEntry[V]
	group singleflight.Group
}

type cacheEntry[V any] struct {
	at   time.Time
	used atomic.Int64 // unix nanos of the last hit
	val  V
}

// NewCache returns a cache; ttl <= 0 disables storage but still collapses
// concurrent loads of the same key.
func NewCache[V any](ttl time.Duration, size int) *Cache[V] {
	if size < 1 {
		size = 1
	}
	return &Cache[V]{ttl: ttl, size: size, now: time.Now, items: make(map[string]*cacheEntry[V])}
}

// Get returns a fresh value for k.
func (c *Cache[V]) Get(k string) (V, bool) {
	now := c.now()
	c.mu.RLock()
	ent, ok := c.items[k]
	c.mu.RUnlock()
	if !ok || now.Sub(ent.at) > c.ttl {
		var zero V
		return zero, false
	}
	ent.used.Store(now.UnixNano())
	return ent.val, true
}

// Put stores v under k, dropping expired entries and then the least recently
// used ones while over size.
func (c *Cache[V]) Put(k string, v V) {
	if c.ttl <= 0 {
		return
	}
	now := c.now()
	ent := &cacheEntry[V]{at: now, val: v}
	ent.used.Store(now.UnixNano())

	c.mu.Lock()
	defer c.mu.Unlock()
	c.items[k] = ent
	if len(c.items) <= c.size {
		return
	}
	for key, e := range c.items {
		if now.Sub(e.at) > c.ttl {
			delete(c.items, key)
		}
	}
	for len(c.items) > c.size {
		c.evictOldestLocked()
	}
}

func (c *Cache[V]) evictOldestLocked() {
	var (
		oldest string
		least  int64
		found  bool
	)
	for key, e := range c.items {
		if u := e.used.Load(); !found || u < least {
			oldest, least, found = key, u, true
		}
	}
	if found {
		delete(c.items, oldest)
	}
}

// Len returns the number of stored entries, fresh or not.
func (c *Cache[V]) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.items)
}

// Do returns the cached value for k or loads it with fn. Concurrent misses
// for the same key share one call of fn, which runs detached from any single
// caller's cancellation; each caller stops waiting when its own ctx is done.
// Errors are not cached.
func (c *Cache[V]) Do(ctx context.Context, k string, fn func(ctx context.Context) (V, error)) (V, error) {
	var zero V
	if v, ok := c.Get(k); ok {
		return v, nil
	}
	loadCtx := context.WithoutCancel(ctx)
	ch := c.group.DoChan(k, func() (any, error) {
		if v, ok := c.Get(k); ok {
			return v, nil
		}
		v, err := fn(loadCtx)
		if err != nil {
			return nil, err
		}
		c.Put(k, v)
		return v, nil
	})
	select {
	case <-ctx.Done():
		return zero, ctx.Err()
	case res := <-ch:
		if res.Err != nil {
			return zero, res.Err
		}
		return res.Val.(V), nil
	}
}
