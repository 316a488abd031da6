package mcgen

import (
	"context"
	"sync"
	"time"
)

// ImageCache stores rendered PNGs by cache key.
type ImageCache interface {
	// Get returns the cached bytes and true, or false on a miss.
	Get(ctx context.Context, key string) ([]byte, bool, error)
	// Set stores data under key.
	Set(ctx context.Context, key string, data []byte) error
}

// MemoryCache is an in-memory ImageCache with a TTL and a bound on the
// number of entries.
type MemoryCache struct {
	mu      sync.RWMutex
	entries map[string]memoryEntry
	ttl     time.Duration
	max     int
	now     func() time.Time
}

type memoryEntry struct {
	data   []byte
	stored time.Time
}

// NewMemoryCache creates a MemoryCache keeping at most max entries for ttl.
func NewMemoryCache(ttl time.Duration, max int) *MemoryCache {
	return &MemoryCache{
		entries: make(map[string]memoryEntry),
		ttl:     ttl,
		max:     max,
		now:     time.Now,
	}
}

func (c *MemoryCache) valid(e memoryEntry) bool {
	return c.now().Sub(e.stored) < c.ttl
}

// Get implements ImageCache.
func (c *MemoryCache) Get(_ context.Context, key string) ([]byte, bool, error) {
	c.mu.RLock()
	e, ok := c.entries[key]
	c.mu.RUnlock()
	if !ok {
		return nil, false, nil
	}
	if !c.valid(e) {
		c.mu.Lock()
		if cur, ok := c.entries[key]; ok && !c.valid(cur) {
			delete(c.entries, key)
		}
		c.mu.Unlock()
		return nil, false, nil
	}
	return e.data, true, nil
}

// Set implements ImageCache. When full it drops expired entries first and
// then the oldest one.
func (c *MemoryCache) Set(_ context.Context, key string, data []byte) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if _, exists := c.entries[key]; !exists && len(c.entries) >= c.max {
		c.evict()
	}
	c.entries[key] = memoryEntry{data: data, stored: c.now()}
	return nil
}

func (c *MemoryCache) evict() {
	var oldestKey string
	var oldest time.Time
	for k, e := range c.entries {
		if !c.valid(e) {
			delete(c.entries, k)
			continue
		}
		if oldestKey == "" || e.stored.Before(oldest) {
			oldestKey, oldest = k, e.stored
		}
	}
	if len(c.entries) >= c.max && oldestKey != "" {
		delete(c.entries, oldestKey)
	}
}

// Len returns the number of stored entries, including expired ones not yet
// evicted.
func (c *MemoryCache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}

// Invalidate clears the cache.
func (c *MemoryCache) Invalidate() {
	c.mu.Lock()
	c.entries = make(map[string]memoryEntry)
	c.mu.Unlock()
}

func (a *App) newCache() (ImageCache, error) {
	if a.Config.RedisURL != "" {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		rc, err := NewRedisCache(ctx, a.Config.RedisURL, a.Config.CacheTTL)
		if err != nil {
			return nil, err
		}
		a.Logger.Info("using redis image cache")
		return rc, nil
	}
	if a.Config.CacheSize < 0 {
		return nil, nil
	}
	return NewMemoryCache(a.Config.CacheTTL, a.Config.CacheSize), nil
}
