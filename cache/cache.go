// cache/cache.go

// Package cache provides the in-process TTL cache that memoizes upstream
// read results. Correctness never depends on the background sweep: the
// read path self-evicts expired entries.
package cache

import (
	"encoding/json"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"

	logger "github.com/nikhilsag/hrbridge/logging"
)

// DefaultTTL applies when a caller does not pick one and the resource type
// is unknown.
const DefaultTTL = 5 * time.Minute

// DefaultCleanupInterval is how often the background sweep reclaims
// entries nobody reads anymore.
const DefaultCleanupInterval = 60 * time.Second

// resourceTTLs tunes entry lifetimes per resource type: longer for
// near-static resources, shorter for high-churn ones.
var resourceTTLs = map[string]time.Duration{
	"employees": 5 * time.Minute,
	"teams":     15 * time.Minute,
	"locations": 15 * time.Minute,
	"leaves":    1 * time.Minute,
	"documents": 5 * time.Minute,
}

// TTLFor returns the default TTL for a resource type.
func TTLFor(resource string) time.Duration {
	if ttl, ok := resourceTTLs[resource]; ok {
		return ttl
	}
	return DefaultTTL
}

type entry struct {
	data      any
	expiresAt time.Time
}

type Stats struct {
	Size int      `json:"size"`
	Keys []string `json:"keys"`
}

type Cache struct {
	mu      sync.RWMutex
	entries map[string]entry

	stopSweep chan struct{}
	stopOnce  sync.Once
}

// New creates a cache and starts its background sweep. Interval <= 0 falls
// back to DefaultCleanupInterval. Call Destroy on shutdown.
func New(cleanupInterval time.Duration) *Cache {
	if cleanupInterval <= 0 {
		cleanupInterval = DefaultCleanupInterval
	}
	c := &Cache{
		entries:   make(map[string]entry),
		stopSweep: make(chan struct{}),
	}
	go c.sweepLoop(cleanupInterval)
	return c
}

// Key builds a deterministic cache key from a resource name and params.
// Params are sorted by key, nil values dropped, values JSON-serialized and
// joined as k=v&k=v after a colon. No params yields the bare resource name.
func Key(resource string, params map[string]any) string {
	if len(params) == 0 {
		return resource
	}

	keys := make([]string, 0, len(params))
	for k, v := range params {
		if v == nil {
			continue
		}
		keys = append(keys, k)
	}
	if len(keys) == 0 {
		return resource
	}
	sort.Strings(keys)

	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		encoded, err := json.Marshal(params[k])
		if err != nil {
			// Unserializable values degrade to their fmt rendering;
			// determinism for a given value is all that matters here.
			encoded = []byte(fmt.Sprintf("%v", params[k]))
		}
		parts = append(parts, k+"="+string(encoded))
	}
	return resource + ":" + strings.Join(parts, "&")
}

// Get returns the stored value unless absent or expired. An expired entry
// is deleted before reporting a miss.
func (c *Cache) Get(key string) (any, bool) {
	c.mu.RLock()
	e, ok := c.entries[key]
	c.mu.RUnlock()

	if !ok {
		return nil, false
	}
	if time.Now().After(e.expiresAt) {
		c.mu.Lock()
		// Re-check under the write lock: a concurrent Set may have renewed it.
		if cur, still := c.entries[key]; still && time.Now().After(cur.expiresAt) {
			delete(c.entries, key)
		}
		c.mu.Unlock()
		logger.Debug("Cache entry expired", zap.String("key", key))
		return nil, false
	}
	return e.data, true
}

// Set unconditionally overwrites. TTL <= 0 falls back to DefaultTTL.
func (c *Cache) Set(key string, value any, ttl time.Duration) {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	c.mu.Lock()
	c.entries[key] = entry{data: value, expiresAt: time.Now().Add(ttl)}
	c.mu.Unlock()
}

// Invalidate removes one entry and reports whether anything was removed.
func (c *Cache) Invalidate(key string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if _, ok := c.entries[key]; !ok {
		return false
	}
	delete(c.entries, key)
	return true
}

// InvalidatePrefix removes every entry whose key starts with prefix and
// returns the count removed.
func (c *Cache) InvalidatePrefix(prefix string) int {
	c.mu.Lock()
	defer c.mu.Unlock()
	removed := 0
	for key := range c.entries {
		if strings.HasPrefix(key, prefix) {
			delete(c.entries, key)
			removed++
		}
	}
	if removed > 0 {
		logger.Debug("Cache prefix invalidated",
			zap.String("prefix", prefix),
			zap.Int("removed", removed))
	}
	return removed
}

// Clear drops everything.
func (c *Cache) Clear() {
	c.mu.Lock()
	c.entries = make(map[string]entry)
	c.mu.Unlock()
}

// Stats reports the current size and keys, for introspection only.
func (c *Cache) Stats() Stats {
	c.mu.RLock()
	defer c.mu.RUnlock()
	keys := make([]string, 0, len(c.entries))
	for key := range c.entries {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return Stats{Size: len(c.entries), Keys: keys}
}

// Destroy stops the background sweep. Safe to call multiple times.
func (c *Cache) Destroy() {
	c.stopOnce.Do(func() {
		close(c.stopSweep)
	})
}

func (c *Cache) sweepLoop(interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ticker.C:
			c.sweep()
		case <-c.stopSweep:
			return
		}
	}
}

func (c *Cache) sweep() {
	now := time.Now()
	c.mu.Lock()
	removed := 0
	for key, e := range c.entries {
		if now.After(e.expiresAt) {
			delete(c.entries, key)
			removed++
		}
	}
	c.mu.Unlock()
	if removed > 0 {
		logger.Debug("Cache sweep completed", zap.Int("removed", removed))
	}
}

// Cached is a read-through helper: return the cached value when present
// and unexpired, otherwise invoke fetch, store the result and return it.
// A failed fetch propagates uncached.
func Cached[T any](c *Cache, key string, ttl time.Duration, fetch func() (T, error)) (T, error) {
	if v, ok := c.Get(key); ok {
		if typed, isT := v.(T); isT {
			logger.Debug("Cache hit", zap.String("key", key))
			return typed, nil
		}
		// A type mismatch means the key is being reused for a different
		// shape; drop the stale entry and refetch.
		c.Invalidate(key)
	}

	logger.Debug("Cache miss", zap.String("key", key))
	value, err := fetch()
	if err != nil {
		var zero T
		return zero, err
	}
	c.Set(key, value, ttl)
	return value, nil
}
