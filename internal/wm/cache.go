package wm

import (
	"sync"
	"time"

	"taskswitch/internal/platform"
)

// CacheStats describes cache effectiveness for observability surfaces.
type CacheStats struct {
	Hits       uint64
	Misses     uint64
	CapturedAt time.Time
}

// Cache wraps the Enumerator with a short TTL so bursts of calls (UI
// refresh, batch activation) do not multiply platform queries. Correctness
// never depends on freshness: consumers that act on a window re-validate
// via Enumerator.IsValid or WindowInfo first.
type Cache struct {
	enum *Enumerator
	ttl  time.Duration
	now  func() time.Time

	mu         sync.Mutex
	snapshot   []platform.Window
	capturedAt time.Time
	valid      bool
	hits       uint64
	misses     uint64
}

// NewCache creates a cache over enum with the given time-to-live.
func NewCache(enum *Enumerator, ttl time.Duration) *Cache {
	return &Cache{enum: enum, ttl: ttl, now: time.Now}
}

// Windows returns the cached snapshot if it is younger than the TTL,
// refreshing it otherwise. Callers racing a refresh wait for it instead of
// enumerating twice. The returned slice is a copy; the cache keeps
// exclusive ownership of its internal storage.
func (c *Cache) Windows() ([]platform.Window, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.valid && c.now().Sub(c.capturedAt) < c.ttl {
		c.hits++
		return append([]platform.Window(nil), c.snapshot...), nil
	}

	c.misses++
	windows, err := c.enum.Enumerate()
	if err != nil {
		return nil, err
	}
	c.snapshot = windows
	c.capturedAt = c.now()
	c.valid = true
	return append([]platform.Window(nil), windows...), nil
}

// Invalidate discards the current snapshot so the next Windows call
// re-enumerates.
func (c *Cache) Invalidate() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.snapshot = nil
	c.valid = false
}

// Stats returns hit/miss counters and the capture time of the current
// snapshot.
func (c *Cache) Stats() CacheStats {
	c.mu.Lock()
	defer c.mu.Unlock()
	return CacheStats{Hits: c.hits, Misses: c.misses, CapturedAt: c.capturedAt}
}
