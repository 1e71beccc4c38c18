package wm

import (
	"reflect"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"taskswitch/internal/platform"
)

func newTestCache(fake *platform.Fake, ttl time.Duration) *Cache {
	enum := NewEnumerator(fake, defaultFilter(), zerolog.Nop())
	return NewCache(enum, ttl)
}

func TestCache_HitWithinTTL(t *testing.T) {
	fake := platform.NewFake(testWindow(1, "one", "Normal", "a.exe"))
	cache := newTestCache(fake, 400*time.Millisecond)

	now := time.Unix(1000, 0)
	cache.now = func() time.Time { return now }

	first, err := cache.Windows()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	now = now.Add(100 * time.Millisecond)
	second, err := cache.Windows()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !reflect.DeepEqual(first, second) {
		t.Fatalf("expected identical snapshots within TTL")
	}
	if fake.ListCalls != 1 {
		t.Fatalf("expected a single platform enumeration, got %d", fake.ListCalls)
	}
	stats := cache.Stats()
	if stats.Hits != 1 || stats.Misses != 1 {
		t.Fatalf("expected 1 hit and 1 miss, got %+v", stats)
	}
}

func TestCache_ExpiresAfterTTL(t *testing.T) {
	fake := platform.NewFake(testWindow(1, "one", "Normal", "a.exe"))
	cache := newTestCache(fake, 400*time.Millisecond)

	now := time.Unix(1000, 0)
	cache.now = func() time.Time { return now }

	if _, err := cache.Windows(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	now = now.Add(time.Second)
	if _, err := cache.Windows(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if fake.ListCalls != 2 {
		t.Fatalf("expected re-enumeration after TTL expiry, got %d calls", fake.ListCalls)
	}
}

func TestCache_InvalidateForcesRefresh(t *testing.T) {
	fake := platform.NewFake(testWindow(1, "one", "Normal", "a.exe"))
	cache := newTestCache(fake, time.Hour)

	if _, err := cache.Windows(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	before := cache.Stats().Misses

	cache.Invalidate()
	if _, err := cache.Windows(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if got := cache.Stats().Misses; got != before+1 {
		t.Fatalf("expected miss count to increment after invalidate, got %d -> %d", before, got)
	}
	if fake.ListCalls != 2 {
		t.Fatalf("expected fresh enumeration after invalidate, got %d calls", fake.ListCalls)
	}
}

func TestCache_ReturnsCopies(t *testing.T) {
	fake := platform.NewFake(testWindow(1, "one", "Normal", "a.exe"))
	cache := newTestCache(fake, time.Hour)

	first, err := cache.Windows()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	first[0].Title = "mutated"

	second, err := cache.Windows()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if second[0].Title != "one" {
		t.Fatalf("caller mutation leaked into the cache snapshot")
	}
}
