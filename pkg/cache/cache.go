// Package cache provides an in-memory, TTL-based store for completed
// analyses, keyed by repository locator.
//
// The store is a best-effort, single-process convenience guarding against
// redundant remote calls, not a correctness-critical component. It holds no
// persisted state: entries live for the process lifetime at most.
//
// Expiry is lazy: an expired entry is evicted when a lookup finds it, and
// SweepExpired exists for maintenance callers that want bulk eviction. All
// operations are mutex-guarded because the HTTP server drives concurrent
// requests against a single instance.
//
// Stores are instantiable and injectable, never hidden singletons, so tests
// construct isolated instances freely.
package cache

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"strings"
	"sync"
	"time"

	"github.com/Ujjayini-101/GitRefiny/pkg/observability"
)

// DefaultTTL is the time-to-live applied when no TTL is configured.
const DefaultTTL = time.Hour

// entry pairs a cached value with its absolute expiry timestamp.
// Entries are owned exclusively by the store and never exposed.
type entry[V any] struct {
	value     V
	expiresAt time.Time
}

// Store is a keyed, TTL-based in-memory cache.
type Store[V any] struct {
	mu      sync.Mutex
	entries map[string]entry[V]
	ttl     time.Duration

	// now is replaceable in tests.
	now func() time.Time
}

// New creates a Store with the given TTL. A non-positive TTL falls back to
// DefaultTTL.
func New[V any](ttl time.Duration) *Store[V] {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &Store[V]{
		entries: make(map[string]entry[V]),
		ttl:     ttl,
		now:     time.Now,
	}
}

// Key derives the cache key for a locator string. Keys are case-insensitive
// (differently-cased locators share a slot) and stable across process runs:
// the hex SHA-256 of the lower-cased locator.
func Key(locator string) string {
	sum := sha256.Sum256([]byte(strings.ToLower(locator)))
	return hex.EncodeToString(sum[:])
}

// Lookup returns the cached value for locator if present and fresh.
// A found-but-expired entry is evicted and reported as a miss.
func (s *Store[V]) Lookup(ctx context.Context, locator string) (V, bool) {
	var zero V
	key := Key(locator)

	s.mu.Lock()
	defer s.mu.Unlock()

	e, ok := s.entries[key]
	if !ok {
		observability.Cache().OnCacheMiss(ctx, key)
		return zero, false
	}
	if s.now().After(e.expiresAt) {
		delete(s.entries, key)
		observability.Cache().OnCacheEvict(ctx, key)
		observability.Cache().OnCacheMiss(ctx, key)
		return zero, false
	}
	observability.Cache().OnCacheHit(ctx, key)
	return e.value, true
}

// Store inserts or overwrites the entry for locator, resetting its expiry
// to now + TTL.
func (s *Store[V]) Store(ctx context.Context, locator string, v V) {
	key := Key(locator)

	s.mu.Lock()
	defer s.mu.Unlock()

	s.entries[key] = entry[V]{value: v, expiresAt: s.now().Add(s.ttl)}
	observability.Cache().OnCacheStore(ctx, key)
}

// Invalidate removes the entry for locator if present; no-op otherwise.
func (s *Store[V]) Invalidate(ctx context.Context, locator string) {
	key := Key(locator)

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.entries[key]; ok {
		delete(s.entries, key)
		observability.Cache().OnCacheEvict(ctx, key)
	}
}

// Clear removes every entry.
func (s *Store[V]) Clear(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for key := range s.entries {
		observability.Cache().OnCacheEvict(ctx, key)
	}
	s.entries = make(map[string]entry[V])
}

// SweepExpired purges every entry whose expiry has passed and reports how
// many were removed.
func (s *Store[V]) SweepExpired(ctx context.Context) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	removed := 0
	for key, e := range s.entries {
		if now.After(e.expiresAt) {
			delete(s.entries, key)
			observability.Cache().OnCacheEvict(ctx, key)
			removed++
		}
	}
	return removed
}

// Len reports the number of entries currently held, expired or not.
func (s *Store[V]) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.entries)
}
