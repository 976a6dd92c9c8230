package cache

import (
	"context"
	"testing"
	"time"
)

// fixedClock lets tests advance time manually.
type fixedClock struct {
	t time.Time
}

func (c *fixedClock) Now() time.Time              { return c.t }
func (c *fixedClock) Advance(d time.Duration)     { c.t = c.t.Add(d) }

func newTestStore(ttl time.Duration) (*Store[string], *fixedClock) {
	clock := &fixedClock{t: time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)}
	s := New[string](ttl)
	s.now = clock.Now
	return s, clock
}

func TestStoreLookupRoundTrip(t *testing.T) {
	ctx := context.Background()
	s, _ := newTestStore(time.Hour)

	s.Store(ctx, "owner/repo", "result")

	got, ok := s.Lookup(ctx, "owner/repo")
	if !ok || got != "result" {
		t.Fatalf("Lookup = (%q, %v), want (result, true)", got, ok)
	}
}

func TestLookupMiss(t *testing.T) {
	ctx := context.Background()
	s, _ := newTestStore(time.Hour)

	if _, ok := s.Lookup(ctx, "owner/unknown"); ok {
		t.Error("Lookup on empty store reported a hit")
	}
}

func TestKeyCaseInsensitive(t *testing.T) {
	ctx := context.Background()
	s, _ := newTestStore(time.Hour)

	s.Store(ctx, "Owner/Repo", "result")

	if got, ok := s.Lookup(ctx, "owner/repo"); !ok || got != "result" {
		t.Errorf("differently-cased locator missed the cache: (%q, %v)", got, ok)
	}
}

func TestKeyStable(t *testing.T) {
	if Key("Owner/Repo") != Key("owner/repo") {
		t.Error("Key is not case-insensitive")
	}
	// Deterministic across runs: a fixed input has a fixed digest.
	if got := Key("foo/bar"); got != Key("foo/bar") || len(got) != 64 {
		t.Errorf("Key(foo/bar) = %q", got)
	}
}

func TestExpiry(t *testing.T) {
	ctx := context.Background()
	s, clock := newTestStore(time.Hour)

	s.Store(ctx, "owner/repo", "result")
	clock.Advance(time.Hour + time.Second)

	if _, ok := s.Lookup(ctx, "owner/repo"); ok {
		t.Fatal("Lookup returned an expired entry")
	}

	// Lazy expiry removed the entry; a sweep finds nothing left.
	if s.Len() != 0 {
		t.Errorf("Len() = %d after expired lookup, want 0", s.Len())
	}
	if n := s.SweepExpired(ctx); n != 0 {
		t.Errorf("SweepExpired() = %d, want 0", n)
	}
}

func TestStoreResetsExpiry(t *testing.T) {
	ctx := context.Background()
	s, clock := newTestStore(time.Hour)

	s.Store(ctx, "owner/repo", "old")
	clock.Advance(50 * time.Minute)
	s.Store(ctx, "owner/repo", "new")
	clock.Advance(50 * time.Minute)

	got, ok := s.Lookup(ctx, "owner/repo")
	if !ok || got != "new" {
		t.Errorf("Lookup = (%q, %v), want (new, true)", got, ok)
	}
}

func TestInvalidate(t *testing.T) {
	ctx := context.Background()
	s, _ := newTestStore(time.Hour)

	s.Store(ctx, "owner/repo", "result")
	s.Invalidate(ctx, "OWNER/REPO")

	if _, ok := s.Lookup(ctx, "owner/repo"); ok {
		t.Error("entry survived Invalidate")
	}

	// Invalidating a missing entry is a no-op.
	s.Invalidate(ctx, "owner/other")
}

func TestClear(t *testing.T) {
	ctx := context.Background()
	s, _ := newTestStore(time.Hour)

	s.Store(ctx, "a/a", "1")
	s.Store(ctx, "b/b", "2")
	s.Clear(ctx)

	if s.Len() != 0 {
		t.Errorf("Len() = %d after Clear, want 0", s.Len())
	}
}

func TestSweepExpired(t *testing.T) {
	ctx := context.Background()
	s, clock := newTestStore(time.Hour)

	s.Store(ctx, "old/one", "1")
	s.Store(ctx, "old/two", "2")
	clock.Advance(2 * time.Hour)
	s.Store(ctx, "fresh/one", "3")

	if n := s.SweepExpired(ctx); n != 2 {
		t.Errorf("SweepExpired() = %d, want 2", n)
	}
	if s.Len() != 1 {
		t.Errorf("Len() = %d after sweep, want 1", s.Len())
	}
	if _, ok := s.Lookup(ctx, "fresh/one"); !ok {
		t.Error("fresh entry removed by sweep")
	}
}

func TestDefaultTTL(t *testing.T) {
	s := New[string](0)
	if s.ttl != DefaultTTL {
		t.Errorf("ttl = %v, want %v", s.ttl, DefaultTTL)
	}
}
