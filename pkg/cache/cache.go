// Package cache is a small in-memory key-value store with a per-store
// TTL. It backs best-effort external lookups (currency rates and the
// like) so repeated reads within the window skip the network. Misses
// and expiries are indistinguishable to callers; there is no error
// surface.
package cache

import (
	"strings"
	"sync"
	"time"
)

// DefaultTTL is the freshness window applied when none is configured.
const DefaultTTL = 5 * time.Minute

type entry struct {
	value    any
	storedAt time.Time
}

// Store is a TTL key-value store safe for concurrent use.
type Store struct {
	mu      sync.Mutex
	entries map[string]entry
	ttl     time.Duration
	now     func() time.Time
}

// OptionFn mutates a Store during construction.
type OptionFn func(*Store)

// WithTTL overrides the freshness window.
func WithTTL(ttl time.Duration) OptionFn {
	return func(s *Store) {
		if ttl > 0 {
			s.ttl = ttl
		}
	}
}

// WithClock injects a time source, used by tests to force expiry.
func WithClock(now func() time.Time) OptionFn {
	return func(s *Store) {
		if now != nil {
			s.now = now
		}
	}
}

// New constructs a Store with the default TTL plus any overrides.
func New(fns ...OptionFn) *Store {
	s := &Store{
		entries: make(map[string]entry),
		ttl:     DefaultTTL,
		now:     time.Now,
	}
	for _, fn := range fns {
		if fn != nil {
			fn(s)
		}
	}
	return s
}

// Get returns the cached value if it exists and has not expired.
// Expired entries are removed on read.
func (s *Store) Get(key string) (any, bool) {
	if s == nil {
		return nil, false
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	e, found := s.entries[key]
	if !found {
		return nil, false
	}
	if s.now().Sub(e.storedAt) > s.ttl {
		delete(s.entries, key)
		return nil, false
	}
	return e.value, true
}

// Set stores a value with the current timestamp.
func (s *Store) Set(key string, value any) {
	if s == nil {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries[key] = entry{value: value, storedAt: s.now()}
}

// Remove drops a single key.
func (s *Store) Remove(key string) {
	if s == nil {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.entries, key)
}

// ClearPrefix drops every key with the given prefix.
func (s *Store) ClearPrefix(prefix string) {
	if s == nil {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	for key := range s.entries {
		if strings.HasPrefix(key, prefix) {
			delete(s.entries, key)
		}
	}
}
