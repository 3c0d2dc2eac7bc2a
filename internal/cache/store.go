package cache

import (
	"errors"
	"sort"
	"strings"
	"sync"
)

// Common cache errors.
var (
	ErrCacheNotFound   = errors.New("cache entry not found")
	ErrInvalidCacheKey = errors.New("cache key cannot be empty")
)

// Store is a concurrency-safe map of Entry values.
// Once a key is set its entry is never replaced or removed.
type Store[T any] struct {
	mu      sync.RWMutex
	entries map[string]Entry[T]
}

// NewStore creates an empty store.
func NewStore[T any]() *Store[T] {
	return &Store[T]{entries: make(map[string]Entry[T])}
}

// NormalizeKey trims surrounding whitespace from a key and lower-cases it.
// Usernames are case-insensitive handles.
func NormalizeKey(key string) string {
	return strings.ToLower(strings.TrimSpace(key))
}

// Get retrieves the entry for key.
// Returns ErrCacheNotFound if the key has never been set.
func (s *Store[T]) Get(key string) (Entry[T], error) {
	key = NormalizeKey(key)
	if key == "" {
		return Entry[T]{}, ErrInvalidCacheKey
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	entry, ok := s.entries[key]
	if !ok {
		return Entry[T]{}, ErrCacheNotFound
	}
	return entry, nil
}

// Set stores value under key and returns the entry now held for key.
// If key is already present the existing entry is kept and returned, so
// racing writers agree on a single value.
func (s *Store[T]) Set(key string, value T, origin Origin) (Entry[T], error) {
	key = NormalizeKey(key)
	if key == "" {
		return Entry[T]{}, ErrInvalidCacheKey
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if existing, ok := s.entries[key]; ok {
		return existing, nil
	}
	entry := NewEntry(key, value, origin)
	s.entries[key] = entry
	return entry, nil
}

// Len returns the number of cached entries.
func (s *Store[T]) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.entries)
}

// Keys returns the cached keys in sorted order.
func (s *Store[T]) Keys() []string {
	s.mu.RLock()
	keys := make([]string, 0, len(s.entries))
	for k := range s.entries {
		keys = append(keys, k)
	}
	s.mu.RUnlock()

	sort.Strings(keys)
	return keys
}
