package cache

import "time"

// Origin records where a cached value came from.
type Origin string

// Known origins.
const (
	OriginLive    Origin = "live"
	OriginFixture Origin = "fixture"
)

// Entry is a single cached value with its provenance.
type Entry[T any] struct {
	// Key is the cache key (the influencer username).
	Key string `json:"key"`

	// Value is the cached payload.
	Value T `json:"value"`

	// StoredAt is when the entry was first stored.
	StoredAt time.Time `json:"stored_at"`

	// Origin is where Value came from.
	Origin Origin `json:"origin"`
}

// NewEntry creates an entry stamped with the current time.
func NewEntry[T any](key string, value T, origin Origin) Entry[T] {
	return Entry[T]{
		Key:      key,
		Value:    value,
		StoredAt: time.Now(),
		Origin:   origin,
	}
}

// Age returns the duration since the entry was stored.
func (e Entry[T]) Age() time.Duration {
	return time.Since(e.StoredAt)
}

// IsFixture reports whether the value was substituted from fixture data.
func (e Entry[T]) IsFixture() bool {
	return e.Origin == OriginFixture
}
