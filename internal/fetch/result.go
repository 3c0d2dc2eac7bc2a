package fetch

import "github.com/rshade/trustboard/internal/cache"

// Origin says where the data in a Result came from.
type Origin string

// Origins.
const (
	OriginNone    Origin = ""
	OriginCache   Origin = "cache"
	OriginLive    Origin = "live"
	OriginFixture Origin = "fixture"
)

// Result is the observable state of a keyed fetch.
//
// Exactly one of three shapes holds:
//   - Loading: Loading is true, Data and Err are nil.
//   - Ready: Data is non-nil, Loading is false, Err is nil.
//   - Failed: Err is non-nil, Data is nil, Loading is false.
//
// Data is shared with the cache and must be treated as read-only.
type Result[T any] struct {
	Key     string
	Data    *T
	Loading bool
	Err     error
	Origin  Origin

	// Substituted is true when Data is fixture data standing in for a
	// failed or rate-limited live fetch.
	Substituted bool
}

// Message returns the error text, or "" when there is no error.
func (r Result[T]) Message() string {
	if r.Err == nil {
		return ""
	}
	return r.Err.Error()
}

// Ready reports whether the result carries data.
func (r Result[T]) Ready() bool {
	return !r.Loading && r.Err == nil && r.Data != nil
}

// Degraded reports whether the data came from a fixture substitution.
func (r Result[T]) Degraded() bool {
	return r.Substituted
}

func loadingResult[T any](key string) Result[T] {
	return Result[T]{Key: key, Loading: true}
}

func errorResult[T any](key string, err error) Result[T] {
	return Result[T]{Key: key, Err: err}
}

func readyResult[T any](entry cache.Entry[T], origin Origin) Result[T] {
	value := entry.Value
	return Result[T]{
		Key:         entry.Key,
		Data:        &value,
		Origin:      origin,
		Substituted: entry.IsFixture(),
	}
}

func originOf[T any](entry cache.Entry[T]) Origin {
	if entry.IsFixture() {
		return OriginFixture
	}
	return OriginLive
}
