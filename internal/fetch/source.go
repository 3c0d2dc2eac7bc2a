package fetch

import "context"

// Source fetches the value for a key. Implementations must be safe for
// concurrent use.
type Source[T any] interface {
	Fetch(ctx context.Context, key string) (T, error)
}

// SourceFunc adapts a function to Source.
type SourceFunc[T any] func(ctx context.Context, key string) (T, error)

// Fetch calls f.
func (f SourceFunc[T]) Fetch(ctx context.Context, key string) (T, error) {
	return f(ctx, key)
}

// FixtureFunc loads fixture data. It must return a fresh value on each call.
type FixtureFunc[T any] func() (T, error)

// FixtureSource serves the same fixture for every key without touching the
// network.
type FixtureSource[T any] struct {
	load FixtureFunc[T]
}

// NewFixtureSource returns a Source backed by load.
func NewFixtureSource[T any](load FixtureFunc[T]) *FixtureSource[T] {
	return &FixtureSource[T]{load: load}
}

// Fetch returns the fixture. Only a cancelled context can make it fail
// besides the loader itself.
func (s *FixtureSource[T]) Fetch(ctx context.Context, _ string) (T, error) {
	if err := ctx.Err(); err != nil {
		var zero T
		return zero, err
	}
	return s.load()
}
