// Package fetch resolves keyed data through a per-key cache, a pluggable
// source and an optional fixture fallback.
//
// A Resolver moves each key through Loading to either Ready or Failed:
//
//	Peek(key)          cache hit -> Ready, miss -> Loading (no I/O)
//	Resolve(ctx, key)  hit -> Ready
//	                   success -> cached, Ready(live)
//	                   429 -> fixture cached, Ready(fixture)
//	                   other failure -> Failed, or fixture cached when
//	                                    fallback is enabled
//	                   cancellation -> Failed, nothing cached
//
// Concurrent Resolve calls for one key share a single source fetch.
package fetch

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/sync/singleflight"

	"github.com/rshade/trustboard/internal/cache"
)

// Resolver is the keyed fetch state machine. It is safe for concurrent use.
type Resolver[T any] struct {
	name     string
	source   Source[T]
	store    *cache.Store[T]
	fixture  FixtureFunc[T]
	fallback bool
	metrics  *Metrics
	logger   zerolog.Logger
	group    singleflight.Group
}

// Option configures a Resolver.
type Option[T any] func(*Resolver[T])

// WithFixture sets the fixture used when the source reports rate limiting.
func WithFixture[T any](f FixtureFunc[T]) Option[T] {
	return func(r *Resolver[T]) {
		r.fixture = f
	}
}

// WithFallback sets the fixture and also serves it for every other
// non-cancellation failure.
func WithFallback[T any](f FixtureFunc[T]) Option[T] {
	return func(r *Resolver[T]) {
		r.fixture = f
		r.fallback = true
	}
}

// WithMetrics records cache and fetch metrics on m.
func WithMetrics[T any](m *Metrics) Option[T] {
	return func(r *Resolver[T]) {
		r.metrics = m
	}
}

// WithLogger sets the resolver's logger.
func WithLogger[T any](l zerolog.Logger) Option[T] {
	return func(r *Resolver[T]) {
		r.logger = l
	}
}

// NewResolver creates a resolver named name (used in logs and metric
// labels) that reads through store to source.
func NewResolver[T any](name string, source Source[T], store *cache.Store[T], opts ...Option[T]) *Resolver[T] {
	r := &Resolver[T]{
		name:   name,
		source: source,
		store:  store,
		logger: zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(r)
	}
	r.logger = r.logger.With().Str("component", "fetch").Str("resource", name).Logger()
	return r
}

// FallbackEnabled reports whether failures are replaced with fixture data.
func (r *Resolver[T]) FallbackEnabled() bool {
	return r.fallback && r.fixture != nil
}

// Peek returns the state a consumer observes before any I/O: Ready for a
// cached key, Loading otherwise.
func (r *Resolver[T]) Peek(key string) Result[T] {
	key = cache.NormalizeKey(key)
	entry, err := r.store.Get(key)
	switch {
	case err == nil:
		return readyResult(entry, OriginCache)
	case errors.Is(err, cache.ErrInvalidCacheKey):
		return errorResult[T](key, err)
	default:
		return loadingResult[T](key)
	}
}

// Resolve returns the terminal state for key, fetching it if needed.
func (r *Resolver[T]) Resolve(ctx context.Context, key string) Result[T] {
	key = cache.NormalizeKey(key)
	if key == "" {
		return errorResult[T](key, cache.ErrInvalidCacheKey)
	}

	if entry, err := r.store.Get(key); err == nil {
		r.metrics.cacheLookup(r.name, true)
		r.logger.Debug().Ctx(ctx).Str("key", key).Msg("cache hit")
		return readyResult(entry, OriginCache)
	}
	r.metrics.cacheLookup(r.name, false)

	for {
		ch := r.group.DoChan(key, func() (any, error) {
			return r.load(ctx, key), nil
		})

		select {
		case <-ctx.Done():
			return errorResult[T](key, ctx.Err())
		case out := <-ch:
			res, _ := out.Val.(Result[T])
			// Another caller's cancellation must not fail a live caller.
			if out.Shared && isCancellation(res.Err) && ctx.Err() == nil {
				continue
			}
			return res
		}
	}
}

func (r *Resolver[T]) load(ctx context.Context, key string) Result[T] {
	// A flight that finished between the caller's lookup and DoChan has
	// already filled the cache.
	if entry, err := r.store.Get(key); err == nil {
		return readyResult(entry, OriginCache)
	}

	start := time.Now()
	v, err := r.source.Fetch(ctx, key)
	r.metrics.fetched(r.name, time.Since(start), err)

	if err == nil {
		entry, setErr := r.store.Set(key, v, cache.OriginLive)
		if setErr != nil {
			return r.fail(ctx, key, setErr)
		}
		r.logger.Debug().Ctx(ctx).Str("key", key).Dur("elapsed", time.Since(start)).Msg("fetched")
		return r.ready(entry)
	}

	if isCancellation(err) || ctx.Err() != nil {
		r.logger.Debug().Ctx(ctx).Str("key", key).Err(err).Msg("fetch cancelled")
		r.metrics.resolved(r.name, OriginNone)
		return errorResult[T](key, err)
	}

	if r.fixture != nil && (IsRateLimited(err) || r.fallback) {
		return r.substitute(ctx, key, err)
	}
	return r.fail(ctx, key, err)
}

func (r *Resolver[T]) substitute(ctx context.Context, key string, cause error) Result[T] {
	reason := failureReason(cause)
	v, err := r.fixture()
	if err != nil {
		return r.fail(ctx, key, fmt.Errorf("%w (fixture unavailable: %w)", cause, err))
	}

	entry, err := r.store.Set(key, v, cache.OriginFixture)
	if err != nil {
		return r.fail(ctx, key, err)
	}

	r.metrics.substituted(r.name, reason)
	r.logger.Warn().Ctx(ctx).
		Str("key", key).
		Str("reason", reason).
		Err(cause).
		Msg("serving fixture data")
	return r.ready(entry)
}

func (r *Resolver[T]) ready(entry cache.Entry[T]) Result[T] {
	origin := originOf(entry)
	r.metrics.resolved(r.name, origin)
	return readyResult(entry, origin)
}

func (r *Resolver[T]) fail(ctx context.Context, key string, err error) Result[T] {
	r.metrics.resolved(r.name, OriginNone)
	r.logger.Error().Ctx(ctx).Str("key", key).Err(err).Msg("fetch failed")
	return errorResult[T](key, err)
}

// isCancellation reports whether err came from the caller's context rather
// than from the source. Client timeouts are wrapped in ErrNetwork and do not
// count.
func isCancellation(err error) bool {
	if errors.Is(err, ErrNetwork) {
		return false
	}
	return errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded)
}
