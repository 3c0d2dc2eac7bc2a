package fetch

import (
	"context"

	"golang.org/x/sync/errgroup"
)

// DefaultPrefetchLimit bounds concurrent fetches when Prefetch gets limit <= 0.
const DefaultPrefetchLimit = 4

// Prefetch resolves keys concurrently, at most limit at a time, and returns
// the results in key order. A failing key does not stop the others. The
// returned error is non-nil only when ctx ends first.
func (r *Resolver[T]) Prefetch(ctx context.Context, keys []string, limit int) ([]Result[T], error) {
	if limit <= 0 {
		limit = DefaultPrefetchLimit
	}

	results := make([]Result[T], len(keys))
	g, gCtx := errgroup.WithContext(ctx)
	g.SetLimit(limit)

	for i, key := range keys {
		g.Go(func() error {
			results[i] = r.Resolve(gCtx, key)
			return nil
		})
	}
	_ = g.Wait()

	return results, ctx.Err()
}
