package cache

import (
	"context"
	"time"

	"golang.org/x/sync/singleflight"
)

// Group puts a Cache behind a singleflight group so that a missing value is
// built at most once, even when many goroutines ask for it at the same time.
//
// Each Group owns its own flight table, so keys from unrelated caches never
// collide.
type Group[V any] struct {
	cache Cache[V]
	sf    singleflight.Group
	ttl   time.Duration
}

// NewGroup wraps c. Values stored by GetOrSet use ttl (see Cache.Set for
// the TTL semantics).
func NewGroup[V any](c Cache[V], ttl time.Duration) *Group[V] {
	return &Group[V]{cache: c, ttl: ttl}
}

// Cache returns the underlying cache.
func (g *Group[V]) Cache() Cache[V] {
	return g.cache
}

// GetOrSet returns the cached value for key or calls fn to build it.
//
// The cache is checked again inside the flight and the value is stored
// before the flight ends, so a caller arriving right after a flight
// completes reads the stored value instead of starting a second build.
// Errors from fn are returned and nothing is stored.
func (g *Group[V]) GetOrSet(ctx context.Context, key string, fn func(ctx context.Context) (V, error)) (V, error) {
	if v, err := g.cache.Get(ctx, key); err == nil {
		return v, nil
	}

	res, err, _ := g.sf.Do(key, func() (any, error) {
		if v, err := g.cache.Get(ctx, key); err == nil {
			return v, nil
		}

		v, err := fn(ctx)
		if err != nil {
			return nil, err
		}

		// Best effort: a failing backend still hands the built value out.
		_ = g.cache.Set(ctx, key, v, g.ttl)

		return v, nil
	})
	if err != nil {
		var zero V
		return zero, err
	}

	v, _ := res.(V)
	return v, nil
}

// Forget drops key from the cache so the next GetOrSet rebuilds it.
func (g *Group[V]) Forget(ctx context.Context, key string) error {
	g.sf.Forget(key)
	return g.cache.Delete(ctx, key)
}
