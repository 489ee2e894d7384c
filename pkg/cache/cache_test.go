package cache_test

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/fluent/pkg/cache"
)

func TestMemory_GetSet(t *testing.T) {
	t.Parallel()

	t.Run("returns ErrNotFound for missing key", func(t *testing.T) {
		t.Parallel()

		c := cache.NewMemory[string]()
		_, err := c.Get(context.Background(), "missing")
		require.ErrorIs(t, err, cache.ErrNotFound)
	})

	t.Run("returns stored value", func(t *testing.T) {
		t.Parallel()

		c := cache.NewMemory[int]()
		ctx := context.Background()
		require.NoError(t, c.Set(ctx, "key", 42, 0))

		val, err := c.Get(ctx, "key")
		require.NoError(t, err)
		require.Equal(t, 42, val)
	})

	t.Run("zero ttl never expires by default", func(t *testing.T) {
		t.Parallel()

		c := cache.NewMemory[string]()
		ctx := context.Background()
		require.NoError(t, c.Set(ctx, "key", "value", 0))

		time.Sleep(5 * time.Millisecond)

		has, err := c.Has(ctx, "key")
		require.NoError(t, err)
		require.True(t, has)
	})

	t.Run("expires entries with positive ttl", func(t *testing.T) {
		t.Parallel()

		c := cache.NewMemory[string]()
		ctx := context.Background()
		require.NoError(t, c.Set(ctx, "key", "value", time.Millisecond))

		time.Sleep(5 * time.Millisecond)

		_, err := c.Get(ctx, "key")
		require.ErrorIs(t, err, cache.ErrNotFound)
		require.Equal(t, 1, c.Purge())
		require.Equal(t, 0, c.Len())
	})

	t.Run("default ttl applies to zero ttl", func(t *testing.T) {
		t.Parallel()

		c := cache.NewMemory[string](cache.WithDefaultTTL(time.Millisecond))
		ctx := context.Background()
		require.NoError(t, c.Set(ctx, "key", "value", 0))

		time.Sleep(5 * time.Millisecond)

		has, err := c.Has(ctx, "key")
		require.NoError(t, err)
		require.False(t, has)
	})
}

func TestMemory_MaxEntries(t *testing.T) {
	t.Parallel()

	c := cache.NewMemory[string](cache.WithMaxEntries(2))
	ctx := context.Background()

	require.NoError(t, c.Set(ctx, "a", "1", 0))
	require.NoError(t, c.Set(ctx, "b", "2", 0))
	require.ErrorIs(t, c.Set(ctx, "c", "3", 0), cache.ErrFull)

	// Overwriting an existing key is always allowed.
	require.NoError(t, c.Set(ctx, "a", "10", 0))

	val, err := c.Get(ctx, "a")
	require.NoError(t, err)
	require.Equal(t, "10", val)
}

func TestMemory_DeleteClearClose(t *testing.T) {
	t.Parallel()

	c := cache.NewMemory[string]()
	ctx := context.Background()

	require.NoError(t, c.Set(ctx, "a", "1", 0))
	require.NoError(t, c.Set(ctx, "b", "2", 0))

	require.NoError(t, c.Delete(ctx, "a"))
	_, err := c.Get(ctx, "a")
	require.ErrorIs(t, err, cache.ErrNotFound)

	require.NoError(t, c.Clear(ctx))
	require.Equal(t, 0, c.Len())

	require.NoError(t, c.Close())
	require.NoError(t, c.Close())
	require.ErrorIs(t, c.Set(ctx, "a", "1", 0), cache.ErrClosed)
}

func TestGroup_GetOrSet(t *testing.T) {
	t.Parallel()

	t.Run("returns cached value on hit", func(t *testing.T) {
		t.Parallel()

		c := cache.NewMemory[string]()
		ctx := context.Background()
		require.NoError(t, c.Set(ctx, "key", "cached", 0))

		g := cache.NewGroup[string](c, -1)
		val, err := g.GetOrSet(ctx, "key", func(context.Context) (string, error) {
			t.Fatal("fn should not be called on cache hit")
			return "", nil
		})
		require.NoError(t, err)
		require.Equal(t, "cached", val)
	})

	t.Run("builds on miss and stores the result", func(t *testing.T) {
		t.Parallel()

		g := cache.NewGroup[string](cache.NewMemory[string](), -1)
		ctx := context.Background()

		val, err := g.GetOrSet(ctx, "key", func(context.Context) (string, error) {
			return "computed", nil
		})
		require.NoError(t, err)
		require.Equal(t, "computed", val)

		cached, err := g.Cache().Get(ctx, "key")
		require.NoError(t, err)
		require.Equal(t, "computed", cached)
	})

	t.Run("returns build error and stores nothing", func(t *testing.T) {
		t.Parallel()

		g := cache.NewGroup[string](cache.NewMemory[string](), -1)
		ctx := context.Background()
		errBuild := errors.New("build failed")

		_, err := g.GetOrSet(ctx, "key", func(context.Context) (string, error) {
			return "", errBuild
		})
		require.ErrorIs(t, err, errBuild)

		_, err = g.Cache().Get(ctx, "key")
		require.ErrorIs(t, err, cache.ErrNotFound)
	})

	t.Run("builds exactly once under concurrency", func(t *testing.T) {
		t.Parallel()

		g := cache.NewGroup[int](cache.NewMemory[int](), -1)
		ctx := context.Background()
		var calls atomic.Int64
		var wg sync.WaitGroup

		for range 50 {
			wg.Go(func() {
				val, err := g.GetOrSet(ctx, "once", func(context.Context) (int, error) {
					calls.Add(1)
					time.Sleep(10 * time.Millisecond)
					return 42, nil
				})
				require.NoError(t, err)
				require.Equal(t, 42, val)
			})
		}
		wg.Wait()

		// Late arrivals read the stored value.
		val, err := g.GetOrSet(ctx, "once", func(context.Context) (int, error) {
			calls.Add(1)
			return 0, nil
		})
		require.NoError(t, err)
		require.Equal(t, 42, val)
		require.Equal(t, int64(1), calls.Load())
	})

	t.Run("groups do not share flights", func(t *testing.T) {
		t.Parallel()

		a := cache.NewGroup[string](cache.NewMemory[string](), -1)
		b := cache.NewGroup[string](cache.NewMemory[string](), -1)
		ctx := context.Background()

		va, err := a.GetOrSet(ctx, "same", func(context.Context) (string, error) { return "a", nil })
		require.NoError(t, err)
		vb, err := b.GetOrSet(ctx, "same", func(context.Context) (string, error) { return "b", nil })
		require.NoError(t, err)

		require.Equal(t, "a", va)
		require.Equal(t, "b", vb)
	})

	t.Run("forget forces a rebuild", func(t *testing.T) {
		t.Parallel()

		g := cache.NewGroup[int](cache.NewMemory[int](), -1)
		ctx := context.Background()
		var calls atomic.Int64
		build := func(context.Context) (int, error) { return int(calls.Add(1)), nil }

		v1, err := g.GetOrSet(ctx, "k", build)
		require.NoError(t, err)
		require.NoError(t, g.Forget(ctx, "k"))
		v2, err := g.GetOrSet(ctx, "k", build)
		require.NoError(t, err)

		require.Equal(t, 1, v1)
		require.Equal(t, 2, v2)
	})
}

func TestBytesMarshaler(t *testing.T) {
	t.Parallel()

	m := cache.BytesMarshaler{}
	data, err := m.Marshal([]byte("- id: hello"))
	require.NoError(t, err)
	require.Equal(t, "- id: hello", string(data))

	out, err := m.Unmarshal(data)
	require.NoError(t, err)
	require.Equal(t, data, out)
}
