// Package cache provides a generic Cache interface with in-memory and Redis
// implementations, plus Group for build-once lookups.
//
// # In-Memory Cache
//
// [Memory] keeps values in a map guarded by a read-write mutex. Entries never
// expire unless a TTL is given, which suits long-lived objects such as locale
// formatters:
//
//	c := cache.NewMemory[string]()
//	_ = c.Set(ctx, "greeting", "hello", 0)
//
// # Redis Cache
//
// [Redis] stores serialized values under an optional key prefix. Pass
// [BytesMarshaler] for values that are already bytes:
//
//	docs := cache.NewRedis[[]byte](client, cache.BytesMarshaler{},
//	    cache.WithPrefix("fluent:docs"),
//	    cache.WithRedisDefaultTTL(10*time.Minute),
//	)
//
// # Build Once
//
// [Group] combines a cache with a singleflight group. Concurrent misses for
// the same key share one call to the build function and the value is stored
// before the flight ends:
//
//	g := cache.NewGroup[*Formatter](cache.NewMemory[*Formatter](), -1)
//	f, err := g.GetOrSet(ctx, key, func(ctx context.Context) (*Formatter, error) {
//	    return buildFormatter(key)
//	})
//
// # Error Handling
//
//   - [ErrNotFound]: key does not exist or has expired
//   - [ErrClosed]: write on a closed cache
//   - [ErrFull]: bounded memory cache has no room
//   - [ErrMarshal], [ErrUnmarshal]: serialization failed
package cache
