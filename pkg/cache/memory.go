package cache

import (
	"context"
	"sync"
	"time"
)

// MemoryOption configures the in-memory cache.
type MemoryOption func(*memoryOptions)

type memoryOptions struct {
	defaultTTL time.Duration
	maxEntries int
}

// WithDefaultTTL sets the expiration used when Set is called with a zero TTL.
// Default: entries never expire.
func WithDefaultTTL(d time.Duration) MemoryOption {
	return func(o *memoryOptions) {
		o.defaultTTL = d
	}
}

// WithMaxEntries caps the number of live entries. Set returns ErrFull once
// the cap is reached and the key is new. Zero means unlimited.
func WithMaxEntries(n int) MemoryOption {
	return func(o *memoryOptions) {
		o.maxEntries = n
	}
}

type item[V any] struct {
	expiresAt time.Time // zero = never
	value     V
}

func (it item[V]) expired(now time.Time) bool {
	return !it.expiresAt.IsZero() && now.After(it.expiresAt)
}

// Memory is a map-backed cache tuned for read-heavy use: lookups take a
// shared lock, so concurrent readers never block each other. Expired
// entries are dropped lazily when they are overwritten or purged.
type Memory[V any] struct {
	items  map[string]item[V]
	opts   memoryOptions
	mu     sync.RWMutex
	closed bool
}

// NewMemory creates an in-memory cache.
//
//	c := cache.NewMemory[*Formatter]()
//	defer c.Close()
func NewMemory[V any](opts ...MemoryOption) *Memory[V] {
	m := &Memory[V]{
		items: make(map[string]item[V]),
		opts:  memoryOptions{defaultTTL: -1},
	}
	for _, opt := range opts {
		opt(&m.opts)
	}
	return m
}

// Get retrieves a value by key.
func (m *Memory[V]) Get(_ context.Context, key string) (V, error) {
	m.mu.RLock()
	it, ok := m.items[key]
	m.mu.RUnlock()

	if !ok || it.expired(time.Now()) {
		var zero V
		return zero, ErrNotFound
	}
	return it.value, nil
}

// Set stores a value under key.
func (m *Memory[V]) Set(_ context.Context, key string, value V, ttl time.Duration) error {
	if ttl == 0 {
		ttl = m.opts.defaultTTL
	}

	var expiresAt time.Time
	if ttl > 0 {
		expiresAt = time.Now().Add(ttl)
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if m.closed {
		return ErrClosed
	}

	if _, exists := m.items[key]; !exists && m.opts.maxEntries > 0 && len(m.items) >= m.opts.maxEntries {
		m.purgeLocked(time.Now())
		if len(m.items) >= m.opts.maxEntries {
			return ErrFull
		}
	}

	m.items[key] = item[V]{value: value, expiresAt: expiresAt}
	return nil
}

// Delete removes a key.
func (m *Memory[V]) Delete(_ context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.closed {
		return ErrClosed
	}
	delete(m.items, key)
	return nil
}

// Has reports whether a live entry exists for key.
func (m *Memory[V]) Has(ctx context.Context, key string) (bool, error) {
	_, err := m.Get(ctx, key)
	return err == nil, nil
}

// Clear removes all entries.
func (m *Memory[V]) Clear(_ context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.closed {
		return ErrClosed
	}
	clear(m.items)
	return nil
}

// Len returns the number of stored entries, expired ones included.
func (m *Memory[V]) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.items)
}

// Purge drops expired entries and returns how many were removed.
func (m *Memory[V]) Purge() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.purgeLocked(time.Now())
}

func (m *Memory[V]) purgeLocked(now time.Time) int {
	n := 0
	for k, it := range m.items {
		if it.expired(now) {
			delete(m.items, k)
			n++
		}
	}
	return n
}

// Close marks the cache as closed. Reads keep working; writes fail with
// ErrClosed. Close is idempotent.
func (m *Memory[V]) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.closed = true
	return nil
}

var _ Cache[any] = (*Memory[any])(nil)
