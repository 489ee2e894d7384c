package intl

import (
	"context"
	"fmt"

	"github.com/cespare/xxhash/v2"
	"golang.org/x/text/language"

	"github.com/dmitrymomot/fluent/pkg/cache"
)

const shardCount = 16

// Formatter kinds used in cache keys.
const (
	KindPlural   = "plural"
	KindNumber   = "number"
	KindDateTime = "datetime"
)

type shard struct {
	mem   *cache.Memory[any]
	group *cache.Group[any]
}

// Memoizer caches formatters by (locale, kind, options). Each distinct key
// is built at most once for the lifetime of the Memoizer, also under
// concurrent access. Keys are spread over shards so lookups of unrelated
// keys do not contend on one lock, and a slow build only blocks callers
// waiting for the same key.
//
// A Memoizer is safe for concurrent use and can be shared by any number of
// bundles.
type Memoizer struct {
	services Services
	shards   [shardCount]shard
}

// NewMemoizer creates a Memoizer on top of svc. A nil svc means
// NewTextServices().
func NewMemoizer(svc Services) *Memoizer {
	if svc == nil {
		svc = NewTextServices()
	}
	m := &Memoizer{services: svc}
	for i := range m.shards {
		mem := cache.NewMemory[any]()
		m.shards[i] = shard{mem: mem, group: cache.NewGroup[any](mem, -1)}
	}
	return m
}

// Services returns the underlying locale services.
func (m *Memoizer) Services() Services {
	return m.services
}

// Len returns the number of cached formatters.
func (m *Memoizer) Len() int {
	n := 0
	for i := range m.shards {
		n += m.shards[i].mem.Len()
	}
	return n
}

// PluralRules returns the cached plural rules for tag.
func (m *Memoizer) PluralRules(tag language.Tag, t PluralType) (PluralRules, error) {
	if t != Ordinal {
		t = Cardinal
	}
	return Memoize(m, tag, KindPlural, string(t), func() (PluralRules, error) {
		return m.services.PluralRules(tag, t)
	})
}

// NumberFormatter returns the cached number formatter for tag and opts.
func (m *Memoizer) NumberFormatter(tag language.Tag, opts NumberOptions) (NumberFormatter, error) {
	return Memoize(m, tag, KindNumber, opts.Key(), func() (NumberFormatter, error) {
		return m.services.NumberFormatter(tag, opts.Normalize())
	})
}

// DateTimeFormatter returns the cached date-time formatter for tag and opts.
func (m *Memoizer) DateTimeFormatter(tag language.Tag, opts DateTimeOptions) (DateTimeFormatter, error) {
	return Memoize(m, tag, KindDateTime, opts.Key(), func() (DateTimeFormatter, error) {
		return m.services.DateTimeFormatter(tag, opts.Normalize())
	})
}

// Memoize returns the formatter cached under (tag, kind, options), calling
// build on the first request. options must be a canonical rendering of
// everything that changes the built value, and build must depend on nothing
// else: a build error is cached under the key like a formatter, so options
// that can never build fail fast on later requests.
//
// Custom value types use it to cache their own formatters:
//
//	f, err := intl.Memoize(m, tag, "duration", "short", func() (*DurationFormatter, error) {
//	    return NewDurationFormatter(tag, "short")
//	})
func Memoize[F any](m *Memoizer, tag language.Tag, kind, options string, build func() (F, error)) (F, error) {
	key := tag.String() + "\x00" + kind + "\x00" + options

	v, err := m.shard(key).group.GetOrSet(context.Background(), key, func(context.Context) (any, error) {
		f, err := build()
		if err != nil {
			return buildError{err: err}, nil
		}
		return f, nil
	})
	if be, ok := v.(buildError); ok {
		err = be.err
	}

	var zero F
	if err != nil {
		return zero, fmt.Errorf("intl: build %s formatter for %s: %w", kind, tag, err)
	}
	if v == nil {
		return zero, nil
	}
	f, ok := v.(F)
	if !ok {
		return zero, fmt.Errorf("%w: %s for %s is %T", ErrKindMismatch, kind, tag, v)
	}
	return f, nil
}

// buildError is cached in place of a formatter whose build failed.
type buildError struct {
	err error
}

func (m *Memoizer) shard(key string) *shard {
	return &m.shards[xxhash.Sum64String(key)%shardCount]
}
