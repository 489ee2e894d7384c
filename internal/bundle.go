package internal

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"sync"

	"golang.org/x/text/language"

	"github.com/dmitrymomot/fluent/pkg/ast"
	"github.com/dmitrymomot/fluent/pkg/intl"
	"github.com/dmitrymomot/fluent/pkg/logger"
)

const (
	defaultMaxDepth      = 64
	defaultMaxPlaceables = 100
)

// Bundle formats the messages of one locale. It owns the resources and
// functions added to it and shares a formatter cache that may be shared
// with other bundles.
//
// Format and its variants are safe for concurrent use. AddResource and
// AddFunction are administrative calls; they are serialized with
// formatting but should be made before the bundle is put to use.
type Bundle struct {
	locale    language.Tag
	logger    *slog.Logger
	memoizer  *intl.Memoizer
	services  intl.Services
	functions *Registry
	env       *Env

	transform func(string) string
	formatter func(Value, language.Tag) (string, bool)

	stores  []*Store
	index   map[string]*Entry
	pending []*ast.Resource

	maxDepth      int
	maxPlaceables int
	isolating     bool

	mu sync.RWMutex
}

// New creates a bundle for locale.
//
// Example:
//
//	b, err := fluent.New(language.English,
//	    fluent.WithResources(res),
//	    fluent.WithIsolating(false),
//	)
func New(locale language.Tag, opts ...Option) (*Bundle, error) {
	b := &Bundle{
		locale:        locale,
		logger:        logger.NewNope(),
		functions:     NewRegistry(),
		index:         make(map[string]*Entry),
		maxDepth:      defaultMaxDepth,
		maxPlaceables: defaultMaxPlaceables,
		isolating:     true,
	}

	for _, opt := range opts {
		if opt == nil {
			continue
		}
		if err := opt(b); err != nil {
			return nil, err
		}
	}

	b.logger = slog.New(logger.Decorate(b.logger.Handler(), logger.ContextAttrs))

	if b.memoizer == nil {
		b.memoizer = intl.NewMemoizer(b.services)
	}
	b.env = &Env{tag: b.locale, memoizer: b.memoizer, formatter: b.formatter}

	registerBuiltins(b.functions)

	for _, res := range b.pending {
		if err := b.AddResource(res); err != nil {
			return nil, err
		}
	}
	b.pending = nil

	return b, nil
}

// Locale returns the bundle locale.
func (b *Bundle) Locale() language.Tag {
	return b.locale
}

// Memoizer returns the formatter cache used by the bundle.
func (b *Bundle) Memoizer() *intl.Memoizer {
	return b.memoizer
}

// AddResource adds the messages and terms of res. An id that is already
// defined is replaced by the new definition.
func (b *Bundle) AddResource(res *ast.Resource) error {
	if res == nil {
		return ErrNilResource
	}
	store := NewStore(res)

	b.mu.Lock()
	defer b.mu.Unlock()

	for _, key := range store.Keys() {
		entry, _ := store.Lookup(key)
		if _, exists := b.index[key]; exists {
			b.logger.Debug("resource entry shadowed",
				slog.String("locale", b.locale.String()),
				slog.String("id", key),
			)
		}
		b.index[key] = entry
	}
	b.stores = append(b.stores, store)
	return nil
}

// AddFunction registers fn under name. Names are unique per bundle, except
// that the builtins may be replaced by functions passed to New.
func (b *Bundle) AddFunction(name string, fn Function) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if err := b.functions.Register(name, fn); err != nil {
		return fmt.Errorf("add function: %w", err)
	}
	return nil
}

// HasMessage reports whether a message with id exists. Terms are not
// messages.
func (b *Bundle) HasMessage(id string) bool {
	_, ok := b.Message(id)
	return ok
}

// Message returns the message entry for id.
func (b *Bundle) Message(id string) (*Entry, bool) {
	if id == "" || strings.HasPrefix(id, "-") {
		return nil, false
	}
	return b.lookup(id)
}

func (b *Bundle) lookup(key string) (*Entry, bool) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	return b.entry(key)
}

// entry looks up key without locking. The caller holds b.mu.
func (b *Bundle) entry(key string) (*Entry, bool) {
	e, ok := b.index[key]
	return e, ok
}

// Format formats the message id, or its attribute attr when attr is not
// empty. The text is always usable; errs lists what went wrong on the way.
// Only a missing message, attribute or value yields empty text.
func (b *Bundle) Format(id, attr string, args Args) (string, []error) {
	return b.FormatContext(context.Background(), id, attr, args)
}

// FormatContext is Format with a context for logging.
func (b *Bundle) FormatContext(ctx context.Context, id, attr string, args Args) (string, []error) {
	ref := refKey(id, attr)
	ctx = logger.WithAttrs(ctx,
		slog.String("locale", b.locale.String()),
		slog.String("message", ref),
	)

	b.mu.RLock()
	defer b.mu.RUnlock()

	entry, ok := b.entry(id)
	if !ok || strings.HasPrefix(id, "-") {
		errs := []error{newError(UnknownMessage, id, nil)}
		b.logErrors(ctx, errs)
		return "", errs
	}

	p, ok := entry.Pattern(attr)
	if !ok {
		kind := NoValue
		if attr != "" {
			kind = UnknownAttribute
		}
		errs := []error{newError(kind, ref, nil)}
		b.logErrors(ctx, errs)
		return "", errs
	}

	s := b.newScope(args)
	s.visited[ref] = struct{}{}
	out := s.format(p)
	b.logErrors(ctx, s.errs)
	return out, s.errs
}

// FormatPattern formats a pattern that is not necessarily part of the
// bundle, such as one returned by Message.
func (b *Bundle) FormatPattern(p *ast.Pattern, args Args) (string, []error) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	s := b.newScope(args)
	out := s.format(p)
	b.logErrors(context.Background(), s.errs)
	return out, s.errs
}

func (b *Bundle) logErrors(ctx context.Context, errs []error) {
	if len(errs) == 0 {
		return
	}

	kinds := Kinds(errs)
	names := make([]string, len(kinds))
	for i, k := range kinds {
		names[i] = k.String()
	}
	b.logger.DebugContext(ctx, "message resolved with errors",
		slog.Int("errors", len(errs)),
		slog.Any("kinds", names),
		slog.String("first", errs[0].Error()),
	)
}
