package resmgr

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"golang.org/x/text/language"

	"github.com/dmitrymomot/fluent/pkg/ast"
	"github.com/dmitrymomot/fluent/pkg/cache"
	"github.com/dmitrymomot/fluent/pkg/logger"
)

// DefaultPathTemplate maps a locale and resource id to a path.
const DefaultPathTemplate = "{locale}/{res_id}"

// Option configures a Manager.
type Option func(*Manager)

// WithPathTemplate sets the path template. "{locale}" is replaced by the
// locale tag and "{res_id}" by the resource id.
func WithPathTemplate(tmpl string) Option {
	return func(m *Manager) {
		if tmpl != "" {
			m.template = tmpl
		}
	}
}

// WithRawCache shares raw documents through c, e.g. a cache.Redis with
// cache.BytesMarshaler, so several processes fetch each document once per
// ttl. Zero ttl uses the cache default.
func WithRawCache(c cache.Cache[[]byte], ttl time.Duration) Option {
	return func(m *Manager) {
		m.raw = c
		m.rawTTL = ttl
	}
}

// WithResourceTTL expires decoded resources after d so changed documents
// are picked up. Default: decoded resources are kept until Invalidate.
func WithResourceTTL(d time.Duration) Option {
	return func(m *Manager) {
		m.resourceTTL = d
	}
}

// WithLogger sets the logger. Default: discard.
func WithLogger(l *slog.Logger) Option {
	return func(m *Manager) {
		if l != nil {
			m.logger = l
		}
	}
}

// Manager loads and caches resource documents per locale.
//
// Decoded resources are kept in memory; concurrent requests for the same
// path share one fetch.
type Manager struct {
	source      Source
	raw         cache.Cache[[]byte]
	resources   *cache.Group[*ast.Resource]
	logger      *slog.Logger
	template    string
	rawTTL      time.Duration
	resourceTTL time.Duration
}

// NewManager creates a Manager reading from src.
//
//	mgr := resmgr.NewManager(resmgr.NewFSSource(locales),
//	    resmgr.WithPathTemplate("{locale}/{res_id}.yaml"),
//	)
//	res, err := mgr.Resources(ctx, language.German, "main", "errors")
func NewManager(src Source, opts ...Option) *Manager {
	m := &Manager{
		source:      src,
		template:    DefaultPathTemplate,
		logger:      logger.NewNope(),
		resourceTTL: -1,
	}
	for _, opt := range opts {
		opt(m)
	}
	m.resources = cache.NewGroup[*ast.Resource](cache.NewMemory[*ast.Resource](), m.resourceTTL)
	return m
}

// Path returns the source path of a resource.
func (m *Manager) Path(tag language.Tag, resID string) string {
	r := strings.NewReplacer("{locale}", tag.String(), "{res_id}", resID)
	return r.Replace(m.template)
}

// Resource returns the decoded resource resID for tag.
func (m *Manager) Resource(ctx context.Context, tag language.Tag, resID string) (*ast.Resource, error) {
	if resID == "" {
		return nil, fmt.Errorf("%w: empty resource id", ErrInvalidPath)
	}

	p := m.Path(tag, resID)
	ctx = logger.WithAttrs(ctx, slog.String("locale", tag.String()), slog.String("path", p))

	// The fetch is shared by every concurrent caller for p, so one caller
	// canceling must not fail the others.
	return m.resources.GetOrSet(ctx, p, func(ctx context.Context) (*ast.Resource, error) {
		ctx = context.WithoutCancel(ctx)
		data, err := m.fetch(ctx, p)
		if err != nil {
			if !errors.Is(err, ErrNotFound) {
				m.logger.WarnContext(ctx, "resource fetch failed", slog.String("error", err.Error()))
			}
			return nil, err
		}

		res, err := ast.Decode(data)
		if err != nil {
			m.logger.WarnContext(ctx, "resource decode failed", slog.String("error", err.Error()))
			return nil, fmt.Errorf("resmgr: %s: %w", p, err)
		}

		m.logger.DebugContext(ctx, "resource loaded", slog.Int("entries", len(res.Entries)))
		return res, nil
	})
}

// Resources returns the resources resIDs for tag in the given order. Ids
// that fail are skipped and their errors joined, so callers can decide
// whether partial results are usable.
func (m *Manager) Resources(ctx context.Context, tag language.Tag, resIDs ...string) ([]*ast.Resource, error) {
	out := make([]*ast.Resource, 0, len(resIDs))
	var errs []error
	for _, id := range resIDs {
		res, err := m.Resource(ctx, tag, id)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		out = append(out, res)
	}
	return out, errors.Join(errs...)
}

// Invalidate drops a resource from the caches so the next request fetches
// it again.
func (m *Manager) Invalidate(ctx context.Context, tag language.Tag, resID string) error {
	p := m.Path(tag, resID)
	err := m.resources.Forget(ctx, p)
	if m.raw != nil {
		err = errors.Join(err, m.raw.Delete(ctx, p))
	}
	return err
}

func (m *Manager) fetch(ctx context.Context, p string) ([]byte, error) {
	if m.raw != nil {
		if data, err := m.raw.Get(ctx, p); err == nil {
			return data, nil
		}
	}

	data, err := m.source.Fetch(ctx, p)
	if err != nil {
		return nil, err
	}

	if m.raw != nil {
		if err := m.raw.Set(ctx, p, data, m.rawTTL); err != nil {
			m.logger.WarnContext(ctx, "raw cache write failed", slog.String("error", err.Error()))
		}
	}
	return data, nil
}
