package internal

import (
	"fmt"
	"log/slog"

	"golang.org/x/text/language"

	"github.com/dmitrymomot/fluent/pkg/ast"
	"github.com/dmitrymomot/fluent/pkg/intl"
	"github.com/dmitrymomot/fluent/pkg/logger"
)

// Option configures a bundle.
type Option func(*Bundle) error

// WithIsolating enables or disables wrapping interpolated values in
// Unicode directional isolation marks. Enabled by default.
func WithIsolating(enabled bool) Option {
	return func(b *Bundle) error {
		b.isolating = enabled
		return nil
	}
}

// WithResource adds a resource once the bundle is configured.
func WithResource(res *ast.Resource) Option {
	return WithResources(res)
}

// WithResources adds resources in order. Later resources replace ids
// defined by earlier ones.
//
// Example:
//
//	res, err := ast.Decode(data)
//	if err != nil {
//	    return err
//	}
//	b, err := fluent.New(language.German, fluent.WithResources(res))
func WithResources(res ...*ast.Resource) Option {
	return func(b *Bundle) error {
		for _, r := range res {
			if r == nil {
				return ErrNilResource
			}
		}
		b.pending = append(b.pending, res...)
		return nil
	}
}

// WithFunction registers a function. Registering NUMBER or DATETIME
// replaces the builtin.
//
// Example:
//
//	fluent.WithFunction("UPPER", func(pos []fluent.Value, _ map[string]fluent.Value) (fluent.Value, error) {
//	    if len(pos) == 0 {
//	        return nil, errors.New("UPPER needs a value")
//	    }
//	    return fluent.String(strings.ToUpper(pos[0].Format(nil))), nil
//	})
func WithFunction(name string, fn Function) Option {
	return func(b *Bundle) error {
		if err := b.functions.Register(name, fn); err != nil {
			return fmt.Errorf("with function: %w", err)
		}
		return nil
	}
}

// WithMemoizer shares a formatter cache between bundles. It takes
// precedence over WithServices.
func WithMemoizer(m *intl.Memoizer) Option {
	return func(b *Bundle) error {
		if m == nil {
			return fmt.Errorf("%w: nil memoizer", ErrInvalidConfig)
		}
		b.memoizer = m
		return nil
	}
}

// WithServices sets the locale services behind a private formatter cache.
func WithServices(svc intl.Services) Option {
	return func(b *Bundle) error {
		if svc == nil {
			return fmt.Errorf("%w: nil locale services", ErrInvalidConfig)
		}
		b.services = svc
		return nil
	}
}

// WithMaxDepth limits how many references and variants may be nested.
// Default 64.
func WithMaxDepth(n int) Option {
	return func(b *Bundle) error {
		if n < 1 {
			return fmt.Errorf("%w: max depth must be positive, got %d", ErrInvalidConfig, n)
		}
		b.maxDepth = n
		return nil
	}
}

// WithMaxPlaceables limits how many placeables one format call may
// expand. Default 100.
func WithMaxPlaceables(n int) Option {
	return func(b *Bundle) error {
		if n < 1 {
			return fmt.Errorf("%w: max placeables must be positive, got %d", ErrInvalidConfig, n)
		}
		b.maxPlaceables = n
		return nil
	}
}

// WithTransform sets a function applied to every literal text element,
// e.g. for pseudo-localization.
func WithTransform(fn func(string) string) Option {
	return func(b *Bundle) error {
		b.transform = fn
		return nil
	}
}

// WithFormatter sets a hook that renders interpolated values before their
// own Format method. Returning false falls through to Format.
func WithFormatter(fn func(Value, language.Tag) (string, bool)) Option {
	return func(b *Bundle) error {
		b.formatter = fn
		return nil
	}
}

// WithLogger enables JSON logging for the bundle, tagged with component.
func WithLogger(component string, extractors ...logger.ContextExtractor) Option {
	return func(b *Bundle) error {
		b.logger = logger.New(extractors...).With(slog.String("component", component))
		return nil
	}
}

// WithCustomLogger sets the bundle logger.
func WithCustomLogger(l *slog.Logger) Option {
	return func(b *Bundle) error {
		if l != nil {
			b.logger = l
		}
		return nil
	}
}

// WithConfig applies the values of cfg except the locale.
func WithConfig(cfg Config) Option {
	return func(b *Bundle) error {
		if err := cfg.validate(); err != nil {
			return err
		}
		b.isolating = cfg.UseIsolating
		b.maxDepth = cfg.MaxDepth
		b.maxPlaceables = cfg.MaxPlaceables
		return nil
	}
}
