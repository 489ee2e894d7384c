package fluent

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"golang.org/x/text/language"

	"github.com/dmitrymomot/fluent/internal"
	"github.com/dmitrymomot/fluent/pkg/ast"
	"github.com/dmitrymomot/fluent/pkg/intl"
	"github.com/dmitrymomot/fluent/pkg/logger"
)

// Type aliases - public API
type (
	// Bundle formats the messages of one locale.
	Bundle = internal.Bundle

	// Option configures a bundle.
	Option = internal.Option

	// Config holds bundle settings loaded from the environment.
	Config = internal.Config

	// Value is a resolved value that renders itself for a locale.
	Value = internal.Value

	// Selectable is implemented by custom values usable as selectors.
	Selectable = internal.Selectable

	// Env gives values access to the locale and the formatter cache.
	Env = internal.Env

	// Args are the arguments of one format call.
	Args = internal.Args

	// StringValue is plain text.
	StringValue = internal.StringValue

	// NumberValue is a number with display options.
	NumberValue = internal.NumberValue

	// DateTimeValue is a point in time with display options.
	DateTimeValue = internal.DateTimeValue

	// NoneValue stands for a missing or failed value.
	NoneValue = internal.NoneValue

	// Function is a callable available to messages.
	Function = internal.Function

	// Entry is a message or term.
	Entry = internal.Entry

	// ErrorKind classifies resolution errors.
	ErrorKind = internal.ErrorKind

	// ResolverError is a recoverable error recorded while formatting.
	ResolverError = internal.ResolverError

	// ContextExtractor extracts a slog attribute from context.
	// Used with WithLogger to add request-scoped values to logs.
	ContextExtractor = logger.ContextExtractor
)

// Error kinds.
const (
	UnknownMessage    = internal.UnknownMessage
	UnknownAttribute  = internal.UnknownAttribute
	MissingArgument   = internal.MissingArgument
	Cyclic            = internal.Cyclic
	TooDeep           = internal.TooDeep
	TooManyPlaceables = internal.TooManyPlaceables
	UnknownFunction   = internal.UnknownFunction
	FunctionError     = internal.FunctionError
	NoValue           = internal.NoValue
)

// Errors
var (
	ErrUnknownMessage    = internal.ErrUnknownMessage
	ErrUnknownAttribute  = internal.ErrUnknownAttribute
	ErrMissingArgument   = internal.ErrMissingArgument
	ErrCyclic            = internal.ErrCyclic
	ErrTooDeep           = internal.ErrTooDeep
	ErrTooManyPlaceables = internal.ErrTooManyPlaceables
	ErrUnknownFunction   = internal.ErrUnknownFunction
	ErrFunction          = internal.ErrFunction
	ErrNoValue           = internal.ErrNoValue

	ErrFunctionExists  = internal.ErrFunctionExists
	ErrInvalidFunction = internal.ErrInvalidFunction
	ErrNilResource     = internal.ErrNilResource
	ErrInvalidConfig   = internal.ErrInvalidConfig
	ErrInvalidArgument = internal.ErrInvalidArgument
)

// New creates a bundle for locale.
//
// Example:
//
//	res, err := ast.Decode(data)
//	if err != nil {
//	    return err
//	}
//	b, err := fluent.New(language.English, fluent.WithResources(res))
//	if err != nil {
//	    return err
//	}
//	text, errs := b.Format("welcome", "", fluent.Args{"name": fluent.String("Anna")})
func New(locale language.Tag, opts ...Option) (*Bundle, error) {
	return internal.New(locale, opts...)
}

// ResourceLoader returns decoded resources for a locale.
// *resmgr.Manager implements it.
type ResourceLoader interface {
	Resources(ctx context.Context, tag language.Tag, resIDs ...string) ([]*ast.Resource, error)
}

// Load creates a bundle for locale from the resources resIDs of loader,
// added in the given order. Any resource that fails to load fails the call.
//
//	mgr := resmgr.NewManager(resmgr.NewFSSource(locales),
//	    resmgr.WithPathTemplate("{locale}/{res_id}.yaml"),
//	)
//	b, err := fluent.Load(ctx, mgr, language.Polish, []string{"main", "errors"})
func Load(ctx context.Context, loader ResourceLoader, locale language.Tag, resIDs []string, opts ...Option) (*Bundle, error) {
	res, err := loader.Resources(ctx, locale, resIDs...)
	if err != nil {
		return nil, fmt.Errorf("fluent: load %s: %w", locale, err)
	}
	return New(locale, append([]Option{WithResources(res...)}, opts...)...)
}

// LoadConfig reads bundle settings from FLUENT_* environment variables.
func LoadConfig() (Config, error) {
	return internal.LoadConfig()
}

// NewFromConfig creates a bundle from cfg. Options are applied after cfg.
func NewFromConfig(cfg Config, opts ...Option) (*Bundle, error) {
	return internal.NewFromConfig(cfg, opts...)
}

// Kinds returns the kinds of the resolver errors in errs.
func Kinds(errs []error) []ErrorKind {
	return internal.Kinds(errs)
}

// String returns a text value.
func String(s string) Value {
	return internal.String(s)
}

// Number returns a number value.
func Number(v float64) NumberValue {
	return internal.Number(v)
}

// Int returns an integer number value.
func Int(v int) NumberValue {
	return internal.Int(v)
}

// ParseNumber parses a number literal, keeping its written fraction digits.
func ParseNumber(s string) (NumberValue, error) {
	return internal.ParseNumber(s)
}

// DateTime returns a date-time value.
func DateTime(t time.Time) DateTimeValue {
	return internal.DateTime(t)
}

// None returns a value that renders as "{???}".
func None() Value {
	return internal.None()
}

// ValueOf converts a Go value to a Value.
func ValueOf(v any) Value {
	return internal.ValueOf(v)
}

// NewEnv returns an Env for rendering values outside a bundle.
func NewEnv(tag language.Tag, m *intl.Memoizer) *Env {
	return internal.NewEnv(tag, m)
}

// WithIsolating enables or disables bidirectional isolation marks.
func WithIsolating(enabled bool) Option {
	return internal.WithIsolating(enabled)
}

// WithResource adds a resource.
func WithResource(res *ast.Resource) Option {
	return internal.WithResource(res)
}

// WithResources adds resources in order; later ones replace earlier ids.
func WithResources(res ...*ast.Resource) Option {
	return internal.WithResources(res...)
}

// WithFunction registers a function callable from messages.
func WithFunction(name string, fn Function) Option {
	return internal.WithFunction(name, fn)
}

// WithMemoizer shares a formatter cache between bundles.
func WithMemoizer(m *intl.Memoizer) Option {
	return internal.WithMemoizer(m)
}

// WithServices sets the locale services for a private formatter cache.
func WithServices(svc intl.Services) Option {
	return internal.WithServices(svc)
}

// WithMaxDepth limits reference and variant nesting.
func WithMaxDepth(n int) Option {
	return internal.WithMaxDepth(n)
}

// WithMaxPlaceables limits placeable expansion per format call.
func WithMaxPlaceables(n int) Option {
	return internal.WithMaxPlaceables(n)
}

// WithTransform sets a function applied to literal text.
func WithTransform(fn func(string) string) Option {
	return internal.WithTransform(fn)
}

// WithFormatter sets a hook that renders interpolated values.
func WithFormatter(fn func(Value, language.Tag) (string, bool)) Option {
	return internal.WithFormatter(fn)
}

// WithLogger enables JSON logging tagged with component.
//
// Example:
//
//	fluent.New(language.English,
//	    fluent.WithLogger("i18n", requestIDExtractor),
//	)
func WithLogger(component string, extractors ...ContextExtractor) Option {
	return internal.WithLogger(component, extractors...)
}

// WithCustomLogger sets the bundle logger.
//
// Example:
//
//	customLogger := slog.New(slog.NewTextHandler(os.Stderr, nil))
//	fluent.New(language.English, fluent.WithCustomLogger(customLogger))
func WithCustomLogger(l *slog.Logger) Option {
	return internal.WithCustomLogger(l)
}

// WithConfig applies the settings of cfg except the locale.
func WithConfig(cfg Config) Option {
	return internal.WithConfig(cfg)
}
