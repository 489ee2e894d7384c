package internal

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"golang.org/x/text/language"

	"github.com/dmitrymomot/fluent/pkg/ast"
	"github.com/dmitrymomot/fluent/pkg/intl"
)

// noValueMarker is rendered in place of values that could not be resolved.
const noValueMarker = "{???}"

// Value is a resolved or literal value. Custom types implement it to
// render themselves with the locale and formatter cache in env.
type Value interface {
	Format(env *Env) string
}

// Selectable is implemented by custom values that take part in select
// expressions. Values without it never match a variant key.
type Selectable interface {
	Matches(env *Env, key ast.VariantKey) bool
}

// Args are the caller-supplied arguments of one format call.
type Args map[string]Value

// Env gives values access to the locale and the formatter cache.
type Env struct {
	memoizer  *intl.Memoizer
	formatter func(Value, language.Tag) (string, bool)
	tag       language.Tag
}

// NewEnv returns an Env for tag. A nil memoizer gets a private one.
func NewEnv(tag language.Tag, m *intl.Memoizer) *Env {
	if m == nil {
		m = intl.NewMemoizer(nil)
	}
	return &Env{tag: tag, memoizer: m}
}

// Locale returns the locale values are rendered for.
func (e *Env) Locale() language.Tag {
	return e.tag
}

// Memoizer returns the shared formatter cache.
func (e *Env) Memoizer() *intl.Memoizer {
	return e.memoizer
}

// render applies the bundle formatter hook before the value's own Format.
func (e *Env) render(v Value) string {
	if v == nil {
		return noValueMarker
	}
	if _, none := v.(NoneValue); !none && e.formatter != nil {
		if s, ok := e.formatter(v, e.tag); ok {
			return s
		}
	}
	return v.Format(e)
}

// StringValue is plain text.
type StringValue string

func (s StringValue) Format(*Env) string {
	return string(s)
}

// NumberValue is a number with display options.
type NumberValue struct {
	Options intl.NumberOptions
	Value   float64
}

// Format renders the number with the cached formatter for its options.
// Without a usable formatter the plain decimal form is used.
func (n NumberValue) Format(env *Env) string {
	if env == nil {
		return n.plain()
	}
	f, err := env.memoizer.NumberFormatter(env.tag, n.Options)
	if err != nil || f == nil {
		return n.plain()
	}
	return f.FormatNumber(n.Value)
}

func (n NumberValue) plain() string {
	if minFD, ok := n.Options.MinimumFractionDigits.Get(); ok && !math.IsInf(n.Value, 0) && !math.IsNaN(n.Value) {
		return strconv.FormatFloat(n.Value, 'f', max(minFD, fractionDigits(n.Value)), 64)
	}
	return strconv.FormatFloat(n.Value, 'f', -1, 64)
}

func fractionDigits(v float64) int {
	s := strconv.FormatFloat(v, 'f', -1, 64)
	if i := strings.IndexByte(s, '.'); i >= 0 {
		return len(s) - i - 1
	}
	return 0
}

// DateTimeValue is a point in time with display options.
type DateTimeValue struct {
	Value   time.Time
	Options intl.DateTimeOptions
}

func (d DateTimeValue) Format(env *Env) string {
	if env == nil {
		return d.Value.Format(time.RFC3339)
	}
	f, err := env.memoizer.DateTimeFormatter(env.tag, d.Options)
	if err != nil || f == nil {
		return d.Value.Format(time.RFC3339)
	}
	return f.FormatDateTime(d.Value)
}

// NoneValue stands for a missing or failed value. It renders as its
// fallback text, "{???}" when empty.
type NoneValue struct {
	Fallback string
}

func (n NoneValue) Format(*Env) string {
	if n.Fallback == "" {
		return noValueMarker
	}
	return n.Fallback
}

// String returns a text value.
func String(s string) Value {
	return StringValue(s)
}

// Number returns a number value with default display options.
func Number(v float64) NumberValue {
	return NumberValue{Value: v}
}

// Int returns an integer number value.
func Int(v int) NumberValue {
	return NumberValue{Value: float64(v)}
}

// ParseNumber parses a number literal. The written fraction digits become
// the minimum fraction digits, so "1.50" keeps rendering as "1.50".
func ParseNumber(s string) (NumberValue, error) {
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return NumberValue{}, err
	}
	n := NumberValue{Value: v}
	if i := strings.IndexByte(s, '.'); i >= 0 {
		n.Options.MinimumFractionDigits = intl.DigitsOf(len(s) - i - 1)
	}
	return n, nil
}

// DateTime returns a date-time value with default display options.
func DateTime(t time.Time) DateTimeValue {
	return DateTimeValue{Value: t}
}

// None returns a value that renders as "{???}".
func None() Value {
	return NoneValue{}
}

// ValueOf converts a Go value to a Value: strings become text, integer
// and float types become numbers, time.Time becomes a date-time, nil
// becomes none. Values pass through and other types use fmt.
func ValueOf(v any) Value {
	switch x := v.(type) {
	case nil:
		return NoneValue{}
	case Value:
		return x
	case string:
		return StringValue(x)
	case int:
		return Int(x)
	case int8:
		return Number(float64(x))
	case int16:
		return Number(float64(x))
	case int32:
		return Number(float64(x))
	case int64:
		return Number(float64(x))
	case uint:
		return Number(float64(x))
	case uint8:
		return Number(float64(x))
	case uint16:
		return Number(float64(x))
	case uint32:
		return Number(float64(x))
	case uint64:
		return Number(float64(x))
	case float32:
		return Number(float64(x))
	case float64:
		return Number(x)
	case time.Time:
		return DateTime(x)
	case fmt.Stringer:
		return StringValue(x.String())
	default:
		return StringValue(fmt.Sprint(x))
	}
}

// matches reports whether a selector value picks the variant with key.
// Text matches identifier keys by equality. Numbers match numeric keys by
// value and identifier keys by plural category.
func matches(env *Env, key ast.VariantKey, selector Value) bool {
	switch sel := selector.(type) {
	case StringValue:
		return !key.Numeric && string(sel) == key.Name
	case NumberValue:
		if key.Numeric {
			k, err := strconv.ParseFloat(key.Name, 64)
			return err == nil && k == sel.Value
		}
		rules, err := env.memoizer.PluralRules(env.tag, sel.Options.Type)
		if err != nil || rules == nil {
			return false
		}
		return string(rules.Select(intl.OperandsFor(sel.Value, sel.Options))) == key.Name
	case Selectable:
		return sel.Matches(env, key)
	default:
		return false
	}
}
