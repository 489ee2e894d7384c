package intl

import (
	"time"

	"golang.org/x/text/language"
)

// Services is the locale data capability: plural classification and
// construction of number and date-time formatters. Construction may be
// expensive; callers go through a Memoizer to build each formatter once.
type Services interface {
	PluralRules(tag language.Tag, t PluralType) (PluralRules, error)
	NumberFormatter(tag language.Tag, opts NumberOptions) (NumberFormatter, error)
	DateTimeFormatter(tag language.Tag, opts DateTimeOptions) (DateTimeFormatter, error)
}

// NumberFormatter renders numbers. Implementations must be safe for
// concurrent use.
type NumberFormatter interface {
	FormatNumber(v float64) string
}

// DateTimeFormatter renders points in time. Implementations must be safe
// for concurrent use.
type DateTimeFormatter interface {
	FormatDateTime(t time.Time) string
}

// NumberFormatterFunc adapts a function to NumberFormatter.
type NumberFormatterFunc func(v float64) string

func (f NumberFormatterFunc) FormatNumber(v float64) string { return f(v) }

// DateTimeFormatterFunc adapts a function to DateTimeFormatter.
type DateTimeFormatterFunc func(t time.Time) string

func (f DateTimeFormatterFunc) FormatDateTime(t time.Time) string { return f(t) }

// PluralRulesFunc adapts a function to PluralRules.
type PluralRulesFunc func(op Operands) Category

func (f PluralRulesFunc) Select(op Operands) Category { return f(op) }
