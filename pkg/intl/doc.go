// Package intl provides the locale services used to render values: plural
// rules, number formatters and date-time formatters, together with a
// concurrent cache for them.
//
// # Services
//
// [Services] is the capability interface. [NewTextServices] implements it
// with golang.org/x/text. Tests and applications with their own locale
// data can provide any other implementation.
//
// # Memoizer
//
// Building a formatter loads locale data and is the expensive step.
// [Memoizer] caches each formatter by (locale, kind, canonical options) and
// builds it at most once, also when many goroutines ask for the same key at
// the same time:
//
//	m := intl.NewMemoizer(nil)
//	f, err := m.NumberFormatter(language.German, intl.NumberOptions{
//	    MinimumFractionDigits: intl.DigitsOf(2),
//	})
//	f.FormatNumber(1234.5) // "1.234,50"
//
// Use [Memoize] to cache formatters of custom kinds in the same Memoizer.
//
// # Plural Operands
//
// [OperandsFor] derives CLDR operands from a number and its display
// options, so "1.0" and "1" may select different plural categories.
package intl
