package intl

import (
	"errors"
	"math"
	"strconv"
	"sync"
	"time"

	"golang.org/x/text/currency"
	"golang.org/x/text/feature/plural"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

// TextServices implements Services with golang.org/x/text: CLDR plural
// rules from feature/plural and localized numbers from message and number.
// Date-time layouts come from a per-locale table.
//
// Not supported by x/text and ignored: minimumSignificantDigits, min2
// grouping (treated as auto) and currency names (rendered as codes).
type TextServices struct{}

// NewTextServices returns the x/text backed locale services.
func NewTextServices() *TextServices {
	return &TextServices{}
}

// PluralRules returns the CLDR cardinal or ordinal rules for tag.
func (s *TextServices) PluralRules(tag language.Tag, t PluralType) (PluralRules, error) {
	rules := plural.Cardinal
	if t == Ordinal {
		rules = plural.Ordinal
	}
	return &textPlural{tag: tag, rules: rules}, nil
}

type textPlural struct {
	rules *plural.Rules
	tag   language.Tag
}

func (p *textPlural) Select(op Operands) Category {
	i := op.I
	if i > math.MaxInt32 {
		// Rules only inspect the low digits of huge integers.
		i = i%1_000_000 + 1_000_000
	}
	switch p.rules.MatchPlural(p.tag, int(i), op.V, op.W, int(op.F), int(op.T)) {
	case plural.Zero:
		return Zero
	case plural.One:
		return One
	case plural.Two:
		return Two
	case plural.Few:
		return Few
	case plural.Many:
		return Many
	default:
		return Other
	}
}

// NumberFormatter builds a localized number formatter. Currency style
// requires a valid ISO 4217 code.
func (s *TextServices) NumberFormatter(tag language.Tag, opts NumberOptions) (NumberFormatter, error) {
	opts = opts.Normalize()

	f := &textNumber{opts: opts, numberOpts: numberOptions(opts)}
	if opts.Style == StyleCurrency {
		if opts.Currency == "" {
			return nil, ErrMissingCurrency
		}
		unit, err := currency.ParseISO(opts.Currency)
		if err != nil {
			return nil, errors.Join(ErrInvalidCurrency, err)
		}
		f.unit = unit
	}
	f.printers.New = func() any {
		return message.NewPrinter(tag)
	}
	return f, nil
}

// textNumber pools printers: a message.Printer must not be used by two
// goroutines at once.
type textNumber struct {
	unit       currency.Unit
	printers   sync.Pool
	opts       NumberOptions
	numberOpts []number.Option
}

func (f *textNumber) FormatNumber(v float64) string {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return strconv.FormatFloat(v, 'f', -1, 64)
	}

	p := f.printers.Get().(*message.Printer)
	defer f.printers.Put(p)

	if f.opts.Style == StyleCurrency {
		amount := f.unit.Amount(v)
		switch f.opts.CurrencyDisplay {
		case CurrencyCode, CurrencyName:
			return p.Sprintf("%v", currency.ISO(amount))
		case CurrencyNarrowSymbol:
			return p.Sprintf("%v", currency.NarrowSymbol(amount))
		default:
			return p.Sprintf("%v", currency.Symbol(amount))
		}
	}

	switch {
	case f.opts.Notation == NotationScientific:
		return p.Sprintf("%v", number.Scientific(v, f.numberOpts...))
	case f.opts.Notation == NotationEngineering:
		return p.Sprintf("%v", number.Engineering(v, f.numberOpts...))
	case f.opts.Style == StylePercent:
		return p.Sprintf("%v", number.Percent(v, f.numberOpts...))
	default:
		return p.Sprintf("%v", number.Decimal(v, f.numberOpts...))
	}
}

func numberOptions(o NumberOptions) []number.Option {
	var out []number.Option

	if n, ok := o.MinimumIntegerDigits.Get(); ok {
		out = append(out, number.MinIntegerDigits(n))
	}
	if n, ok := o.MaximumSignificantDigits.Get(); ok {
		out = append(out, number.Precision(n))
	} else {
		minFD, hasMin := o.MinimumFractionDigits.Get()
		if hasMin {
			out = append(out, number.MinFractionDigits(minFD))
		}
		if n, ok := o.MaximumFractionDigits.Get(); ok {
			out = append(out, number.MaxFractionDigits(max(n, minFD)))
		} else if o.Style == StyleDecimal && o.Notation == NotationStandard {
			out = append(out, number.MaxFractionDigits(max(minFD, 3)))
		}
	}
	if o.Grouping == GroupingNever {
		out = append(out, number.NoSeparator())
	}
	return out
}

// DateTimeFormatter returns a layout-based formatter for tag.
func (s *TextServices) DateTimeFormatter(tag language.Tag, opts DateTimeOptions) (DateTimeFormatter, error) {
	layout := layoutFor(tag, opts.Normalize())
	return DateTimeFormatterFunc(func(t time.Time) string {
		return t.Format(layout)
	}), nil
}

var _ Services = (*TextServices)(nil)
