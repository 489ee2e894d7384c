package intl

import (
	"math"
	"strconv"
	"strings"
)

// Digits is an optional digit count. The zero value means "not set".
type Digits struct {
	n   int
	set bool
}

// Digit count limits (ECMA-402 ranges).
const (
	MaxFractionDigits    = 100
	MinIntegerDigits     = 1
	MaxIntegerDigits     = 21
	MinSignificantDigits = 1
	MaxSignificantDigits = 21
)

// DigitsOf returns a set Digits value clamped to 0..MaxFractionDigits.
func DigitsOf(n int) Digits {
	return Digits{n: min(max(n, 0), MaxFractionDigits), set: true}
}

func digitsIn(n, lo, hi int) Digits {
	return Digits{n: min(max(n, lo), hi), set: true}
}

// Get returns the count and whether it was set.
func (d Digits) Get() (int, bool) {
	return d.n, d.set
}

// Or returns the count, or def when unset.
func (d Digits) Or(def int) int {
	if d.set {
		return d.n
	}
	return def
}

func (d Digits) String() string {
	if !d.set {
		return "-"
	}
	return strconv.Itoa(d.n)
}

// NumberStyle selects how a number is presented.
type NumberStyle string

const (
	StyleDecimal  NumberStyle = "decimal"
	StyleCurrency NumberStyle = "currency"
	StylePercent  NumberStyle = "percent"
)

// Notation selects standard or exponent notation.
type Notation string

const (
	NotationStandard    Notation = "standard"
	NotationScientific  Notation = "scientific"
	NotationEngineering Notation = "engineering"
)

// CurrencyDisplay selects how the currency unit is shown.
type CurrencyDisplay string

const (
	CurrencySymbol       CurrencyDisplay = "symbol"
	CurrencyNarrowSymbol CurrencyDisplay = "narrowSymbol"
	CurrencyCode         CurrencyDisplay = "code"
	CurrencyName         CurrencyDisplay = "name"
)

// Grouping controls digit group separators.
type Grouping string

const (
	GroupingAuto   Grouping = "auto"
	GroupingAlways Grouping = "always"
	GroupingMin2   Grouping = "min2"
	GroupingNever  Grouping = "never"
)

// NumberOptions carries the display options of a number. Empty fields use
// the defaults: decimal style, standard notation, symbol display and auto
// grouping.
type NumberOptions struct {
	Style                    NumberStyle
	Notation                 Notation
	Currency                 string
	CurrencyDisplay          CurrencyDisplay
	Grouping                 Grouping
	Type                     PluralType
	MinimumIntegerDigits     Digits
	MinimumFractionDigits    Digits
	MaximumFractionDigits    Digits
	MinimumSignificantDigits Digits
	MaximumSignificantDigits Digits
}

// Normalize replaces empty and unknown enum values with their defaults.
func (o NumberOptions) Normalize() NumberOptions {
	switch o.Style {
	case StyleDecimal, StyleCurrency, StylePercent:
	default:
		o.Style = StyleDecimal
	}
	switch o.Notation {
	case NotationStandard, NotationScientific, NotationEngineering:
	default:
		o.Notation = NotationStandard
	}
	switch o.CurrencyDisplay {
	case CurrencySymbol, CurrencyNarrowSymbol, CurrencyCode, CurrencyName:
	default:
		o.CurrencyDisplay = CurrencySymbol
	}
	switch o.Grouping {
	case GroupingAuto, GroupingAlways, GroupingMin2, GroupingNever:
	default:
		o.Grouping = GroupingAuto
	}
	if o.Type != Ordinal {
		o.Type = Cardinal
	}
	o.Currency = strings.ToUpper(o.Currency)
	o.MinimumIntegerDigits = clampSet(o.MinimumIntegerDigits, MinIntegerDigits, MaxIntegerDigits)
	o.MinimumSignificantDigits = clampSet(o.MinimumSignificantDigits, MinSignificantDigits, MaxSignificantDigits)
	o.MaximumSignificantDigits = clampSet(o.MaximumSignificantDigits, MinSignificantDigits, MaxSignificantDigits)
	return o
}

func clampSet(d Digits, lo, hi int) Digits {
	if n, ok := d.Get(); ok {
		return digitsIn(n, lo, hi)
	}
	return d
}

// Key returns the canonical form of the options that affect rendering.
// Equal keys always produce equal output, so formatters are cached by it.
// The plural type is not part of the key.
func (o NumberOptions) Key() string {
	o = o.Normalize()

	var b strings.Builder
	b.Grow(64)
	b.WriteString(string(o.Style))
	b.WriteByte(';')
	b.WriteString(string(o.Notation))
	b.WriteByte(';')
	if o.Style == StyleCurrency {
		b.WriteString(o.Currency)
		b.WriteByte(':')
		b.WriteString(string(o.CurrencyDisplay))
	}
	b.WriteByte(';')
	b.WriteString(string(o.Grouping))
	for _, d := range [...]Digits{
		o.MinimumIntegerDigits,
		o.MinimumFractionDigits,
		o.MaximumFractionDigits,
		o.MinimumSignificantDigits,
		o.MaximumSignificantDigits,
	} {
		b.WriteByte(';')
		b.WriteString(d.String())
	}
	return b.String()
}

// Merge applies a named option. String options take text; digit options
// take a number (int, float64) or a numeric string. Unknown names and
// values of the wrong shape are ignored.
func (o *NumberOptions) Merge(name string, value any) {
	switch name {
	case "style":
		if s, ok := value.(string); ok {
			o.Style = NumberStyle(s)
		}
	case "notation":
		if s, ok := value.(string); ok {
			o.Notation = Notation(s)
		}
	case "currency":
		if s, ok := value.(string); ok {
			o.Currency = s
		}
	case "currencyDisplay":
		if s, ok := value.(string); ok {
			o.CurrencyDisplay = CurrencyDisplay(s)
		}
	case "useGrouping":
		if s, ok := value.(string); ok {
			o.Grouping = Grouping(s)
		}
	case "type":
		if s, ok := value.(string); ok {
			o.Type = PluralType(s)
		}
	case "minimumIntegerDigits":
		setDigits(&o.MinimumIntegerDigits, value, MinIntegerDigits, MaxIntegerDigits)
	case "minimumFractionDigits":
		setDigits(&o.MinimumFractionDigits, value, 0, MaxFractionDigits)
	case "maximumFractionDigits":
		setDigits(&o.MaximumFractionDigits, value, 0, MaxFractionDigits)
	case "minimumSignificantDigits":
		setDigits(&o.MinimumSignificantDigits, value, MinSignificantDigits, MaxSignificantDigits)
	case "maximumSignificantDigits":
		setDigits(&o.MaximumSignificantDigits, value, MinSignificantDigits, MaxSignificantDigits)
	}
}

// setDigits stores value clamped to lo..hi.
func setDigits(d *Digits, value any, lo, hi int) {
	switch v := value.(type) {
	case int:
		*d = digitsIn(v, lo, hi)
	case float64:
		if !math.IsNaN(v) {
			*d = digitsIn(int(math.Min(math.Max(v, float64(lo)), float64(hi))), lo, hi)
		}
	case string:
		if n, err := strconv.Atoi(v); err == nil {
			*d = digitsIn(n, lo, hi)
		}
	}
}

// DateTimeStyle is the length of the date or time part.
type DateTimeStyle string

const (
	StyleFull   DateTimeStyle = "full"
	StyleLong   DateTimeStyle = "long"
	StyleMedium DateTimeStyle = "medium"
	StyleShort  DateTimeStyle = "short"
	StyleHidden DateTimeStyle = "hidden"
)

// TimeZoneStyle selects how the UTC offset is shown.
type TimeZoneStyle string

const (
	ZoneHidden      TimeZoneStyle = "hidden"
	ZoneGMT         TimeZoneStyle = "gmt"
	ZoneBasic       TimeZoneStyle = "basic"
	ZoneExtended    TimeZoneStyle = "extended"
	ZoneUTCBasic    TimeZoneStyle = "utcBasic"
	ZoneUTCExtended TimeZoneStyle = "utcExtended"
)

// DateTimeOptions carries the display options of a date-time value.
// Empty styles mean medium date, medium time and hidden zone.
type DateTimeOptions struct {
	DateStyle     DateTimeStyle
	TimeStyle     DateTimeStyle
	TimeZoneStyle TimeZoneStyle
}

// Normalize replaces empty and unknown values with their defaults.
func (o DateTimeOptions) Normalize() DateTimeOptions {
	o.DateStyle = normalizeStyle(o.DateStyle)
	o.TimeStyle = normalizeStyle(o.TimeStyle)
	switch o.TimeZoneStyle {
	case ZoneGMT, ZoneBasic, ZoneExtended, ZoneUTCBasic, ZoneUTCExtended:
	default:
		o.TimeZoneStyle = ZoneHidden
	}
	return o
}

func normalizeStyle(s DateTimeStyle) DateTimeStyle {
	switch s {
	case StyleFull, StyleLong, StyleMedium, StyleShort, StyleHidden:
		return s
	default:
		return StyleMedium
	}
}

// Key returns the canonical form of the options.
func (o DateTimeOptions) Key() string {
	o = o.Normalize()
	return string(o.DateStyle) + ";" + string(o.TimeStyle) + ";" + string(o.TimeZoneStyle)
}

// Merge applies a named option. Unknown names are ignored.
func (o *DateTimeOptions) Merge(name string, value any) {
	s, ok := value.(string)
	if !ok {
		return
	}
	switch name {
	case "dateStyle":
		o.DateStyle = DateTimeStyle(s)
	case "timeStyle":
		o.TimeStyle = DateTimeStyle(s)
	case "timezoneStyle", "timeZoneStyle":
		o.TimeZoneStyle = TimeZoneStyle(s)
	}
}
