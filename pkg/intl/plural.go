package intl

import (
	"math"
	"strconv"
	"strings"
)

// PluralType selects cardinal ("1 file") or ordinal ("1st") rules.
type PluralType string

const (
	Cardinal PluralType = "cardinal"
	Ordinal  PluralType = "ordinal"
)

// Category is a CLDR plural category.
type Category string

const (
	Zero  Category = "zero"
	One   Category = "one"
	Two   Category = "two"
	Few   Category = "few"
	Many  Category = "many"
	Other Category = "other"
)

// Operands are the CLDR plural operands of a formatted number.
//
//	N: absolute value
//	I: integer digits
//	V: number of visible fraction digits, with trailing zeros
//	W: number of visible fraction digits, without trailing zeros
//	F: visible fraction digits, with trailing zeros
//	T: visible fraction digits, without trailing zeros
type Operands struct {
	N float64
	I int64
	V int
	W int
	F int64
	T int64
}

// PluralRules classifies numbers into plural categories for one locale.
type PluralRules interface {
	Select(op Operands) Category
}

// maxFractionOperand keeps F and T inside int64.
const maxFractionOperand = 18

// OperandsFor computes the operands of v as it would be displayed with
// opts: the fraction is cut to MaximumFractionDigits and padded with zeros
// to MinimumFractionDigits. "1.50" written with two fraction digits is not
// the same number as "1.5" for plural rules.
func OperandsFor(v float64, opts NumberOptions) Operands {
	abs := math.Abs(v)
	if math.IsNaN(abs) || math.IsInf(abs, 0) {
		return Operands{N: abs}
	}

	s := strconv.FormatFloat(abs, 'f', -1, 64)
	if maxFD, ok := opts.MaximumFractionDigits.Get(); ok && fractionLen(s) > maxFD {
		s = trimFraction(strconv.FormatFloat(abs, 'f', maxFD, 64))
	}
	if minFD, ok := opts.MinimumFractionDigits.Get(); ok {
		if pad := minFD - fractionLen(s); pad > 0 {
			if !strings.Contains(s, ".") {
				s += "."
			}
			s += strings.Repeat("0", pad)
		}
	}

	whole, frac, _ := strings.Cut(s, ".")
	trimmed := strings.TrimRight(frac, "0")

	op := Operands{
		N: abs,
		V: len(frac),
		W: len(trimmed),
		F: parseDigits(frac),
		T: parseDigits(trimmed),
	}
	if i, err := strconv.ParseInt(whole, 10, 64); err == nil {
		op.I = i
	} else {
		op.I = math.MaxInt64
	}
	return op
}

func fractionLen(s string) int {
	if i := strings.IndexByte(s, '.'); i >= 0 {
		return len(s) - i - 1
	}
	return 0
}

func trimFraction(s string) string {
	if !strings.Contains(s, ".") {
		return s
	}
	s = strings.TrimRight(s, "0")
	return strings.TrimSuffix(s, ".")
}

func parseDigits(s string) int64 {
	if s == "" {
		return 0
	}
	if len(s) > maxFractionOperand {
		s = s[:maxFractionOperand]
	}
	n, _ := strconv.ParseInt(s, 10, 64)
	return n
}
