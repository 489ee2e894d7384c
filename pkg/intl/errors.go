package intl

import "errors"

var (
	// ErrMissingCurrency is returned when the currency style has no currency code.
	ErrMissingCurrency = errors.New("intl: currency style requires a currency code")

	// ErrInvalidCurrency is returned for codes that are not ISO 4217 currencies.
	ErrInvalidCurrency = errors.New("intl: invalid currency code")

	// ErrKindMismatch is returned when a cached formatter has a different
	// type than the one requested for the same key.
	ErrKindMismatch = errors.New("intl: cached formatter has unexpected type")
)
