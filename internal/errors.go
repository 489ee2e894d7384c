package internal

import (
	"errors"
	"strings"
)

// ErrorKind classifies resolution errors. Callers key on the kind, never
// on the message text.
type ErrorKind int

const (
	UnknownMessage ErrorKind = iota + 1
	UnknownAttribute
	MissingArgument
	Cyclic
	TooDeep
	TooManyPlaceables
	UnknownFunction
	FunctionError
	NoValue
)

// Sentinel errors, one per kind. A *ResolverError matches its kind's
// sentinel with errors.Is.
var (
	ErrUnknownMessage    = errors.New("fluent: unknown message")
	ErrUnknownAttribute  = errors.New("fluent: unknown attribute")
	ErrMissingArgument   = errors.New("fluent: missing argument")
	ErrCyclic            = errors.New("fluent: cyclic reference")
	ErrTooDeep           = errors.New("fluent: too many nested references")
	ErrTooManyPlaceables = errors.New("fluent: too many placeables")
	ErrUnknownFunction   = errors.New("fluent: unknown function")
	ErrFunction          = errors.New("fluent: function failed")
	ErrNoValue           = errors.New("fluent: no value")
)

// Administrative errors.
var (
	ErrFunctionExists  = errors.New("fluent: function already registered")
	ErrInvalidFunction = errors.New("fluent: invalid function")
	ErrNilResource     = errors.New("fluent: nil resource")
	ErrInvalidConfig   = errors.New("fluent: invalid configuration")
	ErrInvalidArgument = errors.New("fluent: invalid function argument")
)

var kindSentinels = map[ErrorKind]error{
	UnknownMessage:    ErrUnknownMessage,
	UnknownAttribute:  ErrUnknownAttribute,
	MissingArgument:   ErrMissingArgument,
	Cyclic:            ErrCyclic,
	TooDeep:           ErrTooDeep,
	TooManyPlaceables: ErrTooManyPlaceables,
	UnknownFunction:   ErrUnknownFunction,
	FunctionError:     ErrFunction,
	NoValue:           ErrNoValue,
}

var kindNames = map[ErrorKind]string{
	UnknownMessage:    "UnknownMessage",
	UnknownAttribute:  "UnknownAttribute",
	MissingArgument:   "MissingArgument",
	Cyclic:            "Cyclic",
	TooDeep:           "TooDeep",
	TooManyPlaceables: "TooManyPlaceables",
	UnknownFunction:   "UnknownFunction",
	FunctionError:     "FunctionError",
	NoValue:           "NoValue",
}

func (k ErrorKind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return "Unknown"
}

// ResolverError is a recoverable error recorded while formatting.
type ResolverError struct {
	// Err is the underlying cause, set for function failures.
	Err error

	// Ref is the reference as written: "$name", "id.attr", "-term", "FUNC".
	Ref string

	Kind ErrorKind
}

func newError(kind ErrorKind, ref string, cause error) *ResolverError {
	return &ResolverError{Kind: kind, Ref: ref, Err: cause}
}

func (e *ResolverError) Error() string {
	var b strings.Builder
	if s, ok := kindSentinels[e.Kind]; ok {
		b.WriteString(s.Error())
	} else {
		b.WriteString("fluent: resolution error")
	}
	if e.Ref != "" {
		b.WriteString(": ")
		b.WriteString(e.Ref)
	}
	if e.Err != nil {
		b.WriteString(": ")
		b.WriteString(e.Err.Error())
	}
	return b.String()
}

// Is matches the sentinel of the error kind.
func (e *ResolverError) Is(target error) bool {
	return target != nil && target == kindSentinels[e.Kind]
}

func (e *ResolverError) Unwrap() error {
	return e.Err
}

// Kinds returns the kinds of the resolver errors in errs, in order.
// Other errors are skipped.
func Kinds(errs []error) []ErrorKind {
	out := make([]ErrorKind, 0, len(errs))
	for _, err := range errs {
		var re *ResolverError
		if errors.As(err, &re) {
			out = append(out, re.Kind)
		}
	}
	return out
}
