package internal

import (
	"fmt"
	"strings"
	"time"
)

// Function is a callable available to messages. It only sees the
// resolved argument values and reports failure through the error.
type Function func(positional []Value, named map[string]Value) (Value, error)

// Registry maps function names to functions.
type Registry struct {
	fns map[string]Function
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{fns: make(map[string]Function)}
}

// Register adds fn under name. Names must be unique.
func (r *Registry) Register(name string, fn Function) error {
	if name == "" || fn == nil {
		return fmt.Errorf("%w: %q", ErrInvalidFunction, name)
	}
	if _, ok := r.fns[name]; ok {
		return fmt.Errorf("%w: %s", ErrFunctionExists, name)
	}
	r.fns[name] = fn
	return nil
}

// Has reports whether name is registered.
func (r *Registry) Has(name string) bool {
	_, ok := r.fns[name]
	return ok
}

// Call invokes the named function. Unknown names yield
// ErrUnknownFunction. A panicking function is reported as an error.
func (r *Registry) Call(name string, positional []Value, named map[string]Value) (v Value, err error) {
	fn, ok := r.fns[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownFunction, name)
	}

	defer func() {
		if p := recover(); p != nil {
			v, err = nil, fmt.Errorf("function %s panicked: %v", name, p)
		}
	}()

	return fn(positional, named)
}

func registerBuiltins(r *Registry) {
	builtins := map[string]Function{
		"NUMBER":   numberFunc,
		"DATETIME": dateTimeFunc,
	}
	for name, fn := range builtins {
		if !r.Has(name) {
			r.fns[name] = fn
		}
	}
}

// optionValue unwraps a named option for intl option merging.
func optionValue(v Value) any {
	switch x := v.(type) {
	case StringValue:
		return string(x)
	case NumberValue:
		return x.Value
	default:
		return nil
	}
}

// numberFunc implements NUMBER(value, ...options).
func numberFunc(positional []Value, named map[string]Value) (Value, error) {
	if len(positional) == 0 {
		return nil, fmt.Errorf("%w: NUMBER needs a value", ErrInvalidArgument)
	}

	var n NumberValue
	switch v := positional[0].(type) {
	case NumberValue:
		n = v
	case StringValue:
		parsed, err := ParseNumber(strings.TrimSpace(string(v)))
		if err != nil {
			return nil, fmt.Errorf("%w: NUMBER(%q)", ErrInvalidArgument, string(v))
		}
		n = parsed
	default:
		return nil, fmt.Errorf("%w: NUMBER does not accept %T", ErrInvalidArgument, v)
	}

	for name, v := range named {
		n.Options.Merge(name, optionValue(v))
	}
	return n, nil
}

// dateTimeFunc implements DATETIME(value, ...options). Text arguments are
// parsed as RFC 3339.
func dateTimeFunc(positional []Value, named map[string]Value) (Value, error) {
	if len(positional) == 0 {
		return nil, fmt.Errorf("%w: DATETIME needs a value", ErrInvalidArgument)
	}

	var d DateTimeValue
	switch v := positional[0].(type) {
	case DateTimeValue:
		d = v
	case StringValue:
		t, err := time.Parse(time.RFC3339, string(v))
		if err != nil {
			return nil, fmt.Errorf("%w: DATETIME(%q)", ErrInvalidArgument, string(v))
		}
		d = DateTime(t)
	default:
		return nil, fmt.Errorf("%w: DATETIME does not accept %T", ErrInvalidArgument, v)
	}

	for name, v := range named {
		d.Options.Merge(name, optionValue(v))
	}
	return d, nil
}
