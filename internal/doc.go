// Package internal implements message resolution for the fluent package.
//
// This package is internal and should not be used directly. Import
// "github.com/dmitrymomot/fluent" instead, which re-exports the public API.
//
// # Core Types
//
//   - Bundle: the messages, terms and functions of one locale plus the
//     formatting settings; entry point for Format
//   - Value: a resolved value (StringValue, NumberValue, DateTimeValue,
//     NoneValue or a caller type)
//   - Env: what a Value sees when it renders: locale and formatter cache
//   - Store: index of one resource
//   - Registry: named functions callable from messages
//   - ResolverError: a recoverable error with its ErrorKind
//
// # Resolution
//
// Every Format call builds a fresh scope holding the arguments, the
// references on the current branch, the remaining depth and the number of
// expanded placeables. The resolver walks the pattern and never fails:
// anything it cannot resolve is replaced by a marker such as {$name},
// {id.attr}, {-term} or {FUNC()} and reported in the returned errors.
//
// Nesting is bounded by the depth limit (64 by default), which applies to
// message references, term references and select variants. A reference
// already on the current branch is a cycle. Sibling branches may reference
// the same id. Expansion is bounded by the placeable limit (100 by
// default); once it is exceeded nothing more is written.
//
// # Bidirectional Isolation
//
// When isolation is enabled, placeables in patterns with more than one
// element are wrapped in U+2068 FIRST STRONG ISOLATE and U+2069 POP
// DIRECTIONAL ISOLATE, except message references, term references and
// string literals.
//
// # Concurrency
//
// Format may be called from many goroutines. The only shared mutable state
// is the formatter cache, which builds each formatter once per key.
// AddResource and AddFunction take the write lock.
package internal
