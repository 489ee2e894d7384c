package internal_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/fluent/internal"
)

func TestResolverError(t *testing.T) {
	t.Parallel()

	t.Run("matches its kind", func(t *testing.T) {
		t.Parallel()
		err := &internal.ResolverError{Kind: internal.Cyclic, Ref: "a"}
		require.ErrorIs(t, err, internal.ErrCyclic)
		require.NotErrorIs(t, err, internal.ErrTooDeep)
		assert.Equal(t, "fluent: cyclic reference: a", err.Error())
	})

	t.Run("wrapped", func(t *testing.T) {
		t.Parallel()
		err := fmt.Errorf("outer: %w", &internal.ResolverError{Kind: internal.MissingArgument, Ref: "$name"})
		require.ErrorIs(t, err, internal.ErrMissingArgument)
	})

	t.Run("unwraps the cause", func(t *testing.T) {
		t.Parallel()
		cause := errors.New("boom")
		err := &internal.ResolverError{Kind: internal.FunctionError, Ref: "FN", Err: cause}
		require.ErrorIs(t, err, cause)
		require.ErrorIs(t, err, internal.ErrFunction)
		assert.Equal(t, "fluent: function failed: FN: boom", err.Error())
	})

	t.Run("unknown kind", func(t *testing.T) {
		t.Parallel()
		err := &internal.ResolverError{Kind: internal.ErrorKind(99)}
		assert.Equal(t, "fluent: resolution error", err.Error())
		assert.Equal(t, "Unknown", err.Kind.String())
	})
}

func TestKinds(t *testing.T) {
	t.Parallel()

	errs := []error{
		&internal.ResolverError{Kind: internal.NoValue},
		errors.New("other"),
		fmt.Errorf("wrapped: %w", &internal.ResolverError{Kind: internal.TooDeep}),
	}
	assert.Equal(t, []internal.ErrorKind{internal.NoValue, internal.TooDeep}, internal.Kinds(errs))
	assert.Empty(t, internal.Kinds(nil))
}

func TestErrorKind_String(t *testing.T) {
	t.Parallel()

	tests := map[internal.ErrorKind]string{
		internal.UnknownMessage:    "UnknownMessage",
		internal.UnknownAttribute:  "UnknownAttribute",
		internal.MissingArgument:   "MissingArgument",
		internal.Cyclic:            "Cyclic",
		internal.TooDeep:           "TooDeep",
		internal.TooManyPlaceables: "TooManyPlaceables",
		internal.UnknownFunction:   "UnknownFunction",
		internal.FunctionError:     "FunctionError",
		internal.NoValue:           "NoValue",
	}
	for kind, want := range tests {
		assert.Equal(t, want, kind.String())
	}
}
