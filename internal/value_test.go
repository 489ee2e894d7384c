package internal_test

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/language"

	"github.com/dmitrymomot/fluent/internal"
	"github.com/dmitrymomot/fluent/pkg/intl"
)

type failingServices struct{ stubServices }

func (*failingServices) NumberFormatter(language.Tag, intl.NumberOptions) (intl.NumberFormatter, error) {
	return nil, errors.New("no data")
}

func TestParseNumber(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in      string
		value   float64
		minFD   int
		hasMinD bool
	}{
		{in: "1", value: 1},
		{in: "1.50", value: 1.5, minFD: 2, hasMinD: true},
		{in: "-0.001", value: -0.001, minFD: 3, hasMinD: true},
		{in: "1e3", value: 1000},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			t.Parallel()

			n, err := internal.ParseNumber(tt.in)
			require.NoError(t, err)
			assert.InDelta(t, tt.value, n.Value, 1e-12)
			got, ok := n.Options.MinimumFractionDigits.Get()
			assert.Equal(t, tt.hasMinD, ok)
			assert.Equal(t, tt.minFD, got)
		})
	}

	_, err := internal.ParseNumber("abc")
	require.Error(t, err)
}

func TestValueOf(t *testing.T) {
	t.Parallel()

	ts := time.Date(2024, time.March, 5, 0, 0, 0, 0, time.UTC)

	assert.Equal(t, internal.StringValue("x"), internal.ValueOf("x"))
	assert.Equal(t, internal.Int(3), internal.ValueOf(3))
	assert.Equal(t, internal.Number(2.5), internal.ValueOf(2.5))
	assert.Equal(t, internal.Number(7), internal.ValueOf(uint8(7)))
	assert.Equal(t, internal.DateTime(ts), internal.ValueOf(ts))
	assert.Equal(t, internal.NoneValue{}, internal.ValueOf(nil))
	assert.Equal(t, internal.StringValue("true"), internal.ValueOf(true))

	v := internal.String("kept")
	assert.Equal(t, v, internal.ValueOf(v))
}

func TestValue_Format(t *testing.T) {
	t.Parallel()

	env := internal.NewEnv(language.English, nil)

	t.Run("string", func(t *testing.T) {
		t.Parallel()
		assert.Equal(t, "text", internal.String("text").Format(env))
	})

	t.Run("number", func(t *testing.T) {
		t.Parallel()
		assert.Equal(t, "1,234.5", internal.Number(1234.5).Format(env))
	})

	t.Run("number without env", func(t *testing.T) {
		t.Parallel()
		n, err := internal.ParseNumber("1.50")
		require.NoError(t, err)
		assert.Equal(t, "1.50", n.Format(nil))
		assert.Equal(t, "1234.5", internal.Number(1234.5).Format(nil))
	})

	t.Run("number with failing formatter", func(t *testing.T) {
		t.Parallel()
		broken := internal.NewEnv(language.English, intl.NewMemoizer(&failingServices{}))
		assert.Equal(t, "1234.5", internal.Number(1234.5).Format(broken))
	})

	t.Run("none", func(t *testing.T) {
		t.Parallel()
		assert.Equal(t, "{???}", internal.None().Format(env))
		assert.Equal(t, "{$x}", internal.NoneValue{Fallback: "{$x}"}.Format(env))
	})

	t.Run("env", func(t *testing.T) {
		t.Parallel()
		assert.Equal(t, language.English, env.Locale())
		assert.NotNil(t, env.Memoizer())
	})
}
