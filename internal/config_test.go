package internal_test

import (
	"log/slog"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/language"

	"github.com/dmitrymomot/fluent/internal"
	"github.com/dmitrymomot/fluent/pkg/logger"
)

// Tests in this file use t.Setenv and cannot run in parallel.

func TestLoadConfig_Defaults(t *testing.T) {
	for _, key := range []string{
		"FLUENT_LOCALE", "FLUENT_USE_ISOLATING", "FLUENT_MAX_DEPTH", "FLUENT_MAX_PLACEABLES",
		"LOG_LEVEL", "LOG_FORMAT", "SENTRY_DSN", "SENTRY_ENVIRONMENT", "SENTRY_MIN_LEVEL",
	} {
		t.Setenv(key, "")
		require.NoError(t, os.Unsetenv(key))
	}

	cfg, err := internal.LoadConfig()
	require.NoError(t, err)
	assert.Equal(t, internal.Config{
		Locale:        "en-US",
		UseIsolating:  true,
		MaxDepth:      64,
		MaxPlaceables: 100,
		Log: logger.Config{
			Level:  "info",
			Format: "json",
			Sentry: logger.SentryConfig{Environment: "production", MinLevel: slog.LevelWarn},
		},
	}, cfg)
}

func TestLoadConfig_FromEnv(t *testing.T) {
	t.Setenv("FLUENT_LOCALE", "de-DE")
	t.Setenv("FLUENT_USE_ISOLATING", "false")
	t.Setenv("FLUENT_MAX_DEPTH", "3")
	t.Setenv("FLUENT_MAX_PLACEABLES", "10")

	cfg, err := internal.LoadConfig()
	require.NoError(t, err)

	b, err := internal.NewFromConfig(cfg, internal.WithResource(decode(t, `
- id: chain
  value: [{msg: a}]
- id: a
  value: [{msg: b}]
- id: b
  value: [{msg: c}]
- id: c
  value: [{msg: d}]
- id: d
  value: [{var: x}, " end"]
`)))
	require.NoError(t, err)
	assert.Equal(t, language.MustParse("de-DE"), b.Locale())

	out, kinds := format(t, b, "chain", nil)
	assert.Equal(t, "{d}", out)
	assert.Equal(t, []internal.ErrorKind{internal.TooDeep}, kinds)

	out, _ = format(t, b, "d", internal.Args{"x": internal.String("x")})
	assert.Equal(t, "x end", out)
}

func TestLoadConfig_Invalid(t *testing.T) {
	tests := []struct {
		name string
		env  map[string]string
	}{
		{name: "not a number", env: map[string]string{"FLUENT_MAX_DEPTH": "deep"}},
		{name: "zero depth", env: map[string]string{"FLUENT_MAX_DEPTH": "0"}},
		{name: "negative placeables", env: map[string]string{"FLUENT_MAX_PLACEABLES": "-1"}},
		{name: "bad bool", env: map[string]string{"FLUENT_USE_ISOLATING": "maybe"}},
		{name: "bad log level", env: map[string]string{"LOG_LEVEL": "loud"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for k, v := range tt.env {
				t.Setenv(k, v)
			}
			_, err := internal.LoadConfig()
			require.ErrorIs(t, err, internal.ErrInvalidConfig)
		})
	}
}

func TestNewFromConfig_InvalidLocale(t *testing.T) {
	_, err := internal.NewFromConfig(internal.Config{Locale: "!!", MaxDepth: 1, MaxPlaceables: 1})
	require.ErrorIs(t, err, internal.ErrInvalidConfig)

	_, err = internal.NewFromConfig(internal.Config{Locale: "en", MaxDepth: 0, MaxPlaceables: 1})
	require.ErrorIs(t, err, internal.ErrInvalidConfig)

	_, err = internal.NewFromConfig(internal.Config{
		Locale: "en", MaxDepth: 1, MaxPlaceables: 1,
		Log: logger.Config{Format: "xml"},
	})
	require.ErrorIs(t, err, internal.ErrInvalidConfig)
}
