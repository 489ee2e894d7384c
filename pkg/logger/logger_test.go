package logger_test

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/fluent/pkg/logger"
)

func decodeLine(t *testing.T, buf *bytes.Buffer) map[string]any {
	t.Helper()

	var rec map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &rec))
	return rec
}

func TestContextAttrs(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	log := slog.New(logger.Decorate(slog.NewJSONHandler(&buf, nil), logger.ContextAttrs))

	ctx := logger.WithAttrs(context.Background(), slog.String("locale", "pl"))
	ctx = logger.WithAttrs(ctx, slog.String("message", "hello"))
	log.InfoContext(ctx, "resolved")

	rec := decodeLine(t, &buf)
	assert.Equal(t, "pl", rec["locale"])
	assert.Equal(t, "hello", rec["message"])

	assert.Len(t, logger.AttrsFromContext(ctx), 2)
	assert.Empty(t, logger.AttrsFromContext(context.Background()))
	assert.Equal(t, ctx, logger.WithAttrs(ctx))
}

func TestDecorate(t *testing.T) {
	t.Parallel()

	type key struct{}
	requestID := func(ctx context.Context) (slog.Attr, bool) {
		id, ok := ctx.Value(key{}).(string)
		return slog.String("request_id", id), ok
	}

	t.Run("extracts per record", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		log := slog.New(logger.Decorate(slog.NewJSONHandler(&buf, nil), nil, requestID))
		log = log.With(slog.String("component", "test"))

		log.InfoContext(context.WithValue(context.Background(), key{}, "abc"), "first")
		rec := decodeLine(t, &buf)
		assert.Equal(t, "abc", rec["request_id"])
		assert.Equal(t, "test", rec["component"])

		buf.Reset()
		log.InfoContext(context.Background(), "second")
		rec = decodeLine(t, &buf)
		assert.NotContains(t, rec, "request_id")
	})

	t.Run("groups", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		log := slog.New(logger.Decorate(slog.NewJSONHandler(&buf, nil), requestID)).WithGroup("g")

		log.InfoContext(context.WithValue(context.Background(), key{}, "abc"), "msg", slog.Int("n", 1))
		rec := decodeLine(t, &buf)
		group, ok := rec["g"].(map[string]any)
		require.True(t, ok)
		assert.Equal(t, "abc", group["request_id"])
	})

	t.Run("no extractors", func(t *testing.T) {
		t.Parallel()

		h := slog.NewJSONHandler(&bytes.Buffer{}, nil)
		assert.Same(t, h, logger.Decorate(h, nil))
	})
}

func TestNewWithConfig(t *testing.T) {
	t.Parallel()

	t.Run("text at debug", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		log, err := logger.NewWithConfig(logger.Config{Level: "debug", Format: "TEXT"}, &buf)
		require.NoError(t, err)

		log.Debug("visible", slog.String("k", "v"))
		assert.Contains(t, buf.String(), "msg=visible")
		assert.Contains(t, buf.String(), "k=v")
	})

	t.Run("level filter", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		log, err := logger.NewWithConfig(logger.Config{Level: "warn"}, &buf)
		require.NoError(t, err)

		log.Info("hidden")
		assert.Empty(t, buf.String())
		log.Warn("shown")
		assert.Equal(t, "WARN", decodeLine(t, &buf)["level"])
	})

	t.Run("invalid", func(t *testing.T) {
		t.Parallel()

		_, err := logger.NewWithConfig(logger.Config{Level: "loud"}, nil)
		require.ErrorIs(t, err, logger.ErrInvalidConfig)

		_, err = logger.NewWithConfig(logger.Config{Format: "xml"}, nil)
		require.ErrorIs(t, err, logger.ErrInvalidConfig)
	})
}

func TestLoadConfig(t *testing.T) {
	t.Setenv("LOG_LEVEL", "error")
	t.Setenv("LOG_FORMAT", "text")
	t.Setenv("SENTRY_ENVIRONMENT", "staging")
	t.Setenv("SENTRY_MIN_LEVEL", "ERROR")

	cfg, err := logger.LoadConfig()
	require.NoError(t, err)
	assert.Equal(t, "error", cfg.Level)
	assert.Equal(t, "text", cfg.Format)
	assert.Equal(t, "staging", cfg.Sentry.Environment)
	assert.Equal(t, slog.LevelError, cfg.Sentry.MinLevel)

	t.Setenv("LOG_FORMAT", "xml")
	_, err = logger.LoadConfig()
	require.ErrorIs(t, err, logger.ErrInvalidConfig)
}

func TestNewNope(t *testing.T) {
	t.Parallel()

	log := logger.NewNope()
	assert.False(t, log.Enabled(context.Background(), slog.LevelError))
}

func TestNewWithSentry_NoDSN(t *testing.T) {
	t.Parallel()

	log := logger.NewWithSentry(logger.SentryConfig{})
	require.NotNil(t, log)
	assert.True(t, log.Enabled(context.Background(), slog.LevelInfo))
	assert.False(t, log.Enabled(context.Background(), slog.LevelDebug))
}
