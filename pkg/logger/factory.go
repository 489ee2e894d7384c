package logger

import (
	"io"
	"log/slog"
	"os"
)

// New creates a JSON logger writing info and above to stdout.
func New(extractors ...ContextExtractor) *slog.Logger {
	h := slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo})
	return slog.New(Decorate(h, extractors...))
}

// NewWithConfig creates a logger writing to w as described by cfg. When a
// Sentry DSN is set, records are also sent to Sentry.
//
//	cfg, err := logger.LoadConfig()
//	if err != nil {
//	    return err
//	}
//	log, err := logger.NewWithConfig(cfg, os.Stderr)
func NewWithConfig(cfg Config, w io.Writer, extractors ...ContextExtractor) (*slog.Logger, error) {
	level, err := cfg.level()
	if err != nil {
		return nil, err
	}
	format, err := cfg.format()
	if err != nil {
		return nil, err
	}
	if w == nil {
		w = os.Stdout
	}

	opts := &slog.HandlerOptions{Level: level}
	var h slog.Handler
	if format == FormatText {
		h = slog.NewTextHandler(w, opts)
	} else {
		h = slog.NewJSONHandler(w, opts)
	}

	if cfg.Sentry.DSN != "" {
		sh, err := newSentryHandler(cfg.Sentry)
		if err != nil {
			slog.New(h).Error("failed to initialize Sentry", slog.String("error", err.Error()))
		} else {
			h = fanout(h, sh)
		}
	}

	return slog.New(Decorate(h, extractors...)), nil
}
