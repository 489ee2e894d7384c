// Package logger builds slog loggers with context attributes and optional
// Sentry reporting.
//
// Loggers are configured from the environment:
//
//	cfg, err := logger.LoadConfig() // LOG_LEVEL, LOG_FORMAT, SENTRY_*
//	if err != nil {
//	    return err
//	}
//	log, err := logger.NewWithConfig(cfg, os.Stderr, logger.ContextAttrs)
//
// # Context attributes
//
// A ContextExtractor pulls one attribute out of a context. Decorate wraps any
// slog.Handler so extractors run for every record. WithAttrs stores
// attributes in a context and ContextAttrs adds them to records logged with
// that context:
//
//	ctx = logger.WithAttrs(ctx, slog.String("locale", "pl"))
//	log.DebugContext(ctx, "message resolved") // includes locale=pl
//
// # Sentry
//
// When SentryConfig.DSN is set, records go to both the local handler and
// Sentry. Errors create Sentry issues; levels from MinLevel up are stored as
// Sentry logs. A failed Sentry init falls back to local logging.
//
// NewNope returns a logger that discards everything and is the default for
// libraries in this module.
package logger
