// Package logger builds slog loggers with context extractors and optional
// Sentry reporting.
//
// Extractors add request-scoped attributes at log time:
//
//	log := logger.NewWithConfig(cfg.Log,
//	    middlewares.RequestIDExtractor(),
//	    conduit.DispatchExtractor(),
//	)
//	log.InfoContext(r.Context(), "movie created")
//	// {"level":"INFO","msg":"movie created","request_id":"…","handler":"api:movies.createMovie"}
//
// Config is tagged for caarlos0/env:
//
//	LOG_LEVEL=debug LOG_FORMAT=text SENTRY_DSN=https://…
//
// With a DSN, error records become Sentry issues and warnings are stored
// as Sentry logs. Without one, or when the SDK fails to start, only the
// local handler is used.
package logger
