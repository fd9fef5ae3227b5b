// Package logger builds the structured loggers used across shardcache.
//
// It extends log/slog with context extractors (request-scoped attributes such
// as request IDs, added to every record logged with that context) and
// optional Sentry reporting, so a cache failure logged by the facade during
// an HTTP request carries the request's ID and, in production, opens a
// Sentry issue.
//
// # Basic Usage
//
//	log := logger.New(logger.Config{Level: "debug", Format: "text"})
//	log.InfoContext(ctx, "ring opened", slog.Int("shards", 3))
//
// # Context Extractors
//
// A [ContextExtractor] returns the attribute to add for a context, or false
// to add nothing:
//
//	requestID := func(ctx context.Context) (slog.Attr, bool) {
//		if id, ok := ctx.Value(requestIDKey{}).(string); ok {
//			return slog.String("request_id", id), true
//		}
//		return slog.Attr{}, false
//	}
//	log := logger.New(cfg, requestID)
//
// [WithExtractors] applies the same decoration to any slog.Handler.
//
// # Sentry Integration
//
// Set [SentryConfig.DSN] (SENTRY_DSN) to also send records to Sentry. Errors
// create issues; warnings (or only errors, with MinLevel "error") are stored
// as Sentry logs. An empty DSN or a failed Sentry initialization leaves the
// logger writing to stdout only, so the same code path works in development.
package logger
