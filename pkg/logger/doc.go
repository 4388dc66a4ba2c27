// Package logger builds log/slog loggers with context extraction and
// optional Sentry reporting.
//
// # Basic Usage
//
//	log := logger.New(logger.RequestIDExtractor)
//
//	ctx := logger.WithRequestID(context.Background(), "abc-123")
//	log.InfoContext(ctx, "request done", slog.Int("status", 200))
//	// {"level":"INFO","msg":"request done","status":200,"request_id":"abc-123"}
//
// Libraries in this module default to [NewNope] and accept a logger
// through a WithLogger option.
//
// # Configuration
//
// [Config] carries env and yaml tags. When SentryDSN is set,
// [NewWithConfig] fans records out to stdout and Sentry: errors become
// Sentry issues, warnings (or errors only, depending on SentryMinLevel)
// are stored as Sentry logs. Without a DSN, or if Sentry fails to start,
// logging continues on stdout.
//
//	log := logger.NewWithConfig(logger.Config{
//	    Level:     slog.LevelDebug,
//	    SentryDSN: os.Getenv("SENTRY_DSN"),
//	}, logger.RequestIDExtractor)
//
// # Handlers
//
// [NewContextHandler] wraps any slog.Handler with [ContextExtractor]s,
// and [Fanout] writes each record to several handlers.
package logger
