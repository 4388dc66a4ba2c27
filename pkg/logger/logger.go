package logger

import (
	"context"
	"io"
	"log/slog"
	"os"

	"github.com/getsentry/sentry-go"
	sentryslog "github.com/getsentry/sentry-go/slog"
)

// Config holds logger settings.
type Config struct {
	// Level is the minimum level written to the output.
	Level slog.Level `env:"LOG_LEVEL" envDefault:"info" yaml:"level"`
	// Format is "json" (default) or "text".
	Format string `env:"LOG_FORMAT" envDefault:"json" yaml:"format"`
	// SentryDSN enables Sentry reporting when non-empty.
	SentryDSN string `env:"SENTRY_DSN" yaml:"sentry_dsn"`
	// SentryEnvironment is reported with every Sentry event.
	SentryEnvironment string `env:"SENTRY_ENVIRONMENT" envDefault:"production" yaml:"sentry_environment"`
	// SentryMinLevel is the lowest level forwarded to Sentry as a log.
	// Errors always create Sentry issues.
	SentryMinLevel slog.Level `env:"SENTRY_MIN_LEVEL" envDefault:"warn" yaml:"sentry_min_level"`
}

// New creates a JSON logger on stdout at info level.
// Extractors add request-scoped attributes on every call.
func New(extractors ...ContextExtractor) *slog.Logger {
	return NewWithConfig(Config{}, extractors...)
}

// NewWithConfig creates a logger on stdout from cfg.
// If cfg.SentryDSN is set, records are also sent to Sentry. Sentry
// initialization failures are logged and the logger falls back to
// stdout only.
func NewWithConfig(cfg Config, extractors ...ContextExtractor) *slog.Logger {
	return newLogger(os.Stdout, cfg, extractors...)
}

// NewNope creates a logger that discards all output.
// Libraries use it as the default when no logger is configured.
func NewNope() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newLogger(w io.Writer, cfg Config, extractors ...ContextExtractor) *slog.Logger {
	out := outputHandler(w, cfg)

	if cfg.SentryDSN == "" {
		return slog.New(NewContextHandler(out, extractors...))
	}

	if err := sentry.Init(sentry.ClientOptions{
		Dsn:         cfg.SentryDSN,
		Environment: cfg.SentryEnvironment,
		EnableLogs:  true,
	}); err != nil {
		slog.New(out).Error("logger: sentry init failed", slog.String("error", err.Error()))
		return slog.New(NewContextHandler(out, extractors...))
	}

	logLevels := []slog.Level{slog.LevelWarn, slog.LevelError}
	if cfg.SentryMinLevel >= slog.LevelError {
		logLevels = []slog.Level{slog.LevelError}
	}

	sentryHandler := sentryslog.Option{
		EventLevel: []slog.Level{slog.LevelError},
		LogLevel:   logLevels,
	}.NewSentryHandler(context.Background())

	return slog.New(NewContextHandler(Fanout(out, sentryHandler), extractors...))
}

func outputHandler(w io.Writer, cfg Config) slog.Handler {
	opts := &slog.HandlerOptions{Level: cfg.Level}
	if cfg.Format == "text" {
		return slog.NewTextHandler(w, opts)
	}
	return slog.NewJSONHandler(w, opts)
}
