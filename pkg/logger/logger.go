package logger

import (
	"io"
	"log/slog"
	"os"
	"strings"
)

// Config selects the log level, output format and optional Sentry sink.
// Field tags follow caarlos0/env so the struct can be embedded in an
// application config.
type Config struct {
	// Output defaults to os.Stdout.
	Output io.Writer `env:"-"`

	Level  slog.Level `env:"LOG_LEVEL" envDefault:"info"`
	Format string     `env:"LOG_FORMAT" envDefault:"json"` // "json" or "text"

	Sentry SentryConfig
}

// New returns a JSON logger at info level writing to stdout.
func New(extractors ...ContextExtractor) *slog.Logger {
	return NewWithConfig(Config{}, extractors...)
}

// NewWithConfig builds a logger from cfg. When cfg.Sentry has a DSN,
// records are also sent to Sentry; extractors apply to both sinks.
func NewWithConfig(cfg Config, extractors ...ContextExtractor) *slog.Logger {
	out := cfg.Output
	if out == nil {
		out = os.Stdout
	}
	opts := &slog.HandlerOptions{Level: cfg.Level}

	var h slog.Handler
	if strings.EqualFold(cfg.Format, "text") {
		h = slog.NewTextHandler(out, opts)
	} else {
		h = slog.NewJSONHandler(out, opts)
	}

	if sh := newSentryHandler(cfg.Sentry, h); sh != nil {
		h = fanout{h, sh}
	}
	return slog.New(Decorate(h, extractors...))
}

// NewNope returns a logger that discards everything.
func NewNope() *slog.Logger {
	return slog.New(slog.DiscardHandler)
}
