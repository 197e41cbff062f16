package logger

import (
	"context"
	"log/slog"
	"os"
)

type contextKey struct{}

var loggerKey = contextKey{}

// Options controls how New builds a logger. Zero-value Options is the
// CLI's default: info level, human-readable text output.
type Options struct {
	// Verbose lowers the minimum level from Info to Debug.
	Verbose bool
	// JSON switches the handler to slog.NewJSONHandler, for piping
	// containerlab run output into a log aggregator instead of a
	// terminal.
	JSON bool
}

// New creates the structured logger a session attaches to its context.
func New(opts Options) *slog.Logger {
	level := slog.LevelInfo
	if opts.Verbose {
		level = slog.LevelDebug
	}

	handlerOpts := &slog.HandlerOptions{Level: level}

	var handler slog.Handler
	if opts.JSON {
		handler = slog.NewJSONHandler(os.Stdout, handlerOpts)
	} else {
		handler = slog.NewTextHandler(os.Stdout, handlerOpts)
	}

	return slog.New(handler)
}

// WithContext returns a new context carrying logger, for FromContext to
// retrieve further down a call chain that only has a context.Context.
func WithContext(ctx context.Context, logger *slog.Logger) context.Context {
	return context.WithValue(ctx, loggerKey, logger)
}

// FromContext returns the logger attached by WithContext, or slog's
// package default if the session never attached one (e.g. in a test
// that calls a module builder directly).
func FromContext(ctx context.Context) *slog.Logger {
	if logger, ok := ctx.Value(loggerKey).(*slog.Logger); ok {
		return logger
	}
	return slog.Default()
}
