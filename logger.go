package graphstore

import (
	"context"
	"log/slog"
	"os"
	"time"
)

// Logger wraps slog.Logger with graphstore-specific context.
// This provides structured logging with consistent field names.
type Logger struct {
	*slog.Logger
}

// NewLogger creates a new Logger with the given handler.
// If handler is nil, uses default text handler to stderr.
func NewLogger(handler slog.Handler) *Logger {
	if handler == nil {
		handler = slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
			Level: slog.LevelInfo,
		})
	}
	return &Logger{
		Logger: slog.New(handler),
	}
}

// NewJSONLogger creates a Logger that outputs JSON-formatted logs.
// level sets the minimum log level (e.g., slog.LevelDebug, slog.LevelInfo).
func NewJSONLogger(level slog.Level) *Logger {
	handler := slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	})
	return &Logger{
		Logger: slog.New(handler),
	}
}

// NewTextLogger creates a Logger that outputs human-readable text logs.
func NewTextLogger(level slog.Level) *Logger {
	handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	})
	return &Logger{
		Logger: slog.New(handler),
	}
}

// NoopLogger creates a Logger that discards all log output.
// Use this to disable logging entirely.
func NoopLogger() *Logger {
	handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.Level(1000), // Unreachable level
	})
	return &Logger{
		Logger: slog.New(handler),
	}
}

// WithVertices adds a vertex-count field to the logger.
func (l *Logger) WithVertices(n int) *Logger {
	return &Logger{
		Logger: l.Logger.With("vertices", n),
	}
}

// WithEdges adds an edge-count field to the logger.
func (l *Logger) WithEdges(n int) *Logger {
	return &Logger{
		Logger: l.Logger.With("edges", n),
	}
}

// LogFinalize logs a finalize operation.
func (l *Logger) LogFinalize(ctx context.Context, vertices, edges int, duration time.Duration, err error) {
	if err != nil {
		l.ErrorContext(ctx, "finalize failed",
			"vertices", vertices,
			"edges", edges,
			"error", err,
		)
	} else {
		l.DebugContext(ctx, "finalize completed",
			"vertices", vertices,
			"edges", edges,
			"duration", duration,
		)
	}
}

// LogSnapshot logs a snapshot save or load.
func (l *Logger) LogSnapshot(ctx context.Context, op string, bytes int64, duration time.Duration, err error) {
	if err != nil {
		l.ErrorContext(ctx, "snapshot "+op+" failed",
			"error", err,
		)
	} else {
		l.DebugContext(ctx, "snapshot "+op+" completed",
			"bytes", bytes,
			"duration", duration,
		)
	}
}
