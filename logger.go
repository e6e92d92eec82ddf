package vecbin

import (
	"context"
	"encoding/hex"
	"io"
	"log/slog"
	"os"
)

// Logger wraps slog.Logger with converter-specific context.
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

// NewJSONLogger creates a Logger that outputs JSON-formatted logs to stderr.
func NewJSONLogger(level slog.Level) *Logger {
	return NewLogger(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	}))
}

// NewTextLogger creates a Logger that outputs human-readable text logs to stderr.
func NewTextLogger(level slog.Level) *Logger {
	return NewLogger(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	}))
}

// NoopLogger creates a Logger that discards all log output.
func NoopLogger() *Logger {
	return NewLogger(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{
		Level: slog.Level(1000), // Unreachable level
	}))
}

// WithDimension adds a dimension field to the logger.
func (l *Logger) WithDimension(dim uint32) *Logger {
	return &Logger{
		Logger: l.Logger.With("dimension", dim),
	}
}

// WithCount adds a count field to the logger.
func (l *Logger) WithCount(count uint64) *Logger {
	return &Logger{
		Logger: l.Logger.With("count", count),
	}
}

// LogConvert logs the outcome of a conversion.
func (l *Logger) LogConvert(ctx context.Context, src, dst string, res Result, err error) {
	if err != nil {
		l.ErrorContext(ctx, "conversion failed",
			"source", src,
			"destination", dst,
			"error", err,
		)
		return
	}
	l.WithDimension(res.Dimension).WithCount(res.Count).InfoContext(ctx, "conversion completed",
		"source", src,
		"destination", dst,
		"bytes", res.Size,
		"written", res.Written,
		"compression", res.Compression.String(),
		"checksum", res.Checksum,
		"blake3", hex.EncodeToString(res.Digest[:]),
		"duration", res.Duration,
	)
}
