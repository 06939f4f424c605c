// Package logging provides a small structured-logging wrapper around
// log/slog for the JWP/JPT CLI demo and for library callers who opt in to
// engine tracing. No core package requires a logger to function: the proof
// engine accepts an optional *Logger and does not log at all when it is nil.
package logging

import (
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/certen/jwp/internal/jwperr"
)

// Config controls output format and destination.
type Config struct {
	Level     slog.Level
	Format    string // "json" or "text"
	Output    string // "stdout", "stderr", or a file path
	AddSource bool
}

// DefaultConfig returns the logger configuration used when none is given.
func DefaultConfig() *Config {
	return &Config{
		Level:  slog.LevelInfo,
		Format: "text",
		Output: "stdout",
	}
}

// Logger wraps slog.Logger with JWP-specific field helpers.
type Logger struct {
	*slog.Logger
}

// New builds a Logger from the given configuration, or DefaultConfig() when
// cfg is nil.
func New(cfg *Config) (*Logger, error) {
	if cfg == nil {
		cfg = DefaultConfig()
	}

	var output io.Writer
	switch cfg.Output {
	case "stdout", "":
		output = os.Stdout
	case "stderr":
		output = os.Stderr
	default:
		file, err := os.OpenFile(cfg.Output, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return nil, jwperr.Wrap(err, jwperr.KindSerialization, "open log output")
		}
		output = file
	}

	opts := &slog.HandlerOptions{Level: cfg.Level, AddSource: cfg.AddSource}

	var handler slog.Handler
	if cfg.Format == "json" {
		handler = slog.NewJSONHandler(output, opts)
	} else {
		handler = slog.NewTextHandler(output, opts)
	}

	return &Logger{Logger: slog.New(handler)}, nil
}

// WithComponent returns a logger tagged with the given component name.
func (l *Logger) WithComponent(component string) *Logger {
	return &Logger{Logger: l.Logger.With("component", component)}
}

// WithOperation returns a logger tagged with the given operation name.
func (l *Logger) WithOperation(operation string) *Logger {
	return &Logger{Logger: l.Logger.With("operation", operation)}
}

// WithError returns a logger carrying structured fields for err, unpacking
// a *jwperr.Error's Kind/Reason when present.
func (l *Logger) WithError(err error) *Logger {
	if err == nil {
		return l
	}
	args := []any{"error", err.Error()}
	if je, ok := jwperr.As(err); ok {
		args = append(args, "error_kind", string(je.Kind))
		if je.Reason != "" {
			args = append(args, "error_reason", string(je.Reason))
		}
	}
	return &Logger{Logger: l.Logger.With(args...)}
}

// Elapsed returns a logger tagged with the elapsed duration since start.
func (l *Logger) Elapsed(start time.Time) *Logger {
	return &Logger{Logger: l.Logger.With("elapsed_ms", time.Since(start).Milliseconds())}
}
