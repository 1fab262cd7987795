// © 2024 Ilya Mateyko. All rights reserved.
// Use of this source code is governed by the ISC
// license that can be found in the LICENSE.md file.

// Package logger provides a context-aware logger built on [slog].
package logger

import (
	"context"
	"io"
	"log/slog"
	"time"

	"github.com/lmittmann/tint"
)

type ctxKey string

const loggerKey ctxKey = "logger"

// Logger encapsulates an [slog.Logger] together with the [slog.LevelVar]
// that controls its level.
type Logger struct {
	*slog.Logger
	Level *slog.LevelVar
}

// Options configure a [Logger] created by [New].
type Options struct {
	// Level is the initial level. Defaults to LevelInfo.
	Level slog.Level
	// Color enables ANSI colors in the output.
	Color bool
}

// New creates a new Logger that writes human-readable records to w.
func New(w io.Writer, opts Options) *Logger {
	level := new(slog.LevelVar)
	level.Set(opts.Level)
	h := tint.NewHandler(w, &tint.Options{
		Level:      level,
		TimeFormat: time.TimeOnly,
		NoColor:    !opts.Color,
	})
	return &Logger{
		Logger: slog.New(h),
		Level:  level,
	}
}

var defaultLogger = &Logger{
	Logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
	Level:  new(slog.LevelVar),
}

// Put returns a new context with the provided [Logger].
func Put(ctx context.Context, l *Logger) context.Context {
	return context.WithValue(ctx, loggerKey, l)
}

// Get retrieves the [Logger] from the context.
//
// If the context has no [Logger], it returns a default [Logger] that discards all
// messages.
func Get(ctx context.Context) *Logger {
	if l, ok := ctx.Value(loggerKey).(*Logger); ok {
		return l
	}
	return defaultLogger
}

// IsDefault returns true if l is the default [Logger].
func IsDefault(l *Logger) bool { return l == defaultLogger }

// Debug logs a debug message.
func Debug(ctx context.Context, msg string, attrs ...slog.Attr) {
	Get(ctx).LogAttrs(ctx, slog.LevelDebug, msg, attrs...)
}

// Info logs an info message.
func Info(ctx context.Context, msg string, attrs ...slog.Attr) {
	Get(ctx).LogAttrs(ctx, slog.LevelInfo, msg, attrs...)
}

// Warn logs a warning message.
func Warn(ctx context.Context, msg string, attrs ...slog.Attr) {
	Get(ctx).LogAttrs(ctx, slog.LevelWarn, msg, attrs...)
}

// Error logs an error message.
func Error(ctx context.Context, msg string, attrs ...slog.Attr) {
	Get(ctx).LogAttrs(ctx, slog.LevelError, msg, attrs...)
}

// Logf is a printf-style logging function.
type Logf func(format string, args ...any)

// Write implements [io.Writer] by logging p as a single message.
func (f Logf) Write(p []byte) (int, error) {
	f("%s", p)
	return len(p), nil
}
