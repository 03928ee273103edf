// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package ctxlog

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
)

const (
	// EnvLogLevel selects the log level: DEBUG, INFO, WARN or ERROR.
	EnvLogLevel = "MPTASK_LOG_LEVEL"
	// FormatPretty is the human readable console format.
	FormatPretty = "pretty"
	// FormatJSON is the slog JSON format.
	FormatJSON = "json"
)

var (
	// ErrUnknownLevel is returned when a log level string cannot be parsed.
	ErrUnknownLevel = errors.New("unknown log level")
	// ErrUnknownFormat is returned when a log format is not pretty or json.
	ErrUnknownFormat = errors.New("unknown log format")
)

type loggerKey struct{}

// LevelVar is shared by every logger built in this package so the level can change at runtime.
var LevelVar = &slog.LevelVar{}

// DefaultLogger is used when the context carries no logger.
var DefaultLogger = slog.New(NewPrettyHandler(&slog.HandlerOptions{
	Level: LevelVar,
},
	WithAutoColour(),
	WithDestinationWriter(os.Stderr),
))

func init() {
	lvl, err := ParseLevel(os.Getenv(EnvLogLevel))
	if err != nil {
		lvl = slog.LevelWarn
	}

	LevelVar.Set(lvl)
}

// New returns a copy of ctx carrying logger. A nil logger stores DefaultLogger.
func New(ctx context.Context, logger *slog.Logger) context.Context {
	if logger == nil {
		logger = DefaultLogger
	}

	return context.WithValue(ctx, loggerKey{}, logger)
}

// Logger returns the logger from the context, or the default logger if not found.
func Logger(ctx context.Context) *slog.Logger {
	logger, ok := ctx.Value(loggerKey{}).(*slog.Logger)
	if !ok || logger == nil {
		return DefaultLogger
	}

	return logger
}

// NewForFormat builds a logger writing to w in the named format, sharing LevelVar.
func NewForFormat(format string, w io.Writer) (*slog.Logger, error) {
	switch strings.ToLower(format) {
	case "", FormatPretty:
		return slog.New(NewPrettyHandler(&slog.HandlerOptions{Level: LevelVar},
			WithAutoColour(),
			WithDestinationWriter(w),
		)), nil
	case FormatJSON:
		return slog.New(slog.NewJSONHandler(w, &slog.HandlerOptions{Level: LevelVar})), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownFormat, format)
	}
}

// ParseLevel converts DEBUG, INFO, WARN or ERROR (any case) to a slog.Level.
// The empty string is WARN.
func ParseLevel(s string) (slog.Level, error) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "DEBUG":
		return slog.LevelDebug, nil
	case "INFO":
		return slog.LevelInfo, nil
	case "", "WARN", "WARNING":
		return slog.LevelWarn, nil
	case "ERROR":
		return slog.LevelError, nil
	default:
		return slog.LevelWarn, fmt.Errorf("%w: %q", ErrUnknownLevel, s)
	}
}

// Info logs an info message with the given context.
func Info(ctx context.Context, msg string, args ...any) {
	Logger(ctx).Info(msg, args...)
}

// Debug logs a debug message with the given context.
func Debug(ctx context.Context, msg string, args ...any) {
	Logger(ctx).Debug(msg, args...)
}

// Warn logs a warning message with the given context.
func Warn(ctx context.Context, msg string, args ...any) {
	Logger(ctx).Warn(msg, args...)
}

// Error logs an error message with the given context.
func Error(ctx context.Context, msg string, args ...any) {
	Logger(ctx).Error(msg, args...)
}
