// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package ctxlog

import (
	"bytes"
	"context"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLogger(t *testing.T) {
	custom := slog.New(slog.NewTextHandler(&bytes.Buffer{}, nil))

	tests := []struct {
		name string
		ctx  context.Context
		want *slog.Logger
	}{
		{
			name: "context with logger",
			ctx:  New(context.Background(), custom),
			want: custom,
		},
		{
			name: "context without logger",
			ctx:  context.Background(),
			want: DefaultLogger,
		},
		{
			name: "nil logger stores default",
			ctx:  New(context.Background(), nil),
			want: DefaultLogger,
		},
		{
			name: "wrong type value",
			ctx:  context.WithValue(context.Background(), loggerKey{}, "not a logger"),
			want: DefaultLogger,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Same(t, tt.want, Logger(tt.ctx))
		})
	}
}

func TestLoggingFunctions(t *testing.T) {
	var buf bytes.Buffer

	logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
	ctx := New(context.Background(), logger)

	tests := []struct {
		name    string
		logFunc func(context.Context, string, ...any)
		level   string
	}{
		{name: "debug", logFunc: Debug, level: "DEBUG"},
		{name: "info", logFunc: Info, level: "INFO"},
		{name: "warn", logFunc: Warn, level: "WARN"},
		{name: "error", logFunc: Error, level: "ERROR"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			buf.Reset()
			tt.logFunc(ctx, "hello "+tt.name, "key", "value")
			assert.Contains(t, buf.String(), tt.level)
			assert.Contains(t, buf.String(), "hello "+tt.name)
			assert.Contains(t, buf.String(), "key=value")
		})
	}
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in      string
		want    slog.Level
		wantErr bool
	}{
		{in: "DEBUG", want: slog.LevelDebug},
		{in: "info", want: slog.LevelInfo},
		{in: "", want: slog.LevelWarn},
		{in: "warning", want: slog.LevelWarn},
		{in: " Error ", want: slog.LevelError},
		{in: "chatty", want: slog.LevelWarn, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseLevel(tt.in)
			if tt.wantErr {
				require.ErrorIs(t, err, ErrUnknownLevel)
			} else {
				require.NoError(t, err)
			}

			assert.Equal(t, tt.want, got)
		})
	}
}

func TestNewForFormat(t *testing.T) {
	var buf bytes.Buffer

	prev := LevelVar.Level()
	t.Cleanup(func() { LevelVar.Set(prev) })
	LevelVar.Set(slog.LevelInfo)

	logger, err := NewForFormat(FormatJSON, &buf)
	require.NoError(t, err)
	logger.Info("task finished", "task", "deps")
	assert.Contains(t, buf.String(), `"msg":"task finished"`)
	assert.Contains(t, buf.String(), `"task":"deps"`)

	buf.Reset()

	logger, err = NewForFormat("", &buf)
	require.NoError(t, err)
	logger.Info("pretty line")
	assert.Contains(t, buf.String(), "INFO: pretty line")

	_, err = NewForFormat("xml", &buf)
	require.ErrorIs(t, err, ErrUnknownFormat)
}
