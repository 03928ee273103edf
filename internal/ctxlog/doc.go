// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

// Package ctxlog carries a *slog.Logger in a context.Context.
//
// The default logger writes to stderr through PrettyHandler so that task output on stdout
// is never interleaved with structured log lines. The level comes from MPTASK_LOG_LEVEL.
package ctxlog
