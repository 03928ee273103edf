// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

// Package signalbroker subscribes to the signals that should stop a task.
//
// Each running step gets its own channel so it can forward the first signal to its child
// process. The process-wide channel is handed to Watch, which cancels the run context when
// the same signal arrives twice.
package signalbroker

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/matt-FFFFFF/mptask/internal/ctxlog"
)

var termSignals = []os.Signal{
	os.Interrupt,
	syscall.SIGTERM,
	syscall.SIGQUIT,
}

// New returns a buffered channel subscribed to sigs, or to the termination signals if none are given.
// Release it with Stop.
func New(ctx context.Context, sigs ...os.Signal) chan os.Signal {
	ch := make(chan os.Signal, 1)

	if len(sigs) == 0 {
		sigs = termSignals
	}

	ctxlog.Debug(ctx, "subscribing to signals", "signals", sigs)
	signal.Notify(ch, sigs...)

	return ch
}

// Stop unsubscribes ch. It does not close it.
func Stop(ch chan os.Signal) {
	signal.Stop(ch)
}
