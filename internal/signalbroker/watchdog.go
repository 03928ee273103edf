// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package signalbroker

import (
	"context"
	"os"

	"github.com/matt-FFFFFF/mptask/internal/ctxlog"
)

// Watch reads sigCh until it is closed or ctx is done.
// The first signal of a kind is left to the running step; the second of the same kind
// unsubscribes and closes sigCh, then cancels the context.
func Watch(ctx context.Context, sigCh chan os.Signal, cancel context.CancelFunc) {
	seen := make(map[os.Signal]struct{})

	for {
		select {
		case <-ctx.Done():
			return
		case sig, ok := <-sigCh:
			if !ok {
				return
			}

			if _, dup := seen[sig]; dup {
				ctxlog.Warn(ctx, "second signal received, cancelling remaining steps", "signal", sig.String())
				Stop(sigCh)
				close(sigCh)
				cancel()

				return
			}

			ctxlog.Info(ctx, "signal received, forwarded to running step", "signal", sig.String())

			seen[sig] = struct{}{}
		}
	}
}
