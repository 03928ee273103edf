// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package runbatch

import (
	"context"
	"errors"
	"time"

	"github.com/matt-FFFFFF/mptask/internal/ctxlog"
)

var _ Runnable = (*SerialBatch)(nil)

var (
	// ErrSkipOnError marks a command that was not started because an earlier one failed.
	ErrSkipOnError = errors.New("skipped because a previous command failed")
	// ErrSkipCancelled marks a command that was not started because the run was cancelled.
	ErrSkipCancelled = errors.New("skipped because the run was cancelled")
)

// SerialBatch represents a collection of commands, which are run serially.
// The first failing command stops the batch.
type SerialBatch struct {
	*BaseCommand
	Commands []Runnable // The commands or nested batches to run
}

// NewSerialBatch creates a batch and parents each command to it.
func NewSerialBatch(base *BaseCommand, commands ...Runnable) *SerialBatch {
	b := &SerialBatch{
		BaseCommand: base,
		Commands:    commands,
	}

	for _, c := range commands {
		c.SetParent(b)
	}

	return b
}

// Run implements the Runnable interface for SerialBatch.
func (b *SerialBatch) Run(ctx context.Context) Results {
	logger := ctxlog.Logger(ctx).With("runnableType", "SerialBatch", "label", b.GetLabel())
	start := time.Now()
	children := make(Results, 0, len(b.Commands))

	var stop error

	for _, cmd := range b.Commands {
		cmd.InheritEnv(b.Env)
		cmd.SetCwd(b.Cwd)

		if stop == nil && ctx.Err() != nil {
			stop = errors.Join(ErrSkipCancelled, ctx.Err())
		}

		if stop != nil {
			logger.Debug("skipping command", "command", cmd.GetLabel(), "reason", stop)
			children = append(children, &Result{
				Label:  cmd.GetLabel(),
				Status: ResultStatusSkipped,
				Error:  stop,
			})

			continue
		}

		res := cmd.Run(ctx)
		children = append(children, res...)

		if res.HasError() {
			logger.Debug("command failed, skipping the rest", "command", cmd.GetLabel())

			stop = ErrSkipOnError
		}
	}

	res := &Result{
		Label:    b.GetLabel(),
		Children: children,
		Status:   ResultStatusSuccess,
		Duration: time.Since(start),
	}

	if stop != nil {
		res.Status = ResultStatusError
		res.Error = ErrResultChildrenHasError
		if res.ExitCode = children.ExitCode(); res.ExitCode == 0 {
			res.ExitCode = 1
		}
	}

	return Results{res}
}
