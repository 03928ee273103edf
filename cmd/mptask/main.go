// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

// Package main contains the mptask command-line interface (CLI).
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/matt-FFFFFF/mptask/internal/commandregistry"
	"github.com/matt-FFFFFF/mptask/internal/commands"
	"github.com/matt-FFFFFF/mptask/internal/commands/execcommand"
	"github.com/matt-FFFFFF/mptask/internal/commands/shellcommand"
	"github.com/matt-FFFFFF/mptask/internal/ctxlog"
	"github.com/matt-FFFFFF/mptask/internal/signalbroker"
	"github.com/urfave/cli/v3"
)

func main() {
	ctx, cancel := context.WithCancel(context.Background())
	ctx = ctxlog.New(ctx, ctxlog.DefaultLogger)

	sigCh := signalbroker.New(ctx)

	go signalbroker.Watch(ctx, sigCh, cancel)

	code := run(ctx, os.Args, os.Stdout, os.Stderr)

	cancel()
	os.Exit(code)
}

// run executes the CLI and returns the process exit code.
func run(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	factory := commandregistry.New(
		execcommand.Register,
		shellcommand.Register,
	)

	ctx = context.WithValue(ctx, commands.FactoryContextKey{}, commands.CommanderFactory(factory))

	root := newRootCmd()
	root.Writer = stdout
	root.ErrWriter = stderr

	err := root.Run(ctx, args)

	code := exitCode(err)
	if code != 0 && err != nil && err.Error() != "" {
		fmt.Fprintln(stderr, err.Error()) //nolint:errcheck
	}

	// Signals cancel ctx; the steps report their own failure but the process must not exit 0.
	if ctx.Err() != nil && code == 0 {
		ctxlog.Error(ctx, "command terminated due to cancellation", "error", ctx.Err())

		code = 1
	}

	return code
}

func exitCode(err error) int {
	if err == nil {
		return 0
	}

	var ec cli.ExitCoder
	if errors.As(err, &ec) && ec.ExitCode() > 0 {
		return ec.ExitCode()
	}

	return 1
}
