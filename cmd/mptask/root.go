// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package main

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/matt-FFFFFF/mptask"
	"github.com/matt-FFFFFF/mptask/cmd/mptask/cmdstate"
	"github.com/matt-FFFFFF/mptask/cmd/mptask/schema"
	"github.com/matt-FFFFFF/mptask/cmd/mptask/show"
	"github.com/matt-FFFFFF/mptask/cmd/mptask/tasks"
	"github.com/matt-FFFFFF/mptask/internal/color"
	"github.com/matt-FFFFFF/mptask/internal/commands"
	"github.com/matt-FFFFFF/mptask/internal/ctxlog"
	"github.com/matt-FFFFFF/mptask/internal/dispatch"
	"github.com/matt-FFFFFF/mptask/internal/runbatch"
	"github.com/urfave/cli/v3"
)

var (
	// ErrNoFactory is returned when the context carries no commander factory.
	ErrNoFactory = errors.New("no commander factory in context")
	// ErrWriteResults is returned when the results cannot be saved or printed.
	ErrWriteResults = errors.New("failed to write results")
)

func newRootCmd() *cli.Command {
	return &cli.Command{
		Name:  "mptask",
		Usage: "Run the movement primitives project tasks",
		UsageText: `mptask [global options] TASK [key=value ...]
mptask deps
mptask lint
mptask run crn=85 ctrl=k`,
		Description: `mptask runs the named task from the task file. Each step of a task runs in order
and the first failing step stops the task. Parameters given as key=value override the
variables of the task file and are passed to every step as environment variables.
Without a task file the built-in deps, lint and run tasks are used.`,
		Version:   fmt.Sprintf("%s (commit: %s)", mptask.Version, mptask.Commit),
		Copyright: "Copyright (c) matt-FFFFFF 2025. All rights reserved.",
		Authors: []any{
			"Matt White (matt-FFFFFF)",
		},
		Commands: []*cli.Command{
			tasks.NewCmd(),
			show.NewCmd(),
			schema.NewCmd(),
		},
		Flags:                 rootFlags(),
		Before:                beforeFunc,
		Action:                actionFunc,
		ExitErrHandler:        func(context.Context, *cli.Command, error) {},
		EnableShellCompletion: true,
		Writer:                os.Stdout,
		ErrWriter:             os.Stderr,
	}
}

func rootFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:      cmdstate.FileFlag,
			Aliases:   []string{"f"},
			Usage:     "Task file path or go-getter URL, defaults to mptask.yaml, mptask.yml or mptask.hcl",
			Sources:   cli.EnvVars("MPTASK_FILE"),
			TakesFile: true,
		},
		&cli.StringFlag{
			Name:      cmdstate.DirectoryFlag,
			Aliases:   []string{"C"},
			Usage:     "Run tasks from this directory",
			TakesFile: true,
		},
		&cli.BoolFlag{
			Name:    cmdstate.DryRunFlag,
			Aliases: []string{"n"},
			Usage:   "Print the commands of the task without running them",
		},
		&cli.StringFlag{
			Name:      cmdstate.OutFlag,
			Usage:     "Save the results to this file, see mptask show",
			TakesFile: true,
		},
		&cli.StringFlag{
			Name:    cmdstate.LogLevelFlag,
			Usage:   "Log level: DEBUG, INFO, WARN or ERROR",
			Sources: cli.EnvVars(ctxlog.EnvLogLevel),
			Value:   "WARN",
		},
		&cli.StringFlag{
			Name:  cmdstate.LogFormatFlag,
			Usage: "Log format: pretty or json",
			Value: ctxlog.FormatPretty,
		},
		&cli.BoolFlag{
			Name:  cmdstate.NoColorFlag,
			Usage: "Disable coloured output",
		},
		&cli.BoolFlag{
			Name:  cmdstate.NoSummaryFlag,
			Usage: "Do not print the results summary after the task",
		},
		&cli.BoolFlag{
			Name:    cmdstate.NoOutputStdErrFlag,
			Aliases: []string{"no-stderr"},
			Usage:   "Omit captured stderr of failed steps from the summary",
		},
		&cli.BoolFlag{
			Name:    cmdstate.OutputStdOutFlag,
			Aliases: []string{"stdout"},
			Usage:   "Include captured stdout of failed steps in the summary",
		},
		&cli.BoolFlag{
			Name:    cmdstate.OutputSuccessDetailsFlag,
			Aliases: []string{"success"},
			Usage:   "Include captured output of successful steps in the summary",
		},
		&cli.BoolFlag{
			Name:    cmdstate.ShowDetailsFlag,
			Aliases: []string{"details"},
			Usage:   "Include the command line and duration of each step in the summary",
		},
	}
}

func beforeFunc(ctx context.Context, cmd *cli.Command) (context.Context, error) {
	if cmd.Bool(cmdstate.NoColorFlag) {
		color.SetEnabled(false)
	}

	lvl, err := ctxlog.ParseLevel(cmd.String(cmdstate.LogLevelFlag))
	if err != nil {
		return ctx, cli.Exit(err.Error(), 1)
	}

	ctxlog.LevelVar.Set(lvl)

	logger, err := ctxlog.NewForFormat(cmd.String(cmdstate.LogFormatFlag), cmd.ErrWriter)
	if err != nil {
		return ctx, cli.Exit(err.Error(), 1)
	}

	return ctxlog.New(ctx, logger), nil
}

func actionFunc(ctx context.Context, cmd *cli.Command) error {
	if cmd.NArg() == 0 {
		return cli.Exit(`please specify a task, run "mptask tasks" to list them`, 1)
	}

	name := cmd.Args().First()

	params, err := dispatch.ParseParams(cmd.Args().Tail())
	if err != nil {
		return cli.Exit(err.Error(), 1)
	}

	f, dir, err := cmdstate.LoadTaskFile(ctx, cmd)
	if err != nil {
		return cli.Exit(err.Error(), 1)
	}

	factory, ok := commands.FactoryFromContext(ctx)
	if !ok {
		return cli.Exit(ErrNoFactory.Error(), 1)
	}

	d := dispatch.New(f, factory, dir)

	if task, found := f.Lookup(name); found && task.Note != "" {
		ctxlog.Warn(ctx, "task note", "task", name, "note", task.Note)
	}

	if cmd.Bool(cmdstate.DryRunFlag) {
		batch, err := d.Build(ctx, name, params)
		if err != nil {
			return cli.Exit(err.Error(), 1)
		}

		if err := dispatch.WritePlan(cmd.Writer, batch); err != nil {
			return cli.Exit(errors.Join(ErrWriteResults, err).Error(), 1)
		}

		return nil
	}

	ctxlog.Info(ctx, "running task", "task", name, "source", f.Source)

	res, err := d.Dispatch(ctx, name, params)
	if err != nil {
		return cli.Exit(err.Error(), 1)
	}

	if out := cmd.String(cmdstate.OutFlag); out != "" {
		if err := saveResults(out, res); err != nil {
			return cli.Exit(err.Error(), 1)
		}
	}

	if !cmd.Bool(cmdstate.NoSummaryFlag) {
		if err := res.WriteTextWithOptions(cmd.ErrWriter, cmdstate.OutputOptions(cmd)); err != nil {
			return cli.Exit(errors.Join(ErrWriteResults, err).Error(), 1)
		}
	}

	if res.HasError() {
		return cli.Exit("", res.ExitCode())
	}

	return nil
}

func saveResults(name string, res runbatch.Results) error {
	f, err := os.Create(name)
	if err != nil {
		return errors.Join(ErrWriteResults, err)
	}
	defer f.Close() //nolint:errcheck

	if err := res.WriteBinary(f); err != nil {
		return errors.Join(ErrWriteResults, err)
	}

	return nil
}
