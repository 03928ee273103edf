// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

// Package cmdstate holds the flag names and helpers shared by the mptask commands.
// Root flags are visible to every subcommand.
package cmdstate

import (
	"context"
	"errors"
	"os"
	"path/filepath"

	"github.com/matt-FFFFFF/mptask/internal/ctxlog"
	"github.com/matt-FFFFFF/mptask/internal/runbatch"
	"github.com/matt-FFFFFF/mptask/internal/taskfile"
	"github.com/urfave/cli/v3"
)

// Flag names.
const (
	FileFlag                 = "file"
	DirectoryFlag            = "directory"
	DryRunFlag               = "dry-run"
	OutFlag                  = "out"
	LogLevelFlag             = "log-level"
	LogFormatFlag            = "log-format"
	NoColorFlag              = "no-color"
	NoSummaryFlag            = "no-summary"
	NoOutputStdErrFlag       = "no-output-stderr"
	OutputStdOutFlag         = "output-stdout"
	OutputSuccessDetailsFlag = "output-success-details"
	ShowDetailsFlag          = "show-details"
)

// ReservedNames are the built-in commands. Tasks cannot use them.
var ReservedNames = []string{"tasks", "show", "schema", "help"}

// ErrWorkDir is returned when the working directory cannot be determined.
var ErrWorkDir = errors.New("failed to determine working directory")

// WorkDir returns the absolute directory tasks run in: --directory when set, else the current directory.
func WorkDir(cmd *cli.Command) (string, error) {
	dir := cmd.String(DirectoryFlag)
	if dir == "" {
		dir = "."
	}

	abs, err := filepath.Abs(dir)
	if err != nil {
		return "", errors.Join(ErrWorkDir, err)
	}

	info, err := os.Stat(abs)
	if err != nil {
		return "", errors.Join(ErrWorkDir, err)
	}

	if !info.IsDir() {
		return "", errors.Join(ErrWorkDir, &os.PathError{Op: "chdir", Path: abs, Err: errors.New("not a directory")})
	}

	return abs, nil
}

// LoadTaskFile loads and validates the task file selected by the flags.
// A relative --file is resolved against --directory.
func LoadTaskFile(ctx context.Context, cmd *cli.Command) (*taskfile.File, string, error) {
	dir, err := WorkDir(cmd)
	if err != nil {
		return nil, "", err
	}

	location := cmd.String(FileFlag)
	if location != "" && cmd.String(DirectoryFlag) != "" && !filepath.IsAbs(location) {
		if _, statErr := os.Stat(filepath.Join(dir, location)); statErr == nil {
			location = filepath.Join(dir, location)
		}
	}

	f, err := taskfile.Load(ctx, location, dir)
	if err != nil {
		return nil, "", err
	}

	if err := f.Validate(ReservedNames...); err != nil {
		return nil, "", err
	}

	ctxlog.Debug(ctx, "loaded task file", "source", f.Source, "tasks", f.Names())

	return f, dir, nil
}

// OutputOptions builds the result report options from the flags.
func OutputOptions(cmd *cli.Command) *runbatch.OutputOptions {
	opts := runbatch.DefaultOutputOptions()
	opts.IncludeStdErr = !cmd.Bool(NoOutputStdErrFlag)
	opts.IncludeStdOut = cmd.Bool(OutputStdOutFlag)
	opts.ShowSuccessDetails = cmd.Bool(OutputSuccessDetailsFlag)
	opts.ShowDetails = cmd.Bool(ShowDetailsFlag)

	return opts
}
