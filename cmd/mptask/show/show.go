// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

// Package show provides the command that prints results saved with --out.
package show

import (
	"context"
	"errors"
	"os"

	"github.com/matt-FFFFFF/mptask/cmd/mptask/cmdstate"
	"github.com/matt-FFFFFF/mptask/internal/runbatch"
	"github.com/urfave/cli/v3"
)

const (
	fileArg = "file"
)

var (
	// ErrReadFile is returned when the file cannot be read.
	ErrReadFile = errors.New("failed to read file")
	// ErrWriteResults is returned when the results cannot be written.
	ErrWriteResults = errors.New("failed to write results")
)

// NewCmd returns the command that prints results previously saved with --out.
func NewCmd() *cli.Command {
	return &cli.Command{
		Name:        "show",
		Usage:       "Show previously saved results",
		Description: "Show results saved by running a task with --out FILE.",
		Arguments: []cli.Argument{
			&cli.StringArg{
				Name: fileArg,
			},
		},
		Action: func(_ context.Context, cmd *cli.Command) error {
			name := cmd.StringArg(fileArg)
			if name == "" {
				return cli.Exit("please specify the results file", 1)
			}

			file, err := os.Open(name)
			if err != nil {
				return cli.Exit(errors.Join(ErrReadFile, err).Error(), 1)
			}
			defer file.Close() //nolint:errcheck

			results, err := runbatch.ReadBinary(file)
			if err != nil {
				return cli.Exit(err.Error(), 1)
			}

			if err := results.WriteTextWithOptions(cmd.Root().Writer, cmdstate.OutputOptions(cmd)); err != nil {
				return cli.Exit(errors.Join(ErrWriteResults, err).Error(), 1)
			}

			return nil
		},
	}
}
