// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

// Package tasks provides the command that lists the available tasks.
package tasks

import (
	"context"

	"github.com/matt-FFFFFF/mptask/cmd/mptask/cmdstate"
	"github.com/matt-FFFFFF/mptask/internal/tasklist"
	"github.com/urfave/cli/v3"
)

const (
	stepsFlag = "steps"
	yamlFlag  = "yaml"
)

// NewCmd returns the command that lists the tasks of the task file with their parameters.
func NewCmd() *cli.Command {
	return &cli.Command{
		Name:  "tasks",
		Usage: "List the available tasks and their parameters",
		Description: `List the tasks defined in the task file, or the built-in tasks when there is none.
Parameters are passed to a task as key=value arguments, e.g. mptask run crn=85 ctrl=k.`,
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:     stepsFlag,
				Aliases:  []string{"s"},
				Usage:    "Also print the command line of every step",
				Value:    false,
				OnlyOnce: true,
			},
			&cli.BoolFlag{
				Name:  yamlFlag,
				Usage: "Print the resolved task file as YAML, e.g. to convert an HCL file or to start from the built-in tasks",
			},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			f, _, err := cmdstate.LoadTaskFile(ctx, cmd)
			if err != nil {
				return cli.Exit(err.Error(), 1)
			}

			if cmd.Bool(yamlFlag) {
				b, err := f.WriteYAML()
				if err != nil {
					return cli.Exit(err.Error(), 1)
				}

				_, err = cmd.Root().Writer.Write(b)

				return err //nolint:wrapcheck
			}

			return tasklist.Write(cmd.Root().Writer, f, tasklist.Options{ShowSteps: cmd.Bool(stepsFlag)})
		},
	}
}
