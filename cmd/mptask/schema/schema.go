// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

// Package schema provides the command that documents the task file format.
package schema

import (
	"context"

	"github.com/matt-FFFFFF/mptask/internal/commands"
	"github.com/matt-FFFFFF/mptask/internal/schema"
	"github.com/urfave/cli/v3"
)

const formatFlag = "format"

// NewCmd returns the command that prints the task file schema.
func NewCmd() *cli.Command {
	return &cli.Command{
		Name:        "schema",
		Usage:       "Print the task file schema",
		Description: "Print the task file format as JSON Schema, for editor validation, or as Markdown.",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:        formatFlag,
				Usage:       "Output format: json or markdown",
				DefaultText: schema.FormatJSON,
				Value:       schema.FormatJSON,
			},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			var types []string
			if factory, ok := commands.FactoryFromContext(ctx); ok {
				types = factory.Types()
			}

			if err := schema.Write(cmd.Root().Writer, cmd.String(formatFlag), types); err != nil {
				return cli.Exit(err.Error(), 1)
			}

			return nil
		},
	}
}
