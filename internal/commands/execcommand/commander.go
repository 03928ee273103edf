// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package execcommand

import (
	"context"

	"github.com/matt-FFFFFF/mptask/internal/commandregistry"
	"github.com/matt-FFFFFF/mptask/internal/commands"
	"github.com/matt-FFFFFF/mptask/internal/ctxlog"
	"github.com/matt-FFFFFF/mptask/internal/expand"
	"github.com/matt-FFFFFF/mptask/internal/runbatch"
)

var _ commands.Commander = (*Commander)(nil)

// Commander is a struct that implements the commands.Commander interface.
type Commander struct{}

// Register adds the exec step type to the registry.
func Register(r commandregistry.Registry) {
	r.Register(commands.TypeExec, &Commander{})
}

// Create expands the command line and creates the runnable.
func (c *Commander) Create(ctx context.Context, def *commands.Definition, vars *expand.Vars) (runbatch.Runnable, error) {
	if def.Command == "" {
		return nil, commands.NewErrCommandCreate(def.Label(), commands.ErrEmptyCommand)
	}

	argv, err := expand.Fields(def.Command, vars)
	if err != nil {
		return nil, commands.NewErrCommandCreate(def.Label(), err)
	}

	base, err := def.ToBaseCommand(vars)
	if err != nil {
		return nil, err
	}

	cmd, err := New(base, argv)
	if err != nil {
		return nil, commands.NewErrCommandCreate(def.Label(), err)
	}

	ctxlog.Debug(ctx, "created exec step", "label", def.Label(), "argv", cmd.Argv())

	return def.Configure(cmd), nil
}
