// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package shellcommand

import (
	"context"

	"github.com/matt-FFFFFF/mptask/internal/commandregistry"
	"github.com/matt-FFFFFF/mptask/internal/commands"
	"github.com/matt-FFFFFF/mptask/internal/expand"
	"github.com/matt-FFFFFF/mptask/internal/runbatch"
)

// TypeShell is the step type handled by this package.
const TypeShell = "shell"

var _ commands.Commander = (*Commander)(nil)

// Commander is a struct that implements the commands.Commander interface.
type Commander struct{}

// Register adds the shell step type to the registry.
func Register(r commandregistry.Registry) {
	r.Register(TypeShell, &Commander{})
}

// Create creates a new runnable command and implements the commands.Commander interface.
// The command line is passed to the shell untouched.
func (c *Commander) Create(ctx context.Context, def *commands.Definition, vars *expand.Vars) (runbatch.Runnable, error) {
	base, err := def.ToBaseCommand(vars)
	if err != nil {
		return nil, err
	}

	cmd, err := New(ctx, base, def.Command)
	if err != nil {
		return nil, commands.NewErrCommandCreate(def.Label(), err)
	}

	return def.Configure(cmd), nil
}
