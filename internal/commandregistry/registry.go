// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package commandregistry

import (
	"context"
	"fmt"
	"maps"
	"slices"

	"github.com/matt-FFFFFF/mptask/internal/commands"
	"github.com/matt-FFFFFF/mptask/internal/expand"
	"github.com/matt-FFFFFF/mptask/internal/runbatch"
)

var _ commands.CommanderFactory = Registry(nil)

// RegistrationFunc is a function that registers commanders in the registry.
type RegistrationFunc func(Registry)

// Registry holds the mapping between step types and their commanders.
type Registry map[string]commands.Commander

// New creates a registry and applies each registration function to it.
func New(fns ...RegistrationFunc) Registry {
	r := make(Registry)
	for _, fn := range fns {
		fn(r)
	}

	return r
}

// Register registers a commander for a step type, replacing any previous one.
func (r Registry) Register(stepType string, commander commands.Commander) {
	r[stepType] = commander
}

// Types returns the registered step types, sorted.
func (r Registry) Types() []string {
	return slices.Sorted(maps.Keys(r))
}

// Create builds the runnable for def using the commander registered for its type.
func (r Registry) Create(ctx context.Context, def *commands.Definition, vars *expand.Vars) (runbatch.Runnable, error) {
	commander, ok := r[def.StepType()]
	if !ok {
		return nil, commands.NewErrCommandCreate(
			def.Label(),
			fmt.Errorf("%w: %q, known types are %q", commands.ErrUnknownStepType, def.StepType(), r.Types()),
		)
	}

	return commander.Create(ctx, def, vars)
}
