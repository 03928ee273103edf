// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package commands

import (
	"context"

	"github.com/matt-FFFFFF/mptask/internal/expand"
	"github.com/matt-FFFFFF/mptask/internal/runbatch"
)

// FactoryContextKey is the context key under which the CommanderFactory is stored.
type FactoryContextKey struct{}

// Commander creates a runnable for one step type.
type Commander interface {
	// Create builds the runnable for def. Variables in the definition are resolved with vars.
	Create(ctx context.Context, def *Definition, vars *expand.Vars) (runbatch.Runnable, error)
}

// CommanderFactory creates runnables for any registered step type.
type CommanderFactory interface {
	// Create selects the Commander for def.Type and calls it.
	Create(ctx context.Context, def *Definition, vars *expand.Vars) (runbatch.Runnable, error)
	// Types returns the registered step types, sorted.
	Types() []string
}

// FactoryFromContext returns the CommanderFactory stored in ctx, if any.
func FactoryFromContext(ctx context.Context) (CommanderFactory, bool) {
	f, ok := ctx.Value(FactoryContextKey{}).(CommanderFactory)
	return f, ok && f != nil
}
