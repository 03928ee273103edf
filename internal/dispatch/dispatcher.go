// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package dispatch

import (
	"context"
	"errors"
	"fmt"
	"maps"
	"path/filepath"
	"slices"

	"github.com/matt-FFFFFF/mptask/internal/commands"
	"github.com/matt-FFFFFF/mptask/internal/ctxlog"
	"github.com/matt-FFFFFF/mptask/internal/expand"
	"github.com/matt-FFFFFF/mptask/internal/runbatch"
	"github.com/matt-FFFFFF/mptask/internal/taskfile"
)

// Dispatcher builds and runs the tasks of a task file.
type Dispatcher struct {
	file    *taskfile.File
	factory commands.CommanderFactory
	dir     string
}

// New creates a Dispatcher. Relative working directories are resolved against dir.
func New(file *taskfile.File, factory commands.CommanderFactory, dir string) *Dispatcher {
	return &Dispatcher{
		file:    file,
		factory: factory,
		dir:     dir,
	}
}

// Build creates the batch for the named task without running it.
// Variables resolve in the order params, task env, file vars, then the process environment.
func (d *Dispatcher) Build(ctx context.Context, name string, params Params) (*runbatch.SerialBatch, error) {
	task, ok := d.file.Lookup(name)
	if !ok {
		return nil, &UnknownTaskError{Name: name, Known: d.file.Names()}
	}

	fileVars := expand.NewVars(params, d.file.Vars)

	taskEnv := make(map[string]string, len(task.Env))

	for _, k := range slices.Sorted(maps.Keys(task.Env)) {
		v, err := expand.String(task.Env[k], fileVars)
		if err != nil {
			return nil, errors.Join(ErrBuild, fmt.Errorf("task %q env %s: %w", name, k, err))
		}

		taskEnv[k] = v
	}

	vars := expand.NewVars(params, taskEnv, d.file.Vars)

	cwd, err := expand.String(task.WorkingDirectory, vars)
	if err != nil {
		return nil, errors.Join(ErrBuild, fmt.Errorf("task %q working_directory: %w", name, err))
	}

	switch {
	case cwd == "":
		cwd = d.dir
	case !filepath.IsAbs(cwd) && d.dir != "":
		cwd = filepath.Join(d.dir, cwd)
	}

	steps := make([]runbatch.Runnable, 0, len(task.Steps))

	for _, def := range task.Steps {
		r, err := d.factory.Create(ctx, def, vars)
		if err != nil {
			return nil, errors.Join(ErrBuild, fmt.Errorf("task %q: %w", name, err))
		}

		steps = append(steps, r)
	}

	ctxlog.Debug(ctx, "built task", "task", name, "steps", len(steps), "cwd", cwd, "params", params)

	return runbatch.NewSerialBatch(runbatch.NewBaseCommand(name, cwd, vars.Env()), steps...), nil
}

// Dispatch builds and runs the named task. Steps run one at a time and the first failure stops the task.
// The returned error is only set when the task could not be built; step failures are in the results.
func (d *Dispatcher) Dispatch(ctx context.Context, name string, params Params) (runbatch.Results, error) {
	batch, err := d.Build(ctx, name, params)
	if err != nil {
		return nil, err
	}

	return batch.Run(ctx), nil
}
