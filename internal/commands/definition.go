// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package commands

import (
	"io"
	"maps"
	"slices"

	"github.com/matt-FFFFFF/mptask/internal/expand"
	"github.com/matt-FFFFFF/mptask/internal/runbatch"
)

// TypeExec is the step type used when a definition does not name one.
const TypeExec = "exec"

// Definition is a single task step as written in the task file.
type Definition struct {
	// Type is the step type, "exec" when empty.
	Type string `yaml:"type,omitempty" hcl:"type,optional" docdesc:"Step type: 'exec' (default) or 'shell'"`
	// Name is the descriptive name of the step.
	Name string `yaml:"name,omitempty" hcl:"name,label" docdesc:"Descriptive name for the step"`
	// Command is the command line. Variables such as $crn are expanded before it runs.
	Command string `yaml:"command" hcl:"command" docdesc:"Command line to run"`
	// Quiet discards the step's output instead of streaming it.
	Quiet bool `yaml:"quiet,omitempty" hcl:"quiet,optional" docdesc:"Suppress the step's stdout and stderr"`
	// WorkingDirectory is resolved against the task's directory when relative.
	WorkingDirectory string `yaml:"working_directory,omitempty" hcl:"working_directory,optional" docdesc:"Directory in which the step runs"` //nolint:lll
	// Env is a map of environment variables to be set for the step.
	Env map[string]string `yaml:"env,omitempty" hcl:"env,optional" docdesc:"Environment variables to set for the step"`
	// SuccessExitCodes are the exit codes that count as success, defaults to 0.
	SuccessExitCodes []int `yaml:"success_exit_codes,omitempty" hcl:"success_exit_codes,optional" docdesc:"Exit codes that indicate success, defaults to 0"` //nolint:lll
}

// StepType returns the type, defaulting to exec.
func (d *Definition) StepType() string {
	if d.Type == "" {
		return TypeExec
	}

	return d.Type
}

// Label returns the name, or the raw command line when the step is unnamed.
func (d *Definition) Label() string {
	if d.Name != "" {
		return d.Name
	}

	return d.Command
}

// ToBaseCommand builds the BaseCommand for the step, expanding variables in the
// working directory and environment values.
func (d *Definition) ToBaseCommand(vars *expand.Vars) (*runbatch.BaseCommand, error) {
	cwd, err := expand.String(d.WorkingDirectory, vars)
	if err != nil {
		return nil, NewErrCommandCreate(d.Label(), err)
	}

	env := make(map[string]string, len(d.Env))

	for _, k := range slices.Sorted(maps.Keys(d.Env)) {
		v, err := expand.String(d.Env[k], vars)
		if err != nil {
			return nil, NewErrCommandCreate(d.Label(), err)
		}

		env[k] = v
	}

	return runbatch.NewBaseCommand(d.Label(), cwd, env), nil
}

// Configure applies the output and exit code settings of the step to cmd.
func (d *Definition) Configure(cmd *runbatch.OSCommand) *runbatch.OSCommand {
	cmd.SuccessExitCodes = slices.Clone(d.SuccessExitCodes)

	if d.Quiet {
		cmd.Stdout = io.Discard
		cmd.Stderr = io.Discard
	}

	return cmd
}
