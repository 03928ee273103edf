// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

// Package execcommand provides the default step type.
// The command line is split into words and variables are expanded. The first word is
// looked up when the step starts, in the step's own PATH and working directory, so a
// tool installed by an earlier step of the same task can be run by a later one.
package execcommand

import (
	"fmt"

	"github.com/matt-FFFFFF/mptask/internal/runbatch"
)

// ErrNotFound is returned when the executable cannot be found.
var ErrNotFound = runbatch.ErrExecutableNotFound

// New creates a runbatch.OSCommand for argv. argv[0] is resolved when the command runs.
func New(base *runbatch.BaseCommand, argv []string) (*runbatch.OSCommand, error) {
	if len(argv) == 0 || argv[0] == "" {
		return nil, fmt.Errorf("%w: empty command", ErrNotFound)
	}

	return &runbatch.OSCommand{
		BaseCommand: base,
		Path:        argv[0],
		Args:        argv[1:],
	}, nil
}
