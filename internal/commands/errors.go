// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package commands

import (
	"errors"
	"fmt"
)

var (
	// ErrUnknownStepType is returned when no Commander is registered for a step type.
	ErrUnknownStepType = errors.New("unknown step type")
	// ErrEmptyCommand is returned when a step has no command line.
	ErrEmptyCommand = errors.New("step has an empty command")
)

// ErrCommandCreate is returned when a step cannot be turned into a runnable.
// It includes the step name for easier debugging.
type ErrCommandCreate struct {
	cmdName string
	err     error
}

// Error implements the error interface for ErrCommandCreate.
func (e *ErrCommandCreate) Error() string {
	if e.err == nil {
		return fmt.Sprintf("failed to create step %q", e.cmdName)
	}

	return fmt.Sprintf("failed to create step %q: %v", e.cmdName, e.err)
}

// Unwrap returns the underlying cause.
func (e *ErrCommandCreate) Unwrap() error {
	return e.err
}

// NewErrCommandCreate creates a new ErrCommandCreate error.
func NewErrCommandCreate(cmdName string, err error) error {
	return &ErrCommandCreate{cmdName: cmdName, err: err}
}
