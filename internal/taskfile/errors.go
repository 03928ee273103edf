// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package taskfile

import (
	"errors"
	"fmt"
)

var (
	// ErrParse is returned when a task file cannot be decoded.
	ErrParse = errors.New("failed to parse task file")
	// ErrUnsupportedFormat is returned when the file extension is not .yaml, .yml or .hcl.
	ErrUnsupportedFormat = errors.New("unsupported task file format, use .yaml, .yml or .hcl")
	// ErrGetTaskFile is returned when a task file cannot be retrieved.
	ErrGetTaskFile = errors.New("failed to get task file")
	// ErrInvalid is returned when a task file fails validation. It wraps every problem found.
	ErrInvalid = errors.New("invalid task file")
	// ErrNoTasks is returned when a task file defines no tasks.
	ErrNoTasks = errors.New("no tasks defined")
	// ErrEmptyTaskName is returned when a task has no name.
	ErrEmptyTaskName = errors.New("task name must not be empty")
	// ErrReservedTaskName is returned when a task name collides with a built-in command.
	ErrReservedTaskName = errors.New("task name is reserved")
	// ErrNoSteps is returned when a task has no steps.
	ErrNoSteps = errors.New("task has no steps")
	// ErrEmptyStepCommand is returned when a step has no command line.
	ErrEmptyStepCommand = errors.New("step has an empty command")
	// ErrInvalidName is returned when a param or var name cannot be used as a variable.
	ErrInvalidName = errors.New("invalid variable name")
)

// DuplicateTaskError is returned when two tasks share a name.
type DuplicateTaskError struct {
	Name string
}

// Error implements the error interface.
func (e *DuplicateTaskError) Error() string {
	return fmt.Sprintf("duplicate task name %q", e.Name)
}

// NewDuplicateTaskError creates a new DuplicateTaskError.
func NewDuplicateTaskError(name string) error {
	return &DuplicateTaskError{Name: name}
}
