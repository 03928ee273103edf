// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package dispatch

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrUnknownTask is returned when no task has the requested name.
	ErrUnknownTask = errors.New("unknown task")
	// ErrInvalidParam is returned when a parameter is not of the form key=value.
	ErrInvalidParam = errors.New("invalid parameter, expected key=value")
	// ErrBuild is returned when a task's steps cannot be created.
	ErrBuild = errors.New("failed to build task")
)

// UnknownTaskError is returned when no task has the requested name.
type UnknownTaskError struct {
	Name  string
	Known []string
}

// Error implements the error interface.
func (e *UnknownTaskError) Error() string {
	return fmt.Sprintf("%s %q, available tasks: %s", ErrUnknownTask, e.Name, strings.Join(e.Known, ", "))
}

// Unwrap allows errors.Is(err, ErrUnknownTask).
func (e *UnknownTaskError) Unwrap() error {
	return ErrUnknownTask
}
