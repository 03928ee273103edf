// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package runbatch

import (
	"context"
)

// Runnable is an interface for something that can be run as part of a batch (either a Command or a nested Batch).
type Runnable interface {
	// Run executes the command or batch and returns the results.
	// It should handle context cancellation and passing signals to any spawned process.
	Run(context.Context) Results
	// SetCwd resolves the working directory against the parent's directory.
	// Absolute directories are left untouched.
	SetCwd(string)
	// InheritEnv adds environment variables that are not already set.
	InheritEnv(map[string]string)
	// GetLabel returns the label or description of the command or batch.
	GetLabel() string
	// GetParent returns the parent for this command or batch.
	GetParent() Runnable
	// SetParent sets the parent for this command or batch.
	SetParent(Runnable)
}
