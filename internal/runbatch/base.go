// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package runbatch

import (
	"maps"
	"path/filepath"
)

// BaseCommand holds the fields shared by commands and batches.
// It should be embedded in other command types to provide common functionality.
type BaseCommand struct {
	Label  string            // Optional label for the command
	Cwd    string            // The working directory for the command
	Env    map[string]string // Environment variables to be passed to the command
	parent Runnable          // The parent command or batch, if any
}

// NewBaseCommand creates a new BaseCommand. A nil env becomes an empty map.
func NewBaseCommand(label, cwd string, env map[string]string) *BaseCommand {
	if env == nil {
		env = make(map[string]string)
	}

	return &BaseCommand{
		Label: label,
		Cwd:   cwd,
		Env:   env,
	}
}

// GetLabel returns the label of the command.
func (c *BaseCommand) GetLabel() string {
	if c.Label == "" {
		return "Command"
	}

	return c.Label
}

// GetParent returns the parent for this command or batch.
func (c *BaseCommand) GetParent() Runnable {
	return c.parent
}

// SetParent sets the parent for this command or batch.
func (c *BaseCommand) SetParent(parent Runnable) {
	c.parent = parent
}

// SetCwd joins a relative Cwd onto dir, adopts dir when Cwd is empty,
// and keeps an absolute Cwd as is.
func (c *BaseCommand) SetCwd(dir string) {
	switch {
	case dir == "":
		return
	case c.Cwd == "":
		c.Cwd = dir
	case !filepath.IsAbs(c.Cwd):
		c.Cwd = filepath.Join(dir, c.Cwd)
	}
}

// InheritEnv sets additional environment variables for the command.
// Variables already present win over inherited ones.
func (c *BaseCommand) InheritEnv(env map[string]string) {
	if len(c.Env) == 0 {
		c.Env = maps.Clone(env)
		return
	}

	for k, v := range env {
		if _, ok := c.Env[k]; !ok {
			c.Env[k] = v
		}
	}
}
