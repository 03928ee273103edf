// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package taskfile

import (
	"github.com/matt-FFFFFF/mptask/internal/commands"
)

// File is a parsed task file.
type File struct {
	// Vars are available to every step, both for expansion and as environment variables.
	Vars map[string]string `yaml:"vars,omitempty" docdesc:"Variables for expansion and the environment of every step, overridden by key=value parameters"`
	// Tasks in declaration order.
	Tasks []*Task `yaml:"tasks" docdesc:"Tasks in the order they are listed"`
	// Source describes where the file was loaded from.
	Source string `yaml:"-"`
}

// Task is a named, ordered sequence of steps.
type Task struct {
	Name             string                 `yaml:"name" hcl:"name,label" docdesc:"Name used on the command line"`
	Description      string                 `yaml:"description,omitempty" hcl:"description,optional" docdesc:"One line summary shown by mptask tasks"`
	Note             string                 `yaml:"note,omitempty" hcl:"note,optional" docdesc:"Remark shown in listings and logged when the task runs"`
	WorkingDirectory string                 `yaml:"working_directory,omitempty" hcl:"working_directory,optional" docdesc:"Directory the steps run in, relative to --directory"` //nolint:lll
	Env              map[string]string      `yaml:"env,omitempty" hcl:"env,optional" docdesc:"Environment variables for every step of the task"`
	Params           []*Param               `yaml:"params,omitempty" hcl:"param,block" docdesc:"Documented key=value parameters"`
	Steps            []*commands.Definition `yaml:"steps" hcl:"step,block" docdesc:"Steps run in order, the first failure stops the task"`
}

// Param documents a key=value parameter a task understands.
// Parameters are never validated; any key=value is accepted on the command line.
type Param struct {
	Name        string `yaml:"name" hcl:"name,label" docdesc:"Parameter key"`
	Description string `yaml:"description,omitempty" hcl:"description,optional" docdesc:"What the parameter controls"`
	Example     string `yaml:"example,omitempty" hcl:"example,optional" docdesc:"Example value shown in listings"`
}

// Lookup returns the task with exactly the given name. Names are case-sensitive.
func (f *File) Lookup(name string) (*Task, bool) {
	for _, t := range f.Tasks {
		if t.Name == name {
			return t, true
		}
	}

	return nil, false
}

// Names returns the task names in declaration order.
func (f *File) Names() []string {
	names := make([]string, len(f.Tasks))
	for i, t := range f.Tasks {
		names[i] = t.Name
	}

	return names
}
