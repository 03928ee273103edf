// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package taskfile

import (
	"testing"

	"github.com/matt-FFFFFF/mptask/internal/commands"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func step(cmd string) *commands.Definition {
	return &commands.Definition{Command: cmd}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name     string
		file     *File
		reserved []string
		wantErrs []error
	}{
		{
			name:     "no tasks",
			file:     &File{},
			wantErrs: []error{ErrNoTasks},
		},
		{
			name: "empty name and no steps",
			file: &File{Tasks: []*Task{{Name: " "}}},
			wantErrs: []error{
				ErrEmptyTaskName,
				ErrNoSteps,
			},
		},
		{
			name: "empty step command",
			file: &File{Tasks: []*Task{{Name: "deps", Steps: []*commands.Definition{step("ls"), step("")}}}},
			wantErrs: []error{
				ErrEmptyStepCommand,
			},
		},
		{
			name:     "reserved name",
			file:     &File{Tasks: []*Task{{Name: "tasks", Steps: []*commands.Definition{step("ls")}}}},
			reserved: []string{"tasks", "show"},
			wantErrs: []error{ErrReservedTaskName},
		},
		{
			name: "bad names",
			file: &File{
				Vars:  map[string]string{"PROJECT-NAME": "x"},
				Tasks: []*Task{{Name: "run", Params: []*Param{{Name: "1crn"}}, Steps: []*commands.Definition{step("ls")}}},
			},
			wantErrs: []error{ErrInvalidName},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.file.Validate(tt.reserved...)
			require.ErrorIs(t, err, ErrInvalid)

			for _, want := range tt.wantErrs {
				assert.ErrorIs(t, err, want)
			}
		})
	}
}

func TestValidate_Duplicate(t *testing.T) {
	f := &File{Tasks: []*Task{
		{Name: "lint", Steps: []*commands.Definition{step("black .")}},
		{Name: "Lint", Steps: []*commands.Definition{step("black .")}},
		{Name: "lint", Steps: []*commands.Definition{step("flake8")}},
	}}

	err := f.Validate()
	require.Error(t, err)

	var dup *DuplicateTaskError
	require.ErrorAs(t, err, &dup)
	assert.Equal(t, "lint", dup.Name)
	assert.Contains(t, err.Error(), `duplicate task name "lint"`)
	assert.NotContains(t, err.Error(), `"Lint"`, "names are case-sensitive")
}

func TestValidate_AllProblemsReported(t *testing.T) {
	f := &File{Tasks: []*Task{
		{Name: "a"},
		{Name: "b", Steps: []*commands.Definition{step("")}},
	}}

	err := f.Validate()
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrNoSteps)
	assert.ErrorIs(t, err, ErrEmptyStepCommand)
	assert.Contains(t, err.Error(), `task "a"`)
	assert.Contains(t, err.Error(), `task "b" step #1`)
}
