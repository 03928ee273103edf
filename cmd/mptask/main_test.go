// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"

	"github.com/matt-FFFFFF/mptask/internal/color"
	"github.com/matt-FFFFFF/mptask/internal/dispatch"
	"github.com/matt-FFFFFF/mptask/internal/taskfile"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const shellTasks = `tasks:
  - name: fail
    description: Exit with code 3
    steps:
      - type: shell
        name: exit three
        command: exit 3
        quiet: true
      - type: shell
        name: never
        command: "true"
  - name: ok
    description: Say hello
    steps:
      - type: shell
        name: hello
        command: echo hello $WHO
        quiet: true
`

type output struct {
	stdout bytes.Buffer
	stderr bytes.Buffer
}

func runCLI(t *testing.T, args ...string) (int, *output) {
	t.Helper()

	prev := color.Enabled()
	t.Cleanup(func() { color.SetEnabled(prev) })

	out := &output{}
	code := run(context.Background(), append([]string{"mptask", "--no-color"}, args...), &out.stdout, &out.stderr)

	return code, out
}

func posixOnly(t *testing.T) {
	t.Helper()

	if runtime.GOOS == "windows" {
		t.Skip("POSIX shell required")
	}

	t.Setenv("SHELL", "/bin/sh")
}

func writeTaskFile(t *testing.T, dir, content string) {
	t.Helper()

	require.NoError(t, os.WriteFile(filepath.Join(dir, "mptask.yaml"), []byte(content), 0o600))
}

func TestRun_NoTask(t *testing.T) {
	code, out := runCLI(t, "-C", t.TempDir())

	assert.Equal(t, 1, code)
	assert.Contains(t, out.stderr.String(), "mptask tasks")
}

func TestRun_UnknownTask(t *testing.T) {
	code, out := runCLI(t, "-C", t.TempDir(), "build")

	assert.Equal(t, 1, code)
	assert.Contains(t, out.stderr.String(), dispatch.ErrUnknownTask.Error())
	assert.Contains(t, out.stderr.String(), "deps, lint, run")
}

func TestRun_InvalidParam(t *testing.T) {
	code, out := runCLI(t, "-C", t.TempDir(), "run", "crn")

	assert.Equal(t, 1, code)
	assert.Contains(t, out.stderr.String(), dispatch.ErrInvalidParam.Error())
}

func TestRun_DryRun(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("POSIX shell scripts required")
	}

	bin := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(bin, "python"), []byte("#!/bin/sh\nexit 9\n"), 0o755))
	t.Setenv("PATH", bin)

	dir := t.TempDir()
	code, out := runCLI(t, "-C", dir, "--dry-run", "run", "crn=85", "ctrl=k")

	require.Equal(t, 0, code, out.stderr.String())

	lines := strings.Split(strings.TrimRight(out.stdout.String(), "\n"), "\n")
	require.Len(t, lines, 2)
	assert.Equal(t, "run:", lines[0])
	assert.Equal(t,
		"  car racing: "+filepath.Join(bin, "python")+" src/movement_primitives/car_racing.py 85 k [in "+dir+"]",
		lines[1])
}

func TestRun_RelativeExecutable(t *testing.T) {
	posixOnly(t)

	dir := t.TempDir()
	venv := filepath.Join(dir, "venv", "bin")
	require.NoError(t, os.MkdirAll(venv, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(venv, "python"), []byte("#!/bin/sh\nexit 4\n"), 0o755))
	writeTaskFile(t, dir, "tasks:\n  - name: version\n    steps:\n      - command: ./venv/bin/python -V\n")

	code, out := runCLI(t, "-C", dir, "version")

	assert.Equal(t, 4, code, "the venv interpreter ran, relative to the task directory")
	assert.NotContains(t, out.stderr.String(), "not found")
}

func TestRun_PathParam(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("POSIX shell scripts required")
	}

	bin := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(bin, "python"), []byte("#!/bin/sh\nexit 5\n"), 0o755))
	t.Setenv("PATH", t.TempDir())

	code, out := runCLI(t, "-C", t.TempDir(), "run", "PATH="+bin)

	assert.Equal(t, 5, code, out.stderr.String())
}

func TestRun_Tasks(t *testing.T) {
	code, out := runCLI(t, "-C", t.TempDir(), "tasks")

	require.Equal(t, 0, code, out.stderr.String())
	assert.Contains(t, out.stdout.String(), "Tasks from "+taskfile.DefaultSource+":")
	assert.Contains(t, out.stdout.String(), "  run   Run the car racing script")
	assert.Contains(t, out.stdout.String(), "note: flake8 is installed but never invoked")
}

func TestRun_TasksYAML(t *testing.T) {
	code, out := runCLI(t, "-C", t.TempDir(), "tasks", "--yaml")
	require.Equal(t, 0, code, out.stderr.String())

	f, err := taskfile.ParseYAML(out.stdout.Bytes(), "stdout.yaml")
	require.NoError(t, err)

	def, err := taskfile.Default()
	require.NoError(t, err)
	assert.Equal(t, def.Names(), f.Names())
	assert.Equal(t, def.Vars, f.Vars)
}

func TestRun_StepExitCode(t *testing.T) {
	posixOnly(t)

	dir := t.TempDir()
	writeTaskFile(t, dir, shellTasks)

	code, out := runCLI(t, "-C", dir, "fail")

	assert.Equal(t, 3, code)
	assert.Contains(t, out.stderr.String(), "exit three (exit code: 3)")
	assert.Contains(t, out.stderr.String(), "~ never")
}

func TestRun_OutAndShow(t *testing.T) {
	posixOnly(t)

	dir := t.TempDir()
	writeTaskFile(t, dir, shellTasks)

	results := filepath.Join(t.TempDir(), "results.bin")

	code, out := runCLI(t, "-C", dir, "--out", results, "--no-summary", "ok", "WHO=world")
	require.Equal(t, 0, code, out.stderr.String())
	assert.Empty(t, out.stdout.String())
	assert.NotContains(t, out.stderr.String(), "hello")

	code, out = runCLI(t, "--success", "--stdout", "show", results)
	require.Equal(t, 0, code, out.stderr.String())
	assert.Contains(t, out.stdout.String(), "✓ ok")
	assert.Contains(t, out.stdout.String(), "hello world")
}

func TestRun_ShowMissingFile(t *testing.T) {
	code, out := runCLI(t, "show", filepath.Join(t.TempDir(), "missing.bin"))

	assert.Equal(t, 1, code)
	assert.Contains(t, out.stderr.String(), "failed to read file")
}

func TestRun_ReservedTaskName(t *testing.T) {
	dir := t.TempDir()
	writeTaskFile(t, dir, "tasks:\n  - name: tasks\n    steps:\n      - command: \"true\"\n")

	code, out := runCLI(t, "-C", dir, "tasks")

	assert.Equal(t, 1, code)
	assert.Contains(t, out.stderr.String(), taskfile.ErrReservedTaskName.Error())
}

func TestRun_Schema(t *testing.T) {
	code, out := runCLI(t, "schema", "--format", "markdown")

	require.Equal(t, 0, code, out.stderr.String())
	assert.Contains(t, out.stdout.String(), "Step types: `exec`, `shell`.")
	assert.Contains(t, out.stdout.String(), "## `tasks[].steps[]`")
}

func TestExitCode(t *testing.T) {
	assert.Equal(t, 0, exitCode(nil))
	assert.Equal(t, 1, exitCode(assert.AnError))
}

func TestRun_MissingDirectory(t *testing.T) {
	code, out := runCLI(t, "-C", filepath.Join(t.TempDir(), "nope"), "deps")

	assert.Equal(t, 1, code)
	assert.Contains(t, out.stderr.String(), "failed to determine working directory")
}
