// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package runbatch

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

type fakeCmd struct {
	*BaseCommand
	exitCode int
	ran      *[]string
}

func newFake(label string, exitCode int, ran *[]string) *fakeCmd {
	return &fakeCmd{
		BaseCommand: NewBaseCommand(label, "", nil),
		exitCode:    exitCode,
		ran:         ran,
	}
}

func (f *fakeCmd) Run(_ context.Context) Results {
	*f.ran = append(*f.ran, f.Label)

	status := ResultStatusSuccess
	if f.exitCode != 0 {
		status = ResultStatusError
	}

	return Results{&Result{Label: f.Label, ExitCode: f.exitCode, Status: status}}
}

func TestSerialBatchRun_AllSuccess(t *testing.T) {
	defer goleak.VerifyNone(t)

	var ran []string

	batch := NewSerialBatch(NewBaseCommand("deps", "", nil),
		newFake("upgrade", 0, &ran),
		newFake("install", 0, &ran),
	)

	results := batch.Run(context.Background())
	require.Len(t, results, 1)

	res := results[0]
	assert.Equal(t, ResultStatusSuccess, res.Status)
	assert.Equal(t, 0, res.ExitCode)
	assert.NoError(t, res.Error)
	assert.Len(t, res.Children, 2)
	assert.Equal(t, []string{"upgrade", "install"}, ran)
}

func TestSerialBatchRun_FailFast(t *testing.T) {
	defer goleak.VerifyNone(t)

	var ran []string

	batch := NewSerialBatch(NewBaseCommand("lint", "", nil),
		newFake("editable", 0, &ran),
		newFake("flake8", 3, &ran),
		newFake("black-install", 0, &ran),
		newFake("black", 0, &ran),
	)

	results := batch.Run(context.Background())
	res := results[0]

	assert.Equal(t, []string{"editable", "flake8"}, ran, "nothing runs after the first failure")
	assert.Equal(t, ResultStatusError, res.Status)
	assert.Equal(t, 3, res.ExitCode)
	require.ErrorIs(t, res.Error, ErrResultChildrenHasError)

	require.Len(t, res.Children, 4)
	for _, skipped := range res.Children[2:] {
		assert.Equal(t, ResultStatusSkipped, skipped.Status)
		assert.ErrorIs(t, skipped.Error, ErrSkipOnError)
	}
}

func TestSerialBatchRun_Cancelled(t *testing.T) {
	defer goleak.VerifyNone(t)

	var ran []string

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	batch := NewSerialBatch(NewBaseCommand("run", "", nil), newFake("script", 0, &ran))
	res := batch.Run(ctx)[0]

	assert.Empty(t, ran)
	assert.Equal(t, ResultStatusError, res.Status)
	assert.Equal(t, 1, res.ExitCode)
	assert.ErrorIs(t, res.Children[0].Error, ErrSkipCancelled)
	assert.ErrorIs(t, res.Children[0].Error, context.Canceled)
}

func TestSerialBatchRun_NestedBatch(t *testing.T) {
	defer goleak.VerifyNone(t)

	var ran []string

	child := NewSerialBatch(NewBaseCommand("child", "", nil),
		newFake("a", 0, &ran),
		newFake("b", 5, &ran),
	)
	parent := NewSerialBatch(NewBaseCommand("parent", "", nil),
		child,
		newFake("c", 0, &ran),
	)

	res := parent.Run(context.Background())[0]
	assert.Equal(t, []string{"a", "b"}, ran)
	assert.Equal(t, 5, res.ExitCode)
	assert.Equal(t, "parent > child > b", FullLabel(child.Commands[1]))
}

func TestSerialBatchRun_InheritsEnvAndCwd(t *testing.T) {
	var ran []string

	abs := newFake("abs", 0, &ran)
	abs.Cwd = "/opt"
	rel := newFake("rel", 0, &ran)
	rel.Cwd = "src"
	rel.Env = map[string]string{"KEEP": "mine"}
	empty := newFake("empty", 0, &ran)

	batch := NewSerialBatch(
		NewBaseCommand("task", "/work", map[string]string{"KEEP": "batch", "PROJECT_NAME": "movement_primitives"}),
		abs, rel, empty,
	)
	batch.Run(context.Background())

	assert.Equal(t, "/opt", abs.Cwd)
	assert.Equal(t, "/work/src", rel.Cwd)
	assert.Equal(t, "/work", empty.Cwd)
	assert.Equal(t, "mine", rel.Env["KEEP"])
	assert.Equal(t, "movement_primitives", rel.Env["PROJECT_NAME"])
	assert.Equal(t, "batch", empty.Env["KEEP"])
}
