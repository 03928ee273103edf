// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package shellcommand

import (
	"context"
	"io"
	"runtime"
	"testing"

	"github.com/matt-FFFFFF/mptask/internal/commandregistry"
	"github.com/matt-FFFFFF/mptask/internal/commands"
	"github.com/matt-FFFFFF/mptask/internal/expand"
	"github.com/matt-FFFFFF/mptask/internal/runbatch"
	"github.com/prashantv/gostub"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultShell(t *testing.T) {
	if runtime.GOOS == GOOSWindows {
		t.Setenv(winSystemRootEnv, `D:\Win`)
		assert.Equal(t, `D:\Win\System32\cmd.exe`, defaultShell(context.Background()))

		return
	}

	t.Setenv("SHELL", "/usr/bin/zsh")
	assert.Equal(t, "/usr/bin/zsh", defaultShell(context.Background()))

	t.Setenv("SHELL", "")
	assert.Equal(t, binSh, defaultShell(context.Background()))
}

func TestNew(t *testing.T) {
	stubs := gostub.StubFunc(&DefaultShell, "/opt/shell")
	defer stubs.Reset()

	cmd, err := New(context.Background(), runbatch.NewBaseCommand("format", "", nil), "black src/$PROJECT_NAME")
	require.NoError(t, err)
	assert.Equal(t, "/opt/shell", cmd.Path)
	assert.Equal(t, "black src/$PROJECT_NAME", cmd.Args[1], "the shell does the expansion")

	_, err = New(context.Background(), runbatch.NewBaseCommand("empty", "", nil), "")
	require.ErrorIs(t, err, ErrCommandNotFound)
}

func TestCommander_Create(t *testing.T) {
	stubs := gostub.StubFunc(&DefaultShell, "/bin/sh")
	defer stubs.Reset()

	r := commandregistry.New(Register)
	def := &commands.Definition{
		Type:             TypeShell,
		Name:             "quiet install",
		Command:          "python -m pip install flake8",
		Quiet:            true,
		WorkingDirectory: "$ROOT",
		SuccessExitCodes: []int{0, 1},
	}

	runnable, err := r.Create(context.Background(), def, expand.NewVars(map[string]string{"ROOT": "/src"}))
	require.NoError(t, err)

	cmd, ok := runnable.(*runbatch.OSCommand)
	require.True(t, ok)
	assert.Equal(t, "quiet install", cmd.Label)
	assert.Equal(t, "/src", cmd.Cwd)
	assert.Equal(t, io.Discard, cmd.Stdout)
	assert.Equal(t, []int{0, 1}, cmd.SuccessExitCodes)

	_, err = r.Create(context.Background(), &commands.Definition{Type: TypeShell, Name: "empty"}, nil)
	require.ErrorIs(t, err, ErrCommandNotFound)
}

func TestCommander_RunSeesParamsAsEnv(t *testing.T) {
	if runtime.GOOS == GOOSWindows {
		t.Skip("POSIX shell required")
	}

	stubs := gostub.StubFunc(&DefaultShell, "/bin/sh")
	defer stubs.Reset()

	def := &commands.Definition{Type: TypeShell, Name: "echo", Command: `printf '%s/%s' "$crn" "$ctrl"`}

	runnable, err := (&Commander{}).Create(context.Background(), def, nil)
	require.NoError(t, err)

	cmd := runnable.(*runbatch.OSCommand) //nolint:forcetypeassert
	cmd.Stdout = io.Discard
	cmd.InheritEnv(map[string]string{"crn": "85", "ctrl": "k"})

	res := cmd.Run(context.Background())
	require.False(t, res.HasError())
	assert.Equal(t, "85/k", string(res[0].StdOut))
}
