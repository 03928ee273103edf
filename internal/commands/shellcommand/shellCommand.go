// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

// Package shellcommand provides the shell step type, which hands the whole command line to the system shell.
// Task variables and parameters reach the shell as environment variables.
package shellcommand

import (
	"context"
	"errors"
	"fmt"
	"os"
	"runtime"

	"github.com/matt-FFFFFF/mptask/internal/ctxlog"
	"github.com/matt-FFFFFF/mptask/internal/runbatch"
)

const (
	// GOOSWindows is the string constant for Windows OS from the runtime package.
	GOOSWindows          = "windows"
	commandSwitchWindows = "/C"         // Command switch for Windows cmd.exe
	commandSwitchUnix    = "-c"         // Command switch for Unix-like shells
	winSystem32          = "System32"   // System32 is the directory where cmd.exe is located on Windows.
	cmdExe               = "cmd.exe"    // cmdExe is the name of the command interpreter executable on Windows.
	binSh                = "/bin/sh"    // Default shell for Unix-like systems.
	winSystemRootEnv     = "SystemRoot" // Environment variable for Windows system root directory.
)

// ErrCommandNotFound is returned when the command line is empty.
var ErrCommandNotFound = errors.New("command not found")

// DefaultShell returns the shell executable used to run command lines.
var DefaultShell = defaultShell

// New creates a new runbatch.OSCommand that runs command in the default shell.
func New(ctx context.Context, base *runbatch.BaseCommand, command string) (*runbatch.OSCommand, error) {
	if command == "" {
		return nil, ErrCommandNotFound
	}

	var osCommandArgs []string

	switch runtime.GOOS {
	case GOOSWindows:
		osCommandArgs = []string{commandSwitchWindows, command}
	default:
		osCommandArgs = []string{commandSwitchUnix, command}
	}

	return &runbatch.OSCommand{
		BaseCommand: base,
		Path:        DefaultShell(ctx),
		Args:        osCommandArgs,
	}, nil
}

func defaultShell(ctx context.Context) string {
	if runtime.GOOS == GOOSWindows {
		systemRoot := os.Getenv(winSystemRootEnv)
		if systemRoot == "" {
			systemRoot = `C:\Windows`
		}

		return fmt.Sprintf(`%s\%s\%s`, systemRoot, winSystem32, cmdExe)
	}

	if shell := os.Getenv("SHELL"); shell != "" {
		ctxlog.Debug(ctx, "using SHELL environment variable", "shell", shell)
		return shell
	}

	return binSh
}
