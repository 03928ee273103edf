// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package runbatch

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"
)

const (
	goOSWindows = "windows"
	pathEnv     = "PATH"
)

// ErrExecutableNotFound is returned when a command cannot be resolved to an executable file.
var ErrExecutableNotFound = errors.New("executable file not found in PATH")

// LookPath resolves command to an executable file.
// Absolute names are used as given. Other names containing a path separator are relative to dir.
// Bare names are searched in pathList. On Windows the .exe suffix is optional.
func LookPath(command, dir, pathList string) (string, error) {
	if command == "" {
		return "", fmt.Errorf("%w: empty command", ErrExecutableNotFound)
	}

	if strings.ContainsRune(command, '/') || strings.ContainsRune(command, filepath.Separator) {
		p := command
		if !filepath.IsAbs(p) && dir != "" {
			p = filepath.Join(dir, p)
		}

		if isExecutable(p) {
			return p, nil
		}

		return "", fmt.Errorf("%w: %s", ErrExecutableNotFound, command)
	}

	candidates := []string{command}
	if runtime.GOOS == goOSWindows && filepath.Ext(command) == "" {
		candidates = append(candidates, command+".exe")
	}

	for _, d := range filepath.SplitList(pathList) {
		if d == "" {
			continue
		}

		for _, c := range candidates {
			p := filepath.Join(d, c)
			if isExecutable(p) {
				return p, nil
			}
		}
	}

	return "", fmt.Errorf("%w: %s", ErrExecutableNotFound, command)
}

func isExecutable(p string) bool {
	info, err := os.Stat(p)
	if err != nil || info.IsDir() {
		return false
	}

	// check if the command is executable if not Windows
	return runtime.GOOS == goOSWindows || info.Mode()&0o111 != 0
}
