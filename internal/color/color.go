// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package color

import (
	"os"
	"strconv"
	"strings"

	"golang.org/x/term"
)

// Code is an SGR parameter, e.g. 31 for a red foreground.
type Code int

const (
	// NoColor disables colour output when set to any non-empty value.
	NoColor = "NO_COLOR"
	// ForceColor enables colour output when set, unless NO_COLOR is also set.
	ForceColor = "FORCE_COLOR"

	csi   = "\033["
	sgr   = "m"
	reset = csi + "0" + sgr
)

// Attributes.
const (
	Reset Code = 0
	Bold  Code = 1
	Faint Code = 2
)

// Foreground colours.
const (
	FgRed     Code = 31
	FgGreen   Code = 32
	FgYellow  Code = 33
	FgBlue    Code = 34
	FgMagenta Code = 35
	FgCyan    Code = 36
	FgWhite   Code = 37

	FgHiRed     Code = 91
	FgHiMagenta Code = 95
	FgHiWhite   Code = 97
)

var enabled = capable(int(os.Stderr.Fd()))

// Enabled reports whether colour output is on for this process.
func Enabled() bool {
	return enabled
}

// SetEnabled overrides terminal detection, mainly for tests and --no-color style flags.
func SetEnabled(v bool) {
	enabled = v
}

// Sequence returns the raw escape sequence for the codes, or "" when colour is off.
func Sequence(codes ...Code) string {
	if !enabled || len(codes) == 0 {
		return ""
	}

	parts := make([]string, len(codes))
	for i, c := range codes {
		parts[i] = strconv.Itoa(int(c))
	}

	return csi + strings.Join(parts, ";") + sgr
}

// Colorize wraps str in the codes and a trailing reset.
func Colorize(str string, codes ...Code) string {
	if !enabled {
		return str
	}

	return Sequence(codes...) + str + reset
}

func capable(fd int) bool {
	if os.Getenv(NoColor) != "" {
		return false
	}

	if os.Getenv(ForceColor) != "" {
		return true
	}

	return term.IsTerminal(fd)
}
