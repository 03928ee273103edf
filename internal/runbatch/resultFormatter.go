// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package runbatch

import (
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/matt-FFFFFF/mptask/internal/color"
)

// OutputOptions controls what is included in the output.
type OutputOptions struct {
	IncludeStdOut      bool // Whether to include captured stdout for failed commands
	IncludeStdErr      bool // Whether to include captured stderr for failed commands
	ShowSuccessDetails bool // Whether to show captured output for successful commands too
	ShowDetails        bool // Whether to show the argv and duration of each command
	MaxOutputLines     int  // Trailing lines of captured output to print, 0 for all
}

// DefaultOutputOptions returns a default set of output options.
// Output already streamed live, so only the stderr tail of failures is repeated.
func DefaultOutputOptions() *OutputOptions {
	return &OutputOptions{
		IncludeStdOut:      false,
		IncludeStdErr:      true,
		ShowSuccessDetails: false,
		MaxOutputLines:     20, //nolint:mnd
	}
}

func writeTextResults(w io.Writer, results Results, options *OutputOptions) error {
	if options == nil {
		options = DefaultOutputOptions()
	}

	for _, r := range results {
		if err := writeResultWithIndent(w, r, "", options); err != nil {
			return err
		}
	}

	return nil
}

func writeResultWithIndent(w io.Writer, r *Result, indent string, options *OutputOptions) error {
	var (
		statusStr string
		errColour color.Code
	)

	labelColour := []color.Code{color.Bold}

	switch r.Status {
	case ResultStatusSkipped:
		statusStr = color.Colorize("~", color.FgYellow)
		labelColour = append(labelColour, color.FgYellow)
		errColour = color.FgYellow
	case ResultStatusError:
		statusStr = color.Colorize("✗", color.FgRed)
		labelColour = append(labelColour, color.FgRed)
		errColour = color.FgRed
	case ResultStatusSuccess:
		statusStr = color.Colorize("✓", color.FgGreen)
		labelColour = append(labelColour, color.FgGreen)
		errColour = color.FgWhite
	default:
		statusStr = color.Colorize("?", color.FgWhite)
		errColour = color.FgWhite
	}

	label := r.Label
	if label == "" {
		label = "[unnamed]"
	}

	var sb strings.Builder

	fmt.Fprintf(&sb, "%s%s %s", indent, statusStr, color.Colorize(label, labelColour...))

	if r.ExitCode != 0 {
		fmt.Fprintf(&sb, " (exit code: %d)", r.ExitCode)
	}

	if options.ShowDetails && r.Status != ResultStatusSkipped {
		fmt.Fprintf(&sb, " [%s]", r.Duration.Round(time.Millisecond))
	}

	sb.WriteString("\n")

	if options.ShowDetails && len(r.Argv) > 0 {
		fmt.Fprintf(&sb, "%s  ➜ Command: %s\n", indent, strings.Join(r.Argv, " "))
	}

	// ErrResultChildrenHasError is redundant with the failing child's own line.
	if r.Error != nil && !errors.Is(r.Error, ErrResultChildrenHasError) {
		fmt.Fprintf(&sb, "%s  %s %s\n", indent, color.Colorize("➜ Error:", errColour), r.Error.Error())
	}

	showOutput := len(r.Children) == 0 && (r.Status == ResultStatusError || options.ShowSuccessDetails)

	if showOutput && options.IncludeStdOut && len(r.StdOut) > 0 {
		fmt.Fprintf(&sb, "%s  ➜ Output:\n", indent)
		sb.WriteString(formatOutput(r.StdOut, indent+"     ", options.MaxOutputLines))
	}

	if showOutput && options.IncludeStdErr && len(r.StdErr) > 0 {
		fmt.Fprintf(&sb, "%s  %s\n", indent, color.Colorize("➜ Error Output:", color.FgHiRed))
		sb.WriteString(formatOutput(r.StdErr, indent+"     ", options.MaxOutputLines))
	}

	if _, err := io.WriteString(w, sb.String()); err != nil {
		return err //nolint:wrapcheck
	}

	for _, child := range r.Children {
		if err := writeResultWithIndent(w, child, indent+"  ", options); err != nil {
			return err
		}
	}

	return nil
}

// formatOutput indents every line and keeps only the last maxLines lines when maxLines > 0.
func formatOutput(output []byte, indent string, maxLines int) string {
	lines := strings.Split(strings.TrimRight(string(output), "\n"), "\n")
	if maxLines > 0 && len(lines) > maxLines {
		lines = append([]string{fmt.Sprintf("... %d lines omitted", len(lines)-maxLines)}, lines[len(lines)-maxLines:]...)
	}

	var sb strings.Builder

	sb.Grow(len(output) + len(lines)*len(indent))

	for _, line := range lines {
		if line != "" {
			sb.WriteString(indent)
			sb.WriteString(line)
		}

		sb.WriteString("\n")
	}

	return sb.String()
}
