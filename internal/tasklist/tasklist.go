// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package tasklist

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/matt-FFFFFF/mptask/internal/color"
	"github.com/matt-FFFFFF/mptask/internal/taskfile"
	"github.com/muesli/termenv"
)

const (
	indent = "  "
	gutter = 2
)

// Styles contains the styling for the task listing.
type Styles struct {
	Title   lipgloss.Style
	Name    lipgloss.Style
	Note    lipgloss.Style
	Param   lipgloss.Style
	Command lipgloss.Style
}

// NewStyles creates the default styles for r.
func NewStyles(r *lipgloss.Renderer) *Styles {
	return &Styles{
		Title: r.NewStyle().
			Bold(true),
		Name: r.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("12")),
		Note: r.NewStyle().
			Foreground(lipgloss.Color("11")).
			Italic(true),
		Param: r.NewStyle().
			Foreground(lipgloss.Color("10")),
		Command: r.NewStyle().
			Foreground(lipgloss.Color("8")),
	}
}

// Options controls the listing.
type Options struct {
	ShowSteps bool // Print the command line of every step
}

// Write lists the tasks of f with their descriptions, notes and parameters.
func Write(w io.Writer, f *taskfile.File, opts Options) error {
	r := lipgloss.NewRenderer(w)
	if !color.Enabled() {
		r.SetColorProfile(termenv.Ascii)
	}

	s := NewStyles(r)

	nameWidth := 0
	for _, t := range f.Tasks {
		nameWidth = max(nameWidth, lipgloss.Width(t.Name))
	}

	nameWidth += gutter
	sub := indent + strings.Repeat(" ", nameWidth)

	var sb strings.Builder

	fmt.Fprintf(&sb, "%s\n", s.Title.Render("Tasks from "+f.Source+":"))

	for _, t := range f.Tasks {
		fmt.Fprintf(&sb, "%s%s%s\n", indent, s.Name.Width(nameWidth).Render(t.Name), t.Description)

		if t.Note != "" {
			fmt.Fprintf(&sb, "%s%s\n", sub, s.Note.Render("note: "+t.Note))
		}

		paramWidth := 0
		for _, p := range t.Params {
			paramWidth = max(paramWidth, lipgloss.Width(paramUsage(p)))
		}

		for _, p := range t.Params {
			fmt.Fprintf(&sb, "%s%s%s\n", sub, s.Param.Width(paramWidth+gutter).Render(paramUsage(p)), p.Description)
		}

		if !opts.ShowSteps {
			continue
		}

		for _, step := range t.Steps {
			line := "$ " + step.Command
			if step.Quiet {
				line += "  (quiet)"
			}

			fmt.Fprintf(&sb, "%s%s\n", sub, s.Command.Render(line))
		}
	}

	_, err := io.WriteString(w, sb.String())

	return err //nolint:wrapcheck
}

func paramUsage(p *taskfile.Param) string {
	return p.Name + "=" + p.Example
}
