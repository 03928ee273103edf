// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package dispatch

import (
	"fmt"
	"io"
	"strings"

	"github.com/matt-FFFFFF/mptask/internal/expand"
	"github.com/matt-FFFFFF/mptask/internal/runbatch"
)

// WritePlan prints what r would run, one line per step, without running anything.
// Executables that are not installed yet are shown as written.
func WritePlan(w io.Writer, r runbatch.Runnable) error {
	return writePlan(w, r, "")
}

func writePlan(w io.Writer, r runbatch.Runnable, indent string) error {
	var sb strings.Builder

	switch c := r.(type) {
	case *runbatch.SerialBatch:
		fmt.Fprintf(&sb, "%s%s:\n", indent, c.GetLabel())

		if _, err := io.WriteString(w, sb.String()); err != nil {
			return err //nolint:wrapcheck
		}

		for _, child := range c.Commands {
			child.InheritEnv(c.Env)
			child.SetCwd(c.Cwd)

			if err := writePlan(w, child, indent+"  "); err != nil {
				return err
			}
		}

		return nil

	case *runbatch.OSCommand:
		argv := c.Argv()
		if path, err := c.ResolvePath(); err == nil {
			argv[0] = path
		}

		fmt.Fprintf(&sb, "%s%s: %s", indent, c.GetLabel(), expand.Join(argv))

		if c.Stdout == io.Discard {
			sb.WriteString(" (quiet)")
		}

		if c.Cwd != "" {
			fmt.Fprintf(&sb, " [in %s]", c.Cwd)
		}

		sb.WriteString("\n")

	default:
		fmt.Fprintf(&sb, "%s%s\n", indent, r.GetLabel())
	}

	_, err := io.WriteString(w, sb.String())

	return err //nolint:wrapcheck
}
