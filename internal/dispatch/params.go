// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package dispatch

import (
	"fmt"
	"strings"

	"github.com/matt-FFFFFF/mptask/internal/expand"
)

// Params are the key=value arguments given after the task name.
type Params map[string]string

// ParseParams parses key=value arguments. The key must be a valid variable name;
// the value may be empty or contain '='.
// A later duplicate key replaces an earlier one.
func ParseParams(args []string) (Params, error) {
	p := make(Params, len(args))

	for _, a := range args {
		k, v, ok := strings.Cut(a, "=")
		if !ok || !expand.ValidName(k) {
			return nil, fmt.Errorf("%w: %q", ErrInvalidParam, a)
		}

		p[k] = v
	}

	return p, nil
}
