// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package taskfile

import (
	"errors"
	"fmt"
	"maps"
	"slices"
	"strings"

	"github.com/hashicorp/go-multierror"
	"github.com/matt-FFFFFF/mptask/internal/expand"
)

// Validate checks the file and returns every problem found, joined with ErrInvalid.
// Task names in reserved are rejected.
func (f *File) Validate(reserved ...string) error {
	var result *multierror.Error

	if len(f.Tasks) == 0 {
		result = multierror.Append(result, ErrNoTasks)
	}

	for _, k := range slices.Sorted(maps.Keys(f.Vars)) {
		if !expand.ValidName(k) {
			result = multierror.Append(result, fmt.Errorf("%w: var %q", ErrInvalidName, k))
		}
	}

	seen := make(map[string]struct{}, len(f.Tasks))

	for i, t := range f.Tasks {
		if t == nil {
			result = multierror.Append(result, fmt.Errorf("task #%d: %w", i+1, ErrEmptyTaskName))
			continue
		}

		if strings.TrimSpace(t.Name) == "" {
			result = multierror.Append(result, fmt.Errorf("task #%d: %w", i+1, ErrEmptyTaskName))
		} else {
			if _, dup := seen[t.Name]; dup {
				result = multierror.Append(result, NewDuplicateTaskError(t.Name))
			}

			seen[t.Name] = struct{}{}

			if slices.Contains(reserved, t.Name) {
				result = multierror.Append(result, fmt.Errorf("%w: %q", ErrReservedTaskName, t.Name))
			}
		}

		if err := t.validate(); err != nil {
			result = multierror.Append(result, err)
		}
	}

	if err := result.ErrorOrNil(); err != nil {
		return errors.Join(ErrInvalid, err)
	}

	return nil
}

func (t *Task) validate() error {
	var result *multierror.Error

	if len(t.Steps) == 0 {
		result = multierror.Append(result, fmt.Errorf("task %q: %w", t.Name, ErrNoSteps))
	}

	for i, s := range t.Steps {
		if s == nil || strings.TrimSpace(s.Command) == "" {
			result = multierror.Append(result, fmt.Errorf("task %q step #%d: %w", t.Name, i+1, ErrEmptyStepCommand))
		}
	}

	for _, p := range t.Params {
		if p == nil || !expand.ValidName(p.Name) {
			name := ""
			if p != nil {
				name = p.Name
			}

			result = multierror.Append(result, fmt.Errorf("task %q: %w: param %q", t.Name, ErrInvalidName, name))
		}
	}

	return result.ErrorOrNil()
}
