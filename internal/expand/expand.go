// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package expand

import (
	"errors"
	"fmt"
	"maps"
	"os"
	"strings"

	"mvdan.cc/sh/v3/shell"
	"mvdan.cc/sh/v3/syntax"
)

var (
	// ErrExpand is returned when a command line cannot be parsed or expanded.
	ErrExpand = errors.New("failed to expand command line")
	// ErrEmptyCommand is returned when a command line expands to no words at all.
	ErrEmptyCommand = errors.New("command line expands to nothing")
)

// lookupEnv is the last layer consulted by Vars.Lookup.
var lookupEnv = os.LookupEnv

// Vars is a layered variable set. Earlier layers win.
type Vars struct {
	layers []map[string]string
}

// NewVars creates a variable set from the given layers, highest precedence first.
func NewVars(layers ...map[string]string) *Vars {
	return &Vars{layers: layers}
}

// Lookup returns the value of name and whether it is set in any layer or the environment.
func (v *Vars) Lookup(name string) (string, bool) {
	if v != nil {
		for _, l := range v.layers {
			if val, ok := l[name]; ok {
				return val, true
			}
		}
	}

	return lookupEnv(name)
}

// Get returns the value of name, or "" when unset.
func (v *Vars) Get(name string) string {
	val, _ := v.Lookup(name)
	return val
}

// Env flattens the layers into one map, without the process environment.
// The result is what steps receive as extra environment variables.
func (v *Vars) Env() map[string]string {
	env := make(map[string]string)
	if v == nil {
		return env
	}

	for i := len(v.layers) - 1; i >= 0; i-- {
		maps.Copy(env, v.layers[i])
	}

	return env
}

// Fields splits and expands a command line the way a POSIX shell would,
// without running command substitutions.
func Fields(cmdline string, v *Vars) ([]string, error) {
	fields, err := shell.Fields(cmdline, v.Get)
	if err != nil {
		return nil, errors.Join(ErrExpand, fmt.Errorf("%q: %w", cmdline, err))
	}

	if len(fields) == 0 {
		return nil, fmt.Errorf("%w: %q", ErrEmptyCommand, cmdline)
	}

	return fields, nil
}

// String expands variables in s without word splitting.
func String(s string, v *Vars) (string, error) {
	out, err := shell.Expand(s, v.Get)
	if err != nil {
		return "", errors.Join(ErrExpand, fmt.Errorf("%q: %w", s, err))
	}

	return out, nil
}

// ValidName reports whether name can be referenced as $name: a letter or underscore
// followed by letters, digits or underscores.
func ValidName(name string) bool {
	return syntax.ValidName(name)
}

// Join quotes each argument for bash where needed and joins them with spaces.
func Join(argv []string) string {
	quoted := make([]string, len(argv))

	for i, a := range argv {
		q, err := syntax.Quote(a, syntax.LangBash)
		if err != nil {
			q = fmt.Sprintf("%q", a)
		}

		quoted[i] = q
	}

	return strings.Join(quoted, " ")
}
