// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package taskfile

import (
	"errors"
	"fmt"

	"github.com/goccy/go-yaml"
)

// ParseYAML decodes a YAML task file. Unknown fields are rejected.
func ParseYAML(data []byte, filename string) (*File, error) {
	f := new(File)
	if err := yaml.UnmarshalWithOptions(data, f, yaml.Strict()); err != nil {
		return nil, errors.Join(ErrParse, fmt.Errorf("%s: %s", filename, yaml.FormatError(err, false, true)))
	}

	f.Source = filename

	return f, nil
}

// WriteYAML encodes f as YAML.
func (f *File) WriteYAML() ([]byte, error) {
	b, err := yaml.MarshalWithOptions(f, yaml.IndentSequence(true))
	if err != nil {
		return nil, fmt.Errorf("failed to encode task file: %w", err)
	}

	return b, nil
}
