// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package taskfile

import (
	"context"
	_ "embed"
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/matt-FFFFFF/mptask/internal/ctxlog"
	"github.com/spf13/afero"
)

// DefaultSource is the Source of the embedded task file.
const DefaultSource = "(built-in)"

// DefaultFileNames are searched in order in the working directory.
var DefaultFileNames = []string{"mptask.yaml", "mptask.yml", "mptask.hcl"}

//go:embed default.yaml
var defaultYAML []byte

// Default returns the embedded task file.
func Default() (*File, error) {
	f, err := ParseYAML(defaultYAML, DefaultSource)
	if err != nil {
		return nil, err
	}

	f.Source = DefaultSource

	return f, nil
}

// Parse decodes data according to the extension of filename.
func Parse(data []byte, filename string) (*File, error) {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".yaml", ".yml":
		return ParseYAML(data, filename)
	case ".hcl":
		return ParseHCL(data, filename)
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedFormat, filename)
	}
}

// Load finds and parses the task file.
// A non-empty location is read from the filesystem when it exists there, otherwise it is fetched with go-getter.
// With an empty location the DefaultFileNames are searched in dir, then the embedded default is used.
// The file is not validated.
func Load(ctx context.Context, location, dir string) (*File, error) {
	fs := FsFactory()

	if location != "" {
		data, err := readLocation(ctx, fs, location)
		if err != nil {
			return nil, err
		}

		return Parse(data, fileNameOf(location))
	}

	for _, name := range DefaultFileNames {
		p := filepath.Join(dir, name)

		ok, err := afero.Exists(fs, p)
		if err != nil {
			return nil, errors.Join(ErrGetTaskFile, err)
		}

		if !ok {
			continue
		}

		ctxlog.Debug(ctx, "found task file", "path", p)

		data, err := afero.ReadFile(fs, p)
		if err != nil {
			return nil, errors.Join(ErrGetTaskFile, err)
		}

		return Parse(data, p)
	}

	ctxlog.Debug(ctx, "no task file found, using built-in tasks", "dir", dir)

	return Default()
}

func readLocation(ctx context.Context, fs afero.Fs, location string) ([]byte, error) {
	if ok, _ := afero.Exists(fs, location); ok {
		data, err := afero.ReadFile(fs, location)
		if err != nil {
			return nil, errors.Join(ErrGetTaskFile, err)
		}

		return data, nil
	}

	ctxlog.Debug(ctx, "fetching task file", "url", location)

	return getURL(ctx, location)
}

// fileNameOf strips go-getter forced getters and query strings so the extension can be inspected.
func fileNameOf(location string) string {
	if _, after, ok := strings.Cut(location, "::"); ok {
		location = after
	}

	if before, _, ok := strings.Cut(location, goGetterRefSeparator); ok {
		location = before
	}

	return location
}
