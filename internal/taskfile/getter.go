// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package taskfile

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path"
	"path/filepath"
	"strings"

	getter "github.com/hashicorp/go-getter/v2"
)

const (
	goGetterPathSeparator = "//"
	goGetterRefSeparator  = "?"
	minimumGetterParts    = 3 // Minimum parts in a go-getter URL: scheme, host, and path
)

// getURL retrieves the content from the specified URL using Hashicorp's go-getter.
// URLs with a // subdirectory are fetched as a directory and the file is read from it,
// anything else is fetched as a single file. Temporary files are removed before returning.
func getURL(ctx context.Context, url string) ([]byte, error) {
	if url == "" {
		return nil, ErrGetTaskFile
	}

	tmpDir, err := os.MkdirTemp("", "mptask-getter-*")
	if err != nil {
		return nil, errors.Join(ErrGetTaskFile, err)
	}

	defer os.RemoveAll(tmpDir) //nolint:errcheck

	wd, err := os.Getwd()
	if err != nil {
		return nil, errors.Join(ErrGetTaskFile, err)
	}

	cli := getter.Client{
		DisableSymlinks: true,
	}

	req := &getter.Request{
		Src:     url,
		Dst:     filepath.Join(tmpDir, "g"),
		Pwd:     wd,
		GetMode: getter.ModeDir,
	}

	var fileName string
	// If it's not a local file URL, we need to download the directory and read the file from there
	// https://github.com/hashicorp/go-getter/issues/98
	if ok, err := getter.Detect(req, &getter.FileGetter{}); !ok || err != nil {
		if err != nil {
			return nil, errors.Join(ErrGetTaskFile, err)
		}

		var newURL string

		newURL, fileName = splitFileNameFromGetterURL(url)

		switch {
		case newURL != "" && fileName != "":
			req.Src = newURL
		default:
			fileName = path.Base(fileNameOf(url))
			if fileName == "" || fileName == "." || fileName == "/" {
				return nil, fmt.Errorf("%w: invalid URL format: %s", ErrGetTaskFile, url)
			}

			req.GetMode = getter.ModeFile
			req.Dst = filepath.Join(tmpDir, fileName)
		}
	}

	if fileName == "" {
		req.Src = filepath.Dir(url)
		fileName = filepath.Base(url)
	}

	res, err := cli.Get(ctx, req)
	if err != nil {
		return nil, errors.Join(ErrGetTaskFile, err)
	}

	p := res.Dst
	if req.GetMode == getter.ModeDir {
		p = filepath.Join(res.Dst, fileName)
	}

	bytes, err := os.ReadFile(p)
	if err != nil {
		return nil, errors.Join(ErrGetTaskFile, err)
	}

	return bytes, nil
}

// splitFileNameFromGetterURL splits the URL into the directory and file name.
// It returns the new getter URL without the file name and the file name itself.
// It will append any ref query parameter to the new URL if it exists.
func splitFileNameFromGetterURL(url string) (string, string) {
	var ref string

	parts := strings.Split(url, goGetterPathSeparator)
	if len(parts) < minimumGetterParts {
		return "", ""
	}

	last := parts[len(parts)-1]
	if before, after, ok := strings.Cut(last, goGetterRefSeparator); ok {
		ref = after
		last = before
	}

	if filepath.Clean(last) == filepath.Dir(last) {
		return "", ""
	}

	fileName := path.Base(last)
	parts[len(parts)-1] = path.Dir(last)

	if parts[len(parts)-1] == "." {
		parts = parts[:len(parts)-1]
	}

	newURL := strings.Join(parts, goGetterPathSeparator)

	if ref != "" {
		newURL += goGetterRefSeparator + ref
	}

	return newURL, fileName
}
