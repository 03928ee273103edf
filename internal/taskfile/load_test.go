// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package taskfile

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/prashantv/gostub"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func memFs(t *testing.T, files map[string]string) {
	t.Helper()

	fs := afero.NewMemMapFs()
	for name, content := range files {
		require.NoError(t, afero.WriteFile(fs, name, []byte(content), 0o644))
	}

	stubs := gostub.Stub(&FsFactory, func() afero.Fs { return fs })
	t.Cleanup(stubs.Reset)
}

func TestLoad_Discovery(t *testing.T) {
	dir := filepath.FromSlash("/work")

	t.Run("built-in when nothing found", func(t *testing.T) {
		memFs(t, nil)

		f, err := Load(context.Background(), "", dir)
		require.NoError(t, err)
		assert.Equal(t, DefaultSource, f.Source)
		assert.Equal(t, []string{"deps", "lint", "run"}, f.Names())
	})

	t.Run("yaml wins over yml and hcl", func(t *testing.T) {
		memFs(t, map[string]string{
			filepath.Join(dir, "mptask.yaml"): "tasks:\n  - name: from-yaml\n    steps:\n      - command: ls\n",
			filepath.Join(dir, "mptask.yml"):  "tasks:\n  - name: from-yml\n    steps:\n      - command: ls\n",
			filepath.Join(dir, "mptask.hcl"):  `task "from-hcl" {}`,
		})

		f, err := Load(context.Background(), "", dir)
		require.NoError(t, err)
		assert.Equal(t, []string{"from-yaml"}, f.Names())
		assert.Equal(t, filepath.Join(dir, "mptask.yaml"), f.Source)
	})

	t.Run("hcl", func(t *testing.T) {
		memFs(t, map[string]string{
			filepath.Join(dir, "mptask.hcl"): `task "from-hcl" {
  step "s" {
    command = "ls"
  }
}`,
		})

		f, err := Load(context.Background(), "", dir)
		require.NoError(t, err)
		assert.Equal(t, []string{"from-hcl"}, f.Names())
	})

	t.Run("parse errors are returned", func(t *testing.T) {
		memFs(t, map[string]string{filepath.Join(dir, "mptask.yml"): "tasks: ["})

		_, err := Load(context.Background(), "", dir)
		require.ErrorIs(t, err, ErrParse)
	})
}

func TestLoad_Location(t *testing.T) {
	memFs(t, map[string]string{
		filepath.FromSlash("/elsewhere/racing.yaml"): "tasks:\n  - name: race\n    steps:\n      - command: ls\n",
		filepath.FromSlash("/elsewhere/racing.txt"):  "tasks: []",
	})

	f, err := Load(context.Background(), filepath.FromSlash("/elsewhere/racing.yaml"), "/work")
	require.NoError(t, err)
	assert.Equal(t, []string{"race"}, f.Names())

	_, err = Load(context.Background(), filepath.FromSlash("/elsewhere/racing.txt"), "/work")
	require.ErrorIs(t, err, ErrUnsupportedFormat)
}

func TestGetURL_Empty(t *testing.T) {
	_, err := getURL(context.Background(), "")
	require.ErrorIs(t, err, ErrGetTaskFile)
}

func TestGetURL_Unreachable(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := getURL(ctx, "git::http://notexist.invalid/repo//mptask.yaml")
	require.ErrorIs(t, err, ErrGetTaskFile)
}

func TestSplitFileNameFromGetterURL(t *testing.T) {
	tests := []struct {
		url      string
		wantURL  string
		wantFile string
	}{
		{
			url:      "git::https://github.com/org/repo//tasks/mptask.yaml?ref=v1",
			wantURL:  "git::https://github.com/org/repo//tasks?ref=v1",
			wantFile: "mptask.yaml",
		},
		{
			url:      "git::https://github.com/org/repo//mptask.hcl",
			wantURL:  "git::https://github.com/org/repo",
			wantFile: "mptask.hcl",
		},
		{url: "https://example.com/mptask.yaml"},
		{url: "git::https://github.com/org/repo//"},
	}

	for _, tt := range tests {
		t.Run(tt.url, func(t *testing.T) {
			gotURL, gotFile := splitFileNameFromGetterURL(tt.url)
			assert.Equal(t, tt.wantURL, gotURL)
			assert.Equal(t, tt.wantFile, gotFile)
		})
	}
}

func TestFileNameOf(t *testing.T) {
	assert.Equal(t, "https://example.com/mptask.yaml", fileNameOf("https://example.com/mptask.yaml?archive=false"))
	assert.Equal(t, "https://github.com/org/repo//mptask.hcl", fileNameOf("git::https://github.com/org/repo//mptask.hcl?ref=main"))
	assert.Equal(t, "./mptask.yml", fileNameOf("./mptask.yml"))
}
