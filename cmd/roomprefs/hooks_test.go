package main

import (
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/cristianoliveira/roomprefs/internal/hooks"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func runnerIn(dir string) func() *hooks.Runner {
	return func() *hooks.Runner {
		return hooks.New(hooks.Options{Dir: dir, Enabled: true, Output: io.Discard})
	}
}

func TestHooksInitAndList(t *testing.T) {
	dir := t.TempDir()
	output := captureColors(t)

	_, err := execute(t, NewHooksCmd(runnerIn(dir)), "init")
	require.NoError(t, err)
	for _, point := range hooks.Points {
		assert.DirExists(t, filepath.Join(dir, point))
		assert.Contains(t, output.String(), filepath.Join(dir, point))
	}

	script := filepath.Join(dir, hooks.PostSet, "10-notify.sh")
	require.NoError(t, os.WriteFile(script, []byte("#!/bin/sh\nexit 0\n"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, hooks.PostSet, "README"), []byte("not a hook"), 0o644))

	out, err := execute(t, NewHooksCmd(runnerIn(dir)), "list")
	require.NoError(t, err)
	assert.Equal(t, "pre-set (0):\npost-set (1):\n    "+script+"\n", out)
}

func TestHooksInitNeedsDirectory(t *testing.T) {
	captureColors(t)
	_, err := execute(t, NewHooksCmd(runnerIn("")), "init")
	assert.ErrorContains(t, err, "not configured")
}
