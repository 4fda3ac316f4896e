package cmd

import (
	"path/filepath"
	"testing"

	"github.com/cristianoliveira/roomprefs/internal/config"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSetupAppliesGlobalFlags(t *testing.T) {
	tmpDir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(tmpDir, "config"))
	t.Setenv("XDG_STATE_HOME", filepath.Join(tmpDir, "state"))
	t.Setenv("HOME", tmpDir)
	config.ResetOverrides()
	t.Cleanup(func() {
		profileFlag, backendFlag = "", ""
		config.ResetOverrides()
	})

	profileFlag = "work"
	backendFlag = "memory"
	require.NoError(t, setup(RootCmd, nil))

	assert.Equal(t, "memory", config.Get("store_backend", ""))
	assert.Equal(t, "work", config.Get("default_profile", ""))
	_, err := uuid.Parse(RunID)
	assert.NoError(t, err)
}
