package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/pelletier/go-toml/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupConfigTest(t *testing.T) string {
	t.Helper()

	tmpDir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(tmpDir, "config"))
	t.Setenv("XDG_STATE_HOME", filepath.Join(tmpDir, "state"))
	t.Setenv("HOME", tmpDir)
	ResetOverrides()
	t.Cleanup(ResetOverrides)

	return tmpDir
}

func writeConfigFile(t *testing.T, dir string, values map[string]interface{}) string {
	t.Helper()

	require.NoError(t, os.MkdirAll(dir, FileModeDir))
	data, err := toml.Marshal(values)
	require.NoError(t, err)
	path := filepath.Join(dir, "config.toml")
	require.NoError(t, os.WriteFile(path, data, FileModeFile))
	return path
}

func TestLoadAndGet(t *testing.T) {
	setupConfigTest(t)
	Load()

	got := Get("missing", "default")
	require.Equal(t, "default", got)
}

func TestDefaults(t *testing.T) {
	tmpDir := setupConfigTest(t)
	Load()

	assert.Equal(t, filepath.Join(tmpDir, "config", "roomprefs"), Get("config_dir", ""))
	assert.Equal(t, filepath.Join(tmpDir, "state", "roomprefs"), Get("state_dir", ""))
	assert.Equal(t, filepath.Join(tmpDir, "config", "roomprefs", "hooks"), Get("hooks_dir", ""))
	assert.Equal(t, "toml", Get("store_backend", ""))
	assert.Equal(t, filepath.Join(tmpDir, "state", "roomprefs", "settings.db"), Get("sqlite_path", ""))
	assert.Equal(t, "default", Get("default_profile", ""))
	assert.Equal(t, 10, GetInt("max_hooks", 0))
	assert.True(t, GetBool("hooks_enabled", false))
	assert.False(t, GetBool("logging_enabled", true))
}

func TestConfigLoadingPrecedence(t *testing.T) {
	tmpDir := setupConfigTest(t)
	configDir := filepath.Join(tmpDir, "config", "roomprefs")
	writeConfigFile(t, configDir, map[string]interface{}{
		"store_backend":   "sqlite",
		"default_profile": "work",
		"max_hooks":       3,
	})

	t.Setenv("ROOMPREFS_DEFAULT_PROFILE", "home")
	Load()

	assert.Equal(t, "sqlite", Get("store_backend", ""), "file overrides default")
	assert.Equal(t, "home", Get("default_profile", ""), "env overrides file")
	assert.Equal(t, 3, GetInt("max_hooks", 0))
}

func TestExplicitConfigPath(t *testing.T) {
	tmpDir := setupConfigTest(t)
	path := writeConfigFile(t, filepath.Join(tmpDir, "elsewhere"), map[string]interface{}{
		"store_backend": "redis",
	})
	t.Setenv("ROOMPREFS_CONFIG_PATH", path)

	Load()

	assert.Equal(t, "redis", Get("store_backend", ""))
}

func TestInvalidConfigValuesFallBackToDefaults(t *testing.T) {
	tests := []struct {
		name  string
		env   string
		value string
		key   string
		want  string
	}{
		{name: "unknown backend", env: "ROOMPREFS_STORE_BACKEND", value: "postgres", key: "store_backend", want: "toml"},
		{name: "negative max hooks", env: "ROOMPREFS_MAX_HOOKS", value: "-2", key: "max_hooks", want: "10"},
		{name: "bad bool", env: "ROOMPREFS_HOOKS_ENABLED", value: "maybe", key: "hooks_enabled", want: "true"},
		{name: "bad profile", env: "ROOMPREFS_DEFAULT_PROFILE", value: "../etc", key: "default_profile", want: "default"},
		{name: "backend is lowercased", env: "ROOMPREFS_STORE_BACKEND", value: "SQLite", key: "store_backend", want: "sqlite"},
		{name: "bool is normalized", env: "ROOMPREFS_HOOKS_ASYNC", value: "yes", key: "hooks_async", want: "true"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			setupConfigTest(t)
			t.Setenv(tt.env, tt.value)
			Load()
			assert.Equal(t, tt.want, Get(tt.key, ""))
		})
	}
}

func TestHooksDirFollowsConfigDir(t *testing.T) {
	tmpDir := setupConfigTest(t)
	custom := filepath.Join(tmpDir, "custom")
	t.Setenv("ROOMPREFS_CONFIG_DIR", custom)

	Load()

	assert.Equal(t, filepath.Join(custom, "hooks"), Get("hooks_dir", ""))
}

func TestSetOverridesSurviveLoad(t *testing.T) {
	setupConfigTest(t)
	t.Setenv("ROOMPREFS_STORE_BACKEND", "sqlite")

	Set("store_backend", "memory")
	Load()

	assert.Equal(t, "memory", Get("store_backend", ""))
}

func TestConfigSampleCreation(t *testing.T) {
	tmpDir := setupConfigTest(t)
	Load()

	samplePath := filepath.Join(tmpDir, "config", "roomprefs", "config.toml")
	data, err := os.ReadFile(samplePath)
	require.NoError(t, err)
	assert.Contains(t, string(data), "# roomprefs configuration")

	var parsed map[string]interface{}
	require.NoError(t, toml.Unmarshal(data, &parsed))
	assert.Equal(t, "toml", parsed["store_backend"])
}

func TestGetIntGetBoolFallbacks(t *testing.T) {
	setupConfigTest(t)
	t.Setenv("ROOMPREFS_SOMETHING", "abc")
	Load()

	assert.Equal(t, 7, GetInt("something", 7))
	assert.True(t, GetBool("something", true))
	assert.Equal(t, 7, GetInt("absent", 7))
}
