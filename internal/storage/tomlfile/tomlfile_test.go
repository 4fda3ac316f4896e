package tomlfile_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/cristianoliveira/roomprefs/internal/storage"
	"github.com/cristianoliveira/roomprefs/internal/storage/storagetest"
	"github.com/cristianoliveira/roomprefs/internal/storage/tomlfile"
	"github.com/pelletier/go-toml/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBackendContract(t *testing.T) {
	storagetest.Run(t, func(t *testing.T) storage.Backend {
		b, err := tomlfile.New(t.TempDir())
		require.NoError(t, err)
		return b
	})
}

func TestFileLayoutUsesNestedTables(t *testing.T) {
	dir := t.TempDir()
	b, err := tomlfile.New(dir)
	require.NoError(t, err)
	ctx := context.Background()

	require.NoError(t, b.Store(ctx, "work", "user/theme", "dark"))
	require.NoError(t, b.Store(ctx, "work", "user/timeline/max_width", "800"))
	require.NoError(t, b.Store(ctx, "work", "user/window/tray", "false"))
	require.NoError(t, b.Store(ctx, "work", "user/font_size", "12.5"))
	require.NoError(t, b.Store(ctx, "work", "auth/device_id", "007"))

	data, err := os.ReadFile(filepath.Join(dir, "work.toml"))
	require.NoError(t, err)

	var tree map[string]any
	require.NoError(t, toml.Unmarshal(data, &tree))
	user := tree["user"].(map[string]any)
	assert.Equal(t, "dark", user["theme"])
	assert.Equal(t, 12.5, user["font_size"])
	assert.Equal(t, int64(800), user["timeline"].(map[string]any)["max_width"])
	assert.Equal(t, false, user["window"].(map[string]any)["tray"])
	assert.Equal(t, "007", tree["auth"].(map[string]any)["device_id"], "non-canonical numbers stay strings")
}

func TestHandEditedFileIsRead(t *testing.T) {
	dir := t.TempDir()
	content := `
[user]
theme = "dark"
font_size = 14
markdown_enabled = false

[user.timeline]
max_width = 1024
`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "default.toml"), []byte(content), 0600))

	b, err := tomlfile.New(dir)
	require.NoError(t, err)
	got, err := b.Load(context.Background(), "default")
	require.NoError(t, err)
	assert.Equal(t, map[string]string{
		"user/theme":              "dark",
		"user/font_size":          "14",
		"user/markdown_enabled":   "false",
		"user/timeline/max_width": "1024",
	}, got)
}

func TestDeletingLastKeyRemovesFile(t *testing.T) {
	dir := t.TempDir()
	b, err := tomlfile.New(dir)
	require.NoError(t, err)
	ctx := context.Background()

	require.NoError(t, b.Store(ctx, "temp", "user/timeline/buttons", "true"))
	require.NoError(t, b.Delete(ctx, "temp", "user/timeline/buttons"))

	_, err = os.Stat(b.Path("temp"))
	assert.True(t, os.IsNotExist(err))
}

func TestConflictingKeysAreRejected(t *testing.T) {
	b, err := tomlfile.New(t.TempDir())
	require.NoError(t, err)
	ctx := context.Background()

	require.NoError(t, b.Store(ctx, "default", "user/timeline/buttons", "true"))
	assert.Error(t, b.Store(ctx, "default", "user/timeline", "x"))
	assert.Error(t, b.Store(ctx, "default", "user/timeline/buttons/extra", "x"))
}

func TestCorruptFileIsAnError(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "default.toml"), []byte("not = [valid"), 0600))

	b, err := tomlfile.New(dir)
	require.NoError(t, err)
	_, err = b.Load(context.Background(), "default")
	assert.Error(t, err)
}

func TestNewRequiresDirectory(t *testing.T) {
	_, err := tomlfile.New("  ")
	assert.Error(t, err)
}
