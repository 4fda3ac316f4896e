package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/cristianoliveira/roomprefs/internal/settings"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExportImportAcrossProfiles(t *testing.T) {
	for _, ext := range []string{"json", "toml", "yaml", "yml"} {
		t.Run(ext, func(t *testing.T) {
			sessions := newMemorySessions()
			captureColors(t)
			sessions.profile = "work"
			work := sessions.store(t)
			require.NoError(t, work.SetTheme(settings.ThemeDark))
			require.NoError(t, work.SetFontSize(13.5))
			require.NoError(t, work.SetHiddenTags([]string{"m.lowpriority"}))
			require.NoError(t, work.SetPresence(settings.PresenceUnavailable))
			require.NoError(t, work.SetCollapsedSpaces([][]string{{"!a", "!b"}}))

			path := filepath.Join(t.TempDir(), "settings."+ext)
			_, err := execute(t, NewExportCmd(sessions), path)
			require.NoError(t, err)

			sessions.profile = "laptop"
			_, err = execute(t, NewImportCmd(sessions), path)
			require.NoError(t, err)

			laptop := sessions.store(t)
			theme, err := laptop.Get(settings.KeyTheme)
			require.NoError(t, err)
			assert.Equal(t, settings.ThemeDark, theme)
			assert.Equal(t, 13.5, laptop.FontSize())
			assert.Equal(t, []string{"m.lowpriority"}, laptop.HiddenTags())
			assert.Equal(t, settings.PresenceUnavailable, laptop.Presence())
			assert.Equal(t, [][]string{{"!a", "!b"}}, laptop.CollapsedSpaces())
			assert.Equal(t, "laptop", laptop.Profile())
		})
	}
}

func TestExportMasksTokenAndImportKeepsCurrent(t *testing.T) {
	sessions := newMemorySessions()
	captureColors(t)
	require.NoError(t, sessions.store(t).SetAccessToken("syt_secret"))

	path := filepath.Join(t.TempDir(), "backup.json")
	_, err := execute(t, NewExportCmd(sessions), path)
	require.NoError(t, err)
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.NotContains(t, string(data), "syt_secret")
	assert.Contains(t, string(data), maskedSecret)

	_, err = execute(t, NewImportCmd(sessions), path)
	require.NoError(t, err)
	assert.Equal(t, "syt_secret", sessions.store(t).AccessToken())
}

func TestExportIncludeSecrets(t *testing.T) {
	sessions := newMemorySessions()
	captureColors(t)
	require.NoError(t, sessions.store(t).SetAccessToken("syt_secret"))

	path := filepath.Join(t.TempDir(), "backup.conf")
	_, err := execute(t, NewExportCmd(sessions), path, "--format", "toml", "--include-secrets")
	require.NoError(t, err)
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "syt_secret")
}

func TestImportRejectsInvalidFiles(t *testing.T) {
	dir := t.TempDir()
	outOfRange := filepath.Join(dir, "bad.json")
	require.NoError(t, os.WriteFile(outOfRange, []byte(`{"appearance":{"font_size":99}}`), 0o600))
	garbage := filepath.Join(dir, "garbage.toml")
	require.NoError(t, os.WriteFile(garbage, []byte("appearance = ["), 0o600))

	sessions := newMemorySessions()
	captureColors(t)
	require.NoError(t, sessions.store(t).SetFontSize(12))

	_, err := execute(t, NewImportCmd(sessions), outOfRange)
	assert.Error(t, err)
	_, err = execute(t, NewImportCmd(sessions), garbage)
	assert.Error(t, err)
	_, err = execute(t, NewImportCmd(sessions), filepath.Join(dir, "missing.json"))
	assert.ErrorContains(t, err, "failed to read")

	assert.Equal(t, 12.0, sessions.store(t).FontSize(), "nothing is written")
}

func TestTransferUnknownExtension(t *testing.T) {
	sessions := newMemorySessions()
	_, err := execute(t, NewExportCmd(sessions), filepath.Join(t.TempDir(), "settings.ini"))
	assert.Error(t, err)
	assert.Zero(t, sessions.opened)
}
