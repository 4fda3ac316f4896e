package main

import (
	"testing"

	"github.com/cristianoliveira/roomprefs/internal/settings"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestShowFormats(t *testing.T) {
	sessions := newMemorySessions()
	require.NoError(t, sessions.store(t).SetTheme(settings.ThemeDark))
	require.NoError(t, sessions.store(t).SetAccessToken("syt_secret"))

	tests := []struct {
		format string
		want   []string
	}{
		{format: "json", want: []string{`"appearance": {`, `"theme": "dark"`, `"presence": "automatic"`}},
		{format: "toml", want: []string{"[appearance]", "theme = "}},
		{format: "yaml", want: []string{"appearance:", "theme: dark"}},
	}
	for _, tt := range tests {
		t.Run(tt.format, func(t *testing.T) {
			out, err := execute(t, NewShowCmd(sessions), "--format", tt.format)
			require.NoError(t, err)
			for _, want := range tt.want {
				assert.Contains(t, out, want)
			}
			assert.NotContains(t, out, "syt_secret")
			assert.Contains(t, out, "********")
		})
	}
	assert.Equal(t, sessions.opened, sessions.closed, "every session is closed")
}

func TestShowRejectsUnknownFormat(t *testing.T) {
	sessions := newMemorySessions()
	_, err := execute(t, NewShowCmd(sessions), "--format", "xml")
	assert.ErrorContains(t, err, "unsupported format")
	assert.Zero(t, sessions.opened)
}

func TestGet(t *testing.T) {
	sessions := newMemorySessions()
	store := sessions.store(t)
	require.NoError(t, store.SetHiddenTags([]string{"a", "b"}))
	require.NoError(t, store.SetAccessToken("syt_secret"))

	tests := []struct {
		args []string
		want string
	}{
		{args: []string{settings.KeyFontSize}, want: "10\n"},
		{args: []string{settings.KeyHiddenTags}, want: "[\"a\",\"b\"]\n"},
		{args: []string{settings.KeyHasNotifications}, want: "true\n"},
		{args: []string{settings.KeyAccessToken}, want: "********\n"},
		{args: []string{settings.KeyAccessToken, "--reveal"}, want: "syt_secret\n"},
	}
	for _, tt := range tests {
		out, err := execute(t, NewGetCmd(sessions), tt.args...)
		require.NoError(t, err, tt.args)
		assert.Equal(t, tt.want, out, tt.args)
	}

	_, err := execute(t, NewGetCmd(sessions), "user/nope")
	assert.ErrorIs(t, err, settings.ErrUnknownKey)
}

func TestSet(t *testing.T) {
	sessions := newMemorySessions()
	output := captureColors(t)

	_, err := execute(t, NewSetCmd(sessions), settings.KeyFontSize, "12.5")
	require.NoError(t, err)
	assert.Equal(t, 12.5, sessions.store(t).FontSize())
	assert.Contains(t, output.String(), "user/font_size = 12.5")

	_, err = execute(t, NewSetCmd(sessions), settings.KeyHiddenPins, "room-a, room-b")
	require.NoError(t, err)
	assert.Equal(t, []string{"room-a", "room-b"}, sessions.store(t).HiddenPins())

	_, err = execute(t, NewSetCmd(sessions), settings.KeyPresence, "offline")
	require.NoError(t, err)
	assert.Equal(t, settings.PresenceOffline, sessions.store(t).Presence())
}

func TestSetRejectsBadInput(t *testing.T) {
	sessions := newMemorySessions()

	_, err := execute(t, NewSetCmd(sessions), settings.KeyFontSize, "huge")
	assert.ErrorIs(t, err, settings.ErrInvalidValue)

	_, err = execute(t, NewSetCmd(sessions), settings.KeyHasNotifications, "false")
	assert.ErrorIs(t, err, settings.ErrReadOnly)

	_, err = execute(t, NewSetCmd(sessions), settings.KeyFontSize)
	assert.Error(t, err, "value argument is required")
	assert.Equal(t, 10.0, sessions.store(t).FontSize())
}

func TestKeys(t *testing.T) {
	out, err := execute(t, NewKeysCmd())
	require.NoError(t, err)
	for _, f := range settings.Fields() {
		assert.Contains(t, out, f.Key)
	}
	assert.Contains(t, out, settings.KeyHasNotifications)
	assert.Contains(t, out, "[6..40]")

	out, err = execute(t, NewKeysCmd(), "--prefix", "auth/")
	require.NoError(t, err)
	assert.Contains(t, out, settings.KeyAccessToken)
	assert.NotContains(t, out, settings.KeyTheme)
	assert.NotContains(t, out, settings.KeyHasNotifications)
}

func TestProfilesMarksActiveProfile(t *testing.T) {
	sessions := newMemorySessions()
	sessions.profile = "work"
	require.NoError(t, sessions.store(t).SetMarkdown(false))
	sessions.profile = "home"
	require.NoError(t, sessions.store(t).SetMarkdown(false))

	sessions.profile = "laptop"
	out, err := execute(t, NewProfilesCmd(sessions))
	require.NoError(t, err)
	assert.Equal(t, "  home\n* laptop\n  work\n", out)
}
