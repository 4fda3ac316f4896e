package settings

import (
	"encoding/json"
	"testing"

	"github.com/cristianoliveira/roomprefs/internal/storage/memory"
	"github.com/pelletier/go-toml/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func TestDefaultSnapshotMatchesFreshStore(t *testing.T) {
	s := newTestStore(t, memory.New())

	want := DefaultSnapshot()
	want.State.Profile = "default"
	assert.Equal(t, want, s.Snapshot())
	assert.NoError(t, want.Validate())
}

func TestSnapshotBindsEveryField(t *testing.T) {
	var snap Snapshot
	seen := make(map[string]bool)
	for _, b := range snap.bindings() {
		assert.False(t, seen[b.key], "duplicate binding %s", b.key)
		seen[b.key] = true
	}
	for _, f := range Fields() {
		assert.True(t, seen[f.Key], "no binding for %s", f.Key)
	}
}

func TestApplyCopiesBetweenProfiles(t *testing.T) {
	backend := memory.New()
	src := newTestStore(t, backend)
	for key, v := range sampleValues() {
		require.NoError(t, src.Set(key, v))
	}

	dst, err := New(backend, "copy", WithPlatformTheme(noPlatformTheme))
	require.NoError(t, err)
	require.NoError(t, dst.Apply(src.Snapshot()))

	want := src.Snapshot()
	want.State.Profile = "copy"
	assert.Equal(t, want, dst.Snapshot())
}

func TestApplyRejectsInvalidSnapshot(t *testing.T) {
	backend := memory.New()
	s := newTestStore(t, backend)

	snap := DefaultSnapshot()
	snap.Appearance.FontSize = 100
	snap.Voip.ScreenShareFrameRate = 0
	snap.Appearance.Theme = "sepia"
	snap.Timeline.Markdown = false

	err := s.Apply(snap)
	require.ErrorIs(t, err, ErrInvalidValue)
	assert.Contains(t, err.Error(), "FontSize")
	assert.Contains(t, err.Error(), "ScreenShareFrameRate")
	assert.Contains(t, err.Error(), "Theme")
	assert.True(t, s.Markdown(), "nothing is applied when validation fails")
	assert.Zero(t, backend.Writes())
}

func TestRedactedMasksAccessToken(t *testing.T) {
	s := newTestStore(t, memory.New())
	require.NoError(t, s.SetAccessToken("syt_secret"))
	require.NoError(t, s.SetUserID("@alice:example.org"))

	snap := s.Snapshot()
	redacted := snap.Redacted()
	assert.Equal(t, "********", redacted.Auth.AccessToken)
	assert.Equal(t, "@alice:example.org", redacted.Auth.UserID)
	assert.Equal(t, "syt_secret", snap.Auth.AccessToken, "original is untouched")
}

func TestSnapshotEncodings(t *testing.T) {
	snap := DefaultSnapshot()
	snap.State.Presence = PresenceOnline
	snap.Sidebar.HiddenTags = []string{"m.lowpriority"}

	t.Run("toml", func(t *testing.T) {
		data, err := toml.Marshal(snap)
		require.NoError(t, err)
		assert.Regexp(t, `presence = ['"]online['"]`, string(data))

		var back Snapshot
		require.NoError(t, toml.Unmarshal(data, &back))
		assert.Equal(t, PresenceOnline, back.State.Presence)
		assert.Equal(t, snap.Sidebar.HiddenTags, back.Sidebar.HiddenTags)
	})

	t.Run("json", func(t *testing.T) {
		data, err := json.Marshal(snap)
		require.NoError(t, err)
		assert.Contains(t, string(data), `"presence":"online"`)

		var back Snapshot
		require.NoError(t, json.Unmarshal(data, &back))
		assert.Equal(t, PresenceOnline, back.State.Presence)
	})

	t.Run("yaml", func(t *testing.T) {
		data, err := yaml.Marshal(snap)
		require.NoError(t, err)
		assert.Contains(t, string(data), "presence: online")

		var back Snapshot
		require.NoError(t, yaml.Unmarshal(data, &back))
		assert.Equal(t, PresenceOnline, back.State.Presence)
		assert.Equal(t, 10.0, back.Appearance.FontSize)
	})
}
