// Package storagetest holds the behaviour every storage backend must share.
package storagetest

import (
	"context"
	"testing"

	"github.com/cristianoliveira/roomprefs/internal/storage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Factory returns a fresh, empty backend. The suite closes it.
type Factory func(t *testing.T) storage.Backend

// Run exercises a backend against the storage.Backend contract.
func Run(t *testing.T, newBackend Factory) {
	t.Helper()

	t.Run("unknown profile loads empty", func(t *testing.T) {
		b := open(t, newBackend)
		values, err := b.Load(context.Background(), "nobody")
		require.NoError(t, err)
		assert.Empty(t, values)
	})

	t.Run("round trip", func(t *testing.T) {
		b := open(t, newBackend)
		ctx := context.Background()
		want := map[string]string{
			"user/theme":                   "dark",
			"user/timeline/max_width":      "800",
			"user/font_size":               "12.5",
			"user/window/tray":             "false",
			"user/hidden_tags":             `["m.lowpriority","u.work"]`,
			"user/collapsed_spaces":        `[["!a:x","!b:x"]]`,
			"user/ringtone":                "",
			"auth/home_server":             "https://matrix.example.org",
			"settings/scale_factor":        "1",
			"user/sidebar/room_list_width": "-1",
			"auth/device_id":               "true",
			"user/camera_frame_rate":       "30",
		}
		for k, v := range want {
			require.NoError(t, b.Store(ctx, "alice", k, v))
		}

		got, err := b.Load(ctx, "alice")
		require.NoError(t, err)
		assert.Equal(t, want, got)
	})

	t.Run("overwrite", func(t *testing.T) {
		b := open(t, newBackend)
		ctx := context.Background()
		require.NoError(t, b.Store(ctx, "alice", "user/theme", "dark"))
		require.NoError(t, b.Store(ctx, "alice", "user/theme", "light"))

		got, err := b.Load(ctx, "alice")
		require.NoError(t, err)
		assert.Equal(t, map[string]string{"user/theme": "light"}, got)
	})

	t.Run("delete", func(t *testing.T) {
		b := open(t, newBackend)
		ctx := context.Background()
		require.NoError(t, b.Store(ctx, "alice", "user/theme", "dark"))
		require.NoError(t, b.Store(ctx, "alice", "user/markdown_enabled", "false"))

		require.NoError(t, b.Delete(ctx, "alice", "user/theme"))
		require.NoError(t, b.Delete(ctx, "alice", "user/theme"), "deleting a missing key is fine")
		require.NoError(t, b.Delete(ctx, "ghost", "user/theme"), "deleting in a missing profile is fine")

		got, err := b.Load(ctx, "alice")
		require.NoError(t, err)
		assert.Equal(t, map[string]string{"user/markdown_enabled": "false"}, got)
	})

	t.Run("profiles are isolated", func(t *testing.T) {
		b := open(t, newBackend)
		ctx := context.Background()
		require.NoError(t, b.Store(ctx, "alice", "user/theme", "dark"))
		require.NoError(t, b.Store(ctx, "bob", "user/theme", "light"))
		require.NoError(t, b.Store(ctx, "bob", "auth/user_id", "@bob:example.org"))

		alice, err := b.Load(ctx, "alice")
		require.NoError(t, err)
		assert.Equal(t, map[string]string{"user/theme": "dark"}, alice)

		bob, err := b.Load(ctx, "bob")
		require.NoError(t, err)
		assert.Equal(t, map[string]string{"user/theme": "light", "auth/user_id": "@bob:example.org"}, bob)
	})

	t.Run("profiles lists namespaces with keys", func(t *testing.T) {
		b := open(t, newBackend)
		ctx := context.Background()
		require.NoError(t, b.Store(ctx, "work", "user/theme", "dark"))
		require.NoError(t, b.Store(ctx, "default", "user/theme", "light"))
		require.NoError(t, b.Store(ctx, "temp", "user/theme", "light"))

		names, err := b.Profiles(ctx)
		require.NoError(t, err)
		assert.Equal(t, []string{"default", "temp", "work"}, names)

		require.NoError(t, b.Delete(ctx, "temp", "user/theme"))
		names, err = b.Profiles(ctx)
		require.NoError(t, err)
		assert.Equal(t, []string{"default", "work"}, names)
	})

	t.Run("invalid profile names are rejected", func(t *testing.T) {
		b := open(t, newBackend)
		ctx := context.Background()
		for _, name := range []string{"../escape", "a/b", "", "with space"} {
			_, err := b.Load(ctx, name)
			assert.ErrorIs(t, err, storage.ErrInvalidProfile, "load %q", name)
			assert.ErrorIs(t, b.Store(ctx, name, "user/theme", "dark"), storage.ErrInvalidProfile, "store %q", name)
			assert.ErrorIs(t, b.Delete(ctx, name, "user/theme"), storage.ErrInvalidProfile, "delete %q", name)
		}
	})
}

func open(t *testing.T, newBackend Factory) storage.Backend {
	t.Helper()
	b := newBackend(t)
	t.Cleanup(func() { _ = b.Close() })
	return b
}
