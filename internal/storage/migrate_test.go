package storage

import (
	"context"
	"errors"
	"testing"

	"github.com/cristianoliveira/roomprefs/internal/storage/memory"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func seed(t *testing.T, b Backend, profile string, values map[string]string) {
	t.Helper()
	for k, v := range values {
		require.NoError(t, b.Store(context.Background(), profile, k, v))
	}
}

func TestMigrateCopiesEveryProfile(t *testing.T) {
	from, to := memory.New(), memory.New()
	seed(t, from, "default", map[string]string{"user/theme": "dark", "user/font_size": "12"})
	seed(t, from, "work", map[string]string{"auth/user_id": "@me:work.example"})
	seed(t, to, "default", map[string]string{"user/theme": "dark"})
	ctx := context.Background()

	stats, err := Migrate(ctx, MigrationOptions{From: from, To: to})
	require.NoError(t, err)
	assert.Equal(t, 2, stats.Profiles)
	assert.Equal(t, 3, stats.Keys)
	assert.Equal(t, 2, stats.Copied)
	assert.Equal(t, 1, stats.Unchanged)

	work, err := to.Load(ctx, "work")
	require.NoError(t, err)
	assert.Equal(t, "@me:work.example", work["auth/user_id"])

	again, err := Migrate(ctx, MigrationOptions{From: from, To: to})
	require.NoError(t, err)
	assert.Zero(t, again.Copied, "second run is a no-op")
}

func TestMigrateDryRunWritesNothing(t *testing.T) {
	from, to := memory.New(), memory.New()
	seed(t, from, "default", map[string]string{"user/theme": "dark"})
	seed(t, to, "default", map[string]string{"user/ringtone": "Bell"})

	stats, err := Migrate(context.Background(), MigrationOptions{From: from, To: to, DryRun: true, Prune: true})
	require.NoError(t, err)
	assert.True(t, stats.DryRun)
	assert.Equal(t, 1, stats.Copied)
	assert.Equal(t, 1, stats.Removed)
	assert.Equal(t, 1, to.Writes(), "only the seed write happened")
}

func TestMigratePruneAndProfileFilter(t *testing.T) {
	from, to := memory.New(), memory.New()
	seed(t, from, "default", map[string]string{"user/theme": "dark"})
	seed(t, from, "work", map[string]string{"user/theme": "light"})
	seed(t, to, "default", map[string]string{"user/ringtone": "Bell"})
	ctx := context.Background()

	stats, err := Migrate(ctx, MigrationOptions{From: from, To: to, Profiles: []string{"default"}, Prune: true})
	require.NoError(t, err)
	assert.Equal(t, 1, stats.Profiles)
	assert.Equal(t, 1, stats.Removed)

	values, err := to.Load(ctx, "default")
	require.NoError(t, err)
	assert.Equal(t, map[string]string{"user/theme": "dark"}, values)
	names, err := to.Profiles(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"default"}, names)
}

func TestMigrateSkipsUnreadableProfiles(t *testing.T) {
	from := &mockBackend{}
	from.On("Load", mock.Anything, "broken").Return(nil, errors.New("corrupt"))
	from.On("Load", mock.Anything, "ok").Return(map[string]string{"user/theme": "dark"}, nil)
	to := memory.New()

	stats, err := Migrate(context.Background(), MigrationOptions{From: from, To: to, Profiles: []string{"broken", "ok"}})
	require.NoError(t, err)
	assert.Equal(t, 1, stats.Profiles)
	require.Len(t, stats.Skipped, 1)
	assert.Contains(t, stats.Skipped[0], "broken")
}

func TestMigrateStopsOnWriteFailure(t *testing.T) {
	from, to := memory.New(), memory.New()
	seed(t, from, "default", map[string]string{"user/theme": "dark"})
	to.FailWrites(errors.New("read-only"))

	_, err := Migrate(context.Background(), MigrationOptions{From: from, To: to})
	require.Error(t, err)
}

func TestMigrateRequiresBackends(t *testing.T) {
	_, err := Migrate(context.Background(), MigrationOptions{From: memory.New()})
	require.Error(t, err)
}
