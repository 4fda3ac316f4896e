package sqlite_test

import (
	"context"
	"database/sql"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/cristianoliveira/roomprefs/internal/storage"
	"github.com/cristianoliveira/roomprefs/internal/storage/sqlite"
	"github.com/cristianoliveira/roomprefs/internal/storage/storagetest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newBackend(t *testing.T) *sqlite.Backend {
	t.Helper()
	b, err := sqlite.New(filepath.Join(t.TempDir(), "nested", "settings.db"))
	require.NoError(t, err)
	return b
}

func TestBackendContract(t *testing.T) {
	storagetest.Run(t, func(t *testing.T) storage.Backend {
		return newBackend(t)
	})
}

func TestPersistsAcrossReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "settings.db")
	ctx := context.Background()

	b, err := sqlite.New(path)
	require.NoError(t, err)
	require.NoError(t, b.Store(ctx, "default", "user/theme", "dark"))
	require.NoError(t, b.Close())

	reopened, err := sqlite.New(path)
	require.NoError(t, err)
	defer reopened.Close()
	got, err := reopened.Load(ctx, "default")
	require.NoError(t, err)
	assert.Equal(t, map[string]string{"user/theme": "dark"}, got)
}

func TestUpdatedAtAdvancesOnUpsert(t *testing.T) {
	b := newBackend(t)
	defer b.Close()
	ctx := context.Background()

	require.NoError(t, b.Store(ctx, "default", "user/theme", "dark"))
	first, err := b.UpdatedAt(ctx, "default", "user/theme")
	require.NoError(t, err)
	assert.WithinDuration(t, time.Now(), first, time.Minute)

	time.Sleep(2 * time.Millisecond)
	require.NoError(t, b.Store(ctx, "default", "user/theme", "light"))
	second, err := b.UpdatedAt(ctx, "default", "user/theme")
	require.NoError(t, err)
	assert.True(t, second.After(first))

	_, err = b.UpdatedAt(ctx, "default", "missing")
	assert.True(t, errors.Is(err, sql.ErrNoRows))
}

func TestNewRejectsEmptyPath(t *testing.T) {
	_, err := sqlite.New(" ")
	assert.Error(t, err)
}

func TestCloseIsNilSafe(t *testing.T) {
	var b *sqlite.Backend
	assert.NoError(t, b.Close())
}
