package main

import (
	"context"
	"testing"

	"github.com/cristianoliveira/roomprefs/internal/settings"
	"github.com/cristianoliveira/roomprefs/internal/storage"
	"github.com/cristianoliveira/roomprefs/internal/storage/memory"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// dualSessions opens stores on a dual backend over two memory backends.
type dualSessions struct {
	primary, secondary *memory.Backend
	dual               *storage.DualBackend
}

func newDualSessions(t *testing.T) *dualSessions {
	t.Helper()
	primary, secondary := memory.New(), memory.New()
	dual, err := storage.NewDual(primary, secondary, storage.DualOptions{})
	require.NoError(t, err)
	return &dualSessions{primary: primary, secondary: secondary, dual: dual}
}

func (d *dualSessions) Open() (*session, error) {
	store, err := settings.New(d.dual, "", settings.WithPlatformTheme(func() string { return "" }))
	if err != nil {
		return nil, err
	}
	return &session{Backend: d.dual, BackendName: storage.BackendDual, Store: store}, nil
}

func TestVerifyConsistent(t *testing.T) {
	sessions := newDualSessions(t)
	captureColors(t)
	_, err := execute(t, NewSetCmd(sessions), settings.KeyTheme, "dark")
	require.NoError(t, err)

	out, err := execute(t, NewVerifyCmd(sessions))
	require.NoError(t, err)
	assert.Contains(t, out, "profile=default primary=1 secondary=1 consistent=true")
	assert.Contains(t, out, "writes=1 primary_failures=0 secondary_failures=0")
}

func TestVerifyReportsDiscrepancies(t *testing.T) {
	sessions := newDualSessions(t)
	captureColors(t)
	ctx := context.Background()
	require.NoError(t, sessions.primary.Store(ctx, "default", "user/theme", "dark"))
	require.NoError(t, sessions.secondary.Store(ctx, "default", "user/theme", "light"))
	require.NoError(t, sessions.primary.Store(ctx, "default", "user/tray", "false"))
	require.NoError(t, sessions.secondary.Store(ctx, "default", "user/markdown_enabled", "false"))

	out, err := execute(t, NewVerifyCmd(sessions))
	assert.ErrorContains(t, err, "differs between")
	assert.Contains(t, out, "consistent=false")
	assert.Contains(t, out, "missing in primary: user/markdown_enabled")
	assert.Contains(t, out, "missing in secondary: user/tray")
	assert.Contains(t, out, `differs: user/theme primary="dark" secondary="light"`)
}

func TestVerifyNeedsDualBackend(t *testing.T) {
	_, err := execute(t, NewVerifyCmd(newMemorySessions()))
	assert.ErrorContains(t, err, "current backend is memory")
}
