package main

import (
	"bytes"
	"testing"

	"github.com/cristianoliveira/roomprefs/internal/colors"
	"github.com/cristianoliveira/roomprefs/internal/hooks"
	"github.com/cristianoliveira/roomprefs/internal/settings"
	"github.com/cristianoliveira/roomprefs/internal/storage"
	"github.com/cristianoliveira/roomprefs/internal/storage/memory"
	"github.com/spf13/cobra"
	"github.com/stretchr/testify/require"
)

// memorySessions opens stores on a shared backend so state survives
// between commands of one test.
type memorySessions struct {
	backend storage.Backend
	name    string
	profile string
	hooks   *hooks.Runner
	opened  int
	closed  int
}

func newMemorySessions() *memorySessions {
	return &memorySessions{backend: memory.New(), name: storage.BackendMemory}
}

func (m *memorySessions) Open() (*session, error) {
	opts := []settings.Option{settings.WithPlatformTheme(func() string { return "" })}
	if m.hooks != nil {
		opts = append(opts, settings.WithHook(m.hooks))
	}
	store, err := settings.New(m.backend, m.profile, opts...)
	if err != nil {
		return nil, err
	}
	m.opened++
	return &session{
		Backend:     countingBackend{Backend: m.backend, closed: &m.closed},
		BackendName: m.name,
		Store:       store,
		Hooks:       m.hooks,
	}, nil
}

// store opens the current profile directly for assertions.
func (m *memorySessions) store(t *testing.T) *settings.Store {
	t.Helper()
	store, err := settings.New(m.backend, m.profile, settings.WithPlatformTheme(func() string { return "" }))
	require.NoError(t, err)
	return store
}

type countingBackend struct {
	storage.Backend
	closed *int
}

func (c countingBackend) Close() error {
	*c.closed++
	return nil
}

// captureColors collects console output for the duration of the test.
func captureColors(t *testing.T) *bytes.Buffer {
	t.Helper()
	var buf bytes.Buffer
	colors.SetOutput(&buf, &buf)
	t.Cleanup(func() { colors.SetOutput(nil, nil) })
	return &buf
}

func execute(t *testing.T, c *cobra.Command, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	c.SetOut(&out)
	c.SetErr(&out)
	if args == nil {
		// cobra reads os.Args when args is nil
		args = []string{}
	}
	c.SetArgs(args)
	err := c.Execute()
	return out.String(), err
}
