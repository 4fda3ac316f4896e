package main

import (
	"errors"
	"strings"

	"github.com/cristianoliveira/roomprefs/internal/config"
	"github.com/cristianoliveira/roomprefs/internal/hooks"
	"github.com/cristianoliveira/roomprefs/internal/logging"
	"github.com/cristianoliveira/roomprefs/internal/settings"
	"github.com/cristianoliveira/roomprefs/internal/storage"
)

// session is the backend and store a command works on.
type session struct {
	Backend     storage.Backend
	BackendName string
	Store       *settings.Store
	Hooks       *hooks.Runner
}

// Close waits for async hooks and closes the backend.
func (s *session) Close() error {
	if s.Hooks != nil {
		s.Hooks.Shutdown()
	}
	if s.Backend == nil {
		return nil
	}
	return s.Backend.Close()
}

// sessionOpener opens the store selected by configuration and flags.
type sessionOpener interface {
	Open() (*session, error)
}

// configSessions opens sessions from the loaded configuration.
type configSessions struct{}

func (configSessions) Open() (*session, error) {
	backend, err := storage.NewFromConfig()
	if err != nil {
		return nil, err
	}

	runner := hooks.New(hooks.OptionsFromConfig())
	store, err := settings.Initialize(backend, config.Get("default_profile", storage.DefaultProfile),
		settings.WithLogger(logging.GetGlobal()),
		settings.WithHook(runner),
	)
	if err != nil {
		return nil, errors.Join(err, backend.Close())
	}

	return &session{
		Backend:     backend,
		BackendName: strings.ToLower(config.Get("store_backend", storage.BackendTOML)),
		Store:       store,
		Hooks:       runner,
	}, nil
}

var defaultSessions sessionOpener = configSessions{}

// withSession opens a session, runs fn and closes the session, joining
// the close error into the result.
func withSession(opener sessionOpener, fn func(*session) error) (err error) {
	s, err := opener.Open()
	if err != nil {
		return err
	}
	defer func() {
		err = errors.Join(err, s.Close())
	}()
	return fn(s)
}
