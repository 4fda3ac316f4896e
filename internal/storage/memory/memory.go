// Package memory implements an in-process settings backend.
package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/cristianoliveira/roomprefs/internal/storage/namespace"
)

// Backend keeps every namespace in maps guarded by a mutex.
type Backend struct {
	mu       sync.RWMutex
	profiles map[string]map[string]string
	failErr  error
	writes   int
}

// New returns an empty Backend.
func New() *Backend {
	return &Backend{profiles: make(map[string]map[string]string)}
}

// FailWrites makes every subsequent Store and Delete return err.
// A nil err restores normal behaviour.
func (b *Backend) FailWrites(err error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.failErr = err
}

// Writes returns how many Store and Delete calls succeeded.
func (b *Backend) Writes() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.writes
}

func (b *Backend) Load(ctx context.Context, profile string) (map[string]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if err := namespace.Validate(profile); err != nil {
		return nil, err
	}
	b.mu.RLock()
	defer b.mu.RUnlock()
	out := make(map[string]string, len(b.profiles[profile]))
	for k, v := range b.profiles[profile] {
		out[k] = v
	}
	return out, nil
}

func (b *Backend) Store(ctx context.Context, profile, key, value string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := namespace.Validate(profile); err != nil {
		return err
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.failErr != nil {
		return b.failErr
	}
	if b.profiles[profile] == nil {
		b.profiles[profile] = make(map[string]string)
	}
	b.profiles[profile][key] = value
	b.writes++
	return nil
}

func (b *Backend) Delete(ctx context.Context, profile, key string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := namespace.Validate(profile); err != nil {
		return err
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.failErr != nil {
		return b.failErr
	}
	delete(b.profiles[profile], key)
	if len(b.profiles[profile]) == 0 {
		delete(b.profiles, profile)
	}
	b.writes++
	return nil
}

func (b *Backend) Profiles(ctx context.Context) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	b.mu.RLock()
	defer b.mu.RUnlock()
	names := make([]string, 0, len(b.profiles))
	for name := range b.profiles {
		names = append(names, name)
	}
	sort.Strings(names)
	return names, nil
}

func (b *Backend) Close() error { return nil }
