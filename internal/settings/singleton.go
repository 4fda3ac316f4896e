package settings

import (
	"sync"

	"github.com/cristianoliveira/roomprefs/internal/storage"
)

var (
	instance   *Store
	instanceMu sync.RWMutex
)

// Initialize creates the process-wide Store. Calling it again replaces the
// instance, which is how the active profile is switched.
func Initialize(backend storage.Backend, profile string, opts ...Option) (*Store, error) {
	s, err := New(backend, profile, opts...)
	if err != nil {
		return nil, err
	}
	instanceMu.Lock()
	instance = s
	instanceMu.Unlock()
	return s, nil
}

// Instance returns the process-wide Store, or nil before Initialize.
func Instance() *Store {
	instanceMu.RLock()
	defer instanceMu.RUnlock()
	return instance
}
