// Package filelock provides a directory-based lock shared between processes.
package filelock

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"
)

const (
	lockTimeout = 10 * time.Second
	lockRetry   = 25 * time.Millisecond
	// staleAfter is how old a lock directory must be before it is treated
	// as left behind by a crashed process.
	staleAfter = 2 * time.Minute
)

// ErrTimeout is returned when the lock could not be acquired in time.
var ErrTimeout = errors.New("lock timeout")

// Lock represents a directory-based lock.
type Lock struct {
	dir     string
	timeout time.Duration
}

// New creates a lock at the given directory path.
func New(dir string) *Lock {
	return &Lock{dir: dir, timeout: lockTimeout}
}

// Acquire creates the lock directory, retrying until the timeout while
// another holder owns it.
func (l *Lock) Acquire() error {
	if err := os.MkdirAll(filepath.Dir(l.dir), 0755); err != nil {
		return fmt.Errorf("create lock parent: %w", err)
	}
	start := time.Now()
	for {
		err := os.Mkdir(l.dir, 0700)
		if err == nil {
			return nil
		}
		if !os.IsExist(err) {
			return fmt.Errorf("create lock directory: %w", err)
		}
		if info, statErr := os.Stat(l.dir); statErr == nil && time.Since(info.ModTime()) > staleAfter {
			_ = os.Remove(l.dir)
			continue
		}
		if time.Since(start) > l.timeout {
			return fmt.Errorf("%w: %s", ErrTimeout, l.dir)
		}
		time.Sleep(lockRetry)
	}
}

// Release releases the lock by removing the directory.
func (l *Lock) Release() error {
	return os.Remove(l.dir)
}

// WithLock executes fn while holding the lock.
func WithLock(dir string, fn func() error) error {
	lock := New(dir)
	if err := lock.Acquire(); err != nil {
		return fmt.Errorf("acquire lock: %w", err)
	}
	defer lock.Release()
	return fn()
}
