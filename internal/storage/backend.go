// Package storage persists settings namespaces and selects a backend from
// configuration.
package storage

import (
	"context"
	"os"

	"github.com/cristianoliveira/roomprefs/internal/storage/namespace"
)

// File permission constants
const (
	// FileModeDir is the permission for directories (rwxr-xr-x)
	FileModeDir os.FileMode = 0755
	// FileModeFile is the permission for data files (rw-r--r--)
	FileModeFile os.FileMode = 0644
)

// DefaultProfile is the namespace used when no profile is selected.
const DefaultProfile = namespace.Default

// ErrInvalidProfile is returned for profile names that are not valid
// namespaces.
var ErrInvalidProfile = namespace.ErrInvalidProfile

// Backend stores string-encoded settings in per-profile namespaces.
type Backend interface {
	// Load returns every key stored for profile. An unknown profile yields
	// an empty map.
	Load(ctx context.Context, profile string) (map[string]string, error)
	// Store writes one key.
	Store(ctx context.Context, profile, key, value string) error
	// Delete removes one key. Deleting a missing key is not an error.
	Delete(ctx context.Context, profile, key string) error
	// Profiles lists the namespaces holding at least one key, sorted.
	Profiles(ctx context.Context) ([]string, error)
	// Close releases the backend's resources.
	Close() error
}

// ResolveProfile maps an empty profile to DefaultProfile and validates it.
func ResolveProfile(profile string) (string, error) {
	return namespace.Resolve(profile)
}
