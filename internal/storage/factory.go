package storage

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/cristianoliveira/roomprefs/internal/colors"
	"github.com/cristianoliveira/roomprefs/internal/config"
	"github.com/cristianoliveira/roomprefs/internal/storage/memory"
	"github.com/cristianoliveira/roomprefs/internal/storage/redisstore"
	"github.com/cristianoliveira/roomprefs/internal/storage/sqlite"
	"github.com/cristianoliveira/roomprefs/internal/storage/tomlfile"
)

const (
	// BackendTOML selects one TOML file per profile.
	BackendTOML = "toml"
	// BackendSQLite selects SQLite-backed storage.
	BackendSQLite = "sqlite"
	// BackendRedis selects Redis hashes.
	BackendRedis = "redis"
	// BackendDual selects dual-write TOML plus a secondary backend.
	BackendDual = "dual"
	// BackendMemory keeps settings for the lifetime of the process only.
	BackendMemory = "memory"

	profilesDirName = "profiles"
	settingsDBName  = "settings.db"
	seedTimeout     = 30 * time.Second
)

var (
	_ Backend = (*tomlfile.Backend)(nil)
	_ Backend = (*sqlite.Backend)(nil)
	_ Backend = (*redisstore.Backend)(nil)
	_ Backend = (*memory.Backend)(nil)
)

// Names lists the accepted backend names.
func Names() []string {
	return []string{BackendTOML, BackendSQLite, BackendRedis, BackendDual, BackendMemory}
}

// NewFromConfig creates a storage backend based on configuration.
func NewFromConfig() (Backend, error) {
	config.Load()
	return NewForBackend(config.Get("store_backend", BackendTOML))
}

// NewForBackend creates a storage backend for the provided backend name.
// Backends that cannot be opened fall back to TOML with a warning.
func NewForBackend(backend string) (Backend, error) {
	switch strings.ToLower(strings.TrimSpace(backend)) {
	case "", BackendTOML:
		return newTOML()
	case BackendSQLite, BackendRedis:
		b, err := openNamed(backend)
		if err != nil {
			colors.Warning(fmt.Sprintf("failed to initialize %s backend, falling back to toml: %v", backend, err))
			return newTOML()
		}
		return b, nil
	case BackendDual:
		return newDual()
	case BackendMemory:
		return memory.New(), nil
	default:
		colors.Warning(fmt.Sprintf("unknown storage backend '%s', falling back to toml", backend))
		return newTOML()
	}
}

// Open creates the named backend without any fallback. Migration uses it
// so a typo never silently copies into the wrong store.
func Open(backend string) (Backend, error) {
	switch name := strings.ToLower(strings.TrimSpace(backend)); name {
	case BackendTOML:
		return newTOML()
	case BackendSQLite, BackendRedis:
		return openNamed(name)
	case BackendMemory:
		return memory.New(), nil
	default:
		return nil, fmt.Errorf("unsupported backend %q (want one of toml, sqlite, redis, memory)", backend)
	}
}

func openNamed(name string) (Backend, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case BackendSQLite:
		return sqlite.New(SQLitePath())
	case BackendRedis:
		return redisstore.New(redisstore.Options{
			Addr:     config.Get("redis_addr", "localhost:6379"),
			Password: config.Get("redis_password", ""),
			DB:       config.GetInt("redis_db", 0),
			Prefix:   config.Get("redis_prefix", redisstore.DefaultPrefix),
		})
	default:
		return nil, fmt.Errorf("unsupported backend %q", name)
	}
}

func newTOML() (Backend, error) {
	return tomlfile.New(ProfilesDir())
}

func newDual() (Backend, error) {
	primary, err := newTOML()
	if err != nil {
		return nil, err
	}

	secondaryName := config.Get("dual_secondary", BackendSQLite)
	secondary, err := openNamed(secondaryName)
	if err != nil {
		colors.Warning(fmt.Sprintf("failed to initialize %s backend for dual writer, using toml only: %v", secondaryName, err))
		return primary, nil
	}

	if err := seedSecondary(primary, secondary); err != nil {
		colors.Warning(fmt.Sprintf("dual writer: seeding %s from toml failed: %v", secondaryName, err))
	}

	dual, err := NewDual(primary, secondary, DualOptions{ReadFrom: ReadPrimary})
	if err != nil {
		_ = secondary.Close()
		colors.Warning(fmt.Sprintf("failed to initialize dual writer, using toml only: %v", err))
		return primary, nil
	}
	return dual, nil
}

// seedSecondary copies existing profiles into an empty secondary backend.
func seedSecondary(primary, secondary Backend) error {
	ctx, cancel := context.WithTimeout(context.Background(), seedTimeout)
	defer cancel()

	existing, err := secondary.Profiles(ctx)
	if err != nil {
		return err
	}
	if len(existing) > 0 {
		return nil
	}
	stats, err := Migrate(ctx, MigrationOptions{From: primary, To: secondary})
	if err != nil {
		return err
	}
	if stats.Copied > 0 {
		colors.Info(fmt.Sprintf("Seeded secondary backend: %d profiles, %d keys", stats.Profiles, stats.Copied))
	}
	return nil
}

// ProfilesDir returns the directory holding TOML profile files.
func ProfilesDir() string {
	return filepath.Join(config.Get("config_dir", ""), profilesDirName)
}

// SQLitePath returns the SQLite database path.
func SQLitePath() string {
	if path := config.Get("sqlite_path", ""); path != "" {
		return path
	}
	return filepath.Join(config.Get("state_dir", ""), settingsDBName)
}
