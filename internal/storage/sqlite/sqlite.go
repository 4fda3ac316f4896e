// Package sqlite provides a SQLite-backed settings backend.
package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/cristianoliveira/roomprefs/internal/storage/namespace"
	_ "modernc.org/sqlite"
)

const schemaSQL = `
CREATE TABLE IF NOT EXISTS settings (
	profile    TEXT NOT NULL,
	key        TEXT NOT NULL,
	value      TEXT NOT NULL,
	updated_at TEXT NOT NULL,
	PRIMARY KEY (profile, key)
);
`

const (
	upsertSQL = `INSERT INTO settings (profile, key, value, updated_at) VALUES (?, ?, ?, ?)
ON CONFLICT(profile, key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at`
	loadSQL     = `SELECT key, value FROM settings WHERE profile = ?`
	deleteSQL   = `DELETE FROM settings WHERE profile = ? AND key = ?`
	profilesSQL = `SELECT DISTINCT profile FROM settings ORDER BY profile`
)

// Backend stores settings in a single table keyed by (profile, key).
type Backend struct {
	db *sql.DB
}

// New opens or creates the database at dbPath.
func New(dbPath string) (*Backend, error) {
	if strings.TrimSpace(dbPath) == "" {
		return nil, fmt.Errorf("sqlite storage: db path cannot be empty")
	}

	if err := os.MkdirAll(filepath.Dir(dbPath), 0o755); err != nil {
		return nil, fmt.Errorf("sqlite storage: create db directory: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("sqlite storage: open db: %w", err)
	}

	// one connection so the busy_timeout pragma covers every statement
	db.SetMaxOpenConns(1)

	b := &Backend{db: db}
	if err := b.init(); err != nil {
		_ = db.Close()
		return nil, err
	}
	return b, nil
}

// Close closes the underlying SQLite connection.
func (b *Backend) Close() error {
	if b == nil || b.db == nil {
		return nil
	}
	return b.db.Close()
}

func (b *Backend) init() error {
	if _, err := b.db.Exec("PRAGMA busy_timeout = 5000"); err != nil {
		return fmt.Errorf("sqlite storage: set busy timeout: %w", err)
	}

	if _, err := b.db.Exec(schemaSQL); err != nil {
		return fmt.Errorf("sqlite storage: create schema: %w", err)
	}

	return nil
}

func (b *Backend) Load(ctx context.Context, profile string) (map[string]string, error) {
	if err := namespace.Validate(profile); err != nil {
		return nil, err
	}
	rows, err := b.db.QueryContext(ctx, loadSQL, profile)
	if err != nil {
		return nil, fmt.Errorf("sqlite storage: load %s: %w", profile, err)
	}
	defer rows.Close()

	out := make(map[string]string)
	for rows.Next() {
		var key, value string
		if err := rows.Scan(&key, &value); err != nil {
			return nil, fmt.Errorf("sqlite storage: scan %s: %w", profile, err)
		}
		out[key] = value
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("sqlite storage: load %s: %w", profile, err)
	}
	return out, nil
}

func (b *Backend) Store(ctx context.Context, profile, key, value string) error {
	if err := namespace.Validate(profile); err != nil {
		return err
	}
	if _, err := b.db.ExecContext(ctx, upsertSQL, profile, key, value, utcNow()); err != nil {
		return fmt.Errorf("sqlite storage: store %s/%s: %w", profile, key, err)
	}
	return nil
}

func (b *Backend) Delete(ctx context.Context, profile, key string) error {
	if err := namespace.Validate(profile); err != nil {
		return err
	}
	if _, err := b.db.ExecContext(ctx, deleteSQL, profile, key); err != nil {
		return fmt.Errorf("sqlite storage: delete %s/%s: %w", profile, key, err)
	}
	return nil
}

func (b *Backend) Profiles(ctx context.Context) ([]string, error) {
	rows, err := b.db.QueryContext(ctx, profilesSQL)
	if err != nil {
		return nil, fmt.Errorf("sqlite storage: list profiles: %w", err)
	}
	defer rows.Close()

	var names []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, fmt.Errorf("sqlite storage: scan profile: %w", err)
		}
		names = append(names, name)
	}
	return names, rows.Err()
}

// UpdatedAt returns when key was last written, for diagnostics.
func (b *Backend) UpdatedAt(ctx context.Context, profile, key string) (time.Time, error) {
	var raw string
	err := b.db.QueryRowContext(ctx, `SELECT updated_at FROM settings WHERE profile = ? AND key = ?`, profile, key).Scan(&raw)
	if err != nil {
		return time.Time{}, fmt.Errorf("sqlite storage: updated_at %s/%s: %w", profile, key, err)
	}
	return time.Parse(time.RFC3339Nano, raw)
}

func utcNow() string {
	return time.Now().UTC().Format(time.RFC3339Nano)
}
