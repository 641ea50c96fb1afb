// Package store persists the local profile, the site-mapping override and the autofill
// toggle in a single SQLite key-value table.
package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	_ "modernc.org/sqlite"

	"github.com/hyperfill/formfill/internal/types"
)

// Keys under which values are persisted.
const (
	KeyProfile         = "profile"
	KeySiteMappings    = "siteMappings"
	KeyAutofillEnabled = "autofillEnabled"
)

// DefaultPath is the default database location.
const DefaultPath = "~/.hyperfill/hyperfill.db"

// ErrNotFound is returned by Get when no value is stored under the key.
var ErrNotFound = errors.New("key not found")

// Store is a JSON-valued key-value store backed by SQLite.
type Store struct {
	db *sql.DB
}

// Open opens (creating if needed) the database at path. Pass ":memory:" for an in-memory store.
func Open(path string) (*Store, error) {
	if path == "" {
		path = DefaultPath
	}
	path = expandPath(path)

	if path != ":memory:" {
		if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
			return nil, fmt.Errorf("creating store directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("opening store: %w", err)
	}
	if path == ":memory:" {
		// each connection would otherwise see its own empty database
		db.SetMaxOpenConns(1)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("pinging store: %w", err)
	}

	pragmas := []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA busy_timeout=5000",
	}
	for _, p := range pragmas {
		if _, err := db.Exec(p); err != nil {
			db.Close()
			return nil, fmt.Errorf("setting pragma %q: %w", p, err)
		}
	}

	if _, err := db.Exec(`CREATE TABLE IF NOT EXISTS kv (
		key        TEXT PRIMARY KEY,
		value      TEXT NOT NULL,
		updated_at TEXT NOT NULL DEFAULT (datetime('now'))
	)`); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating kv table: %w", err)
	}

	return &Store{db: db}, nil
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}

// Get decodes the value stored under key into dest.
func (s *Store) Get(ctx context.Context, key string, dest any) error {
	var raw string
	err := s.db.QueryRowContext(ctx, `SELECT value FROM kv WHERE key = ?`, key).Scan(&raw)
	if errors.Is(err, sql.ErrNoRows) {
		return ErrNotFound
	}
	if err != nil {
		return fmt.Errorf("reading %s: %w", key, err)
	}
	if err := json.Unmarshal([]byte(raw), dest); err != nil {
		return fmt.Errorf("decoding %s: %w", key, err)
	}
	return nil
}

// Set stores value under key as JSON, replacing any previous value.
func (s *Store) Set(ctx context.Context, key string, value any) error {
	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("encoding %s: %w", key, err)
	}
	_, err = s.db.ExecContext(ctx,
		`INSERT INTO kv (key, value) VALUES (?, ?)
		 ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = datetime('now')`,
		key, string(data),
	)
	if err != nil {
		return fmt.Errorf("writing %s: %w", key, err)
	}
	return nil
}

// Remove deletes key. Removing a missing key is not an error.
func (s *Store) Remove(ctx context.Context, key string) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM kv WHERE key = ?`, key); err != nil {
		return fmt.Errorf("removing %s: %w", key, err)
	}
	return nil
}

// SaveProfile replaces the stored profile.
func (s *Store) SaveProfile(ctx context.Context, p *types.Profile) error {
	return s.Set(ctx, KeyProfile, p)
}

// LoadProfile returns the stored profile, or nil when none has been imported.
func (s *Store) LoadProfile(ctx context.Context) (*types.Profile, error) {
	var p types.Profile
	if err := s.Get(ctx, KeyProfile, &p); err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &p, nil
}

// ClearProfile removes the stored profile.
func (s *Store) ClearProfile(ctx context.Context) error {
	return s.Remove(ctx, KeyProfile)
}

// SiteMappings returns the stored site-mapping override. An empty result means the
// bundled dataset applies.
func (s *Store) SiteMappings(ctx context.Context) ([]types.SiteDefinition, error) {
	var sites []types.SiteDefinition
	if err := s.Get(ctx, KeySiteMappings, &sites); err != nil {
		if errors.Is(err, ErrNotFound) {
			return []types.SiteDefinition{}, nil
		}
		return nil, err
	}
	if sites == nil {
		sites = []types.SiteDefinition{}
	}
	return sites, nil
}

// SetSiteMappings replaces the stored site-mapping override.
func (s *Store) SetSiteMappings(ctx context.Context, sites []types.SiteDefinition) error {
	if sites == nil {
		sites = []types.SiteDefinition{}
	}
	return s.Set(ctx, KeySiteMappings, sites)
}

// ResetSiteMappings drops the override so the bundled dataset applies again.
func (s *Store) ResetSiteMappings(ctx context.Context) error {
	return s.Remove(ctx, KeySiteMappings)
}

// AutofillEnabled reports the autofill toggle, which defaults to on.
func (s *Store) AutofillEnabled(ctx context.Context) (bool, error) {
	var enabled bool
	if err := s.Get(ctx, KeyAutofillEnabled, &enabled); err != nil {
		if errors.Is(err, ErrNotFound) {
			return true, nil
		}
		return false, err
	}
	return enabled, nil
}

// SetAutofillEnabled stores the autofill toggle.
func (s *Store) SetAutofillEnabled(ctx context.Context, enabled bool) error {
	return s.Set(ctx, KeyAutofillEnabled, enabled)
}

func expandPath(p string) string {
	if strings.HasPrefix(p, "~/") {
		if home, err := os.UserHomeDir(); err == nil {
			return filepath.Join(home, p[2:])
		}
	}
	return p
}
