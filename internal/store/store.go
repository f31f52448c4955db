// Package store handles SQLite persistence of saved filter presets.
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
	"time"

	"github.com/verte-zerg/exodash/internal/filter"
	"github.com/verte-zerg/exodash/internal/model"

	_ "modernc.org/sqlite" // SQLite driver.
)

// ErrNotFound is returned when a preset does not exist.
var ErrNotFound = errors.New("preset not found")

// Store wraps SQLite access for presets.
type Store struct {
	db  *sql.DB
	now func() time.Time
}

// Open opens or creates the SQLite database and applies migrations.
func Open(path string) (*Store, error) {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	store := &Store{db: db, now: time.Now}
	if err := store.migrate(); err != nil {
		if cerr := db.Close(); cerr != nil {
			// Best-effort close on migration failure.
			_ = cerr
		}
		return nil, err
	}
	return store, nil
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) migrate() error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS presets (
			id INTEGER PRIMARY KEY,
			name TEXT NOT NULL UNIQUE,
			bins INTEGER NOT NULL,
			filters TEXT NOT NULL,
			created_at TEXT NOT NULL,
			updated_at TEXT NOT NULL
		);`,
		`CREATE INDEX IF NOT EXISTS idx_presets_updated_at ON presets(updated_at);`,
	}
	for _, stmt := range stmts {
		if _, err := s.db.Exec(stmt); err != nil {
			return err
		}
	}
	return nil
}

func validName(name string) (string, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return "", fmt.Errorf("preset name is empty")
	}
	return name, nil
}

// SavePreset stores p under p.Name, replacing any preset with that name.
// It returns the preset id.
func (s *Store) SavePreset(ctx context.Context, p model.Preset) (int64, error) {
	name, err := validName(p.Name)
	if err != nil {
		return 0, err
	}
	filters, err := json.Marshal(p.Filters)
	if err != nil {
		return 0, fmt.Errorf("encode filters: %w", err)
	}
	now := s.now().UTC().Format(time.RFC3339Nano)
	var id int64
	err = s.db.QueryRowContext(ctx,
		`INSERT INTO presets (name, bins, filters, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?)
		 ON CONFLICT(name) DO UPDATE SET
			bins = excluded.bins,
			filters = excluded.filters,
			updated_at = excluded.updated_at
		 RETURNING id`,
		name, p.Bins, string(filters), now, now,
	).Scan(&id)
	if err != nil {
		return 0, err
	}
	return id, nil
}

// LoadPreset returns the preset called name.
func (s *Store) LoadPreset(ctx context.Context, name string) (model.Preset, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT id, name, bins, filters, created_at, updated_at FROM presets WHERE name = ?`,
		strings.TrimSpace(name))
	p, err := scanPreset(row)
	if errors.Is(err, sql.ErrNoRows) {
		return model.Preset{}, fmt.Errorf("%w: %s", ErrNotFound, name)
	}
	return p, err
}

// ListPresets returns every preset ordered by name.
func (s *Store) ListPresets(ctx context.Context) ([]model.Preset, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, name, bins, filters, created_at, updated_at FROM presets ORDER BY name ASC`)
	if err != nil {
		return nil, err
	}
	defer func() {
		if cerr := rows.Close(); cerr != nil {
			// Best-effort rows close.
			_ = cerr
		}
	}()

	var presets []model.Preset
	for rows.Next() {
		p, err := scanPreset(rows)
		if err != nil {
			return nil, err
		}
		presets = append(presets, p)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return presets, nil
}

// DeletePreset removes the preset called name.
func (s *Store) DeletePreset(ctx context.Context, name string) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM presets WHERE name = ?`, strings.TrimSpace(name))
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return fmt.Errorf("%w: %s", ErrNotFound, name)
	}
	return nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanPreset(row scanner) (model.Preset, error) {
	var (
		p                    model.Preset
		filters              string
		createdAt, updatedAt string
	)
	if err := row.Scan(&p.ID, &p.Name, &p.Bins, &filters, &createdAt, &updatedAt); err != nil {
		return model.Preset{}, err
	}
	var snap filter.Snapshot
	if err := json.Unmarshal([]byte(filters), &snap); err != nil {
		return model.Preset{}, fmt.Errorf("decode preset %s: %w", p.Name, err)
	}
	p.Filters = snap
	var err error
	if p.CreatedAt, err = time.Parse(time.RFC3339Nano, createdAt); err != nil {
		return model.Preset{}, err
	}
	if p.UpdatedAt, err = time.Parse(time.RFC3339Nano, updatedAt); err != nil {
		return model.Preset{}, err
	}
	return p, nil
}
