// Package snapstore is the SQLite persistence layer for captured snapshots.
// It stores raw markup keyed by label so comparison runs can reference a
// pre-agreed before/after pair. Analysis results are never persisted — every
// comparison is computed fresh from two stored documents.
package snapstore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/hazyhaar/domdrift/dbopen"
)

// ErrNotFound is returned when no snapshot matches the requested id or label.
var ErrNotFound = errors.New("snapshot not found")

// Store is the snapshot database handle.
type Store struct {
	DB *sql.DB
}

// Open opens (or creates) the snapshot database at path and applies the
// schema.
func Open(path string) (*Store, error) {
	db, err := dbopen.Open(path, dbopen.WithMkdirAll(), dbopen.WithSchema(Schema))
	if err != nil {
		return nil, fmt.Errorf("snapstore: %w", err)
	}
	return &Store{DB: db}, nil
}

// Close closes the database.
func (s *Store) Close() error {
	return s.DB.Close()
}

// Put inserts a snapshot.
func (s *Store) Put(ctx context.Context, snap Snapshot) error {
	_, err := s.DB.ExecContext(ctx, `
		INSERT INTO snapshots (id, label, url, html, html_hash, fingerprint, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		snap.ID, snap.Label, snap.URL, snap.HTML, snap.HTMLHash, snap.Fingerprint, snap.CreatedAt)
	if err != nil {
		return fmt.Errorf("snapstore: put %s: %w", snap.ID, err)
	}
	return nil
}

// GetByID returns the snapshot with the given id, including its HTML.
func (s *Store) GetByID(ctx context.Context, id string) (Snapshot, error) {
	row := s.DB.QueryRowContext(ctx, `
		SELECT id, label, url, html, html_hash, fingerprint, created_at
		FROM snapshots WHERE id = ?`, id)
	return scanSnapshot(row)
}

// GetByLabel returns the most recent snapshot stored under label.
func (s *Store) GetByLabel(ctx context.Context, label string) (Snapshot, error) {
	row := s.DB.QueryRowContext(ctx, `
		SELECT id, label, url, html, html_hash, fingerprint, created_at
		FROM snapshots WHERE label = ?
		ORDER BY created_at DESC LIMIT 1`, label)
	return scanSnapshot(row)
}

// List returns snapshot metadata (no HTML), most recent first.
func (s *Store) List(ctx context.Context) ([]Snapshot, error) {
	rows, err := s.DB.QueryContext(ctx, `
		SELECT id, label, url, html_hash, fingerprint, created_at
		FROM snapshots ORDER BY created_at DESC`)
	if err != nil {
		return nil, fmt.Errorf("snapstore: list: %w", err)
	}
	defer rows.Close()

	var out []Snapshot
	for rows.Next() {
		var snap Snapshot
		if err := rows.Scan(&snap.ID, &snap.Label, &snap.URL, &snap.HTMLHash, &snap.Fingerprint, &snap.CreatedAt); err != nil {
			return nil, fmt.Errorf("snapstore: scan: %w", err)
		}
		out = append(out, snap)
	}
	return out, rows.Err()
}

// Delete removes a snapshot by id.
func (s *Store) Delete(ctx context.Context, id string) error {
	res, err := s.DB.ExecContext(ctx, `DELETE FROM snapshots WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("snapstore: delete %s: %w", id, err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("snapstore: delete %s: %w", id, ErrNotFound)
	}
	return nil
}

func scanSnapshot(row *sql.Row) (Snapshot, error) {
	var snap Snapshot
	err := row.Scan(&snap.ID, &snap.Label, &snap.URL, &snap.HTML, &snap.HTMLHash, &snap.Fingerprint, &snap.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return Snapshot{}, ErrNotFound
	}
	if err != nil {
		return Snapshot{}, fmt.Errorf("snapstore: scan: %w", err)
	}
	return snap, nil
}
