// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package store persists formatted citations to a local SQLite database.
package store

import (
	"context"
	"crypto/sha256"
	"database/sql"
	"encoding/hex"
	"fmt"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/pdiddy/citescholar/pkg/types"
)

// DefaultPath is the database file used when none is configured.
const DefaultPath = "citations.db"

// Store manages the citations SQLite database.
type Store struct {
	db   *sql.DB
	path string
}

// Open opens or creates the SQLite database at cfg.Path and ensures the
// citations table exists.
func Open(cfg types.StoreConfig) (*Store, error) {
	path := cfg.Path
	if path == "" {
		path = DefaultPath
	}

	db, err := sql.Open("sqlite3", path+"?_journal_mode=WAL")
	if err != nil {
		return nil, fmt.Errorf("opening database %s: %w", path, err)
	}

	s := &Store{db: db, path: path}
	if err := s.createSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}
	return s, nil
}

// Close releases the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// Path returns the database file this store writes to.
func (s *Store) Path() string {
	return s.path
}

func (s *Store) createSchema() error {
	_, err := s.db.Exec(`CREATE TABLE IF NOT EXISTS citations (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		title TEXT NOT NULL,
		style TEXT NOT NULL,
		citation TEXT NOT NULL,
		citation_hash TEXT NOT NULL UNIQUE,
		created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
	)`)
	if err != nil {
		return fmt.Errorf("executing schema statement: %w", err)
	}
	return nil
}

// Hash returns the dedup key for a citation: the hex SHA-256 of the
// title concatenated with the citation text.
func Hash(title, citation string) string {
	sum := sha256.Sum256([]byte(title + citation))
	return hex.EncodeToString(sum[:])
}

// Insert adds one citation row and reports whether a row was added.
// A citation whose hash is already present is skipped, not an error.
func (s *Store) Insert(ctx context.Context, title, style, citation string) (bool, error) {
	res, err := s.db.ExecContext(ctx,
		`INSERT OR IGNORE INTO citations (title, style, citation, citation_hash)
		 VALUES (?, ?, ?, ?)`,
		title, style, citation, Hash(title, citation),
	)
	if err != nil {
		return false, fmt.Errorf("inserting citation: %w", err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("checking insert result: %w", err)
	}
	return n > 0, nil
}

// Citation is one saved row from the citations table.
type Citation struct {
	ID        int64     `json:"id" yaml:"id"`
	Title     string    `json:"title" yaml:"title"`
	Style     string    `json:"style" yaml:"style"`
	Citation  string    `json:"citation" yaml:"citation"`
	CreatedAt time.Time `json:"created_at" yaml:"created_at"`
}

// List returns saved citations, newest first. A limit of zero or less
// returns all rows.
func (s *Store) List(ctx context.Context, limit int) ([]Citation, error) {
	if limit <= 0 {
		limit = -1 // SQLite: no limit
	}

	rows, err := s.db.QueryContext(ctx,
		`SELECT id, title, style, citation, created_at
		 FROM citations ORDER BY id DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("querying citations: %w", err)
	}
	defer rows.Close()

	var citations []Citation
	for rows.Next() {
		var c Citation
		if err := rows.Scan(&c.ID, &c.Title, &c.Style, &c.Citation, &c.CreatedAt); err != nil {
			return nil, fmt.Errorf("scanning row: %w", err)
		}
		citations = append(citations, c)
	}
	return citations, rows.Err()
}

// Count returns the number of saved citations.
func (s *Store) Count(ctx context.Context) (int, error) {
	var n int
	if err := s.db.QueryRowContext(ctx, `SELECT count(*) FROM citations`).Scan(&n); err != nil {
		return 0, fmt.Errorf("counting citations: %w", err)
	}
	return n, nil
}
