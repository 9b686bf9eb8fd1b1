// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package history records completed research runs in a local SQLite
// database and serves them back for listing, lookup, and export.
package history

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3"

	"github.com/pdiddy/web-research/pkg/types"
)

const (
	dbFile            = "history.db"
	defaultDir        = ".web-research"
	defaultMaxResults = 20
)

// ErrNotFound is returned by Get when no run has the requested ID.
var ErrNotFound = errors.New("run not found")

// Entry is one recorded run.
type Entry struct {
	ID        string    `json:"id" yaml:"id"`
	CreatedAt time.Time `json:"created_at" yaml:"created_at"`

	// Degraded is true when the run fell back after a provider failure.
	Degraded bool `json:"degraded" yaml:"degraded"`

	types.QueryOutcome `yaml:",inline"`
}

// Store manages the history SQLite database.
type Store struct {
	db         *sql.DB
	dir        string
	maxResults int
	now        func() time.Time
}

// NewStore opens or creates dir/history.db and its schema.
func NewStore(cfg types.HistoryConfig) (*Store, error) {
	dir := cfg.Dir
	if dir == "" {
		dir = defaultDir
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("creating history directory: %w", err)
	}

	dbPath := filepath.Join(dir, dbFile)
	db, err := sql.Open("sqlite3", dbPath+"?_journal_mode=WAL&_foreign_keys=on")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	maxResults := cfg.MaxResults
	if maxResults <= 0 {
		maxResults = defaultMaxResults
	}

	s := &Store{
		db:         db,
		dir:        dir,
		maxResults: maxResults,
		now:        time.Now,
	}

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

// Path returns the database file path.
func (s *Store) Path() string {
	return filepath.Join(s.dir, dbFile)
}

func (s *Store) createSchema() error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS runs (
			seq INTEGER PRIMARY KEY AUTOINCREMENT,
			id TEXT NOT NULL UNIQUE,
			created_at TEXT NOT NULL,
			query TEXT NOT NULL,
			query_folded TEXT NOT NULL,
			answer TEXT NOT NULL,
			degraded INTEGER NOT NULL DEFAULT 0
		)`,
		`CREATE TABLE IF NOT EXISTS results (
			run_id TEXT NOT NULL REFERENCES runs(id) ON DELETE CASCADE,
			position INTEGER NOT NULL,
			title TEXT,
			url TEXT,
			content TEXT,
			score REAL,
			published_date TEXT,
			PRIMARY KEY (run_id, position)
		)`,
		`CREATE INDEX IF NOT EXISTS idx_runs_created_at ON runs(created_at)`,
	}

	for _, stmt := range statements {
		if _, err := s.db.Exec(stmt); err != nil {
			return fmt.Errorf("executing schema statement: %w", err)
		}
	}
	return nil
}

// Record stores o as a new run and returns the recorded entry.
func (s *Store) Record(ctx context.Context, o types.QueryOutcome) (Entry, error) {
	e := Entry{
		ID:           uuid.NewString(),
		CreatedAt:    s.now().UTC(),
		Degraded:     o.Degraded(),
		QueryOutcome: o,
	}
	if e.SearchResults == nil {
		e.SearchResults = []types.SearchResult{}
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return Entry{}, fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx,
		`INSERT INTO runs (id, created_at, query, query_folded, answer, degraded) VALUES (?, ?, ?, ?, ?, ?)`,
		e.ID, e.CreatedAt.Format(time.RFC3339Nano), e.Query, foldQuery(e.Query), e.Answer, e.Degraded,
	)
	if err != nil {
		return Entry{}, fmt.Errorf("inserting run: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx,
		`INSERT INTO results (run_id, position, title, url, content, score, published_date)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return Entry{}, fmt.Errorf("preparing insert: %w", err)
	}
	defer stmt.Close()

	for i, r := range e.SearchResults {
		if _, err := stmt.ExecContext(ctx,
			e.ID, i, r.Title, r.URL, r.Content, r.Score, r.PublishedDate,
		); err != nil {
			return Entry{}, fmt.Errorf("inserting result %d: %w", i, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return Entry{}, fmt.Errorf("committing run: %w", err)
	}
	return e, nil
}
