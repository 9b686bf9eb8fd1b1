// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package history

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/pdiddy/web-research/pkg/types"
)

// ListOptions holds parameters for history queries.
type ListOptions struct {
	// Query keeps runs whose query contains this text (case-insensitive).
	Query string

	// Limit caps the number of runs. Zero uses the store default.
	Limit int
}

// List returns recorded runs, newest first, with their results in the
// order the provider returned them.
func (s *Store) List(ctx context.Context, opts ListOptions) ([]Entry, error) {
	limit := opts.Limit
	if limit <= 0 {
		limit = s.maxResults
	}

	var (
		qb   strings.Builder
		args []any
	)
	qb.WriteString(`SELECT id, created_at, query, answer, degraded FROM runs WHERE 1=1`)
	if opts.Query != "" {
		qb.WriteString(` AND query_folded LIKE ? ESCAPE '\'`)
		args = append(args, "%"+escapeLike(foldQuery(opts.Query))+"%")
	}
	qb.WriteString(` ORDER BY seq DESC LIMIT ?`)
	args = append(args, limit)

	rows, err := s.db.QueryContext(ctx, qb.String(), args...)
	if err != nil {
		return nil, fmt.Errorf("querying history: %w", err)
	}

	var entries []Entry
	for rows.Next() {
		e, err := scanRun(rows)
		if err != nil {
			rows.Close()
			return nil, err
		}
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		rows.Close()
		return nil, fmt.Errorf("iterating history: %w", err)
	}
	rows.Close()

	for i := range entries {
		results, err := s.loadResults(ctx, entries[i].ID)
		if err != nil {
			return nil, err
		}
		entries[i].SearchResults = results
	}
	return entries, nil
}

// Get returns the run with the given ID, or ErrNotFound.
func (s *Store) Get(ctx context.Context, id string) (Entry, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT id, created_at, query, answer, degraded FROM runs WHERE id = ?`, id)
	e, err := scanRun(row)
	if errors.Is(err, sql.ErrNoRows) {
		return Entry{}, fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	if err != nil {
		return Entry{}, err
	}

	e.SearchResults, err = s.loadResults(ctx, id)
	if err != nil {
		return Entry{}, err
	}
	return e, nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanRun(sc scanner) (Entry, error) {
	var (
		e         Entry
		createdAt string
	)
	if err := sc.Scan(&e.ID, &createdAt, &e.Query, &e.Answer, &e.Degraded); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Entry{}, err
		}
		return Entry{}, fmt.Errorf("scanning run: %w", err)
	}
	t, err := time.Parse(time.RFC3339Nano, createdAt)
	if err != nil {
		return Entry{}, fmt.Errorf("parsing created_at for %s: %w", e.ID, err)
	}
	e.CreatedAt = t
	return e, nil
}

func (s *Store) loadResults(ctx context.Context, runID string) ([]types.SearchResult, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT title, url, content, score, published_date
		 FROM results WHERE run_id = ? ORDER BY position`, runID)
	if err != nil {
		return nil, fmt.Errorf("querying results for %s: %w", runID, err)
	}
	defer rows.Close()

	results := []types.SearchResult{}
	for rows.Next() {
		var (
			title, url, content, pubDate sql.NullString
			score                        sql.NullFloat64
		)
		if err := rows.Scan(&title, &url, &content, &score, &pubDate); err != nil {
			return nil, fmt.Errorf("scanning result: %w", err)
		}
		results = append(results, types.SearchResult{
			Title:         title.String,
			URL:           url.String,
			Content:       content.String,
			Score:         score.Float64,
			PublishedDate: pubDate.String,
		})
	}
	return results, rows.Err()
}

// foldQuery lowercases q in Go. SQLite's lower() and LIKE only fold ASCII.
func foldQuery(q string) string {
	return strings.ToLower(q)
}

// escapeLike escapes LIKE wildcards so the filter matches literally.
func escapeLike(s string) string {
	r := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return r.Replace(s)
}
