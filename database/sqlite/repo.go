// Package sqlite implements filewriter.TagRepo using SQLite
package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/sagarc03/filewriter"
)

type Repo struct {
	db        *sql.DB
	tableName string
}

func NewRepo(db *sql.DB, tables filewriter.Tables) (*Repo, error) {
	if err := tables.Validate(); err != nil {
		return nil, fmt.Errorf("new repo: %w", err)
	}

	return &Repo{db: db, tableName: quoteIdentifier(tables.Tags)}, nil
}

// Insert adds one row per tag in order, or a single NULL-tag row when tags is empty.
// Tags are bound as one JSON array so the statement never nears SQLite's
// host parameter limit.
func (r *Repo) Insert(ctx context.Context, filename string, tags []string) error {
	now := time.Now().UTC().Format(time.RFC3339Nano)

	var (
		query string
		args  []any
	)
	if len(tags) == 0 {
		query = fmt.Sprintf( //nolint:gosec // G201: table name is validated
			`INSERT INTO %s (tag, filename, created_at) VALUES (NULL, ?, ?)`, r.tableName)
		args = []any{filename, now}
	} else {
		encoded, err := json.Marshal(tags)
		if err != nil {
			return fmt.Errorf("insert: %w", err)
		}
		query = fmt.Sprintf( //nolint:gosec // G201: table name is validated
			`INSERT INTO %s (tag, filename, created_at)
			SELECT value, ?, ? FROM json_each(?) ORDER BY key`, r.tableName)
		args = []any{filename, now, string(encoded)}
	}

	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("insert: %w", err)
	}

	return nil
}

func (r *Repo) Tags(ctx context.Context, filename string) ([]string, error) {
	query := fmt.Sprintf( //nolint:gosec // G201: table name is validated
		`SELECT tag FROM %s
		WHERE filename = ? AND tag IS NOT NULL
		ORDER BY id`, r.tableName)

	return r.queryStrings(ctx, "tags", query, filename)
}

func (r *Repo) Delete(ctx context.Context, filename string) error {
	query := fmt.Sprintf(`DELETE FROM %s WHERE filename = ?`, r.tableName) //nolint:gosec // G201: table name is validated

	if _, err := r.db.ExecContext(ctx, query, filename); err != nil {
		return fmt.Errorf("delete: %w", err)
	}

	return nil
}

func (r *Repo) Replace(ctx context.Context, filename string, tags []string) error {
	if err := r.Delete(ctx, filename); err != nil {
		return fmt.Errorf("replace: %w", err)
	}
	if err := r.Insert(ctx, filename, tags); err != nil {
		return fmt.Errorf("replace: %w", err)
	}
	return nil
}

func (r *Repo) Search(ctx context.Context, tags []string) ([]string, error) {
	if len(tags) == 0 {
		return []string{}, nil
	}

	encoded, err := json.Marshal(tags)
	if err != nil {
		return nil, fmt.Errorf("search: %w", err)
	}

	query := fmt.Sprintf( //nolint:gosec // G201: table name is validated
		`SELECT DISTINCT filename FROM %s
		WHERE tag IN (SELECT value FROM json_each(?))
		ORDER BY filename`, r.tableName)

	return r.queryStrings(ctx, "search", query, string(encoded))
}

func (r *Repo) Filenames(ctx context.Context) ([]string, error) {
	query := fmt.Sprintf(`SELECT DISTINCT filename FROM %s ORDER BY filename`, r.tableName) //nolint:gosec // G201: table name is validated

	return r.queryStrings(ctx, "filenames", query)
}

func (r *Repo) queryStrings(ctx context.Context, op, query string, args ...any) ([]string, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer func() { _ = rows.Close() }()

	out := []string{}
	for rows.Next() {
		var s string
		if err := rows.Scan(&s); err != nil {
			return nil, fmt.Errorf("%s: scan: %w", op, err)
		}
		out = append(out, s)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return out, nil
}
