// Package postgres implements filewriter.TagRepo on PostgreSQL using pgx.
package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/sagarc03/filewriter"
)

type Repo struct {
	pool      *pgxpool.Pool
	tableName string
}

func NewRepo(pool *pgxpool.Pool, tables filewriter.Tables) (*Repo, error) {
	if err := tables.Validate(); err != nil {
		return nil, fmt.Errorf("new repo: %w", err)
	}

	return &Repo{pool: pool, tableName: pgx.Identifier{tables.Tags}.Sanitize()}, nil
}

// Insert adds one row per tag in order, or a single NULL-tag row when tags is empty.
func (r *Repo) Insert(ctx context.Context, filename string, tags []string) error {
	var err error
	if len(tags) == 0 {
		query := fmt.Sprintf(`INSERT INTO %s (tag, filename) VALUES (NULL, $1)`, r.tableName)
		_, err = r.pool.Exec(ctx, query, filename)
	} else {
		query := fmt.Sprintf(`
			INSERT INTO %s (tag, filename)
			SELECT t.tag, $2 FROM unnest($1::text[]) WITH ORDINALITY AS t(tag, ord)
			ORDER BY t.ord
		`, r.tableName)
		_, err = r.pool.Exec(ctx, query, tags, filename)
	}
	if err != nil {
		return fmt.Errorf("insert: %w", err)
	}

	return nil
}

func (r *Repo) Tags(ctx context.Context, filename string) ([]string, error) {
	query := fmt.Sprintf(`
		SELECT tag FROM %s
		WHERE filename = $1 AND tag IS NOT NULL
		ORDER BY id
	`, r.tableName)

	return r.collectStrings(ctx, "tags", query, filename)
}

func (r *Repo) Delete(ctx context.Context, filename string) error {
	query := fmt.Sprintf(`DELETE FROM %s WHERE filename = $1`, r.tableName)

	if _, err := r.pool.Exec(ctx, query, filename); err != nil {
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
	query := fmt.Sprintf(`
		SELECT DISTINCT filename FROM %s
		WHERE tag = ANY($1)
		ORDER BY filename
	`, r.tableName)

	return r.collectStrings(ctx, "search", query, tags)
}

func (r *Repo) Filenames(ctx context.Context) ([]string, error) {
	query := fmt.Sprintf(`SELECT DISTINCT filename FROM %s ORDER BY filename`, r.tableName)

	return r.collectStrings(ctx, "filenames", query)
}

func (r *Repo) collectStrings(ctx context.Context, op, query string, args ...any) ([]string, error) {
	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	out, err := pgx.CollectRows(rows, pgx.RowTo[string])
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return out, nil
}
