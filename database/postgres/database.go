package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/sagarc03/filewriter"
)

type database struct {
	pool   *pgxpool.Pool
	tables filewriter.Tables
	repo   *Repo
}

// Connect establishes a connection to PostgreSQL. Invalid table names are
// rejected.
func Connect(ctx context.Context, dsn string, tables filewriter.Tables) (*database, error) {
	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		return nil, fmt.Errorf("connect postgres: %w", err)
	}

	repo, err := NewRepo(pool, tables)
	if err != nil {
		pool.Close()
		return nil, fmt.Errorf("connect postgres: %w", err)
	}

	return &database{
		pool:   pool,
		tables: tables,
		repo:   repo,
	}, nil
}

// Ping verifies the database connection is alive.
func (d *database) Ping(ctx context.Context) error {
	return d.pool.Ping(ctx)
}

// Migrate creates the tag table and its indexes if they do not exist.
func (d *database) Migrate(ctx context.Context) error {
	if err := createTagsTable(ctx, d.pool, d.tables.Tags); err != nil {
		return fmt.Errorf("migrate: %w", err)
	}
	return nil
}

// Validate checks that the database schema matches expected structure.
func (d *database) Validate(ctx context.Context) error {
	return ValidateSchema(ctx, d.pool, d.tables)
}

// GetRepo returns the TagRepo for database operations.
func (d *database) GetRepo() filewriter.TagRepo {
	return d.repo
}

// Close closes the database connection pool.
func (d *database) Close() error {
	d.pool.Close()
	return nil
}
