package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/sagarc03/filewriter"

	_ "modernc.org/sqlite" // SQLite driver
)

// database provides SQLite database operations.
type database struct {
	db     *sql.DB
	tables filewriter.Tables
	repo   *Repo
}

// Connect opens a SQLite database. Invalid table names are rejected.
//
// The pool is limited to one connection: every connection to ":memory:" is a
// separate database, and SQLite serialises writers anyway.
func Connect(ctx context.Context, dsn string, tables filewriter.Tables) (*database, error) {
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("connect sqlite: %w", err)
	}
	db.SetMaxOpenConns(1)

	repo, err := NewRepo(db, tables)
	if err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("connect sqlite: %w", err)
	}

	return &database{
		db:     db,
		tables: tables,
		repo:   repo,
	}, nil
}

// Ping verifies the database connection is alive.
func (d *database) Ping(ctx context.Context) error {
	return d.db.PingContext(ctx)
}

// Migrate creates the tag table and its indexes if they do not exist.
func (d *database) Migrate(ctx context.Context) error {
	if err := Migrate(ctx, d.db, d.tables); err != nil {
		return fmt.Errorf("migrate: %w", err)
	}
	return nil
}

// Validate checks that the database schema matches expected structure.
func (d *database) Validate(ctx context.Context) error {
	return ValidateSchema(ctx, d.db, d.tables)
}

// GetRepo returns the TagRepo for database operations.
func (d *database) GetRepo() filewriter.TagRepo {
	return d.repo
}

// Close closes the database connection.
func (d *database) Close() error {
	return d.db.Close()
}
