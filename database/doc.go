// Package database provides a unified interface for connecting to tag backends.
//
// The package supports PostgreSQL and SQLite and handles connection management,
// table creation and schema validation.
//
// # Supported Backends
//
//   - PostgreSQL: pgx connection pool
//   - SQLite: modernc.org/sqlite through database/sql, for development and single-node deployments
//
// # Usage
//
//	cfg := database.Config{
//	    Type:   "sqlite",
//	    DSN:    "filewriter.db",
//	    Tables: filewriter.Tables{Tags: "file_tags"},
//	}
//
//	db, err := database.Open(ctx, cfg)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer db.Close()
//
//	repo := db.GetRepo()
//
// Open pings the backend, creates the table and its indexes if they do not
// exist, and validates the resulting schema. Connect only opens the
// connection.
package database
