package filewriter

import (
	"context"
	"errors"
	"fmt"
	"io"
	"regexp"
)

// ObjectStore defines the interface for file content persistence.
// Implementations exist for S3-compatible buckets and the local filesystem.
//
// All methods accept a context for cancellation and timeout control.
type ObjectStore interface {
	// EnsureBucket checks the configured bucket exists and creates it if it
	// does not. The returned bool reports whether a bucket was created.
	EnsureBucket(ctx context.Context) (bool, error)

	// Put writes content under key, overwriting any existing object.
	Put(ctx context.Context, key string, content io.Reader) (SaveResult, error)

	// Get opens the object stored under key.
	//
	// Returns ErrNotFound if the object does not exist. The caller is
	// responsible for closing the returned reader.
	Get(ctx context.Context, key string) (io.ReadCloser, error)

	// Delete removes the object stored under key.
	//
	// Returns ErrNotFound if the object does not exist.
	Delete(ctx context.Context, key string) error

	// List returns every object in the bucket, in store order. An empty
	// bucket yields an empty, non-nil slice.
	List(ctx context.Context) ([]ObjectEntry, error)
}

// TagRepo defines the interface for tag persistence.
//
// Rows are (id, tag, filename, created_at). A file stored without tags has a
// single row whose tag is NULL; reads never return NULL tags.
type TagRepo interface {
	// Insert adds one row per tag, or a single NULL-tag row when tags is empty.
	Insert(ctx context.Context, filename string, tags []string) error

	// Tags returns the non-NULL tags for filename in insertion order.
	Tags(ctx context.Context, filename string) ([]string, error)

	// Delete removes every row for filename.
	Delete(ctx context.Context, filename string) error

	// Replace deletes every row for filename and inserts tags. The two
	// statements are not run in a transaction.
	Replace(ctx context.Context, filename string, tags []string) error

	// Search returns the distinct filenames having at least one of tags,
	// ordered by filename.
	Search(ctx context.Context, tags []string) ([]string, error)

	// Filenames returns every distinct filename present in the table.
	Filenames(ctx context.Context) ([]string, error)
}

// Tables holds configurable table names for tag storage.
type Tables struct {
	Tags string `mapstructure:"tags"`
}

var validTableNameRegex = regexp.MustCompile(`^[a-z_][a-z0-9_]*$`)

// IsValidTableName checks if a table name is valid (lowercase, alphanumeric with underscores, max 63 chars).
func IsValidTableName(name string) bool {
	return validTableNameRegex.MatchString(name) && len(name) <= 63
}

// Validate checks that all required table names are set and valid.
func (t Tables) Validate() error {
	if t.Tags == "" {
		return errors.New("validate tables: tags table name cannot be empty")
	}

	if !IsValidTableName(t.Tags) {
		return fmt.Errorf("validate tables: invalid tags table name: %s (must match ^[a-z_][a-z0-9_]*$ and be <= 63 chars)", t.Tags)
	}

	return nil
}
