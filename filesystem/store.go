// Package filesystem provides a local directory backend for filewriter.
// A bucket maps to a subdirectory of the root; objects are flat files inside
// it. Writes are atomic (temp file then rename) and produce SHA256 etags.
package filesystem

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"path"
	"slices"
	"strings"

	"github.com/google/uuid"
	"github.com/sagarc03/filewriter"
)

// tmpPrefix starts with a character filewriter.IsValidFilename rejects, so
// temp files never shadow a stored object.
const tmpPrefix = "~tmp-"

// Store provides file system storage operations for a single bucket.
type Store struct {
	root   *os.Root
	bucket string
}

// NewFileStorage creates a new Store keeping objects under root/bucket.
// The root provides sandboxed file operations preventing path traversal.
func NewFileStorage(root *os.Root, bucket string) *Store {
	return &Store{root: root, bucket: bucket}
}

func (s *Store) key(k string) string {
	return path.Join(s.bucket, k)
}

// EnsureBucket creates the bucket directory if it does not exist.
func (s *Store) EnsureBucket(ctx context.Context) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}

	info, err := s.root.Stat(s.bucket)
	if err == nil {
		if !info.IsDir() {
			return false, fmt.Errorf("ensure bucket %s: not a directory", s.bucket)
		}
		return false, nil
	}
	if !errors.Is(err, os.ErrNotExist) {
		return false, fmt.Errorf("ensure bucket %s: %w", s.bucket, err)
	}

	if err := s.root.Mkdir(s.bucket, 0o755); err != nil {
		return false, fmt.Errorf("ensure bucket %s: %w", s.bucket, err)
	}

	return true, nil
}

// Get opens a file for reading. Returns filewriter.ErrNotFound if the file does not exist.
func (s *Store) Get(ctx context.Context, key string) (io.ReadCloser, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	f, err := s.root.Open(s.key(key))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, filewriter.ErrNotFound
		}
		return nil, fmt.Errorf("failed to open file: %w", err)
	}

	return f, nil
}

type ctxReader struct {
	ctx context.Context
	r   io.Reader
}

func (r *ctxReader) Read(p []byte) (n int, err error) {
	if err := r.ctx.Err(); err != nil {
		return 0, err
	}
	return r.r.Read(p)
}

// Put atomically writes content under key using a temp file and rename.
// The bucket directory must already exist.
func (s *Store) Put(ctx context.Context, key string, content io.Reader) (filewriter.SaveResult, error) {
	if ctxErr := ctx.Err(); ctxErr != nil {
		return filewriter.SaveResult{}, ctxErr
	}

	tmpFile := s.key(tmpFileName())
	t, createErr := s.root.Create(tmpFile)
	if createErr != nil {
		return filewriter.SaveResult{}, fmt.Errorf("could not open temp file: %w", createErr)
	}

	success := false
	defer func() {
		if closeErr := t.Close(); closeErr != nil {
			slog.Warn("failed to close tmp file", "err", closeErr)
		}
		if !success {
			if rmErr := s.root.Remove(tmpFile); rmErr != nil {
				slog.Warn("failed to remove tmp file", "err", rmErr)
			}
		}
	}()

	h := sha256.New()
	w := io.MultiWriter(h, t)

	n, err := io.Copy(w, &ctxReader{ctx: ctx, r: content})
	if err != nil {
		return filewriter.SaveResult{}, fmt.Errorf("could not copy file contents: %w", err)
	}

	if err := t.Sync(); err != nil {
		return filewriter.SaveResult{}, fmt.Errorf("could not sync written file: %w", err)
	}

	if renameErr := s.root.Rename(tmpFile, s.key(key)); renameErr != nil {
		return filewriter.SaveResult{}, fmt.Errorf("failed to rename file: %w", renameErr)
	}

	success = true

	return filewriter.SaveResult{BytesWritten: n, Etag: hex.EncodeToString(h.Sum(nil))}, nil
}

// Delete removes a file. Returns filewriter.ErrNotFound if the file does not exist.
func (s *Store) Delete(ctx context.Context, key string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	err := s.root.Remove(s.key(key))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return filewriter.ErrNotFound
		}
		return fmt.Errorf("could not delete file: %w", err)
	}
	return nil
}

// List returns the regular files directly inside the bucket directory,
// sorted by name. In-flight temp files and subdirectories are skipped.
func (s *Store) List(ctx context.Context) ([]filewriter.ObjectEntry, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	dirEntries, err := fs.ReadDir(s.root.FS(), s.bucket)
	if err != nil {
		return nil, fmt.Errorf("failed to list files: %w", err)
	}

	entries := make([]filewriter.ObjectEntry, 0, len(dirEntries))
	for _, entry := range dirEntries {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		if entry.IsDir() || strings.HasPrefix(entry.Name(), tmpPrefix) {
			continue
		}

		info, err := entry.Info()
		if err != nil {
			return nil, fmt.Errorf("failed to list files: %w", err)
		}

		etag, err := s.etag(entry.Name())
		if err != nil {
			return nil, fmt.Errorf("failed to list files: %w", err)
		}

		entries = append(entries, filewriter.ObjectEntry{
			Key:          entry.Name(),
			Size:         info.Size(),
			ETag:         etag,
			LastModified: info.ModTime().UTC(),
		})
	}

	slices.SortFunc(entries, func(a, b filewriter.ObjectEntry) int {
		return strings.Compare(a.Key, b.Key)
	})

	return entries, nil
}

func (s *Store) etag(name string) (string, error) {
	f, err := s.root.Open(s.key(name))
	if err != nil {
		return "", err
	}

	h := sha256.New()
	_, copyErr := io.Copy(h, f)

	if closeErr := f.Close(); closeErr != nil {
		slog.Warn("failed to close file", "path", name, "err", closeErr)
	}

	if copyErr != nil {
		return "", copyErr
	}

	return hex.EncodeToString(h.Sum(nil)), nil
}

func tmpFileName() string {
	return fmt.Sprintf("%s%s", tmpPrefix, uuid.New().String())
}
