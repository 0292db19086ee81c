package filewriter

import (
	"context"
	"errors"
	"fmt"
	"io"
	"slices"
	"strings"
	"time"
)

// ServiceConfig holds configuration options for FileService.
type ServiceConfig struct {
	TagUpdate TagUpdatePolicy  // Policy for updates that omit tags (default: keep)
	Now       func() time.Time // Clock used for filename generation (default: time.Now)
}

// FileService implements the file operations on top of an ObjectStore and an
// optional TagRepo. A nil TagRepo disables tagging entirely.
type FileService struct {
	store     ObjectStore
	tags      TagRepo
	tagUpdate TagUpdatePolicy
	now       func() time.Time
}

func NewFileService(store ObjectStore, tags TagRepo, cfg ServiceConfig) (*FileService, error) {
	if store == nil {
		return nil, errors.New("new file service: object store is required")
	}

	policy := cfg.TagUpdate
	if policy == "" {
		policy = TagUpdateKeep
	}
	if !policy.IsValid() {
		return nil, fmt.Errorf("new file service: invalid tag update policy: %s", policy)
	}

	now := cfg.Now
	if now == nil {
		now = time.Now
	}

	return &FileService{
		store:     store,
		tags:      tags,
		tagUpdate: policy,
		now:       now,
	}, nil
}

// TagsEnabled reports whether a tag repository is configured.
func (s *FileService) TagsEnabled() bool {
	return s.tags != nil
}

// List returns every stored file. When tagging is enabled each entry carries
// its tags, fetched one file at a time.
func (s *FileService) List(ctx context.Context) ([]FileEntry, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("list files: %w", err)
	}

	objects, err := s.store.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list files: %w", err)
	}

	entries := make([]FileEntry, 0, len(objects))
	for _, obj := range objects {
		entry := FileEntry{Filename: obj.Key}
		if s.tags != nil {
			tags, tagErr := s.tags.Tags(ctx, obj.Key)
			if tagErr != nil {
				return nil, fmt.Errorf("list files '%s': %w", obj.Key, tagErr)
			}
			entry.Tags = nonNil(tags)
		}
		entries = append(entries, entry)
	}

	return entries, nil
}

// Create stores req.Text under a freshly generated filename and, when tagging
// is enabled, records its tags.
//
// The object is written before the tags. If the tag insert fails the object
// is left in place and the error is returned; no compensation is attempted.
//
// Error types returned:
//   - ErrInvalidInput: empty text or an empty tag
//   - Wrapped store errors
func (s *FileService) Create(ctx context.Context, req WriteRequest) (FileEntry, error) {
	if err := ctx.Err(); err != nil {
		return FileEntry{}, fmt.Errorf("create file: %w", err)
	}

	if err := validateWrite(req); err != nil {
		return FileEntry{}, fmt.Errorf("create file: %w", err)
	}

	filename := NewFilename(s.now())

	if _, err := s.store.Put(ctx, filename, strings.NewReader(req.Text)); err != nil {
		return FileEntry{}, fmt.Errorf("create file %s: %w", filename, err)
	}

	entry := FileEntry{Filename: filename}
	if s.tags == nil {
		return entry, nil
	}

	if err := s.tags.Insert(ctx, filename, req.Tags); err != nil {
		return FileEntry{}, fmt.Errorf("create file %s: insert tags: %w", filename, err)
	}
	entry.Tags = nonNil(req.Tags)

	return entry, nil
}

func (s *FileService) Get(ctx context.Context, filename string) (File, error) {
	if err := ctx.Err(); err != nil {
		return File{}, fmt.Errorf("get file: %w", err)
	}

	if !IsValidFilename(filename) {
		return File{}, fmt.Errorf("get file %s: %w", filename, ErrInvalidInput)
	}

	rc, err := s.store.Get(ctx, filename)
	if err != nil {
		return File{}, fmt.Errorf("get file %s: %w", filename, err)
	}
	defer func() { _ = rc.Close() }()

	body, err := io.ReadAll(rc)
	if err != nil {
		return File{}, fmt.Errorf("get file %s: read: %w", filename, err)
	}

	file := File{Filename: filename, Content: decodeText(body)}
	if s.tags == nil {
		return file, nil
	}

	tags, err := s.tags.Tags(ctx, filename)
	if err != nil {
		return File{}, fmt.Errorf("get file %s: %w", filename, err)
	}
	file.Tags = nonNil(tags)

	return file, nil
}

// Update overwrites the content of filename, creating the object if it does
// not exist.
//
// Tag handling when tagging is enabled:
//   - req.Tags non-nil: the tag set is replaced with req.Tags
//   - req.Tags nil and policy keep: existing tags are left untouched
//   - req.Tags nil and policy replace: the tag set is cleared
//
// The returned entry carries the tags the file has after the update.
func (s *FileService) Update(ctx context.Context, filename string, req WriteRequest) (FileEntry, error) {
	if err := ctx.Err(); err != nil {
		return FileEntry{}, fmt.Errorf("update file: %w", err)
	}

	if !IsValidFilename(filename) {
		return FileEntry{}, fmt.Errorf("update file %s: %w", filename, ErrInvalidInput)
	}

	if err := validateWrite(req); err != nil {
		return FileEntry{}, fmt.Errorf("update file %s: %w", filename, err)
	}

	if _, err := s.store.Put(ctx, filename, strings.NewReader(req.Text)); err != nil {
		return FileEntry{}, fmt.Errorf("update file %s: %w", filename, err)
	}

	entry := FileEntry{Filename: filename}
	if s.tags == nil {
		return entry, nil
	}

	switch {
	case req.Tags != nil:
		if err := s.tags.Replace(ctx, filename, req.Tags); err != nil {
			return FileEntry{}, fmt.Errorf("update file %s: replace tags: %w", filename, err)
		}
		entry.Tags = nonNil(req.Tags)
	case s.tagUpdate == TagUpdateReplace:
		if err := s.tags.Replace(ctx, filename, nil); err != nil {
			return FileEntry{}, fmt.Errorf("update file %s: clear tags: %w", filename, err)
		}
		entry.Tags = []string{}
	default:
		tags, err := s.tags.Tags(ctx, filename)
		if err != nil {
			return FileEntry{}, fmt.Errorf("update file %s: %w", filename, err)
		}
		entry.Tags = nonNil(tags)
	}

	return entry, nil
}

// Delete removes filename from the object store and, when tagging is
// enabled, drops all of its tag rows.
//
// Returns ErrNotFound if the object does not exist; tag rows are not touched
// in that case.
func (s *FileService) Delete(ctx context.Context, filename string) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("delete file: %w", err)
	}

	if !IsValidFilename(filename) {
		return fmt.Errorf("delete file %s: %w", filename, ErrInvalidInput)
	}

	if err := s.store.Delete(ctx, filename); err != nil {
		return fmt.Errorf("delete file %s: %w", filename, err)
	}

	if s.tags == nil {
		return nil
	}

	if err := s.tags.Delete(ctx, filename); err != nil {
		return fmt.Errorf("delete file %s: delete tags: %w", filename, err)
	}

	return nil
}

// Search returns the filenames carrying at least one of tags.
func (s *FileService) Search(ctx context.Context, tags []string) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("search: %w", err)
	}

	if s.tags == nil {
		return nil, fmt.Errorf("search: %w", ErrTagsDisabled)
	}

	if len(tags) == 0 {
		return nil, fmt.Errorf("search: %w: no tags given", ErrInvalidInput)
	}

	filenames, err := s.tags.Search(ctx, tags)
	if err != nil {
		return nil, fmt.Errorf("search: %w", err)
	}

	return nonNil(filenames), nil
}

// Reconcile compares the object store with the tag table. With prune set,
// tag rows whose object no longer exists are deleted.
func (s *FileService) Reconcile(ctx context.Context, prune bool) (ReconcileReport, error) {
	if err := ctx.Err(); err != nil {
		return ReconcileReport{}, fmt.Errorf("reconcile: %w", err)
	}

	if s.tags == nil {
		return ReconcileReport{}, fmt.Errorf("reconcile: %w", ErrTagsDisabled)
	}

	// Tags are read before objects. Writes put the object first, so a
	// create racing with this pass can only appear as missing tags, which
	// prune never touches.
	tagged, err := s.tags.Filenames(ctx)
	if err != nil {
		return ReconcileReport{}, fmt.Errorf("reconcile: %w", err)
	}

	objects, err := s.store.List(ctx)
	if err != nil {
		return ReconcileReport{}, fmt.Errorf("reconcile: %w", err)
	}

	stored := make(map[string]struct{}, len(objects))
	for _, obj := range objects {
		stored[obj.Key] = struct{}{}
	}
	known := make(map[string]struct{}, len(tagged))
	for _, name := range tagged {
		known[name] = struct{}{}
	}

	report := ReconcileReport{MissingTags: []string{}, OrphanedTags: []string{}}
	for _, obj := range objects {
		if _, ok := known[obj.Key]; !ok {
			report.MissingTags = append(report.MissingTags, obj.Key)
		}
	}
	for name := range known {
		if _, ok := stored[name]; !ok {
			report.OrphanedTags = append(report.OrphanedTags, name)
		}
	}
	slices.Sort(report.MissingTags)
	slices.Sort(report.OrphanedTags)

	if !prune {
		return report, nil
	}

	for _, name := range report.OrphanedTags {
		if err := ctx.Err(); err != nil {
			return report, fmt.Errorf("reconcile: %w", err)
		}
		if err := s.tags.Delete(ctx, name); err != nil {
			return report, fmt.Errorf("reconcile prune '%s': %w", name, err)
		}
		report.Pruned++
	}

	return report, nil
}

func validateWrite(req WriteRequest) error {
	if req.Text == "" {
		return fmt.Errorf("%w: text is required", ErrInvalidInput)
	}
	for _, tag := range req.Tags {
		if strings.TrimSpace(tag) == "" {
			return fmt.Errorf("%w: tags cannot be empty", ErrInvalidInput)
		}
	}
	return nil
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
