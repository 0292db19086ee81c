package filewriter

import (
	"fmt"
	"time"
)

// ObjectEntry describes one object held by an ObjectStore.
type ObjectEntry struct {
	Key          string
	Size         int64
	ETag         string
	LastModified time.Time
}

type SaveResult struct {
	BytesWritten int64
	Etag         string
}

// FileEntry is a filename with its tag set. Tags is nil when tagging is disabled.
type FileEntry struct {
	Filename string   `json:"filename"`
	Tags     []string `json:"tags"`
}

type File struct {
	Filename string
	Content  string
	Tags     []string
}

// WriteRequest carries the body of a create or update. A nil Tags means the
// caller omitted tags; a non-nil empty slice means "no tags".
type WriteRequest struct {
	Text string
	Tags []string
}

// ReconcileReport lists where the object store and the tag table disagree.
type ReconcileReport struct {
	// MissingTags are objects with no tag rows at all.
	MissingTags []string `json:"missing_tags"`
	// OrphanedTags are filenames with tag rows but no object.
	OrphanedTags []string `json:"orphaned_tags"`
	Pruned       int      `json:"pruned"`
}

// TagUpdatePolicy decides what an update without tags does to existing tags.
type TagUpdatePolicy string

const (
	TagUpdateKeep    TagUpdatePolicy = "keep"
	TagUpdateReplace TagUpdatePolicy = "replace"
)

func (p TagUpdatePolicy) IsValid() bool {
	switch p {
	case TagUpdateKeep, TagUpdateReplace:
		return true
	default:
		return false
	}
}

func ParseTagUpdatePolicy(s string) (TagUpdatePolicy, error) {
	p := TagUpdatePolicy(s)
	if !p.IsValid() {
		return "", fmt.Errorf("invalid tag update policy: %s (valid policies: keep, replace)", s)
	}
	return p, nil
}

// RootMode selects what GET / serves.
type RootMode string

const (
	RootStatic  RootMode = "static"
	RootListing RootMode = "listing"
)

func (m RootMode) IsValid() bool {
	switch m {
	case RootStatic, RootListing:
		return true
	default:
		return false
	}
}

func ParseRootMode(s string) (RootMode, error) {
	m := RootMode(s)
	if !m.IsValid() {
		return "", fmt.Errorf("invalid root mode: %s (valid modes: static, listing)", s)
	}
	return m, nil
}
