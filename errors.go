package filewriter

import "errors"

var (
	// ErrNotFound is returned when a file does not exist in the object store
	ErrNotFound = errors.New("not found")
	// ErrInvalidInput is returned when input validation fails
	ErrInvalidInput = errors.New("invalid input")
	// ErrTagsDisabled is returned by tag operations when no tag repository is configured
	ErrTagsDisabled = errors.New("tags disabled")
)
