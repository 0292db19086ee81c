package clientcli

import "errors"

// Errors for profile operations.
var (
	ErrProfileNotFound = errors.New("profile not found")
	ErrNoProfiles      = errors.New("no profiles configured")
	ErrProfileExists   = errors.New("profile already exists")
)

// Errors for configuration validation.
var (
	ErrConfigRequired   = errors.New("config is required")
	ErrEndpointRequired = errors.New("endpoint is required")
	ErrInvalidEndpoint  = errors.New("endpoint must be an http or https URL")
)

// Errors for input validation.
var (
	ErrTextRequired  = errors.New("text is required")
	ErrNoFilenames   = errors.New("no filenames provided")
	ErrEmptyFilename = errors.New("filename is required")
	ErrNoTags        = errors.New("at least one tag is required")
)
