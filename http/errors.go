package http

// Error codes written in the "error" field of JSON error responses.
const (
	CodeInvalidBody     = "invalid_body"
	CodeTextRequired    = "text_required"
	CodeInvalidFilename = "invalid_filename"
	CodeTagsRequired    = "tags_required"
	CodeBodyTooLarge    = "body_too_large"
	CodeNotFound        = "not_found"
	CodeInternal        = "internal_error"
)
