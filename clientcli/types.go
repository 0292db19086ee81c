package clientcli

// WriteOptions is the body of a create or update. A nil Tags leaves "tags"
// out of the request; a non-nil empty slice sends "tags": [].
type WriteOptions struct {
	Text string
	Tags []string
}

// FileInfo is one entry of a list. Tags is nil when the server has tagging
// disabled.
type FileInfo struct {
	Filename string   `json:"filename"`
	Tags     []string `json:"tags,omitempty"`
}

// ListResult contains every file on the server.
type ListResult struct {
	Files       []FileInfo `json:"files"`
	TagsEnabled bool       `json:"tags_enabled"`
}

// FileResult is returned by create and update.
type FileResult struct {
	Filename string   `json:"filename"`
	Tags     []string `json:"tags,omitempty"`
	Message  string   `json:"message,omitempty"`
}

// FileContent is the body of a single file.
type FileContent struct {
	Filename string   `json:"filename"`
	Content  string   `json:"content"`
	Tags     []string `json:"tags,omitempty"`
}

// DeleteOptions configures a delete operation.
type DeleteOptions struct {
	Filenames []string
}

// DeleteResult represents the result of deleting a single file.
type DeleteResult struct {
	Filename string `json:"filename"`
	Deleted  bool   `json:"deleted"`
	Err      error  `json:"-"` // nil on success
}

// SearchResult lists the files carrying any of Tags.
type SearchResult struct {
	Tags      []string `json:"tags"`
	Filenames []string `json:"filenames"`
}

// writeRequest mirrors the JSON body accepted by the server.
type writeRequest struct {
	Text string    `json:"text"`
	Tags *[]string `json:"tags,omitempty"`
}

// serverFileResult mirrors POST and PUT responses.
type serverFileResult struct {
	Filename string   `json:"filename"`
	Tags     []string `json:"tags"`
	Message  string   `json:"message"`
}

type serverContent struct {
	Content string   `json:"content"`
	Tags    []string `json:"tags"`
}

type serverSearchResult struct {
	Filenames []string `json:"filenames"`
}

type serverError struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}
