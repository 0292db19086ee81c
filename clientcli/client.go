package clientcli

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"
)

// DefaultTimeout is the default HTTP client timeout.
const DefaultTimeout = 30 * time.Second

// Client performs operations against a filewriter server.
type Client struct {
	endpoint   string
	httpClient *http.Client
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient sets a custom HTTP client.
func WithHTTPClient(client *http.Client) Option {
	return func(c *Client) {
		c.httpClient = client
	}
}

// WithTimeout sets the HTTP client timeout.
func WithTimeout(timeout time.Duration) Option {
	return func(c *Client) {
		c.httpClient.Timeout = timeout
	}
}

// New creates a new Client with the given config and options.
func New(cfg *Config, opts ...Option) (*Client, error) {
	if cfg == nil {
		return nil, ErrConfigRequired
	}

	cfg = cfg.WithDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	c := &Client{
		endpoint:   strings.TrimSuffix(cfg.Endpoint, "/"),
		httpClient: &http.Client{Timeout: DefaultTimeout},
	}

	for _, opt := range opts {
		opt(c)
	}

	return c, nil
}

// List returns every file on the server.
func (c *Client) List(ctx context.Context) (*ListResult, error) {
	body, err := c.do(ctx, http.MethodGet, "/files", nil, http.StatusOK)
	if err != nil {
		return nil, fmt.Errorf("list: %w", err)
	}

	var raw struct {
		Files []json.RawMessage `json:"files"`
	}
	if err := json.Unmarshal(body, &raw); err != nil {
		return nil, fmt.Errorf("list: parse response: %w", err)
	}

	result := &ListResult{Files: make([]FileInfo, 0, len(raw.Files))}
	for _, item := range raw.Files {
		// Plain filenames without tagging, objects with it.
		var name string
		if err := json.Unmarshal(item, &name); err == nil {
			result.Files = append(result.Files, FileInfo{Filename: name})
			continue
		}

		var info FileInfo
		if err := json.Unmarshal(item, &info); err != nil {
			return nil, fmt.Errorf("list: parse entry: %w", err)
		}
		if info.Tags == nil {
			info.Tags = []string{}
		}
		result.TagsEnabled = true
		result.Files = append(result.Files, info)
	}

	return result, nil
}

// Create stores a new file and returns its server-generated filename.
func (c *Client) Create(ctx context.Context, opts WriteOptions) (*FileResult, error) {
	if opts.Text == "" {
		return nil, fmt.Errorf("create: %w", ErrTextRequired)
	}

	body, err := c.do(ctx, http.MethodPost, "/files", newWriteRequest(opts), http.StatusCreated)
	if err != nil {
		return nil, fmt.Errorf("create: %w", err)
	}

	return parseFileResult(body)
}

// Get returns the content of filename.
func (c *Client) Get(ctx context.Context, filename string) (*FileContent, error) {
	if filename == "" {
		return nil, fmt.Errorf("get: %w", ErrEmptyFilename)
	}

	body, err := c.do(ctx, http.MethodGet, filePath(filename), nil, http.StatusOK)
	if err != nil {
		return nil, fmt.Errorf("get %s: %w", filename, err)
	}

	var content serverContent
	if err := json.Unmarshal(body, &content); err != nil {
		return nil, fmt.Errorf("get %s: parse response: %w", filename, err)
	}

	return &FileContent{Filename: filename, Content: content.Content, Tags: content.Tags}, nil
}

// Update overwrites filename, creating it when it does not exist.
func (c *Client) Update(ctx context.Context, filename string, opts WriteOptions) (*FileResult, error) {
	if filename == "" {
		return nil, fmt.Errorf("update: %w", ErrEmptyFilename)
	}
	if opts.Text == "" {
		return nil, fmt.Errorf("update %s: %w", filename, ErrTextRequired)
	}

	body, err := c.do(ctx, http.MethodPut, filePath(filename), newWriteRequest(opts), http.StatusOK)
	if err != nil {
		return nil, fmt.Errorf("update %s: %w", filename, err)
	}

	return parseFileResult(body)
}

// Delete deletes one or more files from the server.
// Continues on error, collecting results for all filenames.
func (c *Client) Delete(ctx context.Context, opts DeleteOptions) ([]DeleteResult, error) {
	if len(opts.Filenames) == 0 {
		return nil, ErrNoFilenames
	}

	results := make([]DeleteResult, 0, len(opts.Filenames))

	for _, name := range opts.Filenames {
		if err := ctx.Err(); err != nil {
			return results, err
		}

		result := DeleteResult{Filename: name}
		if name == "" {
			result.Err = ErrEmptyFilename
		} else if _, err := c.do(ctx, http.MethodDelete, filePath(name), nil, http.StatusOK); err != nil {
			result.Err = err
		} else {
			result.Deleted = true
		}
		results = append(results, result)
	}

	return results, nil
}

// HasDeleteErrors returns true if any delete operation failed.
func HasDeleteErrors(results []DeleteResult) bool {
	for _, r := range results {
		if r.Err != nil {
			return true
		}
	}
	return false
}

// Search returns the filenames carrying at least one of tags.
func (c *Client) Search(ctx context.Context, tags []string) (*SearchResult, error) {
	cleaned := make([]string, 0, len(tags))
	for _, t := range tags {
		if t = strings.TrimSpace(t); t != "" {
			cleaned = append(cleaned, t)
		}
	}
	if len(cleaned) == 0 {
		return nil, fmt.Errorf("search: %w", ErrNoTags)
	}

	query := url.Values{}
	query.Set("tags", strings.Join(cleaned, ","))

	body, err := c.do(ctx, http.MethodGet, "/search?"+query.Encode(), nil, http.StatusOK)
	if err != nil {
		return nil, fmt.Errorf("search: %w", err)
	}

	var result serverSearchResult
	if err := json.Unmarshal(body, &result); err != nil {
		return nil, fmt.Errorf("search: parse response: %w", err)
	}
	if result.Filenames == nil {
		result.Filenames = []string{}
	}

	return &SearchResult{Tags: cleaned, Filenames: result.Filenames}, nil
}

// do sends a request and returns the response body when the status matches want.
func (c *Client) do(ctx context.Context, method, path string, payload any, want int) ([]byte, error) {
	var reqBody io.Reader = http.NoBody
	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			return nil, fmt.Errorf("encode request: %w", err)
		}
		reqBody = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.endpoint+path, reqBody)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("do request: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode != want {
		return nil, parseServerError(resp.StatusCode, body)
	}

	return body, nil
}

func newWriteRequest(opts WriteOptions) writeRequest {
	req := writeRequest{Text: opts.Text}
	if opts.Tags != nil {
		tags := opts.Tags
		req.Tags = &tags
	}
	return req
}

func parseFileResult(body []byte) (*FileResult, error) {
	var res serverFileResult
	if err := json.Unmarshal(body, &res); err != nil {
		return nil, fmt.Errorf("parse response: %w", err)
	}
	return &FileResult{Filename: res.Filename, Tags: res.Tags, Message: res.Message}, nil
}

func filePath(filename string) string {
	return "/files/" + url.PathEscape(filename)
}

// parseServerError builds an *APIError, keeping the server's error code
// and message when the body is the usual JSON error.
func parseServerError(statusCode int, body []byte) error {
	apiErr := &APIError{
		StatusCode: statusCode,
		Body:       string(body),
	}

	var se serverError
	if err := json.Unmarshal(body, &se); err == nil {
		apiErr.Code = se.Error
		apiErr.Message = se.Message
	}

	return apiErr
}

// APIError represents an error response from the server.
type APIError struct {
	StatusCode int
	Code       string
	Message    string
	Body       string
}

func (e *APIError) Error() string {
	if e.Code != "" {
		return "server error: " + strconv.Itoa(e.StatusCode) + " " + e.Code + " - " + e.Message
	}
	return "server error: " + strconv.Itoa(e.StatusCode) + " - " + e.Body
}

// Is reports whether target matches this error.
// It matches if target is an *APIError with the same StatusCode.
func (e *APIError) Is(target error) bool {
	var t *APIError
	ok := errors.As(target, &t)
	if !ok {
		return false
	}
	return t.StatusCode == e.StatusCode
}

// IsNotFound returns true if the error is a 404.
func (e *APIError) IsNotFound() bool {
	return e.StatusCode == http.StatusNotFound
}

// Sentinel errors for common API error conditions.
// Use errors.Is() to check for these conditions.
var (
	// ErrNotFound is returned when the requested file does not exist (404).
	ErrNotFound = &APIError{StatusCode: http.StatusNotFound}

	// ErrBadRequest is returned when the server rejects the input (400).
	ErrBadRequest = &APIError{StatusCode: http.StatusBadRequest}
)
