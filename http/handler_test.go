package http_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/sagarc03/filewriter"
	fwhttp "github.com/sagarc03/filewriter/http"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// MockService is a mock implementation of http.Service
type MockService struct {
	mock.Mock
}

func (m *MockService) TagsEnabled() bool {
	args := m.Called()
	return args.Bool(0)
}

func (m *MockService) List(ctx context.Context) ([]filewriter.FileEntry, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]filewriter.FileEntry), args.Error(1)
}

func (m *MockService) Create(ctx context.Context, req filewriter.WriteRequest) (filewriter.FileEntry, error) {
	args := m.Called(ctx, req)
	return args.Get(0).(filewriter.FileEntry), args.Error(1)
}

func (m *MockService) Get(ctx context.Context, filename string) (filewriter.File, error) {
	args := m.Called(ctx, filename)
	return args.Get(0).(filewriter.File), args.Error(1)
}

func (m *MockService) Update(ctx context.Context, filename string, req filewriter.WriteRequest) (filewriter.FileEntry, error) {
	args := m.Called(ctx, filename, req)
	return args.Get(0).(filewriter.FileEntry), args.Error(1)
}

func (m *MockService) Delete(ctx context.Context, filename string) error {
	args := m.Called(ctx, filename)
	return args.Error(0)
}

func (m *MockService) Search(ctx context.Context, tags []string) ([]string, error) {
	args := m.Called(ctx, tags)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}

func newRouter(t *testing.T, tagsEnabled bool, cfg fwhttp.HandlerConfig) (http.Handler, *MockService) {
	t.Helper()
	service := new(MockService)
	service.On("TagsEnabled").Return(tagsEnabled).Maybe()
	t.Cleanup(func() { service.AssertExpectations(t) })

	return fwhttp.NewHandler(&cfg, service).Router(), service
}

func serve(router http.Handler, method, target, body string) *httptest.ResponseRecorder {
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, target, nil)
	} else {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func TestHandler_Root_Static(t *testing.T) {
	router, service := newRouter(t, false, fwhttp.HandlerConfig{RootMode: filewriter.RootStatic})

	rec := serve(router, http.MethodGet, "/", "")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "text/html; charset=utf-8", rec.Header().Get("Content-Type"))
	assert.Contains(t, rec.Body.String(), "<form")
	service.AssertNotCalled(t, "List", mock.Anything)
}

func TestHandler_Root_Listing(t *testing.T) {
	router, service := newRouter(t, true, fwhttp.HandlerConfig{RootMode: filewriter.RootListing})

	service.On("List", mock.Anything).Return([]filewriter.FileEntry{
		{Filename: "1.txt", Tags: []string{"a", "b"}},
		{Filename: "<script>.txt", Tags: []string{}},
	}, nil)

	rec := serve(router, http.MethodGet, "/", "")

	assert.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, "<li>1.txt [a, b]</li>")
	assert.Contains(t, body, "&lt;script&gt;.txt")
	assert.NotContains(t, body, "<li><script>")
	assert.Contains(t, body, `id="tags"`)
}

func TestHandler_Root_ListingError(t *testing.T) {
	router, service := newRouter(t, false, fwhttp.HandlerConfig{RootMode: filewriter.RootListing})

	service.On("List", mock.Anything).Return(nil, errors.New("bucket gone"))

	rec := serve(router, http.MethodGet, "/", "")

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Equal(t, "Error generating HTML page.", rec.Body.String())
	assert.NotContains(t, rec.Body.String(), "bucket gone")
}

func TestHandler_List_TagsDisabled(t *testing.T) {
	router, service := newRouter(t, false, fwhttp.HandlerConfig{})

	service.On("List", mock.Anything).Return([]filewriter.FileEntry{
		{Filename: "1.txt"},
		{Filename: "2.txt"},
	}, nil)

	rec := serve(router, http.MethodGet, "/files", "")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
	assert.JSONEq(t, `{"files":["1.txt","2.txt"]}`, rec.Body.String())
}

func TestHandler_List_TagsEnabled(t *testing.T) {
	router, service := newRouter(t, true, fwhttp.HandlerConfig{})

	service.On("List", mock.Anything).Return([]filewriter.FileEntry{
		{Filename: "1.txt", Tags: []string{"a"}},
		{Filename: "2.txt", Tags: []string{}},
	}, nil)

	rec := serve(router, http.MethodGet, "/files", "")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"files":[{"filename":"1.txt","tags":["a"]},{"filename":"2.txt","tags":[]}]}`, rec.Body.String())
}

func TestHandler_List_Empty(t *testing.T) {
	router, service := newRouter(t, false, fwhttp.HandlerConfig{})

	service.On("List", mock.Anything).Return([]filewriter.FileEntry{}, nil)

	rec := serve(router, http.MethodGet, "/files", "")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"files":[]}`, rec.Body.String())
}

func TestHandler_List_Error(t *testing.T) {
	router, service := newRouter(t, false, fwhttp.HandlerConfig{})

	service.On("List", mock.Anything).Return(nil, errors.New("access denied"))

	rec := serve(router, http.MethodGet, "/files", "")

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Contains(t, rec.Body.String(), "internal_error")
	assert.Contains(t, rec.Body.String(), "Error listing files.")
	assert.NotContains(t, rec.Body.String(), "access denied")
}

func TestHandler_Create_TagsDisabled(t *testing.T) {
	router, service := newRouter(t, false, fwhttp.HandlerConfig{})

	service.On("Create", mock.Anything, filewriter.WriteRequest{Text: "hello"}).
		Return(filewriter.FileEntry{Filename: "1700000000123.txt"}, nil)

	rec := serve(router, http.MethodPost, "/files", `{"text":"hello"}`)

	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.JSONEq(t, `{"filename":"1700000000123.txt"}`, rec.Body.String())
}

func TestHandler_Create_TagsEnabled(t *testing.T) {
	router, service := newRouter(t, true, fwhttp.HandlerConfig{})

	service.On("Create", mock.Anything, filewriter.WriteRequest{Text: "hello", Tags: []string{"a", "b"}}).
		Return(filewriter.FileEntry{Filename: "1.txt", Tags: []string{"a", "b"}}, nil)

	rec := serve(router, http.MethodPost, "/files", `{"text":"hello","tags":["a","b"]}`)

	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.JSONEq(t, `{"filename":"1.txt","tags":["a","b"]}`, rec.Body.String())
}

func TestHandler_Create_OmittedTagsStayNil(t *testing.T) {
	router, service := newRouter(t, true, fwhttp.HandlerConfig{})

	service.On("Create", mock.Anything, mock.MatchedBy(func(req filewriter.WriteRequest) bool {
		return req.Text == "hello" && req.Tags == nil
	})).Return(filewriter.FileEntry{Filename: "1.txt", Tags: []string{}}, nil)

	rec := serve(router, http.MethodPost, "/files", `{"text":"hello"}`)

	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.JSONEq(t, `{"filename":"1.txt","tags":[]}`, rec.Body.String())
}

func TestHandler_Create_BadRequests(t *testing.T) {
	tests := []struct {
		name     string
		body     string
		wantCode string
	}{
		{"missing text", `{}`, "text_required"},
		{"empty text", `{"text":""}`, "text_required"},
		{"missing text with tags", `{"tags":["a"]}`, "text_required"},
		{"not json", `text=hello`, "invalid_body"},
		{"wrong text type", `{"text":42}`, "invalid_body"},
		{"empty tag", `{"text":"hello","tags":["a",""]}`, "invalid_body"},
		{"wrong tags type", `{"text":"hello","tags":"a"}`, "invalid_body"},
		{"trailing garbage", `{"text":"hello"}xyz`, "invalid_body"},
		{"second object", `{"text":"hello"} {"text":"again"}`, "invalid_body"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router, service := newRouter(t, true, fwhttp.HandlerConfig{})

			rec := serve(router, http.MethodPost, "/files", tt.body)

			assert.Equal(t, http.StatusBadRequest, rec.Code)
			assert.Contains(t, rec.Body.String(), tt.wantCode)
			service.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
		})
	}
}

func TestHandler_Create_BodyTooLarge(t *testing.T) {
	router, service := newRouter(t, false, fwhttp.HandlerConfig{MaxBodySize: 16})

	rec := serve(router, http.MethodPost, "/files", `{"text":"`+strings.Repeat("x", 64)+`"}`)

	assert.Equal(t, http.StatusRequestEntityTooLarge, rec.Code)
	assert.Contains(t, rec.Body.String(), "body_too_large")
	service.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestHandler_Create_StoreError(t *testing.T) {
	router, service := newRouter(t, false, fwhttp.HandlerConfig{})

	service.On("Create", mock.Anything, mock.Anything).
		Return(filewriter.FileEntry{}, errors.New("put object: timeout"))

	rec := serve(router, http.MethodPost, "/files", `{"text":"hello"}`)

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Contains(t, rec.Body.String(), "Error saving the file.")
	assert.NotContains(t, rec.Body.String(), "timeout")
}

func TestHandler_Get_TagsDisabled(t *testing.T) {
	router, service := newRouter(t, false, fwhttp.HandlerConfig{})

	service.On("Get", mock.Anything, "1.txt").
		Return(filewriter.File{Filename: "1.txt", Content: "hello"}, nil)

	rec := serve(router, http.MethodGet, "/files/1.txt", "")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"content":"hello"}`, rec.Body.String())
}

func TestHandler_Get_TagsEnabled(t *testing.T) {
	router, service := newRouter(t, true, fwhttp.HandlerConfig{})

	service.On("Get", mock.Anything, "1.txt").
		Return(filewriter.File{Filename: "1.txt", Content: "hello", Tags: []string{"x"}}, nil)

	rec := serve(router, http.MethodGet, "/files/1.txt", "")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"content":"hello","tags":["x"]}`, rec.Body.String())
}

func TestHandler_Get_NotFound(t *testing.T) {
	router, service := newRouter(t, false, fwhttp.HandlerConfig{})

	service.On("Get", mock.Anything, "missing.txt").
		Return(filewriter.File{}, filewriter.ErrNotFound)

	rec := serve(router, http.MethodGet, "/files/missing.txt", "")

	assert.Equal(t, http.StatusNotFound, rec.Code)

	var resp fwhttp.ErrorResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	assert.Equal(t, "not_found", resp.Error)
	assert.Equal(t, "File not found.", resp.Message)
}

func TestHandler_Get_InvalidFilename(t *testing.T) {
	router, service := newRouter(t, false, fwhttp.HandlerConfig{})

	rec := serve(router, http.MethodGet, "/files/%2E%2E", "")

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "invalid_filename")
	service.AssertNotCalled(t, "Get", mock.Anything, mock.Anything)
}

func TestHandler_Get_PercentInFilename(t *testing.T) {
	tests := []struct {
		name     string
		target   string
		filename string
	}{
		{"encoded percent", "/files/a%25b.txt", "a%b.txt"},
		{"percent followed by hex digits", "/files/x%2541.txt", "x%41.txt"},
		{"encoded letter", "/files/%61bc.txt", "abc.txt"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router, service := newRouter(t, false, fwhttp.HandlerConfig{})

			service.On("Get", mock.Anything, tt.filename).
				Return(filewriter.File{Filename: tt.filename, Content: "hello"}, nil).Once()

			rec := serve(router, http.MethodGet, tt.target, "")

			assert.Equal(t, http.StatusOK, rec.Code)
			assert.JSONEq(t, `{"content":"hello"}`, rec.Body.String())
		})
	}
}

func TestHandler_Update_TagsDisabled(t *testing.T) {
	router, service := newRouter(t, false, fwhttp.HandlerConfig{})

	service.On("Update", mock.Anything, "1.txt", filewriter.WriteRequest{Text: "new"}).
		Return(filewriter.FileEntry{Filename: "1.txt"}, nil)

	rec := serve(router, http.MethodPut, "/files/1.txt", `{"text":"new"}`)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"filename":"1.txt","message":"File updated successfully."}`, rec.Body.String())
}

func TestHandler_Update_TagsEnabled(t *testing.T) {
	router, service := newRouter(t, true, fwhttp.HandlerConfig{})

	service.On("Update", mock.Anything, "1.txt", filewriter.WriteRequest{Text: "new", Tags: []string{"x"}}).
		Return(filewriter.FileEntry{Filename: "1.txt", Tags: []string{"x"}}, nil)

	rec := serve(router, http.MethodPut, "/files/1.txt", `{"text":"new","tags":["x"]}`)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"filename":"1.txt","tags":["x"]}`, rec.Body.String())
}

func TestHandler_Update_EmptyTagsIsNotOmitted(t *testing.T) {
	router, service := newRouter(t, true, fwhttp.HandlerConfig{})

	service.On("Update", mock.Anything, "1.txt", mock.MatchedBy(func(req filewriter.WriteRequest) bool {
		return req.Tags != nil && len(req.Tags) == 0
	})).Return(filewriter.FileEntry{Filename: "1.txt", Tags: []string{}}, nil)

	rec := serve(router, http.MethodPut, "/files/1.txt", `{"text":"new","tags":[]}`)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"filename":"1.txt","tags":[]}`, rec.Body.String())
}

func TestHandler_Update_MissingText(t *testing.T) {
	router, service := newRouter(t, false, fwhttp.HandlerConfig{})

	rec := serve(router, http.MethodPut, "/files/1.txt", `{"tags":["x"]}`)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "text_required")
	service.AssertNotCalled(t, "Update", mock.Anything, mock.Anything, mock.Anything)
}

func TestHandler_Update_StoreError(t *testing.T) {
	router, service := newRouter(t, true, fwhttp.HandlerConfig{})

	service.On("Update", mock.Anything, "1.txt", mock.Anything).
		Return(filewriter.FileEntry{}, errors.New("replace: delete: db closed"))

	rec := serve(router, http.MethodPut, "/files/1.txt", `{"text":"new"}`)

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Contains(t, rec.Body.String(), "Error updating the file.")
}

func TestHandler_Delete_Success(t *testing.T) {
	router, service := newRouter(t, true, fwhttp.HandlerConfig{})

	service.On("Delete", mock.Anything, "1.txt").Return(nil)

	rec := serve(router, http.MethodDelete, "/files/1.txt", "")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"message":"File deleted successfully."}`, rec.Body.String())
}

func TestHandler_Delete_NotFound(t *testing.T) {
	router, service := newRouter(t, true, fwhttp.HandlerConfig{})

	service.On("Delete", mock.Anything, "missing.txt").
		Return(errors.Join(errors.New("delete file missing.txt"), filewriter.ErrNotFound))

	rec := serve(router, http.MethodDelete, "/files/missing.txt", "")

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Contains(t, rec.Body.String(), "not_found")
}

func TestHandler_Delete_Error(t *testing.T) {
	router, service := newRouter(t, false, fwhttp.HandlerConfig{})

	service.On("Delete", mock.Anything, "1.txt").Return(errors.New("network down"))

	rec := serve(router, http.MethodDelete, "/files/1.txt", "")

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Contains(t, rec.Body.String(), "Error deleting the file.")
}

func TestHandler_Search(t *testing.T) {
	router, service := newRouter(t, true, fwhttp.HandlerConfig{})

	service.On("Search", mock.Anything, []string{"a", "b"}).Return([]string{"1.txt", "2.txt"}, nil)

	rec := serve(router, http.MethodGet, "/search?tags=a,%20b,,", "")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"filenames":["1.txt","2.txt"]}`, rec.Body.String())
}

func TestHandler_Search_NoMatches(t *testing.T) {
	router, service := newRouter(t, true, fwhttp.HandlerConfig{})

	service.On("Search", mock.Anything, []string{"c"}).Return([]string{}, nil)

	rec := serve(router, http.MethodGet, "/search?tags=c", "")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"filenames":[]}`, rec.Body.String())
}

func TestHandler_Search_TagsRequired(t *testing.T) {
	for _, target := range []string{"/search", "/search?tags=", "/search?tags=,%20,"} {
		t.Run(target, func(t *testing.T) {
			router, service := newRouter(t, true, fwhttp.HandlerConfig{})

			rec := serve(router, http.MethodGet, target, "")

			assert.Equal(t, http.StatusBadRequest, rec.Code)
			assert.Contains(t, rec.Body.String(), "tags_required")
			service.AssertNotCalled(t, "Search", mock.Anything, mock.Anything)
		})
	}
}

func TestHandler_Search_NotRoutedWhenTagsDisabled(t *testing.T) {
	router, service := newRouter(t, false, fwhttp.HandlerConfig{})

	rec := serve(router, http.MethodGet, "/search?tags=a", "")

	assert.Equal(t, http.StatusNotFound, rec.Code)
	service.AssertNotCalled(t, "Search", mock.Anything, mock.Anything)
}

func TestHandler_UnknownRoute(t *testing.T) {
	router, _ := newRouter(t, false, fwhttp.HandlerConfig{})

	rec := serve(router, http.MethodGet, "/nope", "")

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Contains(t, rec.Body.String(), "404 Not Found")
}

func TestHandler_CORS(t *testing.T) {
	router, service := newRouter(t, false, fwhttp.HandlerConfig{
		CORS: fwhttp.CORSConfig{
			Enabled:        true,
			AllowedOrigins: []string{"https://example.com"},
			AllowedMethods: []string{"GET", "POST"},
		},
	})

	service.On("List", mock.Anything).Return([]filewriter.FileEntry{}, nil)

	req := httptest.NewRequest(http.MethodGet, "/files", nil)
	req.Header.Set("Origin", "https://example.com")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "https://example.com", rec.Header().Get("Access-Control-Allow-Origin"))
}
