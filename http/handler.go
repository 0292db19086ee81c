package http

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"github.com/go-playground/validator/v10"
	"github.com/sagarc03/filewriter"
)

type Service interface {
	TagsEnabled() bool
	List(ctx context.Context) ([]filewriter.FileEntry, error)
	Create(ctx context.Context, req filewriter.WriteRequest) (filewriter.FileEntry, error)
	Get(ctx context.Context, filename string) (filewriter.File, error)
	Update(ctx context.Context, filename string, req filewriter.WriteRequest) (filewriter.FileEntry, error)
	Delete(ctx context.Context, filename string) error
	Search(ctx context.Context, tags []string) ([]string, error)
}

type CORSConfig struct {
	Enabled          bool
	AllowedOrigins   []string
	AllowedMethods   []string
	AllowedHeaders   []string
	ExposedHeaders   []string
	AllowCredentials bool
	MaxAge           int
}

type HandlerConfig struct {
	RootMode    filewriter.RootMode
	MaxBodySize int64
	CORS        CORSConfig
	Logger      *slog.Logger
}

// Handler provides HTTP handlers for the file API.
type Handler struct {
	config   HandlerConfig
	service  Service
	validate *validator.Validate
}

// NewHandler creates a new Handler with the given configuration and service.
func NewHandler(config *HandlerConfig, service Service) *Handler {
	return &Handler{
		config:   *config,
		service:  service,
		validate: validator.New(validator.WithRequiredStructEnabled()),
	}
}

// Router returns an http.Handler with the file routes. GET /search is only
// registered when the service has tagging enabled.
func (h *Handler) Router() http.Handler {
	r := chi.NewRouter()

	r.Use(RequestLogger(h.config.Logger))

	if h.config.CORS.Enabled {
		r.Use(cors.Handler(cors.Options{
			AllowedOrigins:   h.config.CORS.AllowedOrigins,
			AllowedMethods:   h.config.CORS.AllowedMethods,
			AllowedHeaders:   h.config.CORS.AllowedHeaders,
			ExposedHeaders:   h.config.CORS.ExposedHeaders,
			AllowCredentials: h.config.CORS.AllowCredentials,
			MaxAge:           h.config.CORS.MaxAge,
		}))
	}

	r.Use(MaxBodySize(h.config.MaxBodySize))
	r.NotFound(writeDefaultNotFound)

	r.Get("/", h.handleRoot)
	r.Get("/files", h.handleList)
	r.Post("/files", h.handleCreate)

	r.Route("/files/{filename}", func(r chi.Router) {
		r.Use(FilenameValidation)
		r.Get("/", h.handleGet)
		r.Put("/", h.handleUpdate)
		r.Delete("/", h.handleDelete)
	})

	if h.service.TagsEnabled() {
		r.Get("/search", h.handleSearch)
	}

	return r
}

// writeBody is the JSON body of POST /files and PUT /files/{filename}.
// A missing "tags" decodes to nil, which the service treats as omitted.
type writeBody struct {
	Text string   `json:"text" validate:"required"`
	Tags []string `json:"tags" validate:"omitempty,dive,required"`
}

type filesResponse struct {
	Files any `json:"files"`
}

type filenameResponse struct {
	Filename string `json:"filename"`
}

type contentResponse struct {
	Content string `json:"content"`
}

type taggedContentResponse struct {
	Content string   `json:"content"`
	Tags    []string `json:"tags"`
}

type updatedResponse struct {
	Filename string `json:"filename"`
	Message  string `json:"message"`
}

type messageResponse struct {
	Message string `json:"message"`
}

type searchResponse struct {
	Filenames []string `json:"filenames"`
}

func (h *Handler) handleRoot(w http.ResponseWriter, r *http.Request) {
	if h.config.RootMode != filewriter.RootListing {
		writeStaticIndex(w)
		return
	}

	entries, err := h.service.List(r.Context())
	if err != nil {
		slog.Error("error generating listing page", "error", err)
		writeListingError(w)
		return
	}

	page := listingPage{TagsEnabled: h.service.TagsEnabled(), Files: make([]listingFile, 0, len(entries))}
	for _, e := range entries {
		page.Files = append(page.Files, listingFile(e))
	}

	writeListing(w, page)
}

func (h *Handler) handleList(w http.ResponseWriter, r *http.Request) {
	entries, err := h.service.List(r.Context())
	if err != nil {
		HandleError(w, err, "Error listing files.")
		return
	}

	if h.service.TagsEnabled() {
		_ = WriteJSON(w, http.StatusOK, filesResponse{Files: entries})
		return
	}

	names := make([]string, 0, len(entries))
	for _, e := range entries {
		names = append(names, e.Filename)
	}
	_ = WriteJSON(w, http.StatusOK, filesResponse{Files: names})
}

func (h *Handler) handleCreate(w http.ResponseWriter, r *http.Request) {
	req, ok := h.decodeWrite(w, r)
	if !ok {
		return
	}

	entry, err := h.service.Create(r.Context(), req)
	if err != nil {
		HandleError(w, err, "Error saving the file.")
		return
	}

	if h.service.TagsEnabled() {
		_ = WriteJSON(w, http.StatusCreated, entry)
		return
	}
	_ = WriteJSON(w, http.StatusCreated, filenameResponse{Filename: entry.Filename})
}

func (h *Handler) handleGet(w http.ResponseWriter, r *http.Request) {
	file, err := h.service.Get(r.Context(), filenameFrom(r))
	if err != nil {
		HandleError(w, err, "Error reading the file.")
		return
	}

	if h.service.TagsEnabled() {
		_ = WriteJSON(w, http.StatusOK, taggedContentResponse{Content: file.Content, Tags: file.Tags})
		return
	}
	_ = WriteJSON(w, http.StatusOK, contentResponse{Content: file.Content})
}

func (h *Handler) handleUpdate(w http.ResponseWriter, r *http.Request) {
	req, ok := h.decodeWrite(w, r)
	if !ok {
		return
	}

	entry, err := h.service.Update(r.Context(), filenameFrom(r), req)
	if err != nil {
		HandleError(w, err, "Error updating the file.")
		return
	}

	if h.service.TagsEnabled() {
		_ = WriteJSON(w, http.StatusOK, entry)
		return
	}
	_ = WriteJSON(w, http.StatusOK, updatedResponse{Filename: entry.Filename, Message: "File updated successfully."})
}

func (h *Handler) handleDelete(w http.ResponseWriter, r *http.Request) {
	if err := h.service.Delete(r.Context(), filenameFrom(r)); err != nil {
		HandleError(w, err, "Error deleting the file.")
		return
	}

	_ = WriteJSON(w, http.StatusOK, messageResponse{Message: "File deleted successfully."})
}

func (h *Handler) handleSearch(w http.ResponseWriter, r *http.Request) {
	tags := filewriter.ParseTags(r.URL.Query().Get("tags"))
	if len(tags) == 0 {
		WriteError(w, http.StatusBadRequest, CodeTagsRequired, "Query parameter 'tags' is required.")
		return
	}

	filenames, err := h.service.Search(r.Context(), tags)
	if err != nil {
		HandleError(w, err, "Error searching files.")
		return
	}

	_ = WriteJSON(w, http.StatusOK, searchResponse{Filenames: filenames})
}

// decodeWrite parses and validates a write body. On failure it has already
// written the error response.
func (h *Handler) decodeWrite(w http.ResponseWriter, r *http.Request) (filewriter.WriteRequest, bool) {
	var body writeBody
	if err := decodeSingleJSON(r.Body, &body); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			WriteError(w, http.StatusRequestEntityTooLarge, CodeBodyTooLarge, "Request body too large.")
			return filewriter.WriteRequest{}, false
		}
		WriteError(w, http.StatusBadRequest, CodeInvalidBody, "Request body must be a JSON object.")
		return filewriter.WriteRequest{}, false
	}

	if err := h.validate.Struct(body); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) && len(verrs) > 0 && verrs[0].StructField() == "Text" {
			WriteError(w, http.StatusBadRequest, CodeTextRequired, "Text is required in the request body.")
			return filewriter.WriteRequest{}, false
		}
		WriteError(w, http.StatusBadRequest, CodeInvalidBody, "Tags must be non-empty strings.")
		return filewriter.WriteRequest{}, false
	}

	return filewriter.WriteRequest{Text: body.Text, Tags: body.Tags}, true
}

// decodeSingleJSON decodes exactly one JSON value from r. Anything after it
// other than whitespace is an error.
func decodeSingleJSON(r io.Reader, v any) error {
	dec := json.NewDecoder(r)
	if err := dec.Decode(v); err != nil {
		return err
	}
	if err := dec.Decode(&struct{}{}); !errors.Is(err, io.EOF) {
		if err == nil {
			return errors.New("unexpected data after JSON body")
		}
		return err
	}
	return nil
}
