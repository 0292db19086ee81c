package http

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/sagarc03/filewriter"
)

// ErrorResponse represents a JSON error response
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

// WriteError writes a JSON error response
func WriteError(w http.ResponseWriter, code int, errCode, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	if err := json.NewEncoder(w).Encode(ErrorResponse{
		Error:   errCode,
		Message: message,
	}); err != nil {
		slog.Error("failed to encode error response", "error", err)
	}
}

// HandleError logs err and writes the matching error response. message is
// used for internal errors so store details never reach the client.
func HandleError(w http.ResponseWriter, err error, message string) {
	if errors.Is(err, filewriter.ErrNotFound) {
		WriteError(w, http.StatusNotFound, CodeNotFound, "File not found.")
		return
	}

	if errors.Is(err, filewriter.ErrTagsDisabled) {
		WriteError(w, http.StatusNotFound, CodeNotFound, "Tagging is disabled.")
		return
	}

	if errors.Is(err, filewriter.ErrInvalidInput) {
		WriteError(w, http.StatusBadRequest, CodeInvalidBody, "Invalid request.")
		return
	}

	slog.Error("request error", "error", err)

	if message == "" {
		message = "Internal server error."
	}
	WriteError(w, http.StatusInternalServerError, CodeInternal, message)
}

// WriteJSON writes a JSON response
func WriteJSON(w http.ResponseWriter, code int, data any) error {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	return json.NewEncoder(w).Encode(data)
}
