package http

import (
	"context"
	"log/slog"
	"net/http"
	"net/url"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/sagarc03/filewriter"
)

type filenameKey struct{}

// RequestLogger logs one line per request with method, path, status, bytes
// written and duration.
func RequestLogger(logger *slog.Logger) func(http.Handler) http.Handler {
	if logger == nil {
		logger = slog.Default()
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
			start := time.Now()

			next.ServeHTTP(ww, r)

			status := ww.Status()
			if status == 0 {
				status = http.StatusOK
			}

			logger.LogAttrs(r.Context(), slog.LevelInfo, "request",
				slog.String("method", r.Method),
				slog.String("path", r.URL.Path),
				slog.Int("status", status),
				slog.Int("bytes", ww.BytesWritten()),
				slog.Duration("duration", time.Since(start)),
			)
		})
	}
}

// MaxBodySize caps request bodies at limit bytes. A limit of 0 disables the cap.
func MaxBodySize(limit int64) func(http.Handler) http.Handler {
	if limit <= 0 {
		return func(next http.Handler) http.Handler {
			return next
		}
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.Body != nil {
				r.Body = http.MaxBytesReader(w, r.Body, limit)
			}
			next.ServeHTTP(w, r)
		})
	}
}

// FilenameValidation rejects requests whose {filename} URL parameter is not
// a single safe path segment.
func FilenameValidation(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		name, err := filenameParam(r)
		if err != nil || !filewriter.IsValidFilename(name) {
			WriteError(w, http.StatusBadRequest, CodeInvalidFilename, "Invalid filename.")
			return
		}

		next.ServeHTTP(w, r.WithContext(withFilename(r, name)))
	})
}

// filenameParam returns the decoded {filename} parameter. chi matches on
// r.URL.RawPath when it is set and on the already decoded r.URL.Path
// otherwise, so only the raw form needs unescaping.
func filenameParam(r *http.Request) (string, error) {
	name := chi.URLParam(r, "filename")
	if r.URL.RawPath == "" {
		return name, nil
	}
	return url.PathUnescape(name)
}

func withFilename(r *http.Request, name string) context.Context {
	return context.WithValue(r.Context(), filenameKey{}, name)
}

func filenameFrom(r *http.Request) string {
	name, _ := r.Context().Value(filenameKey{}).(string)
	return name
}
