// Package http exposes the filewriter file API over HTTP.
//
// Routes:
//
//	GET    /                  landing page (static) or file listing (listing)
//	GET    /files             list files, with tags when tagging is enabled
//	POST   /files             create a file from {"text", "tags"}
//	GET    /files/{filename}  read a file
//	PUT    /files/{filename}  overwrite a file
//	DELETE /files/{filename}  delete a file and its tags
//	GET    /search?tags=a,b   filenames carrying any of the tags (tagging only)
//
// Errors are JSON bodies of the form {"error": "<code>", "message": "<text>"}.
// Store failures are logged and reported as internal_error without detail.
//
// # Usage
//
//	handler := http.NewHandler(&http.HandlerConfig{
//	    RootMode:    filewriter.RootStatic,
//	    MaxBodySize: 1 << 20,
//	}, service)
//	srv := &nethttp.Server{Addr: ":3000", Handler: handler.Router()}
//
// The service parameter must implement the Service interface; *filewriter.FileService does.
package http
