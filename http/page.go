package http

import (
	"bytes"
	_ "embed"
	"html/template"
	"log/slog"
	"net/http"
)

//go:embed static/index.html
var indexHTML []byte

var listingTemplate = template.Must(template.New("listing").Parse(`<!DOCTYPE html>
<html lang="en">
<head>
    <meta charset="UTF-8">
    <meta name="viewport" content="width=device-width, initial-scale=1.0">
    <title>File Writer</title>
</head>
<body>
    <h1>File Writer</h1>
    <form id="uploadForm" action="/files" method="POST">
        <textarea name="text" id="text" cols="30" rows="10" placeholder="Enter file content"></textarea><br>
        {{- if .TagsEnabled}}
        <input type="text" name="tags" id="tags" placeholder="Tags, comma separated"><br>
        {{- end}}
        <button type="submit">Upload File</button>
    </form>
    <h2>Files:</h2>
    <ul>
        {{- range .Files}}
        <li>{{.Filename}}{{if .Tags}} [{{range $i, $t := .Tags}}{{if $i}}, {{end}}{{$t}}{{end}}]{{end}}</li>
        {{- end}}
    </ul>
    <script>
        document.getElementById('uploadForm').addEventListener('submit', async (event) => {
            event.preventDefault();
            const body = { text: document.getElementById('text').value };
            const tagsInput = document.getElementById('tags');
            if (tagsInput) {
                const tags = tagsInput.value.split(',').map(t => t.trim()).filter(t => t.length > 0);
                if (tags.length > 0) {
                    body.tags = tags;
                }
            }

            const response = await fetch('/files', {
                method: 'POST',
                headers: { 'Content-Type': 'application/json' },
                body: JSON.stringify(body)
            });

            if (response.ok) {
                alert('File uploaded successfully!');
                location.reload();
            } else {
                alert('Failed to upload file.');
            }
        });
    </script>
</body>
</html>
`))

type listingPage struct {
	TagsEnabled bool
	Files       []listingFile
}

type listingFile struct {
	Filename string
	Tags     []string
}

func writeStaticIndex(w http.ResponseWriter) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(indexHTML)
}

// writeListing renders into a buffer first so a template error can still
// produce a clean 500.
func writeListing(w http.ResponseWriter, page listingPage) {
	var buf bytes.Buffer
	if err := listingTemplate.Execute(&buf, page); err != nil {
		slog.Error("render listing", "error", err)
		writeListingError(w)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = buf.WriteTo(w)
}
