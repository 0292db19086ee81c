package clientcli

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
)

// Formatter formats results for output.
type Formatter interface {
	FormatList(w io.Writer, result *ListResult) error
	FormatWrite(w io.Writer, result *FileResult) error
	FormatGet(w io.Writer, content *FileContent) error
	FormatDelete(w io.Writer, results []DeleteResult) error
	FormatSearch(w io.Writer, result *SearchResult) error
	FormatError(w io.Writer, err error) error
	FormatProfileList(w io.Writer, profiles []Profile, defaultName string) error
	FormatProfileShow(w io.Writer, profile Profile, isDefault bool) error
}

// NewFormatter returns the appropriate formatter based on flags.
func NewFormatter(jsonOutput, quiet bool) Formatter {
	if jsonOutput {
		return &JSONFormatter{}
	}
	return &HumanFormatter{Quiet: quiet}
}

// HumanFormatter outputs human-readable text.
type HumanFormatter struct {
	Quiet bool
}

// FormatList prints one filename per line, followed by its tags when the
// server has tagging enabled.
func (f *HumanFormatter) FormatList(w io.Writer, result *ListResult) error {
	if len(result.Files) == 0 {
		if !f.Quiet {
			_, _ = fmt.Fprintln(w, "No files found")
		}
		return nil
	}

	if f.Quiet || !result.TagsEnabled {
		for i := range result.Files {
			_, _ = fmt.Fprintln(w, result.Files[i].Filename)
		}
		if !f.Quiet {
			_, _ = fmt.Fprintf(w, "\n%d file(s)\n", len(result.Files))
		}
		return nil
	}

	maxNameLen := 8 // "FILENAME"
	for i := range result.Files {
		if len(result.Files[i].Filename) > maxNameLen {
			maxNameLen = len(result.Files[i].Filename)
		}
	}

	_, _ = fmt.Fprintf(w, "%-*s  %s\n", maxNameLen, "FILENAME", "TAGS")
	_, _ = fmt.Fprintf(w, "%s  %s\n", strings.Repeat("-", maxNameLen), strings.Repeat("-", 20))

	for i := range result.Files {
		item := &result.Files[i]
		_, _ = fmt.Fprintf(w, "%-*s  %s\n", maxNameLen, item.Filename, formatTags(item.Tags))
	}

	_, _ = fmt.Fprintf(w, "\n%d file(s)\n", len(result.Files))
	return nil
}

// FormatWrite reports the outcome of a create or update.
func (f *HumanFormatter) FormatWrite(w io.Writer, result *FileResult) error {
	if f.Quiet {
		_, _ = fmt.Fprintln(w, result.Filename)
		return nil
	}

	_, _ = fmt.Fprintf(w, "Saved: %s\n", result.Filename)
	if result.Tags != nil {
		_, _ = fmt.Fprintf(w, "  Tags: %s\n", formatTags(result.Tags))
	}
	return nil
}

// FormatGet prints the file content. Tags are printed first unless quiet.
func (f *HumanFormatter) FormatGet(w io.Writer, content *FileContent) error {
	if !f.Quiet && content.Tags != nil {
		_, _ = fmt.Fprintf(w, "Tags: %s\n\n", formatTags(content.Tags))
	}

	_, _ = io.WriteString(w, content.Content)
	if !strings.HasSuffix(content.Content, "\n") {
		_, _ = fmt.Fprintln(w)
	}
	return nil
}

// FormatDelete formats delete results as human-readable text.
func (f *HumanFormatter) FormatDelete(w io.Writer, results []DeleteResult) error {
	for i := range results {
		r := &results[i]
		if r.Err != nil {
			_, _ = fmt.Fprintf(w, "Error: %s - %v\n", r.Filename, r.Err)
			continue
		}
		if !f.Quiet {
			_, _ = fmt.Fprintf(w, "Deleted: %s\n", r.Filename)
		}
	}
	return nil
}

// FormatSearch prints matching filenames one per line.
func (f *HumanFormatter) FormatSearch(w io.Writer, result *SearchResult) error {
	if len(result.Filenames) == 0 {
		if !f.Quiet {
			_, _ = fmt.Fprintf(w, "No files tagged %s\n", strings.Join(result.Tags, " or "))
		}
		return nil
	}

	for _, name := range result.Filenames {
		_, _ = fmt.Fprintln(w, name)
	}
	return nil
}

// FormatError formats an error as human-readable text.
func (f *HumanFormatter) FormatError(w io.Writer, err error) error {
	_, _ = fmt.Fprintf(w, "Error: %v\n", err)
	return nil
}

// FormatProfileList formats a list of profiles as human-readable text.
func (f *HumanFormatter) FormatProfileList(w io.Writer, profiles []Profile, defaultName string) error {
	maxNameLen := 4 // "NAME"
	for i := range profiles {
		if len(profiles[i].Name) > maxNameLen {
			maxNameLen = len(profiles[i].Name)
		}
	}
	if maxNameLen > 20 {
		maxNameLen = 20
	}

	_, _ = fmt.Fprintf(w, "  %-*s  %s\n", maxNameLen, "NAME", "ENDPOINT")
	_, _ = fmt.Fprintf(w, "  %s  %s\n", strings.Repeat("-", maxNameLen), strings.Repeat("-", 30))

	for i := range profiles {
		p := &profiles[i]
		marker := " "
		if p.Name == defaultName {
			marker = "*"
		}

		name := p.Name
		if len(name) > maxNameLen {
			name = name[:maxNameLen-3] + "..."
		}

		_, _ = fmt.Fprintf(w, "%s %-*s  %s\n", marker, maxNameLen, name, p.Endpoint)
	}

	return nil
}

// FormatProfileShow formats a single profile as human-readable text.
func (f *HumanFormatter) FormatProfileShow(w io.Writer, profile Profile, isDefault bool) error {
	_, _ = fmt.Fprintf(w, "Name:     %s", profile.Name)
	if isDefault {
		_, _ = fmt.Fprintf(w, " (default)")
	}
	_, _ = fmt.Fprintln(w)
	_, _ = fmt.Fprintf(w, "Endpoint: %s\n", profile.Endpoint)
	return nil
}

// JSONFormatter outputs JSON.
type JSONFormatter struct{}

// FormatList formats list results as JSON.
func (f *JSONFormatter) FormatList(w io.Writer, result *ListResult) error {
	return writeJSON(w, result)
}

// FormatWrite formats a create or update result as JSON.
func (f *JSONFormatter) FormatWrite(w io.Writer, result *FileResult) error {
	return writeJSON(w, result)
}

// FormatGet formats file content as JSON.
func (f *JSONFormatter) FormatGet(w io.Writer, content *FileContent) error {
	return writeJSON(w, content)
}

// FormatDelete formats delete results as JSON.
func (f *JSONFormatter) FormatDelete(w io.Writer, results []DeleteResult) error {
	// Convert errors to strings for JSON output
	type jsonResult struct {
		Filename string `json:"filename"`
		Deleted  bool   `json:"deleted"`
		Error    string `json:"error,omitempty"`
	}

	output := struct {
		Results []jsonResult `json:"results"`
	}{
		Results: make([]jsonResult, len(results)),
	}

	for i, r := range results {
		jr := jsonResult{
			Filename: r.Filename,
			Deleted:  r.Deleted,
		}
		if r.Err != nil {
			jr.Error = r.Err.Error()
		}
		output.Results[i] = jr
	}

	return writeJSON(w, output)
}

// FormatSearch formats search results as JSON.
func (f *JSONFormatter) FormatSearch(w io.Writer, result *SearchResult) error {
	return writeJSON(w, result)
}

// FormatError formats an error as JSON.
func (f *JSONFormatter) FormatError(w io.Writer, err error) error {
	output := struct {
		Error string `json:"error"`
	}{
		Error: err.Error(),
	}
	return writeJSON(w, output)
}

// FormatProfileList formats a list of profiles as JSON.
func (f *JSONFormatter) FormatProfileList(w io.Writer, profiles []Profile, defaultName string) error {
	type jsonProfile struct {
		Name     string `json:"name"`
		Endpoint string `json:"endpoint"`
		Default  bool   `json:"default,omitempty"`
	}

	output := struct {
		Profiles []jsonProfile `json:"profiles"`
	}{
		Profiles: make([]jsonProfile, len(profiles)),
	}

	for i := range profiles {
		output.Profiles[i] = jsonProfile{
			Name:     profiles[i].Name,
			Endpoint: profiles[i].Endpoint,
			Default:  profiles[i].Name == defaultName,
		}
	}

	return writeJSON(w, output)
}

// FormatProfileShow formats a single profile as JSON.
func (f *JSONFormatter) FormatProfileShow(w io.Writer, profile Profile, isDefault bool) error {
	output := struct {
		Name     string `json:"name"`
		Endpoint string `json:"endpoint"`
		Default  bool   `json:"default"`
	}{
		Name:     profile.Name,
		Endpoint: profile.Endpoint,
		Default:  isDefault,
	}

	return writeJSON(w, output)
}

// writeJSON writes a value as indented JSON.
func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func formatTags(tags []string) string {
	if len(tags) == 0 {
		return "-"
	}
	return strings.Join(tags, ", ")
}
