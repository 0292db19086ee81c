package filewriter

import (
	"strconv"
	"strings"
	"time"
	"unicode"
	"unicode/utf8"
)

const filenameSuffix = ".txt"

// NewFilename derives a filename from the millisecond timestamp of t.
// Two creates in the same millisecond produce the same name and the later
// write wins.
func NewFilename(t time.Time) string {
	return strconv.FormatInt(t.UnixMilli(), 10) + filenameSuffix
}

// IsValidFilename reports whether name is usable as a single object key
// segment. It rejects:
//   - empty names, "." and ".."
//   - path separators and ".." anywhere
//   - the characters \ ? # ~
//   - invalid UTF-8
//   - NUL, control characters, DEL and whitespace
func IsValidFilename(name string) bool {
	if name == "" || name == "." {
		return false
	}

	if strings.ContainsAny(name, `/\?#~`) {
		return false
	}

	if strings.Contains(name, "..") {
		return false
	}

	if !utf8.ValidString(name) {
		return false
	}

	for _, r := range name {
		if r < 0x20 || r == 0x7f || unicode.IsSpace(r) {
			return false
		}
	}

	return true
}

// ParseTags splits a comma-separated tag list, trimming whitespace and
// dropping empty items.
func ParseTags(raw string) []string {
	parts := strings.Split(raw, ",")
	tags := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			tags = append(tags, p)
		}
	}
	return tags
}

// decodeText returns b as a string with invalid UTF-8 sequences replaced by U+FFFD.
func decodeText(b []byte) string {
	return strings.ToValidUTF8(string(b), string(utf8.RuneError))
}
