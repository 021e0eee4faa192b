package storage

import (
	"context"
	"fmt"
	"io"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/google/uuid"
)

// FileStore persists uploaded binary content under unique names. Save never
// reuses a name, so replacing a file is always write-new-then-delete-old.
type FileStore interface {
	// Save stores content under a freshly generated name derived from the
	// original filename and returns that name.
	Save(ctx context.Context, originalFilename string, content io.Reader) (string, error)
	// Delete removes a previously stored file.
	Delete(ctx context.Context, name string) error
	// URL resolves a stored name to the path or URL it is served from.
	URL(name string) string
}

var unsafeFilenameChars = regexp.MustCompile(`[^A-Za-z0-9._-]+`)

// sanitizeFilename strips directory components and anything outside a
// conservative character set, closing off path traversal through upload names.
func sanitizeFilename(name string) string {
	name = filepath.Base(name)
	name = unsafeFilenameChars.ReplaceAllString(name, "_")
	name = strings.Trim(name, "._")
	if name == "" {
		name = "file"
	}
	return name
}

// uniqueName prefixes a random token so two uploads of the same file never
// collide.
func uniqueName(prefix, originalFilename string) string {
	token := strings.ReplaceAll(uuid.NewString(), "-", "")
	if prefix != "" {
		return fmt.Sprintf("%s_%s_%s", prefix, token, sanitizeFilename(originalFilename))
	}
	return fmt.Sprintf("%s_%s", token, sanitizeFilename(originalFilename))
}

// Ext returns the lowercased filename extension without the dot.
func Ext(filename string) string {
	ext := strings.TrimPrefix(filepath.Ext(filename), ".")
	return strings.ToLower(ext)
}

// AllowedExtension reports whether filename carries one of the allowed
// extensions.
func AllowedExtension(filename string, allowed []string) bool {
	ext := Ext(filename)
	if ext == "" {
		return false
	}
	for _, a := range allowed {
		if ext == a {
			return true
		}
	}
	return false
}
