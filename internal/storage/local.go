package storage

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
)

// LocalStore writes files to a directory on disk, served under baseURL by the
// HTTP layer.
type LocalStore struct {
	dir     string
	prefix  string
	baseURL string
}

func NewLocalStore(dir, prefix, baseURL string) (*LocalStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create upload dir %s: %w", dir, err)
	}

	return &LocalStore{dir: dir, prefix: prefix, baseURL: baseURL}, nil
}

func (s *LocalStore) Save(_ context.Context, originalFilename string, content io.Reader) (string, error) {
	name := uniqueName(s.prefix, originalFilename)

	dst, err := os.Create(filepath.Join(s.dir, name))
	if err != nil {
		return "", fmt.Errorf("create file %s: %w", name, err)
	}

	if _, err := io.Copy(dst, content); err != nil {
		dst.Close()
		os.Remove(dst.Name())
		return "", fmt.Errorf("write file %s: %w", name, err)
	}

	if err := dst.Close(); err != nil {
		return "", fmt.Errorf("close file %s: %w", name, err)
	}

	return name, nil
}

func (s *LocalStore) Delete(_ context.Context, name string) error {
	// A stored name never contains a path separator, but uploads are user
	// input at one remove; re-sanitize before touching the filesystem.
	err := os.Remove(filepath.Join(s.dir, sanitizeFilename(name)))
	if err != nil {
		return fmt.Errorf("remove file %s: %w", name, err)
	}
	return nil
}

func (s *LocalStore) URL(name string) string {
	return fmt.Sprintf("%s/%s", s.baseURL, name)
}

// Dir exposes the backing directory so the server can mount a file handler
// over it.
func (s *LocalStore) Dir() string {
	return s.dir
}
