package storage

import (
	"context"
	"io"
	"os"
	"path/filepath"
)

// LocalStore writes evidence files under a base directory on disk. Saved
// paths are returned relative to the server root so they can be served
// from the static /uploads route.
type LocalStore struct {
	baseDir string
}

func NewLocalStore(baseDir string) (*LocalStore, error) {
	if err := os.MkdirAll(baseDir, 0o755); err != nil {
		return nil, err
	}
	return &LocalStore{baseDir: baseDir}, nil
}

func (s *LocalStore) Save(ctx context.Context, key, contentType string, body io.Reader) (string, error) {
	dst := filepath.Join(s.baseDir, key)
	f, err := os.Create(dst)
	if err != nil {
		return "", err
	}
	defer f.Close()

	if _, err := io.Copy(f, body); err != nil {
		os.Remove(dst)
		return "", err
	}
	return filepath.ToSlash(filepath.Join("uploads", "monitoring", key)), nil
}

func (s *LocalStore) Open(ctx context.Context, key string) (io.ReadCloser, error) {
	return os.Open(filepath.Join(s.baseDir, filepath.Base(key)))
}

func (s *LocalStore) Delete(ctx context.Context, key string) error {
	return os.Remove(filepath.Join(s.baseDir, filepath.Base(key)))
}

// BaseDir exposes the directory files are written to (used by the janitor).
func (s *LocalStore) BaseDir() string {
	return s.baseDir
}
