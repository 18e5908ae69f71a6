package store

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"mime"
	"os"
	"path/filepath"
	"strings"

	"github.com/ayush/ai-diary/backend/internal/apperr"
)

// DiskStore keeps uploaded files in a local directory.
type DiskStore struct {
	dir string
}

// NewDiskStore creates dir if it does not exist.
func NewDiskStore(dir string) (*DiskStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("upload dir: %w", err)
	}
	return &DiskStore{dir: dir}, nil
}

// Dir returns the directory files are written to.
func (s *DiskStore) Dir() string { return s.dir }

func (s *DiskStore) path(key string) (string, error) {
	if !ValidKey(key) {
		return "", apperr.Invalid("invalid file name")
	}
	return filepath.Join(s.dir, key), nil
}

// Upload writes data under key. An existing file is never replaced; the
// call fails with ErrFileExists instead.
func (s *DiskStore) Upload(_ context.Context, key string, data []byte, _ string) error {
	p, err := s.path(key)
	if err != nil {
		return err
	}
	f, err := os.OpenFile(p, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if errors.Is(err, fs.ErrExist) {
		return ErrFileExists
	}
	if err != nil {
		return fmt.Errorf("create %s: %w", key, err)
	}
	_, err = f.Write(data)
	if cerr := f.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		os.Remove(p)
		return fmt.Errorf("write %s: %w", key, err)
	}
	return nil
}

// Download returns the file bytes and a content type guessed from the extension.
func (s *DiskStore) Download(_ context.Context, key string) ([]byte, string, error) {
	p, err := s.path(key)
	if err != nil {
		return nil, "", err
	}
	data, err := os.ReadFile(p)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, "", ErrFileNotFound
	}
	if err != nil {
		return nil, "", fmt.Errorf("read %s: %w", key, err)
	}
	return data, mime.TypeByExtension(filepath.Ext(key)), nil
}

// ValidKey reports whether key is a plain file name with no directory part.
func ValidKey(key string) bool {
	if key == "" || key == "." || key == ".." {
		return false
	}
	return !strings.ContainsAny(key, `/\`)
}
