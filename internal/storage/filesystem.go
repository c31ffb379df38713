package storage

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"animalrescue/internal/domain"
)

// FileStore serves page media (hero videos, local images) from a directory.
type FileStore struct {
	basePath  string
	urlPrefix string
}

// NewFileStore opens an existing directory as a FileStore. Media URLs are
// built under urlPrefix.
func NewFileStore(basePath, urlPrefix string) (*FileStore, error) {
	basePath = strings.TrimSpace(basePath)
	if basePath == "" {
		return nil, errors.New("storage: base path is required")
	}
	info, err := os.Stat(basePath)
	if err != nil {
		return nil, fmt.Errorf("storage: base path: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("storage: base path %s is not a directory", basePath)
	}
	return &FileStore{basePath: basePath, urlPrefix: strings.TrimRight(urlPrefix, "/")}, nil
}

// BasePath returns the configured root directory.
func (s *FileStore) BasePath() string {
	if s == nil {
		return ""
	}
	return s.basePath
}

// URL returns the public path for key. Absolute URLs are returned unchanged.
func (s *FileStore) URL(key string) string {
	if strings.HasPrefix(key, "http://") || strings.HasPrefix(key, "https://") {
		return key
	}
	cleanKey, err := sanitizeKey(key)
	if err != nil {
		return key
	}
	if s == nil {
		return "/" + cleanKey
	}
	return s.urlPrefix + "/" + cleanKey
}

// Open returns the file stored at key. Missing files, directories and a nil
// store report domain.ErrNotFound.
func (s *FileStore) Open(ctx context.Context, key string) (*os.File, fs.FileInfo, error) {
	if s == nil {
		return nil, nil, fmt.Errorf("storage: no store configured: %w", domain.ErrNotFound)
	}
	if err := ctx.Err(); err != nil {
		return nil, nil, err
	}
	cleanKey, err := sanitizeKey(key)
	if err != nil {
		return nil, nil, fmt.Errorf("%w: %v", domain.ErrNotFound, err)
	}
	fullPath := filepath.Join(s.basePath, filepath.FromSlash(cleanKey))
	f, err := os.Open(fullPath)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil, fmt.Errorf("storage: %s: %w", cleanKey, domain.ErrNotFound)
		}
		return nil, nil, fmt.Errorf("storage: open file: %w", err)
	}
	info, err := f.Stat()
	if err != nil {
		f.Close()
		return nil, nil, fmt.Errorf("storage: stat file: %w", err)
	}
	if info.IsDir() {
		f.Close()
		return nil, nil, fmt.Errorf("storage: %s is a directory: %w", cleanKey, domain.ErrNotFound)
	}
	return f, info, nil
}

// sanitizeKey normalizes a key and prevents escaping the storage root.
func sanitizeKey(key string) (string, error) {
	key = strings.TrimSpace(key)
	if key == "" {
		return "", errors.New("storage: key is required")
	}
	key = strings.ReplaceAll(key, "\\", "/")
	key = strings.TrimPrefix(key, "./")
	key = strings.TrimLeft(key, "/")
	cleaned := filepath.Clean(key)
	cleaned = strings.ReplaceAll(cleaned, "\\", "/")
	if cleaned == "." || cleaned == ".." || strings.HasPrefix(cleaned, "../") {
		return "", errors.New("storage: invalid key")
	}
	return cleaned, nil
}
