package storage

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"sort"
)

// LocalStorage implements Storage interface for local filesystem
type LocalStorage struct {
	basePath string
}

// NewLocalStorage creates a new local storage instance
func NewLocalStorage(basePath string) (*LocalStorage, error) {
	if basePath == "" {
		return nil, fmt.Errorf("local storage path is required")
	}
	// Create base directory if it doesn't exist
	if err := os.MkdirAll(basePath, 0755); err != nil {
		return nil, fmt.Errorf("failed to create storage directory: %w", err)
	}

	return &LocalStorage{
		basePath: basePath,
	}, nil
}

func (s *LocalStorage) fullPath(name string) string {
	return filepath.Join(s.basePath, filepath.FromSlash(cleanName(name)))
}

// Put writes a file, creating parent directories as needed.
func (s *LocalStorage) Put(ctx context.Context, name string, data []byte) error {
	fullPath := s.fullPath(name)

	if err := os.MkdirAll(filepath.Dir(fullPath), 0755); err != nil {
		return fmt.Errorf("failed to create directory: %w", err)
	}
	if err := os.WriteFile(fullPath, data, 0644); err != nil {
		os.Remove(fullPath) // Clean up on error
		return fmt.Errorf("failed to write file: %w", err)
	}
	return nil
}

// Get reads a file from local storage
func (s *LocalStorage) Get(ctx context.Context, name string) ([]byte, error) {
	data, err := os.ReadFile(s.fullPath(name))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrObjectNotFound, name)
		}
		return nil, fmt.Errorf("failed to read file: %w", err)
	}
	return data, nil
}

// List returns regular files directly under dir. A missing dir is empty.
func (s *LocalStorage) List(ctx context.Context, dir string) ([]string, error) {
	entries, err := os.ReadDir(s.fullPath(dir))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to read directory: %w", err)
	}

	names := make([]string, 0, len(entries))
	for _, e := range entries {
		if e.Type().IsRegular() {
			names = append(names, path.Join(cleanName(dir), e.Name()))
		}
	}
	sort.Strings(names)
	return names, nil
}

// Delete removes files from local storage
func (s *LocalStorage) Delete(ctx context.Context, names ...string) error {
	for _, name := range names {
		err := os.Remove(s.fullPath(name))
		if err != nil && !errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("failed to delete file: %w", err)
		}
	}
	return nil
}

// Location returns the base directory.
func (s *LocalStorage) Location() string {
	return s.basePath
}
