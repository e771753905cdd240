// Package storage persists a generated benchmark: corpus files and manifests
// go to a local directory or an S3 prefix, and documents can additionally be
// published to a Qdrant collection.
package storage

import (
	"context"
	"fmt"
	"path"
	"strings"
)

// CorpusDir is the directory (or key prefix) holding document files.
const CorpusDir = "corpus"

// Storage is a flat, name-addressed file store rooted at an output location.
// Names use forward slashes regardless of backend.
type Storage interface {
	// Put writes data under name, replacing any existing object.
	Put(ctx context.Context, name string, data []byte) error

	// Get reads the object stored under name.
	Get(ctx context.Context, name string) ([]byte, error)

	// List returns the names of objects directly under dir, sorted.
	List(ctx context.Context, dir string) ([]string, error)

	// Delete removes the objects with the given names. Missing names are ignored.
	Delete(ctx context.Context, names ...string) error

	// Location describes where objects are written, for user-facing output.
	Location() string
}

// StorageType represents the storage backend type
type StorageType string

const (
	StorageTypeLocal StorageType = "local"
	StorageTypeS3    StorageType = "s3"
)

// StorageConfig holds configuration for storage
type StorageConfig struct {
	Type         StorageType
	LocalPath    string // For local storage
	S3Bucket     string // For S3 storage
	S3Prefix     string // Key prefix inside the bucket
	S3Region     string // For S3 storage
	AWSAccessKey string
	AWSSecretKey string
}

// NewStorage creates a new storage instance based on configuration
func NewStorage(ctx context.Context, cfg StorageConfig) (Storage, error) {
	switch cfg.Type {
	case StorageTypeLocal, "":
		return NewLocalStorage(cfg.LocalPath)
	case StorageTypeS3:
		return NewS3Storage(ctx, cfg)
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnknownStorageType, cfg.Type)
	}
}

// CorpusName returns the storage name of a corpus file.
func CorpusName(filename string) string {
	return path.Join(CorpusDir, filename)
}

// ClearCorpus deletes every document file (doc_*.txt) left in the corpus
// directory by a previous run. It returns the number of files removed.
func ClearCorpus(ctx context.Context, s Storage, isDocument func(name string) bool) (int, error) {
	names, err := s.List(ctx, CorpusDir)
	if err != nil {
		return 0, fmt.Errorf("list corpus: %w", err)
	}

	var stale []string
	for _, name := range names {
		if isDocument(path.Base(name)) {
			stale = append(stale, name)
		}
	}
	if len(stale) == 0 {
		return 0, nil
	}
	if err := s.Delete(ctx, stale...); err != nil {
		return 0, fmt.Errorf("delete corpus: %w", err)
	}
	return len(stale), nil
}

// cleanName normalizes a storage name and strips leading slashes.
func cleanName(name string) string {
	return strings.TrimPrefix(path.Clean("/"+name), "/")
}
