package storage

import "errors"

var (
	ErrQdrantUnreachable  = errors.New("qdrant server unreachable")
	ErrDocumentNotFound   = errors.New("document not found")
	ErrObjectNotFound     = errors.New("object not found")
	ErrUnknownStorageType = errors.New("unknown storage type")
	ErrMissingBucket      = errors.New("s3 bucket is required for s3 storage")
)
