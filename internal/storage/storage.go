package storage

import (
	"errors"
	"fmt"
	"io"

	"github.com/steiza/a2docstore/internal/config"
)

var (
	ErrFileNotFound = errors.New("file not found")
	ErrExists       = errors.New("document storage already exists")
)

// Store holds the bytes of uploaded documents, keyed by the catalog id plus
// the original filename. Each id maps to exactly one file once a write
// succeeds.
type Store interface {
	// Write creates fresh storage for the given id and writes the one file.
	// It fails with ErrExists if storage for that id is already present.
	Write(id int64, filename string, r io.Reader) error

	// Open returns a reader over the stored file, or ErrFileNotFound.
	Open(id int64, filename string) (io.ReadCloser, error)

	// Delete removes everything stored under the id, or ErrFileNotFound if
	// nothing is there.
	Delete(id int64) error
}

// New selects a storage backend from config. Local disk is the default;
// S3-compatible object storage is for deployments without a persistent disk.
func New(cfg *config.Config) (Store, error) {
	switch cfg.StorageBackend {
	case "", "fs":
		return NewFSStore(cfg.DocsPath)
	case "s3":
		return NewS3Store(S3Config{
			Region:    cfg.S3Region,
			Bucket:    cfg.S3Bucket,
			AccessKey: cfg.S3AccessKey,
			SecretKey: cfg.S3SecretKey,
			Endpoint:  cfg.S3Endpoint,
		})
	default:
		return nil, fmt.Errorf("unknown storage backend %q", cfg.StorageBackend)
	}
}
