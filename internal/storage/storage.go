// Package storage persists profile photos behind a small store
// interface so the deployment can pick local disk or an in-memory
// store without touching request-time logic.
package storage

import (
	"context"
	"errors"
	"fmt"
	"io"

	"clinix/internal/config"
)

// ErrObjectNotFound is returned when deleting a photo that is not there.
var ErrObjectNotFound = errors.New("stored object not found")

// Store saves photo objects and resolves their retrieval URLs.
type Store interface {
	// Save writes the object and returns the URL clients fetch it from.
	Save(ctx context.Context, filename string, r io.Reader) (string, error)
	// Delete removes the object behind a previously returned URL.
	Delete(ctx context.Context, url string) error
}

// New builds the store selected by configuration.
func New(cfg *config.Config) (Store, error) {
	switch cfg.StorageDriver {
	case config.StorageLocal:
		return NewLocalStore(cfg.UploadDir, "/uploads")
	case config.StorageMemory:
		return NewMemoryStore(), nil
	default:
		return nil, fmt.Errorf("unknown storage driver %q", cfg.StorageDriver)
	}
}
