package storage

import (
	"context"
	"errors"
	"io"
)

// ErrNotFound is returned when the requested path does not exist in storage.
var ErrNotFound = errors.New("file not found in storage")

// Storage abstracts where uploaded files end up. Paths are relative and
// storage-rooted; callers never see absolute locations.
type Storage interface {
	// Save writes content at the given relative path, replacing any
	// previous content.
	Save(ctx context.Context, path string, content io.Reader) error

	// Open returns a reader for the file at the given relative path.
	// The caller owns closing the returned reader.
	Open(ctx context.Context, path string) (io.ReadCloser, error)

	// Remove deletes the file at the given relative path. Removing a
	// missing file is not an error.
	Remove(ctx context.Context, path string) error
}
