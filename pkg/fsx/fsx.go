// Package fsx abstracts object storage behind a minimal file system.
package fsx

import (
	"context"
	"io"
)

// FileWriter stores and removes objects
type FileWriter interface {
	WriteFile(ctx context.Context, path string, data io.Reader, contentType string) error
	DeleteFile(ctx context.Context, path string) error
}

// FileSystem is the media store used for uploads
type FileSystem interface {
	FileWriter

	// Join builds an object path from its segments
	Join(elem ...string) string

	// URL returns the public location of a stored object
	URL(path string) string
}
