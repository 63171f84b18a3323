// Package storage defines the asset store abstraction. It provides a unified
// interface over physical file backends (local filesystem, S3-compatible
// object storage) keyed by a project ID and a client-visible filename.
//
// Backends know nothing about ownership or metadata; they only guarantee
// crash-safe physical operations on root/{projectID}/{filename}.
package storage

import (
	"context"
	"fmt"
	"io"
)

// Store is the interface every asset store backend must implement.
//
// All mutating operations validate the filename before touching the backend
// and report failures through the sentinel errors in pkg/common:
// ErrValidation for unsafe names, ErrConflict for an occupied destination,
// ErrNotFound for a missing source, ErrStorage for backend failures.
type Store interface {
	// Put writes content under the project, failing if the destination
	// already exists. The write is atomic: a crash never leaves a partial
	// file at the final key.
	Put(ctx context.Context, projectID uint, filename string, content []byte) error

	// Open returns the stored content. The caller must close the reader.
	Open(ctx context.Context, projectID uint, filename string) (io.ReadCloser, error)

	// Exists reports whether a file is stored under the key.
	Exists(ctx context.Context, projectID uint, filename string) (bool, error)

	// Rename atomically moves a file within the same project directory.
	Rename(ctx context.Context, projectID uint, oldName, newName string) error

	// Delete removes a file. Deleting an absent file is a success.
	Delete(ctx context.Context, projectID uint, filename string) error

	// Type returns the backend identifier ("local" or "s3").
	Type() string
}

// Key builds the canonical object key for a project-scoped filename.
func Key(projectID uint, filename string) string {
	return fmt.Sprintf("%d/%s", projectID, filename)
}
