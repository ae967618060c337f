package storage

import "io"

// BlobStore holds uploaded file contents, addressed by an opaque path handle
// recorded alongside the file metadata.
type BlobStore interface {
	// Save writes the blob and returns its path handle and size in bytes.
	Save(ownerID, fileID string, r io.Reader) (string, int64, error)

	// Open opens a previously saved blob for reading.
	Open(path string) (io.ReadCloser, error)

	// Remove deletes the blob bytes. A missing blob is not an error.
	Remove(path string) error
}
