package storage

import (
	"context"
	"time"
)

// DefaultPresignedURLExpiry bounds how long a presigned URL stays valid
// when the caller does not pick an expiry.
const DefaultPresignedURLExpiry = 15 * time.Minute

// FileStorage abstracts the object store holding exercise demonstration
// images. Clients upload and fetch directly against presigned URLs; the
// API server never proxies image bytes.
type FileStorage interface {
	// GeneratePresignedUploadURL returns a temporary URL accepting a PUT
	// of the object. The client must send the same Content-Type it was
	// signed with.
	GeneratePresignedUploadURL(ctx context.Context, objectKey string, contentType string, expires time.Duration) (string, error)

	// GeneratePresignedDownloadURL returns a temporary URL accepting a
	// GET of the object.
	GeneratePresignedDownloadURL(ctx context.Context, objectKey string, expires time.Duration) (string, error)

	// DeleteObject removes the object from the store.
	DeleteObject(ctx context.Context, objectKey string) error
}
