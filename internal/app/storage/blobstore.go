package storage

import (
	"context"

	"github.com/pocketlegal/pocketlegal/internal/app/models"
)

// BlobStore is a durable destination for recording blobs.
type BlobStore interface {
	// Upload persists the blob and returns a durable reference to it.
	Upload(ctx context.Context, userID string, data []byte, meta map[string]string) (*models.RecordingRef, error)
	// Unpin removes a previously uploaded blob. Removing a key that no
	// longer exists is not an error.
	Unpin(ctx context.Context, storageKey string) error
	// DurableURL returns a time-limited download URL for the blob.
	DurableURL(ctx context.Context, storageKey string) (string, error)
}
