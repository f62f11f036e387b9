package storage

import (
	"fmt"
	"sync"

	"github.com/google/uuid"

	"github.com/pocketlegal/pocketlegal/internal/app/models"
	"github.com/pocketlegal/pocketlegal/internal/common"
)

// LocalStore keeps recording blobs in memory for the lifetime of the app
// session. It is the fallback destination when durable storage is gated or
// unreachable.
type LocalStore struct {
	mu    sync.RWMutex
	blobs map[string][]byte
}

func NewLocalStore() *LocalStore {
	return &LocalStore{blobs: make(map[string][]byte)}
}

// Save stores the blob and returns a local reference. The reference stays
// resolvable until Release is called or the app session ends.
func (s *LocalStore) Save(data []byte) *models.RecordingRef {
	handle := uuid.New().String()

	cp := make([]byte, len(data))
	copy(cp, data)

	s.mu.Lock()
	s.blobs[handle] = cp
	s.mu.Unlock()

	return &models.RecordingRef{
		Kind: models.RefLocal,
		URI:  fmt.Sprintf("local://%s", handle),
	}
}

// Open returns the blob for a local reference.
func (s *LocalStore) Open(ref *models.RecordingRef) ([]byte, error) {
	handle, err := localHandle(ref)
	if err != nil {
		return nil, err
	}

	s.mu.RLock()
	data, ok := s.blobs[handle]
	s.mu.RUnlock()

	if !ok {
		return nil, fmt.Errorf("recording %s: %w", ref.URI, common.ErrNotFound)
	}
	return data, nil
}

// Release drops the blob behind a local reference. Releasing an unknown
// reference is not an error.
func (s *LocalStore) Release(ref *models.RecordingRef) {
	handle, err := localHandle(ref)
	if err != nil {
		return
	}

	s.mu.Lock()
	delete(s.blobs, handle)
	s.mu.Unlock()
}

// Len reports how many blobs are currently held.
func (s *LocalStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.blobs)
}

func localHandle(ref *models.RecordingRef) (string, error) {
	if ref == nil || ref.Kind != models.RefLocal {
		return "", fmt.Errorf("not a local recording reference: %w", common.ErrInternal)
	}
	const prefix = "local://"
	if len(ref.URI) <= len(prefix) || ref.URI[:len(prefix)] != prefix {
		return "", fmt.Errorf("malformed local recording uri %q: %w", ref.URI, common.ErrInternal)
	}
	return ref.URI[len(prefix):], nil
}
