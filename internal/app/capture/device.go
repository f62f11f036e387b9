package capture

import (
	"context"
	"fmt"
	"os"
)

// Stream is an acquired capture device stream.
type Stream interface {
	// Finalize stops capture, releases the underlying device and returns the
	// accumulated media as a single blob.
	Finalize() ([]byte, error)
}

// Device acquires the platform audio/video capture facility. Acquisition can
// fail on missing permissions or unavailable hardware; both abort the
// capture attempt.
type Device interface {
	Acquire(ctx context.Context, audio, video bool) (Stream, error)
}

// FileDevice is a demo device backed by a media file on disk; the shell uses
// it where no real capture hardware is wired. Acquire verifies the file is
// readable, Finalize returns its contents.
type FileDevice struct {
	Path string
}

func (d *FileDevice) Acquire(ctx context.Context, audio, video bool) (Stream, error) {
	if d.Path == "" {
		return nil, fmt.Errorf("no capture source configured")
	}
	if _, err := os.Stat(d.Path); err != nil {
		return nil, fmt.Errorf("capture source: %w", err)
	}
	return &fileStream{path: d.Path}, nil
}

type fileStream struct {
	path string
}

func (s *fileStream) Finalize() ([]byte, error) {
	return os.ReadFile(s.path)
}
