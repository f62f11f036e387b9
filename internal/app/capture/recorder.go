package capture

import (
	"context"
	"fmt"
	"sync"

	"github.com/pocketlegal/pocketlegal/internal/common"
)

// Recorder owns the single capture slot. Starting a new session while one is
// still recording or awaiting save/discard is rejected; there is no queueing
// of capture attempts.
type Recorder struct {
	mu     sync.Mutex
	device Device
	opts   Options
	active *Session
}

// NewRecorder builds a Recorder for the device.
func NewRecorder(device Device, opts Options) *Recorder {
	return &Recorder{device: device, opts: opts}
}

// Start creates a fresh session and begins recording. Returns ErrCaptureBusy
// if the slot is taken by a live session.
func (r *Recorder) Start(ctx context.Context) (*Session, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.active != nil {
		switch r.active.State() {
		case StateRecording, StateStopped:
			return nil, fmt.Errorf("%w: session is %s", common.ErrCaptureBusy, r.active.State())
		}
	}

	s := NewSession(r.device, r.opts)
	if err := s.Start(ctx); err != nil {
		return nil, err
	}
	r.active = s
	return s, nil
}

// Active returns the current session, or nil when the slot is free or the
// last session has closed.
func (r *Recorder) Active() *Session {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.active != nil && r.active.State() == StateClosed {
		r.active = nil
	}
	return r.active
}
