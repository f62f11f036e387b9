// Package capture implements the recording session state machine and the
// single-slot recorder that owns it.
//
// # Overview
//
// A Session walks Idle → Recording → Stopped → closed (committed or
// discarded). It owns the capture device stream for exactly one recording
// attempt and never outlives it. Stop finalizes the media into a single blob
// synchronously, so by the time Stop returns the artifact is complete and a
// later commit reads it without racing the device callback.
//
// A Session is driven from a single interaction goroutine; it is not safe
// for concurrent use. The only background work is the location snapshot,
// which communicates through a buffered channel and can never block or fail
// the recording.
package capture

import (
	"context"
	"fmt"
	"time"

	"github.com/pocketlegal/pocketlegal/internal/app/location"
	"github.com/pocketlegal/pocketlegal/internal/app/report"
	"github.com/pocketlegal/pocketlegal/internal/common"
	"github.com/pocketlegal/pocketlegal/internal/logging"
)

// State is the session lifecycle phase.
type State int

const (
	StateIdle State = iota
	StateRecording
	StateStopped
	StateClosed
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateRecording:
		return "recording"
	case StateStopped:
		return "stopped"
	case StateClosed:
		return "closed"
	default:
		return "unknown"
	}
}

// Options carries the session collaborators. Device is required; the rest
// have safe zero-value fallbacks.
type Options struct {
	Locator         location.Provider
	Geocoder        location.Geocoder
	LocationTimeout time.Duration
	Reporter        report.Reporter
	Logger          logging.Logger
	Clock           func() time.Time
}

// Session is one recording attempt.
type Session struct {
	device Device
	opts   Options

	state     State
	stream    Stream
	startedAt time.Time
	stoppedAt time.Time
	blob      []byte

	locCh chan location.Snapshot
	snap  *location.Snapshot
}

// NewSession creates an Idle session bound to the device.
func NewSession(device Device, opts Options) *Session {
	if opts.Clock == nil {
		opts.Clock = time.Now
	}
	if opts.Reporter == nil {
		opts.Reporter = report.Discard{}
	}
	if opts.LocationTimeout <= 0 {
		opts.LocationTimeout = 10 * time.Second
	}
	return &Session{device: device, opts: opts, locCh: make(chan location.Snapshot, 1)}
}

// State returns the current lifecycle phase.
func (s *Session) State() State { return s.state }

// Start acquires the capture device (audio and video) and begins recording.
// Valid only from Idle. On acquisition failure the session stays Idle and the
// attempt is over; callers may create a fresh session to retry, nothing is
// retried automatically.
//
// Location acquisition is kicked off concurrently and independently; its
// failure or delay never blocks recording.
func (s *Session) Start(ctx context.Context) error {
	if s.state != StateIdle {
		return fmt.Errorf("%w: start from %s", common.ErrCaptureState, s.state)
	}

	stream, err := s.device.Acquire(ctx, true, true)
	if err != nil {
		return fmt.Errorf("%w: %v", common.ErrDeviceAcquisition, err)
	}

	s.stream = stream
	s.startedAt = s.opts.Clock()
	s.state = StateRecording

	go func() {
		s.locCh <- location.Acquire(ctx, s.opts.Locator, s.opts.Geocoder,
			s.opts.LocationTimeout, s.opts.Reporter, s.opts.Logger)
	}()

	return nil
}

// Stop finalizes the accumulated media into a single blob and releases the
// device. Valid only from Recording. Finalization happens synchronously here:
// once Stop returns, Artifact is stable.
func (s *Session) Stop() error {
	if s.state != StateRecording {
		return fmt.Errorf("%w: stop from %s", common.ErrCaptureState, s.state)
	}

	blob, err := s.stream.Finalize()
	s.stoppedAt = s.opts.Clock()
	s.stream = nil
	if err != nil {
		// The attempt is over; no partial artifact is retained.
		s.state = StateClosed
		return fmt.Errorf("%w: finalize: %v", common.ErrDeviceAcquisition, err)
	}

	s.blob = blob
	s.state = StateStopped
	return nil
}

// Artifact returns the finalized blob. Valid only in Stopped.
func (s *Session) Artifact() ([]byte, error) {
	if s.state != StateStopped {
		return nil, fmt.Errorf("%w: artifact from %s", common.ErrCaptureState, s.state)
	}
	return s.blob, nil
}

// Commit consumes the session after a successful save. Valid exactly once,
// from Stopped. The entitlement re-check and the actual persistence are the
// caller's job; Commit only closes the state machine.
func (s *Session) Commit() error {
	if s.state != StateStopped {
		return fmt.Errorf("%w: commit from %s", common.ErrCaptureState, s.state)
	}
	s.close()
	return nil
}

// Discard drops the artifact and closes the session. Valid only from Stopped.
func (s *Session) Discard() error {
	if s.state != StateStopped {
		return fmt.Errorf("%w: discard from %s", common.ErrCaptureState, s.state)
	}
	s.close()
	return nil
}

func (s *Session) close() {
	s.blob = nil
	s.state = StateClosed
}

// ElapsedSeconds reports the recording length at 1-second resolution. While
// Recording it grows with the clock; after Stop it is fixed.
func (s *Session) ElapsedSeconds() int64 {
	switch s.state {
	case StateRecording:
		return int64(s.opts.Clock().Sub(s.startedAt) / time.Second)
	case StateStopped, StateClosed:
		if s.stoppedAt.IsZero() {
			return 0
		}
		return int64(s.stoppedAt.Sub(s.startedAt) / time.Second)
	default:
		return 0
	}
}

// Snapshot returns the location context if it has arrived, or the
// unavailable placeholder otherwise. Non-blocking.
func (s *Session) Snapshot() location.Snapshot {
	if s.snap == nil {
		select {
		case snap := <-s.locCh:
			s.snap = &snap
		default:
			return location.Snapshot{Address: location.UnavailableAddress}
		}
	}
	return *s.snap
}

// WaitSnapshot blocks until the location attempt resolves or ctx is done.
// Used at save time, when waiting a moment for an in-flight fix is worth it.
func (s *Session) WaitSnapshot(ctx context.Context) location.Snapshot {
	if s.snap == nil {
		select {
		case snap := <-s.locCh:
			s.snap = &snap
		case <-ctx.Done():
			return location.Snapshot{Address: location.UnavailableAddress}
		}
	}
	return *s.snap
}
