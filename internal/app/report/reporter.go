// Package report is the side channel for advisory failures. Local-first
// mutations never fail because a remote call failed; instead the failure is
// published here and a UI banner (or a test) consumes it.
package report

import "time"

// Event describes one advisory failure.
type Event struct {
	// Op names the operation that failed, e.g. "encounter.sync" or
	// "recording.upload".
	Op string

	// Err is the underlying failure, wrapped into one of the common sentinel
	// kinds.
	Err error

	// At is when the failure was observed, UTC.
	At time.Time
}

// Reporter receives advisory events. Implementations must not block the
// caller.
type Reporter interface {
	Report(e Event)
}

// Monitor is a channel-backed Reporter with a bounded buffer. When the buffer
// is full the oldest event is dropped: a stale warning is worth less than the
// newest one.
type Monitor struct {
	ch chan Event
}

// NewMonitor creates a Monitor buffering up to size events.
func NewMonitor(size int) *Monitor {
	if size < 1 {
		size = 1
	}
	return &Monitor{ch: make(chan Event, size)}
}

// Report publishes the event without blocking.
func (m *Monitor) Report(e Event) {
	if e.At.IsZero() {
		e.At = time.Now().UTC()
	}
	for {
		select {
		case m.ch <- e:
			return
		default:
		}
		select {
		case <-m.ch: // evict oldest
		default:
		}
	}
}

// Events exposes the event stream for a consumer.
func (m *Monitor) Events() <-chan Event {
	return m.ch
}

// Drain returns all currently buffered events without waiting.
func (m *Monitor) Drain() []Event {
	var out []Event
	for {
		select {
		case e := <-m.ch:
			out = append(out, e)
		default:
			return out
		}
	}
}

// Discard is a Reporter that drops every event. Useful in tests and in
// callers that have no banner to surface warnings in.
type Discard struct{}

func (Discard) Report(Event) {}
