package report

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMonitor_ReportAndDrain(t *testing.T) {
	m := NewMonitor(4)
	m.Report(Event{Op: "encounter.sync", Err: errors.New("timeout")})
	m.Report(Event{Op: "recording.upload", Err: errors.New("503")})

	events := m.Drain()
	require.Len(t, events, 2)
	assert.Equal(t, "encounter.sync", events[0].Op)
	assert.Equal(t, "recording.upload", events[1].Op)
	assert.False(t, events[0].At.IsZero(), "At must be stamped")

	assert.Empty(t, m.Drain())
}

func TestMonitor_DropsOldestWhenFull(t *testing.T) {
	m := NewMonitor(2)
	m.Report(Event{Op: "a"})
	m.Report(Event{Op: "b"})
	m.Report(Event{Op: "c"}) // evicts "a"

	events := m.Drain()
	require.Len(t, events, 2)
	assert.Equal(t, "b", events[0].Op)
	assert.Equal(t, "c", events[1].Op)
}

func TestMonitor_NeverBlocks(t *testing.T) {
	m := NewMonitor(1)
	done := make(chan struct{})
	go func() {
		for i := 0; i < 1000; i++ {
			m.Report(Event{Op: "spam"})
		}
		close(done)
	}()
	<-done // would hang forever if Report blocked
}

func TestDiscard(t *testing.T) {
	Discard{}.Report(Event{Op: "ignored"})
}
