// Package location acquires a best-effort geographic snapshot for a capture
// session. Acquisition is bounded by a timeout and can never fail the
// recording: when the fix or the reverse geocode is unavailable the snapshot
// degrades to a placeholder address.
package location

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/pocketlegal/pocketlegal/internal/app/models"
	"github.com/pocketlegal/pocketlegal/internal/app/report"
	"github.com/pocketlegal/pocketlegal/internal/common"
	"github.com/pocketlegal/pocketlegal/internal/logging"
)

// UnavailableAddress is shown while/when no fix could be obtained.
const UnavailableAddress = "Location unavailable"

// Position is a geographic fix from the device. Accuracy is meters.
type Position struct {
	Latitude  float64
	Longitude float64
	Accuracy  float64
}

// Provider yields the device's current position. Implementations wrap a
// platform geolocation facility and should honor ctx cancellation.
type Provider interface {
	CurrentPosition(ctx context.Context) (Position, error)
}

// Geocoder resolves coordinates into a human-readable address. Best-effort:
// failures are tolerated by callers.
type Geocoder interface {
	ReverseGeocode(ctx context.Context, lat, lon float64) (string, error)
}

// Snapshot is the location context attached to a capture session.
type Snapshot struct {
	Address     string
	Coordinates *models.Coordinates
}

// FormatCoordinates renders a fix as "lat, lon" with 4 decimal places.
func FormatCoordinates(lat, lon float64) string {
	return fmt.Sprintf("%.4f, %.4f", lat, lon)
}

// Acquire obtains a snapshot within timeout. It never returns an error: a
// missing fix degrades to UnavailableAddress, a failed reverse geocode
// degrades to formatted coordinates. Failures are published as advisory
// events.
func Acquire(ctx context.Context, p Provider, g Geocoder, timeout time.Duration, rep report.Reporter, log logging.Logger) Snapshot {
	if rep == nil {
		rep = report.Discard{}
	}
	if log == nil {
		log = logging.NewSlogLogger(slog.New(slog.DiscardHandler))
	}

	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	if p == nil {
		return Snapshot{Address: UnavailableAddress}
	}

	pos, err := p.CurrentPosition(ctx)
	if err != nil {
		log.Warn(ctx, "location fix failed", "error", err)
		rep.Report(report.Event{Op: "location.fix", Err: fmt.Errorf("%w: %v", common.ErrLocationUnavailable, err)})
		return Snapshot{Address: UnavailableAddress}
	}

	snap := Snapshot{
		Address: FormatCoordinates(pos.Latitude, pos.Longitude),
		Coordinates: &models.Coordinates{
			Latitude:  pos.Latitude,
			Longitude: pos.Longitude,
			Accuracy:  pos.Accuracy,
		},
	}

	if g == nil {
		return snap
	}

	addr, err := g.ReverseGeocode(ctx, pos.Latitude, pos.Longitude)
	if err != nil {
		log.Warn(ctx, "reverse geocode failed", "error", err)
		rep.Report(report.Event{Op: "location.geocode", Err: fmt.Errorf("%w: %v", common.ErrLocationUnavailable, err)})
		return snap
	}
	if addr != "" {
		snap.Address = addr
	}
	return snap
}
