package storage

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/pocketlegal/pocketlegal/internal/app/models"
	"github.com/pocketlegal/pocketlegal/internal/app/report"
	"github.com/pocketlegal/pocketlegal/internal/common"
	"github.com/pocketlegal/pocketlegal/internal/cryptox"
	"github.com/pocketlegal/pocketlegal/internal/logging"
)

// DefaultUploadTimeout bounds how long a durable upload may hold up the
// save flow before the blob falls back to local storage.
const DefaultUploadTimeout = 20 * time.Second

// Router decides where a finalized recording blob lands. Premium accounts
// get a durable upload with a bounded wait; everyone else, and any premium
// upload that fails, gets a session-scoped local reference. Store never
// returns an upload failure to the caller, it reports it instead.
type Router struct {
	durable       BlobStore
	local         *LocalStore
	sealer        *cryptox.Sealer
	uploadTimeout time.Duration
	rep           report.Reporter
	log           logging.Logger
}

// RouterOptions configures a Router. Durable and Sealer are optional;
// without a durable store every blob is stored locally.
type RouterOptions struct {
	Durable       BlobStore
	Local         *LocalStore
	Sealer        *cryptox.Sealer
	UploadTimeout time.Duration
	Reporter      report.Reporter
	Logger        logging.Logger
}

func NewRouter(opts RouterOptions) *Router {
	if opts.Local == nil {
		opts.Local = NewLocalStore()
	}
	if opts.UploadTimeout <= 0 {
		opts.UploadTimeout = DefaultUploadTimeout
	}
	if opts.Reporter == nil {
		opts.Reporter = report.Discard{}
	}
	if opts.Logger == nil {
		opts.Logger = logging.NewSlogLogger(slog.New(slog.DiscardHandler))
	}
	return &Router{
		durable:       opts.Durable,
		local:         opts.Local,
		sealer:        opts.Sealer,
		uploadTimeout: opts.UploadTimeout,
		rep:           opts.Reporter,
		log:           opts.Logger,
	}
}

// Local exposes the session-scoped store so callers can resolve and release
// local references.
func (r *Router) Local() *LocalStore {
	return r.local
}

// Store places the blob and returns its reference. The premium flag gates
// the durable path; meta travels with durable uploads as object metadata.
func (r *Router) Store(ctx context.Context, userID string, data []byte, premium bool, meta map[string]string) (*models.RecordingRef, error) {
	if len(data) == 0 {
		return nil, fmt.Errorf("empty recording blob: %w", common.ErrInternal)
	}

	if r.sealer != nil {
		sealed, err := r.sealer.Seal(data)
		if err != nil {
			return nil, fmt.Errorf("error sealing recording: %w", err)
		}
		data = sealed
	}

	if premium && r.durable != nil {
		uctx, cancel := context.WithTimeout(ctx, r.uploadTimeout)
		ref, err := r.durable.Upload(uctx, userID, data, meta)
		cancel()
		if err == nil {
			return ref, nil
		}
		r.rep.Report(report.Event{
			Op:  "recording.upload",
			Err: fmt.Errorf("%w: %v", common.ErrRemoteSync, err),
		})
		r.log.Warn(ctx, "durable upload failed, keeping recording locally", "error", err)
	}

	return r.local.Save(data), nil
}

// Remove drops the blob behind a reference. Durable removals go through the
// blob store; local ones release the session handle.
func (r *Router) Remove(ctx context.Context, ref *models.RecordingRef) error {
	if ref == nil {
		return nil
	}
	if ref.Durable() {
		if r.durable == nil {
			return nil
		}
		return r.durable.Unpin(ctx, ref.StorageKey)
	}
	r.local.Release(ref)
	return nil
}
