package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/sethvargo/go-retry"

	"github.com/pocketlegal/pocketlegal/internal/app/models"
	"github.com/pocketlegal/pocketlegal/internal/app/remote"
	"github.com/pocketlegal/pocketlegal/internal/app/report"
	"github.com/pocketlegal/pocketlegal/internal/common"
	"github.com/pocketlegal/pocketlegal/internal/logging"
)

// JobKind selects the remote operation a Job carries.
type JobKind int

const (
	JobUpsertEncounter JobKind = iota
	JobDeleteEncounter
	JobUpsertUser
)

// Job is one pending remote mutation. Upserts carry a snapshot taken at
// enqueue time, so later local edits do not race the push.
type Job struct {
	Kind JobKind

	Encounter *models.Encounter
	User      *models.UserAccount

	UserID      string
	EncounterID string
}

func (j Job) op() string {
	if j.Kind == JobUpsertUser {
		return "user.sync"
	}
	return "encounter.sync"
}

// Reconciler pushes queued mutations to the remote mirror with bounded
// retries. One goroutine (Run) consumes the queue; Enqueue never blocks the
// mutation path.
type Reconciler struct {
	remote remote.DocumentStore
	queue  chan Job

	rep report.Reporter
	log logging.Logger

	maxRetries uint64
	baseDelay  time.Duration
}

// ReconcilerOptions configures a Reconciler. A nil Remote disables mirroring
// entirely; jobs are accepted and dropped.
type ReconcilerOptions struct {
	Remote     remote.DocumentStore
	QueueSize  int
	Reporter   report.Reporter
	Logger     logging.Logger
	MaxRetries uint64
	BaseDelay  time.Duration
}

func NewReconciler(opts ReconcilerOptions) *Reconciler {
	if opts.QueueSize <= 0 {
		opts.QueueSize = 128
	}
	if opts.Reporter == nil {
		opts.Reporter = report.Discard{}
	}
	if opts.Logger == nil {
		opts.Logger = logging.NewSlogLogger(slog.New(slog.DiscardHandler))
	}
	if opts.MaxRetries == 0 {
		opts.MaxRetries = 4
	}
	if opts.BaseDelay <= 0 {
		opts.BaseDelay = 500 * time.Millisecond
	}
	return &Reconciler{
		remote:     opts.Remote,
		queue:      make(chan Job, opts.QueueSize),
		rep:        opts.Reporter,
		log:        opts.Logger,
		maxRetries: opts.MaxRetries,
		baseDelay:  opts.BaseDelay,
	}
}

// Enqueue registers a job for the background push. When the queue is full
// the job is dropped and reported; the local commit it mirrors has already
// succeeded.
func (r *Reconciler) Enqueue(j Job) {
	if r.remote == nil {
		return
	}
	select {
	case r.queue <- j:
	default:
		r.rep.Report(report.Event{
			Op:  j.op(),
			Err: fmt.Errorf("%w: reconcile queue full", common.ErrRemoteSync),
		})
	}
}

// Run consumes the queue until ctx is canceled. Call it in its own
// goroutine.
func (r *Reconciler) Run(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		case j := <-r.queue:
			r.process(ctx, j)
		}
	}
}

func (r *Reconciler) process(ctx context.Context, j Job) {
	backoff := retry.WithMaxRetries(r.maxRetries, retry.NewFibonacci(r.baseDelay))

	err := retry.Do(ctx, backoff, func(ctx context.Context) error {
		if err := r.apply(ctx, j); err != nil {
			return retry.RetryableError(err)
		}
		return nil
	})
	if err != nil {
		r.rep.Report(report.Event{
			Op:  j.op(),
			Err: fmt.Errorf("%w: %v", common.ErrRemoteSync, err),
		})
		r.log.Warn(ctx, "remote reconcile failed", "op", j.op(), "error", err)
	}
}

func (r *Reconciler) apply(ctx context.Context, j Job) error {
	switch j.Kind {
	case JobUpsertEncounter:
		return r.remote.UpsertEncounter(ctx, j.Encounter)
	case JobDeleteEncounter:
		return r.remote.DeleteEncounter(ctx, j.UserID, j.EncounterID)
	case JobUpsertUser:
		return r.remote.UpsertUser(ctx, j.User)
	default:
		return fmt.Errorf("unknown job kind %d: %w", j.Kind, common.ErrInternal)
	}
}
