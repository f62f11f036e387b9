package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/pocketlegal/pocketlegal/internal/app/capture"
	"github.com/pocketlegal/pocketlegal/internal/app/entitlement"
	"github.com/pocketlegal/pocketlegal/internal/app/models"
	"github.com/pocketlegal/pocketlegal/internal/app/report"
	"github.com/pocketlegal/pocketlegal/internal/app/repositories/encounters"
	"github.com/pocketlegal/pocketlegal/internal/app/repositories/users"
	"github.com/pocketlegal/pocketlegal/internal/app/storage"
	"github.com/pocketlegal/pocketlegal/internal/common"
	"github.com/pocketlegal/pocketlegal/internal/logging"
)

// EncounterService owns the encounter lifecycle: creation under the
// entitlement policy, amendments, deletion, and turning a stopped capture
// session into a saved encounter.
type EncounterService struct {
	encounterRepo encounters.Repository
	userRepo      users.Repository
	router        *storage.Router
	reconciler    *Reconciler

	rep report.Reporter
	log logging.Logger
	now func() time.Time
}

// EncounterServiceOptions configures an EncounterService. Repositories and
// Router are required; the rest have safe fallbacks.
type EncounterServiceOptions struct {
	Encounters encounters.Repository
	Users      users.Repository
	Router     *storage.Router
	Reconciler *Reconciler
	Reporter   report.Reporter
	Logger     logging.Logger
	Clock      func() time.Time
}

func NewEncounterService(opts EncounterServiceOptions) *EncounterService {
	if opts.Router == nil {
		opts.Router = storage.NewRouter(storage.RouterOptions{})
	}
	if opts.Reconciler == nil {
		opts.Reconciler = NewReconciler(ReconcilerOptions{})
	}
	if opts.Reporter == nil {
		opts.Reporter = report.Discard{}
	}
	if opts.Logger == nil {
		opts.Logger = logging.NewSlogLogger(slog.New(slog.DiscardHandler))
	}
	if opts.Clock == nil {
		opts.Clock = time.Now
	}
	return &EncounterService{
		encounterRepo: opts.Encounters,
		userRepo:      opts.Users,
		router:        opts.Router,
		reconciler:    opts.Reconciler,
		rep:           opts.Reporter,
		log:           opts.Logger,
		now:           opts.Clock,
	}
}

// Add creates a new encounter for the user, enforcing the free-tier limit
// against the live local count. ID and timestamps are assigned here.
func (s *EncounterService) Add(ctx context.Context, user *models.UserAccount, e *models.Encounter) (*models.Encounter, error) {
	if err := s.checkCapacity(ctx, user); err != nil {
		return nil, err
	}
	return s.persistNew(ctx, user, e)
}

// persistNew assigns identity and commits locally. The entitlement check is
// the caller's job: SaveRecording runs it before the blob upload, Add runs
// it directly.
func (s *EncounterService) persistNew(ctx context.Context, user *models.UserAccount, e *models.Encounter) (*models.Encounter, error) {
	now := s.now().UTC()
	e.ID = uuid.NewString()
	e.UserID = user.UserID
	e.Timestamp = now
	e.UpdatedAt = now
	if e.Location == "" {
		e.Location = models.UnknownLocation
	}

	if err := s.encounterRepo.CreateOrUpdate(ctx, e); err != nil {
		return nil, fmt.Errorf("saving error: %w", err)
	}

	s.reconciler.Enqueue(Job{Kind: JobUpsertEncounter, Encounter: cloneEncounter(e)})
	return e, nil
}

// Update amends an existing encounter with the patch and refreshes
// UpdatedAt. Identity fields never change.
func (s *EncounterService) Update(ctx context.Context, id string, patch models.EncounterPatch) (*models.Encounter, error) {
	e, err := s.encounterRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	e.Apply(patch, s.now())

	if err := s.encounterRepo.CreateOrUpdate(ctx, e); err != nil {
		return nil, fmt.Errorf("saving error: %w", err)
	}

	s.reconciler.Enqueue(Job{Kind: JobUpsertEncounter, Encounter: cloneEncounter(e)})
	return e, nil
}

// Remove deletes an encounter. The recording blob is released best-effort:
// a failed durable unpin is reported, not returned, because the encounter
// itself is already gone locally.
func (s *EncounterService) Remove(ctx context.Context, id string) error {
	e, err := s.encounterRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}

	if err := s.encounterRepo.DeleteByID(ctx, id); err != nil {
		return err
	}

	if e.Recording != nil {
		if err := s.router.Remove(ctx, e.Recording); err != nil {
			s.rep.Report(report.Event{
				Op:  "recording.unpin",
				Err: fmt.Errorf("%w: %v", common.ErrRemoteSync, err),
			})
			s.log.Warn(ctx, "failed to release recording blob", "encounter", id, "error", err)
		}
	}

	s.reconciler.Enqueue(Job{Kind: JobDeleteEncounter, UserID: e.UserID, EncounterID: e.ID})
	return nil
}

// Get returns one encounter from the local database.
func (s *EncounterService) Get(ctx context.Context, id string) (*models.Encounter, error) {
	return s.encounterRepo.GetByID(ctx, id)
}

// ListByUser returns the user's encounters, most recent first. Always served
// locally.
func (s *EncounterService) ListByUser(ctx context.Context, userID string) ([]models.Encounter, error) {
	return s.encounterRepo.ListByUser(ctx, userID)
}

// CountByUser returns the live local encounter count.
func (s *EncounterService) CountByUser(ctx context.Context, userID string) (int, error) {
	return s.encounterRepo.CountByUser(ctx, userID)
}

// Remaining reports how many more encounters the user may create. Unlimited
// tiers return -1.
func (s *EncounterService) Remaining(ctx context.Context, user *models.UserAccount) (int, error) {
	if entitlement.HasPremiumAccess(user.Status) {
		return -1, nil
	}
	count, err := s.encounterRepo.CountByUser(ctx, user.UserID)
	if err != nil {
		return 0, err
	}
	return entitlement.RemainingFreeEncounters(count), nil
}

// SnapshotWait bounds how long saving waits for an in-flight location fix.
const SnapshotWait = 3 * time.Second

// SaveRecording turns a stopped capture session into a saved encounter.
//
// The entitlement check runs here, at save time, against the live count: a
// recording that was legal to start can still be denied now, in which case
// the session is left Stopped so the caller can discard it or retry after an
// upgrade. On success the session is consumed.
func (s *EncounterService) SaveRecording(ctx context.Context, user *models.UserAccount, session *capture.Session, encType models.EncounterType, notes string) (*models.Encounter, error) {
	blob, err := session.Artifact()
	if err != nil {
		return nil, err
	}

	if err := s.checkCapacity(ctx, user); err != nil {
		return nil, err
	}

	waitCtx, cancel := context.WithTimeout(ctx, SnapshotWait)
	snap := session.WaitSnapshot(waitCtx)
	cancel()

	premium := entitlement.HasPremiumAccess(user.Status)
	meta := map[string]string{
		"encounter-type": string(encType),
		"user-id":        user.UserID,
	}
	ref, err := s.router.Store(ctx, user.UserID, blob, premium, meta)
	if err != nil {
		return nil, err
	}

	e := &models.Encounter{
		Type:        encType,
		Location:    snap.Address,
		Coordinates: snap.Coordinates,
		Notes:       notes,
		Recording:   ref,
		Duration:    session.ElapsedSeconds(),
	}

	saved, err := s.persistNew(ctx, user, e)
	if err != nil {
		return nil, err
	}

	if err := session.Commit(); err != nil {
		return nil, err
	}
	return saved, nil
}

func (s *EncounterService) checkCapacity(ctx context.Context, user *models.UserAccount) error {
	count, err := s.encounterRepo.CountByUser(ctx, user.UserID)
	if err != nil {
		return err
	}
	if !entitlement.CanCreateEncounter(user.Status, count) {
		return fmt.Errorf("%w: free tier allows %d encounter(s)", common.ErrEntitlementDenied, entitlement.FreeEncounterLimit)
	}
	return nil
}

func cloneEncounter(e *models.Encounter) *models.Encounter {
	cp := *e
	if e.Coordinates != nil {
		c := *e.Coordinates
		cp.Coordinates = &c
	}
	if e.Recording != nil {
		r := *e.Recording
		cp.Recording = &r
	}
	return &cp
}
