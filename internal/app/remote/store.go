package remote

import (
	"context"

	"github.com/pocketlegal/pocketlegal/internal/app/models"
)

// DocumentStore is the remote mirror of the local database. All operations
// must be idempotent: the reconciler retries them and may replay a push that
// already landed.
type DocumentStore interface {
	// UpsertEncounter creates or replaces the remote copy of an encounter.
	UpsertEncounter(ctx context.Context, e *models.Encounter) error

	// DeleteEncounter removes the remote copy. Deleting an encounter that
	// never reached the mirror is not an error.
	DeleteEncounter(ctx context.Context, userID, id string) error

	// ListEncounters returns the user's mirrored encounters, most recent
	// first. Used for recovery onto a fresh device.
	ListEncounters(ctx context.Context, userID string) ([]models.Encounter, error)

	// UpsertUser creates or replaces the remote copy of the account.
	UpsertUser(ctx context.Context, u *models.UserAccount) error

	// GetUser returns the mirrored account or common.ErrNotFound.
	GetUser(ctx context.Context, userID string) (*models.UserAccount, error)
}
