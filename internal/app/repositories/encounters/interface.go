package encounters

import (
	"context"

	"github.com/pocketlegal/pocketlegal/internal/app/models"
)

// Repository describes CRUD and query operations for Encounter objects.
// Implementations are typically backed by a local SQLite database.
type Repository interface {
	// CreateOrUpdate inserts a new encounter or updates an existing one by ID.
	CreateOrUpdate(ctx context.Context, e *models.Encounter) error

	// GetByID returns an encounter by its identifier.
	GetByID(ctx context.Context, id string) (*models.Encounter, error)

	// ListByUser returns the user's encounters, most recent first.
	ListByUser(ctx context.Context, userID string) ([]models.Encounter, error)

	// CountByUser returns the number of encounters the user currently has.
	// The result drives the entitlement check for new encounters.
	CountByUser(ctx context.Context, userID string) (int, error)

	// DeleteByID removes an encounter permanently.
	DeleteByID(ctx context.Context, id string) error
}
