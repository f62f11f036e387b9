// Package users provides the local persistence layer for the user account
// and its subscription state.
package users

import (
	"context"

	"github.com/pocketlegal/pocketlegal/internal/app/models"
)

// Repository stores the user account locally, so entitlement survives
// restarts and offline periods.
type Repository interface {
	// Save inserts or updates the account by UserID.
	Save(ctx context.Context, u *models.UserAccount) error

	// Get returns the account or common.ErrNotFound.
	Get(ctx context.Context, userID string) (*models.UserAccount, error)
}
