package users

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/pocketlegal/pocketlegal/internal/app/models"
	"github.com/pocketlegal/pocketlegal/internal/common"
	"github.com/pocketlegal/pocketlegal/internal/dbx"
)

// SQLiteRepository implements Repository using a DBTX (either *sql.DB or *sql.Tx).
type SQLiteRepository struct {
	db dbx.DBTX
}

// NewSQLiteRepository returns a new SQLiteRepository bound to the given DBTX.
func NewSQLiteRepository(db dbx.DBTX) *SQLiteRepository {
	return &SQLiteRepository{db: db}
}

// Save upserts the account by user_id.
func (r *SQLiteRepository) Save(ctx context.Context, u *models.UserAccount) error {
	query := ` INSERT INTO users (user_id, email, status, customer_id, subscription_id, preferred_language, created_at, updated_at)
			values (?, ?, ?, ?, ?, ?, ?, ?)
			ON CONFLICT(user_id) DO UPDATE SET email = excluded.email,
				status = excluded.status,
				customer_id = excluded.customer_id,
				subscription_id = excluded.subscription_id,
				preferred_language = excluded.preferred_language,
				updated_at = excluded.updated_at
	`
	_, err := r.db.ExecContext(ctx, query,
		u.UserID, u.Email, string(u.Status), u.CustomerID, u.SubscriptionID,
		u.PreferredLanguage, u.CreatedAt, u.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to upsert user: %w", err)
	}
	return nil
}

// Get returns the stored account for a user id.
func (r *SQLiteRepository) Get(ctx context.Context, userID string) (*models.UserAccount, error) {
	query := `select user_id, email, status, customer_id, subscription_id, preferred_language, created_at, updated_at
		from users where user_id=?`
	row := r.db.QueryRowContext(ctx, query, userID)

	u := &models.UserAccount{}
	var status string
	err := row.Scan(&u.UserID, &u.Email, &status, &u.CustomerID, &u.SubscriptionID,
		&u.PreferredLanguage, &u.CreatedAt, &u.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("user %s: %w", userID, common.ErrNotFound)
		}
		return nil, fmt.Errorf("query row scan failed: %w", err)
	}
	u.Status = models.SubscriptionStatus(status)
	return u, nil
}
