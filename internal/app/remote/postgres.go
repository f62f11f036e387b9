package remote

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/pressly/goose/v3"

	"github.com/pocketlegal/pocketlegal/internal/app/models"
	remotemigrations "github.com/pocketlegal/pocketlegal/internal/app/remote/migrations"
	"github.com/pocketlegal/pocketlegal/internal/common"
	"github.com/pocketlegal/pocketlegal/internal/dbx"

	_ "github.com/jackc/pgx/v5/stdlib"
)

// PostgresStore implements DocumentStore over a dbx.DBTX (*sql.DB or *sql.Tx).
type PostgresStore struct {
	db dbx.DBTX
}

// NewPostgresStore constructs a store bound to the given DBTX.
func NewPostgresStore(db dbx.DBTX) *PostgresStore {
	return &PostgresStore{db: db}
}

// gooseUpContext is a seam for testing goose.UpContext.
var gooseUpContext = func(ctx context.Context, db *sql.DB, dir string, opts ...goose.OptionsFunc) error {
	return goose.UpContext(ctx, db, dir, opts...)
}

// RunMigrations sets up goose with the embedded migrations and runs them
// against the provided database connection.
func RunMigrations(ctx context.Context, db *sql.DB) error {
	goose.SetBaseFS(remotemigrations.Migrations)
	if err := goose.SetDialect("pgx"); err != nil {
		return fmt.Errorf("failed to set goose dialect: %w", err)
	}
	return gooseUpContext(ctx, db, ".")
}

// Open connects to the remote database via the pgx stdlib driver and applies
// migrations.
func Open(ctx context.Context, dsn string) (*sql.DB, error) {
	db, err := sql.Open("pgx", dsn)
	if err != nil {
		return nil, err
	}
	if err := RunMigrations(ctx, db); err != nil {
		_ = db.Close()
		return nil, err
	}
	return db, nil
}

// UpsertEncounter creates or replaces the remote row by id, scoped to the
// owning user. A conflicting row owned by another user is left untouched.
func (s *PostgresStore) UpsertEncounter(ctx context.Context, e *models.Encounter) error {
	query := `
		INSERT INTO encounters (id, user_id, timestamp, updated_at, type, location,
			latitude, longitude, accuracy, notes,
			recording_kind, recording_uri, recording_storage_key, duration)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)
		ON CONFLICT (id)
		DO UPDATE SET
			updated_at = EXCLUDED.updated_at,
			type = EXCLUDED.type,
			location = EXCLUDED.location,
			latitude = EXCLUDED.latitude,
			longitude = EXCLUDED.longitude,
			accuracy = EXCLUDED.accuracy,
			notes = EXCLUDED.notes,
			recording_kind = EXCLUDED.recording_kind,
			recording_uri = EXCLUDED.recording_uri,
			recording_storage_key = EXCLUDED.recording_storage_key,
			duration = EXCLUDED.duration
			WHERE encounters.user_id = EXCLUDED.user_id;
	`

	var lat, lon, acc sql.NullFloat64
	if c := e.Coordinates; c != nil {
		lat = sql.NullFloat64{Float64: c.Latitude, Valid: true}
		lon = sql.NullFloat64{Float64: c.Longitude, Valid: true}
		acc = sql.NullFloat64{Float64: c.Accuracy, Valid: true}
	}

	var recKind, recURI, recKey sql.NullString
	if rec := e.Recording; rec != nil {
		recKind = sql.NullString{String: string(rec.Kind), Valid: true}
		recURI = sql.NullString{String: rec.URI, Valid: true}
		recKey = sql.NullString{String: rec.StorageKey, Valid: true}
	}

	_, err := s.db.ExecContext(ctx, query,
		e.ID, e.UserID, e.Timestamp, e.UpdatedAt, string(e.Type), e.Location,
		lat, lon, acc, e.Notes, recKind, recURI, recKey, e.Duration)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}

// DeleteEncounter removes the remote row. Zero rows affected is fine: the
// push that created the row may never have landed.
func (s *PostgresStore) DeleteEncounter(ctx context.Context, userID, id string) error {
	_, err := s.db.ExecContext(ctx, `DELETE FROM encounters WHERE id=$1 AND user_id=$2`, id, userID)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}

// ListEncounters returns the user's rows ordered by timestamp descending.
func (s *PostgresStore) ListEncounters(ctx context.Context, userID string) ([]models.Encounter, error) {
	query := ` SELECT id, user_id, timestamp, updated_at, type, location,
		latitude, longitude, accuracy, notes,
		recording_kind, recording_uri, recording_storage_key, duration
		FROM encounters WHERE user_id=$1 ORDER BY timestamp DESC
		`
	rows, err := s.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to select encounters: %w", err)
	}
	defer rows.Close()

	var result []models.Encounter
	for rows.Next() {
		var e models.Encounter
		var lat, lon, acc sql.NullFloat64
		var recKind, recURI, recKey sql.NullString
		var typ string
		if err := rows.Scan(&e.ID, &e.UserID, &e.Timestamp, &e.UpdatedAt, &typ, &e.Location,
			&lat, &lon, &acc, &e.Notes, &recKind, &recURI, &recKey, &e.Duration); err != nil {
			return nil, err
		}
		e.Type = models.EncounterType(typ)
		if lat.Valid && lon.Valid {
			e.Coordinates = &models.Coordinates{Latitude: lat.Float64, Longitude: lon.Float64, Accuracy: acc.Float64}
		}
		if recKind.Valid {
			e.Recording = &models.RecordingRef{Kind: models.RefKind(recKind.String), URI: recURI.String, StorageKey: recKey.String}
		}
		result = append(result, e)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

// UpsertUser creates or replaces the remote account row.
func (s *PostgresStore) UpsertUser(ctx context.Context, u *models.UserAccount) error {
	query := `
		INSERT INTO users (user_id, email, status, customer_id, subscription_id, preferred_language, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		ON CONFLICT (user_id)
		DO UPDATE SET
			email = EXCLUDED.email,
			status = EXCLUDED.status,
			customer_id = EXCLUDED.customer_id,
			subscription_id = EXCLUDED.subscription_id,
			preferred_language = EXCLUDED.preferred_language,
			updated_at = EXCLUDED.updated_at;
	`
	_, err := s.db.ExecContext(ctx, query,
		u.UserID, u.Email, string(u.Status), u.CustomerID, u.SubscriptionID,
		u.PreferredLanguage, u.CreatedAt, u.UpdatedAt)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}

// GetUser returns the mirrored account row.
func (s *PostgresStore) GetUser(ctx context.Context, userID string) (*models.UserAccount, error) {
	query := `SELECT user_id, email, status, customer_id, subscription_id, preferred_language, created_at, updated_at
		FROM users WHERE user_id=$1`
	row := s.db.QueryRowContext(ctx, query, userID)

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
