package encounters

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

// CreateOrUpdate upserts an encounter by id. Identity columns stay as
// inserted; on conflict only the amendable columns are updated.
func (r *SQLiteRepository) CreateOrUpdate(ctx context.Context, e *models.Encounter) error {
	query := ` INSERT INTO encounters (id, user_id, timestamp, updated_at, type, location,
			latitude, longitude, accuracy, notes,
			recording_kind, recording_uri, recording_storage_key, duration)
			values (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
			ON CONFLICT(id) DO UPDATE SET updated_at = excluded.updated_at,
				type = excluded.type,
				location = excluded.location,
				latitude = excluded.latitude,
				longitude = excluded.longitude,
				accuracy = excluded.accuracy,
				notes = excluded.notes,
				recording_kind = excluded.recording_kind,
				recording_uri = excluded.recording_uri,
				recording_storage_key = excluded.recording_storage_key,
				duration = excluded.duration
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

	_, err := r.db.ExecContext(ctx, query,
		e.ID, e.UserID, e.Timestamp, e.UpdatedAt, string(e.Type), e.Location,
		lat, lon, acc, e.Notes, recKind, recURI, recKey, e.Duration)
	if err != nil {
		return fmt.Errorf("failed to upsert encounter: %w", err)
	}
	return nil
}

const selectColumns = `id, user_id, timestamp, updated_at, type, location,
	latitude, longitude, accuracy, notes,
	recording_kind, recording_uri, recording_storage_key, duration`

// GetByID returns a single encounter or common.ErrNotFound.
func (r *SQLiteRepository) GetByID(ctx context.Context, id string) (*models.Encounter, error) {
	query := `select ` + selectColumns + ` from encounters where id=?`
	row := r.db.QueryRowContext(ctx, query, id)

	e, err := scanEncounter(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("encounter %s: %w", id, common.ErrNotFound)
		}
		return nil, fmt.Errorf("query row scan failed: %w", err)
	}
	return e, nil
}

// ListByUser returns the user's encounters ordered by timestamp descending.
func (r *SQLiteRepository) ListByUser(ctx context.Context, userID string) ([]models.Encounter, error) {
	query := `select ` + selectColumns + ` from encounters where user_id=? order by timestamp desc`
	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to select encounters: %w", err)
	}
	defer rows.Close()

	var result []models.Encounter
	for rows.Next() {
		e, err := scanEncounter(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, *e)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

// CountByUser returns the live encounter count for a user.
func (r *SQLiteRepository) CountByUser(ctx context.Context, userID string) (int, error) {
	var count int
	row := r.db.QueryRowContext(ctx, `select count(*) from encounters where user_id=?`, userID)
	if err := row.Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count encounters: %w", err)
	}
	return count, nil
}

// DeleteByID removes an encounter. Deleting an unknown id returns
// common.ErrNotFound.
func (r *SQLiteRepository) DeleteByID(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `delete from encounters where id=?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete encounter: %w", err)
	}
	ra, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if ra != 1 {
		return fmt.Errorf("encounter %s: %w", id, common.ErrNotFound)
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanEncounter(row rowScanner) (*models.Encounter, error) {
	e := &models.Encounter{}
	var lat, lon, acc sql.NullFloat64
	var recKind, recURI, recKey sql.NullString
	var typ string

	err := row.Scan(&e.ID, &e.UserID, &e.Timestamp, &e.UpdatedAt, &typ, &e.Location,
		&lat, &lon, &acc, &e.Notes, &recKind, &recURI, &recKey, &e.Duration)
	if err != nil {
		return nil, err
	}

	e.Type = models.EncounterType(typ)
	if lat.Valid && lon.Valid {
		e.Coordinates = &models.Coordinates{
			Latitude:  lat.Float64,
			Longitude: lon.Float64,
			Accuracy:  acc.Float64,
		}
	}
	if recKind.Valid {
		e.Recording = &models.RecordingRef{
			Kind:       models.RefKind(recKind.String),
			URI:        recURI.String,
			StorageKey: recKey.String,
		}
	}
	return e, nil
}
