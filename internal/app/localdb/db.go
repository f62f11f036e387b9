// Package localdb opens the on-device SQLite database and applies the
// embedded goose migrations.
package localdb

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/pressly/goose/v3"

	"github.com/pocketlegal/pocketlegal/internal/app/migrations"
	"github.com/pocketlegal/pocketlegal/internal/app/repositories/encounters"
	"github.com/pocketlegal/pocketlegal/internal/app/repositories/users"

	_ "modernc.org/sqlite"
)

// Repositories bundles the local repositories over one database handle.
type Repositories struct {
	Encounters encounters.Repository
	Users      users.Repository
	DB         *sql.DB
}

// RunMigrations applies the embedded migrations to the database.
func RunMigrations(ctx context.Context, db *sql.DB) error {
	goose.SetBaseFS(migrations.Migrations)

	if err := goose.SetDialect("sqlite3"); err != nil {
		return fmt.Errorf("failed to set goose dialect: %w", err)
	}

	return goose.UpContext(ctx, db, ".")
}

// InitDatabase opens the database at dsn, migrates it and returns the
// repositories bound to it.
func InitDatabase(ctx context.Context, dsn string) (*Repositories, error) {
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, err
	}

	if err := RunMigrations(ctx, db); err != nil {
		_ = db.Close()
		return nil, err
	}

	return &Repositories{
		Encounters: encounters.NewSQLiteRepository(db),
		Users:      users.NewSQLiteRepository(db),
		DB:         db,
	}, nil
}
