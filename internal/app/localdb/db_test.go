package localdb

import (
	"context"
	"database/sql"
	"path/filepath"
	"testing"
	"time"

	"github.com/pocketlegal/pocketlegal/internal/app/models"

	_ "modernc.org/sqlite" // pure-Go SQLite driver
)

func tableExists(t *testing.T, db *sql.DB, name string) bool {
	t.Helper()
	var n int
	err := db.QueryRow(`SELECT COUNT(*) FROM sqlite_master WHERE type='table' AND name=?`, name).Scan(&n)
	if err != nil {
		t.Fatalf("tableExists query failed: %v", err)
	}
	return n > 0
}

func TestInitDatabase_CreatesSchema(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	dsn := filepath.Join(t.TempDir(), "app.db")

	repos, err := InitDatabase(ctx, dsn)
	if err != nil {
		t.Fatalf("InitDatabase error: %v", err)
	}
	defer repos.DB.Close()

	if err := repos.DB.PingContext(ctx); err != nil {
		t.Fatalf("db.PingContext failed: %v", err)
	}

	for _, table := range []string{"goose_db_version", "users", "encounters"} {
		if !tableExists(t, repos.DB, table) {
			t.Fatalf("expected %s table to exist after migrations", table)
		}
	}
}

func TestRunMigrations_IsIdempotent(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	dsn := filepath.Join(t.TempDir(), "app.db")

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		t.Fatalf("sql.Open error: %v", err)
	}
	defer db.Close()

	if err := RunMigrations(ctx, db); err != nil {
		t.Fatalf("RunMigrations (first) error: %v", err)
	}

	if err := RunMigrations(ctx, db); err != nil {
		t.Fatalf("RunMigrations (second) should be idempotent, got error: %v", err)
	}
}

func TestInitDatabase_RepositoriesUsable(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	dsn := filepath.Join(t.TempDir(), "app.db")

	repos, err := InitDatabase(ctx, dsn)
	if err != nil {
		t.Fatalf("InitDatabase error: %v", err)
	}
	defer repos.DB.Close()

	now := time.Date(2025, 5, 1, 12, 0, 0, 0, time.UTC)
	if err := repos.Users.Save(ctx, models.DemoUser(now)); err != nil {
		t.Fatalf("users.Save failed: %v", err)
	}

	e := &models.Encounter{
		ID:        "enc-1",
		UserID:    "demo-user",
		Timestamp: now,
		UpdatedAt: now,
		Type:      models.TypeQuestioning,
		Location:  models.UnknownLocation,
	}
	if err := repos.Encounters.CreateOrUpdate(ctx, e); err != nil {
		t.Fatalf("encounters.CreateOrUpdate failed: %v", err)
	}

	count, err := repos.Encounters.CountByUser(ctx, "demo-user")
	if err != nil {
		t.Fatalf("encounters.CountByUser failed: %v", err)
	}
	if count != 1 {
		t.Fatalf("unexpected encounter count: %d", count)
	}
}
