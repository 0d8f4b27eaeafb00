// Package databasetest opens throwaway migrated SQLite databases for tests.
package databasetest

import (
	"context"
	"path/filepath"
	"testing"

	"gorm.io/gorm"

	"github.com/starwars-blog/api/pkg/database"
	"github.com/starwars-blog/api/pkg/logger"
)

// New returns a migrated SQLite database stored under t.TempDir().
func New(t testing.TB) *gorm.DB {
	t.Helper()
	if !logger.Initialized() {
		if _, err := logger.Init("error", "json"); err != nil {
			t.Fatalf("init logger: %v", err)
		}
	}

	ctx := context.Background()
	dbPath := filepath.Join(t.TempDir(), "starwars_test.db")

	db, err := database.Open(ctx, "sqlite:///"+dbPath, database.Options{})
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	t.Cleanup(func() { _ = database.Close(db) })

	if err := database.MigrateUp(ctx, db); err != nil {
		t.Fatalf("run migrations: %v", err)
	}
	return db
}
