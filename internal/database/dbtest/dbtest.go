// Package dbtest opens throwaway migrated SQLite stores for tests.
package dbtest

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/fekuna/omnipos-poultry-service/internal/database"
	"github.com/jmoiron/sqlx"
)

func NewSQLite(t testing.TB) *sqlx.DB {
	t.Helper()

	ctx := context.Background()
	db, err := database.Open(ctx, &database.Config{
		Driver: database.DriverSQLite,
		Path:   filepath.Join(t.TempDir(), "poultry_test.db"),
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	if _, err := database.Migrate(ctx, db); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return db
}
