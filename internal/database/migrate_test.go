package database_test

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/fekuna/omnipos-poultry-service/internal/database"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMigrate_IsIdempotent(t *testing.T) {
	ctx := context.Background()
	db, err := database.Open(ctx, &database.Config{
		Driver: database.DriverSQLite,
		Path:   filepath.Join(t.TempDir(), "m.db"),
	})
	require.NoError(t, err)
	defer db.Close()

	applied, err := database.Migrate(ctx, db)
	require.NoError(t, err)
	assert.Equal(t, []string{"0001_init.up.sql"}, applied)

	applied, err = database.Migrate(ctx, db)
	require.NoError(t, err)
	assert.Empty(t, applied)

	for _, table := range []string{"products", "feeds", "users", "orders", "order_items", "stock_movements"} {
		var n int
		require.NoError(t, db.GetContext(ctx, &n, "SELECT count(*) FROM "+table), table)
		assert.Zero(t, n, table)
	}
}

func TestOpen_UnknownDriver(t *testing.T) {
	_, err := database.Open(context.Background(), &database.Config{Driver: "oracle"})
	require.Error(t, err)
}

func TestDialect(t *testing.T) {
	ctx := context.Background()
	db, err := database.Open(ctx, &database.Config{Path: filepath.Join(t.TempDir(), "d.db")})
	require.NoError(t, err)
	defer db.Close()

	assert.Equal(t, database.DriverSQLite, database.Dialect(db))
}
