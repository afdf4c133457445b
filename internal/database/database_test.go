package database_test

import (
	"context"
	"os"
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vancomm/minesweeper/internal/config"
	"github.com/vancomm/minesweeper/internal/database"
	"github.com/vancomm/minesweeper/internal/store"
)

func databaseConfig(t *testing.T) *config.Database {
	t.Helper()
	if os.Getenv("DATABASE_URL") == "" {
		t.Skip("DATABASE_URL not set")
	}
	cfg, err := config.NewDatabase()
	require.NoError(t, err)
	return cfg
}

func TestConnectAndMigrate(t *testing.T) {
	cfg := databaseConfig(t)

	pool, migrator, err := database.ConnectAndMigrate(
		context.Background(), cfg, store.Migrations, store.MigrationsDir,
	)
	require.NoError(t, err)
	defer pool.Close()
	defer migrator.Close()

	version, dirty, err := migrator.Version()
	require.NoError(t, err)
	assert.Equal(t, uint(1), version)
	assert.False(t, dirty)
}

func TestConnectAndMigrateConnectFailure(t *testing.T) {
	cfg := databaseConfig(t)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	pool, migrator, err := database.ConnectAndMigrate(
		ctx, cfg, store.Migrations, store.MigrationsDir,
	)
	assert.Error(t, err)
	assert.Nil(t, pool)
	assert.Nil(t, migrator)
}

func TestMigrateMissingSource(t *testing.T) {
	_, err := database.Migrate("postgresql://localhost/none", fstest.MapFS{}, "missing")
	assert.Error(t, err)
}
