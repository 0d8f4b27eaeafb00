package main

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/starwars-blog/api/pkg/database"
)

func TestMigrateCommands(t *testing.T) {
	ctx := context.Background()
	url := "sqlite:///" + filepath.Join(t.TempDir(), "cli.db")
	t.Setenv("APP_ENV", "test")
	t.Setenv("LOG_LEVEL", "error")

	require.NoError(t, newApp().Run(ctx, []string{"migrate", "--database-url", url, "up"}))

	db, err := database.Open(ctx, url, database.Options{})
	require.NoError(t, err)
	require.True(t, db.Migrator().HasTable("favorites"))
	require.NoError(t, database.Close(db))

	require.NoError(t, newApp().Run(ctx, []string{"migrate", "--database-url", url, "down"}))
	require.NoError(t, newApp().Run(ctx, []string{"migrate", "--database-url", url, "status"}))
	require.NoError(t, newApp().Run(ctx, []string{"migrate", "--database-url", url, "reset"}))

	db, err = database.Open(ctx, url, database.Options{})
	require.NoError(t, err)
	defer func() { _ = database.Close(db) }()
	require.False(t, db.Migrator().HasTable("users"))
}
