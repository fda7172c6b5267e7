package database

import (
	"io/fs"
	"testing"

	"flight-review/pkg/utils"

	"github.com/stretchr/testify/require"
)

func TestMigrationURL(t *testing.T) {
	t.Parallel()

	got := MigrationURL(utils.DatabaseConfig{
		Host:     "db",
		Port:     "5432",
		Name:     "reviews",
		User:     "app",
		Password: "p@ss word",
	})
	require.Equal(t, "pgx5://app:p%40ss%20word@db:5432/reviews?sslmode=disable", got)
}

func TestMigrationsEmbedded(t *testing.T) {
	t.Parallel()

	names, err := fs.Glob(migrationFS, "migrations/*.sql")
	require.NoError(t, err)
	require.Contains(t, names, "migrations/000001_init.up.sql")
	require.Contains(t, names, "migrations/000001_init.down.sql")
}
