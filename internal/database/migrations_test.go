package database

import (
	"path/filepath"
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func openTestDB(t *testing.T) *MigrationManager {
	t.Helper()
	conn, err := Open(Config{Path: filepath.Join(t.TempDir(), "test.db")})
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })
	return NewMigrationManager(conn, zap.NewNop())
}

func TestRunMigrationsIdempotent(t *testing.T) {
	m := openTestDB(t)

	require.NoError(t, m.RunMigrations())
	require.NoError(t, m.RunMigrations())

	applied, err := m.GetAppliedMigrations()
	require.NoError(t, err)
	require.True(t, applied[1])

	var count int
	require.NoError(t, m.db.QueryRow("SELECT COUNT(*) FROM incidents").Scan(&count))
	require.Zero(t, count)
}

func TestLoadMigrationsSortsAndSkipsInvalid(t *testing.T) {
	m := openTestDB(t)
	m.fsys = fstest.MapFS{
		"010_second.sql": {Data: []byte("CREATE TABLE b (id INTEGER);")},
		"002_first.sql":  {Data: []byte("CREATE TABLE a (id INTEGER);")},
		"notes.txt":      {Data: []byte("ignored")},
		"bad_name.sql":   {Data: []byte("SELECT 1;")},
	}

	migrations, err := m.LoadMigrations()
	require.NoError(t, err)
	require.Len(t, migrations, 2)
	require.Equal(t, 2, migrations[0].Version)
	require.Equal(t, "002_first", migrations[0].Name)
	require.Equal(t, 10, migrations[1].Version)
}

func TestApplyMigrationRollsBackOnError(t *testing.T) {
	m := openTestDB(t)
	require.NoError(t, m.InitMigrationsTable())

	err := m.ApplyMigration(Migration{Version: 5, Name: "005_broken", SQL: "CREATE TABLE"})
	require.Error(t, err)

	applied, err := m.GetAppliedMigrations()
	require.NoError(t, err)
	require.False(t, applied[5])
}
