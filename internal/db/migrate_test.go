package db

import (
	"database/sql"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	_ "modernc.org/sqlite"
)

func openRaw(t *testing.T) *sql.DB {
	t.Helper()
	database, err := sql.Open("sqlite", ":memory:")
	require.NoError(t, err)
	database.SetMaxOpenConns(1)
	t.Cleanup(func() { database.Close() })
	return database
}

func TestMigrate_Idempotent(t *testing.T) {
	database := openRaw(t)
	require.NoError(t, Migrate(database))
	require.NoError(t, Migrate(database))
}

func TestMigrate_CreatesAllTables(t *testing.T) {
	database := openRaw(t)
	require.NoError(t, Migrate(database))

	for _, table := range []string{"cases", "assignments", "workload_shares", "price_quotes", "roster"} {
		var name string
		err := database.QueryRow(`SELECT name FROM sqlite_master WHERE type='table' AND name=?`, table).Scan(&name)
		require.NoError(t, err, "table %s should exist", table)
	}
}

func TestMigrate_AddsLateColumns(t *testing.T) {
	database := openRaw(t)
	require.NoError(t, Migrate(database))

	_, err := database.Exec(`SELECT seq, source_file FROM cases`)
	require.NoError(t, err)
	_, err = database.Exec(`SELECT estimated_hours FROM price_quotes`)
	require.NoError(t, err)
}

func TestMigrate_FlagCheckConstraint(t *testing.T) {
	database := openRaw(t)
	require.NoError(t, Migrate(database))

	_, err := database.Exec(`INSERT INTO cases (id, name, is_pcaob_case, created_at, updated_at)
		VALUES ('c1', 'A', 'maybe', '2025-01-01T00:00:00Z', '2025-01-01T00:00:00Z')`)
	assert.Error(t, err)
}

func TestMigrate_RosterUniquePerRole(t *testing.T) {
	database := openRaw(t)
	require.NoError(t, Migrate(database))

	_, err := database.Exec(`INSERT INTO roster (id, role, name, created_at) VALUES ('r1', 'PM', 'Amy', 'x')`)
	require.NoError(t, err)
	_, err = database.Exec(`INSERT INTO roster (id, role, name, created_at) VALUES ('r2', 'Staff', 'Amy', 'x')`)
	require.NoError(t, err)
	_, err = database.Exec(`INSERT INTO roster (id, role, name, created_at) VALUES ('r3', 'PM', 'Amy', 'x')`)
	assert.Error(t, err)
	_, err = database.Exec(`INSERT INTO roster (id, role, name, created_at) VALUES ('r4', 'Boss', 'Zed', 'x')`)
	assert.Error(t, err)
}

func TestMigrate_BackfillsCaseSeq(t *testing.T) {
	database := openRaw(t)
	require.NoError(t, Migrate(database))

	_, err := database.Exec(`INSERT INTO cases (id, name, seq, created_at, updated_at) VALUES
		('a', 'First', 0, '2025-01-01T00:00:00Z', 'x'),
		('b', 'Second', 0, '2025-01-02T00:00:00Z', 'x'),
		('c', 'Numbered', 4, '2024-12-31T00:00:00Z', 'x')`)
	require.NoError(t, err)
	require.NoError(t, Migrate(database))

	seqOf := func(id string) int {
		var seq int
		require.NoError(t, database.QueryRow(`SELECT seq FROM cases WHERE id = ?`, id).Scan(&seq))
		return seq
	}
	assert.Equal(t, 5, seqOf("a"))
	assert.Equal(t, 6, seqOf("b"))
	assert.Equal(t, 4, seqOf("c"))
}

func TestOpenDB_ForeignKeysEnabled(t *testing.T) {
	database, err := OpenDB(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { database.Close() })

	var fk int
	require.NoError(t, database.QueryRow(`PRAGMA foreign_keys`).Scan(&fk))
	assert.Equal(t, 1, fk)
}
