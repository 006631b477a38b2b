package iostore

import (
	"bytes"
	"database/sql"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fabgilson/scrumboard-throwaway-sub001/schema"
)

func tableExists(t *testing.T, path, table string) bool {
	t.Helper()
	db, err := sql.Open("sqlite", path)
	require.NoError(t, err)
	defer func() { _ = db.Close() }()
	var name string
	err = db.QueryRow(`SELECT name FROM sqlite_master WHERE type = 'table' AND name = ?`, table).Scan(&name)
	if err == sql.ErrNoRows {
		return false
	}
	require.NoError(t, err)
	return true
}

func TestMigrateHistory(t *testing.T) {
	path := filepath.Join(t.TempDir(), "history.db")
	var out bytes.Buffer

	require.NoError(t, MigrateHistory(&out, schema.SQLiteBackend, path, -1))
	assert.Contains(t, out.String(), "to version 5")
	for _, table := range boardTables {
		assert.True(t, tableExists(t, path, table), table)
	}

	out.Reset()
	require.NoError(t, MigrateHistory(&out, schema.SQLiteBackend, path, -1))
	assert.Contains(t, out.String(), "already at the latest version")

	out.Reset()
	require.NoError(t, MigrateHistory(&out, schema.SQLiteBackend, path, 2))
	assert.True(t, tableExists(t, path, sprintsTable))
	assert.False(t, tableExists(t, path, tasksTable))

	out.Reset()
	require.NoError(t, MigrateHistory(&out, schema.SQLiteBackend, path, 0))
	assert.Contains(t, out.String(), "to version 0")
	assert.False(t, tableExists(t, path, projectsTable))
}

func TestMigrateHistoryNoneBackend(t *testing.T) {
	assert.Error(t, MigrateHistory(&bytes.Buffer{}, schema.NoneBackend, "", -1))
}
