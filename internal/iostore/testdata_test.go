package iostore

import (
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/fabgilson/scrumboard-throwaway-sub001/schema"
)

const sampleBoard = `
projects:
  - id: 1
    name: Scrumboard
    created: 2024-01-01T00:00:00Z
    sprints:
      - id: 10
        name: Sprint 1
        started: 2024-01-02T00:00:00Z
        ends: 2024-01-16T00:00:00Z
      - id: 11
        name: Sprint 2
    tasks:
      - id: 100
        name: Login page
        sprint: 10
        stage: done
        estimate: 2h
        created: 2024-01-01T09:00:00Z
        changelog:
          - id: 1000
            field: estimate
            old: 2h
            new: 5h
            at: 2024-01-03T09:00:00Z
          - id: 1001
            field: stage
            old: todo
            new: done
            at: 2024-01-05T09:00:00Z
        worklogs:
          - id: 5000
            author: alice
            description: wired the form
            duration: 1h
            at: 2024-01-04T09:00:00Z
          - id: 5001
            author: bob
            description: styling
            duration: 30m
            at: 2024-01-04T12:00:00Z
      - id: 101
        name: Backlog item
        stage: todo
        estimate: 1h
        created: 2024-01-01T10:00:00Z
`

func loadSampleBoard(t *testing.T) schema.Board {
	t.Helper()
	board, err := LoadBoard(strings.NewReader(sampleBoard))
	require.NoError(t, err)
	return board
}

// newTestHistoryStore opens a fresh SQLite history store in a temp dir.
func newTestHistoryStore(t *testing.T) *HistoryStoreImpl {
	t.Helper()
	store, err := NewHistoryStore(schema.SQLiteBackend, filepath.Join(t.TempDir(), "history.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })
	impl, ok := store.(*HistoryStoreImpl)
	require.True(t, ok)
	return impl
}

