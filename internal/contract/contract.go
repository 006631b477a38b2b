// Package contract provides interfaces and shared utilities for internal architecture.
package contract

import (
	"context"

	"github.com/fabgilson/scrumboard-throwaway-sub001/schema"
)

// HistoryStore is the data-access collaborator of the series engine: it
// materializes task histories and resolves point sources back to records.
type HistoryStore interface {
	// --- Scope / Task Histories ---

	// GetScope returns a sprint or project with its chart start instant.
	GetScope(ctx context.Context, kind schema.ScopeKind, id int64) (schema.Scope, error)

	// ListTaskHistories returns the full history of every task in scope, ordered by task id.
	ListTaskHistories(ctx context.Context, scope schema.Scope) ([]schema.TaskHistory, error)

	// GetTaskHistory returns the full history of a single task.
	GetTaskHistory(ctx context.Context, taskID int64) (schema.TaskHistory, error)

	// Fingerprint summarizes the stored rows of a scope; it changes whenever the scope's history does.
	Fingerprint(ctx context.Context, scope schema.Scope) (string, error)

	// --- Point Sources ---

	GetTask(ctx context.Context, id int64) (schema.Task, error)
	GetChangelogEntry(ctx context.Context, id int64) (schema.ChangelogEntry, error)
	GetWorklog(ctx context.Context, id int64) (schema.Worklog, error)

	// --- Maintenance ---

	// ImportBoard replaces the stored rows of every entity present in the board.
	ImportBoard(ctx context.Context, board schema.Board) (schema.ImportSummary, error)

	GetStatus() (schema.StoreStatus, error)
	Close() error
}

// CacheStore defines the interface for cache data storage.
// This allows mocking the store for testing.
type CacheStore interface {
	Get(key string) ([]byte, int, int64, error)
	Set(key string, value []byte, version int, timestamp int64) error
	GetStatus() (schema.CacheStatus, error)
	Close() error
}

// StoreManager hands out the configured stores.
// This allows the storage layer to be mocked for testing.
type StoreManager interface {
	GetHistoryStore() HistoryStore
	GetCacheStore() CacheStore
}
