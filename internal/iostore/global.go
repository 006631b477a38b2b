package iostore

import (
	"fmt"
	"os"
	"sync"

	"github.com/fabgilson/scrumboard-throwaway-sub001/internal/contract"
	"github.com/fabgilson/scrumboard-throwaway-sub001/schema"
)

// Global Manager instance for main logic.
var (
	Manager   = &StoreManager{}
	initOnce  sync.Once
	closeOnce sync.Once
)

// InitStores initializes the global manager. An empty cacheBackend leaves the
// cache unset; the history store is always required.
func InitStores(storeBackend schema.DatabaseBackend, storeConnStr string, cacheBackend schema.DatabaseBackend, cacheConnStr string) error {
	var initErr error

	initOnce.Do(func() {
		history, err := NewHistoryStore(storeBackend, storeConnStr)
		if err != nil {
			initErr = fmt.Errorf("failed to initialize history store: %w", err)
			return
		}

		var cache contract.CacheStore
		if cacheBackend != "" {
			cache, err = NewCacheStore(seriesCacheTable, cacheBackend, cacheConnStr)
			if err != nil {
				_ = history.Close()
				initErr = fmt.Errorf("failed to initialize series cache: %w", err)
				return
			}
		}

		Manager.Lock()
		defer Manager.Unlock()
		Manager.history = history
		Manager.cache = cache
	})

	return initErr
}

// CloseStores should be called on application shutdown.
func CloseStores() {
	closeOnce.Do(func() {
		Manager.Lock()
		defer Manager.Unlock()
		if Manager.history != nil {
			_ = Manager.history.Close()
		}
		if Manager.cache != nil {
			_ = Manager.cache.Close()
		}
	})
}

// OpenSeriesCache opens the series cache on its own, for the cache maintenance commands.
func OpenSeriesCache(backend schema.DatabaseBackend, connStr string) (contract.CacheStore, error) {
	return NewCacheStore(seriesCacheTable, backend, connStr)
}

// ClearCache removes every cached series.
// For SQLite, it deletes the database file; for MySQL and PostgreSQL, it drops the table.
func ClearCache(backend schema.DatabaseBackend, dbFilePath, connStr string) error {
	return clearBackend(backend, dbFilePath, connStr, seriesCacheTable)
}

// ClearHistory removes the imported board history.
func ClearHistory(backend schema.DatabaseBackend, dbFilePath, connStr string) error {
	if backend == schema.NoneBackend {
		return fmt.Errorf("the history store cannot use the %s backend", backend)
	}
	return clearBackend(backend, dbFilePath, connStr, boardTables...)
}

func clearBackend(backend schema.DatabaseBackend, dbFilePath, connStr string, tables ...string) error {
	switch backend {
	case schema.SQLiteBackend:
		if connStr != "" {
			dbFilePath = connStr
		}
		if dbFilePath == "" {
			return fmt.Errorf("dbFilePath cannot be empty for SQLite backend")
		}
		// Remove the file; ignore if it doesn't exist
		if err := os.Remove(dbFilePath); err != nil && !os.IsNotExist(err) {
			return fmt.Errorf("failed to remove SQLite database file %s: %w", dbFilePath, err)
		}
		return nil
	case schema.MySQLBackend, schema.PostgreSQLBackend:
		// Drop children before parents
		reversed := make([]string, 0, len(tables))
		for i := len(tables) - 1; i >= 0; i-- {
			reversed = append(reversed, tables[i])
		}
		return clearSQLTables(backend, connStr, reversed...)
	case schema.NoneBackend:
		return nil
	default:
		return fmt.Errorf("unsupported backend for clearing: %s", backend)
	}
}
