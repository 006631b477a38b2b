// Package iostore is for the board history and the series cache, over SQL backends.
package iostore

import (
	"sync"

	"github.com/fabgilson/scrumboard-throwaway-sub001/internal/contract"
)

// StoreManager holds the history store and the series cache.
type StoreManager struct {
	sync.RWMutex // Protects the store pointers during initialization
	history      contract.HistoryStore
	cache        contract.CacheStore
}

var _ contract.StoreManager = &StoreManager{} // Compile-time check

// GetHistoryStore returns the HistoryStore.
func (mgr *StoreManager) GetHistoryStore() contract.HistoryStore {
	mgr.RLock()
	defer mgr.RUnlock()
	return mgr.history
}

// GetCacheStore returns the series CacheStore.
func (mgr *StoreManager) GetCacheStore() contract.CacheStore {
	mgr.RLock()
	defer mgr.RUnlock()
	return mgr.cache
}
