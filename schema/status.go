package schema

import "time"

// CacheStatus represents the status of the series cache.
type CacheStatus struct {
	Backend         string    `json:"backend"`
	Connected       bool      `json:"connected"`
	TotalEntries    int       `json:"total_entries"`
	LastEntryTime   time.Time `json:"last_entry_time"`
	OldestEntryTime time.Time `json:"oldest_entry_time"`
	TableSizeBytes  int64     `json:"table_size_bytes"`
}

// StoreStatus represents the status of the history store.
type StoreStatus struct {
	Backend        string           `json:"backend"`
	Connected      bool             `json:"connected"`
	TableRows      map[string]int64 `json:"table_rows"`
	LatestActivity time.Time        `json:"latest_activity"`
	SizeBytes      int64            `json:"size_bytes"`
}
