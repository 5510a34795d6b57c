package schema

import "time"

// CacheStatus represents the status of the cache store.
type CacheStatus struct {
	Root           string    `json:"root"`
	TotalEntries   int       `json:"total_entries"`
	TotalSizeBytes int64     `json:"total_size_bytes"`
	NewestEntry    time.Time `json:"newest_entry"`
	OldestEntry    time.Time `json:"oldest_entry"`
}

// HistoryStatus represents the status of the fetch history store.
type HistoryStatus struct {
	Backend      string                 `json:"backend"`
	Connected    bool                   `json:"connected"`
	TotalFetches int                    `json:"total_fetches"`
	LastFetchAt  time.Time              `json:"last_fetch_at"`
	ByOutcome    map[FetchOutcome]int64 `json:"by_outcome"`
}
