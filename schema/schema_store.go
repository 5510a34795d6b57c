package schema

import "time"

// CacheEntryInfo describes one stored cache entry for listing.
type CacheEntryInfo struct {
	Name      string    `json:"name"`
	SizeBytes int64     `json:"size_bytes"`
	WrittenAt time.Time `json:"written_at"`
}

// FetchRecord represents a row from the gridcache_fetch_history table.
type FetchRecord struct {
	ID           int64
	Kind         DatasetKind
	CacheKey     string
	FirstPeriod  int32
	LastPeriod   int32
	Outcome      FetchOutcome
	RowCount     int32
	FetchedAt    time.Time
	DurationMs   int64
	ErrorMessage *string
}
