// Package contract provides interfaces and shared utilities for internal architecture.
package contract

import (
	"context"
	"time"

	"github.com/huangsam/gridcache/schema"
)

// Fetcher defines the remote operations needed to download datasets.
// This allows the cache layer to be tested without network access.
type Fetcher interface {
	// FetchWeekly returns weekly player stats for the given seasons.
	FetchWeekly(ctx context.Context, seasons []int) ([]schema.WeeklyStat, error)

	// FetchPlayByPlay returns play-by-play rows for the given seasons.
	FetchPlayByPlay(ctx context.Context, seasons []int) ([]schema.Play, error)

	// FetchDraft returns draft picks for the given seasons.
	FetchDraft(ctx context.Context, seasons []int) ([]schema.DraftPick, error)
}

// CacheStore defines the interface for cache data storage.
// This allows mocking the store for testing.
type CacheStore interface {
	// Root returns the directory holding all entries.
	Root() string

	// Path returns the on-disk location for a key.
	Path(key string) string

	// Exists reports whether an entry is present for key.
	Exists(key string) bool

	// WrittenAt returns when the entry for key was last written.
	WrittenAt(key string) (time.Time, bool)

	// Read returns the stored blob for key.
	Read(key string) ([]byte, error)

	// Write replaces the entry for key with blob as a whole.
	Write(key string, blob []byte) error

	// Delete removes the entry for key. A missing entry is not an error.
	Delete(key string) error

	// List enumerates all stored entries sorted by name.
	List() ([]schema.CacheEntryInfo, error)

	// PurgeAll removes every entry and leaves an empty root behind.
	PurgeAll() error

	// Status summarizes the store contents.
	Status() (schema.CacheStatus, error)
}

// HistoryStore defines the interface for tracking dataset requests.
type HistoryStore interface {
	// RecordFetch stores one request outcome and returns its ID
	RecordFetch(record schema.FetchRecord) (int64, error)

	// ListFetches returns the most recent records, newest first
	ListFetches(limit int) ([]schema.FetchRecord, error)

	// GetStatus returns status information about the history store
	GetStatus() (schema.HistoryStatus, error)

	// Clear removes all records
	Clear() error

	// Close closes the underlying connection
	Close() error
}

// Prompter asks the user a yes/no question.
type Prompter interface {
	Confirm(question string) (bool, error)
}
