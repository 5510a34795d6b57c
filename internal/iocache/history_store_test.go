package iocache

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/huangsam/gridcache/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newSQLiteHistory(t *testing.T) *HistoryStoreImpl {
	t.Helper()
	store, err := NewHistoryStore(schema.SQLiteBackend, filepath.Join(t.TempDir(), "history.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })
	return store
}

func TestHistoryStore_NoneBackend(t *testing.T) {
	store, err := NewHistoryStore(schema.NoneBackend, "")
	require.NoError(t, err)
	require.NotNil(t, store)

	id, err := store.RecordFetch(schema.FetchRecord{Kind: schema.WeeklyKind, CacheKey: "weekly_2023"})
	assert.NoError(t, err)
	assert.Equal(t, int64(0), id)

	records, err := store.ListFetches(10)
	assert.NoError(t, err)
	assert.Empty(t, records)

	status, err := store.GetStatus()
	assert.NoError(t, err)
	assert.Equal(t, "none", status.Backend)
	assert.False(t, status.Connected)

	assert.NoError(t, store.Clear())
	assert.NoError(t, store.Close())
}

func TestHistoryStore_UnsupportedBackend(t *testing.T) {
	_, err := NewHistoryStore(schema.DatabaseBackend("oracle"), "")
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported backend")
}

func TestHistoryStore_SQLite(t *testing.T) {
	store := newSQLiteHistory(t)
	base := time.Date(2024, 9, 8, 17, 0, 0, 123456000, time.UTC)
	failure := "fetch draft for seasons 1975: invalid period range"

	records := []schema.FetchRecord{
		{Kind: schema.WeeklyKind, CacheKey: "weekly_2022-2024", FirstPeriod: 2022, LastPeriod: 2024, Outcome: schema.FetchedOutcome, RowCount: 3, FetchedAt: base, DurationMs: 1500},
		{Kind: schema.WeeklyKind, CacheKey: "weekly_2022-2024", FirstPeriod: 2022, LastPeriod: 2024, Outcome: schema.CacheHitOutcome, RowCount: 3, FetchedAt: base.Add(time.Minute), DurationMs: 12},
		{Kind: schema.DraftKind, CacheKey: "draft_1975", FirstPeriod: 1975, LastPeriod: 1975, Outcome: schema.FetchFailedOutcome, FetchedAt: base.Add(2 * time.Minute), ErrorMessage: &failure},
	}
	var lastID int64
	for _, r := range records {
		id, err := store.RecordFetch(r)
		require.NoError(t, err)
		assert.Greater(t, id, lastID)
		lastID = id
	}

	all, err := store.ListFetches(0)
	require.NoError(t, err)
	require.Len(t, all, 3)

	// Newest first
	assert.Equal(t, schema.DraftKind, all[0].Kind)
	assert.Equal(t, schema.FetchFailedOutcome, all[0].Outcome)
	require.NotNil(t, all[0].ErrorMessage)
	assert.Equal(t, failure, *all[0].ErrorMessage)
	assert.True(t, all[0].FetchedAt.Equal(base.Add(2*time.Minute)))

	assert.Equal(t, "weekly_2022-2024", all[2].CacheKey)
	assert.Equal(t, int32(2022), all[2].FirstPeriod)
	assert.Equal(t, int32(2024), all[2].LastPeriod)
	assert.Equal(t, int32(3), all[2].RowCount)
	assert.Equal(t, int64(1500), all[2].DurationMs)
	assert.Nil(t, all[2].ErrorMessage)
	assert.True(t, all[2].FetchedAt.Equal(base))

	limited, err := store.ListFetches(2)
	require.NoError(t, err)
	assert.Len(t, limited, 2)

	status, err := store.GetStatus()
	require.NoError(t, err)
	assert.Equal(t, "sqlite", status.Backend)
	assert.True(t, status.Connected)
	assert.Equal(t, 3, status.TotalFetches)
	assert.True(t, status.LastFetchAt.Equal(base.Add(2*time.Minute)))
	assert.Equal(t, int64(1), status.ByOutcome[schema.FetchedOutcome])
	assert.Equal(t, int64(1), status.ByOutcome[schema.CacheHitOutcome])
	assert.Equal(t, int64(1), status.ByOutcome[schema.FetchFailedOutcome])

	require.NoError(t, store.Clear())
	status, err = store.GetStatus()
	require.NoError(t, err)
	assert.Equal(t, 0, status.TotalFetches)
	assert.True(t, status.LastFetchAt.IsZero())
}

func TestHistoryStore_SQLiteInMemory(t *testing.T) {
	store, err := NewHistoryStore(schema.SQLiteBackend, ":memory:")
	require.NoError(t, err)
	defer func() { _ = store.Close() }()

	_, err = store.RecordFetch(schema.FetchRecord{Kind: schema.PlayByPlayKind, CacheKey: "pbp_2021", FirstPeriod: 2021, LastPeriod: 2021, Outcome: schema.FetchedOutcome, FetchedAt: time.Now()})
	require.NoError(t, err)

	status, err := store.GetStatus()
	require.NoError(t, err)
	assert.Equal(t, 1, status.TotalFetches)
}

func TestHistoryStore_Reopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "history.db")

	first, err := NewHistoryStore(schema.SQLiteBackend, path)
	require.NoError(t, err)
	_, err = first.RecordFetch(schema.FetchRecord{Kind: schema.DraftKind, CacheKey: "draft_2020", FirstPeriod: 2020, LastPeriod: 2020, Outcome: schema.FetchedOutcome, FetchedAt: time.Now()})
	require.NoError(t, err)
	require.NoError(t, first.Close())

	second, err := NewHistoryStore(schema.SQLiteBackend, path)
	require.NoError(t, err)
	defer func() { _ = second.Close() }()
	records, err := second.ListFetches(0)
	require.NoError(t, err)
	assert.Len(t, records, 1)
}

func TestValidateTableName(t *testing.T) {
	assert.NoError(t, validateTableName("gridcache_fetch_history"))
	assert.NoError(t, validateTableName("_t1"))
	assert.Error(t, validateTableName(""))
	assert.Error(t, validateTableName("1table"))
	assert.Error(t, validateTableName("fetch; DROP TABLE x"))
}

func TestQuoteTableName(t *testing.T) {
	assert.Equal(t, "`t`", quoteTableName("t", schema.MySQLBackend))
	assert.Equal(t, `"t"`, quoteTableName("t", schema.PostgreSQLBackend))
	assert.Equal(t, `"t"`, quoteTableName("t", schema.SQLiteBackend))
}

func TestOpenHistory(t *testing.T) {
	store, err := OpenHistory("", "")
	require.NoError(t, err)
	assert.Nil(t, store)

	store, err = OpenHistory(schema.SQLiteBackend, filepath.Join(t.TempDir(), "h.db"))
	require.NoError(t, err)
	require.NotNil(t, store)
	assert.NoError(t, store.Close())
}

func TestClearHistory(t *testing.T) {
	t.Run("sqlite removes the file", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "history.db")
		store, err := NewHistoryStore(schema.SQLiteBackend, path)
		require.NoError(t, err)
		require.NoError(t, store.Close())
		require.FileExists(t, path)

		require.NoError(t, ClearHistory(schema.SQLiteBackend, path, ""))
		assert.NoFileExists(t, path)

		// Missing file is fine
		require.NoError(t, ClearHistory(schema.SQLiteBackend, path, ""))
	})

	t.Run("sqlite needs a path", func(t *testing.T) {
		assert.Error(t, ClearHistory(schema.SQLiteBackend, "", ""))
	})

	t.Run("none is a no-op", func(t *testing.T) {
		assert.NoError(t, ClearHistory(schema.NoneBackend, "", ""))
	})

	t.Run("unsupported", func(t *testing.T) {
		assert.Error(t, ClearHistory(schema.DatabaseBackend("oracle"), "", ""))
	})
}
