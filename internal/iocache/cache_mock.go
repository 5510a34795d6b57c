package iocache

import (
	"context"
	"time"

	"github.com/huangsam/gridcache/internal/contract"
	"github.com/huangsam/gridcache/schema"
	"github.com/stretchr/testify/mock"
)

// MockCacheStore is a mock implementation of CacheStore for testing.
type MockCacheStore struct {
	mock.Mock
}

var _ contract.CacheStore = &MockCacheStore{} // Compile-time check

// Root implements the CacheStore interface.
func (m *MockCacheStore) Root() string {
	return m.Called().String(0)
}

// Path implements the CacheStore interface.
func (m *MockCacheStore) Path(key string) string {
	return m.Called(key).String(0)
}

// Exists implements the CacheStore interface.
func (m *MockCacheStore) Exists(key string) bool {
	return m.Called(key).Bool(0)
}

// WrittenAt implements the CacheStore interface.
func (m *MockCacheStore) WrittenAt(key string) (time.Time, bool) {
	args := m.Called(key)
	return args.Get(0).(time.Time), args.Bool(1)
}

// Read implements the CacheStore interface.
func (m *MockCacheStore) Read(key string) ([]byte, error) {
	args := m.Called(key)
	blob, _ := args.Get(0).([]byte)
	return blob, args.Error(1)
}

// Write implements the CacheStore interface.
func (m *MockCacheStore) Write(key string, blob []byte) error {
	return m.Called(key, blob).Error(0)
}

// Delete implements the CacheStore interface.
func (m *MockCacheStore) Delete(key string) error {
	return m.Called(key).Error(0)
}

// List implements the CacheStore interface.
func (m *MockCacheStore) List() ([]schema.CacheEntryInfo, error) {
	args := m.Called()
	entries, _ := args.Get(0).([]schema.CacheEntryInfo)
	return entries, args.Error(1)
}

// PurgeAll implements the CacheStore interface.
func (m *MockCacheStore) PurgeAll() error {
	return m.Called().Error(0)
}

// Status implements the CacheStore interface.
func (m *MockCacheStore) Status() (schema.CacheStatus, error) {
	args := m.Called()
	return args.Get(0).(schema.CacheStatus), args.Error(1)
}

// MockFetcher is a mock implementation of Fetcher for testing.
type MockFetcher struct {
	mock.Mock
}

var _ contract.Fetcher = &MockFetcher{} // Compile-time check

// FetchWeekly implements the Fetcher interface.
func (m *MockFetcher) FetchWeekly(ctx context.Context, seasons []int) ([]schema.WeeklyStat, error) {
	args := m.Called(ctx, seasons)
	rows, _ := args.Get(0).([]schema.WeeklyStat)
	return rows, args.Error(1)
}

// FetchPlayByPlay implements the Fetcher interface.
func (m *MockFetcher) FetchPlayByPlay(ctx context.Context, seasons []int) ([]schema.Play, error) {
	args := m.Called(ctx, seasons)
	rows, _ := args.Get(0).([]schema.Play)
	return rows, args.Error(1)
}

// FetchDraft implements the Fetcher interface.
func (m *MockFetcher) FetchDraft(ctx context.Context, seasons []int) ([]schema.DraftPick, error) {
	args := m.Called(ctx, seasons)
	rows, _ := args.Get(0).([]schema.DraftPick)
	return rows, args.Error(1)
}

// MockHistoryStore is a mock implementation of HistoryStore for testing.
type MockHistoryStore struct {
	mock.Mock
}

var _ contract.HistoryStore = &MockHistoryStore{} // Compile-time check

// RecordFetch implements the HistoryStore interface.
func (m *MockHistoryStore) RecordFetch(record schema.FetchRecord) (int64, error) {
	args := m.Called(record)
	return args.Get(0).(int64), args.Error(1)
}

// ListFetches implements the HistoryStore interface.
func (m *MockHistoryStore) ListFetches(limit int) ([]schema.FetchRecord, error) {
	args := m.Called(limit)
	records, _ := args.Get(0).([]schema.FetchRecord)
	return records, args.Error(1)
}

// GetStatus implements the HistoryStore interface.
func (m *MockHistoryStore) GetStatus() (schema.HistoryStatus, error) {
	args := m.Called()
	return args.Get(0).(schema.HistoryStatus), args.Error(1)
}

// Clear implements the HistoryStore interface.
func (m *MockHistoryStore) Clear() error {
	return m.Called().Error(0)
}

// Close implements the HistoryStore interface.
func (m *MockHistoryStore) Close() error {
	return m.Called().Error(0)
}

// MockPrompter is a mock implementation of Prompter for testing.
type MockPrompter struct {
	mock.Mock
}

var _ contract.Prompter = &MockPrompter{} // Compile-time check

// Confirm implements the Prompter interface.
func (m *MockPrompter) Confirm(question string) (bool, error) {
	args := m.Called(question)
	return args.Bool(0), args.Error(1)
}
