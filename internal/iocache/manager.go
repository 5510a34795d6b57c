package iocache

import (
	"context"
	"errors"
	"fmt"
	"io"
	"slices"
	"time"

	"github.com/huangsam/gridcache/internal/contract"
	"github.com/huangsam/gridcache/schema"
)

// ClearCachePrompt is the question asked before purging the cache.
const ClearCachePrompt = "⚠️  Are you sure you want to clear all cached data? (y/N): "

// FetchOptions tunes a single dataset request.
type FetchOptions struct {
	// ForceRefresh skips the cache lookup and always calls the fetcher.
	ForceRefresh bool

	// MaxAge overrides the manager default when positive.
	MaxAge time.Duration
}

// Manager serves datasets from the cache store and falls back to the fetcher.
// It is not safe for concurrent use.
type Manager struct {
	store    contract.CacheStore
	fetcher  contract.Fetcher
	maxAge   time.Duration
	now      func() time.Time
	notices  io.Writer
	history  contract.HistoryStore
	prompter contract.Prompter
}

// Option configures a Manager.
type Option func(*Manager)

// WithMaxAge sets the default freshness window.
func WithMaxAge(maxAge time.Duration) Option {
	return func(m *Manager) { m.maxAge = maxAge }
}

// WithClock overrides the time source.
func WithClock(now func() time.Time) Option {
	return func(m *Manager) { m.now = now }
}

// WithNotices sets where progress lines are printed.
func WithNotices(w io.Writer) Option {
	return func(m *Manager) { m.notices = w }
}

// WithHistory records every request in the given store.
func WithHistory(h contract.HistoryStore) Option {
	return func(m *Manager) { m.history = h }
}

// WithPrompter sets who confirms destructive operations.
func WithPrompter(p contract.Prompter) Option {
	return func(m *Manager) { m.prompter = p }
}

// NewManager creates a Manager over store and fetcher.
func NewManager(store contract.CacheStore, fetcher contract.Fetcher, opts ...Option) *Manager {
	m := &Manager{
		store:   store,
		fetcher: fetcher,
		maxAge:  DefaultMaxAge,
		now:     time.Now,
		notices: io.Discard,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(m)
		}
	}
	return m
}

// Store returns the underlying cache store.
func (m *Manager) Store() contract.CacheStore {
	return m.store
}

// WeeklyData returns weekly player stats for seasons.
func (m *Manager) WeeklyData(ctx context.Context, seasons []int, opts FetchOptions) ([]schema.WeeklyStat, error) {
	rows, _, err := getDataset(ctx, m, schema.WeeklyKind, seasons, opts, m.fetcher.FetchWeekly)
	return rows, err
}

// PlayByPlayData returns play-by-play rows for seasons.
func (m *Manager) PlayByPlayData(ctx context.Context, seasons []int, opts FetchOptions) ([]schema.Play, error) {
	rows, _, err := getDataset(ctx, m, schema.PlayByPlayKind, seasons, opts, m.fetcher.FetchPlayByPlay)
	return rows, err
}

// DraftData returns draft picks for seasons.
func (m *Manager) DraftData(ctx context.Context, seasons []int, opts FetchOptions) ([]schema.DraftPick, error) {
	rows, _, err := getDataset(ctx, m, schema.DraftKind, seasons, opts, m.fetcher.FetchDraft)
	return rows, err
}

// Dataset dispatches on kind and reports where the rows came from.
func (m *Manager) Dataset(ctx context.Context, kind schema.DatasetKind, seasons []int, opts FetchOptions) (schema.DatasetResult, error) {
	var (
		rows  any
		count int
		hit   bool
		err   error
	)
	switch kind {
	case schema.WeeklyKind:
		var weekly []schema.WeeklyStat
		weekly, hit, err = getDataset(ctx, m, kind, seasons, opts, m.fetcher.FetchWeekly)
		rows, count = weekly, len(weekly)
	case schema.PlayByPlayKind:
		var plays []schema.Play
		plays, hit, err = getDataset(ctx, m, kind, seasons, opts, m.fetcher.FetchPlayByPlay)
		rows, count = plays, len(plays)
	case schema.DraftKind:
		var picks []schema.DraftPick
		picks, hit, err = getDataset(ctx, m, kind, seasons, opts, m.fetcher.FetchDraft)
		rows, count = picks, len(picks)
	default:
		return schema.DatasetResult{}, &FetchError{Kind: string(kind), Periods: seasons, Err: ErrUnknownKind}
	}
	if err != nil {
		return schema.DatasetResult{}, err
	}

	key := BuildKey(string(kind), seasons)
	source := schema.RemoteSource
	if hit {
		source = schema.CacheSource
	}
	return schema.DatasetResult{
		Kind:     kind,
		Key:      key,
		Path:     m.store.Path(key),
		Source:   source,
		RowCount: count,
		Rows:     rows,
	}, nil
}

// getDataset is the shared lookup-or-fetch algorithm behind every dataset kind.
// The bool result reports a cache hit.
func getDataset[T any](
	ctx context.Context,
	m *Manager,
	kind schema.DatasetKind,
	periods []int,
	opts FetchOptions,
	fetch func(context.Context, []int) ([]T, error),
) ([]T, bool, error) {
	start := m.now()
	if len(periods) == 0 {
		err := &FetchError{Kind: string(kind), Err: ErrNoPeriods}
		m.recordFetch(kind, string(kind), periods, schema.FetchFailedOutcome, 0, start, err)
		return nil, false, err
	}

	key := BuildKey(string(kind), periods)
	maxAge := m.maxAge
	if opts.MaxAge > 0 {
		maxAge = opts.MaxAge
	}

	if !opts.ForceRefresh {
		if rows, ok := loadFresh[T](m, kind, key, maxAge); ok {
			m.recordFetch(kind, key, periods, schema.CacheHitOutcome, len(rows), start, nil)
			return rows, true, nil
		}
	}

	m.notice("🌐 Downloading %s data for seasons %s...", kind.DisplayName(), contract.FormatSeasons(periods))
	rows, err := fetch(ctx, slices.Clone(periods))
	if err != nil {
		var fe *FetchError
		if !errors.As(err, &fe) {
			err = &FetchError{Kind: string(kind), Periods: slices.Clone(periods), Err: err}
		}
		m.recordFetch(kind, key, periods, schema.FetchFailedOutcome, 0, start, err)
		return nil, false, err
	}

	m.notice("💾 Caching data to: %s", m.store.Path(key))
	if err := WriteEntry(m.store, string(kind), key, rows); err != nil {
		contract.LogWarn(fmt.Sprintf("Failed to cache %s", key), err)
	}

	m.recordFetch(kind, key, periods, schema.FetchedOutcome, len(rows), start, nil)
	return rows, false, nil
}

// loadFresh returns the stored rows for key when the entry is present and fresh.
// Unreadable entries are reported and treated as misses.
func loadFresh[T any](m *Manager, kind schema.DatasetKind, key string, maxAge time.Duration) ([]T, bool) {
	if !m.store.Exists(key) {
		return nil, false
	}
	writtenAt, ok := m.store.WrittenAt(key)
	if !ok || !IsFresh(writtenAt, m.now(), maxAge) {
		return nil, false
	}

	rows, err := ReadEntry[T](m.store, string(kind), key)
	if err != nil {
		if IsCacheMiss(err) {
			contract.LogWarn(fmt.Sprintf("Ignoring cache entry %s", key), err)
		} else {
			contract.LogWarn(fmt.Sprintf("Failed to read cache entry %s", key), err)
		}
		return nil, false
	}

	m.notice("📂 Loading %s data from cache: %s", kind.DisplayName(), m.store.Path(key))
	return rows, true
}

// ListCachedEntries returns every stored entry sorted by name.
func (m *Manager) ListCachedEntries() ([]schema.CacheEntryInfo, error) {
	return m.store.List()
}

// IsEntryFresh reports whether a listed entry is still within the default max age.
func (m *Manager) IsEntryFresh(entry schema.CacheEntryInfo) bool {
	return IsFresh(entry.WrittenAt, m.now(), m.maxAge)
}

// CacheStatus summarizes the cache store.
func (m *Manager) CacheStatus() (schema.CacheStatus, error) {
	return m.store.Status()
}

// Invalidate removes the entry for one request without touching others.
func (m *Manager) Invalidate(kind schema.DatasetKind, seasons []int) (string, error) {
	if len(seasons) == 0 {
		return "", &FetchError{Kind: string(kind), Err: ErrNoPeriods}
	}
	key := BuildKey(string(kind), seasons)
	return key, m.store.Delete(key)
}

// ClearCache purges every entry. When requireConfirmation is set the configured
// prompter must approve first; a refusal returns false and touches nothing.
func (m *Manager) ClearCache(ctx context.Context, requireConfirmation bool) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}

	if requireConfirmation {
		if m.prompter == nil {
			m.notice("Cache clearing cancelled")
			return false, nil
		}
		ok, err := m.prompter.Confirm(ClearCachePrompt)
		if err != nil {
			return false, fmt.Errorf("failed to read confirmation: %w", err)
		}
		if !ok {
			m.notice("Cache clearing cancelled")
			return false, nil
		}
	}

	existed := RootExists(m.store.Root())
	if err := m.store.PurgeAll(); err != nil {
		return false, err
	}
	if existed {
		m.notice("🗑️  Cache cleared successfully")
	} else {
		m.notice("📁 No cache directory to clear")
	}
	return true, nil
}

func (m *Manager) notice(format string, args ...any) {
	_, _ = fmt.Fprintf(m.notices, format+"\n", args...)
}

// recordFetch writes a history row when a history store is configured.
func (m *Manager) recordFetch(kind schema.DatasetKind, key string, periods []int, outcome schema.FetchOutcome, rows int, start time.Time, fetchErr error) {
	if m.history == nil {
		return
	}

	finished := m.now()
	record := schema.FetchRecord{
		Kind:       kind,
		CacheKey:   key,
		Outcome:    outcome,
		RowCount:   int32(rows),
		FetchedAt:  finished,
		DurationMs: finished.Sub(start).Milliseconds(),
	}
	if len(periods) > 0 {
		record.FirstPeriod = int32(slices.Min(periods))
		record.LastPeriod = int32(slices.Max(periods))
	}
	if fetchErr != nil {
		msg := fetchErr.Error()
		record.ErrorMessage = &msg
	}

	if _, err := m.history.RecordFetch(record); err != nil {
		contract.LogWarn("Failed to record fetch history", err)
	}
}
