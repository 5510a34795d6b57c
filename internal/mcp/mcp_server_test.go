package mcp_test

import (
	"context"
	"encoding/json"
	"path/filepath"
	"testing"
	"time"

	"github.com/huangsam/gridcache/internal/contract"
	"github.com/huangsam/gridcache/internal/iocache"
	mcp_internal "github.com/huangsam/gridcache/internal/mcp"
	"github.com/huangsam/gridcache/schema"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

var testPicks = []schema.DraftPick{
	{Season: 2020, Round: 1, Pick: 1, Team: "CIN", PlayerName: "Joe Burrow", Position: "QB"},
	{Season: 2020, Round: 1, Pick: 2, Team: "WAS", PlayerName: "Chase Young", Position: "DE"},
	{Season: 2020, Round: 1, Pick: 3, Team: "DET", PlayerName: "Jeff Okudah", Position: "CB"},
}

type fixture struct {
	server  *server.MCPServer
	fetcher *iocache.MockFetcher
	store   *iocache.FileStore
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	store, err := iocache.NewFileStore(filepath.Join(t.TempDir(), "cache"))
	require.NoError(t, err)

	fetcher := &iocache.MockFetcher{}
	t.Cleanup(func() { fetcher.AssertExpectations(t) })

	cfg := &contract.Config{MaxAge: 7 * 24 * time.Hour}
	mgr := iocache.NewManager(store, fetcher)
	return &fixture{server: mcp_internal.NewMCPServer(cfg, mgr, "test"), fetcher: fetcher, store: store}
}

func (f *fixture) call(t *testing.T, name string, args map[string]any) *mcp.CallToolResult {
	t.Helper()
	tool := f.server.GetTool(name)
	require.NotNil(t, tool, "Tool %s should exist", name)

	req := mcp.CallToolRequest{
		Params: mcp.CallToolParams{Name: name, Arguments: args},
	}
	res, err := tool.Handler(context.Background(), req)
	require.NoError(t, err, "The MCP handler should not return a raw error for tool logic failures")
	require.NotNil(t, res)
	return res
}

func resultText(t *testing.T, res *mcp.CallToolResult) string {
	t.Helper()
	require.NotEmpty(t, res.Content)
	text, ok := res.Content[0].(mcp.TextContent)
	require.True(t, ok)
	return text.Text
}

func TestMCPServerHandlers_ValidationErrors(t *testing.T) {
	f := newFixture(t)

	t.Run("fetch_dataset invalid kind", func(t *testing.T) {
		res := f.call(t, "fetch_dataset", map[string]any{"kind": "injuries", "seasons": "2020"})
		assert.True(t, res.IsError)
		assert.Contains(t, resultText(t, res), "invalid kind")
	})

	t.Run("fetch_dataset bad seasons", func(t *testing.T) {
		res := f.call(t, "fetch_dataset", map[string]any{"kind": "draft", "seasons": "2022-2020"})
		assert.True(t, res.IsError)
		assert.Contains(t, resultText(t, res), "end is before start")
	})

	t.Run("fetch_dataset missing seasons", func(t *testing.T) {
		res := f.call(t, "fetch_dataset", map[string]any{"kind": "draft"})
		assert.True(t, res.IsError)
		assert.Contains(t, resultText(t, res), "seasons is required")
	})

	t.Run("clear_cache without confirm", func(t *testing.T) {
		res := f.call(t, "clear_cache", map[string]any{"confirm": false})
		assert.True(t, res.IsError)
		assert.Contains(t, resultText(t, res), "confirm must be true")
	})
}

func TestMCPServerHandlers_FetchThenList(t *testing.T) {
	f := newFixture(t)
	f.fetcher.On("FetchDraft", mock.Anything, []int{2020}).Return(testPicks, nil).Once()

	res := f.call(t, "fetch_dataset", map[string]any{"kind": "draft", "seasons": "2020", "preview": 2.0})
	require.False(t, res.IsError, resultText(t, res))

	var first struct {
		Key      string             `json:"cache_key"`
		Source   string             `json:"source"`
		RowCount int                `json:"row_count"`
		Rows     []schema.DraftPick `json:"rows"`
	}
	require.NoError(t, json.Unmarshal([]byte(resultText(t, res)), &first))
	assert.Equal(t, "draft_2020", first.Key)
	assert.Equal(t, "remote", first.Source)
	assert.Equal(t, 3, first.RowCount)
	assert.Len(t, first.Rows, 2)

	// The second call is served from the cache entry written by the first
	res = f.call(t, "fetch_dataset", map[string]any{"kind": "draft", "seasons": "2020"})
	require.False(t, res.IsError)
	var second map[string]any
	require.NoError(t, json.Unmarshal([]byte(resultText(t, res)), &second))
	assert.Equal(t, "cache", second["source"])
	assert.NotContains(t, second, "rows")

	res = f.call(t, "list_cached_datasets", nil)
	require.False(t, res.IsError)
	var listed []struct {
		Name  string `json:"name"`
		Fresh bool   `json:"fresh"`
	}
	require.NoError(t, json.Unmarshal([]byte(resultText(t, res)), &listed))
	require.Len(t, listed, 1)
	assert.Equal(t, "draft_2020.parquet", listed[0].Name)
	assert.True(t, listed[0].Fresh)

	res = f.call(t, "cache_status", nil)
	require.False(t, res.IsError)
	var status schema.CacheStatus
	require.NoError(t, json.Unmarshal([]byte(resultText(t, res)), &status))
	assert.Equal(t, 1, status.TotalEntries)
}

func TestMCPServerHandlers_ForceRefresh(t *testing.T) {
	f := newFixture(t)
	f.fetcher.On("FetchDraft", mock.Anything, []int{2020}).Return(testPicks, nil).Twice()

	for range 2 {
		res := f.call(t, "fetch_dataset", map[string]any{"kind": "draft", "seasons": "2020", "force_refresh": true})
		require.False(t, res.IsError)
	}
}

func TestMCPServerHandlers_FetchFailure(t *testing.T) {
	f := newFixture(t)
	f.fetcher.On("FetchWeekly", mock.Anything, []int{2023}).Return(nil, assert.AnError).Once()

	res := f.call(t, "fetch_dataset", map[string]any{"kind": "weekly", "seasons": "2023"})
	assert.True(t, res.IsError)
	assert.Contains(t, resultText(t, res), "fetch failed")
}

func TestMCPServerHandlers_InvalidateAndClear(t *testing.T) {
	f := newFixture(t)
	f.fetcher.On("FetchDraft", mock.Anything, []int{2020}).Return(testPicks, nil).Once()

	res := f.call(t, "fetch_dataset", map[string]any{"kind": "draft", "seasons": "2020"})
	require.False(t, res.IsError)
	require.True(t, f.store.Exists("draft_2020"))

	res = f.call(t, "invalidate_dataset", map[string]any{"kind": "draft", "seasons": "2020"})
	require.False(t, res.IsError)
	assert.Contains(t, resultText(t, res), "draft_2020")
	assert.False(t, f.store.Exists("draft_2020"))

	res = f.call(t, "clear_cache", map[string]any{"confirm": true})
	require.False(t, res.IsError)
	assert.JSONEq(t, `{"cleared": true}`, resultText(t, res))
	assert.True(t, iocache.RootExists(f.store.Root()))
}
