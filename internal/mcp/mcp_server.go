// Package mcp provides the Model Context Protocol (MCP) server implementation.
package mcp

import (
	"context"

	"github.com/huangsam/gridcache/internal/contract"
	"github.com/huangsam/gridcache/internal/iocache"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

// NewMCPServer initializes and configures the gridcache MCP server without starting it.
// This is exposed for unit testing.
func NewMCPServer(baseCfg *contract.Config, mgr *iocache.Manager, version string) *server.MCPServer {
	s := server.NewMCPServer(
		"gridcache NFL Data Server",
		version,
		server.WithLogging(),
	)

	h := &toolHandler{
		baseCfg: baseCfg,
		mgr:     mgr,
	}

	// --- 1. Tool: list_cached_datasets ---
	s.AddTool(mcp.NewTool("list_cached_datasets",
		mcp.WithDescription("List the NFL dataset files in the local cache with their size, age and freshness."),
	), h.handleListCachedDatasets)

	// --- 2. Tool: cache_status ---
	s.AddTool(mcp.NewTool("cache_status",
		mcp.WithDescription("Summarize the local cache: entry count, total size, newest and oldest entry."),
	), h.handleCacheStatus)

	// --- 3. Tool: fetch_dataset ---
	s.AddTool(mcp.NewTool("fetch_dataset",
		mcp.WithDescription("Load an NFL dataset for the given seasons, serving it from cache when fresh and downloading it otherwise."),
		mcp.WithString("kind", mcp.Description("Dataset kind: weekly player stats, play-by-play or draft picks."), mcp.Required(), mcp.Enum("weekly", "pbp", "draft")),
		mcp.WithString("seasons", mcp.Description("Seasons as a comma list of years and ranges, e.g. '2018,2020-2022'."), mcp.Required()),
		mcp.WithBoolean("force_refresh", mcp.Description("Download even when a fresh cache entry exists.")),
		mcp.WithNumber("preview", mcp.Description("Number of rows to include in the response (default 0).")),
	), h.handleFetchDataset)

	// --- 4. Tool: invalidate_dataset ---
	s.AddTool(mcp.NewTool("invalidate_dataset",
		mcp.WithDescription("Remove the cache entry for one dataset request so the next fetch downloads it again."),
		mcp.WithString("kind", mcp.Description("Dataset kind."), mcp.Required(), mcp.Enum("weekly", "pbp", "draft")),
		mcp.WithString("seasons", mcp.Description("Seasons of the request to invalidate."), mcp.Required()),
	), h.handleInvalidateDataset)

	// --- 5. Tool: clear_cache ---
	s.AddTool(mcp.NewTool("clear_cache",
		mcp.WithDescription("Delete every cached dataset. The caller must pass confirm=true."),
		mcp.WithBoolean("confirm", mcp.Description("Must be true to clear the cache."), mcp.Required()),
	), h.handleClearCache)

	return s
}

// StartMCPServer starts the gridcache MCP server on stdio.
func StartMCPServer(_ context.Context, baseCfg *contract.Config, mgr *iocache.Manager, version string) error {
	s := NewMCPServer(baseCfg, mgr, version)
	return server.ServeStdio(s)
}
