package mcp

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/huangsam/gridcache/internal/contract"
	"github.com/huangsam/gridcache/internal/iocache"
	"github.com/huangsam/gridcache/schema"
	"github.com/mark3labs/mcp-go/mcp"
)

// toolHandler holds common dependencies for MCP tool handlers.
type toolHandler struct {
	baseCfg *contract.Config
	mgr     *iocache.Manager
}

// cachedDataset is one entry of the list_cached_datasets response.
type cachedDataset struct {
	schema.CacheEntryInfo
	Fresh bool `json:"fresh"`
}

func jsonResult(v any) *mcp.CallToolResult {
	jsonData, _ := json.MarshalIndent(v, "", "  ")
	return mcp.NewToolResultText(string(jsonData))
}

// parseRequest reads the kind and seasons arguments shared by dataset tools.
func parseRequest(request mcp.CallToolRequest) (schema.DatasetKind, []int, error) {
	kind := schema.DatasetKind(request.GetString("kind", ""))
	if _, ok := schema.ValidDatasetKinds[kind]; !ok {
		return "", nil, fmt.Errorf("invalid kind %q: must be weekly, pbp, draft", kind)
	}
	seasons, err := contract.ParseSeasons(request.GetString("seasons", ""))
	if err != nil {
		return "", nil, err
	}
	if len(seasons) == 0 {
		return "", nil, fmt.Errorf("seasons is required")
	}
	return kind, seasons, nil
}

func (h *toolHandler) handleListCachedDatasets(_ context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	entries, err := h.mgr.ListCachedEntries()
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("listing failed: %v", err)), nil
	}

	out := make([]cachedDataset, len(entries))
	for i, e := range entries {
		out[i] = cachedDataset{CacheEntryInfo: e, Fresh: h.mgr.IsEntryFresh(e)}
	}
	return jsonResult(out), nil
}

func (h *toolHandler) handleCacheStatus(_ context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	status, err := h.mgr.CacheStatus()
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("status failed: %v", err)), nil
	}
	return jsonResult(status), nil
}

func (h *toolHandler) handleFetchDataset(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	kind, seasons, err := parseRequest(request)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("invalid dataset parameters: %v", err)), nil
	}

	opts := iocache.FetchOptions{
		ForceRefresh: request.GetBool("force_refresh", h.baseCfg.ForceRefresh),
		MaxAge:       h.baseCfg.MaxAge,
	}
	result, err := h.mgr.Dataset(ctx, kind, seasons, opts)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("fetch failed: %v", err)), nil
	}
	return jsonResult(result.Head(request.GetInt("preview", 0))), nil
}

func (h *toolHandler) handleInvalidateDataset(_ context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	kind, seasons, err := parseRequest(request)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("invalid dataset parameters: %v", err)), nil
	}

	key, err := h.mgr.Invalidate(kind, seasons)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("invalidate failed: %v", err)), nil
	}
	return jsonResult(map[string]string{"cache_key": key}), nil
}

func (h *toolHandler) handleClearCache(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	if !request.GetBool("confirm", false) {
		return mcp.NewToolResultError("confirm must be true to clear the cache"), nil
	}

	// The MCP client has already asked the user, so no terminal prompt here
	cleared, err := h.mgr.ClearCache(ctx, false)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("clear failed: %v", err)), nil
	}
	return jsonResult(map[string]bool{"cleared": cleared}), nil
}
