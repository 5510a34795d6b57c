package cmd

import (
	"fmt"
	"path/filepath"

	"github.com/huangsam/gridcache/internal/contract"
	"github.com/huangsam/gridcache/internal/outwriter"
	"github.com/huangsam/gridcache/schema"
	"github.com/spf13/cobra"
)

// cacheCmd focused on cache management.
var cacheCmd = &cobra.Command{
	Use:   "cache",
	Short: "Manage the local dataset cache",
	Long: `Manage the directory of cached dataset files.

Each request is stored as one Parquet file named after its dataset kind and the
first and last requested season, e.g. weekly_2022-2024.parquet. Entries older
than --max-age-days are refetched on the next request.

Subcommands:
  list       - Show cached files with size, age and freshness
  status     - Show cache totals
  clear      - Remove all cached files
  path       - Print the cache directory
  invalidate - Remove the entry for one request

Examples:
  # See what is cached
  gridcache cache list

  # Force the next draft request to download again
  gridcache cache invalidate draft --seasons 2020-2024`,
}

// cacheListCmd lists cached files.
var cacheListCmd = &cobra.Command{
	Use:     "list",
	Short:   "List cached dataset files",
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		entries, err := cacheManager.ListCachedEntries()
		if err != nil {
			contract.LogFatal("Failed to list cache", err)
		}
		listing := outwriter.CacheListing{
			Root:       cfg.CacheDir,
			RootExists: cacheRootExisted,
			Entries:    entries,
			IsFresh:    cacheManager.IsEntryFresh,
		}
		if err := writer.WriteCacheList(listing, cfg); err != nil {
			contract.LogFatal("Failed to write cache listing", err)
		}
	},
}

// cacheStatusCmd shows cache status.
var cacheStatusCmd = &cobra.Command{
	Use:   "status",
	Short: "Display cache statistics",
	Long: `Show the cache directory, number of entries, total size and the newest and
oldest entry.

Examples:
  # Check cache status
  gridcache cache status --output json`,
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		status, err := cacheManager.CacheStatus()
		if err != nil {
			contract.LogFatal("Failed to get cache status", err)
		}
		if err := writer.WriteCacheStatus(status, cfg); err != nil {
			contract.LogFatal("Failed to write cache status", err)
		}
	},
}

// cacheClearCmd clears the cache.
var cacheClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Remove all cached dataset files",
	Long: `Delete every cached dataset file. The directory itself is recreated empty.

You are asked to confirm unless --yes is given. Without a terminal on stdin
the prompt is declined and nothing is removed.

Examples:
  # Clear interactively
  gridcache cache clear

  # Clear in a script
  gridcache cache clear --yes`,
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		if _, err := cacheManager.ClearCache(rootCtx, !cfg.AssumeYes); err != nil {
			contract.LogFatal("Failed to clear cache", err)
		}
	},
}

// cachePathCmd prints the cache directory.
var cachePathCmd = &cobra.Command{
	Use:     "path",
	Short:   "Print the absolute cache directory",
	PreRunE: sharedSetupWrapper,
	Run: func(cmd *cobra.Command, _ []string) {
		abs, err := filepath.Abs(cacheManager.Store().Root())
		if err != nil {
			contract.LogFatal("Failed to resolve cache directory", err)
		}
		cmd.Println(abs)
	},
}

// cacheInvalidateCmd removes the entry for one request.
var cacheInvalidateCmd = &cobra.Command{
	Use:   "invalidate <weekly|pbp|draft>",
	Short: "Remove the cached entry for one request",
	Long: `Remove the cache entry that a request for the given kind and seasons would use.
Other entries are left alone.

Examples:
  gridcache cache invalidate weekly --seasons 2022-2024`,
	Args:      cobra.ExactArgs(1),
	ValidArgs: []string{string(schema.WeeklyKind), string(schema.PlayByPlayKind), string(schema.DraftKind)},
	PreRunE:   sharedSetupWrapper,
	RunE: func(cmd *cobra.Command, args []string) error {
		kind := schema.DatasetKind(args[0])
		if _, ok := schema.ValidDatasetKinds[kind]; !ok {
			return fmt.Errorf("invalid kind '%s'. must be weekly, pbp, draft", args[0])
		}
		key, err := cacheManager.Invalidate(kind, cfg.Seasons)
		if err != nil {
			return err
		}
		cmd.Printf("🗑️  Removed cache entry %s\n", key)
		return nil
	},
}
