package cmd

import (
	"errors"

	"github.com/huangsam/gridcache/internal/contract"
	"github.com/huangsam/gridcache/internal/iocache"
	"github.com/huangsam/gridcache/schema"
	"github.com/spf13/cobra"
)

// runDataset loads one dataset kind for the configured seasons and prints it.
func runDataset(kind schema.DatasetKind) error {
	if len(cfg.Seasons) == 0 {
		return errors.New("--seasons is required (e.g. --seasons 2020-2024)")
	}

	opts := iocache.FetchOptions{ForceRefresh: cfg.ForceRefresh, MaxAge: cfg.MaxAge}
	result, err := cacheManager.Dataset(rootCtx, kind, cfg.Seasons, opts)
	if err != nil {
		return err
	}
	return writer.WriteDataset(result, cfg)
}

// weeklyCmd loads weekly player stats.
var weeklyCmd = &cobra.Command{
	Use:   "weekly",
	Short: "Load weekly player stats for the given seasons.",
	Long: `Load weekly player box scores from the nflverse player_stats release.

The data is served from the local cache when a fresh entry exists for the same
first and last season; otherwise every season file is downloaded and cached.

Examples:
  # Load three seasons and preview the first rows
  gridcache weekly --seasons 2022-2024

  # Ignore the cache and export everything as CSV
  gridcache weekly --seasons 2023 --force-refresh --output csv --output-file weekly.csv`,
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		if err := runDataset(schema.WeeklyKind); err != nil {
			contract.LogFatal("Cannot load weekly data", err)
		}
	},
}

// pbpCmd loads play-by-play data.
var pbpCmd = &cobra.Command{
	Use:   "pbp",
	Short: "Load play-by-play data for the given seasons.",
	Long: `Load every play with its down, distance, EPA and description from the
nflverse pbp release. Play-by-play files are large; a cached entry saves the
download on every later run within the max age.

Examples:
  # Load one season
  gridcache pbp --seasons 2023

  # Keep entries for a month
  gridcache pbp --seasons 2021-2023 --max-age-days 30`,
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		if err := runDataset(schema.PlayByPlayKind); err != nil {
			contract.LogFatal("Cannot load play-by-play data", err)
		}
	},
}

// draftCmd loads draft picks.
var draftCmd = &cobra.Command{
	Use:   "draft",
	Short: "Load draft picks for the given seasons.",
	Long: `Load NFL draft selections from the nflverse draft_picks release, filtered to
the requested seasons. Draft data goes back to 1980.

Examples:
  # Load recent drafts as JSON
  gridcache draft --seasons 2020-2024 --output json`,
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		if err := runDataset(schema.DraftKind); err != nil {
			contract.LogFatal("Cannot load draft data", err)
		}
	},
}
