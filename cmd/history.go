package cmd

import (
	"errors"
	"fmt"
	"os"

	"github.com/huangsam/gridcache/internal/contract"
	"github.com/huangsam/gridcache/internal/iocache"
	"github.com/huangsam/gridcache/schema"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// errHistoryDisabled is returned by history commands when no backend is configured.
var errHistoryDisabled = errors.New("fetch history is disabled; set --history-backend to enable it")

// historySetupWrapper loads config and opens the history store for read commands.
func historySetupWrapper(cmd *cobra.Command, _ []string) error {
	if err := configSetup(cmd); err != nil {
		return err
	}
	if cfg.HistoryBackend == "" {
		return errHistoryDisabled
	}
	return historySetup()
}

// historyMigrateSetupWrapper loads config only. It does NOT open the store or
// create tables, so migrations can run on a fresh database.
func historyMigrateSetupWrapper(cmd *cobra.Command, _ []string) error {
	if err := configSetup(cmd); err != nil {
		return err
	}
	if cfg.HistoryBackend == "" {
		return errHistoryDisabled
	}
	return nil
}

// historyCmd focused on fetch history management.
var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Manage the fetch history log",
	Long: `Manage the log of dataset requests.

When --history-backend is set, every request is recorded with its dataset kind,
cache key, season range, outcome (cache_hit, fetched or fetch_failed), row count
and duration.

Supported backends: SQLite, MySQL, PostgreSQL, or None (disabled)

Subcommands:
  status  - Show totals per outcome
  list    - Show recent requests
  export  - Export the log to Parquet
  clear   - Remove the log
  migrate - Run database schema migrations

Examples:
  # Record requests in the default SQLite file
  gridcache weekly --seasons 2023 --history-backend sqlite

  # Inspect the log
  gridcache history list --history-backend sqlite`,
}

// historyStatusCmd shows history status.
var historyStatusCmd = &cobra.Command{
	Use:     "status",
	Short:   "Display fetch history statistics",
	PreRunE: historySetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		status, err := historyStore.GetStatus()
		if err != nil {
			contract.LogFatal("Failed to get history status", err)
		}
		if err := writer.WriteHistoryStatus(status, cfg); err != nil {
			contract.LogFatal("Failed to write history status", err)
		}
	},
}

// historyListCmd shows recent requests.
var historyListCmd = &cobra.Command{
	Use:     "list",
	Short:   "Show the most recent dataset requests",
	PreRunE: historySetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		records, err := historyStore.ListFetches(viper.GetInt("limit"))
		if err != nil {
			contract.LogFatal("Failed to list fetch history", err)
		}
		if err := writer.WriteHistory(records, cfg); err != nil {
			contract.LogFatal("Failed to write fetch history", err)
		}
	},
}

// historyClearCmd clears the history.
var historyClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Remove all fetch history",
	Long: `Delete the fetch history log.

For SQLite: Deletes the database file
For MySQL/PostgreSQL: Drops the history table

WARNING: This action cannot be undone. Consider exporting data first.

Examples:
  gridcache history export --output-file history.parquet
  gridcache history clear`,
	PreRunE: historyMigrateSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		dbFile := cfg.HistoryDBConnect
		if cfg.HistoryBackend == schema.SQLiteBackend && dbFile == "" {
			dbFile = contract.GetHistoryDBFilePath()
		}
		if err := iocache.ClearHistory(cfg.HistoryBackend, dbFile, cfg.HistoryDBConnect); err != nil {
			contract.LogFatal("Failed to clear fetch history", err)
		}
		fmt.Println("Fetch history cleared successfully.")
	},
}

// historyExportCmd exports the history to Parquet.
var historyExportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export fetch history to Parquet",
	Long: `Export every recorded request, oldest first, to a Parquet file.

Requires: --output-file parameter

Examples:
  gridcache history export --output-file history.parquet
  duckdb -c "SELECT outcome, count(*) FROM read_parquet('history.parquet') GROUP BY 1"`,
	PreRunE: historySetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		if err := iocache.ExecuteHistoryExport(historyStore, cfg.OutputFile, os.Stderr); err != nil {
			contract.LogFatal("Failed to export fetch history", err)
		}
	},
}

// historyMigrateCmd runs database migrations for the history store.
var historyMigrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Run database schema migrations (upgrades/downgrades)",
	Long: `Manage database schema versions for the fetch history store.

By default, migrates to the latest version. Use --target-version for specific versions.

Examples:
  # Migrate to latest version (default)
  gridcache history migrate --history-backend sqlite

  # Rollback to initial state
  gridcache history migrate --history-backend sqlite --target-version 0`,
	PreRunE: historyMigrateSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		targetVersion := viper.GetInt("target-version")
		if err := iocache.MigrateHistory(cfg.HistoryBackend, cfg.HistoryDBConnect, targetVersion, os.Stdout); err != nil {
			contract.LogFatal("Failed to run migrations", err)
		}
	},
}
