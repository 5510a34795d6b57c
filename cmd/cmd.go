// Package cmd defines the command-line interface for gridcache.
package cmd

import (
	"github.com/huangsam/gridcache/internal/contract"
	"github.com/huangsam/gridcache/schema"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func init() {
	// Call initConfig on Cobra's initialization
	cobra.OnInitialize(initConfig)

	// Add primary subcommands to the root command
	rootCmd.AddCommand(weeklyCmd)
	rootCmd.AddCommand(pbpCmd)
	rootCmd.AddCommand(draftCmd)
	rootCmd.AddCommand(cacheCmd)
	rootCmd.AddCommand(historyCmd)
	rootCmd.AddCommand(mcpCmd)
	rootCmd.AddCommand(versionCmd)

	// Add the cache subcommands to the parent cache command
	cacheCmd.AddCommand(cacheListCmd)
	cacheCmd.AddCommand(cacheStatusCmd)
	cacheCmd.AddCommand(cacheClearCmd)
	cacheCmd.AddCommand(cachePathCmd)
	cacheCmd.AddCommand(cacheInvalidateCmd)

	// Add the history subcommands to the parent history command
	historyCmd.AddCommand(historyStatusCmd)
	historyCmd.AddCommand(historyListCmd)
	historyCmd.AddCommand(historyClearCmd)
	historyCmd.AddCommand(historyExportCmd)
	historyCmd.AddCommand(historyMigrateCmd)

	// Bind all persistent flags of rootCmd to Viper
	rootCmd.PersistentFlags().String("cache-dir", contract.DefaultCacheDir, "Directory holding cached dataset files")
	rootCmd.PersistentFlags().Int("max-age-days", contract.DefaultMaxAgeDays, "Days before a cached dataset is considered stale")
	rootCmd.PersistentFlags().String("base-url", contract.DefaultBaseURL, "Base URL of the nflverse release mirror")
	rootCmd.PersistentFlags().String("timeout", contract.DefaultTimeout.String(), "Timeout for each download (Go duration)")
	rootCmd.PersistentFlags().Int("workers", contract.DefaultWorkers, "Number of concurrent downloads")
	rootCmd.PersistentFlags().String("history-backend", "", "Fetch history backend: sqlite or mysql or postgresql or none (empty disables it)")
	rootCmd.PersistentFlags().String("history-db-connect", "", "Database connection string for mysql/postgresql (e.g., user:pass@tcp(host:port)/dbname?parseTime=true)")
	rootCmd.PersistentFlags().String("output", string(schema.TextOut), "Output format: text or json or csv")
	rootCmd.PersistentFlags().String("output-file", "", "Optional path to write output to")
	rootCmd.PersistentFlags().Int("width", 0, "Terminal width override (0 = auto-detect)")
	rootCmd.PersistentFlags().String("color", "yes", "Enable colored labels in output (yes/no/true/false/1/0)")
	rootCmd.PersistentFlags().String("log-level", contract.DefaultLogLevel, "Log level: debug or info or warn or error")
	rootCmd.PersistentFlags().String("config", "", "Path to config file")
	if err := viper.BindPFlags(rootCmd.PersistentFlags()); err != nil {
		contract.LogFatal("Error binding root flags", err)
	}

	// Dataset command flags are bound to Viper in configSetup for the running command
	for _, c := range []*cobra.Command{weeklyCmd, pbpCmd, draftCmd} {
		c.Flags().StringP("seasons", "s", "", "Seasons to load, e.g. '2018,2020-2022'")
		c.Flags().Bool("force-refresh", false, "Download even when a fresh cache entry exists")
		c.Flags().Int("preview", contract.DefaultPreview, "Rows to show under the text summary (0 = none)")
	}

	cacheInvalidateCmd.Flags().StringP("seasons", "s", "", "Seasons of the request to invalidate")
	cacheClearCmd.Flags().BoolP("yes", "y", false, "Skip the confirmation prompt")

	historyListCmd.Flags().Int("limit", 20, "Number of records to show (0 = all)")
	historyMigrateCmd.Flags().Int("target-version", -1, "Target migration version (-1 means latest, 0 means rollback to initial state)")
}
