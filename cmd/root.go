package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/fatih/color"
	"github.com/huangsam/gridcache/internal/contract"
	"github.com/huangsam/gridcache/internal/iocache"
	"github.com/huangsam/gridcache/internal/nflverse"
	"github.com/huangsam/gridcache/internal/outwriter"
	"github.com/huangsam/gridcache/internal/prompt"
	"github.com/huangsam/gridcache/schema"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// All linker flags will be set by goreleaser infra at build time.
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

// rootCtx is the root context for all operations.
var rootCtx = context.Background()

// cfg will hold the validated, final configuration.
var cfg = &contract.Config{}

// input holds the raw, unvalidated configuration from all sources (file, env, flags).
// Viper will unmarshal into this struct.
var input = &contract.ConfigRawInput{}

// cacheManager is the dataset cache facade shared by the commands.
var cacheManager *iocache.Manager

// historyStore records fetches when a history backend is configured; nil otherwise.
var historyStore contract.HistoryStore

// cacheRootExisted reports whether the cache directory was present before setup created it.
var cacheRootExisted bool

// writer renders command results in the configured output format.
var writer = outwriter.NewOutWriter()

// rootCmd is the command-line entrypoint for all other commands.
var rootCmd = &cobra.Command{
	Use:                "gridcache",
	Short:              "Fetch and cache NFL datasets from nflverse.",
	Long:               `gridcache downloads weekly stats, play-by-play and draft data once and serves it from a local cache until it goes stale.`,
	Version:            version,
	SilenceErrors:      true,
	SilenceUsage:       true,
	DisableSuggestions: true,
	Run: func(cmd *cobra.Command, _ []string) {
		_ = cmd.Help()
	},
}

// initConfig reads in config file and ENV variables if set.
func initConfig() {
	// Check if a specific config file is provided
	if configFile := viper.GetString("config"); configFile != "" {
		viper.SetConfigFile(configFile)
	} else {
		// Set config file name and paths
		viper.SetConfigName(".gridcache") // Name of config file (without extension)
		viper.SetConfigType("yaml")       // We'll use YAML format
		viper.AddConfigPath(".")          // Look in the current directory
		viper.AddConfigPath("$HOME")      // Look in the home directory
	}

	// Set environment variable prefix
	viper.SetEnvPrefix("GRIDCACHE")
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	viper.AutomaticEnv() // Read in environment variables that match

	// Set defaults in Viper
	viper.SetDefault("cache-dir", contract.DefaultCacheDir)
	viper.SetDefault("max-age-days", contract.DefaultMaxAgeDays)
	viper.SetDefault("base-url", contract.DefaultBaseURL)
	viper.SetDefault("timeout", contract.DefaultTimeout.String())
	viper.SetDefault("workers", contract.DefaultWorkers)
	viper.SetDefault("history-backend", "")
	viper.SetDefault("history-db-connect", "")
	viper.SetDefault("output", schema.TextOut)
	viper.SetDefault("preview", contract.DefaultPreview)
	viper.SetDefault("color", "yes")
	viper.SetDefault("log-level", contract.DefaultLogLevel)
}

// configSetup unmarshals config and runs validation.
func configSetup(cmd *cobra.Command) error {
	// 1. Bind the local flags of the running command. Several commands share
	// flag names, so binding them all up front would let the last one win.
	if err := viper.BindPFlags(cmd.Flags()); err != nil {
		return fmt.Errorf("failed to bind flags: %w", err)
	}

	// 2. Read config file. This merges defaults, file, env, and flags.
	if err := loadConfigFile(); err != nil {
		return err
	}

	// 3. Unmarshal all resolved values from Viper into our raw input struct.
	if err := viper.Unmarshal(input); err != nil {
		return fmt.Errorf("unable to unmarshal config: %w", err)
	}

	// 4. Run all validation and complex parsing.
	if err := contract.ProcessAndValidate(cfg, input); err != nil {
		return err
	}

	contract.InitLogger(cfg.LogLevel.String(), os.Stderr)
	color.NoColor = !cfg.UseColors
	return nil
}

// historySetup opens the configured fetch history store.
func historySetup() error {
	store, err := iocache.OpenHistory(cfg.HistoryBackend, cfg.HistoryDBConnect)
	if err != nil {
		return fmt.Errorf("failed to initialize fetch history: %w", err)
	}
	historyStore = store
	return nil
}

// sharedSetup prepares everything the dataset and cache commands need:
// config, fetch history, the cache store and the remote fetcher.
func sharedSetup(_ context.Context, cmd *cobra.Command, _ []string) error {
	if err := configSetup(cmd); err != nil {
		return err
	}
	if err := historySetup(); err != nil {
		return err
	}

	cacheRootExisted = iocache.RootExists(cfg.CacheDir)
	store, err := iocache.NewFileStore(cfg.CacheDir)
	if err != nil {
		return fmt.Errorf("failed to initialize cache: %w", err)
	}

	cacheManager = iocache.NewManager(store, nflverse.NewFromConfig(cfg),
		iocache.WithMaxAge(cfg.MaxAge),
		iocache.WithNotices(os.Stderr),
		iocache.WithHistory(historyStore),
		iocache.WithPrompter(prompt.New(os.Stdin, os.Stderr)),
	)
	return nil
}

// sharedSetupWrapper wraps sharedSetup to provide context for Cobra's PreRunE.
func sharedSetupWrapper(cmd *cobra.Command, args []string) error {
	return sharedSetup(rootCtx, cmd, args)
}

// loadConfigFile reads the config file when one is present.
func loadConfigFile() error {
	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			// Config file was found but another error was produced
			return fmt.Errorf("error reading config file: %w", err)
		}
		// Config file not found, which is fine; we'll use defaults/env/flags.
	}
	return nil
}

// Execute runs the root command. An interrupt cancels in-flight downloads.
func Execute() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	rootCtx = ctx

	defer closeHistory()
	return rootCmd.ExecuteContext(ctx)
}

// closeHistory releases the fetch history connection if one was opened.
func closeHistory() {
	if historyStore == nil {
		return
	}
	if err := historyStore.Close(); err != nil {
		contract.LogWarn("Failed to close fetch history", err)
	}
	historyStore = nil
}
