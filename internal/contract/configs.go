package contract

import (
	"fmt"
	"runtime"
	"strings"
	"time"

	"github.com/huangsam/gridcache/schema"
	"github.com/rs/zerolog"
)

// Default values for configuration.
const (
	DefaultCacheDir   = "nfl_data_cache"
	DefaultMaxAgeDays = 7
	DefaultBaseURL    = "https://github.com/nflverse/nflverse-data/releases/download"
	DefaultTimeout    = 5 * time.Minute
	DefaultLogLevel   = "info"
	DefaultPreview    = 10
	MaxWorkers        = 64
)

// DefaultWorkers is the default number of concurrent downloads to use.
var DefaultWorkers = min(runtime.GOMAXPROCS(0), MaxWorkers)

// DateTimeFormat is the default date time representation.
var DateTimeFormat = time.RFC3339

// Config holds the runtime configuration for gridcache.
// This struct remains the "final, validated" config.
type Config struct {
	CacheDir     string
	MaxAgeDays   int
	MaxAge       time.Duration
	ForceRefresh bool
	Seasons      []int

	BaseURL string
	Timeout time.Duration
	Workers int

	HistoryBackend   schema.DatabaseBackend
	HistoryDBConnect string // Please use env var as this is plaintext

	Output      schema.OutputMode
	OutputFile  string
	Width       int // Terminal width override for tables; 0 means detect
	PreviewRows int // Dataset rows shown under a text summary
	LogLevel    zerolog.Level

	AssumeYes bool // Skip the confirmation prompt on destructive commands
	UseColors bool // Enable colored labels in table output
}

// ConfigRawInput holds the raw inputs from all sources (flags, env, config file).
// Viper unmarshals into this struct.
type ConfigRawInput struct {
	// --- Fields from rootCmd.PersistentFlags() ---
	CacheDir         string `mapstructure:"cache-dir"`
	MaxAgeDays       int    `mapstructure:"max-age-days"`
	BaseURL          string `mapstructure:"base-url"`
	Timeout          string `mapstructure:"timeout"`
	Workers          int    `mapstructure:"workers"`
	HistoryBackend   string `mapstructure:"history-backend"`
	HistoryDBConnect string `mapstructure:"history-db-connect"`
	Output           string `mapstructure:"output"`
	OutputFile       string `mapstructure:"output-file"`
	Color            string `mapstructure:"color"`
	Width            int    `mapstructure:"width"`
	LogLevel         string `mapstructure:"log-level"`

	// --- Fields from the dataset commands ---
	Seasons      string `mapstructure:"seasons"`
	ForceRefresh bool   `mapstructure:"force-refresh"`
	Preview      int    `mapstructure:"preview"`

	// --- Fields from cacheClearCmd.Flags() ---
	Yes bool `mapstructure:"yes"`
}

// Clone returns a deep copy of the Config struct.
func (c *Config) Clone() *Config {
	clone := *c
	if c.Seasons != nil {
		clone.Seasons = make([]int, len(c.Seasons))
		copy(clone.Seasons, c.Seasons)
	}
	return &clone
}

// ProcessAndValidate performs all parsing and validation on the raw inputs
// and updates the final Config struct.
func ProcessAndValidate(cfg *Config, input *ConfigRawInput) error {
	if err := validateSimpleInputs(cfg, input); err != nil {
		return err
	}
	if err := processCachePolicy(cfg, input); err != nil {
		return err
	}
	if err := processRemote(cfg, input); err != nil {
		return err
	}
	if err := validateBackendConfigs(cfg, input); err != nil {
		return err
	}
	return nil
}

// ValidateDatabaseConnectionString validates the format of database connection strings
// for MySQL and PostgreSQL backends.
func ValidateDatabaseConnectionString(backend schema.DatabaseBackend, connStr string) error {
	switch backend {
	case schema.SQLiteBackend, schema.NoneBackend:
		return nil
	case schema.MySQLBackend:
		if connStr == "" {
			return fmt.Errorf("history-db-connect is required when using %s backend", backend)
		}
		if !strings.Contains(connStr, "@tcp(") {
			return fmt.Errorf("MySQL connection string must contain '@tcp(' for host:port specification")
		}
		if !strings.Contains(connStr, "/") {
			return fmt.Errorf("MySQL connection string must contain '/' followed by database name")
		}
	case schema.PostgreSQLBackend:
		if connStr == "" {
			return fmt.Errorf("history-db-connect is required when using %s backend", backend)
		}
		if !strings.Contains(connStr, "host=") {
			return fmt.Errorf("PostgreSQL connection string must contain 'host=' parameter")
		}
		if !strings.Contains(connStr, "dbname=") {
			return fmt.Errorf("PostgreSQL connection string must contain 'dbname=' parameter")
		}
	}
	return nil
}

// validateBackendConfigs validates the fetch history backend configuration.
// An empty backend leaves history disabled.
func validateBackendConfigs(cfg *Config, input *ConfigRawInput) error {
	cfg.HistoryBackend = schema.DatabaseBackend(strings.ToLower(strings.TrimSpace(input.HistoryBackend)))
	if cfg.HistoryBackend == "" {
		return nil
	}
	if _, ok := schema.ValidDatabaseBackends[cfg.HistoryBackend]; !ok {
		return fmt.Errorf("invalid history backend '%s'. must be sqlite, mysql, postgresql, none", input.HistoryBackend)
	}
	cfg.HistoryDBConnect = input.HistoryDBConnect
	return ValidateDatabaseConnectionString(cfg.HistoryBackend, cfg.HistoryDBConnect)
}

// validateSimpleInputs processes and validates the presentation fields.
func validateSimpleInputs(cfg *Config, input *ConfigRawInput) error {
	cfg.OutputFile = input.OutputFile
	cfg.AssumeYes = input.Yes

	colors, err := ParseBoolString(input.Color)
	if err != nil {
		return fmt.Errorf("invalid --color value: %w", err)
	}
	cfg.UseColors = colors

	if input.Width < 0 {
		return fmt.Errorf("width cannot be negative (received %d)", input.Width)
	}
	cfg.Width = input.Width

	if input.Preview < 0 {
		return fmt.Errorf("preview cannot be negative (received %d)", input.Preview)
	}
	cfg.PreviewRows = input.Preview

	cfg.Output = schema.OutputMode(strings.ToLower(input.Output))
	if _, ok := schema.ValidOutputModes[cfg.Output]; !ok {
		return fmt.Errorf("invalid output format '%s'. must be text, json, csv", input.Output)
	}

	level := input.LogLevel
	if level == "" {
		level = DefaultLogLevel
	}
	lvl, err := zerolog.ParseLevel(strings.ToLower(level))
	if err != nil {
		return fmt.Errorf("invalid log level '%s': %w", input.LogLevel, err)
	}
	cfg.LogLevel = lvl

	return nil
}

// processCachePolicy handles the cache location, expiry window and requested seasons.
func processCachePolicy(cfg *Config, input *ConfigRawInput) error {
	cfg.CacheDir = strings.TrimSpace(input.CacheDir)
	if cfg.CacheDir == "" {
		cfg.CacheDir = DefaultCacheDir
	}

	if input.MaxAgeDays <= 0 {
		return fmt.Errorf("max-age-days must be greater than 0 (received %d)", input.MaxAgeDays)
	}
	cfg.MaxAgeDays = input.MaxAgeDays
	cfg.MaxAge = time.Duration(input.MaxAgeDays) * 24 * time.Hour
	cfg.ForceRefresh = input.ForceRefresh

	seasons, err := ParseSeasons(input.Seasons)
	if err != nil {
		return err
	}
	cfg.Seasons = seasons

	return nil
}

// processRemote handles the download source, timeout and concurrency.
func processRemote(cfg *Config, input *ConfigRawInput) error {
	cfg.BaseURL = strings.TrimRight(strings.TrimSpace(input.BaseURL), "/")
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}
	if !strings.HasPrefix(cfg.BaseURL, "http://") && !strings.HasPrefix(cfg.BaseURL, "https://") {
		return fmt.Errorf("base-url must start with http:// or https:// (received %q)", input.BaseURL)
	}

	cfg.Timeout = DefaultTimeout
	if input.Timeout != "" {
		timeout, err := time.ParseDuration(input.Timeout)
		if err != nil {
			return fmt.Errorf("invalid timeout '%s': %w", input.Timeout, err)
		}
		if timeout <= 0 {
			return fmt.Errorf("timeout must be positive (received %s)", input.Timeout)
		}
		cfg.Timeout = timeout
	}

	if input.Workers <= 0 || input.Workers > MaxWorkers {
		return fmt.Errorf("workers must be greater than 0 and cannot exceed %d (received %d)", MaxWorkers, input.Workers)
	}
	cfg.Workers = input.Workers

	return nil
}
