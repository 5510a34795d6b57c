package schema

// Custom string types for type safety.
type (
	// DatasetKind represents a category of remote tabular data.
	DatasetKind string

	// OutputMode represents the format of the output.
	OutputMode string

	// DatabaseBackend represents the database backend for fetch history.
	DatabaseBackend string

	// FetchOutcome describes how a dataset request was satisfied.
	FetchOutcome string
)

// All dataset kinds supported.
const (
	WeeklyKind     DatasetKind = "weekly"
	PlayByPlayKind DatasetKind = "pbp"
	DraftKind      DatasetKind = "draft"
)

// All output modes supported.
const (
	TextOut OutputMode = "text" // default
	JSONOut OutputMode = "json"
	CSVOut  OutputMode = "csv"
)

// All history backends supported.
const (
	SQLiteBackend     DatabaseBackend = "sqlite"
	MySQLBackend      DatabaseBackend = "mysql"
	PostgreSQLBackend DatabaseBackend = "postgresql"
	NoneBackend       DatabaseBackend = "none"
)

// All fetch outcomes recorded in history.
const (
	CacheHitOutcome    FetchOutcome = "cache_hit"
	FetchedOutcome     FetchOutcome = "fetched"
	FetchFailedOutcome FetchOutcome = "fetch_failed"
)

// AllDatasetKinds returns a list of all supported dataset kinds.
var AllDatasetKinds = []DatasetKind{WeeklyKind, PlayByPlayKind, DraftKind}

// ValidDatasetKinds lists all valid dataset kinds.
var ValidDatasetKinds = map[DatasetKind]struct{}{
	WeeklyKind:     {},
	PlayByPlayKind: {},
	DraftKind:      {},
}

// ValidOutputModes lists all valid output modes.
var ValidOutputModes = map[OutputMode]struct{}{
	TextOut: {},
	JSONOut: {},
	CSVOut:  {},
}

// ValidDatabaseBackends lists all valid history backends.
var ValidDatabaseBackends = map[DatabaseBackend]struct{}{
	SQLiteBackend:     {},
	MySQLBackend:      {},
	PostgreSQLBackend: {},
	NoneBackend:       {},
}

// EarliestSeason returns the first season the remote source publishes for a kind.
func EarliestSeason(kind DatasetKind) int {
	switch kind {
	case DraftKind:
		return 1980
	default: // weekly and pbp
		return 1999
	}
}

// DisplayName returns a human-readable label for a dataset kind.
func (k DatasetKind) DisplayName() string {
	switch k {
	case WeeklyKind:
		return "weekly"
	case PlayByPlayKind:
		return "play-by-play"
	case DraftKind:
		return "draft"
	default:
		return string(k)
	}
}
