package parquet

import (
	"fmt"
	"os"
	"time"

	"github.com/huangsam/gridcache/schema"
	"github.com/parquet-go/parquet-go"
)

// FetchHistoryRow represents a single dataset request for export.
// This struct maps to the gridcache_fetch_history database table.
type FetchHistoryRow struct {
	// ID is the unique identifier for this request
	ID int64 `parquet:"id,snappy"`

	// Kind is the dataset kind requested
	Kind string `parquet:"kind,snappy"`

	// CacheKey is the cache key derived for the request
	CacheKey string `parquet:"cache_key,snappy"`

	FirstPeriod int32 `parquet:"first_period,snappy"`
	LastPeriod  int32 `parquet:"last_period,snappy"`

	// Outcome is one of cache_hit, fetched, fetch_failed
	Outcome string `parquet:"outcome,snappy"`

	RowCount int32 `parquet:"row_count,snappy"`

	// FetchedAt is when the request finished (stored as TIMESTAMP with nanosecond precision)
	FetchedAt time.Time `parquet:"fetched_at,snappy"`

	DurationMs int64 `parquet:"duration_ms,snappy"`

	// ErrorMessage is set for failed requests (nullable)
	ErrorMessage *string `parquet:"error_message,optional,snappy"`
}

// WriteFetchHistoryParquet writes a slice of FetchHistoryRow structs to a Parquet file.
func WriteFetchHistoryParquet(data []FetchHistoryRow, outputPath string) error {
	file, err := os.Create(outputPath)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	defer func() { _ = file.Close() }()

	// Schema is derived from the FetchHistoryRow struct tags
	writer := parquet.NewGenericWriter[FetchHistoryRow](file)
	if _, err := writer.Write(data); err != nil {
		_ = writer.Close()
		return fmt.Errorf("failed to write data to parquet file: %w", err)
	}
	if err := writer.Close(); err != nil {
		return fmt.Errorf("failed to finalize parquet file: %w", err)
	}

	return nil
}

// ConvertFetchRecords converts schema.FetchRecord to FetchHistoryRow for Parquet export.
func ConvertFetchRecords(records []schema.FetchRecord) []FetchHistoryRow {
	result := make([]FetchHistoryRow, len(records))
	for i, record := range records {
		result[i] = FetchHistoryRow{
			ID:           record.ID,
			Kind:         string(record.Kind),
			CacheKey:     record.CacheKey,
			FirstPeriod:  record.FirstPeriod,
			LastPeriod:   record.LastPeriod,
			Outcome:      string(record.Outcome),
			RowCount:     record.RowCount,
			FetchedAt:    record.FetchedAt,
			DurationMs:   record.DurationMs,
			ErrorMessage: record.ErrorMessage,
		}
	}
	return result
}
