// Package outwriter has output and writer logic.
package outwriter

import (
	"github.com/huangsam/gridcache/internal/contract"
	"github.com/huangsam/gridcache/schema"
)

// OutWriter provides a unified interface for all output operations.
// It encapsulates the various output formats and provides a clean API for the commands.
type OutWriter struct{}

// NewOutWriter creates a new instance of the output writer.
func NewOutWriter() *OutWriter {
	return &OutWriter{}
}

// WriteDataset prints a dataset request result using the configured output format.
func (ow *OutWriter) WriteDataset(result schema.DatasetResult, cfg *contract.Config) error {
	return WriteDatasetResult(result, cfg)
}

// WriteCacheList prints the cache listing using the configured output format.
func (ow *OutWriter) WriteCacheList(listing CacheListing, cfg *contract.Config) error {
	return WriteCacheEntries(listing, cfg)
}

// WriteCacheStatus prints the cache summary using the configured output format.
func (ow *OutWriter) WriteCacheStatus(status schema.CacheStatus, cfg *contract.Config) error {
	return WriteCacheStatus(status, cfg)
}

// WriteHistoryStatus prints the fetch history summary using the configured output format.
func (ow *OutWriter) WriteHistoryStatus(status schema.HistoryStatus, cfg *contract.Config) error {
	return WriteHistoryStatus(status, cfg)
}

// WriteHistory prints recent fetch records using the configured output format.
func (ow *OutWriter) WriteHistory(records []schema.FetchRecord, cfg *contract.Config) error {
	return WriteFetchRecords(records, cfg)
}
