package iocache

import (
	"errors"
	"fmt"
	"io"
	"slices"

	"github.com/huangsam/gridcache/internal/contract"
	"github.com/huangsam/gridcache/internal/parquet"
)

// ExecuteHistoryExport writes every fetch record in store to outputFile as Parquet.
// Records are written oldest first; progress lines go to out.
func ExecuteHistoryExport(store contract.HistoryStore, outputFile string, out io.Writer) error {
	if outputFile == "" {
		return errors.New("--output-file is required for export command")
	}
	if store == nil {
		return errors.New("fetch history is disabled; set --history-backend to enable it")
	}

	status, err := store.GetStatus()
	if err != nil {
		return fmt.Errorf("failed to get history status: %w", err)
	}
	if status.TotalFetches == 0 {
		return errors.New("no fetch history found to export")
	}

	_, _ = fmt.Fprintf(out, "Exporting data from %s backend...\n", status.Backend)
	_, _ = fmt.Fprintf(out, "Total fetch records: %d\n", status.TotalFetches)

	records, err := store.ListFetches(0)
	if err != nil {
		return fmt.Errorf("failed to retrieve fetch history: %w", err)
	}
	slices.Reverse(records)

	rows := parquet.ConvertFetchRecords(records)
	if err := parquet.WriteFetchHistoryParquet(rows, outputFile); err != nil {
		return fmt.Errorf("failed to write fetch history: %w", err)
	}
	_, _ = fmt.Fprintf(out, "Exported %d fetch records to: %s\n", len(rows), outputFile)
	return nil
}
