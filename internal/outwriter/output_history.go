package outwriter

import (
	"encoding/csv"
	"fmt"
	"io"
	"slices"
	"strconv"

	"github.com/huangsam/gridcache/internal/contract"
	"github.com/huangsam/gridcache/schema"
	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"
)

// fetchRecordJSON is the exported shape of a history row.
type fetchRecordJSON struct {
	ID           int64               `json:"id"`
	Kind         schema.DatasetKind  `json:"kind"`
	CacheKey     string              `json:"cache_key"`
	FirstSeason  int32               `json:"first_season"`
	LastSeason   int32               `json:"last_season"`
	Outcome      schema.FetchOutcome `json:"outcome"`
	RowCount     int32               `json:"row_count"`
	FetchedAt    string              `json:"fetched_at"`
	DurationMs   int64               `json:"duration_ms"`
	ErrorMessage string              `json:"error_message,omitempty"`
}

// WriteHistoryStatus outputs the fetch history summary.
func WriteHistoryStatus(status schema.HistoryStatus, cfg *contract.Config) error {
	if cfg.Output == schema.JSONOut {
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeJSON(w, status)
		}, "Wrote JSON")
	}
	return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
		return printHistoryStatus(w, status)
	}, "Wrote status")
}

func printHistoryStatus(w io.Writer, status schema.HistoryStatus) error {
	connected := "no"
	if status.Connected {
		connected = "yes"
	}
	if _, err := fmt.Fprintf(w, "Backend: %s\nConnected: %s\nTotal Fetches: %d\nLast Fetch: %s\n",
		status.Backend, connected, status.TotalFetches, schema.FormatTimestamp(status.LastFetchAt)); err != nil {
		return err
	}

	outcomes := make([]string, 0, len(status.ByOutcome))
	for outcome := range status.ByOutcome {
		outcomes = append(outcomes, string(outcome))
	}
	slices.Sort(outcomes)
	for _, outcome := range outcomes {
		if _, err := fmt.Fprintf(w, "  %s: %d\n", outcome, status.ByOutcome[schema.FetchOutcome(outcome)]); err != nil {
			return err
		}
	}
	return nil
}

// WriteFetchRecords outputs history rows, newest first as given.
func WriteFetchRecords(records []schema.FetchRecord, cfg *contract.Config) error {
	switch cfg.Output {
	case schema.JSONOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeFetchRecordsJSON(w, records)
		}, "Wrote JSON")
	case schema.CSVOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeFetchRecordsCSV(w, records)
		}, "Wrote CSV")
	default:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeFetchRecordsTable(w, records, cfg)
		}, "Wrote table")
	}
}

func toFetchRecordJSON(r schema.FetchRecord) fetchRecordJSON {
	out := fetchRecordJSON{
		ID:          r.ID,
		Kind:        r.Kind,
		CacheKey:    r.CacheKey,
		FirstSeason: r.FirstPeriod,
		LastSeason:  r.LastPeriod,
		Outcome:     r.Outcome,
		RowCount:    r.RowCount,
		FetchedAt:   r.FetchedAt.UTC().Format(contract.DateTimeFormat),
		DurationMs:  r.DurationMs,
	}
	if r.ErrorMessage != nil {
		out.ErrorMessage = *r.ErrorMessage
	}
	return out
}

func writeFetchRecordsJSON(w io.Writer, records []schema.FetchRecord) error {
	out := make([]fetchRecordJSON, len(records))
	for i, r := range records {
		out[i] = toFetchRecordJSON(r)
	}
	return writeJSON(w, out)
}

func writeFetchRecordsCSV(w io.Writer, records []schema.FetchRecord) error {
	header := []string{"id", "kind", "cache_key", "first_season", "last_season", "outcome", "row_count", "fetched_at", "duration_ms", "error_message"}
	return writeCSVWithHeader(w, header, func(cw *csv.Writer) error {
		for _, r := range records {
			j := toFetchRecordJSON(r)
			rec := []string{
				strconv.FormatInt(j.ID, 10),
				string(j.Kind),
				j.CacheKey,
				strconv.Itoa(int(j.FirstSeason)),
				strconv.Itoa(int(j.LastSeason)),
				string(j.Outcome),
				strconv.Itoa(int(j.RowCount)),
				j.FetchedAt,
				strconv.FormatInt(j.DurationMs, 10),
				j.ErrorMessage,
			}
			if err := cw.Write(rec); err != nil {
				return err
			}
		}
		return nil
	})
}

func writeFetchRecordsTable(w io.Writer, records []schema.FetchRecord, cfg *contract.Config) error {
	if len(records) == 0 {
		_, err := fmt.Fprintln(w, "No fetch history recorded")
		return err
	}

	table := tablewriter.NewWriter(w)
	table.Header([]string{"ID", "Kind", "Key", "Outcome", "Rows", "Fetched", "Duration"})
	table.Configure(func(c *tablewriter.Config) {
		c.Row.Alignment.Global = tw.AlignRight
	})

	keyWidth := getMaxColumnWidth(cfg, 75)
	var data [][]string
	for _, r := range records {
		data = append(data, []string{
			strconv.FormatInt(r.ID, 10),
			string(r.Kind),
			contract.TruncateText(r.CacheKey, keyWidth),
			string(r.Outcome),
			strconv.Itoa(int(r.RowCount)),
			schema.FormatTimestamp(r.FetchedAt),
			fmt.Sprintf("%dms", r.DurationMs),
		})
	}
	if err := table.Bulk(data); err != nil {
		return err
	}
	return table.Render()
}
