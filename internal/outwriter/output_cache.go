package outwriter

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"github.com/huangsam/gridcache/internal/contract"
	"github.com/huangsam/gridcache/schema"
	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"
)

// Messages for empty cache listings.
const (
	NoCacheDirMessage   = "No cache directory found"
	NoCachedFileMessage = "No cached files found"
)

// CacheListing is the input for rendering the cache contents.
type CacheListing struct {
	Root       string
	RootExists bool
	Entries    []schema.CacheEntryInfo
	IsFresh    func(schema.CacheEntryInfo) bool
}

// cacheEntryJSON is one listing row with its freshness attached.
type cacheEntryJSON struct {
	schema.CacheEntryInfo
	Fresh bool `json:"fresh"`
}

// WriteCacheEntries outputs the cache listing, dispatching based on the output format configured.
func WriteCacheEntries(listing CacheListing, cfg *contract.Config) error {
	switch cfg.Output {
	case schema.JSONOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeCacheEntriesJSON(w, listing)
		}, "Wrote JSON")
	case schema.CSVOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeCacheEntriesCSV(w, listing)
		}, "Wrote CSV")
	default:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeCacheEntriesTable(w, listing, cfg)
		}, "Wrote table")
	}
}

func (l CacheListing) fresh(e schema.CacheEntryInfo) bool {
	if l.IsFresh == nil {
		return false
	}
	return l.IsFresh(e)
}

func writeCacheEntriesJSON(w io.Writer, listing CacheListing) error {
	entries := make([]cacheEntryJSON, len(listing.Entries))
	for i, e := range listing.Entries {
		entries[i] = cacheEntryJSON{CacheEntryInfo: e, Fresh: listing.fresh(e)}
	}
	return writeJSON(w, struct {
		Root           string           `json:"root"`
		Exists         bool             `json:"exists"`
		TotalSizeBytes int64            `json:"total_size_bytes"`
		Entries        []cacheEntryJSON `json:"entries"`
	}{
		Root:           listing.Root,
		Exists:         listing.RootExists,
		TotalSizeBytes: schema.TotalSizeBytes(listing.Entries),
		Entries:        entries,
	})
}

func writeCacheEntriesCSV(w io.Writer, listing CacheListing) error {
	header := []string{"name", "size_bytes", "written_at", "label"}
	return writeCSVWithHeader(w, header, func(cw *csv.Writer) error {
		for _, e := range listing.Entries {
			rec := []string{
				e.Name,
				strconv.FormatInt(e.SizeBytes, 10),
				e.WrittenAt.Format(contract.DateTimeFormat),
				contract.GetPlainLabel(listing.fresh(e)),
			}
			if err := cw.Write(rec); err != nil {
				return err
			}
		}
		return nil
	})
}

func writeCacheEntriesTable(w io.Writer, listing CacheListing, cfg *contract.Config) error {
	if !listing.RootExists {
		_, err := fmt.Fprintln(w, NoCacheDirMessage)
		return err
	}
	if len(listing.Entries) == 0 {
		_, err := fmt.Fprintln(w, NoCachedFileMessage)
		return err
	}

	if _, err := fmt.Fprintf(w, "📁 Cache directory: %s\n", listing.Root); err != nil {
		return err
	}

	table := tablewriter.NewWriter(w)
	table.Header([]string{"File", "Size", "Modified", "Status"})
	table.Configure(func(c *tablewriter.Config) {
		c.Row.Alignment.Global = tw.AlignRight
	})

	// Size, Modified, Status and borders take roughly 50 columns
	nameWidth := getMaxColumnWidth(cfg, 50)
	var data [][]string
	for _, e := range listing.Entries {
		data = append(data, []string{
			contract.TruncateText(e.Name, nameWidth),
			schema.FormatSizeMB(e.SizeBytes),
			schema.FormatTimestamp(e.WrittenAt),
			freshnessLabel(listing.fresh(e), cfg),
		})
	}
	if err := table.Bulk(data); err != nil {
		return err
	}
	if err := table.Render(); err != nil {
		return err
	}

	_, err := fmt.Fprintf(w, "Total: %d files, %s\n", len(listing.Entries), schema.FormatSizeMB(schema.TotalSizeBytes(listing.Entries)))
	return err
}

// WriteCacheStatus outputs the cache summary.
func WriteCacheStatus(status schema.CacheStatus, cfg *contract.Config) error {
	if cfg.Output == schema.JSONOut {
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeJSON(w, status)
		}, "Wrote JSON")
	}
	return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
		return printCacheStatus(w, status)
	}, "Wrote status")
}

// printCacheStatus prints cache status information.
func printCacheStatus(w io.Writer, status schema.CacheStatus) error {
	lines := []string{
		fmt.Sprintf("Cache Root: %s", status.Root),
		fmt.Sprintf("Total Entries: %d", status.TotalEntries),
		fmt.Sprintf("Total Size: %s", schema.FormatSizeMB(status.TotalSizeBytes)),
	}
	if status.TotalEntries > 0 {
		lines = append(lines,
			fmt.Sprintf("Newest Entry: %s", schema.FormatTimestamp(status.NewestEntry)),
			fmt.Sprintf("Oldest Entry: %s", schema.FormatTimestamp(status.OldestEntry)),
		)
	}
	for _, line := range lines {
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	return nil
}
