// Package schema has the models and enumerations shared by all parts of gridcache.
package schema

import (
	"fmt"
	"time"
)

// DisplayTimeFormat is how timestamps are rendered in listings.
const DisplayTimeFormat = "2006-01-02 15:04:05"

// bytesPerMB is the divisor used for human-readable sizes.
const bytesPerMB = 1024 * 1024

// FormatSizeMB renders a byte count in megabytes with one decimal, e.g. "1.5 MB".
func FormatSizeMB(sizeBytes int64) string {
	return fmt.Sprintf("%.1f MB", float64(sizeBytes)/bytesPerMB)
}

// FormatTimestamp renders a time in local time for listings.
// A zero time renders as "-".
func FormatTimestamp(t time.Time) string {
	if t.IsZero() {
		return "-"
	}
	return t.Local().Format(DisplayTimeFormat)
}

// TotalSizeBytes sums the sizes of all entries.
func TotalSizeBytes(entries []CacheEntryInfo) int64 {
	var total int64
	for _, e := range entries {
		total += e.SizeBytes
	}
	return total
}
