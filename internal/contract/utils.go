package contract

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"slices"
	"strconv"
	"strings"

	"github.com/fatih/color"
	"golang.org/x/term"
)

// Freshness label constants.
const (
	FreshValue = "Fresh" // Fresh value
	StaleValue = "Stale" // Stale value
)

// Color variables for console output.
var (
	FreshColor   = color.New(color.FgGreen)              // FreshColor marks entries that can be served.
	StaleColor   = color.New(color.FgYellow, color.Bold) // StaleColor marks entries due for a refetch.
	HeaderColor  = color.New(color.FgCyan, color.Bold)
	WarningColor = color.New(color.FgRed, color.Bold)
)

// GetPlainLabel returns a plain text label for an entry's freshness.
func GetPlainLabel(fresh bool) string {
	if fresh {
		return FreshValue
	}
	return StaleValue
}

// GetColorLabel returns a colored text label for console output (table).
func GetColorLabel(fresh bool) string {
	text := GetPlainLabel(fresh)
	if fresh {
		return FreshColor.Sprint(text)
	}
	return StaleColor.Sprint(text)
}

// SelectOutputFile returns the appropriate file handle for output, based on the provided
// file path. It returns os.Stdout for an empty path.
func SelectOutputFile(filePath string) (*os.File, error) {
	if filePath == "" {
		return os.Stdout, nil
	}
	return os.Create(filePath)
}

// IsTerminalWriter reports whether w is a file attached to a terminal.
func IsTerminalWriter(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return term.IsTerminal(int(f.Fd()))
}

// IsTerminalReader reports whether r is a file attached to a terminal.
func IsTerminalReader(r io.Reader) bool {
	f, ok := r.(*os.File)
	if !ok {
		return false
	}
	return term.IsTerminal(int(f.Fd()))
}

// LogFatal logs an error and exits the program.
func LogFatal(msg string, err error) {
	Logger.Error().Err(err).Msg(msg)
	os.Exit(1)
}

// LogWarn logs a warning message to stderr.
func LogWarn(msg string, err error) {
	Logger.Warn().Err(err).Msg(msg)
}

// GetHistoryDBFilePath returns the path to the SQLite DB file for fetch history.
func GetHistoryDBFilePath() string {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return ".gridcache_history.db"
	}
	return filepath.Join(homeDir, ".gridcache_history.db")
}

// ParseBoolString parses a string value into a boolean.
// Accepts "yes", "no", "true", "false", "1", "0" (case-insensitive).
// Returns an error for invalid values.
func ParseBoolString(s string) (bool, error) {
	switch strings.ToLower(s) {
	case "yes", "true", "1":
		return true, nil
	case "no", "false", "0":
		return false, nil
	default:
		return false, fmt.Errorf("invalid boolean string: %s (expected yes/no/true/false/1/0)", s)
	}
}

// maxSeasonSpan bounds how many seasons a single range may expand to.
const maxSeasonSpan = 200

// ParseSeasons parses a list like "2018,2020-2022" into sorted, unique seasons.
// An empty string yields an empty slice.
func ParseSeasons(s string) ([]int, error) {
	var seasons []int
	for part := range strings.SplitSeq(s, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}

		lo, hi, isRange := strings.Cut(part, "-")
		start, err := strconv.Atoi(strings.TrimSpace(lo))
		if err != nil {
			return nil, fmt.Errorf("invalid season '%s': %w", part, err)
		}
		end := start
		if isRange {
			end, err = strconv.Atoi(strings.TrimSpace(hi))
			if err != nil {
				return nil, fmt.Errorf("invalid season range '%s': %w", part, err)
			}
		}
		if end < start {
			return nil, fmt.Errorf("invalid season range '%s': end is before start", part)
		}
		if end-start >= maxSeasonSpan {
			return nil, fmt.Errorf("season range '%s' is too wide", part)
		}
		for i := 0; i <= end-start; i++ {
			seasons = append(seasons, start+i)
		}
	}
	slices.Sort(seasons)
	return slices.Compact(seasons), nil
}

// FormatSeasons renders seasons compactly, e.g. "2018, 2020-2022".
func FormatSeasons(seasons []int) string {
	sorted := slices.Clone(seasons)
	slices.Sort(sorted)
	sorted = slices.Compact(sorted)

	var parts []string
	for i := 0; i < len(sorted); {
		j := i
		for j+1 < len(sorted) && sorted[j+1] == sorted[j]+1 {
			j++
		}
		if i == j {
			parts = append(parts, strconv.Itoa(sorted[i]))
		} else {
			parts = append(parts, fmt.Sprintf("%d-%d", sorted[i], sorted[j]))
		}
		i = j + 1
	}
	return strings.Join(parts, ", ")
}

// TruncateText shortens s to maxWidth runes, marking the cut with "...".
func TruncateText(s string, maxWidth int) string {
	runes := []rune(s)
	if len(runes) > maxWidth && maxWidth > 3 {
		return string(runes[:maxWidth-3]) + "..."
	}
	return s
}
