package outwriter

import (
	"os"

	"github.com/huangsam/gridcache/internal/contract"
	"golang.org/x/term"
)

// Bounds for a stretchable table column.
const (
	minColumnWidth = 15
	maxColumnWidth = 70
)

// terminalWidth returns the configured width override, the detected terminal
// width, or a conservative default.
func terminalWidth(cfg *contract.Config) int {
	if cfg.Width > 0 {
		return cfg.Width
	}
	detected, _, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil || detected <= 0 {
		return 80 // Conservative default for narrow terminals and CI
	}
	return detected
}

// getMaxColumnWidth returns how wide the one stretchable column of a table may be
// once fixedWidth characters are reserved for the other columns and borders.
func getMaxColumnWidth(cfg *contract.Config, fixedWidth int) int {
	available := terminalWidth(cfg) - fixedWidth
	if available < minColumnWidth {
		return minColumnWidth
	}
	if available > maxColumnWidth {
		return maxColumnWidth
	}
	return available
}
