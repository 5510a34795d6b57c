package cmd

import (
	"runtime"

	"github.com/huangsam/gridcache/internal/contract"
	"github.com/spf13/cobra"
)

// versionCmd shows build details and the default data source.
var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the gridcache build and data source.",
	Long: `Display the release, commit and build time of this binary together with the
Go runtime, platform and the default nflverse mirror it downloads from.

Include this output when reporting a bug.`,
	Run: func(cmd *cobra.Command, _ []string) {
		cmd.Printf("gridcache %s (%s, built %s)\n", version, commit, date)
		cmd.Printf("  Runtime:  %s %s/%s\n", runtime.Version(), runtime.GOOS, runtime.GOARCH)
		cmd.Printf("  Mirror:   %s\n", contract.DefaultBaseURL)
		cmd.Printf("  Cache:    %s (max age %d days)\n", contract.DefaultCacheDir, contract.DefaultMaxAgeDays)
	},
}
