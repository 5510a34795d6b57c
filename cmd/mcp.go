package cmd

import (
	"github.com/huangsam/gridcache/internal/mcp"
	"github.com/spf13/cobra"
)

// mcpCmd represents the mcp command.
var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Start the gridcache MCP server",
	Long:  `Launch an MCP server on stdio that lets AI agents list, fetch and clear cached NFL datasets via standard tools.`,
	// Notices and logs go to stderr, so stdout stays free for the protocol
	PreRunE: sharedSetupWrapper,
	RunE: func(_ *cobra.Command, _ []string) error {
		return mcp.StartMCPServer(rootCtx, cfg, cacheManager, version)
	},
}
