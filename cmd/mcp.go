package cmd

import (
	"github.com/spf13/cobra"

	"github.com/fabgilson/scrumboard-throwaway-sub001/internal/mcp"
)

// mcpCmd represents the mcp command.
var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Start the burndown MCP server",
	Long: `Launch an MCP server on stdio that lets AI agents compute burndowns, burnups,
cumulative flows and task deltas, and describe chart points, via standard tools.`,
	PreRunE: sharedSetupWrapper,
	RunE: func(_ *cobra.Command, _ []string) error {
		return mcp.StartMCPServer(rootCtx, cfg, storeManager)
	},
}
