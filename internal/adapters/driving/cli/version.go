package cli

import (
	"github.com/spf13/cobra"

	"github.com/custodia-labs/footprint/internal/adapters/driving/mcp"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the footprint and MCP server versions",
	Long: `Print the footprint tool version followed by the version of the
MCP server it reports to clients.`,
	Args: cobra.NoArgs,
	Run: func(cmd *cobra.Command, _ []string) {
		cmd.Printf("footprint version %s (mcp server %s)\n", version, mcp.Version)
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
