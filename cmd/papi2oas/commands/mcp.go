package commands

import (
	"github.com/spf13/cobra"

	"github.com/Isilon/isilon-sdk/internal/mcpserver"
)

func newMCPCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "mcp",
		Short: "Start an MCP server over stdio",
		Long: `Start a Model Context Protocol server exposing the compile and resolve tools
over stdio. Server defaults are read from PAPI2OAS_MCP_* environment variables.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return mcpserver.Run(cmd.Context())
		},
	}
}
