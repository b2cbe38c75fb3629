// ABOUTME: MCP server subcommand
// ABOUTME: Starts the MCP server on stdio for desktop assistant integration
package cli

import (
	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/harperreed/kinetic/handlers"
)

func newMCPCommand(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "mcp",
		Short: "Start the MCP server on stdio",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			app.Logger.Info("starting kinetic MCP server", zap.Int("contacts", app.Store.Len()))

			server := handlers.NewServer(app.Store, app.Auditor, app.Version)
			return server.Run(cmd.Context(), &mcp.StdioTransport{})
		},
	}
}
