package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/wbrank/internal/adapters/driving/mcp"
	"github.com/custodia-labs/wbrank/internal/logger"
)

var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "MCP server commands",
	Long:  `Commands for the Model Context Protocol (MCP) server integration.`,
}

var mcpServeCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the MCP server",
	Long: `Start the Model Context Protocol server for AI assistant integration.

Tools:
  product_info - product card, prices and keywords
  start_rank   - start ranking a product (returns a session id)
  rank_status  - latest progress text and final report
  cancel_rank  - stop a running rank

By default, the server communicates over stdio using JSON-RPC.
Use --port to start an HTTP server instead.

The config file is watched while the server runs; edits apply to the
next started rank.

Examples:
  # Stdio mode (default)
  wbrank mcp serve

  # HTTP mode (for MCP Inspector, remote access)
  wbrank mcp serve --port 8080`,
	RunE: runMCPServe,
}

func init() {
	mcpServeCmd.Flags().IntP("port", "p", 0, "HTTP port (0 = use stdio)")
	mcpCmd.AddCommand(mcpServeCmd)
	rootCmd.AddCommand(mcpCmd)
}

func runMCPServe(cmd *cobra.Command, _ []string) error {
	port, err := cmd.Flags().GetInt("port")
	if err != nil {
		return fmt.Errorf("getting port flag: %w", err)
	}

	ports := &mcp.Ports{
		Jobs:     rankJobService,
		Sessions: sessionService,
		Product:  productService,
		Settings: settingsService,
	}

	server, err := mcp.NewServer(ports)
	if err != nil {
		return err
	}

	ctx := cmd.Context()
	if configWatcher != nil {
		go func() {
			err := configWatcher.Watch(ctx, func() {
				logger.Info("Configuration reloaded")
			})
			if err != nil && ctx.Err() == nil {
				logger.Warn("Config watcher stopped: %v", err)
			}
		}()
	}

	if port > 0 {
		addr := fmt.Sprintf(":%d", port)
		fmt.Fprintf(cmd.OutOrStdout(), "MCP server listening on http://localhost%s\n", addr)
		return server.RunHTTP(ctx, addr)
	}

	return server.Run(ctx)
}
