package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/noteflow/internal/adapters/driving/mcp"
	"github.com/custodia-labs/noteflow/internal/logger"
)

var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Start the MCP server",
	Long: `Start the Model Context Protocol server for AI assistant integration.

By default, the server communicates over stdio using JSON-RPC and can be
used with any MCP-compatible assistant.

Use --http to serve over HTTP instead. The HTTP server also exposes
Prometheus metrics at /metrics.

Workflow definitions are reloaded when workflows.yaml changes.

Examples:
  # Stdio mode (default)
  noteflow mcp

  # HTTP mode
  noteflow mcp --http :8080`,
	Args: cobra.NoArgs,
	RunE: runMCP,
}

func init() {
	mcpCmd.Flags().String("http", "", "HTTP listen address (empty = use stdio)")
	rootCmd.AddCommand(mcpCmd)
}

func runMCP(cmd *cobra.Command, _ []string) error {
	addr, err := cmd.Flags().GetString("http")
	if err != nil {
		return fmt.Errorf("getting http flag: %w", err)
	}

	if services == nil {
		return errors.New("services not configured")
	}

	ports := &mcp.Ports{
		Processor:   services.Processor,
		Workflows:   services.Workflows,
		Categorizer: services.Categorizer,
		Records:     services.Records,
	}

	server, err := mcp.NewServer(ports)
	if err != nil {
		return err
	}

	if services.WatchWorkflows != nil {
		if err := services.WatchWorkflows(cmd.Context()); err != nil {
			logger.Warn("workflow hot reload disabled: %v", err)
		}
	}

	if addr != "" {
		fmt.Fprintf(cmd.ErrOrStderr(), "MCP server listening on http://%s\n", addr)
		return server.RunHTTP(cmd.Context(), addr)
	}

	return server.Run(cmd.Context())
}
