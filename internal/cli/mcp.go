package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/mvp-joe/codescope/internal/config"
	"github.com/mvp-joe/codescope/internal/mcpserver"
)

// mcpCmd represents the mcp command
var mcpCmd = &cobra.Command{
	Use:   "mcp [path]",
	Short: "Start the MCP server for on-demand context packing",
	Long: `Start the Model Context Protocol (MCP) server that lets LLM-powered
coding assistants pull bounded repository context on demand.

The MCP server:
- Exposes codescope_pack for budgeted context snapshots
- Exposes codescope_zoom for expanding compressed regions
- Communicates via stdio (standard MCP transport)

Example:
  codescope mcp`,
	Args: cobra.MaximumNArgs(1),
	RunE: runMCP,
}

func init() {
	rootCmd.AddCommand(mcpCmd)
}

func runMCP(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	rootDir := "."
	if len(args) == 1 {
		rootDir = args[0]
	}

	cfg, err := config.NewLoader(rootDir).Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	fmt.Fprintf(os.Stderr, "codescope MCP server\nRoot: %s\n\n", rootDir)

	server, err := mcpserver.NewServer(rootDir, cfg)
	if err != nil {
		return fmt.Errorf("failed to create MCP server: %w", err)
	}
	defer server.Close()

	if err := server.Serve(ctx); err != nil {
		return fmt.Errorf("MCP server error: %w", err)
	}
	return nil
}
