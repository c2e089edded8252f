package cli

import (
	"github.com/spf13/cobra"

	"github.com/hopwise/hopwise/internal/adapters/driving/mcp"
	"github.com/hopwise/hopwise/internal/bootstrap"
	"github.com/hopwise/hopwise/internal/logger"
)

var mcpHTTPAddr string

var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Start the MCP server",
	Long: `Start the Model Context Protocol server so AI assistants can plan trips
with hopwise.

Tools: route_query, plan, compare_rides, find_restaurants.
Resources: hopwise://domains, hopwise://domains/{domain}, hopwise://stats.

By default the server speaks JSON-RPC over stdio. Use --http to serve the
streamable HTTP transport instead; Prometheus metrics are then exposed at
/metrics on the same address.

Examples:
  # Stdio mode (for desktop assistants)
  hopwise mcp

  # HTTP mode (for MCP Inspector, remote access)
  hopwise mcp --http :8080

Assistant configuration:
  {
    "mcpServers": {
      "hopwise": {
        "command": "/path/to/hopwise",
        "args": ["mcp"]
      }
    }
  }`,
	Args: cobra.NoArgs,
	RunE: runMCP,
}

func init() {
	mcpCmd.Flags().StringVar(&mcpHTTPAddr, "http", "", "serve HTTP on this address instead of stdio (e.g. :8080)")
	rootCmd.AddCommand(mcpCmd)
}

func runMCP(cmd *cobra.Command, _ []string) error {
	if err := ensureServices(cmd.Context(), bootstrap.Options{WatchPrompts: true, ValidateLLM: true}); err != nil {
		return err
	}

	stop := startBackground(cmd.Context())
	defer stop()

	ports := &mcp.Ports{
		Orchestrator: orchestrator,
		Router:       router,
		Stats:        statsService,
	}
	var opts []mcp.Option
	if metricsHandler != nil {
		opts = append(opts, mcp.WithMetricsHandler(metricsHandler))
	}

	server, err := mcp.NewServer(ports, opts...)
	if err != nil {
		return err
	}

	if mcpHTTPAddr != "" {
		cmd.PrintErrf("MCP server listening on http://%s\n", displayAddr(mcpHTTPAddr))
		return server.RunHTTP(cmd.Context(), mcpHTTPAddr)
	}
	logger.SetQuiet(true)
	return server.Run(cmd.Context())
}

func displayAddr(addr string) string {
	if len(addr) > 0 && addr[0] == ':' {
		return "localhost" + addr
	}
	return addr
}
