package cli

import (
	"net"
	"os"
	"os/signal"
	"strconv"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/inkwell/internal/adapters/driving/mcp"
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

By default, the server communicates over stdio using JSON-RPC and can be
used with Claude Desktop and other MCP-compatible AI assistants.

Tools:
  analyze_text   style, grammar, readability and goal analysis
  check_grammar  spelling, grammar and clarity issues
  readability    readability scores

Resources:
  inkwell://state               live analysis state
  inkwell://goals               the writer's goals
  inkwell://history/{chapter}   recent analyses of a chapter

Use --port to serve the streamable HTTP transport instead. It binds to
--host, which defaults to loopback. 'inkwell serve' mounts the same
endpoint at /mcp next to the REST API.

Examples:
  # Stdio, for desktop assistants
  inkwell mcp serve

  # HTTP, for the MCP Inspector
  inkwell mcp serve --port 8080`,
	Args: cobra.NoArgs,
	RunE: runMCPServe,
}

var (
	mcpPort int
	mcpHost string
)

func init() {
	mcpServeCmd.Flags().IntVarP(&mcpPort, "port", "p", 0, "HTTP port (0 = use stdio)")
	mcpServeCmd.Flags().StringVar(&mcpHost, "host", "127.0.0.1", "HTTP listen host")
	mcpCmd.AddCommand(mcpServeCmd)
	rootCmd.AddCommand(mcpCmd)
}

// mcpPorts exposes the installed services to the MCP server.
func mcpPorts() *mcp.Ports {
	return &mcp.Ports{
		Coordinator: coordinator,
		Goals:       goalService,
		History:     historyService,
	}
}

func runMCPServe(cmd *cobra.Command, _ []string) error {
	if coordinator == nil {
		return errNoCoordinator
	}
	server, err := mcp.NewServer(mcpPorts())
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	loadGoals(cmd)

	if mcpPort <= 0 {
		return server.Run(ctx)
	}

	addr := net.JoinHostPort(mcpHost, strconv.Itoa(mcpPort))
	cmd.PrintErrf("MCP server listening on http://%s\n", addr)
	return server.RunHTTP(ctx, addr)
}
