package cli

import (
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/inkwell/internal/adapters/driving/httpapi"
	"github.com/custodia-labs/inkwell/internal/adapters/driving/mcp"
	"github.com/custodia-labs/inkwell/internal/core/domain"
	"github.com/custodia-labs/inkwell/internal/logger"
)

// DefaultServeAddr is the default listen address for serve.
const DefaultServeAddr = "127.0.0.1:7410"

var (
	serveAddr    string
	serveProject string
	serveChapter string
	serveNoMCP   bool
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve real-time analysis over HTTP",
	Long: `Starts the analysis coordinator and an HTTP API for editor integrations.

Endpoints:
  POST /api/content                  submit changed text (debounced)
  POST /api/analyze                  analyze text immediately
  GET  /api/state                    current analysis state
  POST /api/suggestions/{id}/accept  accept a suggestion
  POST /api/suggestions/{id}/dismiss dismiss a suggestion
  GET  /metrics                      Prometheus metrics
  /mcp                               MCP streamable HTTP transport`,
	Args: cobra.NoArgs,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().StringVarP(&serveAddr, "addr", "a", DefaultServeAddr, "listen address")
	serveCmd.Flags().StringVar(&serveProject, "project", "", "project recorded with history")
	serveCmd.Flags().StringVar(&serveChapter, "chapter", "", "chapter recorded with history")
	serveCmd.Flags().BoolVar(&serveNoMCP, "no-mcp", false, "do not mount the MCP transport")
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, _ []string) error {
	if coordinator == nil {
		return errNoCoordinator
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	logger.SetTimestamps(true)
	defer logger.SetTimestamps(false)

	cfg := httpapi.Config{
		Coordinator: coordinator,
		Normalisers: normaliserRegistry,
		Metrics:     metricsHandler,
	}
	if !serveNoMCP {
		handler, err := mcpHandler()
		if err != nil {
			return err
		}
		cfg.MCP = handler
	}

	server, err := httpapi.NewServer(cfg)
	if err != nil {
		return err
	}

	loadGoals(cmd)
	coordinator.SetSession(domain.Session{ProjectID: serveProject, ChapterID: serveChapter})
	if err := coordinator.Start(ctx); err != nil {
		return fmt.Errorf("starting analysis: %w", err)
	}
	defer coordinator.Stop()

	cmd.Printf("Inkwell listening on http://%s\n", serveAddr)
	return server.ListenAndServe(ctx, serveAddr)
}

func mcpHandler() (http.Handler, error) {
	server, err := mcp.NewServer(mcpPorts())
	if err != nil {
		return nil, err
	}
	return server.Handler(), nil
}
