// Package cli provides the inkwell command-line interface.
package cli

import (
	"context"
	"errors"
	"net/http"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/custodia-labs/inkwell/internal/adapters/driving/mcp"
	"github.com/custodia-labs/inkwell/internal/adapters/driving/report"
	"github.com/custodia-labs/inkwell/internal/core/ports/driven"
	"github.com/custodia-labs/inkwell/internal/core/ports/driving"
	"github.com/custodia-labs/inkwell/internal/logger"
)

// annotationNoServices marks commands that run without the service container.
const annotationNoServices = "inkwell/no-services"

var errNoCoordinator = errors.New("analysis coordinator not configured")

var version = "dev"

var (
	verbose   bool
	logLevel  string
	ephemeral bool
	noColor   bool
)

// Services holds the collaborators the commands drive.
type Services struct {
	Coordinator driving.AnalysisCoordinator
	Goals       driving.GoalService
	History     driving.HistoryService
	Settings    driving.SettingsService
	Normalisers driven.NormaliserRegistry

	// Metrics serves the Prometheus exposition format. Optional.
	Metrics http.Handler
}

// Options are the global flags passed to a Bootstrap.
type Options struct {
	Ephemeral bool
}

// Bootstrap builds the service container once flags are parsed.
// The returned function releases its resources.
type Bootstrap func(opts Options) (*Services, func(), error)

var (
	coordinator        driving.AnalysisCoordinator
	goalService        driving.GoalService
	historyService     driving.HistoryService
	settingsService    driving.SettingsService
	normaliserRegistry driven.NormaliserRegistry
	metricsHandler     http.Handler

	bootstrap Bootstrap
	cleanup   func()
)

var rootCmd = &cobra.Command{
	Use:   "inkwell",
	Short: "Real-time prose analysis for fiction writers",
	Long: `Inkwell analyzes chapters as you write them: readability, style,
grammar and progress towards your writing goals.

Analyze a file once, watch it while you edit, or serve the analysis
over HTTP and MCP for editors and AI assistants.`,
	SilenceUsage:      true,
	PersistentPreRunE: setup,
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "warn", "minimum log level: debug, info, warn, error")
	rootCmd.PersistentFlags().BoolVar(&ephemeral, "ephemeral", false, "keep history and settings in memory only")
	rootCmd.PersistentFlags().BoolVar(&noColor, "no-color", false, "disable coloured output")
}

// SetVersion sets the version reported by the version command and to MCP clients.
func SetVersion(v string) {
	version = v
	mcp.Version = v
}

// SetBootstrap sets the function that builds services before a command runs.
func SetBootstrap(b Bootstrap) {
	bootstrap = b
}

// SetServices installs the collaborators used by the commands.
func SetServices(s *Services) {
	if s == nil {
		s = &Services{}
	}
	coordinator = s.Coordinator
	goalService = s.Goals
	historyService = s.History
	settingsService = s.Settings
	normaliserRegistry = s.Normalisers
	metricsHandler = s.Metrics
}

// Execute runs the root command and releases bootstrapped services.
func Execute(ctx context.Context) error {
	defer func() {
		if cleanup != nil {
			cleanup()
			cleanup = nil
		}
	}()
	return rootCmd.ExecuteContext(ctx)
}

func setup(cmd *cobra.Command, _ []string) error {
	level, err := logger.ParseLevel(logLevel)
	if err != nil {
		return err
	}
	if verbose {
		level = logger.LevelDebug
	}
	logger.SetLevel(level)
	logger.SetOutput(cmd.ErrOrStderr())

	if bootstrap == nil || cmd.Annotations[annotationNoServices] != "" {
		return nil
	}

	services, release, err := bootstrap(Options{Ephemeral: ephemeral})
	if err != nil {
		return err
	}
	SetServices(services)
	cleanup = release
	return nil
}

// renderer returns a report renderer, coloured only for terminals.
func renderer(cmd *cobra.Command) *report.Renderer {
	return report.NewRenderer(useColor(cmd))
}

func useColor(cmd *cobra.Command) bool {
	if noColor || os.Getenv("NO_COLOR") != "" {
		return false
	}
	f, ok := cmd.OutOrStdout().(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}
