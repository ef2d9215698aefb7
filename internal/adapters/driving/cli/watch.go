package cli

import (
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/inkwell/internal/adapters/driving/chapterfile"
	"github.com/custodia-labs/inkwell/internal/core/domain"
	"github.com/custodia-labs/inkwell/internal/logger"
)

var (
	watchProject string
	watchChapter string
	watchFormat  string
	watchReport  bool
)

var watchCmd = &cobra.Command{
	Use:   "watch [file]",
	Short: "Analyze a chapter continuously while you edit it",
	Long: `Watches a chapter file and re-analyzes it every time it is saved.

Rapid saves are coalesced: analysis runs once the file has been quiet
for the configured debounce period. A summary line is printed after
every analysis. Analyses are recorded in the history under the project
and chapter given (the chapter defaults to the file name).

Press Ctrl+C to stop.`,
	Args: cobra.ExactArgs(1),
	RunE: runWatch,
}

func init() {
	watchCmd.Flags().StringVar(&watchProject, "project", "", "project recorded with history")
	watchCmd.Flags().StringVar(&watchChapter, "chapter", "", "chapter recorded with history (default file name)")
	watchCmd.Flags().StringVar(&watchFormat, "format", "", "MIME type of the file (default from extension)")
	watchCmd.Flags().BoolVar(&watchReport, "report", false, "print the full report after every analysis")
	rootCmd.AddCommand(watchCmd)
}

func runWatch(cmd *cobra.Command, args []string) error {
	if coordinator == nil {
		return errNoCoordinator
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	logger.SetTimestamps(true)
	defer logger.SetTimestamps(false)

	path := args[0]
	chapter := watchChapter
	if chapter == "" {
		chapter = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	}

	m, err := chapterfile.Load(ctx, normaliserRegistry, path, watchFormat)
	if err != nil {
		return err
	}

	watcher := chapterfile.NewWatcher(path, watchFormat, normaliserRegistry)
	updates, err := watcher.Watch(ctx)
	if err != nil {
		return err
	}

	loadGoals(cmd)
	coordinator.SetSession(domain.Session{ProjectID: watchProject, ChapterID: chapter})
	if err := coordinator.Start(ctx); err != nil {
		return fmt.Errorf("starting analysis: %w", err)
	}
	defer coordinator.Stop()

	states, unsubscribe := coordinator.Subscribe()
	defer unsubscribe()

	r := renderer(cmd)
	cmd.Printf("Watching %s (Ctrl+C to stop)\n", watcher.Path())
	coordinator.UpdateContent(m.Content)

	var last domain.AnalysisState
	for {
		select {
		case <-ctx.Done():
			cmd.Println()
			return nil
		case next, ok := <-updates:
			if !ok {
				return nil
			}
			coordinator.UpdateContent(next.Content)
		case state, ok := <-states:
			if !ok {
				return nil
			}
			if !analysisChanged(last, state) {
				continue
			}
			last = state
			if watchReport {
				cmd.Print(r.Results(m.Title, resultsFromState(state)))
				continue
			}
			cmd.Println(r.State(state))
		}
	}
}

// analysisChanged reports whether a state carries a new analysis or error.
func analysisChanged(prev, next domain.AnalysisState) bool {
	if next.LastAnalysis.IsZero() && next.LastError == "" {
		return false
	}
	return !next.LastAnalysis.Equal(prev.LastAnalysis) || next.LastError != prev.LastError
}

// resultsFromState rebuilds a report view of the live state.
func resultsFromState(s domain.AnalysisState) *domain.AnalysisResults {
	return &domain.AnalysisResults{
		Style:       s.Style,
		Readability: s.Readability,
		Grammar:     s.Grammar,
		Clarity:     s.Clarity,
		Goals:       s.Goals,
		Inline:      s.Suggestions,
		WordCount:   len(strings.Fields(s.LastContent)),
		Duration:    s.Duration,
	}
}
