package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/inkwell/internal/adapters/driving/chapterfile"
	"github.com/custodia-labs/inkwell/internal/core/domain"
	"github.com/custodia-labs/inkwell/internal/logger"
)

var (
	analyzeKinds  []string
	analyzeFormat string
	analyzeJSON   bool
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze [file]",
	Short: "Analyze a chapter once",
	Long: `Analyzes a chapter file and prints a report.

Markdown, HTML and plain text are converted to prose first. Read from
standard input by passing "-" or no file.

Examples:
  inkwell analyze chapter-03.md
  inkwell analyze --kinds grammar,readability draft.txt
  cat scene.html | inkwell analyze --format text/html`,
	Args: cobra.MaximumNArgs(1),
	RunE: runAnalyze,
}

func init() {
	analyzeCmd.Flags().StringSliceVarP(&analyzeKinds, "kinds", "k", nil,
		"analyses to run: style, grammar, goals, readability (default all)")
	analyzeCmd.Flags().StringVar(&analyzeFormat, "format", "", "MIME type of the input (default from extension)")
	analyzeCmd.Flags().BoolVar(&analyzeJSON, "json", false, "output results as JSON")
	rootCmd.AddCommand(analyzeCmd)
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	if coordinator == nil {
		return errNoCoordinator
	}

	kinds, err := parseKinds(analyzeKinds)
	if err != nil {
		return err
	}

	ctx := cmd.Context()
	path := "-"
	if len(args) == 1 {
		path = args[0]
	}

	var m *domain.Manuscript
	if path == "-" {
		data, err := io.ReadAll(cmd.InOrStdin())
		if err != nil {
			return fmt.Errorf("reading stdin: %w", err)
		}
		m, err = chapterfile.Normalise(ctx, normaliserRegistry, "stdin", analyzeFormat, data)
		if err != nil {
			return err
		}
	} else {
		m, err = chapterfile.Load(ctx, normaliserRegistry, path, analyzeFormat)
		if err != nil {
			return err
		}
	}

	loadGoals(cmd)

	results, err := coordinator.AnalyzeNow(ctx, m.Content, kinds...)
	if err != nil {
		return fmt.Errorf("analysis failed: %w", err)
	}

	if analyzeJSON {
		data, err := json.MarshalIndent(results, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal results: %w", err)
		}
		cmd.Println(string(data))
		return nil
	}

	title := m.Title
	if title == "" {
		title = path
	}
	cmd.Print(renderer(cmd).Results(title, results))
	return nil
}

// loadGoals hands the active goals to the coordinator.
func loadGoals(cmd *cobra.Command) {
	if goalService == nil {
		return
	}
	goals, err := goalService.Active(cmd.Context())
	if err != nil {
		logger.Warn("loading goals: %v", err)
		return
	}
	coordinator.SetGoals(goals)
}

func parseKinds(raw []string) ([]domain.AnalysisKind, error) {
	kinds := make([]domain.AnalysisKind, 0, len(raw))
	for _, r := range raw {
		k := domain.AnalysisKind(strings.ToLower(strings.TrimSpace(r)))
		if !k.IsValid() {
			return nil, fmt.Errorf("%w: unknown analysis kind %q", domain.ErrInvalidInput, r)
		}
		kinds = append(kinds, k)
	}
	return kinds, nil
}
