package cli

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/custodia-labs/inkwell/internal/core/domain"
)

var errNoGoalService = errors.New("goal service not configured")

var goalsJSON bool

var goalsCmd = &cobra.Command{
	Use:   "goals",
	Short: "Manage writing goals",
	Long: `Writing goals are targets over tone, readability, length, style,
vocabulary and pacing. Active goals are evaluated on every analysis.`,
}

var goalsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List all goals",
	Args:  cobra.NoArgs,
	RunE:  runGoalsList,
}

var goalsAddCmd = &cobra.Command{
	Use:   "add",
	Short: "Add a goal",
	Long: `Adds a goal with one or more targets.

Examples:
  inkwell goals add --name "Pacy thriller" --max-sentence 14 --min-ease 70
  inkwell goals add --name "Chapter length" --words 4000
  inkwell goals add --name "Close third" --perspective third_person --voice active`,
	Args: cobra.NoArgs,
	RunE: runGoalsAdd,
}

var goalsRemoveCmd = &cobra.Command{
	Use:   "remove [id]",
	Short: "Remove a goal",
	Args:  cobra.ExactArgs(1),
	RunE:  runGoalsRemove,
}

var goalsActivateCmd = &cobra.Command{
	Use:   "activate [id]",
	Short: "Evaluate a goal during analysis",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return setGoalActive(cmd, args[0], true)
	},
}

var goalsDeactivateCmd = &cobra.Command{
	Use:   "deactivate [id]",
	Short: "Stop evaluating a goal",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return setGoalActive(cmd, args[0], false)
	},
}

func init() {
	goalsListCmd.Flags().BoolVar(&goalsJSON, "json", false, "output goals as JSON")

	f := goalsAddCmd.Flags()
	f.String("name", "", "goal name (required)")
	f.Bool("inactive", false, "add the goal without activating it")
	f.String("tone", "", "target primary tone")
	f.Int("tone-intensity", 0, "target tone intensity 0-100 (0 = any)")
	f.Float64("min-ease", 0, "minimum Flesch reading ease")
	f.Float64("max-ease", 0, "maximum Flesch reading ease")
	f.String("grade", "", "target grade level")
	f.Int("words", 0, "target word count")
	f.Int("min-words", 0, "minimum word count")
	f.Int("max-words", 0, "maximum word count")
	f.String("voice", "", "target voice: active, passive, mixed")
	f.String("perspective", "", "target perspective: first_person, second_person, third_person")
	f.Float64("min-diversity", 0, "minimum vocabulary diversity (0-1]")
	f.Float64("min-sentence", 0, "minimum average sentence length")
	f.Float64("max-sentence", 0, "maximum average sentence length")
	_ = goalsAddCmd.MarkFlagRequired("name")

	goalsCmd.AddCommand(goalsListCmd)
	goalsCmd.AddCommand(goalsAddCmd)
	goalsCmd.AddCommand(goalsRemoveCmd)
	goalsCmd.AddCommand(goalsActivateCmd)
	goalsCmd.AddCommand(goalsDeactivateCmd)
	rootCmd.AddCommand(goalsCmd)
}

func runGoalsList(cmd *cobra.Command, _ []string) error {
	if goalService == nil {
		return errNoGoalService
	}

	goals, err := goalService.List(cmd.Context())
	if err != nil {
		return fmt.Errorf("failed to list goals: %w", err)
	}

	if goalsJSON {
		data, err := json.MarshalIndent(goals, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal goals: %w", err)
		}
		cmd.Println(string(data))
		return nil
	}

	if len(goals) == 0 {
		cmd.Println("No goals defined. Add one with 'inkwell goals add'.")
		return nil
	}

	for _, g := range goals {
		state := "inactive"
		if g.Active {
			state = "active"
		}
		cmd.Printf("%s  %s (%s)\n", g.ID, g.Name, state)
		for _, t := range describeTargets(g) {
			cmd.Printf("    %s\n", t)
		}
	}
	return nil
}

func runGoalsAdd(cmd *cobra.Command, _ []string) error {
	if goalService == nil {
		return errNoGoalService
	}

	goal, err := goalFromFlags(cmd.Flags())
	if err != nil {
		return err
	}

	added, err := goalService.Add(cmd.Context(), goal)
	if err != nil {
		return fmt.Errorf("failed to add goal: %w", err)
	}

	cmd.Printf("Added goal %q (%s)\n", added.Name, added.ID)
	return nil
}

func runGoalsRemove(cmd *cobra.Command, args []string) error {
	if goalService == nil {
		return errNoGoalService
	}
	if err := goalService.Remove(cmd.Context(), args[0]); err != nil {
		return fmt.Errorf("failed to remove goal: %w", err)
	}
	cmd.Printf("Removed goal %s\n", args[0])
	return nil
}

func setGoalActive(cmd *cobra.Command, id string, active bool) error {
	if goalService == nil {
		return errNoGoalService
	}
	if err := goalService.SetActive(cmd.Context(), id, active); err != nil {
		return fmt.Errorf("failed to update goal: %w", err)
	}
	if active {
		cmd.Printf("Activated goal %s\n", id)
	} else {
		cmd.Printf("Deactivated goal %s\n", id)
	}
	return nil
}

// goalFromFlags builds a goal from the add flags. A target is set only
// when at least one of its flags was given.
func goalFromFlags(f *pflag.FlagSet) (domain.WritingGoal, error) {
	var goal domain.WritingGoal
	var err error

	str := func(name string) string {
		v, e := f.GetString(name)
		err = errors.Join(err, e)
		return v
	}
	num := func(name string) float64 {
		v, e := f.GetFloat64(name)
		err = errors.Join(err, e)
		return v
	}
	integer := func(name string) int {
		v, e := f.GetInt(name)
		err = errors.Join(err, e)
		return v
	}
	changed := func(names ...string) bool {
		for _, n := range names {
			if f.Changed(n) {
				return true
			}
		}
		return false
	}

	goal.Name = str("name")
	inactive, e := f.GetBool("inactive")
	err = errors.Join(err, e)
	goal.Active = !inactive

	if changed("tone", "tone-intensity") {
		goal.TargetTone = &domain.ToneTarget{Primary: str("tone"), Intensity: integer("tone-intensity")}
	}
	if changed("min-ease", "max-ease", "grade") {
		goal.TargetReadability = &domain.ReadabilityTarget{
			MinScore:   num("min-ease"),
			MaxScore:   num("max-ease"),
			GradeLevel: str("grade"),
		}
	}
	if changed("words", "min-words", "max-words") {
		goal.TargetLength = &domain.LengthTarget{
			TargetWords: integer("words"),
			MinWords:    integer("min-words"),
			MaxWords:    integer("max-words"),
		}
	}
	if changed("voice", "perspective") {
		goal.TargetStyle = &domain.StyleTarget{
			Voice:       domain.Voice(str("voice")),
			Perspective: domain.Perspective(str("perspective")),
		}
	}
	if changed("min-diversity") {
		goal.TargetVocabulary = &domain.VocabularyTarget{MinVocabularyDiversity: num("min-diversity")}
	}
	if changed("min-sentence", "max-sentence") {
		goal.TargetPacing = &domain.PacingTarget{
			MinSentenceLength: num("min-sentence"),
			MaxSentenceLength: num("max-sentence"),
		}
	}

	if err != nil {
		return domain.WritingGoal{}, fmt.Errorf("reading flags: %w", err)
	}
	return goal, nil
}

func describeTargets(g domain.WritingGoal) []string {
	var out []string
	if t := g.TargetTone; t != nil {
		if t.Intensity > 0 {
			out = append(out, fmt.Sprintf("tone: %s (intensity %d)", t.Primary, t.Intensity))
		} else {
			out = append(out, "tone: "+t.Primary)
		}
	}
	if t := g.TargetReadability; t != nil {
		maxScore := t.MaxScore
		if maxScore == 0 {
			maxScore = 100
		}
		s := fmt.Sprintf("reading ease: %.0f-%.0f", t.MinScore, maxScore)
		if t.GradeLevel != "" {
			s += ", grade " + t.GradeLevel
		}
		out = append(out, s)
	}
	if t := g.TargetLength; t != nil {
		switch {
		case t.TargetWords > 0:
			out = append(out, fmt.Sprintf("length: %d words", t.TargetWords))
		case t.MaxWords > 0:
			out = append(out, fmt.Sprintf("length: %d-%d words", t.MinWords, t.MaxWords))
		default:
			out = append(out, fmt.Sprintf("length: at least %d words", t.MinWords))
		}
	}
	if t := g.TargetStyle; t != nil {
		if t.Voice != "" {
			out = append(out, "voice: "+string(t.Voice))
		}
		if t.Perspective != "" {
			out = append(out, "perspective: "+string(t.Perspective))
		}
	}
	if t := g.TargetVocabulary; t != nil {
		out = append(out, fmt.Sprintf("vocabulary diversity: at least %.2f", t.MinVocabularyDiversity))
	}
	if t := g.TargetPacing; t != nil {
		out = append(out, fmt.Sprintf("sentence length: %.0f-%.0f words", t.MinSentenceLength, t.MaxSentenceLength))
	}
	return out
}
