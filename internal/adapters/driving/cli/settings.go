package cli

import (
	"bufio"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/custodia-labs/inkwell/internal/core/domain"
)

// apiKeyEnv supplies the API key to 'settings llm --provider' without a prompt.
const apiKeyEnv = "INKWELL_API_KEY"

var errNoSettingsService = errors.New("settings service not configured")

var (
	settingsJSON     bool
	settingsDefaults bool
	llmProvider      string
	llmModel         string
)

var settingsCmd = &cobra.Command{
	Use:   "settings",
	Short: "Manage application settings",
	Long: `View and configure analysis settings and the LLM provider used for
remote suggestions. Settings live in ~/.inkwell/config.toml.`,
	RunE: runSettingsShow,
}

var settingsShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show current settings",
	Args:  cobra.NoArgs,
	RunE:  runSettingsShow,
}

var settingsSetCmd = &cobra.Command{
	Use:   "set [key] [value]",
	Short: "Change one setting",
	Long: `Change one setting by key. Run 'inkwell settings keys' for the list.

Examples:
  inkwell settings set analysis.debounce_ms 800
  inkwell settings set analysis.enable_remote true`,
	Args: cobra.ExactArgs(2),
	RunE: runSettingsSet,
}

var settingsKeysCmd = &cobra.Command{
	Use:   "keys",
	Short: "List setting keys",
	Args:  cobra.NoArgs,
	RunE:  runSettingsKeys,
}

var settingsResetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Restore the default analysis settings",
	Long:  `Restores every analysis setting to its default. The LLM provider is kept.`,
	Args:  cobra.NoArgs,
	RunE:  runSettingsReset,
}

var settingsLLMCmd = &cobra.Command{
	Use:   "llm",
	Short: "Configure LLM provider",
	Long: `Configure the LLM provider used for remote writing suggestions.

Without --provider the command asks interactively. With --provider it runs
unattended and reads any API key from $` + apiKeyEnv + `.`,
	Args: cobra.NoArgs,
	RunE: runSettingsLLM,
}

func init() {
	for _, c := range []*cobra.Command{settingsCmd, settingsShowCmd} {
		c.Flags().BoolVar(&settingsJSON, "json", false, "output settings as JSON (API key masked)")
		c.Flags().BoolVar(&settingsDefaults, "defaults", false, "show the defaults instead of the current settings")
	}
	settingsLLMCmd.Flags().StringVar(&llmProvider, "provider", "", "provider: ollama, openai or anthropic")
	settingsLLMCmd.Flags().StringVar(&llmModel, "model", "", "model name (default depends on provider)")

	settingsCmd.AddCommand(settingsShowCmd, settingsSetCmd, settingsKeysCmd, settingsResetCmd, settingsLLMCmd)
	rootCmd.AddCommand(settingsCmd)
}

// settingsView is the JSON form of 'settings show'.
type settingsView struct {
	Analysis struct {
		Enabled               bool     `json:"enabled"`
		DebounceMS            int64    `json:"debounce_ms"`
		BatchIntervalMS       int64    `json:"batch_interval_ms"`
		MaxBatchSize          int      `json:"max_batch_size"`
		MaxConcurrent         int      `json:"max_concurrent"`
		MinimumConfidence     float64  `json:"minimum_confidence"`
		MaxSuggestions        int      `json:"max_suggestions"`
		MaxSuggestionsPerType int      `json:"max_suggestions_per_type"`
		Analyzers             []string `json:"analyzers"`
		RemoteSuggestions     bool     `json:"remote_suggestions"`
	} `json:"analysis"`
	LLM struct {
		Provider   string `json:"provider,omitempty"`
		Model      string `json:"model,omitempty"`
		BaseURL    string `json:"base_url,omitempty"`
		APIKey     string `json:"api_key,omitempty"`
		Configured bool   `json:"configured"`
	} `json:"llm"`
	Error string `json:"error,omitempty"`
}

func newSettingsView(s domain.AppSettings, validateErr error) settingsView {
	var v settingsView
	a := s.Analysis
	v.Analysis.Enabled = a.Enabled
	v.Analysis.DebounceMS = a.Debounce.Milliseconds()
	v.Analysis.BatchIntervalMS = a.BatchInterval.Milliseconds()
	v.Analysis.MaxBatchSize = a.MaxBatchSize
	v.Analysis.MaxConcurrent = a.MaxConcurrentAnalyses
	v.Analysis.MinimumConfidence = a.MinimumConfidence
	v.Analysis.MaxSuggestions = a.MaxSuggestions
	v.Analysis.MaxSuggestionsPerType = a.MaxSuggestionsPerType
	v.Analysis.Analyzers = enabledKinds(a)
	v.Analysis.RemoteSuggestions = a.EnableRemoteSuggestions

	v.LLM.Provider = string(s.LLM.Provider)
	v.LLM.Model = s.LLM.Model
	v.LLM.BaseURL = s.LLM.BaseURL
	if s.LLM.APIKey != "" {
		v.LLM.APIKey = maskAPIKey(s.LLM.APIKey)
	}
	v.LLM.Configured = s.LLM.IsConfigured()

	if validateErr != nil {
		v.Error = validateErr.Error()
	}
	return v
}

func runSettingsShow(cmd *cobra.Command, _ []string) error {
	if settingsService == nil {
		return errNoSettingsService
	}

	var settings domain.AppSettings
	var validateErr error
	if settingsDefaults {
		settings = settingsService.GetDefaults()
	} else {
		current, err := settingsService.Get()
		if err != nil {
			return fmt.Errorf("failed to get settings: %w", err)
		}
		settings = *current
		validateErr = settingsService.Validate()
	}

	if settingsJSON {
		data, err := json.MarshalIndent(newSettingsView(settings, validateErr), "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal settings: %w", err)
		}
		cmd.Println(string(data))
		return nil
	}

	a := settings.Analysis
	printSection(cmd, "Analysis", [][2]string{
		{"Enabled", yesNo(a.Enabled)},
		{"Debounce", a.Debounce.String()},
		{"Batch interval", a.BatchInterval.String()},
		{"Max batch size", strconv.Itoa(a.MaxBatchSize)},
		{"Max concurrent", strconv.Itoa(a.MaxConcurrentAnalyses)},
		{"Minimum confidence", fmt.Sprintf("%.2f", a.MinimumConfidence)},
		{"Max suggestions", fmt.Sprintf("%d (%d per type)", a.MaxSuggestions, a.MaxSuggestionsPerType)},
		{"Analyzers", enabledAnalyzers(a)},
		{"Remote suggestions", yesNo(a.EnableRemoteSuggestions)},
	})

	llm := settings.LLM
	rows := [][2]string{
		{"Provider", llm.Provider.Description()},
		{"Model", llm.Model},
	}
	if llm.Provider.IsLocal() {
		rows = append(rows, [2]string{"Base URL", llm.BaseURL})
	}
	if llm.Provider.RequiresAPIKey() {
		key := "(not set)"
		if llm.APIKey != "" {
			key = maskAPIKey(llm.APIKey)
		}
		rows = append(rows, [2]string{"API key", key})
	}
	status := "configured"
	if !llm.IsConfigured() {
		status = "not configured"
	}
	rows = append(rows, [2]string{"Status", status})
	printSection(cmd, "LLM", rows)

	switch {
	case settingsDefaults:
	case validateErr != nil:
		cmd.Printf("Warning: %v\n", validateErr)
		cmd.Println("Run 'inkwell settings set' or 'inkwell settings reset' to fix it.")
	default:
		cmd.Println("Configuration is valid.")
	}
	return nil
}

// printSection prints a [title] block with aligned labels.
func printSection(cmd *cobra.Command, title string, rows [][2]string) {
	width := 0
	for _, r := range rows {
		width = max(width, len(r[0]))
	}
	cmd.Printf("[%s]\n", title)
	for _, r := range rows {
		cmd.Printf("  %-*s  %s\n", width+1, r[0]+":", r[1])
	}
	cmd.Println()
}

func runSettingsSet(cmd *cobra.Command, args []string) error {
	if settingsService == nil {
		return errNoSettingsService
	}
	key, value := args[0], args[1]
	if err := settingsService.Set(key, value); err != nil {
		return fmt.Errorf("failed to set %s: %w", key, err)
	}
	if key == "llm.api_key" {
		value = maskAPIKey(value)
	}
	cmd.Printf("%s = %s\n", key, value)
	return nil
}

func runSettingsKeys(cmd *cobra.Command, _ []string) error {
	if settingsService == nil {
		return errNoSettingsService
	}
	for _, k := range settingsService.Keys() {
		cmd.Println(k)
	}
	return nil
}

func runSettingsReset(cmd *cobra.Command, _ []string) error {
	if settingsService == nil {
		return errNoSettingsService
	}
	current, err := settingsService.Get()
	if err != nil {
		return fmt.Errorf("failed to get settings: %w", err)
	}

	reset := settingsService.GetDefaults()
	reset.LLM = current.LLM
	if err := settingsService.Save(&reset); err != nil {
		return fmt.Errorf("failed to save settings: %w", err)
	}
	cmd.Println("Analysis settings restored to defaults.")
	return nil
}

func runSettingsLLM(cmd *cobra.Command, _ []string) error {
	if settingsService == nil {
		return errNoSettingsService
	}

	var (
		provider domain.AIProvider
		model    string
		apiKey   string
		err      error
	)
	if llmProvider != "" {
		provider, model, apiKey, err = llmFromFlags()
	} else {
		provider, model, apiKey, err = promptLLM(cmd, bufio.NewReader(cmd.InOrStdin()))
	}
	if err != nil {
		return err
	}

	if err := settingsService.SetLLMProvider(provider, model, apiKey); err != nil {
		return fmt.Errorf("failed to configure LLM provider: %w", err)
	}

	cmd.Print("Validating configuration... ")
	if err := settingsService.ValidateLLMConfig(); err != nil {
		cmd.Printf("FAILED: %v\n", err)
		return fmt.Errorf("LLM configuration validation failed: %w", err)
	}
	cmd.Println("OK")

	cmd.Printf("LLM provider configured: %s (%s)\n", provider.Description(), model)
	cmd.Println("Enable remote suggestions with 'inkwell settings set analysis.enable_remote true'.")
	return nil
}

func llmFromFlags() (domain.AIProvider, string, string, error) {
	provider := domain.AIProvider(strings.ToLower(llmProvider))
	if !provider.IsValid() {
		return "", "", "", fmt.Errorf("%w: unknown provider %q", domain.ErrInvalidInput, llmProvider)
	}
	model := llmModel
	if model == "" {
		model = domain.DefaultLLMModels()[provider]
	}
	apiKey := os.Getenv(apiKeyEnv)
	if provider.RequiresAPIKey() && apiKey == "" {
		return "", "", "", fmt.Errorf("%s requires an API key: set %s", provider.Description(), apiKeyEnv)
	}
	return provider, model, apiKey, nil
}

func promptLLM(cmd *cobra.Command, reader *bufio.Reader) (domain.AIProvider, string, string, error) {
	providers := domain.AllLLMProviders()
	cmd.Println("Select LLM Provider")
	for i, p := range providers {
		cmd.Printf("  %d. %s\n", i+1, p.Description())
	}
	cmd.Print("\nEnter choice [1]: ")
	provider := providers[parseChoice(readLine(reader), len(providers), 1)-1]

	model := domain.DefaultLLMModels()[provider]
	cmd.Printf("Enter model name [%s]: ", model)
	if typed := readLine(reader); typed != "" {
		model = typed
	}

	var apiKey string
	if provider.RequiresAPIKey() {
		cmd.Print("Enter API key: ")
		apiKey = readPassword(reader)
		cmd.Println()
		if apiKey == "" {
			return "", "", "", errors.New("API key is required for this provider")
		}
	}
	return provider, model, apiKey, nil
}

func enabledKinds(c domain.AnalysisConfig) []string {
	on := []string{}
	for _, k := range domain.AllAnalysisKinds() {
		if c.KindEnabled(k) {
			on = append(on, string(k))
		}
	}
	return on
}

func enabledAnalyzers(c domain.AnalysisConfig) string {
	on := enabledKinds(c)
	if len(on) == 0 {
		return "none"
	}
	return strings.Join(on, ", ")
}

func yesNo(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}

func readLine(reader *bufio.Reader) string {
	input, _ := reader.ReadString('\n')
	return strings.TrimSpace(input)
}

// parseChoice returns the 1-based menu choice, or defaultVal when input
// is empty or out of range.
func parseChoice(input string, maxVal, defaultVal int) int {
	val, err := strconv.Atoi(strings.TrimSpace(input))
	if err != nil || val < 1 || val > maxVal {
		return defaultVal
	}
	return val
}

// readPassword reads without echo on a terminal and from reader otherwise.
func readPassword(reader *bufio.Reader) string {
	if fd := int(os.Stdin.Fd()); term.IsTerminal(fd) {
		if password, err := term.ReadPassword(fd); err == nil {
			return string(password)
		}
	}
	return readLine(reader)
}

// maskAPIKey keeps the first and last four characters of keys longer than eight.
func maskAPIKey(key string) string {
	if len(key) <= 8 {
		return "****"
	}
	return key[:4] + "..." + key[len(key)-4:]
}
