package cli

import (
	"bufio"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/wbrank/internal/core/domain"
)

var (
	settingsLLMModel string
	settingsLLMURL   string
)

var settingsCmd = &cobra.Command{
	Use:   "settings",
	Short: "Manage application settings",
	Long: `View and configure search pacing, catalog access and keyword extraction.

Settings are stored in ~/.wbrank/config.toml and may also be edited by hand.`,
	RunE: runSettingsShow,
}

var settingsShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show current settings",
	RunE:  runSettingsShow,
}

var settingsStrategyCmd = &cobra.Command{
	Use:   "strategy [rules|llm]",
	Short: "Set keyword extraction strategy",
	Long: `Set how search keywords are derived from the product card.

Available strategies:
  rules - Title, selected options and composition words (no setup required)
  llm   - Keyphrases generated by a local Ollama model (requires 'settings llm')

Without an argument the strategy is chosen interactively.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runSettingsStrategy,
}

var settingsLLMCmd = &cobra.Command{
	Use:   "llm",
	Short: "Configure the Ollama model used for keyword extraction",
	RunE:  runSettingsLLM,
}

func init() {
	settingsLLMCmd.Flags().StringVar(&settingsLLMModel, "model", "", "model name (e.g. llama3.2)")
	settingsLLMCmd.Flags().StringVar(&settingsLLMURL, "url", "", "Ollama base URL (default http://localhost:11434)")

	settingsCmd.AddCommand(settingsShowCmd)
	settingsCmd.AddCommand(settingsStrategyCmd)
	settingsCmd.AddCommand(settingsLLMCmd)
	rootCmd.AddCommand(settingsCmd)
}

func runSettingsShow(cmd *cobra.Command, _ []string) error {
	if settingsService == nil {
		return errors.New("settings service not configured")
	}

	settings, err := settingsService.Get()
	if err != nil {
		return fmt.Errorf("failed to get settings: %w", err)
	}

	cmd.Println("Current Settings")
	cmd.Println("================")
	cmd.Println()

	cmd.Println("[Search]")
	cmd.Printf("  Page bound: %d\n", settings.Search.PageBound)
	cmd.Printf("  Progress every: %d pages\n", settings.Search.UpdateInterval)
	cmd.Printf("  Request delay: %s\n", settings.Search.Delay)
	cmd.Printf("  Request timeout: %s\n", settings.Search.Timeout)
	cmd.Println()

	cmd.Println("[Catalog]")
	cmd.Printf("  Max basket: %d\n", settings.Catalog.MaxBasket)
	cmd.Printf("  Shard cache: %s\n", yesNo(settings.Catalog.CacheShards))
	cmd.Println()

	cmd.Println("[Keywords]")
	cmd.Printf("  Strategy: %s\n", settings.Keywords.Strategy.Description())
	cmd.Printf("  Limit: %d\n", settings.Keywords.Limit)
	cmd.Printf("  Options: %s\n", strings.Join(settings.Keywords.Options, ", "))
	cmd.Printf("  Stop words: %d\n", len(settings.Keywords.StopWords))
	cmd.Println()

	cmd.Println("[LLM]")
	if settings.LLM.IsConfigured() {
		cmd.Printf("  Model: %s\n", settings.LLM.Model)
		cmd.Printf("  Base URL: %s\n", settings.LLM.BaseURL)
	} else {
		cmd.Println("  Status: not configured")
	}
	cmd.Println()

	if err := settingsService.Validate(); err != nil {
		cmd.Printf("Warning: %v\n", err)
		cmd.Println("Run 'wbrank settings llm' or 'wbrank settings strategy rules' to fix.")
	} else {
		cmd.Println("Configuration is valid.")
	}

	return nil
}

func runSettingsStrategy(cmd *cobra.Command, args []string) error {
	if settingsService == nil {
		return errors.New("settings service not configured")
	}

	var strategy domain.KeywordStrategy
	if len(args) == 1 {
		strategy = domain.KeywordStrategy(args[0])
	} else {
		strategies := domain.AllKeywordStrategies()
		cmd.Println("Select Keyword Strategy")
		cmd.Println("----------------------")
		for i, s := range strategies {
			cmd.Printf("  %d. %s\n", i+1, s.Description())
		}
		cmd.Print("\nEnter choice: ")
		idx := parseChoice(readLine(bufio.NewReader(cmd.InOrStdin())), len(strategies), 0)
		if idx == 0 {
			return errors.New("invalid selection")
		}
		strategy = strategies[idx-1]
	}

	if err := settingsService.SetKeywordStrategy(strategy); err != nil {
		return fmt.Errorf("failed to set keyword strategy: %w", err)
	}
	cmd.Printf("Keyword strategy set to: %s\n", strategy.Description())

	if strategy == domain.KeywordStrategyLLM {
		settings, _ := settingsService.Get() //nolint:errcheck // Best-effort check
		if settings != nil && !settings.LLM.IsConfigured() {
			cmd.Println("\nNote: This strategy requires an LLM.")
			cmd.Println("Run 'wbrank settings llm --model <name>' to configure.")
		}
	}
	return nil
}

func runSettingsLLM(cmd *cobra.Command, _ []string) error {
	if settingsService == nil {
		return errors.New("settings service not configured")
	}

	model := settingsLLMModel
	if model == "" {
		cmd.Print("Model name: ")
		model = readLine(bufio.NewReader(cmd.InOrStdin()))
	}

	if err := settingsService.SetLLM(settingsLLMURL, model); err != nil {
		return fmt.Errorf("failed to configure LLM: %w", err)
	}

	settings, err := settingsService.Get()
	if err != nil {
		return fmt.Errorf("failed to get settings: %w", err)
	}
	cmd.Printf("LLM set to %s at %s\n", settings.LLM.Model, settings.LLM.BaseURL)
	return nil
}

func readLine(reader *bufio.Reader) string {
	line, _ := reader.ReadString('\n') //nolint:errcheck // EOF yields what was read
	return strings.TrimSpace(line)
}

// parseChoice parses a 1-based menu choice, returning defaultVal when the
// input is empty or out of range.
func parseChoice(input string, maxVal, defaultVal int) int {
	if input == "" {
		return defaultVal
	}
	n, err := strconv.Atoi(input)
	if err != nil || n < 1 || n > maxVal {
		return defaultVal
	}
	return n
}

func yesNo(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}

