package cli

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"
)

var settingsCmd = &cobra.Command{
	Use:   "settings",
	Short: "Manage application settings",
	Long: `View and configure AI providers, chunking, and retrieval options.

Settings live in ~/.oceanus/config.toml.`,
	RunE: runSettingsShow,
}

var settingsShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show current settings",
	RunE:  runSettingsShow,
}

var settingsSetCmd = &cobra.Command{
	Use:   "set [key] [value]",
	Short: "Set a configuration value",
	Long: `Set a single configuration key. Common keys:

  embedding.provider   openai | ollama
  embedding.model      e.g. text-embedding-3-small
  llm.provider         openai | ollama
  llm.model            e.g. gpt-4o-mini
  chunking.max_tokens  maximum tokens per chunk
  chunking.overlap_tokens  tokens shared by consecutive chunks
  retrieval.default_threshold  similarity threshold in [0,1]
  retrieval.default_max_results  results per query

API keys are read interactively with 'oceanus settings set-key'.`,
	Args: cobra.ExactArgs(2),
	RunE: runSettingsSet,
}

var settingsSetKeyCmd = &cobra.Command{
	Use:   "set-key [embedding|llm]",
	Short: "Set an API key without echoing it",
	Args:  cobra.ExactArgs(1),
	RunE:  runSettingsSetKey,
}

func init() {
	settingsCmd.AddCommand(settingsShowCmd)
	settingsCmd.AddCommand(settingsSetCmd)
	settingsCmd.AddCommand(settingsSetKeyCmd)
	rootCmd.AddCommand(settingsCmd)
}

func runSettingsShow(cmd *cobra.Command, _ []string) error {
	settings, err := settingsService.Get()
	if err != nil {
		return err
	}

	cmd.Println("Embedding:")
	cmd.Printf("  provider:  %s\n", settings.Embedding.Provider)
	cmd.Printf("  model:     %s\n", settings.Embedding.Model)
	if settings.Embedding.BaseURL != "" {
		cmd.Printf("  base_url:  %s\n", settings.Embedding.BaseURL)
	}
	cmd.Printf("  api_key:   %s\n", maskAPIKey(settings.Embedding.APIKey))

	cmd.Println("LLM:")
	cmd.Printf("  provider:  %s\n", settings.LLM.Provider)
	cmd.Printf("  model:     %s\n", settings.LLM.Model)
	if settings.LLM.BaseURL != "" {
		cmd.Printf("  base_url:  %s\n", settings.LLM.BaseURL)
	}
	cmd.Printf("  api_key:   %s\n", maskAPIKey(settings.LLM.APIKey))

	cmd.Println("Chunking:")
	cmd.Printf("  max_tokens:      %d\n", settings.Chunking.MaxTokens)
	cmd.Printf("  overlap_tokens:  %d\n", settings.Chunking.OverlapTokens)

	cmd.Println("Retrieval:")
	cmd.Printf("  default_max_results:  %d\n", settings.Retrieval.DefaultMaxResults)
	cmd.Printf("  default_threshold:    %.2f\n", settings.Retrieval.DefaultThreshold)
	cmd.Printf("  context_token_budget: %d\n", settings.Retrieval.ContextTokenBudget)

	return nil
}

func runSettingsSet(cmd *cobra.Command, args []string) error {
	key, value := args[0], args[1]
	if strings.HasSuffix(key, ".api_key") {
		return fmt.Errorf("use 'oceanus settings set-key' for API keys")
	}
	if err := settingsService.SetKey(key, value); err != nil {
		return err
	}
	cmd.Printf("Set %s\n", key)
	return nil
}

func runSettingsSetKey(cmd *cobra.Command, args []string) error {
	var key string
	switch args[0] {
	case "embedding":
		key = "embedding.api_key"
	case "llm":
		key = "llm.api_key"
	default:
		return fmt.Errorf("unknown target %q, expected 'embedding' or 'llm'", args[0])
	}

	cmd.Printf("Enter API key for %s: ", args[0])
	value := readPassword()
	cmd.Println()
	if value == "" {
		return fmt.Errorf("no key entered")
	}

	if err := settingsService.SetKey(key, value); err != nil {
		return err
	}
	cmd.Printf("Saved %s\n", key)
	return nil
}

func readPassword() string {
	// Try to read password without echo
	if term.IsTerminal(int(os.Stdin.Fd())) {
		password, err := term.ReadPassword(int(os.Stdin.Fd()))
		if err == nil {
			return string(password)
		}
	}
	// Fallback to regular input
	reader := bufio.NewReader(os.Stdin)
	input, _ := reader.ReadString('\n')
	return strings.TrimSpace(input)
}

func maskAPIKey(key string) string {
	if key == "" {
		return "(not set)"
	}
	if len(key) <= 8 {
		return "****"
	}
	return key[:4] + "..." + key[len(key)-4:]
}
