package cli

import (
	"fmt"
	"os"
	"runtime/debug"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/custodia-labs/oceanus-cli/internal/adapters/driving/tui"
	"github.com/custodia-labs/oceanus-cli/internal/core/domain"
)

var chatCmd = &cobra.Command{
	Use:   "chat",
	Short: "Interactive question-and-answer session",
	Long: `Launch an interactive chat over the ingested documents.

Each message is embedded, matched against the stored chunks, and answered
with source attributions.

Controls:
  Enter - Send question
  Esc   - Quit`,
	RunE: runChat,
}

func init() {
	rootCmd.AddCommand(chatCmd)
}

func runChat(cmd *cobra.Command, _ []string) error {
	// Add panic recovery to get stack traces
	defer func() {
		if r := recover(); r != nil {
			fmt.Fprintf(os.Stderr, "Panic in chat: %v\n", r)
			fmt.Fprintf(os.Stderr, "Stack trace:\n%s\n", debug.Stack())
		}
	}()

	p, err := buildPipeline(true)
	if err != nil {
		return err
	}
	defer p.close()

	defaults := domain.Query{
		MaxResults:          p.settings.Retrieval.DefaultMaxResults,
		SimilarityThreshold: p.settings.Retrieval.DefaultThreshold,
	}

	model := tui.NewChat(p.asker, defaults).WithContext(cmd.Context())
	program := tea.NewProgram(model, tea.WithAltScreen())
	if _, err := program.Run(); err != nil {
		return fmt.Errorf("chat error: %w", err)
	}
	return nil
}
