package cli

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/oceanus-cli/internal/core/domain"
)

var (
	askLimit       int
	askThreshold   float64
	askDocType     string
	askRegion      string
	askTopic       string
	askShowContext bool
	askJSON        bool
	askRetrieve    bool
)

var askCmd = &cobra.Command{
	Use:   "ask [question]",
	Short: "Ask a question over the ingested documents",
	Long: `Embeds the question, retrieves the most similar chunks (optionally
filtered by document type, region, or topic), and generates an answer
grounded on them with source attributions.

With --retrieve-only, prints the retrieved chunks without calling the LLM.`,
	Args: cobra.ExactArgs(1),
	RunE: runAsk,
}

func init() {
	askCmd.Flags().IntVarP(&askLimit, "limit", "n", 0, "maximum number of chunks to retrieve (default from settings)")
	askCmd.Flags().Float64VarP(&askThreshold, "threshold", "t", -1, "minimum similarity score in [0,1] (default from settings)")
	askCmd.Flags().StringVar(&askDocType, "doc-type", "", "filter by document type")
	askCmd.Flags().StringVar(&askRegion, "region", "", "filter by geographic focus")
	askCmd.Flags().StringVar(&askTopic, "topic", "", "filter by topic")
	askCmd.Flags().BoolVar(&askShowContext, "show-context", false, "print the assembled context block")
	askCmd.Flags().BoolVar(&askJSON, "json", false, "output as JSON")
	askCmd.Flags().BoolVar(&askRetrieve, "retrieve-only", false, "retrieve chunks without generating an answer")
	rootCmd.AddCommand(askCmd)
}

// buildQuery assembles the domain query from flags and settings defaults.
func buildQuery(question string, settings domain.RetrievalSettings) domain.Query {
	limit := askLimit
	if limit <= 0 {
		limit = settings.DefaultMaxResults
	}
	threshold := askThreshold
	if threshold < 0 {
		threshold = settings.DefaultThreshold
	}
	return domain.Query{
		Question:            question,
		MaxResults:          limit,
		SimilarityThreshold: threshold,
		Filters: domain.Filters{
			DocType:         askDocType,
			GeographicFocus: askRegion,
			Topic:           askTopic,
		},
	}
}

func runAsk(cmd *cobra.Command, args []string) error {
	p, err := buildPipeline(!askRetrieve)
	if err != nil {
		return err
	}
	defer p.close()

	ctx := context.Background()
	query := buildQuery(args[0], p.settings.Retrieval)

	if askRetrieve {
		result, err := p.asker.Retrieve(ctx, query)
		if err != nil {
			return fmt.Errorf("retrieval failed: %w", err)
		}
		return outputRetrieval(cmd, result)
	}

	answer, err := p.asker.Ask(ctx, query)
	if err != nil {
		return fmt.Errorf("ask failed: %w", err)
	}
	return outputAnswer(cmd, answer)
}

func outputRetrieval(cmd *cobra.Command, result *domain.RetrievalResult) error {
	if askJSON {
		data, err := json.MarshalIndent(result, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal result: %w", err)
		}
		cmd.Println(string(data))
		return nil
	}

	if result.Empty() {
		cmd.Println("No matches found.")
		return nil
	}

	cmd.Printf("Found %d chunk(s):\n\n", len(result.Matches))
	for i, m := range result.Matches {
		cmd.Printf("  [%d] %s (chunk %d, score %.3f)\n", i+1, m.Document.Filename, m.Chunk.Position, m.Score)
		if m.Document.Organization != "" {
			cmd.Printf("      Organization: %s\n", m.Document.Organization)
		}
		cmd.Println()
	}

	if askShowContext {
		cmd.Println("Context:")
		cmd.Println(result.Context)
	}
	return nil
}

func outputAnswer(cmd *cobra.Command, answer *domain.Answer) error {
	if askJSON {
		data, err := json.MarshalIndent(answer, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal answer: %w", err)
		}
		cmd.Println(string(data))
		return nil
	}

	cmd.Println(answer.Text)

	if len(answer.Sources) > 0 {
		cmd.Println("\nSources:")
		for i, src := range answer.Sources {
			cmd.Printf("  [%d] %s", i+1, src.Filename)
			if src.Organization != "" {
				cmd.Printf(" - %s", src.Organization)
			}
			cmd.Printf(" (%.3f)\n", src.Score)
		}
	}

	if askShowContext {
		cmd.Println("\nContext:")
		cmd.Println(answer.Context)
	}
	return nil
}
