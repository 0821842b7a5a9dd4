// Package cli implements the command-line interface.
package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/oceanus-cli/internal/adapters/driven/ai"
	"github.com/custodia-labs/oceanus-cli/internal/adapters/driven/config/file"
	"github.com/custodia-labs/oceanus-cli/internal/adapters/driven/storage/sqlite"
	"github.com/custodia-labs/oceanus-cli/internal/core/domain"
	"github.com/custodia-labs/oceanus-cli/internal/core/ports/driven"
	"github.com/custodia-labs/oceanus-cli/internal/core/ports/driving"
	"github.com/custodia-labs/oceanus-cli/internal/core/services"
	"github.com/custodia-labs/oceanus-cli/internal/extractors"
	"github.com/custodia-labs/oceanus-cli/internal/logger"
)

// version is set via Execute from the build.
var version = "dev"

// verbose enables debug logging on stderr.
var verbose bool

// Long-lived collaborators wired by initServices.
var (
	configStore     *file.ConfigStore
	settingsService driving.SettingsService
	promptStore     driven.PromptStore
)

var rootCmd = &cobra.Command{
	Use:   "oceanus",
	Short: "Ask questions over a local corpus of ocean sustainability documents",
	Long: `Oceanus ingests ocean research and sustainability documents into a local
vector store and answers natural-language questions grounded on them.

Documents are chunked, embedded, and tagged with document type, geographic
focus, and topic inferred from the filename, so queries can filter before
similarity ranking.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(_ *cobra.Command, _ []string) error {
		logger.SetVerbose(verbose)
		return initServices()
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug output")
}

// Execute runs the CLI with the given build version.
func Execute(buildVersion string) error {
	if buildVersion != "" {
		version = buildVersion
	}
	return rootCmd.Execute()
}

// initServices wires the configuration-level collaborators. AI services and
// the store are built per command via buildPipeline, so commands that never
// touch them (settings, version) don't pay for connectivity checks.
func initServices() error {
	if configStore != nil {
		return nil
	}

	cs, err := file.NewConfigStore("")
	if err != nil {
		return fmt.Errorf("open config store: %w", err)
	}
	configStore = cs
	settingsService = services.NewSettingsService(cs)

	ps, err := file.NewPromptStore("")
	if err != nil {
		return fmt.Errorf("open prompt store: %w", err)
	}
	promptStore = ps

	return nil
}

// pipeline bundles the ingestion and query services over shared adapters.
type pipeline struct {
	settings domain.Settings
	embedder driven.EmbeddingService
	llm      driven.LLMService
	store    *sqlite.Store
	ingester driving.IngestService
	asker    driving.AskService
}

// close releases the pipeline's resources.
func (p *pipeline) close() {
	if p.embedder != nil {
		p.embedder.Close()
	}
	if p.llm != nil {
		p.llm.Close()
	}
	if p.store != nil {
		p.store.Close()
	}
}

// buildPipeline constructs the embedder, store, and services from current
// settings. When needLLM is false the LLM service is left nil; Ask-style
// commands set it.
func buildPipeline(needLLM bool) (*pipeline, error) {
	settings, err := settingsService.Get()
	if err != nil {
		return nil, fmt.Errorf("load settings: %w", err)
	}

	embedder, err := ai.CreateAndValidateEmbeddingService(settings.Embedding)
	if err != nil {
		return nil, err
	}
	if embedder == nil {
		return nil, fmt.Errorf("%w: no embedding provider configured. Run 'oceanus settings set' first",
			domain.ErrEmbeddingUnavailable)
	}

	store, err := sqlite.NewStore(settings.DataDir, embedder.Dimensions())
	if err != nil {
		embedder.Close()
		return nil, err
	}

	var llm driven.LLMService
	if needLLM {
		llm, err = ai.CreateAndValidateLLMService(settings.LLM)
		if err != nil {
			embedder.Close()
			store.Close()
			return nil, err
		}
	}

	chunker := services.NewChunker(
		services.WithMaxTokens(settings.Chunking.MaxTokens),
		services.WithOverlapTokens(settings.Chunking.OverlapTokens),
	)
	retriever := services.NewRetriever(embedder, store, settings.Retrieval)

	return &pipeline{
		settings: settings,
		embedder: embedder,
		llm:      llm,
		store:    store,
		ingester: services.NewIngester(extractors.NewDefaultRegistry(), chunker, embedder, store),
		asker:    services.NewAsker(retriever, llm, promptStore),
	}, nil
}

// openStore opens the vector store alone, for document management commands
// that never embed. The dimension check is skipped by reusing the configured
// value, falling back to the OpenAI small-model default.
func openStore() (*sqlite.Store, error) {
	settings, err := settingsService.Get()
	if err != nil {
		return nil, fmt.Errorf("load settings: %w", err)
	}
	dims := settings.Embedding.Dimensions
	if dims == 0 {
		dims = 1536
	}
	return sqlite.NewStore(settings.DataDir, dims)
}
