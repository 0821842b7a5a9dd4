package domain

// Embedding and LLM provider identifiers.
const (
	ProviderOpenAI = "openai"
	ProviderOllama = "ollama"
)

// EmbeddingSettings configures the embedding provider.
type EmbeddingSettings struct {
	// Provider is "openai" or "ollama".
	Provider string

	// Model is the embedding model name.
	Model string

	// APIKey authenticates against hosted providers. Unused by ollama.
	APIKey string

	// BaseURL overrides the provider's default endpoint.
	BaseURL string

	// Dimensions is the embedding vector size. Zero means the provider's
	// default for the model.
	Dimensions int
}

// IsConfigured returns true if the settings name a usable provider.
func (s EmbeddingSettings) IsConfigured() bool {
	switch s.Provider {
	case ProviderOpenAI:
		return s.APIKey != ""
	case ProviderOllama:
		return true
	default:
		return false
	}
}

// LLMSettings configures the answer-generation provider.
type LLMSettings struct {
	Provider string
	Model    string
	APIKey   string
	BaseURL  string
}

// IsConfigured returns true if the settings name a usable provider.
func (s LLMSettings) IsConfigured() bool {
	switch s.Provider {
	case ProviderOpenAI:
		return s.APIKey != ""
	case ProviderOllama:
		return true
	default:
		return false
	}
}

// ChunkingSettings configures the document chunker.
type ChunkingSettings struct {
	// MaxTokens is the maximum tokens per chunk.
	MaxTokens int

	// OverlapTokens is the number of tokens shared by consecutive chunks.
	OverlapTokens int
}

// RetrievalSettings configures the retriever.
type RetrievalSettings struct {
	// OverfetchFactor multiplies MaxResults when querying the store, to
	// absorb threshold pruning without extra round-trips.
	OverfetchFactor int

	// OverfetchCap bounds the over-fetched request size.
	OverfetchCap int

	// ContextTokenBudget bounds the assembled context block.
	ContextTokenBudget int

	// DefaultThreshold is the similarity threshold when the caller does
	// not set one.
	DefaultThreshold float64

	// DefaultMaxResults is the result count when the caller does not set one.
	DefaultMaxResults int
}

// Settings is the full application configuration.
type Settings struct {
	Embedding EmbeddingSettings
	LLM       LLMSettings
	Chunking  ChunkingSettings
	Retrieval RetrievalSettings

	// DataDir is where the store and prompt files live.
	// Empty means ~/.oceanus.
	DataDir string
}

// DefaultSettings returns the settings used before any configuration.
func DefaultSettings() Settings {
	return Settings{
		Embedding: EmbeddingSettings{
			Provider: ProviderOpenAI,
			Model:    "text-embedding-3-small",
		},
		LLM: LLMSettings{
			Provider: ProviderOpenAI,
			Model:    "gpt-4o-mini",
		},
		Chunking: ChunkingSettings{
			MaxTokens:     1000,
			OverlapTokens: 200,
		},
		Retrieval: RetrievalSettings{
			OverfetchFactor:    4,
			OverfetchCap:       100,
			ContextTokenBudget: 3000,
			DefaultThreshold:   0.0,
			DefaultMaxResults:  5,
		},
	}
}
