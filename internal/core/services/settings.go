package services

import (
	"fmt"
	"strconv"

	"github.com/custodia-labs/oceanus-cli/internal/core/domain"
	"github.com/custodia-labs/oceanus-cli/internal/core/ports/driven"
	"github.com/custodia-labs/oceanus-cli/internal/core/ports/driving"
)

// Ensure SettingsService implements the interface.
var _ driving.SettingsService = (*SettingsService)(nil)

// Config keys for settings storage.
//
//nolint:gosec // G101: These are config key names, not actual credentials.
const (
	keyEmbedProvider = "embedding.provider"
	keyEmbedModel    = "embedding.model"
	keyEmbedBaseURL  = "embedding.base_url"
	keyEmbedAPIKey   = "embedding.api_key"
	keyEmbedDims     = "embedding.dimensions"
	keyLLMProvider   = "llm.provider"
	keyLLMModel      = "llm.model"
	keyLLMBaseURL    = "llm.base_url"
	keyLLMAPIKey     = "llm.api_key"
	keyChunkMax      = "chunking.max_tokens"
	keyChunkOverlap  = "chunking.overlap_tokens"
	keyRetOverfetch  = "retrieval.overfetch_factor"
	keyRetCap        = "retrieval.overfetch_cap"
	keyRetBudget     = "retrieval.context_token_budget"
	keyRetThreshold  = "retrieval.default_threshold"
	keyRetMaxResults = "retrieval.default_max_results"
	keyDataDir       = "data.dir"
)

// intKeys and floatKeys drive value parsing in SetKey.
var intKeys = map[string]bool{
	keyEmbedDims:     true,
	keyChunkMax:      true,
	keyChunkOverlap:  true,
	keyRetOverfetch:  true,
	keyRetCap:        true,
	keyRetBudget:     true,
	keyRetMaxResults: true,
}

var floatKeys = map[string]bool{
	keyRetThreshold: true,
}

// SettingsService manages application settings on top of the config store.
type SettingsService struct {
	configStore driven.ConfigStore
}

// NewSettingsService creates a new settings service.
func NewSettingsService(configStore driven.ConfigStore) *SettingsService {
	return &SettingsService{configStore: configStore}
}

// Get retrieves current application settings with defaults applied.
func (s *SettingsService) Get() (domain.Settings, error) {
	defaults := domain.DefaultSettings()

	settings := domain.Settings{
		Embedding: domain.EmbeddingSettings{
			Provider:   s.getString(keyEmbedProvider, defaults.Embedding.Provider),
			Model:      s.getString(keyEmbedModel, defaults.Embedding.Model),
			BaseURL:    s.configStore.GetString(keyEmbedBaseURL), // No default - empty is valid for cloud providers
			APIKey:     s.configStore.GetString(keyEmbedAPIKey),
			Dimensions: s.configStore.GetInt(keyEmbedDims),
		},
		LLM: domain.LLMSettings{
			Provider: s.getString(keyLLMProvider, defaults.LLM.Provider),
			Model:    s.getString(keyLLMModel, defaults.LLM.Model),
			BaseURL:  s.configStore.GetString(keyLLMBaseURL),
			APIKey:   s.configStore.GetString(keyLLMAPIKey),
		},
		Chunking: domain.ChunkingSettings{
			MaxTokens:     s.getInt(keyChunkMax, defaults.Chunking.MaxTokens),
			OverlapTokens: s.getInt(keyChunkOverlap, defaults.Chunking.OverlapTokens),
		},
		Retrieval: domain.RetrievalSettings{
			OverfetchFactor:    s.getInt(keyRetOverfetch, defaults.Retrieval.OverfetchFactor),
			OverfetchCap:       s.getInt(keyRetCap, defaults.Retrieval.OverfetchCap),
			ContextTokenBudget: s.getInt(keyRetBudget, defaults.Retrieval.ContextTokenBudget),
			DefaultThreshold:   s.getFloat(keyRetThreshold, defaults.Retrieval.DefaultThreshold),
			DefaultMaxResults:  s.getInt(keyRetMaxResults, defaults.Retrieval.DefaultMaxResults),
		},
		DataDir: s.configStore.GetString(keyDataDir),
	}

	return settings, nil
}

// Save persists application settings.
func (s *SettingsService) Save(settings domain.Settings) error {
	pairs := []struct {
		key   string
		value any
	}{
		{keyEmbedProvider, settings.Embedding.Provider},
		{keyEmbedModel, settings.Embedding.Model},
		{keyEmbedBaseURL, settings.Embedding.BaseURL},
		{keyEmbedDims, settings.Embedding.Dimensions},
		{keyLLMProvider, settings.LLM.Provider},
		{keyLLMModel, settings.LLM.Model},
		{keyLLMBaseURL, settings.LLM.BaseURL},
		{keyChunkMax, settings.Chunking.MaxTokens},
		{keyChunkOverlap, settings.Chunking.OverlapTokens},
		{keyRetOverfetch, settings.Retrieval.OverfetchFactor},
		{keyRetCap, settings.Retrieval.OverfetchCap},
		{keyRetBudget, settings.Retrieval.ContextTokenBudget},
		{keyRetThreshold, settings.Retrieval.DefaultThreshold},
		{keyRetMaxResults, settings.Retrieval.DefaultMaxResults},
		{keyDataDir, settings.DataDir},
	}
	for _, p := range pairs {
		if err := s.configStore.Set(p.key, p.value); err != nil {
			return fmt.Errorf("save %s: %w", p.key, err)
		}
	}

	// API keys are only written when set, so a blank save never wipes
	// stored credentials.
	if settings.Embedding.APIKey != "" {
		if err := s.configStore.Set(keyEmbedAPIKey, settings.Embedding.APIKey); err != nil {
			return fmt.Errorf("save %s: %w", keyEmbedAPIKey, err)
		}
	}
	if settings.LLM.APIKey != "" {
		if err := s.configStore.Set(keyLLMAPIKey, settings.LLM.APIKey); err != nil {
			return fmt.Errorf("save %s: %w", keyLLMAPIKey, err)
		}
	}

	return nil
}

// SetKey updates a single raw configuration key, parsing the value
// according to the key's expected type.
func (s *SettingsService) SetKey(key, value string) error {
	switch {
	case intKeys[key]:
		n, err := strconv.Atoi(value)
		if err != nil {
			return fmt.Errorf("%w: %s expects an integer, got %q", domain.ErrInvalidInput, key, value)
		}
		return s.configStore.Set(key, n)
	case floatKeys[key]:
		f, err := strconv.ParseFloat(value, 64)
		if err != nil {
			return fmt.Errorf("%w: %s expects a number, got %q", domain.ErrInvalidInput, key, value)
		}
		return s.configStore.Set(key, f)
	default:
		return s.configStore.Set(key, value)
	}
}

// getString reads a string key with a default.
func (s *SettingsService) getString(key, fallback string) string {
	if v := s.configStore.GetString(key); v != "" {
		return v
	}
	return fallback
}

// getInt reads an integer key with a default.
func (s *SettingsService) getInt(key string, fallback int) int {
	if _, ok := s.configStore.Get(key); ok {
		return s.configStore.GetInt(key)
	}
	return fallback
}

// getFloat reads a float key with a default.
func (s *SettingsService) getFloat(key string, fallback float64) float64 {
	if _, ok := s.configStore.Get(key); ok {
		return s.configStore.GetFloat(key)
	}
	return fallback
}
