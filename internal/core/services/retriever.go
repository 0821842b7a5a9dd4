package services

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/custodia-labs/oceanus-cli/internal/core/domain"
	"github.com/custodia-labs/oceanus-cli/internal/core/ports/driven"
	"github.com/custodia-labs/oceanus-cli/internal/logger"
)

// charsPerToken is the rough token estimate used for the context budget.
const charsPerToken = 4

// Retriever embeds a question, runs a filtered similarity search, applies
// the score threshold, ranks and truncates results, and assembles the
// grounding context block.
type Retriever struct {
	embedder driven.EmbeddingService
	store    driven.VectorStore
	settings domain.RetrievalSettings
}

// NewRetriever creates a retriever over the given embedder and store.
func NewRetriever(
	embedder driven.EmbeddingService,
	store driven.VectorStore,
	settings domain.RetrievalSettings,
) *Retriever {
	if settings.OverfetchFactor <= 0 {
		settings.OverfetchFactor = 4
	}
	if settings.OverfetchCap <= 0 {
		settings.OverfetchCap = 100
	}
	if settings.ContextTokenBudget <= 0 {
		settings.ContextTokenBudget = 3000
	}
	return &Retriever{
		embedder: embedder,
		store:    store,
		settings: settings,
	}
}

// Retrieve runs the retrieval pipeline for a query.
// An empty result set is not an error: the result carries the no-context
// marker and zero matches.
func (r *Retriever) Retrieve(ctx context.Context, query domain.Query) (*domain.RetrievalResult, error) {
	logger.Section("Retrieval")
	logger.Debug("Question: %q", query.Question)

	if err := query.Validate(); err != nil {
		return nil, err
	}
	if r.embedder == nil {
		return nil, domain.ErrEmbeddingUnavailable
	}

	// Embed the question (single-item batch).
	vector, err := r.embedder.Embed(ctx, query.Question)
	if err != nil {
		return nil, fmt.Errorf("embed question: %w", err)
	}
	logger.Debug("Query embedding: %d dimensions", len(vector))

	// Over-fetch to absorb threshold pruning without extra round-trips.
	topK := query.MaxResults * r.settings.OverfetchFactor
	if topK > r.settings.OverfetchCap {
		topK = r.settings.OverfetchCap
	}
	if topK < query.MaxResults {
		topK = query.MaxResults
	}
	logger.Debug("Searching: topK=%d, filters=%+v", topK, query.Filters)

	hits, err := r.store.Search(ctx, vector, query.Filters, topK)
	if err != nil {
		return nil, fmt.Errorf("similarity search: %w", err)
	}
	logger.Debug("Store returned %d hits", len(hits))

	// Threshold pruning.
	matches := make([]domain.Match, 0, len(hits))
	for _, hit := range hits {
		if hit.Score < query.SimilarityThreshold {
			continue
		}
		matches = append(matches, domain.Match{
			Chunk:    hit.Chunk,
			Document: hit.Document,
			Score:    hit.Score,
		})
	}
	logger.Debug("After threshold %.2f: %d matches", query.SimilarityThreshold, len(matches))

	// Rank: descending score, ties broken by ascending chunk position for
	// reproducible output, then by filename across documents.
	sort.SliceStable(matches, func(i, j int) bool {
		if matches[i].Score != matches[j].Score {
			return matches[i].Score > matches[j].Score
		}
		if matches[i].Chunk.Position != matches[j].Chunk.Position {
			return matches[i].Chunk.Position < matches[j].Chunk.Position
		}
		return matches[i].Document.Filename < matches[j].Document.Filename
	})

	if len(matches) > query.MaxResults {
		matches = matches[:query.MaxResults]
	}

	result := &domain.RetrievalResult{
		Matches: matches,
		Context: r.assembleContext(matches),
		Sources: sourceAttributions(matches),
	}

	logger.Info("Retrieval: %d matches", len(matches))
	return result, nil
}

// assembleContext concatenates match content in ranked order, each entry
// annotated with its source, bounded by the configured token budget.
func (r *Retriever) assembleContext(matches []domain.Match) string {
	if len(matches) == 0 {
		return domain.NoContextMarker
	}

	var parts []string
	budget := r.settings.ContextTokenBudget
	used := 0

	for _, m := range matches {
		entry := fmt.Sprintf("[Source: %s - %s]\n%s\n", m.Document.Filename, m.Document.Organization, m.Chunk.Content)
		estimated := len(entry) / charsPerToken
		if used+estimated > budget {
			break
		}
		parts = append(parts, entry)
		used += estimated
	}

	if len(parts) == 0 {
		// Even the best match exceeds the budget; include it truncated
		// rather than returning nothing for a non-empty result.
		entry := matches[0].Chunk.Content
		if len(entry) > budget*charsPerToken {
			entry = entry[:budget*charsPerToken]
		}
		parts = append(parts, entry)
	}

	return strings.Join(parts, "\n---\n")
}

// sourceAttributions builds the attribution list parallel to matches.
func sourceAttributions(matches []domain.Match) []domain.SourceAttribution {
	if len(matches) == 0 {
		return nil
	}
	sources := make([]domain.SourceAttribution, len(matches))
	for i, m := range matches {
		sources[i] = domain.SourceAttribution{
			Filename:     m.Document.Filename,
			Organization: m.Document.Organization,
			DocType:      m.Document.DocType,
			Score:        m.Score,
		}
	}
	return sources
}
