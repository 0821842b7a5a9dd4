package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/custodia-labs/oceanus-cli/internal/core/domain"
	"github.com/custodia-labs/oceanus-cli/internal/core/ports/driven"
)

// mockEmbedder returns a fixed vector per input, or a canned error.
type mockEmbedder struct {
	dims    int
	vectors map[string][]float32
	err     error
	calls   int
}

func newMockEmbedder(dims int) *mockEmbedder {
	return &mockEmbedder{dims: dims, vectors: make(map[string][]float32)}
}

func (m *mockEmbedder) vectorFor(text string) []float32 {
	if v, ok := m.vectors[text]; ok {
		return v
	}
	// Deterministic filler so unseen texts still embed.
	v := make([]float32, m.dims)
	for i := range v {
		v[i] = float32(len(text)%7) + float32(i)
	}
	return v
}

func (m *mockEmbedder) Embed(_ context.Context, text string) ([]float32, error) {
	m.calls++
	if m.err != nil {
		return nil, m.err
	}
	if strings.TrimSpace(text) == "" {
		return nil, fmt.Errorf("%w: text is empty", domain.ErrInvalidInput)
	}
	return m.vectorFor(text), nil
}

func (m *mockEmbedder) EmbedBatch(ctx context.Context, texts []string) ([][]float32, error) {
	m.calls++
	if m.err != nil {
		return nil, m.err
	}
	out := make([][]float32, len(texts))
	for i, text := range texts {
		if strings.TrimSpace(text) == "" {
			return nil, fmt.Errorf("%w: text at index %d is empty", domain.ErrInvalidInput, i)
		}
		out[i] = m.vectorFor(text)
	}
	return out, nil
}

func (m *mockEmbedder) Dimensions() int              { return m.dims }
func (m *mockEmbedder) ModelName() string            { return "mock-embed" }
func (m *mockEmbedder) Ping(_ context.Context) error { return nil }
func (m *mockEmbedder) Close() error                 { return nil }

// mockStore serves canned hits and records writes.
type mockStore struct {
	hits      []driven.VectorHit
	searchErr error

	docs      map[string]*domain.Document
	chunksFor map[string][]domain.Chunk

	lastFilters domain.Filters
	lastTopK    int
}

func newMockStore() *mockStore {
	return &mockStore{
		docs:      make(map[string]*domain.Document),
		chunksFor: make(map[string][]domain.Chunk),
	}
}

func (m *mockStore) UpsertDocument(_ context.Context, doc *domain.Document) (string, error) {
	for _, existing := range m.docs {
		if existing.Filename == doc.Filename {
			copied := *doc
			copied.ID = existing.ID
			m.docs[existing.ID] = &copied
			return existing.ID, nil
		}
	}
	copied := *doc
	m.docs[doc.ID] = &copied
	return doc.ID, nil
}

func (m *mockStore) ReplaceChunks(_ context.Context, documentID string, chunks []domain.Chunk) error {
	if _, ok := m.docs[documentID]; !ok {
		return fmt.Errorf("%w: document %s has no stored record", domain.ErrDataIntegrity, documentID)
	}
	m.chunksFor[documentID] = append([]domain.Chunk(nil), chunks...)
	return nil
}

func (m *mockStore) Search(_ context.Context, _ []float32, filters domain.Filters, topK int) ([]driven.VectorHit, error) {
	m.lastFilters = filters
	m.lastTopK = topK
	if m.searchErr != nil {
		return nil, m.searchErr
	}
	if len(m.hits) > topK {
		return m.hits[:topK], nil
	}
	return m.hits, nil
}

func (m *mockStore) GetDocument(_ context.Context, id string) (*domain.Document, error) {
	doc, ok := m.docs[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return doc, nil
}

func (m *mockStore) GetChunks(_ context.Context, documentID string) ([]domain.Chunk, error) {
	return m.chunksFor[documentID], nil
}

func (m *mockStore) ListDocuments(_ context.Context) ([]domain.Document, error) {
	var docs []domain.Document
	for _, doc := range m.docs {
		docs = append(docs, *doc)
	}
	return docs, nil
}

func (m *mockStore) DeleteDocument(_ context.Context, id string) error {
	if _, ok := m.docs[id]; !ok {
		return domain.ErrNotFound
	}
	delete(m.docs, id)
	delete(m.chunksFor, id)
	return nil
}

func (m *mockStore) Close() error { return nil }

// mockLLM records the last prompt and returns a canned answer.
type mockLLM struct {
	answer     string
	err        error
	calls      int
	lastPrompt string
	lastOpts   driven.GenerateOptions
}

func (m *mockLLM) Generate(_ context.Context, prompt string, opts driven.GenerateOptions) (string, error) {
	m.calls++
	m.lastPrompt = prompt
	m.lastOpts = opts
	if m.err != nil {
		return "", m.err
	}
	return m.answer, nil
}

func (m *mockLLM) ModelName() string            { return "mock-llm" }
func (m *mockLLM) Ping(_ context.Context) error { return nil }
func (m *mockLLM) Close() error                 { return nil }

// mockPrompts serves the embedded defaults without touching disk.
type mockPrompts struct{}

func (mockPrompts) Load(name string) (string, error) {
	switch name {
	case driven.PromptAnswer:
		return "Context:\n%s\n\nQuestion: %s\n\nAnswer:", nil
	case driven.PromptAnswerSystem:
		return "You are a marine scientist.", nil
	default:
		return "", fmt.Errorf("unknown prompt %q", name)
	}
}

func (mockPrompts) Reload() {}

// hit builds a VectorHit for retriever tests.
func hit(filename string, position int, score float64, content string) driven.VectorHit {
	return driven.VectorHit{
		Chunk: domain.Chunk{
			ID:         fmt.Sprintf("%s-%d", filename, position),
			DocumentID: filename,
			Position:   position,
			Content:    content,
		},
		Document: domain.Document{
			ID:           filename,
			Filename:     filename,
			Organization: "Ocean Org",
		},
		Score: score,
	}
}
