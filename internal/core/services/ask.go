package services

import (
	"context"
	"fmt"

	"github.com/custodia-labs/oceanus-cli/internal/core/domain"
	"github.com/custodia-labs/oceanus-cli/internal/core/ports/driven"
	"github.com/custodia-labs/oceanus-cli/internal/logger"
)

// noContextAnswer is returned when retrieval comes back empty: the model is
// never asked to answer without grounding material.
const noContextAnswer = "I could not find relevant information in the ingested documents to answer this question. Try rephrasing the question, loosening the filters, or ingesting more documents."

// Asker answers questions by grounding an LLM on retrieved document context.
type Asker struct {
	retriever *Retriever
	llm       driven.LLMService
	prompts   driven.PromptStore
}

// NewAsker creates the question-answering service. The llm may be nil, in
// which case Ask fails with ErrLLMUnavailable but Retrieve still works.
func NewAsker(retriever *Retriever, llm driven.LLMService, prompts driven.PromptStore) *Asker {
	return &Asker{
		retriever: retriever,
		llm:       llm,
		prompts:   prompts,
	}
}

// Retrieve exposes the retrieval pipeline without answer generation.
func (a *Asker) Retrieve(ctx context.Context, query domain.Query) (*domain.RetrievalResult, error) {
	return a.retriever.Retrieve(ctx, query)
}

// Ask retrieves grounding context and generates an answer from it.
func (a *Asker) Ask(ctx context.Context, query domain.Query) (*domain.Answer, error) {
	result, err := a.retriever.Retrieve(ctx, query)
	if err != nil {
		return nil, err
	}

	if result.Empty() {
		logger.Info("No matches above threshold, skipping generation")
		return &domain.Answer{
			Text:    noContextAnswer,
			Context: result.Context,
		}, nil
	}

	if a.llm == nil {
		return nil, domain.ErrLLMUnavailable
	}

	template, err := a.prompts.Load(driven.PromptAnswer)
	if err != nil {
		return nil, fmt.Errorf("load answer prompt: %w", err)
	}
	system, err := a.prompts.Load(driven.PromptAnswerSystem)
	if err != nil {
		return nil, fmt.Errorf("load system prompt: %w", err)
	}

	prompt := fmt.Sprintf(template, result.Context, query.Question)

	logger.Section("Generation")
	logger.Debug("Model: %s", a.llm.ModelName())

	text, err := a.llm.Generate(ctx, prompt, driven.GenerateOptions{
		SystemPrompt: system,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrLLMUnavailable, err)
	}

	return &domain.Answer{
		Text:    text,
		Sources: result.Sources,
		Context: result.Context,
	}, nil
}
