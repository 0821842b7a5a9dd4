package tui

import (
	"context"
	"errors"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/oceanus-cli/internal/core/domain"
)

// stubAsker is a canned AskService for driving the chat model in tests.
type stubAsker struct {
	answer *domain.Answer
	err    error
	asked  []domain.Query
}

func (s *stubAsker) Retrieve(_ context.Context, query domain.Query) (*domain.RetrievalResult, error) {
	s.asked = append(s.asked, query)
	return &domain.RetrievalResult{}, s.err
}

func (s *stubAsker) Ask(_ context.Context, query domain.Query) (*domain.Answer, error) {
	s.asked = append(s.asked, query)
	if s.err != nil {
		return nil, s.err
	}
	return s.answer, nil
}

func newTestChat(asker *stubAsker) *Chat {
	chat := NewChat(asker, domain.Query{MaxResults: 5, SimilarityThreshold: 0.3})
	chat.Update(tea.WindowSizeMsg{Width: 80, Height: 24})
	return chat
}

func typeQuestion(chat *Chat, question string) {
	for _, r := range question {
		chat.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
	}
}

func TestNewChat(t *testing.T) {
	asker := &stubAsker{}

	chat := NewChat(asker, domain.Query{MaxResults: 5})

	require.NotNil(t, chat)
	assert.NotNil(t, chat.Init())
}

func TestChat_WithContext(t *testing.T) {
	chat := NewChat(&stubAsker{}, domain.Query{})

	type contextKey string
	ctx := context.WithValue(context.Background(), contextKey("key"), "value")
	result := chat.WithContext(ctx)

	assert.Equal(t, chat, result)
}

func TestChat_Update_WindowSize(t *testing.T) {
	chat := NewChat(&stubAsker{}, domain.Query{})

	model, cmd := chat.Update(tea.WindowSizeMsg{Width: 100, Height: 40})

	assert.Equal(t, chat, model)
	assert.Nil(t, cmd)
	assert.Contains(t, chat.View(), "Oceanus Chat")
}

func TestChat_View_BeforeWindowSize(t *testing.T) {
	chat := NewChat(&stubAsker{}, domain.Query{})

	assert.Equal(t, "Loading...", chat.View())
}

func TestChat_Update_Quit(t *testing.T) {
	chat := newTestChat(&stubAsker{})

	for _, key := range []tea.KeyType{tea.KeyCtrlC, tea.KeyEsc} {
		_, cmd := chat.Update(tea.KeyMsg{Type: key})

		require.NotNil(t, cmd)
		assert.Equal(t, tea.Quit(), cmd())
	}
}

func TestChat_Update_EnterSendsQuestion(t *testing.T) {
	asker := &stubAsker{answer: &domain.Answer{Text: "Seagrass stores carbon in sediment."}}
	chat := newTestChat(asker)
	typeQuestion(chat, "how does seagrass store carbon?")

	_, cmd := chat.Update(tea.KeyMsg{Type: tea.KeyEnter})

	require.NotNil(t, cmd)
	assert.Contains(t, chat.View(), "how does seagrass store carbon?")
	assert.Contains(t, chat.View(), "Thinking...")

	// Running the command performs the ask with the question filled in
	// on top of the configured retrieval defaults.
	msg := cmd()
	answer, ok := msg.(answerMsg)
	require.True(t, ok)
	assert.Equal(t, "how does seagrass store carbon?", answer.question)
	require.Len(t, asker.asked, 1)
	assert.Equal(t, "how does seagrass store carbon?", asker.asked[0].Question)
	assert.Equal(t, 5, asker.asked[0].MaxResults)
	assert.InDelta(t, 0.3, asker.asked[0].SimilarityThreshold, 1e-9)
}

func TestChat_Update_EnterIgnoresBlankInput(t *testing.T) {
	asker := &stubAsker{}
	chat := newTestChat(asker)
	typeQuestion(chat, "   ")

	_, cmd := chat.Update(tea.KeyMsg{Type: tea.KeyEnter})

	assert.Nil(t, cmd)
	assert.Empty(t, asker.asked)
}

func TestChat_Update_EnterIgnoredWhileWaiting(t *testing.T) {
	asker := &stubAsker{answer: &domain.Answer{Text: "answer"}}
	chat := newTestChat(asker)
	typeQuestion(chat, "first question")
	_, cmd := chat.Update(tea.KeyMsg{Type: tea.KeyEnter})
	require.NotNil(t, cmd)

	typeQuestion(chat, "second question")
	_, cmd = chat.Update(tea.KeyMsg{Type: tea.KeyEnter})

	assert.Nil(t, cmd)
}

func TestChat_Update_AnswerMsg(t *testing.T) {
	asker := &stubAsker{answer: &domain.Answer{
		Text: "Baltic seagrass meadows bury carbon in anoxic sediment.",
		Sources: []domain.SourceAttribution{
			{Filename: "baltic_report.txt", Score: 0.91},
		},
	}}
	chat := newTestChat(asker)
	typeQuestion(chat, "carbon?")
	_, cmd := chat.Update(tea.KeyMsg{Type: tea.KeyEnter})
	require.NotNil(t, cmd)

	model, next := chat.Update(cmd())

	assert.Equal(t, chat, model)
	assert.Nil(t, next)
	view := chat.View()
	assert.Contains(t, view, "Baltic seagrass meadows bury carbon in anoxic sediment.")
	assert.Contains(t, view, "baltic_report.txt (0.91)")
	assert.NotContains(t, view, "Thinking...")
}

func TestChat_Update_AnswerMsgError(t *testing.T) {
	asker := &stubAsker{err: errors.New("embedding service unavailable")}
	chat := newTestChat(asker)
	typeQuestion(chat, "carbon?")
	_, cmd := chat.Update(tea.KeyMsg{Type: tea.KeyEnter})
	require.NotNil(t, cmd)

	chat.Update(cmd())

	assert.Contains(t, chat.View(), "embedding service unavailable")
}

func TestChat_Update_MultipleExchanges(t *testing.T) {
	asker := &stubAsker{answer: &domain.Answer{Text: "first answer"}}
	chat := newTestChat(asker)

	typeQuestion(chat, "question one")
	_, cmd := chat.Update(tea.KeyMsg{Type: tea.KeyEnter})
	chat.Update(cmd())

	asker.answer = &domain.Answer{Text: "second answer"}
	typeQuestion(chat, "question two")
	_, cmd = chat.Update(tea.KeyMsg{Type: tea.KeyEnter})
	chat.Update(cmd())

	view := chat.View()
	assert.Contains(t, view, "first answer")
	assert.Contains(t, view, "second answer")
	assert.Equal(t, 2, strings.Count(view, "You: question"))
}
