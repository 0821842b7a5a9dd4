// Package tui provides the interactive chat interface.
package tui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/custodia-labs/oceanus-cli/internal/core/domain"
	"github.com/custodia-labs/oceanus-cli/internal/core/ports/driving"
)

// Styles for the chat view.
var (
	titleStyle    = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("39"))
	questionStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("205"))
	answerStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("252"))
	sourceStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("241")).Italic(true)
	errorStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
	helpStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
)

// answerMsg carries an answer back into the update loop.
type answerMsg struct {
	question string
	answer   *domain.Answer
	err      error
}

// exchange is one question/answer pair in the transcript.
type exchange struct {
	question string
	answer   *domain.Answer
	err      error
}

// Chat is the bubbletea model for the interactive chat.
type Chat struct {
	asker    driving.AskService
	query    domain.Query
	ctx      context.Context
	input    textinput.Model
	viewport viewport.Model
	history  []exchange
	waiting  bool
	ready    bool
	width    int
	height   int
}

// NewChat creates the chat model. The query carries default retrieval
// parameters (max results, threshold, filters); its question is replaced
// per message.
func NewChat(asker driving.AskService, query domain.Query) *Chat {
	ti := textinput.New()
	ti.Placeholder = "Ask about the ingested documents..."
	ti.Focus()
	ti.CharLimit = 500

	return &Chat{
		asker:    asker,
		query:    query,
		ctx:      context.Background(),
		input:    ti,
		viewport: viewport.New(80, 20),
		width:    80,
		height:   24,
	}
}

// WithContext sets the context used for retrieval and generation.
func (c *Chat) WithContext(ctx context.Context) *Chat {
	c.ctx = ctx
	return c
}

// Init implements tea.Model.
func (c *Chat) Init() tea.Cmd {
	return textinput.Blink
}

// Update implements tea.Model.
func (c *Chat) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		c.width = msg.Width
		c.height = msg.Height
		c.viewport.Width = msg.Width
		c.viewport.Height = msg.Height - 4
		c.input.Width = msg.Width - 4
		c.ready = true
		c.refreshViewport()
		return c, nil

	case tea.KeyMsg:
		switch msg.Type {
		case tea.KeyCtrlC, tea.KeyEsc:
			return c, tea.Quit
		case tea.KeyEnter:
			question := strings.TrimSpace(c.input.Value())
			if question == "" || c.waiting {
				return c, nil
			}
			c.input.SetValue("")
			c.waiting = true
			c.history = append(c.history, exchange{question: question})
			c.refreshViewport()
			return c, c.ask(question)
		}

	case answerMsg:
		c.waiting = false
		// Fill in the pending exchange.
		for i := len(c.history) - 1; i >= 0; i-- {
			if c.history[i].question == msg.question && c.history[i].answer == nil && c.history[i].err == nil {
				c.history[i].answer = msg.answer
				c.history[i].err = msg.err
				break
			}
		}
		c.refreshViewport()
		return c, nil
	}

	var cmds []tea.Cmd
	var cmd tea.Cmd
	c.input, cmd = c.input.Update(msg)
	cmds = append(cmds, cmd)
	c.viewport, cmd = c.viewport.Update(msg)
	cmds = append(cmds, cmd)
	return c, tea.Batch(cmds...)
}

// ask runs the question through the ask service off the update loop.
func (c *Chat) ask(question string) tea.Cmd {
	query := c.query
	query.Question = question
	return func() tea.Msg {
		answer, err := c.asker.Ask(c.ctx, query)
		return answerMsg{question: question, answer: answer, err: err}
	}
}

// refreshViewport re-renders the transcript and scrolls to the bottom.
func (c *Chat) refreshViewport() {
	var b strings.Builder
	for _, ex := range c.history {
		b.WriteString(questionStyle.Render("You: "+ex.question) + "\n\n")
		switch {
		case ex.err != nil:
			b.WriteString(errorStyle.Render("Error: "+ex.err.Error()) + "\n")
		case ex.answer != nil:
			b.WriteString(answerStyle.Render(ex.answer.Text) + "\n")
			if len(ex.answer.Sources) > 0 {
				var sources []string
				for _, src := range ex.answer.Sources {
					sources = append(sources, fmt.Sprintf("%s (%.2f)", src.Filename, src.Score))
				}
				b.WriteString(sourceStyle.Render("Sources: "+strings.Join(sources, ", ")) + "\n")
			}
		default:
			b.WriteString(helpStyle.Render("Thinking...") + "\n")
		}
		b.WriteString("\n")
	}
	c.viewport.SetContent(b.String())
	c.viewport.GotoBottom()
}

// View implements tea.Model.
func (c *Chat) View() string {
	if !c.ready {
		return "Loading..."
	}

	header := titleStyle.Render("Oceanus Chat")
	help := helpStyle.Render("Enter to send · Esc to quit")
	return fmt.Sprintf("%s\n%s\n%s\n%s", header, c.viewport.View(), c.input.View(), help)
}
