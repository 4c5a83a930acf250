// Package tui is a terminal chat front end over one session.
package tui

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"pdf-rag/internal/models"
	"pdf-rag/internal/rag"
)

// Asker answers a question against already processed documents.
type Asker interface {
	Ask(ctx context.Context, question string) (*models.Answer, error)
}

type answerMsg struct {
	answer *models.Answer
	err    error
}

// Model is the Bubble Tea model for the chat screen.
type Model struct {
	ctx      context.Context
	asker    Asker
	input    textinput.Model
	viewport viewport.Model
	spinner  spinner.Model
	summary  string
	status   string
	history  []string
	busy     bool
	ready    bool
}

func New(ctx context.Context, asker Asker, summary string) Model {
	ti := textinput.New()
	ti.Prompt = "> "
	ti.Placeholder = "Ask a question from the PDF files"
	ti.Focus()
	ti.CharLimit = 0

	sp := spinner.New()
	sp.Spinner = spinner.Dot

	return Model{
		ctx:      ctx,
		asker:    asker,
		input:    ti,
		viewport: viewport.New(0, 0),
		spinner:  sp,
		summary:  summary,
		status:   "Type a question and press Enter.",
	}
}

func (m Model) Init() tea.Cmd { return textinput.Blink }

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.ready = true
		_, bh := transcriptStyle.GetFrameSize()
		_, qh := queryBoxStyle.GetFrameSize()
		reserved := 2 + 1 + qh + 1 // header, summary, status, input
		m.viewport.Width = max(20, msg.Width)
		m.viewport.Height = max(3, msg.Height-reserved-bh)
		m.refresh()
		return m, nil

	case tea.KeyMsg:
		if msg.Type == tea.KeyCtrlC || msg.Type == tea.KeyCtrlD || msg.Type == tea.KeyEsc {
			return m, tea.Quit
		}
		if msg.Type == tea.KeyEnter {
			q := strings.TrimSpace(m.input.Value())
			if q == "" || m.busy {
				return m, nil
			}
			m.busy = true
			m.status = "Thinking..."
			m.history = append(m.history, questionStyle.Render("You: "+q))
			m.input.Reset()
			m.refresh()
			return m, tea.Batch(m.ask(q), m.spinner.Tick)
		}

	case answerMsg:
		m.busy = false
		switch {
		case errors.Is(msg.err, rag.ErrNoIndex):
			m.status = warningStyle.Render(models.NoIndexWarning)
		case msg.err != nil:
			m.status = errorStyle.Render("Error: " + msg.err.Error())
		default:
			m.history = append(m.history, msg.answer.Text, pagesStyle.Render(msg.answer.PageNotice()))
			m.status = "Type a question and press Enter."
		}
		m.refresh()
		return m, nil

	case spinner.TickMsg:
		if !m.busy {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m Model) View() string {
	if !m.ready {
		return "Loading..."
	}
	header := headerStyle.Render("Chat with PDF")
	summary := summaryStyle.Render(m.summary)
	status := m.status
	if m.busy {
		status = m.spinner.View() + " " + status
	}
	return header + "\n" + summary + "\n" +
		transcriptStyle.Render(m.viewport.View()) + "\n" +
		queryBoxStyle.Render(m.input.View()) + "\n" + status
}

func (m Model) ask(question string) tea.Cmd {
	return func() tea.Msg {
		answer, err := m.asker.Ask(m.ctx, question)
		return answerMsg{answer: answer, err: err}
	}
}

func (m *Model) refresh() {
	if len(m.history) == 0 {
		m.viewport.SetContent("No questions yet.")
		return
	}
	m.viewport.SetContent(lipgloss.NewStyle().Width(m.viewport.Width).Render(strings.Join(m.history, "\n\n")))
	m.viewport.GotoBottom()
}

// Summary describes a processed batch for the header line.
func Summary(documents []string, result *models.ProcessResult) string {
	if result == nil {
		return strings.Join(documents, ", ")
	}
	return fmt.Sprintf("%s (%d pages, %d chunks)", strings.Join(documents, ", "), result.Pages, result.Chunks)
}

var (
	headerStyle     = lipgloss.NewStyle().Bold(true)
	summaryStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	transcriptStyle = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1)
	queryBoxStyle   = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1)
	questionStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("12")).Bold(true)
	pagesStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("8")).Italic(true)
	warningStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("11"))
	errorStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
)
