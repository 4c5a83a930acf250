package tui

import (
	"context"
	"errors"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pdf-rag/internal/models"
	"pdf-rag/internal/rag"
)

type fakeAsker struct {
	answer    *models.Answer
	err       error
	questions []string
}

func (f *fakeAsker) Ask(_ context.Context, question string) (*models.Answer, error) {
	f.questions = append(f.questions, question)
	return f.answer, f.err
}

func sized(t *testing.T, m Model) Model {
	t.Helper()
	updated, _ := m.Update(tea.WindowSizeMsg{Width: 80, Height: 24})
	return updated.(Model)
}

func typeText(m Model, text string) Model {
	updated, _ := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(text)})
	return updated.(Model)
}

// runCmd executes cmd and returns the first answerMsg it yields.
func runCmd(t *testing.T, cmd tea.Cmd) answerMsg {
	t.Helper()
	require.NotNil(t, cmd)
	switch msg := cmd().(type) {
	case answerMsg:
		return msg
	case tea.BatchMsg:
		for _, c := range msg {
			if c == nil {
				continue
			}
			if am, ok := c().(answerMsg); ok {
				return am
			}
		}
	}
	t.Fatal("command produced no answer")
	return answerMsg{}
}

func TestModel_AskShowsAnswerAndPages(t *testing.T) {
	asker := &fakeAsker{answer: &models.Answer{Text: "Beta appears on page two.", CitedPages: []int{2}}}
	m := sized(t, New(context.Background(), asker, "report.pdf"))
	assert.Contains(t, m.View(), "No questions yet.")

	m = typeText(m, "What about Beta?")
	updated, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	m = updated.(Model)
	assert.True(t, m.busy)
	assert.Contains(t, m.View(), "Thinking...")

	updated, _ = m.Update(runCmd(t, cmd))
	m = updated.(Model)
	assert.False(t, m.busy)
	assert.Equal(t, []string{"What about Beta?"}, asker.questions)

	view := m.View()
	assert.Contains(t, view, "You: What about Beta?")
	assert.Contains(t, view, "Beta appears on page two.")
	assert.Contains(t, view, "Answer found on page(s): 2")
	assert.Contains(t, view, "report.pdf")
}

func TestModel_NoIndexWarning(t *testing.T) {
	asker := &fakeAsker{err: rag.ErrNoIndex}
	m := sized(t, New(context.Background(), asker, ""))

	m = typeText(m, "anything")
	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	updated, _ := m.Update(runCmd(t, cmd))

	assert.Contains(t, updated.View(), "Please upload and process a PDF first.")
}

func TestModel_Error(t *testing.T) {
	asker := &fakeAsker{err: errors.New("quota exceeded")}
	m := sized(t, New(context.Background(), asker, ""))

	m = typeText(m, "anything")
	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	updated, _ := m.Update(runCmd(t, cmd))

	assert.Contains(t, updated.View(), "Error: quota exceeded")
}

func TestModel_IgnoresEmptyAndBusy(t *testing.T) {
	asker := &fakeAsker{answer: &models.Answer{Text: "x"}}
	m := sized(t, New(context.Background(), asker, ""))

	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	assert.Nil(t, cmd, "empty question is not sent")

	m = typeText(m, "first")
	updated, _ := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	m = typeText(updated.(Model), "second")
	_, cmd = m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	assert.Nil(t, cmd, "no second question while one is in flight")
	assert.Empty(t, asker.questions)
}

func TestModel_Quit(t *testing.T) {
	m := New(context.Background(), &fakeAsker{}, "")
	assert.Equal(t, "Loading...", m.View())

	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyCtrlC})
	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())
}

func TestSummary(t *testing.T) {
	assert.Equal(t, "a.pdf, b.pdf", Summary([]string{"a.pdf", "b.pdf"}, nil))
	assert.Equal(t, "a.pdf (3 pages, 7 chunks)", Summary([]string{"a.pdf"}, &models.ProcessResult{Pages: 3, Chunks: 7}))
}
