package rag

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pdf-rag/internal/models"
	"pdf-rag/internal/testutil"
)

func TestGenerate_CitedPagesSortedUnique(t *testing.T) {
	model := &testutil.FakeModel{Reply: "answer"}
	g := NewGenerator(model, 0.3)

	results := []models.SearchResult{
		{Chunk: models.Chunk{Content: "third page text", PageNumber: 3}, Similarity: 0.9},
		{Chunk: models.Chunk{Content: "first page text", PageNumber: 1}, Similarity: 0.8},
		{Chunk: models.Chunk{Content: "more third page", PageNumber: 3}, Similarity: 0.7},
	}
	answer, err := g.Generate(context.Background(), "Which pages?", results)
	require.NoError(t, err)

	assert.Equal(t, []int{1, 3}, answer.CitedPages)
	assert.Equal(t, "Which pages?", answer.Question)
	assert.Equal(t, results, answer.Sources)

	prompt := model.LastPrompt()
	assert.Contains(t, prompt, "third page text\n\nfirst page text\n\nmore third page")
	assert.Contains(t, prompt, "### User Question:\nWhich pages?")
}

func TestGenerate_NoContext(t *testing.T) {
	model := &testutil.FakeModel{Reply: "I cannot tell from the context."}
	g := NewGenerator(model, 0.3)

	answer, err := g.Generate(context.Background(), "Anything?", nil)
	require.NoError(t, err)
	assert.Empty(t, answer.CitedPages)
	assert.Equal(t, "I cannot tell from the context.", answer.Text)
	assert.Equal(t, 1, model.Calls())
}
