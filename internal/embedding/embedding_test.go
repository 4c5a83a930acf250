package embedding

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pdf-rag/internal/config"
	"pdf-rag/internal/models"
	"pdf-rag/internal/testutil"
)

type staticEmbedder struct {
	vectors [][]float32
}

func (s staticEmbedder) EmbedDocuments(context.Context, []string) ([][]float32, error) {
	return s.vectors, nil
}

func (s staticEmbedder) EmbedQuery(context.Context, string) ([]float32, error) {
	return s.vectors[0], nil
}

func TestGenerateEmbedding(t *testing.T) {
	chunks := []models.Chunk{
		{Content: "alpha alpha", PageNumber: 1, ChunkID: 1},
		{Content: "beta", PageNumber: 2, ChunkID: 1},
	}
	embedder := &testutil.KeywordEmbedder{}

	got, err := GenerateEmbedding(context.Background(), embedder, chunks)
	require.NoError(t, err)
	require.Len(t, got, 2)

	for i := range chunks {
		assert.Equal(t, chunks[i], got[i].Chunk, "chunk %d stays aligned with its vector", i)
	}
	assert.Equal(t, float32(2), got[0].Embedding[0])
	assert.Equal(t, float32(1), got[1].Embedding[1])
	assert.Equal(t, 1, embedder.DocCalls)
}

func TestGenerateEmbedding_Empty(t *testing.T) {
	embedder := &testutil.KeywordEmbedder{}
	got, err := GenerateEmbedding(context.Background(), embedder, nil)
	require.NoError(t, err)
	assert.Nil(t, got)
	assert.Zero(t, embedder.Calls(), "no remote call for an empty batch")
}

func TestGenerateEmbedding_Errors(t *testing.T) {
	chunks := []models.Chunk{{Content: "a"}, {Content: "b"}}

	_, err := GenerateEmbedding(context.Background(), staticEmbedder{vectors: [][]float32{{1}}}, chunks)
	assert.ErrorIs(t, err, ErrEmbeddingCount)

	_, err = GenerateEmbedding(context.Background(), staticEmbedder{vectors: [][]float32{{1, 0}, {1}}}, chunks)
	assert.ErrorIs(t, err, ErrDimensionMismatch)

	remote := errors.New("quota exceeded")
	_, err = GenerateEmbedding(context.Background(), &testutil.KeywordEmbedder{Err: remote}, chunks)
	assert.ErrorIs(t, err, remote)
}

// TestNewEmbedder_Providers verifies offline-constructible providers build without network access.
func TestNewEmbedder_Providers(t *testing.T) {
	ctx := context.Background()

	e, err := NewEmbedder(ctx, &config.LLMConfig{
		Provider: config.ProviderOpenAI,
		BaseURL:  "http://127.0.0.1:1/v1",
		Model:    "text-embedding-3-small",
		Key:      "Bearer sk-test",
	})
	require.NoError(t, err)
	assert.NotNil(t, e)

	e, err = NewEmbedder(ctx, &config.LLMConfig{
		Provider: config.ProviderOllama,
		BaseURL:  "http://127.0.0.1:1",
		Model:    "nomic-embed-text",
	})
	require.NoError(t, err)
	assert.NotNil(t, e)

	_, err = NewEmbedder(ctx, &config.LLMConfig{Provider: "bedrock"})
	assert.ErrorIs(t, err, config.ErrUnknownProvider)
}
