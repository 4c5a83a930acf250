package embedding

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/rs/zerolog/log"
	"github.com/tmc/langchaingo/embeddings"
	"github.com/tmc/langchaingo/llms/googleai"
	"github.com/tmc/langchaingo/llms/ollama"
	"github.com/tmc/langchaingo/llms/openai"

	"pdf-rag/internal/config"
	"pdf-rag/internal/models"
)

var (
	ErrEmbeddingCount    = errors.New("embedding count does not match chunk count")
	ErrDimensionMismatch = errors.New("embedding dimension mismatch")
)

// NewEmbedder creates the embedder for the configured provider
func NewEmbedder(ctx context.Context, llmConfig *config.LLMConfig) (embeddings.Embedder, error) {
	log.Debug().Interface("config", map[string]string{
		"provider":        llmConfig.Provider,
		"base_url":        llmConfig.BaseURL,
		"embedding_model": llmConfig.Model,
	}).Msg("Creating embedder")

	var (
		client embeddings.EmbedderClient
		err    error
	)
	switch llmConfig.Provider {
	case config.ProviderGoogleAI, "":
		client, err = googleai.New(ctx,
			googleai.WithAPIKey(llmConfig.Key),
			googleai.WithDefaultEmbeddingModel(llmConfig.Model),
		)
	case config.ProviderOpenAI:
		opts := []openai.Option{
			openai.WithToken(strings.TrimPrefix(llmConfig.Key, "Bearer ")),
			openai.WithEmbeddingModel(llmConfig.Model),
		}
		if llmConfig.BaseURL != "" {
			opts = append(opts, openai.WithBaseURL(llmConfig.BaseURL))
		}
		client, err = openai.New(opts...)
	case config.ProviderOllama:
		opts := []ollama.Option{ollama.WithModel(llmConfig.Model)}
		if llmConfig.BaseURL != "" {
			opts = append(opts, ollama.WithServerURL(llmConfig.BaseURL))
		}
		client, err = ollama.New(opts...)
	default:
		return nil, fmt.Errorf("%w: %s", config.ErrUnknownProvider, llmConfig.Provider)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to initialize %s client: %w", llmConfig.Provider, err)
	}

	embedder, err := embeddings.NewEmbedder(client)
	if err != nil {
		return nil, fmt.Errorf("failed to create embedder: %w", err)
	}
	return embedder, nil
}

// GenerateEmbedding embeds every chunk. The result is index-aligned with chunks.
func GenerateEmbedding(ctx context.Context, embedder embeddings.Embedder, chunks []models.Chunk) ([]models.ChunkEmbedding, error) {
	if len(chunks) == 0 {
		log.Info().Msg("No chunks to embed")
		return nil, nil
	}

	texts := make([]string, len(chunks))
	for i, chunk := range chunks {
		texts[i] = chunk.Content
	}

	vectors, err := embedder.EmbedDocuments(ctx, texts)
	if err != nil {
		return nil, fmt.Errorf("failed to embed chunks: %w", err)
	}
	if len(vectors) != len(chunks) {
		return nil, fmt.Errorf("%w: got %d for %d chunks", ErrEmbeddingCount, len(vectors), len(chunks))
	}

	dim := len(vectors[0])
	chunkEmbeddings := make([]models.ChunkEmbedding, len(chunks))
	for i, chunk := range chunks {
		if len(vectors[i]) == 0 || len(vectors[i]) != dim {
			return nil, fmt.Errorf("%w: chunk %d has %d dimensions, expected %d", ErrDimensionMismatch, i, len(vectors[i]), dim)
		}
		chunkEmbeddings[i] = models.ChunkEmbedding{
			Chunk:     chunk,
			Embedding: vectors[i],
		}
	}

	log.Debug().Int("chunks", len(chunks)).Int("dimension", dim).Msg("Generated embeddings")
	return chunkEmbeddings, nil
}
