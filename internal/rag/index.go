package rag

import (
	"context"
	"fmt"

	"github.com/philippgille/chromem-go"
	"github.com/rs/zerolog/log"
	"github.com/tmc/langchaingo/embeddings"

	"pdf-rag/internal/chromemdb"
	"pdf-rag/internal/embedding"
	"pdf-rag/internal/models"
)

const collectionName = "pdf_chunks"

// Index is an in-memory similarity index over one batch of chunks. It is
// built once and never modified.
type Index struct {
	db       *chromemdb.VectorDBManager
	embedder embeddings.Embedder
	size     int
}

// BuildIndex embeds chunks and loads them into a fresh in-memory collection.
func BuildIndex(ctx context.Context, embedder embeddings.Embedder, chunks []models.Chunk) (*Index, error) {
	if len(chunks) == 0 {
		return nil, ErrNoText
	}

	chunkEmbeddings, err := embedding.GenerateEmbedding(ctx, embedder, chunks)
	if err != nil {
		return nil, err
	}

	embed := func(ctx context.Context, text string) ([]float32, error) {
		return embedder.EmbedQuery(ctx, text)
	}
	db, err := chromemdb.NewVectorDBManager(collectionName, embed)
	if err != nil {
		return nil, err
	}

	docs := make([]chromem.Document, len(chunkEmbeddings))
	for i, ce := range chunkEmbeddings {
		docs[i] = chromem.Document{
			ID:        fmt.Sprintf("chunk-%d", i),
			Content:   ce.Content,
			Metadata:  ce.Metadata(),
			Embedding: ce.Embedding,
		}
	}
	if err := db.CreateDocs(ctx, docs); err != nil {
		return nil, err
	}

	log.Info().Int("chunks", len(docs)).Msg("Built vector index")
	return &Index{db: db, embedder: embedder, size: len(docs)}, nil
}

// Len is the number of indexed chunks.
func (i *Index) Len() int {
	return i.size
}

// Query returns at most topK chunks most similar to question, in descending
// similarity order. Results with similarity not above minSimilarity are dropped.
func (i *Index) Query(ctx context.Context, question string, topK int, minSimilarity float32) ([]models.SearchResult, error) {
	if topK <= 0 {
		return nil, nil
	}

	queryEmbedding, err := i.embedder.EmbedQuery(ctx, question)
	if err != nil {
		return nil, fmt.Errorf("failed to embed question: %w", err)
	}

	results, err := i.db.SearchWithQueryOptions(ctx, chromem.QueryOptions{
		QueryEmbedding: queryEmbedding,
		NResults:       topK,
	})
	if err != nil {
		return nil, err
	}

	matches := make([]models.SearchResult, 0, len(results))
	for _, r := range results {
		if r.Similarity <= minSimilarity {
			continue
		}
		chunk, err := models.ChunkFromMetadata(r.Content, r.Metadata)
		if err != nil {
			return nil, fmt.Errorf("corrupt index entry %s: %w", r.ID, err)
		}
		matches = append(matches, models.SearchResult{Chunk: chunk, Similarity: r.Similarity})
	}

	log.Debug().
		Int("requested", topK).
		Int("returned", len(results)).
		Int("kept", len(matches)).
		Msg("Queried vector index")
	return matches, nil
}
