package rag

import (
	"context"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/tmc/langchaingo/embeddings"
	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/textsplitter"

	"pdf-rag/internal/config"
	"pdf-rag/internal/models"
	"pdf-rag/internal/parser"
)

// RAG wires extraction, chunking, indexing and generation together. It keeps
// no index of its own; callers own the *Index returned by Process.
type RAG struct {
	embedder  embeddings.Embedder
	splitter  textsplitter.TextSplitter
	generator *Generator
	cfg       *config.Config
}

func NewRAG(embedder embeddings.Embedder, model llms.Model, cfg *config.Config) (*RAG, error) {
	splitter, err := parser.NewSplitter(cfg.RAG)
	if err != nil {
		return nil, err
	}
	return &RAG{
		embedder:  embedder,
		splitter:  splitter,
		generator: NewGenerator(model, cfg.InferenceLLM.Temperature),
		cfg:       cfg,
	}, nil
}

// Process extracts, chunks and embeds uploads into a new index.
func (r *RAG) Process(ctx context.Context, uploads []parser.Upload) (*Index, *models.ProcessResult, error) {
	if len(uploads) == 0 {
		return nil, nil, ErrNoDocuments
	}
	start := time.Now()

	pages, err := parser.ExtractPages(uploads)
	if err != nil {
		return nil, nil, err
	}
	if len(pages) == 0 {
		return nil, nil, ErrNoText
	}

	chunks, err := parser.GetChunks(pages, r.splitter)
	if err != nil {
		return nil, nil, err
	}

	index, err := BuildIndex(ctx, r.embedder, chunks)
	if err != nil {
		return nil, nil, err
	}

	result := &models.ProcessResult{
		Documents: len(uploads),
		Pages:     len(pages),
		Chunks:    len(chunks),
		Duration:  time.Since(start),
	}
	log.Info().
		Int("documents", result.Documents).
		Int("pages", result.Pages).
		Int("chunks", result.Chunks).
		Dur("duration", result.Duration).
		Msg(models.ProcessCompleteNotice)
	return index, result, nil
}

// Ask retrieves the top chunks for question from index and generates an answer.
func (r *RAG) Ask(ctx context.Context, index *Index, question string) (*models.Answer, error) {
	if index == nil {
		return nil, ErrNoIndex
	}
	question = strings.TrimSpace(question)
	if question == "" {
		return nil, ErrEmptyQuestion
	}

	results, err := index.Query(ctx, question, r.cfg.RAG.TopK, r.cfg.RAG.MinSimilarity)
	if err != nil {
		return nil, err
	}
	return r.generator.Generate(ctx, question, results)
}
