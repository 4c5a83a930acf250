package rag

import (
	"context"
	"fmt"
	"strings"

	"github.com/rs/zerolog/log"
	"github.com/tmc/langchaingo/chains"
	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/prompts"
	"github.com/tmc/langchaingo/schema"

	"pdf-rag/internal/models"
)

// Generator turns retrieved chunks and a question into an Answer with a
// single chat completion. It holds no per-question state.
type Generator struct {
	chain       chains.Chain
	temperature float64
}

func NewGenerator(model llms.Model, temperature float64) *Generator {
	prompt := prompts.NewPromptTemplate(models.AnalystPromptTemplate, []string{"context", "question"})
	return &Generator{
		chain:       chains.NewStuffDocuments(chains.NewLLMChain(model, prompt)),
		temperature: temperature,
	}
}

// Generate asks the model to answer question from results. CitedPages is
// derived from results, never from the model output.
func (g *Generator) Generate(ctx context.Context, question string, results []models.SearchResult) (*models.Answer, error) {
	docs := make([]schema.Document, len(results))
	chunks := make([]models.Chunk, len(results))
	for i, r := range results {
		chunks[i] = r.Chunk
		docs[i] = schema.Document{
			PageContent: r.Content,
			Score:       r.Similarity,
			Metadata: map[string]any{
				models.MetadataKeyPage:   r.PageNumber,
				models.MetadataKeySource: r.Source,
			},
		}
	}

	out, err := chains.Call(ctx, g.chain, map[string]any{
		"input_documents": docs,
		"question":        question,
	}, chains.WithTemperature(g.temperature))
	if err != nil {
		return nil, fmt.Errorf("failed to generate answer: %w", err)
	}

	text, ok := out["text"].(string)
	if !ok {
		return nil, fmt.Errorf("failed to generate answer: unexpected chain output %T", out["text"])
	}

	answer := &models.Answer{
		Question:   question,
		Text:       strings.TrimSpace(text),
		CitedPages: models.CitedPages(chunks),
		Sources:    results,
	}
	log.Debug().Ints("pages", answer.CitedPages).Int("chars", len(answer.Text)).Msg("Generated answer")
	return answer, nil
}
