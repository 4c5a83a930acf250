package llmservice

import (
	"context"
	"fmt"
	"strings"

	"github.com/rs/zerolog/log"
	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/googleai"
	"github.com/tmc/langchaingo/llms/ollama"
	"github.com/tmc/langchaingo/llms/openai"

	"pdf-rag/internal/config"
)

// NewModel creates the chat model for the configured provider
func NewModel(ctx context.Context, llmConfig *config.LLMConfig) (llms.Model, error) {
	log.Debug().Interface("llmConfig", map[string]any{
		"provider":    llmConfig.Provider,
		"base_url":    llmConfig.BaseURL,
		"model":       llmConfig.Model,
		"temperature": llmConfig.Temperature,
	}).Msg("Creating chat model")

	var (
		model llms.Model
		err   error
	)
	switch llmConfig.Provider {
	case config.ProviderGoogleAI, "":
		model, err = googleai.New(ctx,
			googleai.WithAPIKey(llmConfig.Key),
			googleai.WithDefaultModel(llmConfig.Model),
		)
	case config.ProviderOpenAI:
		opts := []openai.Option{
			openai.WithToken(strings.TrimPrefix(llmConfig.Key, "Bearer ")),
			openai.WithModel(llmConfig.Model),
		}
		if llmConfig.BaseURL != "" {
			opts = append(opts, openai.WithBaseURL(llmConfig.BaseURL))
		}
		model, err = openai.New(opts...)
	case config.ProviderOllama:
		opts := []ollama.Option{ollama.WithModel(llmConfig.Model)}
		if llmConfig.BaseURL != "" {
			opts = append(opts, ollama.WithServerURL(llmConfig.BaseURL))
		}
		model, err = ollama.New(opts...)
	default:
		return nil, fmt.Errorf("%w: %s", config.ErrUnknownProvider, llmConfig.Provider)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to initialize %s model: %w", llmConfig.Provider, err)
	}
	return model, nil
}
