package llmservice

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pdf-rag/internal/config"
)

func TestNewModel(t *testing.T) {
	ctx := context.Background()

	m, err := NewModel(ctx, &config.LLMConfig{
		Provider: config.ProviderOpenAI,
		BaseURL:  "http://127.0.0.1:1/v1",
		Model:    "gpt-4o-mini",
		Key:      "sk-test",
	})
	require.NoError(t, err)
	assert.NotNil(t, m)

	m, err = NewModel(ctx, &config.LLMConfig{Provider: config.ProviderOllama, Model: "llama3"})
	require.NoError(t, err)
	assert.NotNil(t, m)

	_, err = NewModel(ctx, &config.LLMConfig{Provider: "bedrock"})
	assert.ErrorIs(t, err, config.ErrUnknownProvider)
}
