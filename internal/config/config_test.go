package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestLoadConfig_MissingFile verifies defaults are returned when no file exists.
func TestLoadConfig_MissingFile(t *testing.T) {
	t.Setenv("GOOGLE_API_KEY", "test-key")

	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "missing.yaml"))
	require.NoError(t, err)

	assert.Equal(t, ProviderGoogleAI, cfg.EmbedLLM.Provider)
	assert.Equal(t, "models/embedding-001", cfg.EmbedLLM.Model)
	assert.Equal(t, "gemini-pro", cfg.InferenceLLM.Model)
	assert.Equal(t, "test-key", cfg.EmbedLLM.Key)
	assert.Equal(t, "test-key", cfg.InferenceLLM.Key)
	assert.InDelta(t, 0.3, cfg.InferenceLLM.Temperature, 1e-9)
	assert.Equal(t, 1000, cfg.RAG.ChunkSize)
	assert.Equal(t, 100, cfg.RAG.ChunkOverlap)
	assert.Equal(t, StrategyRecursive, cfg.RAG.ChunkStrategy)
	assert.Equal(t, 2, cfg.RAG.TopK)
	assert.Equal(t, 30*time.Minute, cfg.Server.SessionTTL)
	require.NotNil(t, cfg.Log.Pretty)
	assert.True(t, *cfg.Log.Pretty)
}

// TestLoadConfig_Overrides verifies YAML values win over defaults.
func TestLoadConfig_Overrides(t *testing.T) {
	t.Setenv("MY_KEY", "from-env")

	path := filepath.Join(t.TempDir(), "config.yaml")
	content := `
embed_llm:
  provider: OpenAI
  base_url: http://localhost:1234/v1
  model: text-embedding-3-small
  api_key_env: MY_KEY
inference_llm:
  provider: ollama
  model: llama3
  key: inline
rag:
  chunk_size: 500
  chunk_overlap: 50
  chunk_strategy: window
  top_k: 4
server:
  session_ttl: 5m
log:
  pretty: false
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, ProviderOpenAI, cfg.EmbedLLM.Provider)
	assert.Equal(t, "from-env", cfg.EmbedLLM.Key)
	assert.Equal(t, ProviderOllama, cfg.InferenceLLM.Provider)
	assert.Equal(t, "inline", cfg.InferenceLLM.Key)
	assert.Equal(t, 500, cfg.RAG.ChunkSize)
	assert.Equal(t, 50, cfg.RAG.ChunkOverlap)
	assert.Equal(t, StrategyWindow, cfg.RAG.ChunkStrategy)
	assert.Equal(t, 4, cfg.RAG.TopK)
	assert.Equal(t, 5*time.Minute, cfg.Server.SessionTTL)
	assert.False(t, *cfg.Log.Pretty)
}

// TestLoadConfig_ExplicitZero verifies zero is kept where it is a valid setting.
func TestLoadConfig_ExplicitZero(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	content := "inference_llm:\n  temperature: 0\nrag:\n  chunk_overlap: 0\n  chunk_size: 800\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Zero(t, cfg.InferenceLLM.Temperature)
	assert.Zero(t, cfg.RAG.ChunkOverlap)
	assert.Equal(t, 800, cfg.RAG.ChunkSize)
	assert.Equal(t, "gemini-pro", cfg.InferenceLLM.Model)
}

func TestDefault(t *testing.T) {
	cfg := Default()
	assert.InDelta(t, 0.3, cfg.InferenceLLM.Temperature, 1e-9)
	assert.Equal(t, 100, cfg.RAG.ChunkOverlap)
	assert.NoError(t, cfg.Validate())
}

func TestLoadConfig_Invalid(t *testing.T) {
	dir := t.TempDir()

	tests := []struct {
		name    string
		content string
	}{
		{"unknown provider", "embed_llm:\n  provider: nope\n"},
		{"unknown strategy", "rag:\n  chunk_strategy: semantic\n"},
		{"overlap too large", "rag:\n  chunk_size: 100\n  chunk_overlap: 100\n"},
		{"negative overlap", "rag:\n  chunk_overlap: -1\n"},
		{"negative temperature", "inference_llm:\n  temperature: -0.5\n"},
		{"bad yaml", "rag: [\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(dir, tt.name+".yaml")
			require.NoError(t, os.WriteFile(path, []byte(tt.content), 0o644))
			_, err := LoadConfig(path)
			assert.Error(t, err)
		})
	}
}

func TestLoadConfig_UnknownProviderSentinel(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("inference_llm:\n  provider: bedrock\n"), 0o644))

	_, err := LoadConfig(path)
	assert.ErrorIs(t, err, ErrUnknownProvider)
}
