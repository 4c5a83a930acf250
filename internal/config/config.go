package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

const (
	ProviderGoogleAI = "googleai"
	ProviderOpenAI   = "openai"
	ProviderOllama   = "ollama"

	StrategyRecursive = "recursive"
	StrategyWindow    = "window"

	defaultAPIKeyEnv      = "GOOGLE_API_KEY"
	defaultEmbeddingModel = "models/embedding-001"
	defaultInferenceModel = "gemini-pro"
	defaultTemperature    = 0.3
	defaultChunkSize      = 1000 // characters
	defaultChunkOverlap   = 100  // characters
	defaultTopK           = 2
	defaultAddr           = ":8501"
	defaultMaxUploadMB    = 32
	defaultSessionTTL     = 30 * time.Minute
	defaultLogLevel       = "info"
)

var ErrUnknownProvider = errors.New("unknown llm provider")

type LLMConfig struct {
	Provider    string  `yaml:"provider"`
	BaseURL     string  `yaml:"base_url"`
	Model       string  `yaml:"model"`
	Key         string  `yaml:"key"`
	APIKeyEnv   string  `yaml:"api_key_env"`
	Temperature float64 `yaml:"temperature"`
}

type RAGConfig struct {
	ChunkSize     int     `yaml:"chunk_size"`
	ChunkOverlap  int     `yaml:"chunk_overlap"`
	ChunkStrategy string  `yaml:"chunk_strategy"`
	TopK          int     `yaml:"top_k"`
	MinSimilarity float32 `yaml:"min_similarity"`
}

type ServerConfig struct {
	Addr        string        `yaml:"addr"`
	MaxUploadMB int64         `yaml:"max_upload_mb"`
	SessionTTL  time.Duration `yaml:"session_ttl"`
}

type LogConfig struct {
	Level  string `yaml:"level"`
	Pretty *bool  `yaml:"pretty"`
}

type Config struct {
	EmbedLLM     LLMConfig    `yaml:"embed_llm"`
	InferenceLLM LLMConfig    `yaml:"inference_llm"`
	RAG          RAGConfig    `yaml:"rag"`
	Server       ServerConfig `yaml:"server"`
	Log          LogConfig    `yaml:"log"`
}

// LoadConfig reads the YAML file at path. A missing file is not an error:
// defaults are used instead. API keys are resolved from the environment
// (a .env file in the working directory is loaded first) when not set in the file.
func LoadConfig(path string) (*Config, error) {
	_ = godotenv.Load()

	cfg := newConfig()
	data, err := os.ReadFile(path)
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}
	if err == nil {
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config %s: %w", path, err)
		}
	}

	ApplyDefaults(cfg)
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// newConfig presets the settings for which zero is a valid choice. YAML
// decoding only overwrites keys present in the file.
func newConfig() *Config {
	return &Config{
		InferenceLLM: LLMConfig{Temperature: defaultTemperature},
		RAG:          RAGConfig{ChunkOverlap: defaultChunkOverlap},
	}
}

// Default returns a config populated with defaults only.
func Default() *Config {
	cfg := newConfig()
	ApplyDefaults(cfg)
	return cfg
}

func ApplyDefaults(cfg *Config) {
	applyLLMDefaults(&cfg.EmbedLLM, defaultEmbeddingModel)
	applyLLMDefaults(&cfg.InferenceLLM, defaultInferenceModel)

	if cfg.RAG.ChunkSize <= 0 {
		cfg.RAG.ChunkSize = defaultChunkSize
	}
	if cfg.RAG.ChunkStrategy == "" {
		cfg.RAG.ChunkStrategy = StrategyRecursive
	}
	if cfg.RAG.TopK <= 0 {
		cfg.RAG.TopK = defaultTopK
	}

	if cfg.Server.Addr == "" {
		cfg.Server.Addr = defaultAddr
	}
	if cfg.Server.MaxUploadMB <= 0 {
		cfg.Server.MaxUploadMB = defaultMaxUploadMB
	}
	if cfg.Server.SessionTTL <= 0 {
		cfg.Server.SessionTTL = defaultSessionTTL
	}

	if cfg.Log.Level == "" {
		cfg.Log.Level = defaultLogLevel
	}
	if cfg.Log.Pretty == nil {
		pretty := true
		cfg.Log.Pretty = &pretty
	}
}

func applyLLMDefaults(c *LLMConfig, model string) {
	if c.Provider == "" {
		c.Provider = ProviderGoogleAI
	}
	c.Provider = strings.ToLower(c.Provider)
	if c.Model == "" {
		c.Model = model
	}
	if c.APIKeyEnv == "" {
		c.APIKeyEnv = defaultAPIKeyEnv
	}
	if c.Key == "" {
		c.Key = os.Getenv(c.APIKeyEnv)
	}
}

func (c *Config) Validate() error {
	for _, llm := range []LLMConfig{c.EmbedLLM, c.InferenceLLM} {
		switch llm.Provider {
		case ProviderGoogleAI, ProviderOpenAI, ProviderOllama:
		default:
			return fmt.Errorf("%w: %s", ErrUnknownProvider, llm.Provider)
		}
	}
	switch c.RAG.ChunkStrategy {
	case StrategyRecursive, StrategyWindow:
	default:
		return fmt.Errorf("unknown chunk strategy: %s", c.RAG.ChunkStrategy)
	}
	if c.InferenceLLM.Temperature < 0 {
		return fmt.Errorf("temperature must not be negative: %v", c.InferenceLLM.Temperature)
	}
	if c.RAG.ChunkOverlap < 0 {
		return fmt.Errorf("chunk overlap must not be negative: %d", c.RAG.ChunkOverlap)
	}
	if c.RAG.ChunkOverlap >= c.RAG.ChunkSize {
		return fmt.Errorf("chunk overlap (%d) must be smaller than chunk size (%d)", c.RAG.ChunkOverlap, c.RAG.ChunkSize)
	}
	return nil
}
