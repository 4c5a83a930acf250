package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"pdf-rag/internal/config"
	"pdf-rag/internal/embedding"
	"pdf-rag/internal/llmservice"
	"pdf-rag/internal/rag"
)

const defaultConfigFilePath = "./configs/config.yaml"

var configFilePath string

var rootCmd = &cobra.Command{
	Use:           "pdf-rag",
	Short:         "Chat with your PDF files",
	Long:          "Extracts text from PDF files, indexes it in memory and answers questions with a chat model, citing the pages used.",
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configFilePath, "config", defaultConfigFilePath, "path to the YAML config file")
	rootCmd.AddCommand(serveCmd, askCmd, chatCmd)
}

func main() {
	setupLogging(os.Stderr, config.LogConfig{Level: "info"})

	if err := rootCmd.Execute(); err != nil {
		log.Fatal().Err(err).Msg("Command failed")
	}
}

// setupLogging configures the global zerolog logger.
func setupLogging(w io.Writer, cfg config.LogConfig) {
	level, err := zerolog.ParseLevel(cfg.Level)
	if err != nil || cfg.Level == "" {
		level = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(level)
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix

	if cfg.Pretty == nil || *cfg.Pretty {
		log.Logger = zerolog.New(zerolog.ConsoleWriter{Out: w, TimeFormat: time.RFC3339}).
			With().Timestamp().Caller().Logger()
		return
	}
	log.Logger = zerolog.New(w).With().Timestamp().Caller().Logger()
}

// loadConfig reads the config file and applies its log settings.
func loadConfig() (*config.Config, error) {
	cfg, err := config.LoadConfig(configFilePath)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	setupLogging(os.Stderr, cfg.Log)
	log.Debug().Str("path", configFilePath).Msg("Loaded config")

	for _, llm := range []config.LLMConfig{cfg.EmbedLLM, cfg.InferenceLLM} {
		if llm.Provider != config.ProviderOllama && llm.Key == "" {
			log.Warn().Str("provider", llm.Provider).Str("env", llm.APIKeyEnv).Msg("No API key configured")
		}
	}
	return cfg, nil
}

func newPipeline(ctx context.Context, cfg *config.Config) (*rag.RAG, error) {
	embedder, err := embedding.NewEmbedder(ctx, &cfg.EmbedLLM)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize embedder: %w", err)
	}
	model, err := llmservice.NewModel(ctx, &cfg.InferenceLLM)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize chat model: %w", err)
	}
	return rag.NewRAG(embedder, model, cfg)
}
