package setup

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/askbridge/askbridge/internal/config"
	"github.com/askbridge/askbridge/internal/enhance"
	"github.com/askbridge/askbridge/internal/history"
	"github.com/askbridge/askbridge/internal/kb"
	"github.com/askbridge/askbridge/internal/llm"
	"github.com/askbridge/askbridge/internal/llm/bedrock"
	"github.com/askbridge/askbridge/internal/llm/gpt"
	"github.com/askbridge/askbridge/internal/orchestrator"
	"github.com/askbridge/askbridge/internal/scorer"
	"github.com/askbridge/askbridge/internal/search/duckduckgo"
	"github.com/rs/zerolog"
)

type Config struct {
	AWSRegion       string
	ClaudeModelID   string
	OpenAIKey       string
	OpenAIModelID   string
	DefaultProvider string
	RedisAddr       string
	RedisPassword   string
	HistoryFilePath string
	APIPort         string
}

type Dependencies struct {
	Resolver  *orchestrator.Resolver
	Store     *kb.Store
	History   history.Store
	Retrieval *config.RetrievalConfig
	Logger    *zerolog.Logger
}

func LoadConfig() *Config {
	return &Config{
		AWSRegion:       getEnv("AWS_REGION", "us-east-1"),
		ClaudeModelID:   getEnv("CLAUDE_MODEL_ID", ""),
		OpenAIKey:       getEnv("OPEN_AI_KEY", ""),
		OpenAIModelID:   getEnv("OPEN_AI_MODEL_ID", ""),
		DefaultProvider: getEnv("DEFAULT_LLM_PROVIDER", "bedrock"),
		RedisAddr:       getEnv("REDIS_ADDR", ""),
		RedisPassword:   getEnv("REDIS_PASSWORD", ""),
		HistoryFilePath: getEnv("HISTORY_FILE_PATH", "data/history.json"),
		APIPort:         getEnv("API_PORT", "18080"),
	}
}

func Wire(ctx context.Context, cfg *Config, logger *zerolog.Logger) (*Dependencies, error) {
	retrieval, err := config.LoadRetrievalConfig()
	if err != nil {
		return nil, fmt.Errorf("failed to load retrieval config: %w", err)
	}

	llmClient, err := createLLMClient(ctx, cfg.DefaultProvider, cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to create LLM client: %w", err)
	}

	store := kb.NewStore(retrieval.Chunking.MaxChunkChars, logger)

	searcher := duckduckgo.NewClient(
		time.Duration(retrieval.Fallback.SearchTimeoutSeconds)*time.Second,
		retrieval.Fallback.MaxSearchResults,
		logger,
	)

	enhancer := enhance.NewLLMEnhancer(
		llmClient,
		time.Duration(retrieval.Fallback.EnhanceTimeoutSeconds)*time.Second,
		logger,
	)

	resolver := orchestrator.NewResolver(
		store,
		scorer.New(retrieval.Scoring),
		searcher,
		enhancer,
		orchestrator.Config{
			SearchConfidence: retrieval.Fallback.SearchConfidence,
			MaxContextChunks: retrieval.Scoring.MaxContextChunks,
		},
		logger,
	)

	historyStore, err := history.Connect(ctx, history.Options{
		RedisAddr:     cfg.RedisAddr,
		RedisPassword: cfg.RedisPassword,
		FilePath:      cfg.HistoryFilePath,
	}, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to set up history store: %w", err)
	}

	return &Dependencies{
		Resolver:  resolver,
		Store:     store,
		History:   historyStore,
		Retrieval: retrieval,
		Logger:    logger,
	}, nil
}

func getEnv(key string, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		value = defaultValue
	}

	return value
}

func getEnvFloat(key string, defaultValue float64) float64 {
	valueStr := os.Getenv(key)
	value, err := strconv.ParseFloat(valueStr, 64)
	if err != nil {
		value = defaultValue
	}

	return value
}

func createLLMClient(ctx context.Context, provider string, cfg *Config) (llm.LLMClient, error) {
	switch provider {
	case "bedrock":
		return bedrock.NewClient(ctx, cfg.AWSRegion, cfg.ClaudeModelID)
	case "openai":
		return gpt.NewClient(cfg.OpenAIKey, cfg.OpenAIModelID)
	default:
		return bedrock.NewClient(ctx, cfg.AWSRegion, cfg.ClaudeModelID)
	}
}
