package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// LoadRetrievalConfig reads the retrieval tuning file. The path can be
// overridden with RETRIEVAL_CONFIG_PATH; a missing file yields the defaults
// so that auxiliary binaries (MCP server, worker) run without one.
func LoadRetrievalConfig() (*RetrievalConfig, error) {
	path := os.Getenv("RETRIEVAL_CONFIG_PATH")
	if path == "" {
		path = "configs/retrieval.yaml"
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			cfg := DefaultRetrievalConfig()
			return &cfg, nil
		}
		return nil, err
	}

	var cfg RetrievalConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}

	applyDefaults(&cfg)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func DefaultRetrievalConfig() RetrievalConfig {
	cfg := RetrievalConfig{}
	applyDefaults(&cfg)
	return cfg
}

func applyDefaults(cfg *RetrievalConfig) {
	if cfg.Scoring.AcceptanceThreshold == 0 {
		cfg.Scoring.AcceptanceThreshold = 0.30
	}
	if cfg.Scoring.OverlapWeight == 0 {
		cfg.Scoring.OverlapWeight = 0.75
	}
	if cfg.Scoring.PhraseBonusWeight == 0 {
		cfg.Scoring.PhraseBonusWeight = 0.25
	}
	if cfg.Scoring.MaxContextChunks == 0 {
		cfg.Scoring.MaxContextChunks = 3
	}
	if cfg.Chunking.MaxChunkChars == 0 {
		cfg.Chunking.MaxChunkChars = 800
	}
	if cfg.Fallback.SearchConfidence == 0 {
		cfg.Fallback.SearchConfidence = 0.5
	}
	if cfg.Fallback.MaxSearchResults == 0 {
		cfg.Fallback.MaxSearchResults = 3
	}
	if cfg.Fallback.SearchTimeoutSeconds == 0 {
		cfg.Fallback.SearchTimeoutSeconds = 10
	}
	if cfg.Fallback.EnhanceTimeoutSeconds == 0 {
		cfg.Fallback.EnhanceTimeoutSeconds = 15
	}
}

func (c *RetrievalConfig) Validate() error {
	if c.Scoring.AcceptanceThreshold < 0 || c.Scoring.AcceptanceThreshold > 1 {
		return fmt.Errorf("acceptance_threshold must be in [0,1], got %f", c.Scoring.AcceptanceThreshold)
	}
	if c.Scoring.OverlapWeight <= 0 || c.Scoring.PhraseBonusWeight < 0 {
		return fmt.Errorf("scoring weights must be positive")
	}
	if c.Chunking.MaxChunkChars < 100 {
		return fmt.Errorf("max_chunk_chars too small: %d", c.Chunking.MaxChunkChars)
	}
	if c.Fallback.SearchConfidence < 0 || c.Fallback.SearchConfidence > 1 {
		return fmt.Errorf("search_confidence must be in [0,1], got %f", c.Fallback.SearchConfidence)
	}
	return nil
}
