package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadRetrievalConfig_MissingFileUsesDefaults(t *testing.T) {
	t.Setenv("RETRIEVAL_CONFIG_PATH", filepath.Join(t.TempDir(), "nope.yaml"))

	cfg, err := LoadRetrievalConfig()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.Scoring.AcceptanceThreshold != 0.30 {
		t.Errorf("threshold: %f, want 0.30", cfg.Scoring.AcceptanceThreshold)
	}
	if cfg.Chunking.MaxChunkChars != 800 {
		t.Errorf("max_chunk_chars: %d, want 800", cfg.Chunking.MaxChunkChars)
	}
	if cfg.Fallback.SearchConfidence != 0.5 {
		t.Errorf("search_confidence: %f, want 0.5", cfg.Fallback.SearchConfidence)
	}
}

func TestLoadRetrievalConfig_FileOverridesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "retrieval.yaml")
	content := []byte("scoring:\n  acceptance_threshold: 0.45\nfallback:\n  search_confidence: 0.6\n")
	if err := os.WriteFile(path, content, 0o644); err != nil {
		t.Fatal(err)
	}
	t.Setenv("RETRIEVAL_CONFIG_PATH", path)

	cfg, err := LoadRetrievalConfig()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.Scoring.AcceptanceThreshold != 0.45 {
		t.Errorf("threshold: %f, want 0.45", cfg.Scoring.AcceptanceThreshold)
	}
	if cfg.Fallback.SearchConfidence != 0.6 {
		t.Errorf("search_confidence: %f, want 0.6", cfg.Fallback.SearchConfidence)
	}
	// Untouched sections still get defaults.
	if cfg.Scoring.OverlapWeight != 0.75 {
		t.Errorf("overlap_weight: %f, want default 0.75", cfg.Scoring.OverlapWeight)
	}
}

func TestLoadRetrievalConfig_RejectsInvalidValues(t *testing.T) {
	path := filepath.Join(t.TempDir(), "retrieval.yaml")
	content := []byte("scoring:\n  acceptance_threshold: 1.7\n")
	if err := os.WriteFile(path, content, 0o644); err != nil {
		t.Fatal(err)
	}
	t.Setenv("RETRIEVAL_CONFIG_PATH", path)

	if _, err := LoadRetrievalConfig(); err == nil {
		t.Error("expected validation error for threshold > 1")
	}
}
