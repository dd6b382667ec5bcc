package config

// RetrievalConfig holds the tuning constants of the retrieval engine. The
// acceptance threshold and weights are calibration values, not protocol
// guarantees, so they live in a config file rather than in code.
type RetrievalConfig struct {
	Scoring  ScoringConfig  `yaml:"scoring"`
	Chunking ChunkingConfig `yaml:"chunking"`
	Fallback FallbackConfig `yaml:"fallback"`
}

// ScoringConfig controls how candidate confidence is computed and cut off.
type ScoringConfig struct {
	// AcceptanceThreshold is the minimum confidence for a chunk to count as
	// a knowledge-base answer. Too low claims answers the KB doesn't have;
	// too high escalates to search unnecessarily.
	AcceptanceThreshold float64 `yaml:"acceptance_threshold"`
	OverlapWeight       float64 `yaml:"overlap_weight"`
	PhraseBonusWeight   float64 `yaml:"phrase_bonus_weight"`
	MaxContextChunks    int     `yaml:"max_context_chunks"`
}

type ChunkingConfig struct {
	MaxChunkChars int `yaml:"max_chunk_chars"`
}

// FallbackConfig controls the search and enhancement stages of the chain.
type FallbackConfig struct {
	// SearchConfidence is the nominal confidence reported for any answer
	// produced from web search results.
	SearchConfidence      float64 `yaml:"search_confidence"`
	MaxSearchResults      int     `yaml:"max_search_results"`
	SearchTimeoutSeconds  int     `yaml:"search_timeout_seconds"`
	EnhanceTimeoutSeconds int     `yaml:"enhance_timeout_seconds"`
}
