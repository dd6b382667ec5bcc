package kb

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"sync"
	"time"

	"github.com/askbridge/askbridge/internal/models"
	"github.com/rs/zerolog"
)

// Store is the in-memory document store: an arena of chunks indexed by
// content hash. The insert path holds the write lock, which guarantees
// at-most-one successful insert per hash under concurrent ingestion; reads
// return snapshots and never observe a partial write.
type Store struct {
	mu       sync.RWMutex
	byHash   map[string]models.DocumentChunk
	order    []string
	sources  map[string]struct{}
	maxChars int
	logger   *zerolog.Logger
}

// IngestResult reports the chunk-wise outcome of one document ingestion.
type IngestResult struct {
	ChunkIDs        []string
	StoredChunks    int
	DuplicateChunks int
}

// Stats is a point-in-time summary of the store.
type Stats struct {
	TotalChunks  int `json:"total_chunks"`
	TotalSources int `json:"total_sources"`
}

func NewStore(maxChunkChars int, logger *zerolog.Logger) *Store {
	return &Store{
		byHash:   make(map[string]models.DocumentChunk),
		sources:  make(map[string]struct{}),
		maxChars: maxChunkChars,
		logger:   logger,
	}
}

// Ingest splits content into chunks and stores each one, deduplicating by
// normalized-content hash. Re-ingesting identical content is a no-op
// reported through DuplicateChunks; it is not an error. Content that
// normalizes to nothing is rejected with models.ErrInvalidInput.
func (s *Store) Ingest(content string, sourceName string) (IngestResult, error) {
	chunks := SplitChunks(content, s.maxChars)
	if len(chunks) == 0 {
		return IngestResult{}, fmt.Errorf("%w: document %q is empty after normalization", models.ErrInvalidInput, sourceName)
	}

	result := IngestResult{}
	now := time.Now()

	s.mu.Lock()
	for _, chunk := range chunks {
		hash := contentHash(chunk)
		result.ChunkIDs = append(result.ChunkIDs, hash)

		if _, exists := s.byHash[hash]; exists {
			result.DuplicateChunks++
			continue
		}

		s.byHash[hash] = models.DocumentChunk{
			ID:         hash,
			Content:    chunk,
			SourceName: sourceName,
			CreatedAt:  now,
		}
		s.order = append(s.order, hash)
		s.sources[sourceName] = struct{}{}
		result.StoredChunks++
	}
	s.mu.Unlock()

	s.logger.Debug().
		Str("source", sourceName).
		Int("stored", result.StoredChunks).
		Int("duplicates", result.DuplicateChunks).
		Msg("document ingested")

	return result, nil
}

// AllChunks returns a snapshot of every stored chunk in insertion order.
func (s *Store) AllChunks() []models.DocumentChunk {
	s.mu.RLock()
	defer s.mu.RUnlock()

	chunks := make([]models.DocumentChunk, 0, len(s.order))
	for _, hash := range s.order {
		chunks = append(chunks, s.byHash[hash])
	}
	return chunks
}

func (s *Store) Stats() Stats {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return Stats{
		TotalChunks:  len(s.byHash),
		TotalSources: len(s.sources),
	}
}

func contentHash(normalized string) string {
	sum := sha256.Sum256([]byte(normalized))
	return hex.EncodeToString(sum[:])
}
