package file

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/askbridge/askbridge/internal/models"
	"github.com/rs/zerolog"
)

// Store persists history in a single JSON file keyed by conversation ID.
// It is the fallback backend when Redis is unreachable at startup. Every
// write rewrites the whole file.
type Store struct {
	mu     sync.Mutex
	path   string
	data   map[string][]models.HistoryEntry
	logger *zerolog.Logger
}

func NewStore(path string, logger *zerolog.Logger) (*Store, error) {
	s := &Store{
		path:   path,
		data:   make(map[string][]models.HistoryEntry),
		logger: logger,
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		if !os.IsNotExist(err) {
			return nil, fmt.Errorf("read history file: %w", err)
		}
		return s, nil
	}

	if err := json.Unmarshal(raw, &s.data); err != nil {
		// Corrupt file: start empty, the next write replaces it.
		logger.Warn().Err(err).Str("path", path).Msg("history file unreadable, starting empty")
		s.data = make(map[string][]models.HistoryEntry)
	}

	return s, nil
}

func (s *Store) Append(_ context.Context, entry models.HistoryEntry) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.data[entry.ConversationID] = append(s.data[entry.ConversationID], entry)
	return s.flushLocked()
}

func (s *Store) Recent(_ context.Context, conversationID string, limit int) ([]models.HistoryEntry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	entries := s.data[conversationID]
	if limit > 0 && len(entries) > limit {
		entries = entries[len(entries)-limit:]
	}

	out := make([]models.HistoryEntry, len(entries))
	copy(out, entries)
	return out, nil
}

func (s *Store) Clear(_ context.Context, conversationID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.data[conversationID]; !ok {
		return nil
	}
	delete(s.data, conversationID)
	return s.flushLocked()
}

func (s *Store) Stats(_ context.Context) (models.HistoryStats, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	total := 0
	for _, entries := range s.data {
		total += len(entries)
	}
	return models.HistoryStats{Conversations: len(s.data), Entries: total}, nil
}

func (s *Store) Backend() string {
	return "file"
}

// flushLocked writes through a temp file so a crash mid-write cannot leave
// a truncated history file. Caller holds s.mu.
func (s *Store) flushLocked() error {
	raw, err := json.MarshalIndent(s.data, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal history: %w", err)
	}

	if dir := filepath.Dir(s.path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create history dir: %w", err)
		}
	}

	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, raw, 0o644); err != nil {
		return fmt.Errorf("write history file: %w", err)
	}
	if err := os.Rename(tmp, s.path); err != nil {
		return fmt.Errorf("replace history file: %w", err)
	}

	return nil
}
