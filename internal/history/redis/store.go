package redis

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/askbridge/askbridge/internal/models"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
)

const (
	historyKeyPrefix = "history:"
	conversationsKey = "history:conversations"
)

// Store keeps each conversation as a Redis list of JSON entries, with a
// set tracking known conversation IDs for stats.
type Store struct {
	client *redis.Client
	logger *zerolog.Logger
}

func NewStore(client *redis.Client, logger *zerolog.Logger) *Store {
	return &Store{client: client, logger: logger}
}

func historyKey(conversationID string) string {
	return historyKeyPrefix + conversationID
}

func (s *Store) Append(ctx context.Context, entry models.HistoryEntry) error {
	payload, err := json.Marshal(entry)
	if err != nil {
		return fmt.Errorf("marshal history entry: %w", err)
	}

	pipe := s.client.TxPipeline()
	pipe.RPush(ctx, historyKey(entry.ConversationID), payload)
	pipe.SAdd(ctx, conversationsKey, entry.ConversationID)
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("append history entry: %w", err)
	}

	return nil
}

func (s *Store) Recent(ctx context.Context, conversationID string, limit int) ([]models.HistoryEntry, error) {
	start := int64(0)
	if limit > 0 {
		start = int64(-limit)
	}

	raw, err := s.client.LRange(ctx, historyKey(conversationID), start, -1).Result()
	if err != nil {
		return nil, fmt.Errorf("read history: %w", err)
	}

	entries := make([]models.HistoryEntry, 0, len(raw))
	for _, item := range raw {
		var entry models.HistoryEntry
		if err := json.Unmarshal([]byte(item), &entry); err != nil {
			s.logger.Warn().Err(err).Str("conversation_id", conversationID).Msg("skipping malformed history entry")
			continue
		}
		entries = append(entries, entry)
	}

	return entries, nil
}

func (s *Store) Clear(ctx context.Context, conversationID string) error {
	pipe := s.client.TxPipeline()
	pipe.Del(ctx, historyKey(conversationID))
	pipe.SRem(ctx, conversationsKey, conversationID)
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("clear history: %w", err)
	}
	return nil
}

func (s *Store) Stats(ctx context.Context) (models.HistoryStats, error) {
	ids, err := s.client.SMembers(ctx, conversationsKey).Result()
	if err != nil {
		return models.HistoryStats{}, fmt.Errorf("list conversations: %w", err)
	}

	total := 0
	for _, id := range ids {
		n, err := s.client.LLen(ctx, historyKey(id)).Result()
		if err != nil {
			return models.HistoryStats{}, fmt.Errorf("count entries for %s: %w", id, err)
		}
		total += int(n)
	}

	return models.HistoryStats{Conversations: len(ids), Entries: total}, nil
}

func (s *Store) Backend() string {
	return "redis"
}
