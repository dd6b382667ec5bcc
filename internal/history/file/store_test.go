package file

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/askbridge/askbridge/internal/models"
	"github.com/rs/zerolog"
)

func newTestStore(t *testing.T) (*Store, string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "history.json")
	logger := zerolog.Nop()
	s, err := NewStore(path, &logger)
	if err != nil {
		t.Fatalf("NewStore: %v", err)
	}
	return s, path
}

func entry(conversationID, sender, message string, at time.Time) models.HistoryEntry {
	return models.HistoryEntry{
		ID:             sender + "-" + message,
		ConversationID: conversationID,
		Sender:         models.Sender(sender),
		Message:        message,
		Timestamp:      at,
	}
}

func TestStore_AppendAndRecentKeepOrder(t *testing.T) {
	s, _ := newTestStore(t)
	ctx := context.Background()
	base := time.Date(2026, 2, 1, 10, 0, 0, 0, time.UTC)

	for i, msg := range []string{"hi", "hello", "what is go", "a language"} {
		sender := "user"
		if i%2 == 1 {
			sender = "assistant"
		}
		if err := s.Append(ctx, entry("c1", sender, msg, base.Add(time.Duration(i)*time.Second))); err != nil {
			t.Fatalf("Append: %v", err)
		}
	}

	all, err := s.Recent(ctx, "c1", 0)
	if err != nil {
		t.Fatalf("Recent: %v", err)
	}
	if len(all) != 4 {
		t.Fatalf("entries: %d, want 4", len(all))
	}
	if all[0].Message != "hi" || all[3].Message != "a language" {
		t.Errorf("order wrong: first %q, last %q", all[0].Message, all[3].Message)
	}

	last, err := s.Recent(ctx, "c1", 2)
	if err != nil {
		t.Fatalf("Recent limited: %v", err)
	}
	if len(last) != 2 || last[0].Message != "what is go" || last[1].Message != "a language" {
		t.Errorf("limited window wrong: %+v", last)
	}
}

func TestStore_SurvivesReload(t *testing.T) {
	s, path := newTestStore(t)
	ctx := context.Background()

	if err := s.Append(ctx, entry("c1", "user", "hi", time.Now())); err != nil {
		t.Fatalf("Append: %v", err)
	}

	logger := zerolog.Nop()
	reloaded, err := NewStore(path, &logger)
	if err != nil {
		t.Fatalf("reload: %v", err)
	}

	entries, err := reloaded.Recent(ctx, "c1", 0)
	if err != nil {
		t.Fatalf("Recent: %v", err)
	}
	if len(entries) != 1 || entries[0].Message != "hi" {
		t.Errorf("reloaded entries: %+v", entries)
	}
}

func TestStore_ClearAndStats(t *testing.T) {
	s, _ := newTestStore(t)
	ctx := context.Background()

	s.Append(ctx, entry("c1", "user", "one", time.Now()))
	s.Append(ctx, entry("c1", "assistant", "two", time.Now()))
	s.Append(ctx, entry("c2", "user", "three", time.Now()))

	stats, err := s.Stats(ctx)
	if err != nil {
		t.Fatalf("Stats: %v", err)
	}
	if stats.Conversations != 2 || stats.Entries != 3 {
		t.Errorf("stats: %+v", stats)
	}

	if err := s.Clear(ctx, "c1"); err != nil {
		t.Fatalf("Clear: %v", err)
	}
	stats, _ = s.Stats(ctx)
	if stats.Conversations != 1 || stats.Entries != 1 {
		t.Errorf("stats after clear: %+v", stats)
	}

	// Clearing an unknown conversation is a no-op.
	if err := s.Clear(ctx, "missing"); err != nil {
		t.Errorf("Clear missing: %v", err)
	}
}

func TestStore_CorruptFileStartsEmpty(t *testing.T) {
	path := filepath.Join(t.TempDir(), "history.json")
	if err := os.WriteFile(path, []byte("{not json"), 0o644); err != nil {
		t.Fatal(err)
	}

	logger := zerolog.Nop()
	s, err := NewStore(path, &logger)
	if err != nil {
		t.Fatalf("NewStore on corrupt file: %v", err)
	}

	stats, _ := s.Stats(context.Background())
	if stats.Entries != 0 {
		t.Errorf("expected empty store, got %+v", stats)
	}
}
