package history

import (
	"context"

	"github.com/askbridge/askbridge/internal/models"
)

// Stats describes the state of a history backend. It is an alias for
// models.HistoryStats so backend subpackages can return it without
// importing this package (which would create an import cycle with
// Connect).
type Stats = models.HistoryStats

// Store persists conversation history. The backend (Redis or a local JSON
// file) is chosen once at startup; callers never see which one they got
// beyond the Backend() label.
type Store interface {
	// Append records one entry at the end of its conversation.
	Append(ctx context.Context, entry models.HistoryEntry) error

	// Recent returns up to limit entries for the conversation in
	// chronological order, oldest first. A limit of 0 or less means all.
	Recent(ctx context.Context, conversationID string, limit int) ([]models.HistoryEntry, error)

	// Clear removes all entries for the conversation.
	Clear(ctx context.Context, conversationID string) error

	// Stats reports conversation and entry counts across the store.
	Stats(ctx context.Context) (Stats, error)

	// Backend names the storage in use, "redis" or "file".
	Backend() string
}
