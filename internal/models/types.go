package models

import (
	"time"
)

// Source identifies which stage of the fallback chain produced an answer.
type Source string

const (
	SourceKnowledgeBase Source = "knowledge_base"
	SourceSearch        Source = "search"
	SourceAIDirect      Source = "ai_direct"
	SourceNone          Source = "none"
)

type Sender string

const (
	SenderUser      Sender = "user"
	SenderAssistant Sender = "assistant"
)

// DocumentChunk is one stored unit of ingested text. Immutable once stored;
// the ID is the hash of the normalized content, so identical content maps to
// the same chunk.
type DocumentChunk struct {
	ID         string    `json:"id"`
	Content    string    `json:"content"`
	SourceName string    `json:"source_name"`
	CreatedAt  time.Time `json:"created_at"`
}

// ScoredCandidate is a chunk ranked against a query. Computed per query,
// never persisted.
type ScoredCandidate struct {
	Chunk        DocumentChunk `json:"chunk"`
	Confidence   float64       `json:"confidence"`
	MatchedTerms []string      `json:"matched_terms"`
}

// QueryResolution is the outcome of one orchestrated query: the answer, the
// branch that produced it, and labels for the raw context that backed it.
type QueryResolution struct {
	AnswerText    string   `json:"answer_text"`
	Source        Source   `json:"source"`
	Confidence    float64  `json:"confidence"`
	ContextChunks []string `json:"context_chunks,omitempty"`
}

// HistoryStats describes the state of a history backend.
type HistoryStats struct {
	Conversations int `json:"conversations"`
	Entries       int `json:"entries"`
}

// HistoryEntry is one persisted conversation message.
type HistoryEntry struct {
	ID             string    `json:"id"`
	ConversationID string    `json:"conversation_id"`
	Sender         Sender    `json:"sender"`
	Message        string    `json:"message"`
	Timestamp      time.Time `json:"timestamp"`
}

// Transport types

type ChatRequest struct {
	ConversationID string `json:"conversation_id"`
	Message        string `json:"message"`
}

type ChatResponse struct {
	ConversationID string   `json:"conversation_id"`
	Answer         string   `json:"answer"`
	Source         Source   `json:"source"`
	Confidence     float64  `json:"confidence"`
	ContextChunks  []string `json:"context_chunks,omitempty"`
}

type IngestDocument struct {
	SourceName string `json:"source_name"`
	Content    string `json:"content"`
}

type IngestRequest struct {
	Documents []IngestDocument `json:"documents"`
}

// DocumentReport is the per-document outcome of an ingest call. Duplicates
// are a normal result, not an error.
type DocumentReport struct {
	SourceName      string `json:"source_name"`
	StoredChunks    int    `json:"stored_chunks"`
	DuplicateChunks int    `json:"duplicate_chunks"`
}

type IngestResponse struct {
	Documents       []DocumentReport `json:"documents"`
	TotalStored     int              `json:"total_stored"`
	TotalDuplicates int              `json:"total_duplicates"`
}
