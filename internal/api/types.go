package api

import (
	"github.com/askbridge/askbridge/internal/history"
	"github.com/askbridge/askbridge/internal/kb"
	"github.com/askbridge/askbridge/internal/models"
)

type HealthResponse struct {
	Status  string `json:"status"`
	Version string `json:"version"`
}

type StatsResponse struct {
	KnowledgeBase  kb.Stats              `json:"knowledge_base"`
	Resolutions    map[models.Source]int `json:"resolutions"`
	History        history.Stats         `json:"history"`
	HistoryBackend string                `json:"history_backend"`
}

type HistoryResponse struct {
	ConversationID string                `json:"conversation_id"`
	Entries        []models.HistoryEntry `json:"entries"`
}
