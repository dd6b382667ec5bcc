package api

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/askbridge/askbridge/internal/api/middleware"
	"github.com/askbridge/askbridge/internal/history"
	"github.com/askbridge/askbridge/internal/kb"
	"github.com/askbridge/askbridge/internal/models"
	"github.com/askbridge/askbridge/internal/orchestrator"
	"github.com/emicklei/go-restful/v3"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

const (
	defaultHistoryLimit = 50

	// Returned when the whole fallback chain comes up empty. Still a 200;
	// the source field tells the client nothing answered.
	noAnswerText = "I'm sorry, I couldn't find an answer to your question right now. Please try again later."
)

type Handler struct {
	resolver *orchestrator.Resolver
	store    *kb.Store
	history  history.Store
	logger   *zerolog.Logger
}

func NewHandler(resolver *orchestrator.Resolver, store *kb.Store, historyStore history.Store, logger *zerolog.Logger) *Handler {
	return &Handler{
		resolver: resolver,
		store:    store,
		history:  historyStore,
		logger:   logger,
	}
}

// POST /api/v1/chat
// Body: models.ChatRequest
// Returns: models.ChatResponse
func (h *Handler) Chat(req *restful.Request, resp *restful.Response) {
	var chatRequest models.ChatRequest
	if err := req.ReadEntity(&chatRequest); err != nil {
		h.logger.Error().Err(err).Msg("Failed to parse request body")
		middleware.HandleError(resp, err, http.StatusBadRequest)
		return
	}

	conversationID := chatRequest.ConversationID
	if conversationID == "" {
		conversationID = uuid.NewString()
	}

	h.logger.Info().
		Str("conversation_id", conversationID).
		Msg("Start chat resolution")

	ctx := req.Request.Context()

	h.saveHistory(ctx, conversationID, models.SenderUser, chatRequest.Message)

	resolution, err := h.resolver.Resolve(ctx, chatRequest.Message)
	switch {
	case errors.Is(err, models.ErrInvalidInput):
		middleware.HandleError(resp, err, http.StatusBadRequest)
		return
	case errors.Is(err, models.ErrNoAnswer):
		resolution = models.QueryResolution{
			AnswerText: noAnswerText,
			Source:     models.SourceNone,
			Confidence: 0,
		}
	case err != nil:
		h.logger.Error().Err(err).Msg("Resolution failed")
		middleware.HandleError(resp, err, http.StatusInternalServerError)
		return
	}

	h.saveHistory(ctx, conversationID, models.SenderAssistant, resolution.AnswerText)

	h.logger.Info().
		Str("conversation_id", conversationID).
		Str("source", string(resolution.Source)).
		Float64("confidence", resolution.Confidence).
		Msg("Chat resolution complete")

	resp.WriteHeaderAndEntity(http.StatusOK, models.ChatResponse{
		ConversationID: conversationID,
		Answer:         resolution.AnswerText,
		Source:         resolution.Source,
		Confidence:     resolution.Confidence,
		ContextChunks:  resolution.ContextChunks,
	})
}

// POST /api/v1/ingest
// Body: models.IngestRequest
// Returns: models.IngestResponse
func (h *Handler) Ingest(req *restful.Request, resp *restful.Response) {
	var ingestRequest models.IngestRequest
	if err := req.ReadEntity(&ingestRequest); err != nil {
		h.logger.Error().Err(err).Msg("Failed to parse request body")
		middleware.HandleError(resp, err, http.StatusBadRequest)
		return
	}

	if len(ingestRequest.Documents) == 0 {
		middleware.HandleError(resp, errors.New("no documents provided"), http.StatusBadRequest)
		return
	}

	response := models.IngestResponse{}
	for _, document := range ingestRequest.Documents {
		result, err := h.store.Ingest(document.Content, document.SourceName)
		if err != nil {
			middleware.HandleError(resp, err, http.StatusBadRequest)
			return
		}

		response.Documents = append(response.Documents, models.DocumentReport{
			SourceName:      document.SourceName,
			StoredChunks:    result.StoredChunks,
			DuplicateChunks: result.DuplicateChunks,
		})
		response.TotalStored += result.StoredChunks
		response.TotalDuplicates += result.DuplicateChunks
	}

	h.logger.Info().
		Int("documents", len(response.Documents)).
		Int("stored", response.TotalStored).
		Int("duplicates", response.TotalDuplicates).
		Msg("Ingest complete")

	resp.WriteHeaderAndEntity(http.StatusOK, response)
}

// GET /api/v1/history/{conversation_id}?limit=N
func (h *Handler) History(req *restful.Request, resp *restful.Response) {
	conversationID := req.PathParameter("conversation_id")

	limit := defaultHistoryLimit
	if limitStr := req.QueryParameter("limit"); limitStr != "" {
		if parsed, err := strconv.Atoi(limitStr); err == nil && parsed > 0 {
			limit = parsed
		} else {
			h.logger.Warn().Str("limit", limitStr).Msg("Invalid limit, using default")
		}
	}

	entries, err := h.history.Recent(req.Request.Context(), conversationID, limit)
	if err != nil {
		h.logger.Error().Err(err).Msg("Failed to read history")
		middleware.HandleError(resp, err, http.StatusInternalServerError)
		return
	}

	resp.WriteHeaderAndEntity(http.StatusOK, HistoryResponse{
		ConversationID: conversationID,
		Entries:        entries,
	})
}

// DELETE /api/v1/history/{conversation_id}
func (h *Handler) ClearHistory(req *restful.Request, resp *restful.Response) {
	conversationID := req.PathParameter("conversation_id")

	if err := h.history.Clear(req.Request.Context(), conversationID); err != nil {
		h.logger.Error().Err(err).Msg("Failed to clear history")
		middleware.HandleError(resp, err, http.StatusInternalServerError)
		return
	}

	resp.WriteHeader(http.StatusNoContent)
}

// GET /api/v1/stats
func (h *Handler) Stats(req *restful.Request, resp *restful.Response) {
	historyStats, err := h.history.Stats(req.Request.Context())
	if err != nil {
		h.logger.Error().Err(err).Msg("Failed to read history stats")
		middleware.HandleError(resp, err, http.StatusInternalServerError)
		return
	}

	resp.WriteHeaderAndEntity(http.StatusOK, StatsResponse{
		KnowledgeBase:  h.store.Stats(),
		Resolutions:    h.resolver.Counts(),
		History:        historyStats,
		HistoryBackend: h.history.Backend(),
	})
}

// Health handler GET API /api/v1/health
func (h *Handler) Health(req *restful.Request, resp *restful.Response) {
	healthResponse := HealthResponse{
		Status:  "ok",
		Version: "1.0.0",
	}

	resp.WriteHeaderAndEntity(http.StatusOK, healthResponse)
}

func (h *Handler) saveHistory(ctx context.Context, conversationID string, sender models.Sender, message string) {
	if message == "" {
		return
	}

	entry := models.HistoryEntry{
		ID:             uuid.NewString(),
		ConversationID: conversationID,
		Sender:         sender,
		Message:        message,
		Timestamp:      time.Now(),
	}

	if err := h.history.Append(ctx, entry); err != nil {
		// History is best effort; a failed write never blocks the answer.
		h.logger.Warn().Err(err).Str("conversation_id", conversationID).Msg("Failed to save history entry")
	}
}
