package api_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/askbridge/askbridge/internal/api"
	"github.com/askbridge/askbridge/internal/config"
	"github.com/askbridge/askbridge/internal/enhance"
	historyfile "github.com/askbridge/askbridge/internal/history/file"
	"github.com/askbridge/askbridge/internal/kb"
	"github.com/askbridge/askbridge/internal/models"
	"github.com/askbridge/askbridge/internal/orchestrator"
	"github.com/askbridge/askbridge/internal/scorer"
	"github.com/askbridge/askbridge/internal/search"
	"github.com/emicklei/go-restful/v3"
	"github.com/rs/zerolog"
)

// stubSearcher returns canned hits; an empty slice pushes the chain to the
// direct fallback.
type stubSearcher struct {
	hits []search.Hit
	err  error
}

func (s *stubSearcher) Search(ctx context.Context, query string) ([]search.Hit, error) {
	return s.hits, s.err
}

// stubEnhancer echoes the mode so assertions can see which branch ran.
type stubEnhancer struct {
	err error
}

func (s *stubEnhancer) Enhance(ctx context.Context, query string, contextTexts []string, mode enhance.Mode) (string, error) {
	if s.err != nil {
		return "", s.err
	}
	return "enhanced answer via " + string(mode), nil
}

func setupTestAPI(t *testing.T, searcher orchestrator.Searcher, enhancer orchestrator.Enhancer) *restful.Container {
	t.Helper()

	logger := zerolog.Nop()
	cfg := config.DefaultRetrievalConfig()

	store := kb.NewStore(cfg.Chunking.MaxChunkChars, &logger)
	historyStore, err := historyfile.NewStore(filepath.Join(t.TempDir(), "history.json"), &logger)
	if err != nil {
		t.Fatalf("history store: %v", err)
	}

	resolver := orchestrator.NewResolver(
		store,
		scorer.New(cfg.Scoring),
		searcher,
		enhancer,
		orchestrator.Config{
			SearchConfidence: cfg.Fallback.SearchConfidence,
			MaxContextChunks: cfg.Scoring.MaxContextChunks,
		},
		&logger,
	)

	container := restful.NewContainer()
	api.RegisterRoutes(container, api.NewHandler(resolver, store, historyStore, &logger))
	return container
}

func postJSON(t *testing.T, container *restful.Container, path string, payload any) *httptest.ResponseRecorder {
	t.Helper()

	body, err := json.Marshal(payload)
	if err != nil {
		t.Fatalf("Failed to marshal request: %v", err)
	}

	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")

	recorder := httptest.NewRecorder()
	container.ServeHTTP(recorder, req)
	return recorder
}

func TestAPI_Health(t *testing.T) {
	container := setupTestAPI(t, &stubSearcher{}, &stubEnhancer{})

	req := httptest.NewRequest(http.MethodGet, "/api/v1/health", nil)
	recorder := httptest.NewRecorder()
	container.ServeHTTP(recorder, req)

	if recorder.Code != http.StatusOK {
		t.Errorf("Expected status 200, got %d", recorder.Code)
	}

	var response api.HealthResponse
	if err := json.Unmarshal(recorder.Body.Bytes(), &response); err != nil {
		t.Fatalf("Failed to parse response: %v", err)
	}
	if response.Status != "ok" {
		t.Errorf("Expected status 'ok', got '%s'", response.Status)
	}
}

func TestAPI_IngestThenChat_AnswersFromKnowledgeBase(t *testing.T) {
	container := setupTestAPI(t, &stubSearcher{}, &stubEnhancer{})

	ingest := postJSON(t, container, "/api/v1/ingest", models.IngestRequest{
		Documents: []models.IngestDocument{
			{SourceName: "go.txt", Content: "Go is a programming language designed at Google by Robert Griesemer, Rob Pike and Ken Thompson."},
		},
	})
	if ingest.Code != http.StatusOK {
		t.Fatalf("ingest status %d, body %s", ingest.Code, ingest.Body.String())
	}

	var ingestResponse models.IngestResponse
	if err := json.Unmarshal(ingest.Body.Bytes(), &ingestResponse); err != nil {
		t.Fatalf("Failed to parse ingest response: %v", err)
	}
	if ingestResponse.TotalStored == 0 {
		t.Fatal("Expected stored chunks, got none")
	}

	chat := postJSON(t, container, "/api/v1/chat", models.ChatRequest{
		ConversationID: "conv-1",
		Message:        "Who designed the Go programming language?",
	})
	if chat.Code != http.StatusOK {
		t.Fatalf("chat status %d, body %s", chat.Code, chat.Body.String())
	}

	var chatResponse models.ChatResponse
	if err := json.Unmarshal(chat.Body.Bytes(), &chatResponse); err != nil {
		t.Fatalf("Failed to parse chat response: %v", err)
	}

	if chatResponse.Source != models.SourceKnowledgeBase {
		t.Errorf("Expected knowledge_base source, got '%s'", chatResponse.Source)
	}
	if chatResponse.Confidence < 0.30 {
		t.Errorf("Expected confidence at or above the acceptance threshold, got %f", chatResponse.Confidence)
	}
	if chatResponse.Answer != "enhanced answer via kb" {
		t.Errorf("Expected the KB branch to run, got answer %q", chatResponse.Answer)
	}
	if len(chatResponse.ContextChunks) == 0 {
		t.Error("Expected context chunk IDs in the response")
	}
}

func TestAPI_Chat_UnknownTopicFallsBackToSearch(t *testing.T) {
	container := setupTestAPI(t, &stubSearcher{hits: []search.Hit{
		{Title: "Result", Snippet: "Something relevant.", URL: "https://example.com"},
	}}, &stubEnhancer{})

	chat := postJSON(t, container, "/api/v1/chat", models.ChatRequest{
		Message: "completely unknown subject",
	})
	if chat.Code != http.StatusOK {
		t.Fatalf("chat status %d, body %s", chat.Code, chat.Body.String())
	}

	var chatResponse models.ChatResponse
	if err := json.Unmarshal(chat.Body.Bytes(), &chatResponse); err != nil {
		t.Fatalf("Failed to parse chat response: %v", err)
	}

	if chatResponse.Source != models.SourceSearch {
		t.Errorf("Expected search source, got '%s'", chatResponse.Source)
	}
	if chatResponse.Confidence != 0.5 {
		t.Errorf("Expected nominal search confidence 0.5, got %f", chatResponse.Confidence)
	}
	if chatResponse.ConversationID == "" {
		t.Error("Expected a generated conversation ID when none is sent")
	}
}

func TestAPI_Chat_NoAnswerIsStillA200(t *testing.T) {
	container := setupTestAPI(t, &stubSearcher{}, &stubEnhancer{err: models.ErrEnhancementUnavailable})

	chat := postJSON(t, container, "/api/v1/chat", models.ChatRequest{
		ConversationID: "conv-1",
		Message:        "anything",
	})
	if chat.Code != http.StatusOK {
		t.Fatalf("chat status %d, body %s", chat.Code, chat.Body.String())
	}

	var chatResponse models.ChatResponse
	if err := json.Unmarshal(chat.Body.Bytes(), &chatResponse); err != nil {
		t.Fatalf("Failed to parse chat response: %v", err)
	}

	if chatResponse.Source != models.SourceNone {
		t.Errorf("Expected source 'none', got '%s'", chatResponse.Source)
	}
	if chatResponse.Confidence != 0 {
		t.Errorf("Expected zero confidence, got %f", chatResponse.Confidence)
	}
	if chatResponse.Answer == "" {
		t.Error("Expected a fixed apology text, got empty answer")
	}
}

func TestAPI_Chat_EmptyMessageRejected(t *testing.T) {
	container := setupTestAPI(t, &stubSearcher{}, &stubEnhancer{})

	chat := postJSON(t, container, "/api/v1/chat", models.ChatRequest{Message: "   "})
	if chat.Code != http.StatusBadRequest {
		t.Errorf("Expected status 400, got %d", chat.Code)
	}
}

func TestAPI_Ingest_EmptyDocumentRejected(t *testing.T) {
	container := setupTestAPI(t, &stubSearcher{}, &stubEnhancer{})

	recorder := postJSON(t, container, "/api/v1/ingest", models.IngestRequest{
		Documents: []models.IngestDocument{{SourceName: "empty.txt", Content: "   \n  "}},
	})
	if recorder.Code != http.StatusBadRequest {
		t.Errorf("Expected status 400, got %d. Body: %s", recorder.Code, recorder.Body.String())
	}

	recorder = postJSON(t, container, "/api/v1/ingest", models.IngestRequest{})
	if recorder.Code != http.StatusBadRequest {
		t.Errorf("Expected status 400 for no documents, got %d", recorder.Code)
	}
}

func TestAPI_HistoryRoundTrip(t *testing.T) {
	container := setupTestAPI(t, &stubSearcher{}, &stubEnhancer{})

	chat := postJSON(t, container, "/api/v1/chat", models.ChatRequest{
		ConversationID: "conv-7",
		Message:        "hello there",
	})
	if chat.Code != http.StatusOK {
		t.Fatalf("chat status %d", chat.Code)
	}

	req := httptest.NewRequest(http.MethodGet, "/api/v1/history/conv-7", nil)
	recorder := httptest.NewRecorder()
	container.ServeHTTP(recorder, req)

	if recorder.Code != http.StatusOK {
		t.Fatalf("history status %d, body %s", recorder.Code, recorder.Body.String())
	}

	var historyResponse api.HistoryResponse
	if err := json.Unmarshal(recorder.Body.Bytes(), &historyResponse); err != nil {
		t.Fatalf("Failed to parse history response: %v", err)
	}

	if len(historyResponse.Entries) != 2 {
		t.Fatalf("Expected user and assistant entries, got %d", len(historyResponse.Entries))
	}
	if historyResponse.Entries[0].Sender != models.SenderUser || historyResponse.Entries[0].Message != "hello there" {
		t.Errorf("first entry: %+v", historyResponse.Entries[0])
	}
	if historyResponse.Entries[1].Sender != models.SenderAssistant {
		t.Errorf("second entry: %+v", historyResponse.Entries[1])
	}

	// Clear and verify it is gone.
	req = httptest.NewRequest(http.MethodDelete, "/api/v1/history/conv-7", nil)
	recorder = httptest.NewRecorder()
	container.ServeHTTP(recorder, req)
	if recorder.Code != http.StatusNoContent {
		t.Fatalf("delete status %d", recorder.Code)
	}

	req = httptest.NewRequest(http.MethodGet, "/api/v1/history/conv-7", nil)
	recorder = httptest.NewRecorder()
	container.ServeHTTP(recorder, req)

	historyResponse = api.HistoryResponse{}
	if err := json.Unmarshal(recorder.Body.Bytes(), &historyResponse); err != nil {
		t.Fatalf("Failed to parse history response: %v", err)
	}
	if len(historyResponse.Entries) != 0 {
		t.Errorf("Expected empty history after clear, got %d entries", len(historyResponse.Entries))
	}
}

func TestAPI_Stats(t *testing.T) {
	container := setupTestAPI(t, &stubSearcher{}, &stubEnhancer{})

	postJSON(t, container, "/api/v1/ingest", models.IngestRequest{
		Documents: []models.IngestDocument{
			{SourceName: "go.txt", Content: "Go is a compiled language."},
		},
	})
	postJSON(t, container, "/api/v1/chat", models.ChatRequest{
		ConversationID: "conv-1",
		Message:        "Is Go a compiled language?",
	})

	req := httptest.NewRequest(http.MethodGet, "/api/v1/stats", nil)
	recorder := httptest.NewRecorder()
	container.ServeHTTP(recorder, req)

	if recorder.Code != http.StatusOK {
		t.Fatalf("stats status %d, body %s", recorder.Code, recorder.Body.String())
	}

	var stats api.StatsResponse
	if err := json.Unmarshal(recorder.Body.Bytes(), &stats); err != nil {
		t.Fatalf("Failed to parse stats response: %v", err)
	}

	if stats.KnowledgeBase.TotalChunks == 0 || stats.KnowledgeBase.TotalSources != 1 {
		t.Errorf("knowledge base stats: %+v", stats.KnowledgeBase)
	}
	if stats.HistoryBackend != "file" {
		t.Errorf("history backend: %q", stats.HistoryBackend)
	}
	if stats.History.Conversations != 1 {
		t.Errorf("history stats: %+v", stats.History)
	}

	total := 0
	for _, n := range stats.Resolutions {
		total += n
	}
	if total != 1 {
		t.Errorf("resolution counts: %+v", stats.Resolutions)
	}
}
