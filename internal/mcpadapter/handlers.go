package mcpadapter

import (
	"context"
	"errors"

	"github.com/askbridge/askbridge/internal/kb"
	"github.com/askbridge/askbridge/internal/models"
	"github.com/askbridge/askbridge/internal/orchestrator"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// AskInput is the MCP tool input schema for question answering.
type AskInput struct {
	Question string `json:"question" jsonschema:"the question to answer"`
}

// IngestInput is the MCP tool input schema for knowledge base ingestion.
type IngestInput struct {
	SourceName string `json:"source_name" jsonschema:"label for the document, typically a file name"`
	Content    string `json:"content" jsonschema:"document text to ingest"`
}

// StatsInput is the MCP tool input schema for knowledge base statistics.
type StatsInput struct{}

// IngestOutput reports the chunk-wise outcome of one ingestion.
type IngestOutput struct {
	StoredChunks    int `json:"stored_chunks"`
	DuplicateChunks int `json:"duplicate_chunks"`
}

// NewAskHandler returns a tool handler that resolves questions through the
// fallback chain. Pass the returned function to mcp.AddTool.
func NewAskHandler(resolver *orchestrator.Resolver) func(context.Context, *mcp.CallToolRequest, AskInput) (*mcp.CallToolResult, models.QueryResolution, error) {
	return func(ctx context.Context, req *mcp.CallToolRequest, input AskInput) (*mcp.CallToolResult, models.QueryResolution, error) {
		return Ask(ctx, resolver, req, input)
	}
}

// Ask resolves a question and returns the answer with its provenance.
func Ask(
	ctx context.Context,
	resolver *orchestrator.Resolver,
	req *mcp.CallToolRequest,
	input AskInput,
) (*mcp.CallToolResult, models.QueryResolution, error) {
	resolution, err := resolver.Resolve(ctx, input.Question)
	if errors.Is(err, models.ErrNoAnswer) {
		return nil, models.QueryResolution{
			AnswerText: "No answer could be produced for this question.",
			Source:     models.SourceNone,
			Confidence: 0,
		}, nil
	}

	return nil, resolution, err
}

// NewIngestHandler returns a tool handler that stores documents in the
// knowledge base. Pass the returned function to mcp.AddTool.
func NewIngestHandler(store *kb.Store) func(context.Context, *mcp.CallToolRequest, IngestInput) (*mcp.CallToolResult, IngestOutput, error) {
	return func(ctx context.Context, req *mcp.CallToolRequest, input IngestInput) (*mcp.CallToolResult, IngestOutput, error) {
		result, err := store.Ingest(input.Content, input.SourceName)
		if err != nil {
			return nil, IngestOutput{}, err
		}

		return nil, IngestOutput{
			StoredChunks:    result.StoredChunks,
			DuplicateChunks: result.DuplicateChunks,
		}, nil
	}
}

// NewStatsHandler returns a tool handler reporting knowledge base counts.
// Pass the returned function to mcp.AddTool.
func NewStatsHandler(store *kb.Store) func(context.Context, *mcp.CallToolRequest, StatsInput) (*mcp.CallToolResult, kb.Stats, error) {
	return func(ctx context.Context, req *mcp.CallToolRequest, input StatsInput) (*mcp.CallToolResult, kb.Stats, error) {
		return nil, store.Stats(), nil
	}
}
