package search

import (
	"context"
)

// Hit is one raw web search result.
type Hit struct {
	Title   string `json:"title"`
	Snippet string `json:"snippet"`
	URL     string `json:"url"`
}

// Searcher is the fallback search capability. An empty result set is a
// normal outcome; models.ErrSearchUnavailable signals a provider outage.
// The orchestrator treats both as non-fatal.
type Searcher interface {
	Search(ctx context.Context, query string) ([]Hit, error)
}
