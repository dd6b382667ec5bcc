package orchestrator

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/askbridge/askbridge/internal/enhance"
	"github.com/askbridge/askbridge/internal/models"
	"github.com/askbridge/askbridge/internal/search"
	"github.com/rs/zerolog"
)

// ChunkSource exposes the knowledge base contents for scoring
type ChunkSource interface {
	AllChunks() []models.DocumentChunk
}

// Scorer ranks chunks against a query, already filtered by the
// acceptance threshold
type Scorer interface {
	Score(query string, chunks []models.DocumentChunk) []models.ScoredCandidate
}

// Searcher runs the web search fallback
type Searcher interface {
	Search(ctx context.Context, query string) ([]search.Hit, error)
}

// Enhancer polishes raw context into a final answer
type Enhancer interface {
	Enhance(ctx context.Context, query string, contextTexts []string, mode enhance.Mode) (string, error)
}

type Config struct {
	SearchConfidence float64
	MaxContextChunks int
}

// Resolver walks the fallback chain: knowledge base, then web search,
// then the model on its own. Search failure is treated like an empty
// result set; enhancement failure degrades to raw context when any
// exists. Only a direct-mode enhancement failure with nothing to fall
// back on yields models.ErrNoAnswer.
type Resolver struct {
	source   ChunkSource
	scorer   Scorer
	searcher Searcher
	enhancer Enhancer
	config   Config
	logger   *zerolog.Logger

	mu     sync.Mutex
	counts map[models.Source]int
}

func NewResolver(
	source ChunkSource,
	scorer Scorer,
	searcher Searcher,
	enhancer Enhancer,
	config Config,
	logger *zerolog.Logger,
) *Resolver {
	return &Resolver{
		source:   source,
		scorer:   scorer,
		searcher: searcher,
		enhancer: enhancer,
		config:   config,
		logger:   logger,
		counts:   make(map[models.Source]int),
	}
}

func (r *Resolver) Resolve(ctx context.Context, query string) (models.QueryResolution, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return models.QueryResolution{}, fmt.Errorf("%w: empty query", models.ErrInvalidInput)
	}

	r.logger.Info().Str("query", query).Msg("resolving query")

	if resolution, ok := r.resolveFromKB(ctx, query); ok {
		r.record(resolution.Source)
		return resolution, nil
	}

	if resolution, ok := r.resolveFromSearch(ctx, query); ok {
		r.record(resolution.Source)
		return resolution, nil
	}

	resolution, err := r.resolveDirect(ctx, query)
	if err != nil {
		return models.QueryResolution{}, err
	}
	r.record(resolution.Source)
	return resolution, nil
}

func (r *Resolver) resolveFromKB(ctx context.Context, query string) (models.QueryResolution, bool) {
	candidates := r.scorer.Score(query, r.source.AllChunks())
	if len(candidates) == 0 {
		return models.QueryResolution{}, false
	}

	if len(candidates) > r.config.MaxContextChunks {
		candidates = candidates[:r.config.MaxContextChunks]
	}

	contextTexts := make([]string, 0, len(candidates))
	chunkIDs := make([]string, 0, len(candidates))
	for _, candidate := range candidates {
		contextTexts = append(contextTexts, candidate.Chunk.Content)
		chunkIDs = append(chunkIDs, candidate.Chunk.ID)
	}

	confidence := candidates[0].Confidence

	answer, err := r.enhancer.Enhance(ctx, query, contextTexts, enhance.ModeKB)
	if err != nil {
		// Degrade to the best matching chunk verbatim.
		r.logger.Warn().Err(err).Msg("enhancement failed, returning raw chunk")
		answer = candidates[0].Chunk.Content
	}

	r.logger.Info().
		Float64("confidence", confidence).
		Int("context_chunks", len(chunkIDs)).
		Msg("answered from knowledge base")

	return models.QueryResolution{
		AnswerText:    answer,
		Source:        models.SourceKnowledgeBase,
		Confidence:    confidence,
		ContextChunks: chunkIDs,
	}, true
}

func (r *Resolver) resolveFromSearch(ctx context.Context, query string) (models.QueryResolution, bool) {
	hits, err := r.searcher.Search(ctx, query)
	if err != nil {
		// An unavailable provider and an empty result set lead to the
		// same place: the next fallback.
		r.logger.Warn().Err(err).Msg("search unavailable, falling through")
		return models.QueryResolution{}, false
	}
	if len(hits) == 0 {
		return models.QueryResolution{}, false
	}

	contextTexts := make([]string, 0, len(hits))
	snippets := make([]string, 0, len(hits))
	for _, hit := range hits {
		contextTexts = append(contextTexts, fmt.Sprintf("Title: %s\nSnippet: %s", hit.Title, hit.Snippet))
		snippets = append(snippets, hit.Snippet)
	}

	answer, err := r.enhancer.Enhance(ctx, query, contextTexts, enhance.ModeSearch)
	if err != nil {
		r.logger.Warn().Err(err).Msg("enhancement failed, returning raw snippets")
		answer = strings.Join(snippets, " ")
	}

	r.logger.Info().Int("hits", len(hits)).Msg("answered from web search")

	return models.QueryResolution{
		AnswerText: answer,
		Source:     models.SourceSearch,
		Confidence: r.config.SearchConfidence,
	}, true
}

func (r *Resolver) resolveDirect(ctx context.Context, query string) (models.QueryResolution, error) {
	answer, err := r.enhancer.Enhance(ctx, query, nil, enhance.ModeDirect)
	if err != nil {
		r.logger.Error().Err(err).Msg("direct answer failed with no fallback left")
		return models.QueryResolution{}, fmt.Errorf("%w: %v", models.ErrNoAnswer, err)
	}

	r.logger.Info().Msg("answered directly by the model")

	return models.QueryResolution{
		AnswerText: answer,
		Source:     models.SourceAIDirect,
		Confidence: 0,
	}, nil
}

func (r *Resolver) record(source models.Source) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.counts[source]++
}

// Counts reports how many resolutions each source has served since startup.
func (r *Resolver) Counts() map[models.Source]int {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := make(map[models.Source]int, len(r.counts))
	for source, n := range r.counts {
		out[source] = n
	}
	return out
}
