package scorer

import (
	"sort"
	"strings"

	"github.com/askbridge/askbridge/internal/config"
	"github.com/askbridge/askbridge/internal/models"
)

// Scorer ranks stored chunks against a query with a lexical confidence
// score. It is a pure function of its inputs; any backend satisfying the
// same contract (e.g. vector similarity) can replace it behind the
// orchestrator's interface.
type Scorer struct {
	acceptanceThreshold float64
	overlapWeight       float64
	phraseBonusWeight   float64
}

func New(cfg config.ScoringConfig) *Scorer {
	return &Scorer{
		acceptanceThreshold: cfg.AcceptanceThreshold,
		overlapWeight:       cfg.OverlapWeight,
		phraseBonusWeight:   cfg.PhraseBonusWeight,
	}
}

// Score returns candidates above the acceptance threshold, descending by
// confidence, ties broken by chunk recency. The top candidate's confidence
// is the authoritative "does the KB have this" signal. A query that
// tokenizes to nothing yields an empty result.
func (s *Scorer) Score(query string, chunks []models.DocumentChunk) []models.ScoredCandidate {
	queryTokens := tokenize(query)
	if len(queryTokens) == 0 {
		return nil
	}

	querySet := uniqueTokens(queryTokens)
	queryBigrams := bigrams(queryTokens)

	var candidates []models.ScoredCandidate
	for _, chunk := range chunks {
		chunkTokens := tokenize(chunk.Content)
		if len(chunkTokens) == 0 {
			continue
		}

		chunkSet := uniqueTokens(chunkTokens)

		var matched []string
		for token := range querySet {
			if _, ok := chunkSet[token]; ok {
				matched = append(matched, token)
			}
		}
		overlap := float64(len(matched)) / float64(len(querySet))

		// Contiguous term sequences shared with the chunk raise confidence
		// beyond bag-of-words overlap. Single-term queries have no bigrams;
		// their overlap ratio stands in so a verbatim match still scores 1.
		phrase := overlap
		if len(queryBigrams) > 0 {
			chunkBigramSet := uniqueBigrams(bigrams(chunkTokens))
			hits := 0
			for _, bg := range queryBigrams {
				if _, ok := chunkBigramSet[bg]; ok {
					hits++
				}
			}
			phrase = float64(hits) / float64(len(queryBigrams))
		}

		confidence := s.overlapWeight*overlap + s.phraseBonusWeight*phrase
		if confidence > 1 {
			confidence = 1
		}
		if confidence < s.acceptanceThreshold {
			continue
		}

		sort.Strings(matched)
		candidates = append(candidates, models.ScoredCandidate{
			Chunk:        chunk,
			Confidence:   confidence,
			MatchedTerms: matched,
		})
	}

	sort.SliceStable(candidates, func(i, j int) bool {
		if candidates[i].Confidence != candidates[j].Confidence {
			return candidates[i].Confidence > candidates[j].Confidence
		}
		return candidates[i].Chunk.CreatedAt.After(candidates[j].Chunk.CreatedAt)
	})

	return candidates
}

var stopWords = map[string]bool{
	"a": true, "an": true, "the": true, "is": true, "are": true,
	"was": true, "were": true, "be": true, "been": true, "being": true,
	"have": true, "has": true, "had": true, "do": true, "does": true,
	"did": true, "will": true, "would": true, "could": true, "should": true,
	"of": true, "at": true, "by": true, "for": true, "with": true,
	"about": true, "against": true, "between": true, "into": true,
	"through": true, "during": true, "before": true, "after": true,
	"to": true, "from": true, "in": true, "on": true,
}

func tokenize(s string) []string {
	s = strings.ToLower(s)
	s = removePunctuation(s)

	tokens := []string{}
	for word := range strings.FieldsSeq(s) {
		if !stopWords[word] && len(word) > 1 {
			tokens = append(tokens, word)
		}
	}
	return tokens
}

func removePunctuation(s string) string {
	return strings.Map(func(r rune) rune {
		if strings.ContainsRune(".,!?;:()[]{}\"'", r) {
			return -1
		}
		return r
	}, s)
}

func uniqueTokens(tokens []string) map[string]bool {
	unique := make(map[string]bool, len(tokens))
	for _, t := range tokens {
		unique[t] = true
	}
	return unique
}

type bigram struct {
	first, second string
}

func bigrams(tokens []string) []bigram {
	if len(tokens) < 2 {
		return nil
	}
	out := make([]bigram, 0, len(tokens)-1)
	for i := 0; i+1 < len(tokens); i++ {
		out = append(out, bigram{tokens[i], tokens[i+1]})
	}
	return out
}

func uniqueBigrams(bgs []bigram) map[bigram]bool {
	unique := make(map[bigram]bool, len(bgs))
	for _, bg := range bgs {
		unique[bg] = true
	}
	return unique
}
