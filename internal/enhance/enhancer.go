package enhance

import (
	"context"
)

// Mode tells the enhancer what kind of raw material it is working from.
type Mode string

const (
	ModeKB     Mode = "kb"
	ModeSearch Mode = "search"
	ModeDirect Mode = "direct"
)

// Enhancer turns raw context and a query into a single polished answer. In
// direct mode contextTexts is empty and the provider answers from general
// knowledge alone. Implementations report outages with
// models.ErrEnhancementUnavailable; degradation to raw context is the
// caller's job.
type Enhancer interface {
	Enhance(ctx context.Context, query string, contextTexts []string, mode Mode) (string, error)
}
