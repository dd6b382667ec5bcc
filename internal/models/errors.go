package models

import "errors"

// Error taxonomy for the resolution chain. Search and enhancement outages
// are non-fatal signals handled at the orchestrator boundary; only
// ErrNoAnswer reaches the caller, and only when every option is exhausted.
var (
	ErrInvalidInput           = errors.New("invalid input")
	ErrSearchUnavailable      = errors.New("search unavailable")
	ErrEnhancementUnavailable = errors.New("enhancement unavailable")
	ErrNoAnswer               = errors.New("no answer available")
)
