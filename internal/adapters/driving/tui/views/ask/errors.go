package ask

import "errors"

// Error definitions for the ask view.
var (
	// ErrNoOrchestrator indicates that no orchestrator was provided.
	ErrNoOrchestrator = errors.New("orchestrator is required")
)
