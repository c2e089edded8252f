package driving

import "context"

// Scheduler runs background maintenance such as sweeping expired cache entries.
type Scheduler interface {
	// Start runs due tasks until ctx is cancelled or Stop is called.
	Start(ctx context.Context) error

	// Stop ends the loop and waits for in-flight tasks.
	Stop() error
}
