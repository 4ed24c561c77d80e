package worker

import (
	"context"
)

// Worker is the lifecycle contract every background worker implements.
type Worker interface {
	// Start runs the worker loop until Stop is called or ctx is cancelled.
	Start(ctx context.Context) error

	// Stop signals the worker to finish; idempotent.
	Stop() error

	// Name identifies the worker in logs.
	Name() string
}
