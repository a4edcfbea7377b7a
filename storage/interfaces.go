package storage

import (
	"context"

	"github.com/poiesic/speechwatch/core"
)

// CheckpointRepository persists one checkpoint per transcript source.
// Implementations must be thread-safe and support concurrent access.
type CheckpointRepository interface {
	// SaveCheckpoint stores cp, replacing any checkpoint for the same source.
	// Returns ErrInvalidQuery if cp has no source.
	SaveCheckpoint(ctx context.Context, cp *core.Checkpoint) error

	// LoadCheckpoint retrieves the checkpoint for source.
	// Returns nil, nil if no checkpoint exists.
	LoadCheckpoint(ctx context.Context, source string) (*core.Checkpoint, error)

	// ListCheckpoints returns every stored checkpoint ordered by source name.
	ListCheckpoints(ctx context.Context) ([]*core.Checkpoint, error)

	// Close releases the underlying storage.
	Close() error
}
