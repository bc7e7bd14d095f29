package telemetry

import (
	"context"

	"github.com/google/uuid"
)

// Store opens the transactional boundary for applying one batch. The whole
// batch commits or rolls back as a unit.
type Store interface {
	WithinBatch(ctx context.Context, fn func(tx BatchStore) error) error
}

// BatchStore is the per-transaction view the pipeline works against.
// Implementations serialize concurrent state updates for the same container
// via row-level locking.
type BatchStore interface {
	// ResolveVoyageCode maps an account-scoped voyage code to its id.
	// An unknown code resolves to nil, not an error.
	ResolveVoyageCode(ctx context.Context, accountID uuid.UUID, code string) (*int64, error)

	// InsertEvent appends the event unless its idempotency key already
	// exists. Reports whether a row was actually written.
	InsertEvent(ctx context.Context, ev *Event) (applied bool, err error)

	// FindDuplicate fetches the stored row shadowing a deduplicated event,
	// for conflict diagnostics. A miss returns (nil, nil).
	FindDuplicate(ctx context.Context, ev *Event) (*Conflict, error)

	// GetStateForUpdate loads and locks the current projection row,
	// or returns (nil, nil) when the container has no state yet.
	GetStateForUpdate(ctx context.Context, containerID string) (*ContainerState, error)

	// SaveState upserts the projection row.
	SaveState(ctx context.Context, st *ContainerState) error
}
