package alert

import (
	"context"

	"github.com/google/uuid"
)

// Filter narrows alert listings.
type Filter struct {
	Status      string // "pending" | "resolved" | ""
	VoyageID    *int64
	ContainerID string
	Limit       int
}

// Repository persists alerts.
type Repository interface {
	Insert(ctx context.Context, a *Alert) error
	List(ctx context.Context, accountID uuid.UUID, f Filter) ([]*Alert, error)

	// Acknowledge closes a pending alert exactly once. Acknowledging an
	// already-acknowledged or unknown alert yields ErrNotFound.
	Acknowledge(ctx context.Context, accountID, id uuid.UUID, userID *string) (*Alert, error)

	Delete(ctx context.Context, accountID, id uuid.UUID) error
}
