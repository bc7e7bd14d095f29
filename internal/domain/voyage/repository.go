package voyage

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Repository persists ships and voyages.
type Repository interface {
	CreateShip(ctx context.Context, s *Ship) (*Ship, error)
	ListShips(ctx context.Context, accountID uuid.UUID) ([]*Ship, error)

	CreateVoyage(ctx context.Context, accountID uuid.UUID, v *Voyage) (*Voyage, error)
	GetVoyage(ctx context.Context, accountID uuid.UUID, voyageID int64) (*Voyage, error)
	SetStatus(ctx context.Context, accountID uuid.UUID, voyageID int64, from []VoyageStatus, to VoyageStatus, at time.Time) (*Voyage, error)

	AddContainers(ctx context.Context, accountID uuid.UUID, voyageID int64, containerIDs []string) error
	ListContainers(ctx context.Context, accountID uuid.UUID, voyageID int64) ([]string, error)

	// Trail returns the positioned movements recorded against the voyage,
	// oldest first.
	Trail(ctx context.Context, accountID uuid.UUID, voyageID int64, limit int) ([]TrailPoint, error)

	// LastUpdate returns the most recent movement timestamp on the voyage,
	// or nil when none were recorded yet.
	LastUpdate(ctx context.Context, accountID uuid.UUID, voyageID int64) (*time.Time, error)

	// ResolveCode maps an account-scoped voyage code to its id; an unknown
	// code resolves to nil.
	ResolveCode(ctx context.Context, accountID uuid.UUID, code string) (*int64, error)
}
