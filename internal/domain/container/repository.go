package container

import (
	"context"
	"time"

	"container-tracker/internal/domain/telemetry"

	"github.com/google/uuid"
)

// Repository persists containers and serves the read models derived from
// their telemetry.
type Repository interface {
	Upsert(ctx context.Context, c *Container) (*Container, error)
	GetByID(ctx context.Context, accountID uuid.UUID, id string) (*Container, error)
	List(ctx context.Context, accountID uuid.UUID, limit int) ([]*Container, error)
	Update(ctx context.Context, c *Container) (*Container, error)
	Delete(ctx context.Context, accountID uuid.UUID, id string) error

	// GetRules returns the alerting configuration of a container,
	// regardless of tenant (used by the alert engine).
	GetRules(ctx context.Context, containerID string) (*Rules, error)

	// ResolveDevice maps a device identifier to its bound container.
	// Unbound devices yield ErrDeviceUnbound.
	ResolveDevice(ctx context.Context, deviceID string) (*Binding, error)

	GetState(ctx context.Context, accountID uuid.UUID, containerID string) (*telemetry.ContainerState, error)
	ListStates(ctx context.Context, accountID uuid.UUID, limit int) ([]*telemetry.ContainerState, error)

	// Dashboard aggregates over the movement log.
	MovementsPerDay(ctx context.Context, accountID uuid.UUID, days int) ([]DayCount, error)
	MovementsByLocation(ctx context.Context, accountID uuid.UUID, limit int) ([]LocationCount, error)
	TopContainers(ctx context.Context, accountID uuid.UUID, limit int) ([]ContainerCount, error)
}

type DayCount struct {
	Day   time.Time `json:"day"`
	Count int64     `json:"count"`
}

type LocationCount struct {
	Location string `json:"location"`
	Count    int64  `json:"count"`
}

type ContainerCount struct {
	ContainerID string `json:"container_id"`
	Count       int64  `json:"count"`
}
