package voyage

import (
	"time"

	"github.com/google/uuid"
)

// Ship is a vessel carrying containers, identified by its IMO number
// within an account.
type Ship struct {
	ShipID    int64
	AccountID uuid.UUID
	IMO       string
	Name      string
	CreatedAt time.Time
}

// VoyageStatus is the lifecycle of a scheduled transit.
type VoyageStatus string

const (
	StatusPlanned   VoyageStatus = "planned"
	StatusUnderway  VoyageStatus = "underway"
	StatusArrived   VoyageStatus = "arrived"
	StatusCompleted VoyageStatus = "completed"
)

// Voyage is one scheduled transit of a ship. Telemetry events may reference
// it either by id or by the human-readable voyage code.
type Voyage struct {
	VoyageID    int64
	ShipID      int64
	VoyageCode  string
	Status      VoyageStatus
	DepartPort  *string
	ArrivePort  *string
	StartedAt   *time.Time
	ArrivedAt   *time.Time
	CompletedAt *time.Time
	CreatedAt   time.Time
}

// TrailPoint is one positioned movement on a voyage's track.
type TrailPoint struct {
	ContainerID string     `json:"container_id"`
	Lat         float64    `json:"lat"`
	Lng         float64    `json:"lng"`
	Timestamp   *time.Time `json:"ts,omitempty"`
}
