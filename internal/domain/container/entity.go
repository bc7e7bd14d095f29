package container

import (
	"time"

	"github.com/google/uuid"
)

// Container is a tracked shipping container with its configured safe
// temperature bounds. Bounds are optional; a nil bound disables that check.
type Container struct {
	ID            string
	AccountID     uuid.UUID
	IMO           string
	ContainerType *string
	Owner         *string
	Description   *string
	MinTemp       *float64
	MaxTemp       *float64
	IoTDeviceID   *string
	CreatedAt     time.Time
}

// Thresholds is the configured temperature window for a container.
type Thresholds struct {
	MinTemp *float64
	MaxTemp *float64
}

// Rules carries the alerting configuration of a container together with the
// tenant the resulting alerts belong to.
type Rules struct {
	AccountID  uuid.UUID
	Thresholds Thresholds
}

// Binding resolves a device to the container it is attached to, together
// with that container's alert rules. Rebinding replaces any prior binding;
// this invariant is enforced by the device attachment flow, consumers only
// rely on it.
type Binding struct {
	ContainerID string
	Rules       Rules
}
