package device

import (
	"time"

	"github.com/google/uuid"
)

// Device is a physical IoT sensor unit. A device is bound to at most one
// container at a time via the container's iot_device_id reference.
type Device struct {
	ID        uuid.UUID
	DeviceID  string // hardware identifier, e.g. esp32-abc123
	Alias     *string
	Model     *string
	SiteID    *uuid.UUID
	Metadata  map[string]interface{}
	LastSeen  *time.Time
	CreatedAt time.Time
}
