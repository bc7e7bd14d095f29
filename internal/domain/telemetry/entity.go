package telemetry

import (
	"time"
)

// EventType classifies a telemetry event. The set is extensible: unknown
// types reported by newer firmware are stored as-is.
type EventType string

const (
	EventRFIDDetected   EventType = "RFID_DETECTED"
	EventOpen           EventType = "OPEN"
	EventClose          EventType = "CLOSE"
	EventMove           EventType = "MOVE"
	EventEnter          EventType = "ENTER"
	EventExit           EventType = "EXIT"
	EventAlert          EventType = "ALERT"
	EventHeartbeat      EventType = "HEARTBEAT"
	EventDeviceAttached EventType = "DEVICE_ATTACHED"
)

// Event is one immutable telemetry observation from a field device.
// Rows are append-only; the idempotency key is unique across all events.
type Event struct {
	ID             int64
	ContainerID    string
	EventType      EventType
	DeviceID       *string
	Timestamp      *time.Time
	Lat            *float64
	Lng            *float64
	SogKn          *float64
	CogDeg         *float64
	TempC          *float64
	BatteryPercent *float64
	VoyageID       *int64
	VoyageCode     *string
	IMO            *string
	Site           *string
	Location       *string
	Tag            *string
	Geohash        *string
	Meta           map[string]interface{}
	IdempotencyKey string
	Source         string
	CreatedAt      time.Time
}

// ContainerState is the mutable "latest known" projection per container,
// derived from the event log and read by dashboards and alerting.
type ContainerState struct {
	ContainerID        string
	LastEventType      string
	LastTimestamp      *time.Time
	LastLat            *float64
	LastLng            *float64
	LastLocation       *string
	LastSite           *string
	LastTag            *string
	LastDeviceID       *string
	LastBatteryPercent *float64
	LastTempC          *float64
	VoyageID           *int64
	UpdatedAt          time.Time
}

// Conflict describes an event that matched an existing idempotency key and
// was therefore not inserted. Kept for observability, not treated as error.
type Conflict struct {
	ContainerID    string     `json:"container_id"`
	EventType      string     `json:"event_type"`
	Timestamp      *time.Time `json:"ts,omitempty"`
	DeviceID       *string    `json:"device_id,omitempty"`
	Tag            *string    `json:"tag,omitempty"`
	IdempotencyKey string     `json:"idempotency_key"`
}

// Result summarizes one applied batch.
type Result struct {
	Inserted  int
	Skipped   int
	Conflicts []Conflict
}
