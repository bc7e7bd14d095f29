package ingestion

import (
	"encoding/json"
	"time"
)

// RawEvent is one incoming payload item before normalization. Field devices
// in the wild report several historical shapes for the same concepts, so it
// is decoded as a loose map and mapped to the canonical event by Normalize.
type RawEvent map[string]interface{}

// ParseIngestBody accepts the three request shapes the ingest endpoint
// supports: a single event object, {"items": [...]}, or a bare array.
func ParseIngestBody(body []byte) ([]RawEvent, error) {
	var wrapper struct {
		Items []RawEvent `json:"items"`
	}
	if err := json.Unmarshal(body, &wrapper); err == nil && wrapper.Items != nil {
		return wrapper.Items, nil
	}

	var list []RawEvent
	if err := json.Unmarshal(body, &list); err == nil {
		return list, nil
	}

	var single RawEvent
	if err := json.Unmarshal(body, &single); err != nil {
		return nil, err
	}
	return []RawEvent{single}, nil
}

// DevicePacket is the fixed telemetry shape pushed by the container
// firmware over MQTT.
type DevicePacket struct {
	DeviceID    string   `json:"deviceId"`
	Timestamp   string   `json:"timestamp"`
	EventType   string   `json:"event_type"`
	TempC       *float64 `json:"temp_c"`
	Humidity    *float64 `json:"humidity"`
	PressureHPa *float64 `json:"pressure_hpa"`
	Lat         *float64 `json:"lat"`
	Lng         *float64 `json:"lng"`
	RFIDTag     *string  `json:"rfid_tag"`
}

// ParseDevicePacket parses an MQTT payload.
func ParseDevicePacket(payload []byte) (*DevicePacket, error) {
	var pkt DevicePacket
	if err := json.Unmarshal(payload, &pkt); err != nil {
		return nil, err
	}
	return &pkt, nil
}

// StateUpdate is the projection change pushed to dashboard subscribers
// after a batch commits.
type StateUpdate struct {
	ContainerID    string     `json:"container_id"`
	EventType      string     `json:"event_type"`
	Timestamp      *time.Time `json:"ts,omitempty"`
	Lat            *float64   `json:"lat,omitempty"`
	Lng            *float64   `json:"lng,omitempty"`
	TempC          *float64   `json:"temp_c,omitempty"`
	BatteryPercent *float64   `json:"battery_percent,omitempty"`
}
