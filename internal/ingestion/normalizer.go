package ingestion

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"container-tracker/internal/domain/telemetry"
)

// knownKeys are the payload fields the normalizer maps onto canonical event
// fields. Anything else the device sent is preserved in the Meta bag rather
// than dropped.
var knownKeys = map[string]struct{}{
	"container_id": {}, "event_type": {}, "type": {},
	"ts_iso": {}, "timestamp": {},
	"device_id": {},
	"lat":       {}, "lng": {}, "position": {},
	"sog_kn": {}, "speed_knots": {}, "speed": {},
	"cog_deg": {}, "course_deg": {}, "heading": {},
	"temp_c": {}, "battery_percent": {},
	"voyage_id": {}, "voyage_code": {}, "imo": {},
	"site": {}, "location": {}, "tag": {}, "geohash": {},
	"idempotency_key": {}, "source": {}, "meta": {},
}

var timestampLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

// Normalize maps one raw payload item onto the canonical event. It is a pure
// function: numeric fields are coerced to finite values or nil (never an
// error), the event type is upper-cased with HEARTBEAT as default, and the
// timestamp is parsed to an instant or left nil when unparsable.
//
// The idempotency key is derived from container, timestamp, type and device
// unless the caller supplied one; caller-supplied keys take precedence so
// clients with their own dedup scheme keep it. When the event carries no
// timestamp the capture time stands in for it, which makes such events
// ordering-agnostic.
func Normalize(raw RawEvent, now time.Time) *telemetry.Event {
	eventType := strings.ToUpper(strings.TrimSpace(stringAt(raw, "event_type", "type")))
	if eventType == "" {
		eventType = string(telemetry.EventHeartbeat)
	}

	ts := parseTimestamp(stringAt(raw, "ts_iso", "timestamp"))

	lat := numberAt(raw, "lat")
	lng := numberAt(raw, "lng")
	if pos, ok := raw["position"].(map[string]interface{}); ok {
		if lat == nil {
			lat = finiteNumber(pos["lat"])
		}
		if lng == nil {
			lng = finiteNumber(pos["lng"])
		}
	}

	containerID := strings.TrimSpace(stringAt(raw, "container_id"))
	deviceID := optStringAt(raw, "device_id")

	key := strings.TrimSpace(stringAt(raw, "idempotency_key"))
	if key == "" {
		baseTs := now.UTC().Format(time.RFC3339)
		if ts != nil {
			baseTs = ts.UTC().Format(time.RFC3339)
		}
		device := ""
		if deviceID != nil {
			device = *deviceID
		}
		key = fmt.Sprintf("%s|%s|%s|%s", containerID, baseTs, eventType, device)
	}

	source := strings.TrimSpace(stringAt(raw, "source"))
	if source == "" {
		source = "esp32"
	}

	meta := map[string]interface{}{}
	if m, ok := raw["meta"].(map[string]interface{}); ok {
		for k, v := range m {
			meta[k] = v
		}
	}
	for k, v := range raw {
		if _, known := knownKeys[k]; !known {
			meta[k] = v
		}
	}
	if len(meta) == 0 {
		meta = nil
	}

	return &telemetry.Event{
		ContainerID:    containerID,
		EventType:      telemetry.EventType(eventType),
		DeviceID:       deviceID,
		Timestamp:      ts,
		Lat:            lat,
		Lng:            lng,
		SogKn:          numberAt(raw, "sog_kn", "speed_knots", "speed"),
		CogDeg:         numberAt(raw, "cog_deg", "course_deg", "heading"),
		TempC:          numberAt(raw, "temp_c"),
		BatteryPercent: numberAt(raw, "battery_percent"),
		VoyageID:       int64At(raw, "voyage_id"),
		VoyageCode:     optStringAt(raw, "voyage_code"),
		IMO:            optStringAt(raw, "imo"),
		Site:           optStringAt(raw, "site"),
		Location:       optStringAt(raw, "location"),
		Tag:            optStringAt(raw, "tag"),
		Geohash:        optStringAt(raw, "geohash"),
		Meta:           meta,
		IdempotencyKey: key,
		Source:         source,
	}
}

func parseTimestamp(s string) *time.Time {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	for _, layout := range timestampLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			t = t.UTC()
			return &t
		}
	}
	return nil
}

// stringAt returns the first present key rendered as a string. Numeric
// values are stringified, matching devices that report ids as numbers.
func stringAt(raw RawEvent, keys ...string) string {
	for _, k := range keys {
		v, ok := raw[k]
		if !ok || v == nil {
			continue
		}
		switch s := v.(type) {
		case string:
			return s
		case float64:
			return strconv.FormatFloat(s, 'f', -1, 64)
		case bool:
			return strconv.FormatBool(s)
		}
	}
	return ""
}

func optStringAt(raw RawEvent, keys ...string) *string {
	s := strings.TrimSpace(stringAt(raw, keys...))
	if s == "" {
		return nil
	}
	return &s
}

// numberAt coerces the first present key to a finite float, or nil.
func numberAt(raw RawEvent, keys ...string) *float64 {
	for _, k := range keys {
		if v, ok := raw[k]; ok && v != nil {
			return finiteNumber(v)
		}
	}
	return nil
}

func finiteNumber(v interface{}) *float64 {
	var f float64
	switch n := v.(type) {
	case float64:
		f = n
	case int:
		f = float64(n)
	case int64:
		f = float64(n)
	case string:
		parsed, err := strconv.ParseFloat(strings.TrimSpace(n), 64)
		if err != nil {
			return nil
		}
		f = parsed
	default:
		return nil
	}
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return nil
	}
	return &f
}

func int64At(raw RawEvent, keys ...string) *int64 {
	f := numberAt(raw, keys...)
	if f == nil {
		return nil
	}
	n := int64(*f)
	return &n
}
