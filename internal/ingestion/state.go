package ingestion

import (
	"time"

	"container-tracker/internal/domain/telemetry"
)

// ShouldApply decides whether an event may update the container projection.
//
// Timestamped events win by recency: they apply only when strictly newer
// than the stored last_timestamp (or when no state exists yet). An
// out-of-order event never reapplies stale data, whether it deduplicated or
// not, and a late-arriving event with a newer timestamp still wins. Events
// without a timestamp are ordering-agnostic and apply exactly when their row
// was newly inserted.
func ShouldApply(current *telemetry.ContainerState, ev *telemetry.Event, applied bool) bool {
	if ev.Timestamp == nil {
		return applied
	}
	if current == nil || current.LastTimestamp == nil {
		return true
	}
	return ev.Timestamp.After(*current.LastTimestamp)
}

// MergeState folds a new observation into the existing projection with
// per-field coalesce-on-null: an incoming field overwrites only when
// non-null, otherwise the previously known value is retained. An event
// carrying only a position must not blank out a previously known
// temperature. Pure function, so the semantics are testable without a
// database.
func MergeState(current *telemetry.ContainerState, ev *telemetry.Event, now time.Time) *telemetry.ContainerState {
	next := &telemetry.ContainerState{ContainerID: ev.ContainerID}
	if current != nil {
		*next = *current
	}

	next.LastEventType = string(ev.EventType)
	next.UpdatedAt = now

	if ev.Timestamp != nil {
		next.LastTimestamp = ev.Timestamp
	}
	if ev.Lat != nil {
		next.LastLat = ev.Lat
	}
	if ev.Lng != nil {
		next.LastLng = ev.Lng
	}
	if ev.Location != nil {
		next.LastLocation = ev.Location
	}
	if ev.Site != nil {
		next.LastSite = ev.Site
	}
	if ev.Tag != nil {
		next.LastTag = ev.Tag
	}
	if ev.DeviceID != nil {
		next.LastDeviceID = ev.DeviceID
	}
	if ev.BatteryPercent != nil {
		next.LastBatteryPercent = ev.BatteryPercent
	}
	if ev.TempC != nil {
		next.LastTempC = ev.TempC
	}
	if ev.VoyageID != nil {
		next.VoyageID = ev.VoyageID
	}

	return next
}
