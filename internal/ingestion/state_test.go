package ingestion

import (
	"testing"
	"time"

	"container-tracker/internal/domain/telemetry"
)

func ts(s string) *time.Time {
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		panic(err)
	}
	return &t
}

func f64(v float64) *float64 { return &v }

func str(s string) *string { return &s }

func TestShouldApply(t *testing.T) {
	stored := &telemetry.ContainerState{
		ContainerID:   "MSCU1234567",
		LastTimestamp: ts("2025-01-01T10:00:00Z"),
	}

	cases := []struct {
		name    string
		current *telemetry.ContainerState
		ev      *telemetry.Event
		applied bool
		want    bool
	}{
		{
			name:    "first event for a container always applies",
			current: nil,
			ev:      &telemetry.Event{Timestamp: ts("2025-01-01T09:00:00Z")},
			applied: true,
			want:    true,
		},
		{
			name:    "newer timestamp applies",
			current: stored,
			ev:      &telemetry.Event{Timestamp: ts("2025-01-01T11:00:00Z")},
			applied: true,
			want:    true,
		},
		{
			name:    "older unique event does not reapply stale data",
			current: stored,
			ev:      &telemetry.Event{Timestamp: ts("2025-01-01T09:00:00Z")},
			applied: true,
			want:    false,
		},
		{
			name:    "older duplicate does not reapply stale data",
			current: stored,
			ev:      &telemetry.Event{Timestamp: ts("2025-01-01T09:00:00Z")},
			applied: false,
			want:    false,
		},
		{
			name:    "late-arriving duplicate with newer timestamp wins",
			current: stored,
			ev:      &telemetry.Event{Timestamp: ts("2025-01-01T12:00:00Z")},
			applied: false,
			want:    true,
		},
		{
			name:    "equal timestamp is not strictly newer",
			current: stored,
			ev:      &telemetry.Event{Timestamp: ts("2025-01-01T10:00:00Z")},
			applied: false,
			want:    false,
		},
		{
			name:    "no stored timestamp accepts any timestamped event",
			current: &telemetry.ContainerState{ContainerID: "MSCU1234567"},
			ev:      &telemetry.Event{Timestamp: ts("2025-01-01T09:00:00Z")},
			applied: false,
			want:    true,
		},
		{
			name:    "timestamp-less event applies only when newly inserted",
			current: stored,
			ev:      &telemetry.Event{},
			applied: true,
			want:    true,
		},
		{
			name:    "timestamp-less duplicate never applies",
			current: stored,
			ev:      &telemetry.Event{},
			applied: false,
			want:    false,
		},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			if got := ShouldApply(c.current, c.ev, c.applied); got != c.want {
				t.Errorf("ShouldApply() = %v, want %v", got, c.want)
			}
		})
	}
}

func TestMergeStateCoalesce(t *testing.T) {
	now := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)

	current := &telemetry.ContainerState{
		ContainerID:        "MSCU1234567",
		LastEventType:      "MOVE",
		LastTimestamp:      ts("2025-01-01T10:00:00Z"),
		LastTempC:          f64(4.0),
		LastDeviceID:       str("esp32-abc"),
		LastBatteryPercent: f64(80),
	}

	t.Run("position-only event keeps known temperature", func(t *testing.T) {
		ev := &telemetry.Event{
			ContainerID: "MSCU1234567",
			EventType:   telemetry.EventMove,
			Timestamp:   ts("2025-01-01T11:00:00Z"),
			Lat:         f64(-23.95),
			Lng:         f64(-46.33),
		}

		next := MergeState(current, ev, now)

		if next.LastTempC == nil || *next.LastTempC != 4.0 {
			t.Errorf("last_temp_c = %v, want preserved 4.0", next.LastTempC)
		}
		if next.LastLat == nil || *next.LastLat != -23.95 {
			t.Errorf("last_lat = %v, want -23.95", next.LastLat)
		}
		if next.LastDeviceID == nil || *next.LastDeviceID != "esp32-abc" {
			t.Errorf("last_device_id = %v, want preserved esp32-abc", next.LastDeviceID)
		}
		if next.LastTimestamp == nil || !next.LastTimestamp.Equal(*ev.Timestamp) {
			t.Errorf("last_timestamp = %v, want event timestamp", next.LastTimestamp)
		}
	})

	t.Run("non-null fields overwrite", func(t *testing.T) {
		ev := &telemetry.Event{
			ContainerID:    "MSCU1234567",
			EventType:      telemetry.EventHeartbeat,
			TempC:          f64(7.5),
			BatteryPercent: f64(79),
		}

		next := MergeState(current, ev, now)

		if *next.LastTempC != 7.5 {
			t.Errorf("last_temp_c = %v, want 7.5", *next.LastTempC)
		}
		if *next.LastBatteryPercent != 79 {
			t.Errorf("last_battery_percent = %v, want 79", *next.LastBatteryPercent)
		}
		if next.LastEventType != "HEARTBEAT" {
			t.Errorf("last_event_type = %q, want HEARTBEAT", next.LastEventType)
		}
	})

	t.Run("timestamp-less event preserves stored timestamp", func(t *testing.T) {
		ev := &telemetry.Event{ContainerID: "MSCU1234567", EventType: telemetry.EventHeartbeat}

		next := MergeState(current, ev, now)

		if next.LastTimestamp == nil || !next.LastTimestamp.Equal(*current.LastTimestamp) {
			t.Errorf("last_timestamp = %v, want preserved %v", next.LastTimestamp, current.LastTimestamp)
		}
	})

	t.Run("merge does not mutate the current state", func(t *testing.T) {
		ev := &telemetry.Event{ContainerID: "MSCU1234567", EventType: telemetry.EventOpen, TempC: f64(9)}

		_ = MergeState(current, ev, now)

		if *current.LastTempC != 4.0 || current.LastEventType != "MOVE" {
			t.Error("MergeState mutated its input")
		}
	})

	t.Run("nil current creates a fresh projection", func(t *testing.T) {
		ev := &telemetry.Event{
			ContainerID: "HLCU7654321",
			EventType:   telemetry.EventEnter,
			Timestamp:   ts("2025-02-01T00:00:00Z"),
			TempC:       f64(-1),
		}

		next := MergeState(nil, ev, now)

		if next.ContainerID != "HLCU7654321" {
			t.Errorf("container_id = %q", next.ContainerID)
		}
		if next.LastTempC == nil || *next.LastTempC != -1 {
			t.Errorf("last_temp_c = %v, want -1", next.LastTempC)
		}
	})
}
