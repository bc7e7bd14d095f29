package ingestion

import (
	"math"
	"testing"
	"time"

	"container-tracker/internal/domain/telemetry"
)

var captureTime = time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)

func TestNormalizeAliases(t *testing.T) {
	cases := []struct {
		name string
		raw  RawEvent
		want func(t *testing.T, ev *telemetry.Event)
	}{
		{
			name: "type alias and default uppercasing",
			raw:  RawEvent{"container_id": "MSCU1234567", "type": "open"},
			want: func(t *testing.T, ev *telemetry.Event) {
				if ev.EventType != telemetry.EventOpen {
					t.Errorf("event_type = %q, want OPEN", ev.EventType)
				}
			},
		},
		{
			name: "missing event type defaults to heartbeat",
			raw:  RawEvent{"container_id": "MSCU1234567"},
			want: func(t *testing.T, ev *telemetry.Event) {
				if ev.EventType != telemetry.EventHeartbeat {
					t.Errorf("event_type = %q, want HEARTBEAT", ev.EventType)
				}
			},
		},
		{
			name: "timestamp alias ts_iso preferred",
			raw:  RawEvent{"container_id": "MSCU1234567", "ts_iso": "2025-01-01T00:00:00Z", "timestamp": "2024-01-01T00:00:00Z"},
			want: func(t *testing.T, ev *telemetry.Event) {
				if ev.Timestamp == nil || !ev.Timestamp.Equal(time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)) {
					t.Errorf("timestamp = %v, want 2025-01-01T00:00:00Z", ev.Timestamp)
				}
			},
		},
		{
			name: "nested position used when flat lat/lng absent",
			raw: RawEvent{
				"container_id": "MSCU1234567",
				"position":     map[string]interface{}{"lat": -23.95, "lng": -46.33},
			},
			want: func(t *testing.T, ev *telemetry.Event) {
				if ev.Lat == nil || *ev.Lat != -23.95 || ev.Lng == nil || *ev.Lng != -46.33 {
					t.Errorf("position = (%v, %v), want (-23.95, -46.33)", ev.Lat, ev.Lng)
				}
			},
		},
		{
			name: "flat lat wins over nested position",
			raw: RawEvent{
				"container_id": "MSCU1234567",
				"lat":          1.0,
				"position":     map[string]interface{}{"lat": 2.0},
			},
			want: func(t *testing.T, ev *telemetry.Event) {
				if ev.Lat == nil || *ev.Lat != 1.0 {
					t.Errorf("lat = %v, want 1.0", ev.Lat)
				}
			},
		},
		{
			name: "speed alias chain",
			raw:  RawEvent{"container_id": "MSCU1234567", "speed_knots": 12.5},
			want: func(t *testing.T, ev *telemetry.Event) {
				if ev.SogKn == nil || *ev.SogKn != 12.5 {
					t.Errorf("sog_kn = %v, want 12.5", ev.SogKn)
				}
			},
		},
		{
			name: "heading alias maps to course",
			raw:  RawEvent{"container_id": "MSCU1234567", "heading": 270.0},
			want: func(t *testing.T, ev *telemetry.Event) {
				if ev.CogDeg == nil || *ev.CogDeg != 270.0 {
					t.Errorf("cog_deg = %v, want 270", ev.CogDeg)
				}
			},
		},
		{
			name: "non-finite numerics become nil, never an error",
			raw:  RawEvent{"container_id": "MSCU1234567", "temp_c": math.Inf(1), "lat": math.NaN()},
			want: func(t *testing.T, ev *telemetry.Event) {
				if ev.TempC != nil {
					t.Errorf("temp_c = %v, want nil", *ev.TempC)
				}
				if ev.Lat != nil {
					t.Errorf("lat = %v, want nil", *ev.Lat)
				}
			},
		},
		{
			name: "numeric strings are coerced",
			raw:  RawEvent{"container_id": "MSCU1234567", "temp_c": "4.5"},
			want: func(t *testing.T, ev *telemetry.Event) {
				if ev.TempC == nil || *ev.TempC != 4.5 {
					t.Errorf("temp_c = %v, want 4.5", ev.TempC)
				}
			},
		},
		{
			name: "unparsable timestamp is nil",
			raw:  RawEvent{"container_id": "MSCU1234567", "ts_iso": "not-a-date"},
			want: func(t *testing.T, ev *telemetry.Event) {
				if ev.Timestamp != nil {
					t.Errorf("timestamp = %v, want nil", ev.Timestamp)
				}
			},
		},
		{
			name: "unknown fields preserved in meta bag",
			raw: RawEvent{
				"container_id": "MSCU1234567",
				"humidity":     55.0,
				"firmware":     "1.2.3",
				"meta":         map[string]interface{}{"note": "x"},
			},
			want: func(t *testing.T, ev *telemetry.Event) {
				if ev.Meta == nil {
					t.Fatal("meta bag is nil")
				}
				if ev.Meta["humidity"] != 55.0 || ev.Meta["firmware"] != "1.2.3" || ev.Meta["note"] != "x" {
					t.Errorf("meta bag = %v, missing preserved fields", ev.Meta)
				}
			},
		},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			c.want(t, Normalize(c.raw, captureTime))
		})
	}
}

func TestNormalizeIdempotencyKey(t *testing.T) {
	t.Run("derived from container, timestamp, type and device", func(t *testing.T) {
		ev := Normalize(RawEvent{
			"container_id": "MSCU1234567",
			"ts_iso":       "2025-01-01T00:00:00Z",
			"event_type":   "move",
			"device_id":    "esp32-abc",
		}, captureTime)

		want := "MSCU1234567|2025-01-01T00:00:00Z|MOVE|esp32-abc"
		if ev.IdempotencyKey != want {
			t.Errorf("idempotency_key = %q, want %q", ev.IdempotencyKey, want)
		}
	})

	t.Run("missing timestamp uses capture time placeholder", func(t *testing.T) {
		ev := Normalize(RawEvent{"container_id": "MSCU1234567"}, captureTime)

		want := "MSCU1234567|2025-03-01T12:00:00Z|HEARTBEAT|"
		if ev.IdempotencyKey != want {
			t.Errorf("idempotency_key = %q, want %q", ev.IdempotencyKey, want)
		}
	})

	t.Run("caller-supplied key takes precedence", func(t *testing.T) {
		ev := Normalize(RawEvent{
			"container_id":    "MSCU1234567",
			"idempotency_key": "client-key-42",
		}, captureTime)

		if ev.IdempotencyKey != "client-key-42" {
			t.Errorf("idempotency_key = %q, want client-key-42", ev.IdempotencyKey)
		}
	})
}

func TestParseIngestBody(t *testing.T) {
	cases := []struct {
		name string
		body string
		want int
	}{
		{"single object", `{"container_id":"MSCU1234567"}`, 1},
		{"items wrapper", `{"items":[{"container_id":"A"},{"container_id":"B"}]}`, 2},
		{"bare array", `[{"container_id":"A"},{"container_id":"B"},{"container_id":"C"}]`, 3},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			items, err := ParseIngestBody([]byte(c.body))
			if err != nil {
				t.Fatalf("ParseIngestBody: %v", err)
			}
			if len(items) != c.want {
				t.Errorf("len(items) = %d, want %d", len(items), c.want)
			}
		})
	}

	if _, err := ParseIngestBody([]byte(`{"items": 5`)); err == nil {
		t.Error("malformed body should return an error")
	}
}
