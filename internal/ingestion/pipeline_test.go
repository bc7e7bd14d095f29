package ingestion

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"container-tracker/internal/domain/alert"
	"container-tracker/internal/domain/container"
	"container-tracker/internal/domain/telemetry"

	"github.com/google/uuid"
)

// memStore is an in-memory telemetry store with transactional semantics:
// WithinBatch snapshots its maps and restores them when fn fails, mirroring
// a rollback.
type memStore struct {
	events  map[string]*telemetry.Event // keyed by idempotency key
	states  map[string]*telemetry.ContainerState
	voyages map[string]int64 // code -> id, one account
	known   map[int64]bool   // voyage ids accepted by the FK
}

func newMemStore() *memStore {
	return &memStore{
		events:  map[string]*telemetry.Event{},
		states:  map[string]*telemetry.ContainerState{},
		voyages: map[string]int64{},
		known:   map[int64]bool{},
	}
}

func (m *memStore) WithinBatch(ctx context.Context, fn func(tx telemetry.BatchStore) error) error {
	savedEvents := make(map[string]*telemetry.Event, len(m.events))
	for k, v := range m.events {
		savedEvents[k] = v
	}
	savedStates := make(map[string]*telemetry.ContainerState, len(m.states))
	for k, v := range m.states {
		savedStates[k] = v
	}

	if err := fn(m); err != nil {
		m.events = savedEvents
		m.states = savedStates
		return err
	}
	return nil
}

func (m *memStore) ResolveVoyageCode(ctx context.Context, accountID uuid.UUID, code string) (*int64, error) {
	id, ok := m.voyages[code]
	if !ok {
		return nil, nil
	}
	return &id, nil
}

func (m *memStore) InsertEvent(ctx context.Context, ev *telemetry.Event) (bool, error) {
	if ev.VoyageID != nil && !m.known[*ev.VoyageID] {
		return false, fmt.Errorf("insert on table container_movements violates foreign key constraint (voyage_id=%d)", *ev.VoyageID)
	}
	if _, exists := m.events[ev.IdempotencyKey]; exists {
		return false, nil
	}
	copied := *ev
	m.events[ev.IdempotencyKey] = &copied
	return true, nil
}

func (m *memStore) FindDuplicate(ctx context.Context, ev *telemetry.Event) (*telemetry.Conflict, error) {
	stored, ok := m.events[ev.IdempotencyKey]
	if !ok {
		return nil, nil
	}
	return &telemetry.Conflict{
		ContainerID:    stored.ContainerID,
		EventType:      string(stored.EventType),
		Timestamp:      stored.Timestamp,
		DeviceID:       stored.DeviceID,
		Tag:            stored.Tag,
		IdempotencyKey: stored.IdempotencyKey,
	}, nil
}

func (m *memStore) GetStateForUpdate(ctx context.Context, containerID string) (*telemetry.ContainerState, error) {
	st, ok := m.states[containerID]
	if !ok {
		return nil, nil
	}
	copied := *st
	return &copied, nil
}

func (m *memStore) SaveState(ctx context.Context, st *telemetry.ContainerState) error {
	copied := *st
	m.states[st.ContainerID] = &copied
	return nil
}

func newTestPipeline(store *memStore, rules *fakeRuleSource, sink *fakeAlertSink) *Pipeline {
	var engine *AlertEngine
	if rules != nil {
		engine = NewAlertEngine(rules, sink)
	}
	return NewPipeline(store, engine, nil, 5*time.Second, 0)
}

func TestIngestIdempotence(t *testing.T) {
	store := newMemStore()
	p := newTestPipeline(store, nil, nil)
	accountID := uuid.New()

	payload := []RawEvent{{
		"container_id": "MSCU1234567",
		"ts_iso":       "2025-01-01T00:00:00Z",
		"event_type":   "MOVE",
		"temp_c":       5.0,
	}}

	first, err := p.Ingest(context.Background(), accountID, payload)
	if err != nil {
		t.Fatalf("first ingest: %v", err)
	}
	if first.Inserted != 1 {
		t.Errorf("first inserted = %d, want 1", first.Inserted)
	}

	second, err := p.Ingest(context.Background(), accountID, payload)
	if err != nil {
		t.Fatalf("second ingest: %v", err)
	}
	if second.Inserted != 0 {
		t.Errorf("second inserted = %d, want 0", second.Inserted)
	}
	if len(second.Conflicts) != 1 {
		t.Fatalf("second conflicts = %d, want 1", len(second.Conflicts))
	}
	if second.Conflicts[0].IdempotencyKey != "MSCU1234567|2025-01-01T00:00:00Z|MOVE|" {
		t.Errorf("conflict key = %q", second.Conflicts[0].IdempotencyKey)
	}

	if len(store.events) != 1 {
		t.Errorf("stored events = %d, want 1", len(store.events))
	}
	st := store.states["MSCU1234567"]
	if st == nil || st.LastTempC == nil || *st.LastTempC != 5.0 {
		t.Errorf("state temp = %v, want 5.0 applied exactly once", st)
	}
}

func TestIngestLastWriteWins(t *testing.T) {
	store := newMemStore()
	p := newTestPipeline(store, nil, nil)
	accountID := uuid.New()

	// Later-timestamped event submitted first; the older one must not win.
	if _, err := p.Ingest(context.Background(), accountID, []RawEvent{{
		"container_id": "MSCU1234567", "ts_iso": "2025-01-01T10:00:00Z", "temp_c": 5.0,
	}}); err != nil {
		t.Fatal(err)
	}
	if _, err := p.Ingest(context.Background(), accountID, []RawEvent{{
		"container_id": "MSCU1234567", "ts_iso": "2025-01-01T09:00:00Z", "temp_c": 9.0,
	}}); err != nil {
		t.Fatal(err)
	}

	st := store.states["MSCU1234567"]
	if st == nil || st.LastTempC == nil || *st.LastTempC != 5.0 {
		t.Errorf("state temp = %v, want 5.0 (the later timestamp)", st.LastTempC)
	}
	if !st.LastTimestamp.Equal(time.Date(2025, 1, 1, 10, 0, 0, 0, time.UTC)) {
		t.Errorf("state timestamp = %v, want 10:00", st.LastTimestamp)
	}
	if len(store.events) != 2 {
		t.Errorf("both unique events must still be appended, got %d", len(store.events))
	}
}

func TestIngestFieldCoalesce(t *testing.T) {
	store := newMemStore()
	p := newTestPipeline(store, nil, nil)
	accountID := uuid.New()

	if _, err := p.Ingest(context.Background(), accountID, []RawEvent{{
		"container_id": "MSCU1234567", "ts_iso": "2025-01-01T10:00:00Z", "temp_c": 4.0,
	}}); err != nil {
		t.Fatal(err)
	}
	if _, err := p.Ingest(context.Background(), accountID, []RawEvent{{
		"container_id": "MSCU1234567", "ts_iso": "2025-01-01T11:00:00Z", "lat": -23.95, "lng": -46.33,
	}}); err != nil {
		t.Fatal(err)
	}

	st := store.states["MSCU1234567"]
	if st.LastTempC == nil || *st.LastTempC != 4.0 {
		t.Errorf("position-only event blanked the known temperature: %v", st.LastTempC)
	}
	if st.LastLat == nil || *st.LastLat != -23.95 {
		t.Errorf("last_lat = %v, want -23.95", st.LastLat)
	}
}

func TestIngestBatchAtomicity(t *testing.T) {
	store := newMemStore()
	p := newTestPipeline(store, nil, nil)
	accountID := uuid.New()

	batch := []RawEvent{
		{"container_id": "MSCU1234567", "ts_iso": "2025-01-01T00:00:00Z"},
		{"container_id": "MSCU1234568", "ts_iso": "2025-01-01T00:01:00Z"},
		{"container_id": "MSCU1234569", "ts_iso": "2025-01-01T00:02:00Z"},
		{"container_id": "MSCU1234570", "voyage_id": 999.0}, // unknown voyage: FK violation
	}

	if _, err := p.Ingest(context.Background(), accountID, batch); err == nil {
		t.Fatal("expected the batch to fail")
	}

	if len(store.events) != 0 {
		t.Errorf("events stored after rollback = %d, want 0", len(store.events))
	}
	if len(store.states) != 0 {
		t.Errorf("states stored after rollback = %d, want 0 (none of the valid events may appear)", len(store.states))
	}
}

func TestIngestVoyageResolution(t *testing.T) {
	store := newMemStore()
	store.voyages["V-2025-01"] = 7
	store.known[7] = true
	p := newTestPipeline(store, nil, nil)
	accountID := uuid.New()

	t.Run("known code resolves", func(t *testing.T) {
		res, err := p.Ingest(context.Background(), accountID, []RawEvent{{
			"container_id": "MSCU1234567", "ts_iso": "2025-01-01T00:00:00Z", "voyage_code": "V-2025-01",
		}})
		if err != nil {
			t.Fatal(err)
		}
		if res.Inserted != 1 {
			t.Fatalf("inserted = %d", res.Inserted)
		}
		st := store.states["MSCU1234567"]
		if st.VoyageID == nil || *st.VoyageID != 7 {
			t.Errorf("voyage_id = %v, want 7", st.VoyageID)
		}
	})

	t.Run("unknown code is accepted with nil voyage", func(t *testing.T) {
		res, err := p.Ingest(context.Background(), accountID, []RawEvent{{
			"container_id": "HLCU7654321", "ts_iso": "2025-01-01T00:00:00Z", "voyage_code": "NOPE",
		}})
		if err != nil {
			t.Fatalf("unresolvable code must not fail the event: %v", err)
		}
		if res.Inserted != 1 {
			t.Errorf("inserted = %d, want 1", res.Inserted)
		}
		if store.states["HLCU7654321"].VoyageID != nil {
			t.Error("voyage_id should stay nil")
		}
	})
}

func TestIngestRejectsOversizedBatch(t *testing.T) {
	store := newMemStore()
	p := NewPipeline(store, nil, nil, 5*time.Second, 1)

	res, err := p.Ingest(context.Background(), uuid.New(), []RawEvent{
		{"container_id": "MSCU1234567", "ts_iso": "2025-01-01T00:00:00Z"},
		{"container_id": "MSCU1234568", "ts_iso": "2025-01-01T00:01:00Z"},
	})
	if !errors.Is(err, telemetry.ErrBatchTooLarge) {
		t.Fatalf("err = %v, want ErrBatchTooLarge", err)
	}
	if res != nil {
		t.Errorf("result = %+v, want nil on rejection", res)
	}
	if len(store.events) != 0 {
		t.Errorf("stored events = %d, want 0 (no partial acceptance)", len(store.events))
	}

	// A batch at the limit goes through untouched.
	ok, err := p.Ingest(context.Background(), uuid.New(), []RawEvent{
		{"container_id": "MSCU1234567", "ts_iso": "2025-01-01T00:00:00Z"},
	})
	if err != nil {
		t.Fatal(err)
	}
	if ok.Inserted != 1 {
		t.Errorf("inserted = %d, want 1", ok.Inserted)
	}
}

func TestIngestSkipsItemsWithoutContainer(t *testing.T) {
	store := newMemStore()
	p := newTestPipeline(store, nil, nil)

	res, err := p.Ingest(context.Background(), uuid.New(), []RawEvent{
		{"temp_c": 5.0},
		{"container_id": "MSCU1234567", "ts_iso": "2025-01-01T00:00:00Z"},
	})
	if err != nil {
		t.Fatal(err)
	}
	if res.Inserted != 1 || res.Skipped != 1 {
		t.Errorf("inserted=%d skipped=%d, want 1/1", res.Inserted, res.Skipped)
	}
}

func TestIngestEndToEndAlerting(t *testing.T) {
	store := newMemStore()
	accountID := uuid.New()
	rules := &fakeRuleSource{rules: map[string]*container.Rules{
		"MSCU1234567": {
			AccountID:  accountID,
			Thresholds: container.Thresholds{MinTemp: f64(-5), MaxTemp: f64(10)},
		},
	}}
	sink := &fakeAlertSink{}
	p := newTestPipeline(store, rules, sink)

	res, err := p.Ingest(context.Background(), accountID, []RawEvent{
		{"container_id": "MSCU1234567", "temp_c": 12.0, "ts_iso": "2025-01-01T00:00:00Z"},
		{"container_id": "MSCU1234567", "temp_c": 2.0, "ts_iso": "2025-01-01T00:05:00Z"},
	})
	if err != nil {
		t.Fatal(err)
	}

	if res.Inserted != 2 {
		t.Errorf("inserted = %d, want 2", res.Inserted)
	}

	st := store.states["MSCU1234567"]
	if st.LastTempC == nil || *st.LastTempC != 2.0 {
		t.Errorf("final state temp = %v, want 2.0", st.LastTempC)
	}

	if len(sink.inserted) != 1 {
		t.Fatalf("alerts = %d, want exactly one for the 12°C reading", len(sink.inserted))
	}
	if sink.inserted[0].AlertType != alert.TempHigh {
		t.Errorf("alert_type = %q, want TEMP_HIGH", sink.inserted[0].AlertType)
	}

	m := p.Metrics()
	if m.EventsInserted != 2 || m.AlertsGenerated != 1 {
		t.Errorf("metrics inserted=%d alerts=%d, want 2/1", m.EventsInserted, m.AlertsGenerated)
	}
}
