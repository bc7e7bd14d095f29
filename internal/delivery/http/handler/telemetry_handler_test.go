package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	domain "container-tracker/internal/domain/telemetry"
	"container-tracker/internal/ingestion"
	"container-tracker/internal/logger"
	"container-tracker/internal/usecase/telemetry"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

func init() {
	_ = logger.Init("test")
	gin.SetMode(gin.TestMode)
}

// stubTelemetryStore applies batches against in-memory maps, enough to drive
// the ingest endpoint through real deduplication.
type stubTelemetryStore struct {
	events map[string]*domain.Event
	states map[string]*domain.ContainerState
}

func newStubTelemetryStore() *stubTelemetryStore {
	return &stubTelemetryStore{
		events: map[string]*domain.Event{},
		states: map[string]*domain.ContainerState{},
	}
}

func (s *stubTelemetryStore) WithinBatch(ctx context.Context, fn func(tx domain.BatchStore) error) error {
	return fn(s)
}

func (s *stubTelemetryStore) ResolveVoyageCode(ctx context.Context, accountID uuid.UUID, code string) (*int64, error) {
	return nil, nil
}

func (s *stubTelemetryStore) InsertEvent(ctx context.Context, ev *domain.Event) (bool, error) {
	if _, exists := s.events[ev.IdempotencyKey]; exists {
		return false, nil
	}
	copied := *ev
	s.events[ev.IdempotencyKey] = &copied
	return true, nil
}

func (s *stubTelemetryStore) FindDuplicate(ctx context.Context, ev *domain.Event) (*domain.Conflict, error) {
	stored, ok := s.events[ev.IdempotencyKey]
	if !ok {
		return nil, nil
	}
	return &domain.Conflict{
		ContainerID:    stored.ContainerID,
		EventType:      string(stored.EventType),
		Timestamp:      stored.Timestamp,
		IdempotencyKey: stored.IdempotencyKey,
	}, nil
}

func (s *stubTelemetryStore) GetStateForUpdate(ctx context.Context, containerID string) (*domain.ContainerState, error) {
	st, ok := s.states[containerID]
	if !ok {
		return nil, nil
	}
	copied := *st
	return &copied, nil
}

func (s *stubTelemetryStore) SaveState(ctx context.Context, st *domain.ContainerState) error {
	copied := *st
	s.states[st.ContainerID] = &copied
	return nil
}

func newIngestRouter(maxBatchSize int) *gin.Engine {
	pipeline := ingestion.NewPipeline(newStubTelemetryStore(), nil, nil, 5*time.Second, maxBatchSize)
	h := NewTelemetryHandler(telemetry.NewService(pipeline))

	r := gin.New()
	group := r.Group("/api/v1")
	group.Use(func(c *gin.Context) {
		c.Set("accountID", uuid.New())
		c.Next()
	})
	h.RegisterRoutes(group)
	return r
}

func postIngest(t *testing.T, r *gin.Engine, body string) (*httptest.ResponseRecorder, map[string]interface{}) {
	t.Helper()

	req := httptest.NewRequest(http.MethodPost, "/api/v1/ingest", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	var decoded map[string]interface{}
	if err := json.Unmarshal(w.Body.Bytes(), &decoded); err != nil {
		t.Fatalf("response is not JSON: %v (body %q)", err, w.Body.String())
	}
	return w, decoded
}

func TestIngestOmitsConflictsWhenEmpty(t *testing.T) {
	r := newIngestRouter(0)
	body := `{"items":[{"container_id":"MSCU1234567","ts_iso":"2025-01-01T00:00:00Z","temp_c":5.0}]}`

	w, first := postIngest(t, r, body)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}
	if first["ok"] != true || first["inserted"] != float64(1) {
		t.Errorf("first response = %v, want ok=true inserted=1", first)
	}
	if _, present := first["conflicts"]; present {
		t.Errorf("conflicts key present on a clean batch: %v", first["conflicts"])
	}

	// The same batch again deduplicates, and only then do conflicts appear.
	_, second := postIngest(t, r, body)
	if second["inserted"] != float64(0) {
		t.Errorf("second inserted = %v, want 0", second["inserted"])
	}
	conflicts, ok := second["conflicts"].([]interface{})
	if !ok || len(conflicts) != 1 {
		t.Errorf("second conflicts = %v, want one entry", second["conflicts"])
	}
}

func TestIngestRejectsBatchOverLimit(t *testing.T) {
	r := newIngestRouter(1)
	body := `{"items":[
		{"container_id":"MSCU1234567","ts_iso":"2025-01-01T00:00:00Z"},
		{"container_id":"MSCU1234568","ts_iso":"2025-01-01T00:01:00Z"}
	]}`

	w, decoded := postIngest(t, r, body)
	if w.Code != http.StatusRequestEntityTooLarge {
		t.Fatalf("status = %d, want 413", w.Code)
	}
	if decoded["success"] != false {
		t.Errorf("response = %v, want an error envelope", decoded)
	}
}
