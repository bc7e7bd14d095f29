package ingestion

import (
	"sync"
	"time"
)

// IngestMetrics tracks pipeline throughput for the health endpoint.
type IngestMetrics struct {
	BatchesProcessed   int64
	BatchesFailed      int64
	EventsReceived     int64
	EventsInserted     int64
	EventsDeduplicated int64
	EventsSkipped      int64
	AlertsGenerated    int64
	LastProcessedAt    time.Time
	AverageBatchTime   time.Duration
}

// MetricsTracker provides a goroutine-safe wrapper around IngestMetrics.
type MetricsTracker struct {
	mu      sync.RWMutex
	metrics IngestMetrics
}

func NewMetricsTracker() *MetricsTracker {
	return &MetricsTracker{}
}

// Update applies a mutation in a thread-safe way.
func (t *MetricsTracker) Update(fn func(*IngestMetrics)) {
	if fn == nil {
		return
	}

	t.mu.Lock()
	defer t.mu.Unlock()
	fn(&t.metrics)
}

// Snapshot returns a copy of the current metrics.
func (t *MetricsTracker) Snapshot() IngestMetrics {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.metrics
}

// Reset clears accumulated metrics.
func (t *MetricsTracker) Reset() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.metrics = IngestMetrics{}
}
