package ingestion

import (
	"context"
	"fmt"
	"time"

	"container-tracker/internal/domain/telemetry"
	"container-tracker/internal/logger"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// StatePublisher receives projection changes after a batch commits.
// Implemented by the websocket hub; a nil publisher disables streaming.
type StatePublisher interface {
	PublishStateUpdates(updates []StateUpdate)
}

// Pipeline applies batches of raw telemetry. One batch is one database
// transaction: deduplicated append to the event log, then conditional update
// of the per-container state projection. Any unexpected error rolls the
// whole batch back, so a client may safely retry it; the idempotency keys
// make the retry a no-op for rows that did land.
type Pipeline struct {
	store     telemetry.Store
	alerts    *AlertEngine
	publisher StatePublisher

	batchTimeout time.Duration
	maxBatchSize int

	metrics *MetricsTracker
}

type alertCandidate struct {
	containerID string
	tempC       float64
}

func NewPipeline(store telemetry.Store, alerts *AlertEngine, publisher StatePublisher, batchTimeout time.Duration, maxBatchSize int) *Pipeline {
	if batchTimeout <= 0 {
		batchTimeout = 30 * time.Second
	}
	return &Pipeline{
		store:        store,
		alerts:       alerts,
		publisher:    publisher,
		batchTimeout: batchTimeout,
		maxBatchSize: maxBatchSize,
		metrics:      NewMetricsTracker(),
	}
}

// Ingest normalizes and applies one batch for the given account. Batches
// larger than the configured limit are rejected whole with ErrBatchTooLarge
// before any event is touched.
//
// Per event, inside the shared transaction: resolve the voyage code when
// only a code was given, append the event unless its idempotency key exists,
// then update the projection per ShouldApply/MergeState. Duplicates are
// recorded as conflict diagnostics and the batch continues; integrity and
// store errors abort and roll back everything.
//
// Alert evaluation and state streaming run after commit: they are
// best-effort side channels, not part of the ingestion atomicity boundary.
func (p *Pipeline) Ingest(ctx context.Context, accountID uuid.UUID, items []RawEvent) (*telemetry.Result, error) {
	if p.maxBatchSize > 0 && len(items) > p.maxBatchSize {
		return nil, fmt.Errorf("%w: %d events, limit is %d", telemetry.ErrBatchTooLarge, len(items), p.maxBatchSize)
	}

	now := time.Now()
	result := &telemetry.Result{}
	var candidates []alertCandidate
	var updates []StateUpdate

	ctx, cancel := context.WithTimeout(ctx, p.batchTimeout)
	defer cancel()

	start := time.Now()
	err := p.store.WithinBatch(ctx, func(tx telemetry.BatchStore) error {
		for _, raw := range items {
			ev := Normalize(raw, now)
			if ev.ContainerID == "" {
				result.Skipped++
				continue
			}

			if ev.VoyageID == nil && ev.VoyageCode != nil {
				voyageID, err := tx.ResolveVoyageCode(ctx, accountID, *ev.VoyageCode)
				if err != nil {
					return err
				}
				ev.VoyageID = voyageID
			}

			applied, err := tx.InsertEvent(ctx, ev)
			if err != nil {
				return err
			}

			current, err := tx.GetStateForUpdate(ctx, ev.ContainerID)
			if err != nil {
				return err
			}

			updated := false
			if ShouldApply(current, ev, applied) {
				next := MergeState(current, ev, now)
				if err := tx.SaveState(ctx, next); err != nil {
					return err
				}
				updated = true
				updates = append(updates, StateUpdate{
					ContainerID:    next.ContainerID,
					EventType:      next.LastEventType,
					Timestamp:      next.LastTimestamp,
					Lat:            next.LastLat,
					Lng:            next.LastLng,
					TempC:          next.LastTempC,
					BatteryPercent: next.LastBatteryPercent,
				})
			}

			if applied {
				result.Inserted++
			} else {
				conflict, err := tx.FindDuplicate(ctx, ev)
				if err != nil {
					logger.Debug("conflict diagnostic lookup failed",
						zap.String("idempotency_key", ev.IdempotencyKey),
						zap.Error(err),
					)
				} else if conflict != nil {
					result.Conflicts = append(result.Conflicts, *conflict)
				}
			}

			if (applied || updated) && ev.TempC != nil {
				candidates = append(candidates, alertCandidate{
					containerID: ev.ContainerID,
					tempC:       *ev.TempC,
				})
			}
		}
		return nil
	})
	if err != nil {
		p.metrics.Update(func(m *IngestMetrics) {
			m.BatchesFailed++
			m.EventsReceived += int64(len(items))
		})
		return nil, err
	}

	p.metrics.Update(func(m *IngestMetrics) {
		m.BatchesProcessed++
		m.EventsReceived += int64(len(items))
		m.EventsInserted += int64(result.Inserted)
		m.EventsDeduplicated += int64(len(result.Conflicts))
		m.EventsSkipped += int64(result.Skipped)
		m.LastProcessedAt = time.Now()

		batchTime := time.Since(start)
		if m.AverageBatchTime == 0 {
			m.AverageBatchTime = batchTime
		} else {
			m.AverageBatchTime = (m.AverageBatchTime + batchTime) / 2
		}
	})

	p.evaluateAlerts(candidates)

	if p.publisher != nil && len(updates) > 0 {
		p.publisher.PublishStateUpdates(updates)
	}

	return result, nil
}

// evaluateAlerts runs after the batch committed, under its own deadline so
// an expired batch context cannot drop evaluations for committed telemetry.
func (p *Pipeline) evaluateAlerts(candidates []alertCandidate) {
	if p.alerts == nil || len(candidates) == 0 {
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	for _, c := range candidates {
		if p.alerts.CheckTemperature(ctx, c.containerID, c.tempC) {
			p.metrics.Update(func(m *IngestMetrics) {
				m.AlertsGenerated++
			})
		}
	}
}

// Metrics returns a snapshot of the pipeline counters.
func (p *Pipeline) Metrics() IngestMetrics {
	return p.metrics.Snapshot()
}
