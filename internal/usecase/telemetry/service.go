package telemetry

import (
	"context"

	domain "container-tracker/internal/domain/telemetry"
	"container-tracker/internal/ingestion"
	appErrors "container-tracker/pkg/errors"

	"github.com/google/uuid"
)

// Service fronts the ingestion pipeline for the HTTP delivery layer.
type Service struct {
	pipeline *ingestion.Pipeline
}

func NewService(pipeline *ingestion.Pipeline) *Service {
	return &Service{pipeline: pipeline}
}

// Ingest decodes one of the accepted request shapes and applies the batch.
func (s *Service) Ingest(ctx context.Context, accountID uuid.UUID, body []byte) (*domain.Result, error) {
	items, err := ingestion.ParseIngestBody(body)
	if err != nil {
		return nil, appErrors.NewAppError("INVALID_PAYLOAD", "Request body is not a telemetry batch", err)
	}
	return s.pipeline.Ingest(ctx, accountID, items)
}

// Metrics returns the pipeline counters.
func (s *Service) Metrics() ingestion.IngestMetrics {
	return s.pipeline.Metrics()
}
