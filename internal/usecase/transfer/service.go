package transfer

import (
	"context"
	"fmt"
	"time"

	domain "container-tracker/internal/domain/transfer"
	"container-tracker/internal/ingestion"
	"container-tracker/internal/logger"
	appErrors "container-tracker/pkg/errors"
	"container-tracker/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Service implements ship-to-ship transfer use cases. Container scans during
// an active session land in the movement log as MOVE events, so transfers
// share the ingestion path's dedup and state projection.
type Service struct {
	transfers domain.Repository
	pipeline  *ingestion.Pipeline
}

func NewService(transfers domain.Repository, pipeline *ingestion.Pipeline) *Service {
	return &Service{
		transfers: transfers,
		pipeline:  pipeline,
	}
}

func (s *Service) Start(ctx context.Context, accountID uuid.UUID, userID string, req *StartTransferRequest) (*SessionResponse, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, appErrors.NewAppError("VALIDATION_ERROR", "Invalid input", err)
	}

	session, err := s.transfers.Start(ctx, &domain.Session{
		AccountID:  accountID,
		FromShipID: req.FromShipID,
		ToShipID:   req.ToShipID,
		StartedBy:  userID,
		StartedAt:  time.Now(),
	})
	if err != nil {
		return nil, err
	}

	logger.Info("Transfer started",
		zap.String("session_id", session.ID.String()),
		zap.Int64("from_ship_id", session.FromShipID),
		zap.Int64("to_ship_id", session.ToShipID),
		zap.String("event", "transfer_started"),
	)

	return ToSessionResponse(session), nil
}

func (s *Service) End(ctx context.Context, accountID uuid.UUID) (*SessionResponse, error) {
	session, err := s.transfers.End(ctx, accountID)
	if err != nil {
		return nil, err
	}

	logger.Info("Transfer ended",
		zap.String("session_id", session.ID.String()),
		zap.String("event", "transfer_ended"),
	)

	return ToSessionResponse(session), nil
}

func (s *Service) GetActive(ctx context.Context, accountID uuid.UUID) (*SessionResponse, error) {
	session, err := s.transfers.GetActive(ctx, accountID)
	if err != nil {
		return nil, err
	}
	if session == nil {
		return nil, nil
	}
	return ToSessionResponse(session), nil
}

// Scan records a container sighting during the active transfer. Without an
// active session the scan is rejected.
func (s *Service) Scan(ctx context.Context, accountID uuid.UUID, req *ScanRequest) (*ScanResponse, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, appErrors.NewAppError("VALIDATION_ERROR", "Invalid input", err)
	}

	session, err := s.transfers.GetActive(ctx, accountID)
	if err != nil {
		return nil, err
	}
	if session == nil {
		return nil, domain.ErrNoActive
	}

	containerID := utils.NormalizeContainerID(req.ContainerID)
	raw := ingestion.RawEvent{
		"container_id": containerID,
		"event_type":   "MOVE",
		"location":     fmt.Sprintf("transfer:%d->%d", session.FromShipID, session.ToShipID),
		"source":       "transfer-scan",
		"transfer_id":  session.ID.String(),
	}
	if req.Tag != nil {
		raw["tag"] = *req.Tag
	}

	result, err := s.pipeline.Ingest(ctx, accountID, []ingestion.RawEvent{raw})
	if err != nil {
		return nil, err
	}

	return &ScanResponse{
		ContainerID: containerID,
		SessionID:   session.ID,
		Recorded:    result.Inserted > 0,
		Duplicate:   len(result.Conflicts) > 0,
	}, nil
}
