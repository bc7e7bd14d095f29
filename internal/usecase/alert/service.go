package alert

import (
	"context"

	domain "container-tracker/internal/domain/alert"
	"container-tracker/internal/logger"
	appErrors "container-tracker/pkg/errors"
	"container-tracker/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Service implements alert use cases.
type Service struct {
	alerts domain.Repository
}

func NewService(alerts domain.Repository) *Service {
	return &Service{alerts: alerts}
}

func (s *Service) ListAlerts(ctx context.Context, accountID uuid.UUID, req *ListAlertsRequest) ([]AlertResponse, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, appErrors.NewAppError("VALIDATION_ERROR", "Invalid input", err)
	}

	alerts, err := s.alerts.List(ctx, accountID, domain.Filter{
		Status:      req.Status,
		VoyageID:    req.VoyageID,
		ContainerID: req.ContainerID,
		Limit:       req.Limit,
	})
	if err != nil {
		return nil, err
	}

	responses := make([]AlertResponse, len(alerts))
	for i, a := range alerts {
		responses[i] = *ToAlertResponse(a)
	}
	return responses, nil
}

func (s *Service) Acknowledge(ctx context.Context, accountID, alertID uuid.UUID, userID *string) (*AlertResponse, error) {
	acked, err := s.alerts.Acknowledge(ctx, accountID, alertID, userID)
	if err != nil {
		return nil, err
	}

	logger.Info("Alert acknowledged",
		zap.String("alert_id", alertID.String()),
		zap.String("container_id", acked.ContainerID),
		zap.String("event", "alert_acknowledged"),
	)

	return ToAlertResponse(acked), nil
}

func (s *Service) Delete(ctx context.Context, accountID, alertID uuid.UUID) error {
	return s.alerts.Delete(ctx, accountID, alertID)
}
