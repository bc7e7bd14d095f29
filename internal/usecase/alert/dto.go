package alert

import (
	"time"

	domain "container-tracker/internal/domain/alert"

	"github.com/google/uuid"
)

type ListAlertsRequest struct {
	Status      string `form:"status" validate:"omitempty,oneof=pending resolved"`
	VoyageID    *int64 `form:"voyage_id"`
	ContainerID string `form:"container_id"`
	Limit       int    `form:"limit" validate:"omitempty,min=1,max=500"`
}

type AlertResponse struct {
	ID             uuid.UUID  `json:"id"`
	ContainerID    string     `json:"container_id"`
	AlertType      string     `json:"alert_type"`
	Message        string     `json:"message"`
	Severity       int        `json:"severity"`
	Acknowledged   bool       `json:"acknowledged"`
	AcknowledgedBy *string    `json:"acknowledged_by,omitempty"`
	AcknowledgedAt *time.Time `json:"acknowledged_at,omitempty"`
	CreatedAt      time.Time  `json:"created_at"`
}

func ToAlertResponse(a *domain.Alert) *AlertResponse {
	if a == nil {
		return nil
	}
	return &AlertResponse{
		ID:             a.ID,
		ContainerID:    a.ContainerID,
		AlertType:      string(a.AlertType),
		Message:        a.Message,
		Severity:       a.Severity,
		Acknowledged:   a.Acknowledged(),
		AcknowledgedBy: a.AcknowledgedBy,
		AcknowledgedAt: a.AcknowledgedAt,
		CreatedAt:      a.CreatedAt,
	}
}
