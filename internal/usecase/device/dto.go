package device

import (
	"time"

	domain "container-tracker/internal/domain/device"

	"github.com/google/uuid"
)

type RegisterDeviceRequest struct {
	DeviceID string                 `json:"device_id" validate:"required,min=3,max=100"`
	Alias    *string                `json:"alias" validate:"omitempty,max=100"`
	Model    *string                `json:"model" validate:"omitempty,max=50"`
	SiteID   *uuid.UUID             `json:"site_id"`
	Metadata map[string]interface{} `json:"metadata"`
}

type AttachDeviceRequest struct {
	ContainerID string `json:"container_id" validate:"required,min=4,max=20"`
}

type DeviceResponse struct {
	ID        uuid.UUID              `json:"id"`
	DeviceID  string                 `json:"device_id"`
	Alias     *string                `json:"alias,omitempty"`
	Model     *string                `json:"model,omitempty"`
	SiteID    *uuid.UUID             `json:"site_id,omitempty"`
	Metadata  map[string]interface{} `json:"metadata,omitempty"`
	LastSeen  *time.Time             `json:"last_seen,omitempty"`
	CreatedAt time.Time              `json:"created_at"`
}

func ToDeviceResponse(d *domain.Device) *DeviceResponse {
	if d == nil {
		return nil
	}
	return &DeviceResponse{
		ID:        d.ID,
		DeviceID:  d.DeviceID,
		Alias:     d.Alias,
		Model:     d.Model,
		SiteID:    d.SiteID,
		Metadata:  d.Metadata,
		LastSeen:  d.LastSeen,
		CreatedAt: d.CreatedAt,
	}
}
