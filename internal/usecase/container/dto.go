package container

import (
	"time"

	domain "container-tracker/internal/domain/container"
	"container-tracker/internal/domain/telemetry"

	"github.com/google/uuid"
)

type CreateContainerRequest struct {
	ContainerID   string   `json:"container_id" validate:"required,min=4,max=20"`
	IMO           string   `json:"imo" validate:"omitempty,max=20"`
	ContainerType *string  `json:"container_type" validate:"omitempty,max=50"`
	Owner         *string  `json:"owner" validate:"omitempty,max=100"`
	Description   *string  `json:"description" validate:"omitempty,max=500"`
	MinTemp       *float64 `json:"min_temp"`
	MaxTemp       *float64 `json:"max_temp"`
}

type UpdateContainerRequest struct {
	ContainerType *string  `json:"container_type" validate:"omitempty,max=50"`
	Owner         *string  `json:"owner" validate:"omitempty,max=100"`
	Description   *string  `json:"description" validate:"omitempty,max=500"`
	MinTemp       *float64 `json:"min_temp"`
	MaxTemp       *float64 `json:"max_temp"`
}

type ContainerResponse struct {
	ContainerID   string    `json:"container_id"`
	AccountID     uuid.UUID `json:"account_id"`
	IMO           string    `json:"imo,omitempty"`
	ContainerType *string   `json:"container_type,omitempty"`
	Owner         *string   `json:"owner,omitempty"`
	Description   *string   `json:"description,omitempty"`
	MinTemp       *float64  `json:"min_temp,omitempty"`
	MaxTemp       *float64  `json:"max_temp,omitempty"`
	IoTDeviceID   *string   `json:"iot_device_id,omitempty"`
	CreatedAt     time.Time `json:"created_at"`
}

type StateResponse struct {
	ContainerID        string     `json:"container_id"`
	LastEventType      string     `json:"last_event_type"`
	LastTimestamp      *time.Time `json:"last_ts,omitempty"`
	LastLat            *float64   `json:"last_lat,omitempty"`
	LastLng            *float64   `json:"last_lng,omitempty"`
	LastLocation       *string    `json:"last_location,omitempty"`
	LastSite           *string    `json:"last_site,omitempty"`
	LastTag            *string    `json:"last_tag,omitempty"`
	LastDeviceID       *string    `json:"last_device_id,omitempty"`
	LastBatteryPercent *float64   `json:"last_battery_percent,omitempty"`
	LastTempC          *float64   `json:"last_temp_c,omitempty"`
	VoyageID           *int64     `json:"voyage_id,omitempty"`
	UpdatedAt          time.Time  `json:"updated_at"`
}

type DashboardResponse struct {
	MovementsPerDay []domain.DayCount       `json:"movements_per_day"`
	TopLocations    []domain.LocationCount  `json:"top_locations"`
	TopContainers   []domain.ContainerCount `json:"top_containers"`
}

func ToContainerResponse(c *domain.Container) *ContainerResponse {
	if c == nil {
		return nil
	}
	return &ContainerResponse{
		ContainerID:   c.ID,
		AccountID:     c.AccountID,
		IMO:           c.IMO,
		ContainerType: c.ContainerType,
		Owner:         c.Owner,
		Description:   c.Description,
		MinTemp:       c.MinTemp,
		MaxTemp:       c.MaxTemp,
		IoTDeviceID:   c.IoTDeviceID,
		CreatedAt:     c.CreatedAt,
	}
}

func ToStateResponse(s *telemetry.ContainerState) *StateResponse {
	if s == nil {
		return nil
	}
	return &StateResponse{
		ContainerID:        s.ContainerID,
		LastEventType:      s.LastEventType,
		LastTimestamp:      s.LastTimestamp,
		LastLat:            s.LastLat,
		LastLng:            s.LastLng,
		LastLocation:       s.LastLocation,
		LastSite:           s.LastSite,
		LastTag:            s.LastTag,
		LastDeviceID:       s.LastDeviceID,
		LastBatteryPercent: s.LastBatteryPercent,
		LastTempC:          s.LastTempC,
		VoyageID:           s.VoyageID,
		UpdatedAt:          s.UpdatedAt,
	}
}
