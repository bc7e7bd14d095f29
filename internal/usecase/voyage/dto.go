package voyage

import (
	"time"

	domain "container-tracker/internal/domain/voyage"

	"github.com/google/uuid"
)

type CreateShipRequest struct {
	IMO  string `json:"imo" validate:"required,min=3,max=20"`
	Name string `json:"name" validate:"required,min=2,max=100"`
}

type CreateVoyageRequest struct {
	ShipID     int64   `json:"ship_id" validate:"required"`
	VoyageCode string  `json:"voyage_code" validate:"required,min=2,max=50"`
	DepartPort *string `json:"depart_port" validate:"omitempty,max=100"`
	ArrivePort *string `json:"arrive_port" validate:"omitempty,max=100"`
}

type AddContainersRequest struct {
	ContainerIDs []string `json:"container_ids" validate:"required,min=1,dive,min=4,max=20"`
}

type ShipResponse struct {
	ShipID    int64     `json:"ship_id"`
	AccountID uuid.UUID `json:"account_id"`
	IMO       string    `json:"imo"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
}

type VoyageResponse struct {
	VoyageID    int64      `json:"voyage_id"`
	ShipID      int64      `json:"ship_id"`
	VoyageCode  string     `json:"voyage_code"`
	Status      string     `json:"status"`
	DepartPort  *string    `json:"depart_port,omitempty"`
	ArrivePort  *string    `json:"arrive_port,omitempty"`
	StartedAt   *time.Time `json:"started_at,omitempty"`
	ArrivedAt   *time.Time `json:"arrived_at,omitempty"`
	CompletedAt *time.Time `json:"completed_at,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
}

type VoyageDetailResponse struct {
	VoyageResponse
	Containers []string   `json:"containers"`
	LastUpdate *time.Time `json:"last_update,omitempty"`
}

type TrailResponse struct {
	VoyageID int64               `json:"voyage_id"`
	Points   []domain.TrailPoint `json:"points"`
}

func ToShipResponse(s *domain.Ship) *ShipResponse {
	if s == nil {
		return nil
	}
	return &ShipResponse{
		ShipID:    s.ShipID,
		AccountID: s.AccountID,
		IMO:       s.IMO,
		Name:      s.Name,
		CreatedAt: s.CreatedAt,
	}
}

func ToVoyageResponse(v *domain.Voyage) *VoyageResponse {
	if v == nil {
		return nil
	}
	return &VoyageResponse{
		VoyageID:    v.VoyageID,
		ShipID:      v.ShipID,
		VoyageCode:  v.VoyageCode,
		Status:      string(v.Status),
		DepartPort:  v.DepartPort,
		ArrivePort:  v.ArrivePort,
		StartedAt:   v.StartedAt,
		ArrivedAt:   v.ArrivedAt,
		CompletedAt: v.CompletedAt,
		CreatedAt:   v.CreatedAt,
	}
}
