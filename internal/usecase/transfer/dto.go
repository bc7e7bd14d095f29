package transfer

import (
	"time"

	domain "container-tracker/internal/domain/transfer"

	"github.com/google/uuid"
)

type StartTransferRequest struct {
	FromShipID int64 `json:"from_ship_id" validate:"required"`
	ToShipID   int64 `json:"to_ship_id" validate:"required,nefield=FromShipID"`
}

type ScanRequest struct {
	ContainerID string  `json:"container_id" validate:"required,min=4,max=20"`
	Tag         *string `json:"tag" validate:"omitempty,max=100"`
}

type SessionResponse struct {
	ID         uuid.UUID  `json:"id"`
	FromShipID int64      `json:"from_ship_id"`
	ToShipID   int64      `json:"to_ship_id"`
	StartedBy  string     `json:"started_by"`
	StartedAt  time.Time  `json:"started_at"`
	EndedAt    *time.Time `json:"ended_at,omitempty"`
	Active     bool       `json:"active"`
}

type ScanResponse struct {
	ContainerID string    `json:"container_id"`
	SessionID   uuid.UUID `json:"session_id"`
	Recorded    bool      `json:"recorded"`
	Duplicate   bool      `json:"duplicate"`
}

func ToSessionResponse(s *domain.Session) *SessionResponse {
	if s == nil {
		return nil
	}
	return &SessionResponse{
		ID:         s.ID,
		FromShipID: s.FromShipID,
		ToShipID:   s.ToShipID,
		StartedBy:  s.StartedBy,
		StartedAt:  s.StartedAt,
		EndedAt:    s.EndedAt,
		Active:     s.Active(),
	}
}
