package models

import (
	"time"

	"github.com/google/uuid"
)

// TransferSessionModel maps the transfer_sessions table. One open session
// per account is enforced by a partial unique index on (account_id) WHERE
// ended_at IS NULL, with the repository re-checking under the transaction.
type TransferSessionModel struct {
	ID         uuid.UUID  `gorm:"column:id;primaryKey"`
	AccountID  uuid.UUID  `gorm:"column:account_id"`
	FromShipID int64      `gorm:"column:from_ship_id"`
	ToShipID   int64      `gorm:"column:to_ship_id"`
	StartedBy  string     `gorm:"column:started_by"`
	StartedAt  time.Time  `gorm:"column:started_at"`
	EndedAt    *time.Time `gorm:"column:ended_at"`
}

func (TransferSessionModel) TableName() string {
	return "transfer_sessions"
}
