package models

import (
	"time"

	"github.com/google/uuid"
)

// AlertModel maps the alerts table.
type AlertModel struct {
	ID             uuid.UUID  `gorm:"column:id;primaryKey"`
	AccountID      uuid.UUID  `gorm:"column:account_id"`
	ContainerID    string     `gorm:"column:container_id"`
	AlertType      string     `gorm:"column:alert_type"`
	Message        string     `gorm:"column:message"`
	Severity       int        `gorm:"column:severity"`
	AcknowledgedBy *string    `gorm:"column:acknowledged_by"`
	AcknowledgedAt *time.Time `gorm:"column:acknowledged_at"`
	CreatedAt      time.Time  `gorm:"column:created_at"`
}

func (AlertModel) TableName() string {
	return "alerts"
}
