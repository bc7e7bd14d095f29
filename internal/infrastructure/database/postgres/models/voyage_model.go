package models

import (
	"time"

	"github.com/google/uuid"
)

// ShipModel maps the ships table.
type ShipModel struct {
	ShipID    int64     `gorm:"column:ship_id;primaryKey;autoIncrement"`
	AccountID uuid.UUID `gorm:"column:account_id"`
	IMO       string    `gorm:"column:imo"`
	Name      string    `gorm:"column:name"`
	CreatedAt time.Time `gorm:"column:created_at"`
}

func (ShipModel) TableName() string {
	return "ships"
}

// VoyageModel maps the voyages table.
type VoyageModel struct {
	VoyageID    int64      `gorm:"column:voyage_id;primaryKey;autoIncrement"`
	ShipID      int64      `gorm:"column:ship_id"`
	VoyageCode  string     `gorm:"column:voyage_code"`
	Status      string     `gorm:"column:status"`
	DepartPort  *string    `gorm:"column:depart_port"`
	ArrivePort  *string    `gorm:"column:arrive_port"`
	StartedAt   *time.Time `gorm:"column:started_at"`
	ArrivedAt   *time.Time `gorm:"column:arrived_at"`
	CompletedAt *time.Time `gorm:"column:completed_at"`
	CreatedAt   time.Time  `gorm:"column:created_at"`
}

func (VoyageModel) TableName() string {
	return "voyages"
}

// VoyageContainerModel maps the voyage_containers join table.
type VoyageContainerModel struct {
	VoyageID    int64  `gorm:"column:voyage_id;primaryKey"`
	ContainerID string `gorm:"column:container_id;primaryKey"`
}

func (VoyageContainerModel) TableName() string {
	return "voyage_containers"
}
