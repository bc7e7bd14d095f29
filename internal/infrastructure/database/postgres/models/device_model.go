package models

import (
	"time"

	"github.com/google/uuid"
)

// DeviceModel maps the devices table. Metadata is raw JSONB.
type DeviceModel struct {
	ID        uuid.UUID  `gorm:"column:id;primaryKey;default:gen_random_uuid()"`
	DeviceID  string     `gorm:"column:device_id;uniqueIndex"`
	Alias     *string    `gorm:"column:alias"`
	Model     *string    `gorm:"column:model"`
	SiteID    *uuid.UUID `gorm:"column:site_id"`
	Metadata  []byte     `gorm:"column:metadata;type:jsonb"`
	LastSeen  *time.Time `gorm:"column:last_seen"`
	CreatedAt time.Time  `gorm:"column:created_at"`
}

func (DeviceModel) TableName() string {
	return "devices"
}
