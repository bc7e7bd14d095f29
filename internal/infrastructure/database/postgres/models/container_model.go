package models

import (
	"time"

	"github.com/google/uuid"
)

// ContainerModel maps the containers table.
type ContainerModel struct {
	ID            string    `gorm:"column:id;primaryKey"`
	AccountID     uuid.UUID `gorm:"column:account_id"`
	IMO           string    `gorm:"column:imo"`
	ContainerType *string   `gorm:"column:container_type"`
	Owner         *string   `gorm:"column:owner"`
	Description   *string   `gorm:"column:description"`
	MinTemp       *float64  `gorm:"column:min_temp"`
	MaxTemp       *float64  `gorm:"column:max_temp"`
	IoTDeviceID   *string   `gorm:"column:iot_device_id"`
	CreatedAt     time.Time `gorm:"column:created_at"`
}

func (ContainerModel) TableName() string {
	return "containers"
}

// ContainerStateModel maps the container_state projection table.
type ContainerStateModel struct {
	ContainerID        string     `gorm:"column:container_id;primaryKey"`
	LastEventType      string     `gorm:"column:last_event_type"`
	LastTsIso          *time.Time `gorm:"column:last_ts_iso"`
	LastLat            *float64   `gorm:"column:last_lat"`
	LastLng            *float64   `gorm:"column:last_lng"`
	LastLocation       *string    `gorm:"column:last_location"`
	LastSite           *string    `gorm:"column:last_site"`
	LastTag            *string    `gorm:"column:last_tag"`
	LastDeviceID       *string    `gorm:"column:last_device_id"`
	LastBatteryPercent *float64   `gorm:"column:last_battery_percent"`
	LastTempC          *float64   `gorm:"column:last_temp_c"`
	VoyageID           *int64     `gorm:"column:voyage_id"`
	UpdatedAt          time.Time  `gorm:"column:updated_at"`
}

func (ContainerStateModel) TableName() string {
	return "container_state"
}
