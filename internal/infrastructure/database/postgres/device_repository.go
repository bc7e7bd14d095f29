package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"container-tracker/internal/database"
	domain "container-tracker/internal/domain/device"
	"container-tracker/internal/infrastructure/database/postgres/models"

	"gorm.io/gorm"
)

type DeviceRepository struct {
	db *gorm.DB
}

func NewDeviceRepository(db *database.Database) *DeviceRepository {
	return &DeviceRepository{db: db.DB}
}

func (r *DeviceRepository) Upsert(ctx context.Context, d *domain.Device) (*domain.Device, error) {
	var metadata interface{}
	if d.Metadata != nil {
		raw, err := json.Marshal(d.Metadata)
		if err != nil {
			return nil, fmt.Errorf("failed to encode device metadata: %w", err)
		}
		metadata = string(raw)
	}

	var model models.DeviceModel
	result := r.db.WithContext(ctx).Raw(`
        INSERT INTO devices (device_id, alias, model, site_id, metadata)
        VALUES (?,?,?,?,?::jsonb)
        ON CONFLICT (device_id) DO UPDATE SET
            alias    = COALESCE(EXCLUDED.alias, devices.alias),
            model    = COALESCE(EXCLUDED.model, devices.model),
            site_id  = COALESCE(EXCLUDED.site_id, devices.site_id),
            metadata = COALESCE(EXCLUDED.metadata, devices.metadata)
        RETURNING id, device_id, alias, model, site_id, metadata, last_seen, created_at`,
		d.DeviceID, d.Alias, d.Model, d.SiteID, metadata,
	).Scan(&model)
	if result.Error != nil {
		return nil, fmt.Errorf("failed to upsert device: %w", result.Error)
	}

	return toDevice(&model)
}

func (r *DeviceRepository) GetByDeviceID(ctx context.Context, deviceID string) (*domain.Device, error) {
	var model models.DeviceModel
	err := r.db.WithContext(ctx).
		Where("device_id = ?", deviceID).
		First(&model).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return toDevice(&model)
}

func (r *DeviceRepository) List(ctx context.Context, limit int) ([]*domain.Device, error) {
	if limit <= 0 || limit > 500 {
		limit = 500
	}
	var rows []models.DeviceModel
	err := r.db.WithContext(ctx).
		Order("created_at DESC").
		Limit(limit).
		Find(&rows).Error
	if err != nil {
		return nil, err
	}

	devices := make([]*domain.Device, 0, len(rows))
	for i := range rows {
		d, err := toDevice(&rows[i])
		if err != nil {
			return nil, err
		}
		devices = append(devices, d)
	}
	return devices, nil
}

// AttachToContainer moves the binding in one transaction: the device is
// detached from whichever container held it, then bound to the target.
func (r *DeviceRepository) AttachToContainer(ctx context.Context, containerID, deviceID string) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&models.DeviceModel{}).
			Where("device_id = ?", deviceID).
			Count(&count).Error; err != nil {
			return err
		}
		if count == 0 {
			return domain.ErrNotFound
		}

		if err := tx.Exec(
			`UPDATE containers SET iot_device_id = NULL WHERE iot_device_id = ?`,
			deviceID,
		).Error; err != nil {
			return err
		}

		result := tx.Exec(
			`UPDATE containers SET iot_device_id = ? WHERE id = ?`,
			deviceID, containerID,
		)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return domain.ErrContainerMissing
		}
		return nil
	})
}

func (r *DeviceRepository) UpdateLastSeen(ctx context.Context, deviceID string) error {
	return r.db.WithContext(ctx).Exec(
		`UPDATE devices SET last_seen = now() WHERE device_id = ?`,
		deviceID,
	).Error
}

func toDevice(m *models.DeviceModel) (*domain.Device, error) {
	var metadata map[string]interface{}
	if len(m.Metadata) > 0 {
		if err := json.Unmarshal(m.Metadata, &metadata); err != nil {
			return nil, fmt.Errorf("failed to decode device metadata: %w", err)
		}
	}
	return &domain.Device{
		ID:        m.ID,
		DeviceID:  m.DeviceID,
		Alias:     m.Alias,
		Model:     m.Model,
		SiteID:    m.SiteID,
		Metadata:  metadata,
		LastSeen:  m.LastSeen,
		CreatedAt: m.CreatedAt,
	}, nil
}

var _ domain.Repository = (*DeviceRepository)(nil)
