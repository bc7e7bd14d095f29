package postgres

import (
	"context"
	"errors"
	"fmt"

	"container-tracker/internal/database"
	domain "container-tracker/internal/domain/container"
	"container-tracker/internal/domain/telemetry"
	"container-tracker/internal/infrastructure/database/postgres/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ContainerRepository struct {
	db *gorm.DB
}

func NewContainerRepository(db *database.Database) *ContainerRepository {
	return &ContainerRepository{db: db.DB}
}

func (r *ContainerRepository) Upsert(ctx context.Context, c *domain.Container) (*domain.Container, error) {
	var model models.ContainerModel
	result := r.db.WithContext(ctx).Raw(`
        INSERT INTO containers (id, account_id, imo, container_type, owner, description, min_temp, max_temp)
        VALUES (?,?,?,?,?,?,?,?)
        ON CONFLICT (id) DO UPDATE SET
            account_id     = EXCLUDED.account_id,
            imo            = EXCLUDED.imo,
            container_type = COALESCE(EXCLUDED.container_type, containers.container_type),
            owner          = COALESCE(EXCLUDED.owner, containers.owner),
            description    = COALESCE(EXCLUDED.description, containers.description),
            min_temp       = COALESCE(EXCLUDED.min_temp, containers.min_temp),
            max_temp       = COALESCE(EXCLUDED.max_temp, containers.max_temp)
        RETURNING id, account_id, imo, container_type, owner, description,
                  min_temp, max_temp, iot_device_id, created_at`,
		c.ID, c.AccountID, c.IMO, c.ContainerType, c.Owner, c.Description, c.MinTemp, c.MaxTemp,
	).Scan(&model)
	if result.Error != nil {
		return nil, fmt.Errorf("failed to upsert container: %w", result.Error)
	}

	return toContainer(&model), nil
}

func (r *ContainerRepository) GetByID(ctx context.Context, accountID uuid.UUID, id string) (*domain.Container, error) {
	var model models.ContainerModel
	err := r.db.WithContext(ctx).
		Where("account_id = ? AND id = ?", accountID, id).
		First(&model).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return toContainer(&model), nil
}

func (r *ContainerRepository) List(ctx context.Context, accountID uuid.UUID, limit int) ([]*domain.Container, error) {
	if limit <= 0 || limit > 500 {
		limit = 500
	}
	var rows []models.ContainerModel
	err := r.db.WithContext(ctx).
		Where("account_id = ?", accountID).
		Order("created_at DESC").
		Limit(limit).
		Find(&rows).Error
	if err != nil {
		return nil, err
	}

	containers := make([]*domain.Container, len(rows))
	for i := range rows {
		containers[i] = toContainer(&rows[i])
	}
	return containers, nil
}

func (r *ContainerRepository) Update(ctx context.Context, c *domain.Container) (*domain.Container, error) {
	updates := map[string]interface{}{}
	if c.ContainerType != nil {
		updates["container_type"] = *c.ContainerType
	}
	if c.Owner != nil {
		updates["owner"] = *c.Owner
	}
	if c.Description != nil {
		updates["description"] = *c.Description
	}
	if c.MinTemp != nil {
		updates["min_temp"] = *c.MinTemp
	}
	if c.MaxTemp != nil {
		updates["max_temp"] = *c.MaxTemp
	}
	if len(updates) > 0 {
		result := r.db.WithContext(ctx).
			Model(&models.ContainerModel{}).
			Where("account_id = ? AND id = ?", c.AccountID, c.ID).
			Updates(updates)
		if result.Error != nil {
			return nil, result.Error
		}
		if result.RowsAffected == 0 {
			return nil, domain.ErrNotFound
		}
	}
	return r.GetByID(ctx, c.AccountID, c.ID)
}

func (r *ContainerRepository) Delete(ctx context.Context, accountID uuid.UUID, id string) error {
	result := r.db.WithContext(ctx).
		Where("account_id = ? AND id = ?", accountID, id).
		Delete(&models.ContainerModel{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *ContainerRepository) GetRules(ctx context.Context, containerID string) (*domain.Rules, error) {
	var model models.ContainerModel
	err := r.db.WithContext(ctx).
		Select("account_id", "min_temp", "max_temp").
		Where("id = ?", containerID).
		First(&model).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}

	return &domain.Rules{
		AccountID: model.AccountID,
		Thresholds: domain.Thresholds{
			MinTemp: model.MinTemp,
			MaxTemp: model.MaxTemp,
		},
	}, nil
}

func (r *ContainerRepository) ResolveDevice(ctx context.Context, deviceID string) (*domain.Binding, error) {
	var model models.ContainerModel
	err := r.db.WithContext(ctx).
		Select("id", "account_id", "min_temp", "max_temp").
		Where("iot_device_id = ?", deviceID).
		First(&model).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrDeviceUnbound
		}
		return nil, err
	}

	return &domain.Binding{
		ContainerID: model.ID,
		Rules: domain.Rules{
			AccountID: model.AccountID,
			Thresholds: domain.Thresholds{
				MinTemp: model.MinTemp,
				MaxTemp: model.MaxTemp,
			},
		},
	}, nil
}

func (r *ContainerRepository) GetState(ctx context.Context, accountID uuid.UUID, containerID string) (*telemetry.ContainerState, error) {
	var model models.ContainerStateModel
	result := r.db.WithContext(ctx).Raw(`
        SELECT cs.*
          FROM container_state cs
          JOIN containers c ON c.id = cs.container_id
         WHERE c.account_id = ? AND cs.container_id = ?
         LIMIT 1`, accountID, containerID).Scan(&model)
	if result.Error != nil {
		return nil, result.Error
	}
	if result.RowsAffected == 0 {
		return nil, domain.ErrNotFound
	}
	return toState(&model), nil
}

func (r *ContainerRepository) ListStates(ctx context.Context, accountID uuid.UUID, limit int) ([]*telemetry.ContainerState, error) {
	if limit <= 0 || limit > 500 {
		limit = 500
	}
	var rows []models.ContainerStateModel
	err := r.db.WithContext(ctx).Raw(`
        SELECT cs.*
          FROM container_state cs
          JOIN containers c ON c.id = cs.container_id
         WHERE c.account_id = ?
         ORDER BY cs.updated_at DESC
         LIMIT ?`, accountID, limit).Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	states := make([]*telemetry.ContainerState, len(rows))
	for i := range rows {
		states[i] = toState(&rows[i])
	}
	return states, nil
}

func (r *ContainerRepository) MovementsPerDay(ctx context.Context, accountID uuid.UUID, days int) ([]domain.DayCount, error) {
	if days <= 0 || days > 90 {
		days = 30
	}
	var rows []domain.DayCount
	err := r.db.WithContext(ctx).Raw(`
        SELECT date_trunc('day', COALESCE(m.ts_iso, m.created_at)) AS day,
               count(*) AS count
          FROM container_movements m
          JOIN containers c ON c.id = m.container_id
         WHERE c.account_id = ?
           AND COALESCE(m.ts_iso, m.created_at) >= now() - (? || ' days')::interval
         GROUP BY 1
         ORDER BY 1`, accountID, days).Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *ContainerRepository) MovementsByLocation(ctx context.Context, accountID uuid.UUID, limit int) ([]domain.LocationCount, error) {
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	var rows []domain.LocationCount
	err := r.db.WithContext(ctx).Raw(`
        SELECT m.location, count(*) AS count
          FROM container_movements m
          JOIN containers c ON c.id = m.container_id
         WHERE c.account_id = ? AND m.location IS NOT NULL
         GROUP BY m.location
         ORDER BY count DESC
         LIMIT ?`, accountID, limit).Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *ContainerRepository) TopContainers(ctx context.Context, accountID uuid.UUID, limit int) ([]domain.ContainerCount, error) {
	if limit <= 0 || limit > 100 {
		limit = 10
	}
	var rows []domain.ContainerCount
	err := r.db.WithContext(ctx).Raw(`
        SELECT m.container_id, count(*) AS count
          FROM container_movements m
          JOIN containers c ON c.id = m.container_id
         WHERE c.account_id = ?
         GROUP BY m.container_id
         ORDER BY count DESC
         LIMIT ?`, accountID, limit).Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

func toContainer(m *models.ContainerModel) *domain.Container {
	return &domain.Container{
		ID:            m.ID,
		AccountID:     m.AccountID,
		IMO:           m.IMO,
		ContainerType: m.ContainerType,
		Owner:         m.Owner,
		Description:   m.Description,
		MinTemp:       m.MinTemp,
		MaxTemp:       m.MaxTemp,
		IoTDeviceID:   m.IoTDeviceID,
		CreatedAt:     m.CreatedAt,
	}
}

func toState(m *models.ContainerStateModel) *telemetry.ContainerState {
	return &telemetry.ContainerState{
		ContainerID:        m.ContainerID,
		LastEventType:      m.LastEventType,
		LastTimestamp:      m.LastTsIso,
		LastLat:            m.LastLat,
		LastLng:            m.LastLng,
		LastLocation:       m.LastLocation,
		LastSite:           m.LastSite,
		LastTag:            m.LastTag,
		LastDeviceID:       m.LastDeviceID,
		LastBatteryPercent: m.LastBatteryPercent,
		LastTempC:          m.LastTempC,
		VoyageID:           m.VoyageID,
		UpdatedAt:          m.UpdatedAt,
	}
}

var _ domain.Repository = (*ContainerRepository)(nil)
