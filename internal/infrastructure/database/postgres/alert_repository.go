package postgres

import (
	"context"
	"fmt"

	"container-tracker/internal/database"
	domain "container-tracker/internal/domain/alert"
	"container-tracker/internal/infrastructure/database/postgres/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type AlertRepository struct {
	db *gorm.DB
}

func NewAlertRepository(db *database.Database) *AlertRepository {
	return &AlertRepository{db: db.DB}
}

func (r *AlertRepository) Insert(ctx context.Context, a *domain.Alert) error {
	model := models.AlertModel{
		ID:          uuid.New(),
		AccountID:   a.AccountID,
		ContainerID: a.ContainerID,
		AlertType:   string(a.AlertType),
		Message:     a.Message,
		Severity:    a.Severity,
	}
	if a.ID != uuid.Nil {
		model.ID = a.ID
	}
	if err := r.db.WithContext(ctx).Create(&model).Error; err != nil {
		return fmt.Errorf("failed to insert alert: %w", err)
	}
	a.ID = model.ID
	a.CreatedAt = model.CreatedAt
	return nil
}

func (r *AlertRepository) List(ctx context.Context, accountID uuid.UUID, f domain.Filter) ([]*domain.Alert, error) {
	limit := f.Limit
	if limit <= 0 || limit > 500 {
		limit = 100
	}

	query := r.db.WithContext(ctx).
		Model(&models.AlertModel{}).
		Where("account_id = ?", accountID)

	switch f.Status {
	case "pending":
		query = query.Where("acknowledged_at IS NULL")
	case "resolved":
		query = query.Where("acknowledged_at IS NOT NULL")
	}
	if f.ContainerID != "" {
		query = query.Where("container_id = ?", f.ContainerID)
	}
	if f.VoyageID != nil {
		query = query.Where(
			`container_id IN (SELECT container_id FROM voyage_containers WHERE voyage_id = ?)`,
			*f.VoyageID,
		)
	}

	var rows []models.AlertModel
	err := query.Order("created_at DESC").Limit(limit).Find(&rows).Error
	if err != nil {
		return nil, err
	}

	alerts := make([]*domain.Alert, len(rows))
	for i := range rows {
		alerts[i] = toAlert(&rows[i])
	}
	return alerts, nil
}

// Acknowledge only fires on pending alerts, so a second acknowledgement of
// the same alert reports ErrNotFound instead of silently rewriting history.
func (r *AlertRepository) Acknowledge(ctx context.Context, accountID, id uuid.UUID, userID *string) (*domain.Alert, error) {
	var model models.AlertModel
	result := r.db.WithContext(ctx).Raw(`
        UPDATE alerts
           SET acknowledged_at = now(),
               acknowledged_by = COALESCE(?, acknowledged_by)
         WHERE account_id = ? AND id = ? AND acknowledged_at IS NULL
        RETURNING *`, userID, accountID, id).Scan(&model)
	if result.Error != nil {
		return nil, result.Error
	}
	if result.RowsAffected == 0 {
		return nil, domain.ErrNotFound
	}
	return toAlert(&model), nil
}

func (r *AlertRepository) Delete(ctx context.Context, accountID, id uuid.UUID) error {
	result := r.db.WithContext(ctx).
		Where("account_id = ? AND id = ?", accountID, id).
		Delete(&models.AlertModel{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func toAlert(m *models.AlertModel) *domain.Alert {
	return &domain.Alert{
		ID:             m.ID,
		AccountID:      m.AccountID,
		ContainerID:    m.ContainerID,
		AlertType:      domain.AlertType(m.AlertType),
		Message:        m.Message,
		Severity:       m.Severity,
		AcknowledgedBy: m.AcknowledgedBy,
		AcknowledgedAt: m.AcknowledgedAt,
		CreatedAt:      m.CreatedAt,
	}
}

var _ domain.Repository = (*AlertRepository)(nil)
