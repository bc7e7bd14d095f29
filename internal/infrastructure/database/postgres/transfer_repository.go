package postgres

import (
	"context"
	"errors"

	"container-tracker/internal/database"
	domain "container-tracker/internal/domain/transfer"
	"container-tracker/internal/infrastructure/database/postgres/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type TransferRepository struct {
	db *gorm.DB
}

func NewTransferRepository(db *database.Database) *TransferRepository {
	return &TransferRepository{db: db.DB}
}

func (r *TransferRepository) Start(ctx context.Context, s *domain.Session) (*domain.Session, error) {
	model := models.TransferSessionModel{
		ID:         uuid.New(),
		AccountID:  s.AccountID,
		FromShipID: s.FromShipID,
		ToShipID:   s.ToShipID,
		StartedBy:  s.StartedBy,
		StartedAt:  s.StartedAt,
	}

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var existing models.TransferSessionModel
		err := tx.Where("account_id = ? AND ended_at IS NULL", s.AccountID).
			First(&existing).Error
		if err == nil {
			return domain.ErrAlreadyActive
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}
		return tx.Create(&model).Error
	})
	if err != nil {
		return nil, err
	}
	return toSession(&model), nil
}

func (r *TransferRepository) End(ctx context.Context, accountID uuid.UUID) (*domain.Session, error) {
	var model models.TransferSessionModel
	result := r.db.WithContext(ctx).Raw(`
        UPDATE transfer_sessions
           SET ended_at = now()
         WHERE account_id = ? AND ended_at IS NULL
        RETURNING *`, accountID).Scan(&model)
	if result.Error != nil {
		return nil, result.Error
	}
	if result.RowsAffected == 0 {
		return nil, domain.ErrNoActive
	}
	return toSession(&model), nil
}

func (r *TransferRepository) GetActive(ctx context.Context, accountID uuid.UUID) (*domain.Session, error) {
	var model models.TransferSessionModel
	err := r.db.WithContext(ctx).
		Where("account_id = ? AND ended_at IS NULL", accountID).
		First(&model).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return toSession(&model), nil
}

func toSession(m *models.TransferSessionModel) *domain.Session {
	return &domain.Session{
		ID:         m.ID,
		AccountID:  m.AccountID,
		FromShipID: m.FromShipID,
		ToShipID:   m.ToShipID,
		StartedBy:  m.StartedBy,
		StartedAt:  m.StartedAt,
		EndedAt:    m.EndedAt,
	}
}

var _ domain.Repository = (*TransferRepository)(nil)
