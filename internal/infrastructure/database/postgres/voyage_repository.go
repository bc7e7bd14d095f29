package postgres

import (
	"context"
	"fmt"
	"time"

	"container-tracker/internal/database"
	domain "container-tracker/internal/domain/voyage"
	"container-tracker/internal/infrastructure/database/postgres/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type VoyageRepository struct {
	db *gorm.DB
}

func NewVoyageRepository(db *database.Database) *VoyageRepository {
	return &VoyageRepository{db: db.DB}
}

func (r *VoyageRepository) CreateShip(ctx context.Context, s *domain.Ship) (*domain.Ship, error) {
	model := models.ShipModel{
		AccountID: s.AccountID,
		IMO:       s.IMO,
		Name:      s.Name,
	}
	if err := r.db.WithContext(ctx).Create(&model).Error; err != nil {
		return nil, fmt.Errorf("failed to create ship: %w", err)
	}
	return toShip(&model), nil
}

func (r *VoyageRepository) ListShips(ctx context.Context, accountID uuid.UUID) ([]*domain.Ship, error) {
	var rows []models.ShipModel
	err := r.db.WithContext(ctx).
		Where("account_id = ?", accountID).
		Order("created_at DESC").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}

	ships := make([]*domain.Ship, len(rows))
	for i := range rows {
		ships[i] = toShip(&rows[i])
	}
	return ships, nil
}

// CreateVoyage verifies the ship belongs to the account before inserting.
func (r *VoyageRepository) CreateVoyage(ctx context.Context, accountID uuid.UUID, v *domain.Voyage) (*domain.Voyage, error) {
	model := models.VoyageModel{
		ShipID:     v.ShipID,
		VoyageCode: v.VoyageCode,
		Status:     string(domain.StatusPlanned),
		DepartPort: v.DepartPort,
		ArrivePort: v.ArrivePort,
	}

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&models.ShipModel{}).
			Where("ship_id = ? AND account_id = ?", v.ShipID, accountID).
			Count(&count).Error; err != nil {
			return err
		}
		if count == 0 {
			return domain.ErrShipNotFound
		}
		return tx.Create(&model).Error
	})
	if err != nil {
		return nil, err
	}
	return toVoyage(&model), nil
}

func (r *VoyageRepository) GetVoyage(ctx context.Context, accountID uuid.UUID, voyageID int64) (*domain.Voyage, error) {
	var model models.VoyageModel
	result := r.db.WithContext(ctx).Raw(`
        SELECT v.*
          FROM voyages v
          JOIN ships s ON s.ship_id = v.ship_id
         WHERE s.account_id = ? AND v.voyage_id = ?
         LIMIT 1`, accountID, voyageID).Scan(&model)
	if result.Error != nil {
		return nil, result.Error
	}
	if result.RowsAffected == 0 {
		return nil, domain.ErrNotFound
	}
	return toVoyage(&model), nil
}

// SetStatus moves a voyage along its lifecycle. The transition only fires
// when the current status is one of the allowed origins; stamping column is
// chosen by the target status.
func (r *VoyageRepository) SetStatus(ctx context.Context, accountID uuid.UUID, voyageID int64, from []domain.VoyageStatus, to domain.VoyageStatus, at time.Time) (*domain.Voyage, error) {
	var stampColumn string
	switch to {
	case domain.StatusUnderway:
		stampColumn = "started_at"
	case domain.StatusArrived:
		stampColumn = "arrived_at"
	case domain.StatusCompleted:
		stampColumn = "completed_at"
	default:
		return nil, fmt.Errorf("%w: cannot transition to %s", domain.ErrInvalidTransition, to)
	}

	origins := make([]string, len(from))
	for i, s := range from {
		origins[i] = string(s)
	}

	var updated *domain.Voyage
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		current, err := r.getVoyageTx(tx, accountID, voyageID)
		if err != nil {
			return err
		}

		allowed := false
		for _, o := range origins {
			if string(current.Status) == o {
				allowed = true
				break
			}
		}
		if !allowed {
			return fmt.Errorf("%w: %s -> %s", domain.ErrInvalidTransition, current.Status, to)
		}

		// #nosec G201 -- stampColumn comes from the switch above, not input
		result := tx.Exec(fmt.Sprintf(
			`UPDATE voyages SET status = ?, %s = ? WHERE voyage_id = ?`, stampColumn),
			string(to), at, voyageID,
		)
		if result.Error != nil {
			return result.Error
		}

		updated, err = r.getVoyageTx(tx, accountID, voyageID)
		return err
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

func (r *VoyageRepository) getVoyageTx(tx *gorm.DB, accountID uuid.UUID, voyageID int64) (*domain.Voyage, error) {
	var model models.VoyageModel
	result := tx.Raw(`
        SELECT v.*
          FROM voyages v
          JOIN ships s ON s.ship_id = v.ship_id
         WHERE s.account_id = ? AND v.voyage_id = ?
         LIMIT 1`, accountID, voyageID).Scan(&model)
	if result.Error != nil {
		return nil, result.Error
	}
	if result.RowsAffected == 0 {
		return nil, domain.ErrNotFound
	}
	return toVoyage(&model), nil
}

func (r *VoyageRepository) AddContainers(ctx context.Context, accountID uuid.UUID, voyageID int64, containerIDs []string) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if _, err := r.getVoyageTx(tx, accountID, voyageID); err != nil {
			return err
		}
		for _, id := range containerIDs {
			err := tx.Exec(`
                INSERT INTO voyage_containers (voyage_id, container_id)
                VALUES (?, ?)
                ON CONFLICT (voyage_id, container_id) DO NOTHING`,
				voyageID, id,
			).Error
			if err != nil {
				return err
			}
		}
		return nil
	})
}

func (r *VoyageRepository) ListContainers(ctx context.Context, accountID uuid.UUID, voyageID int64) ([]string, error) {
	if _, err := r.GetVoyage(ctx, accountID, voyageID); err != nil {
		return nil, err
	}
	var ids []string
	err := r.db.WithContext(ctx).
		Model(&models.VoyageContainerModel{}).
		Where("voyage_id = ?", voyageID).
		Order("container_id").
		Pluck("container_id", &ids).Error
	if err != nil {
		return nil, err
	}
	return ids, nil
}

func (r *VoyageRepository) Trail(ctx context.Context, accountID uuid.UUID, voyageID int64, limit int) ([]domain.TrailPoint, error) {
	if limit <= 0 || limit > 5000 {
		limit = 1000
	}
	if _, err := r.GetVoyage(ctx, accountID, voyageID); err != nil {
		return nil, err
	}
	var points []domain.TrailPoint
	err := r.db.WithContext(ctx).Raw(`
        SELECT container_id, lat, lng, ts_iso AS timestamp
          FROM container_movements
         WHERE voyage_id = ? AND lat IS NOT NULL AND lng IS NOT NULL
         ORDER BY COALESCE(ts_iso, created_at) ASC
         LIMIT ?`, voyageID, limit).Scan(&points).Error
	if err != nil {
		return nil, err
	}
	return points, nil
}

func (r *VoyageRepository) LastUpdate(ctx context.Context, accountID uuid.UUID, voyageID int64) (*time.Time, error) {
	if _, err := r.GetVoyage(ctx, accountID, voyageID); err != nil {
		return nil, err
	}
	var row struct {
		Last *time.Time
	}
	err := r.db.WithContext(ctx).Raw(`
        SELECT max(COALESCE(ts_iso, created_at)) AS last
          FROM container_movements
         WHERE voyage_id = ?`, voyageID).Scan(&row).Error
	if err != nil {
		return nil, err
	}
	return row.Last, nil
}

func (r *VoyageRepository) ResolveCode(ctx context.Context, accountID uuid.UUID, code string) (*int64, error) {
	var row struct {
		VoyageID int64
	}
	result := r.db.WithContext(ctx).Raw(`
        SELECT v.voyage_id
          FROM voyages v
          JOIN ships s ON s.ship_id = v.ship_id
         WHERE s.account_id = ? AND v.voyage_code = ?
         LIMIT 1`, accountID, code).Scan(&row)
	if result.Error != nil {
		return nil, result.Error
	}
	if result.RowsAffected == 0 {
		return nil, nil
	}
	return &row.VoyageID, nil
}

func toShip(m *models.ShipModel) *domain.Ship {
	return &domain.Ship{
		ShipID:    m.ShipID,
		AccountID: m.AccountID,
		IMO:       m.IMO,
		Name:      m.Name,
		CreatedAt: m.CreatedAt,
	}
}

func toVoyage(m *models.VoyageModel) *domain.Voyage {
	return &domain.Voyage{
		VoyageID:    m.VoyageID,
		ShipID:      m.ShipID,
		VoyageCode:  m.VoyageCode,
		Status:      domain.VoyageStatus(m.Status),
		DepartPort:  m.DepartPort,
		ArrivePort:  m.ArrivePort,
		StartedAt:   m.StartedAt,
		ArrivedAt:   m.ArrivedAt,
		CompletedAt: m.CompletedAt,
		CreatedAt:   m.CreatedAt,
	}
}

var _ domain.Repository = (*VoyageRepository)(nil)
