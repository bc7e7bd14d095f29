package voyage

import (
	"context"
	"time"

	domain "container-tracker/internal/domain/voyage"
	"container-tracker/internal/logger"
	appErrors "container-tracker/pkg/errors"
	"container-tracker/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Service implements ship and voyage use cases.
type Service struct {
	voyages domain.Repository
}

func NewService(voyages domain.Repository) *Service {
	return &Service{voyages: voyages}
}

func (s *Service) CreateShip(ctx context.Context, accountID uuid.UUID, req *CreateShipRequest) (*ShipResponse, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, appErrors.NewAppError("VALIDATION_ERROR", "Invalid input", err)
	}

	ship, err := s.voyages.CreateShip(ctx, &domain.Ship{
		AccountID: accountID,
		IMO:       req.IMO,
		Name:      req.Name,
	})
	if err != nil {
		return nil, err
	}

	logger.Info("Ship created",
		zap.Int64("ship_id", ship.ShipID),
		zap.String("imo", ship.IMO),
		zap.String("event", "ship_created"),
	)

	return ToShipResponse(ship), nil
}

func (s *Service) ListShips(ctx context.Context, accountID uuid.UUID) ([]ShipResponse, error) {
	ships, err := s.voyages.ListShips(ctx, accountID)
	if err != nil {
		return nil, err
	}

	responses := make([]ShipResponse, len(ships))
	for i, ship := range ships {
		responses[i] = *ToShipResponse(ship)
	}
	return responses, nil
}

func (s *Service) CreateVoyage(ctx context.Context, accountID uuid.UUID, req *CreateVoyageRequest) (*VoyageResponse, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, appErrors.NewAppError("VALIDATION_ERROR", "Invalid input", err)
	}

	voyage, err := s.voyages.CreateVoyage(ctx, accountID, &domain.Voyage{
		ShipID:     req.ShipID,
		VoyageCode: req.VoyageCode,
		DepartPort: req.DepartPort,
		ArrivePort: req.ArrivePort,
	})
	if err != nil {
		return nil, err
	}

	logger.Info("Voyage created",
		zap.Int64("voyage_id", voyage.VoyageID),
		zap.String("voyage_code", voyage.VoyageCode),
		zap.String("event", "voyage_created"),
	)

	return ToVoyageResponse(voyage), nil
}

func (s *Service) GetVoyage(ctx context.Context, accountID uuid.UUID, voyageID int64) (*VoyageDetailResponse, error) {
	voyage, err := s.voyages.GetVoyage(ctx, accountID, voyageID)
	if err != nil {
		return nil, err
	}

	containers, err := s.voyages.ListContainers(ctx, accountID, voyageID)
	if err != nil {
		return nil, err
	}

	lastUpdate, err := s.voyages.LastUpdate(ctx, accountID, voyageID)
	if err != nil {
		return nil, err
	}

	return &VoyageDetailResponse{
		VoyageResponse: *ToVoyageResponse(voyage),
		Containers:     containers,
		LastUpdate:     lastUpdate,
	}, nil
}

func (s *Service) Depart(ctx context.Context, accountID uuid.UUID, voyageID int64) (*VoyageResponse, error) {
	return s.transition(ctx, accountID, voyageID,
		[]domain.VoyageStatus{domain.StatusPlanned}, domain.StatusUnderway)
}

func (s *Service) Arrive(ctx context.Context, accountID uuid.UUID, voyageID int64) (*VoyageResponse, error) {
	return s.transition(ctx, accountID, voyageID,
		[]domain.VoyageStatus{domain.StatusUnderway}, domain.StatusArrived)
}

func (s *Service) Complete(ctx context.Context, accountID uuid.UUID, voyageID int64) (*VoyageResponse, error) {
	return s.transition(ctx, accountID, voyageID,
		[]domain.VoyageStatus{domain.StatusArrived}, domain.StatusCompleted)
}

func (s *Service) transition(ctx context.Context, accountID uuid.UUID, voyageID int64, from []domain.VoyageStatus, to domain.VoyageStatus) (*VoyageResponse, error) {
	voyage, err := s.voyages.SetStatus(ctx, accountID, voyageID, from, to, time.Now())
	if err != nil {
		return nil, err
	}

	logger.Info("Voyage status changed",
		zap.Int64("voyage_id", voyageID),
		zap.String("status", string(to)),
		zap.String("event", "voyage_status_changed"),
	)

	return ToVoyageResponse(voyage), nil
}

func (s *Service) AddContainers(ctx context.Context, accountID uuid.UUID, voyageID int64, req *AddContainersRequest) error {
	if err := utils.ValidateStruct(req); err != nil {
		return appErrors.NewAppError("VALIDATION_ERROR", "Invalid input", err)
	}

	ids := make([]string, len(req.ContainerIDs))
	for i, id := range req.ContainerIDs {
		ids[i] = utils.NormalizeContainerID(id)
	}
	return s.voyages.AddContainers(ctx, accountID, voyageID, ids)
}

func (s *Service) Trail(ctx context.Context, accountID uuid.UUID, voyageID int64, limit int) (*TrailResponse, error) {
	points, err := s.voyages.Trail(ctx, accountID, voyageID, limit)
	if err != nil {
		return nil, err
	}
	if points == nil {
		points = []domain.TrailPoint{}
	}
	return &TrailResponse{VoyageID: voyageID, Points: points}, nil
}
