package container

import (
	"context"

	domain "container-tracker/internal/domain/container"
	"container-tracker/internal/logger"
	appErrors "container-tracker/pkg/errors"
	"container-tracker/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Service implements container use cases.
type Service struct {
	containers domain.Repository
}

func NewService(containers domain.Repository) *Service {
	return &Service{containers: containers}
}

func (s *Service) CreateContainer(ctx context.Context, accountID uuid.UUID, req *CreateContainerRequest) (*ContainerResponse, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, appErrors.NewAppError("VALIDATION_ERROR", "Invalid input", err)
	}

	id := utils.NormalizeContainerID(req.ContainerID)
	if !utils.IsContainerID(id) {
		return nil, appErrors.NewAppError("INVALID_CONTAINER_ID", "Container id must be 4 letters followed by 7 digits", domain.ErrInvalidID)
	}

	owner := req.Owner
	if owner == nil {
		derived := utils.DeriveOwnerFromContainerID(id)
		if derived != "" {
			owner = &derived
		}
	}

	created, err := s.containers.Upsert(ctx, &domain.Container{
		ID:            id,
		AccountID:     accountID,
		IMO:           req.IMO,
		ContainerType: req.ContainerType,
		Owner:         owner,
		Description:   req.Description,
		MinTemp:       req.MinTemp,
		MaxTemp:       req.MaxTemp,
	})
	if err != nil {
		return nil, err
	}

	logger.Info("Container registered",
		zap.String("container_id", created.ID),
		zap.String("account_id", accountID.String()),
		zap.String("event", "container_registered"),
	)

	return ToContainerResponse(created), nil
}

func (s *Service) GetContainer(ctx context.Context, accountID uuid.UUID, id string) (*ContainerResponse, error) {
	c, err := s.containers.GetByID(ctx, accountID, utils.NormalizeContainerID(id))
	if err != nil {
		return nil, err
	}
	return ToContainerResponse(c), nil
}

func (s *Service) ListContainers(ctx context.Context, accountID uuid.UUID, limit int) ([]ContainerResponse, error) {
	containers, err := s.containers.List(ctx, accountID, limit)
	if err != nil {
		return nil, err
	}

	responses := make([]ContainerResponse, len(containers))
	for i, c := range containers {
		responses[i] = *ToContainerResponse(c)
	}
	return responses, nil
}

func (s *Service) UpdateContainer(ctx context.Context, accountID uuid.UUID, id string, req *UpdateContainerRequest) (*ContainerResponse, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, appErrors.NewAppError("VALIDATION_ERROR", "Invalid input", err)
	}

	updated, err := s.containers.Update(ctx, &domain.Container{
		ID:            utils.NormalizeContainerID(id),
		AccountID:     accountID,
		ContainerType: req.ContainerType,
		Owner:         req.Owner,
		Description:   req.Description,
		MinTemp:       req.MinTemp,
		MaxTemp:       req.MaxTemp,
	})
	if err != nil {
		return nil, err
	}
	return ToContainerResponse(updated), nil
}

func (s *Service) DeleteContainer(ctx context.Context, accountID uuid.UUID, id string) error {
	if err := s.containers.Delete(ctx, accountID, utils.NormalizeContainerID(id)); err != nil {
		return err
	}

	logger.Info("Container deleted",
		zap.String("container_id", utils.NormalizeContainerID(id)),
		zap.String("event", "container_deleted"),
	)
	return nil
}

func (s *Service) GetState(ctx context.Context, accountID uuid.UUID, id string) (*StateResponse, error) {
	state, err := s.containers.GetState(ctx, accountID, utils.NormalizeContainerID(id))
	if err != nil {
		return nil, err
	}
	return ToStateResponse(state), nil
}

func (s *Service) ListStates(ctx context.Context, accountID uuid.UUID, limit int) ([]StateResponse, error) {
	states, err := s.containers.ListStates(ctx, accountID, limit)
	if err != nil {
		return nil, err
	}

	responses := make([]StateResponse, len(states))
	for i, st := range states {
		responses[i] = *ToStateResponse(st)
	}
	return responses, nil
}

// Dashboard aggregates movement statistics for the account.
func (s *Service) Dashboard(ctx context.Context, accountID uuid.UUID, days int) (*DashboardResponse, error) {
	perDay, err := s.containers.MovementsPerDay(ctx, accountID, days)
	if err != nil {
		return nil, err
	}
	byLocation, err := s.containers.MovementsByLocation(ctx, accountID, 20)
	if err != nil {
		return nil, err
	}
	top, err := s.containers.TopContainers(ctx, accountID, 10)
	if err != nil {
		return nil, err
	}

	return &DashboardResponse{
		MovementsPerDay: perDay,
		TopLocations:    byLocation,
		TopContainers:   top,
	}, nil
}
