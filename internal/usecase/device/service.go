package device

import (
	"context"
	"strings"

	containerDomain "container-tracker/internal/domain/container"
	domain "container-tracker/internal/domain/device"
	"container-tracker/internal/ingestion"
	"container-tracker/internal/logger"
	appErrors "container-tracker/pkg/errors"
	"container-tracker/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Service implements device use cases.
type Service struct {
	devices    domain.Repository
	containers containerDomain.Repository
	pipeline   *ingestion.Pipeline
}

func NewService(devices domain.Repository, containers containerDomain.Repository, pipeline *ingestion.Pipeline) *Service {
	return &Service{
		devices:    devices,
		containers: containers,
		pipeline:   pipeline,
	}
}

func (s *Service) RegisterDevice(ctx context.Context, req *RegisterDeviceRequest) (*DeviceResponse, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, appErrors.NewAppError("VALIDATION_ERROR", "Invalid input", err)
	}

	device, err := s.devices.Upsert(ctx, &domain.Device{
		DeviceID: strings.TrimSpace(req.DeviceID),
		Alias:    req.Alias,
		Model:    req.Model,
		SiteID:   req.SiteID,
		Metadata: req.Metadata,
	})
	if err != nil {
		return nil, err
	}

	logger.Info("Device registered",
		zap.String("device_id", device.DeviceID),
		zap.String("event", "device_registered"),
	)

	return ToDeviceResponse(device), nil
}

func (s *Service) GetDevice(ctx context.Context, deviceID string) (*DeviceResponse, error) {
	device, err := s.devices.GetByDeviceID(ctx, deviceID)
	if err != nil {
		return nil, err
	}
	return ToDeviceResponse(device), nil
}

func (s *Service) ListDevices(ctx context.Context, limit int) ([]DeviceResponse, error) {
	devices, err := s.devices.List(ctx, limit)
	if err != nil {
		return nil, err
	}

	responses := make([]DeviceResponse, len(devices))
	for i, d := range devices {
		responses[i] = *ToDeviceResponse(d)
	}
	return responses, nil
}

// AttachDevice binds a device to a container on the caller's account and
// records a DEVICE_ATTACHED event so the binding shows up in the container's
// history and state projection.
func (s *Service) AttachDevice(ctx context.Context, accountID uuid.UUID, deviceID string, req *AttachDeviceRequest) (*DeviceResponse, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, appErrors.NewAppError("VALIDATION_ERROR", "Invalid input", err)
	}

	containerID := utils.NormalizeContainerID(req.ContainerID)
	if _, err := s.containers.GetByID(ctx, accountID, containerID); err != nil {
		return nil, err
	}

	if err := s.devices.AttachToContainer(ctx, containerID, deviceID); err != nil {
		return nil, err
	}

	if s.pipeline != nil {
		_, err := s.pipeline.Ingest(ctx, accountID, []ingestion.RawEvent{{
			"container_id": containerID,
			"event_type":   "DEVICE_ATTACHED",
			"device_id":    deviceID,
			"source":       "api",
		}})
		if err != nil {
			logger.Warn("Attachment event not recorded",
				zap.String("device_id", deviceID),
				zap.String("container_id", containerID),
				zap.Error(err),
			)
		}
	}

	logger.Info("Device attached",
		zap.String("device_id", deviceID),
		zap.String("container_id", containerID),
		zap.String("event", "device_attached"),
	)

	device, err := s.devices.GetByDeviceID(ctx, deviceID)
	if err != nil {
		return nil, err
	}
	return ToDeviceResponse(device), nil
}
