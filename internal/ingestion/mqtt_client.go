package ingestion

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"container-tracker/internal/domain/container"
	"container-tracker/internal/domain/device"
	"container-tracker/internal/logger"
	pkgmqtt "container-tracker/pkg/mqtt"

	"go.uber.org/zap"
)

// MQTTIngestionConfig describes the topic and MQTT connection parameters.
type MQTTIngestionConfig struct {
	ClientConfig   *pkgmqtt.Config
	TelemetryTopic string
	QoS            byte
}

// DeviceResolver maps a device identifier to the container it is bound to.
type DeviceResolver interface {
	ResolveDevice(ctx context.Context, deviceID string) (*container.Binding, error)
}

// MQTTIngestionClient feeds firmware telemetry packets into the ingestion
// pipeline. Packets identify themselves by device only; the container and
// tenant are resolved through the device binding, and packets from unbound
// devices are dropped.
type MQTTIngestionClient struct {
	cfg        *MQTTIngestionConfig
	client     *pkgmqtt.Client
	pipeline   *Pipeline
	containers DeviceResolver
	devices    device.Repository

	mu      sync.Mutex
	started bool
}

func NewMQTTIngestionClient(cfg *MQTTIngestionConfig, pipeline *Pipeline, containers DeviceResolver, devices device.Repository) (*MQTTIngestionClient, error) {
	if cfg == nil || cfg.ClientConfig == nil {
		return nil, errors.New("mqtt ingestion config is not configured")
	}
	if pipeline == nil {
		return nil, errors.New("pipeline is required")
	}

	return &MQTTIngestionClient{
		cfg:        cfg,
		client:     pkgmqtt.NewClient(cfg.ClientConfig),
		pipeline:   pipeline,
		containers: containers,
		devices:    devices,
	}, nil
}

// Start establishes the MQTT connection and subscribes to the telemetry topic.
func (c *MQTTIngestionClient) Start() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.started {
		return nil
	}

	if err := c.client.Connect(); err != nil {
		return fmt.Errorf("failed to connect to MQTT broker: %w", err)
	}

	if err := c.client.Subscribe(c.cfg.TelemetryTopic, c.cfg.QoS, c.handleTelemetry); err != nil {
		c.client.Disconnect()
		return err
	}

	c.started = true
	logger.Info("mqtt telemetry intake started", zap.String("topic", c.cfg.TelemetryTopic))
	return nil
}

// Stop unsubscribes and disconnects.
func (c *MQTTIngestionClient) Stop() {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.started {
		return
	}

	if err := c.client.Unsubscribe(c.cfg.TelemetryTopic); err != nil {
		logger.Warn("failed to unsubscribe", zap.Error(err))
	}
	c.client.Disconnect()
	c.started = false
}

func (c *MQTTIngestionClient) handleTelemetry(topic string, payload []byte) {
	pkt, err := ParseDevicePacket(payload)
	if err != nil {
		logger.Warn("dropping malformed telemetry packet",
			zap.String("topic", topic),
			zap.Error(err),
		)
		return
	}
	if pkt.DeviceID == "" {
		logger.Warn("dropping telemetry packet without device id", zap.String("topic", topic))
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := c.processPacket(ctx, pkt); err != nil {
		if errors.Is(err, container.ErrDeviceUnbound) {
			logger.Warn("device is not bound to a container, packet discarded",
				zap.String("device_id", pkt.DeviceID),
			)
			return
		}
		logger.Error("failed to process device packet",
			zap.String("device_id", pkt.DeviceID),
			zap.Error(err),
		)
	}
}

// processPacket resolves the device binding and runs the packet through the
// pipeline. ErrDeviceUnbound marks a packet addressed to no container; any
// other error is a processing failure, not a verdict on the binding.
func (c *MQTTIngestionClient) processPacket(ctx context.Context, pkt *DevicePacket) error {
	binding, err := c.containers.ResolveDevice(ctx, pkt.DeviceID)
	if err != nil {
		if errors.Is(err, container.ErrDeviceUnbound) {
			return err
		}
		return fmt.Errorf("failed to resolve device binding: %w", err)
	}

	raw := RawEvent{
		"container_id": binding.ContainerID,
		"device_id":    pkt.DeviceID,
		"source":       "iot-device",
	}
	if pkt.EventType != "" {
		raw["event_type"] = pkt.EventType
	}
	if pkt.Timestamp != "" {
		raw["ts_iso"] = pkt.Timestamp
	}
	if pkt.TempC != nil {
		raw["temp_c"] = *pkt.TempC
	}
	if pkt.Lat != nil {
		raw["lat"] = *pkt.Lat
	}
	if pkt.Lng != nil {
		raw["lng"] = *pkt.Lng
	}
	if pkt.RFIDTag != nil {
		raw["tag"] = *pkt.RFIDTag
	}
	if pkt.Humidity != nil {
		raw["humidity"] = *pkt.Humidity
	}
	if pkt.PressureHPa != nil {
		raw["pressure_hpa"] = *pkt.PressureHPa
	}

	if _, err := c.pipeline.Ingest(ctx, binding.Rules.AccountID, []RawEvent{raw}); err != nil {
		return fmt.Errorf("failed to ingest packet for container %s: %w", binding.ContainerID, err)
	}

	if c.devices != nil {
		if err := c.devices.UpdateLastSeen(ctx, pkt.DeviceID); err != nil {
			logger.Debug("failed to update device last seen",
				zap.String("device_id", pkt.DeviceID),
				zap.Error(err),
			)
		}
	}
	return nil
}
