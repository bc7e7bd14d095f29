package ingestion

import (
	"context"
	"fmt"
	"time"

	"container-tracker/internal/domain/alert"
	"container-tracker/internal/domain/container"
	"container-tracker/internal/logger"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// RuleSource resolves a container's alerting configuration.
type RuleSource interface {
	GetRules(ctx context.Context, containerID string) (*container.Rules, error)
}

// AlertSink persists raised alerts.
type AlertSink interface {
	Insert(ctx context.Context, a *alert.Alert) error
}

// AlertEngine compares observed temperatures against per-container
// thresholds and persists at most one alert per evaluation. It runs outside
// the ingestion transaction: a failure to persist an alert is logged and
// never affects the already-committed telemetry.
//
// The engine does not look for an already-open alert of the same type before
// inserting, so sustained exceedance produces one alert per reading. Every
// breach is logged; suppression is a product decision that has not been
// made.
type AlertEngine struct {
	rules RuleSource
	sink  AlertSink
}

func NewAlertEngine(rules RuleSource, sink AlertSink) *AlertEngine {
	return &AlertEngine{rules: rules, sink: sink}
}

// Evaluate applies the strict-inequality temperature rule. A reading exactly
// at a boundary is not a breach, and at most one alert type results from one
// evaluation. Both bounds must be configured for the check to run.
func Evaluate(th container.Thresholds, tempC float64) (alert.AlertType, string, bool) {
	if th.MinTemp == nil || th.MaxTemp == nil {
		return "", "", false
	}
	if tempC > *th.MaxTemp {
		msg := fmt.Sprintf("Temperature %.2f°C exceeds maximum threshold %.2f°C", tempC, *th.MaxTemp)
		return alert.TempHigh, msg, true
	}
	if tempC < *th.MinTemp {
		msg := fmt.Sprintf("Temperature %.2f°C is below minimum threshold %.2f°C", tempC, *th.MinTemp)
		return alert.TempLow, msg, true
	}
	return "", "", false
}

// CheckTemperature evaluates one observed temperature for a container and
// persists the resulting alert, if any. Reports whether an alert was raised.
func (e *AlertEngine) CheckTemperature(ctx context.Context, containerID string, tempC float64) bool {
	rules, err := e.rules.GetRules(ctx, containerID)
	if err != nil {
		logger.Warn("could not load alert rules, skipping evaluation",
			zap.String("container_id", containerID),
			zap.Error(err),
		)
		return false
	}

	alertType, message, breached := Evaluate(rules.Thresholds, tempC)
	if !breached {
		return false
	}

	a := &alert.Alert{
		ID:          uuid.New(),
		AccountID:   rules.AccountID,
		ContainerID: containerID,
		AlertType:   alertType,
		Message:     message,
		Severity:    alert.SeverityHigh,
		CreatedAt:   time.Now(),
	}

	if err := e.sink.Insert(ctx, a); err != nil {
		logger.Error("failed to persist alert",
			zap.String("container_id", containerID),
			zap.String("alert_type", string(alertType)),
			zap.Error(err),
		)
		return false
	}

	logger.Warn("temperature alert raised",
		zap.String("container_id", containerID),
		zap.String("alert_type", string(alertType)),
		zap.Float64("temp_c", tempC),
	)
	return true
}
