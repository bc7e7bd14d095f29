package alert

import (
	"time"

	"github.com/google/uuid"
)

// AlertType identifies the breached rule.
type AlertType string

const (
	TempHigh AlertType = "TEMP_HIGH"
	TempLow  AlertType = "TEMP_LOW"
)

// Severity levels. Temperature breaches are always raised at SeverityHigh.
const (
	SeverityLow    = 1
	SeverityMedium = 2
	SeverityHigh   = 3
)

// Alert records one threshold breach. Once acknowledged it is immutable;
// unacknowledged alerts for the same container and type may accumulate
// (repeats are not suppressed).
type Alert struct {
	ID             uuid.UUID
	AccountID      uuid.UUID
	ContainerID    string
	AlertType      AlertType
	Message        string
	Severity       int
	AcknowledgedBy *string
	AcknowledgedAt *time.Time
	CreatedAt      time.Time
}

// Acknowledged reports whether the alert has been closed by an operator.
func (a *Alert) Acknowledged() bool {
	return a.AcknowledgedAt != nil
}
