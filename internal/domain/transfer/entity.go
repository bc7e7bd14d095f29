package transfer

import (
	"time"

	"github.com/google/uuid"
)

// Session is one ship-to-ship transfer operation. Sessions are durable
// rows, not process memory, so every replica observes the same active
// session. At most one session per account is active (EndedAt == nil).
type Session struct {
	ID         uuid.UUID
	AccountID  uuid.UUID
	FromShipID int64
	ToShipID   int64
	StartedBy  string
	StartedAt  time.Time
	EndedAt    *time.Time
}

// Active reports whether the session is still open.
func (s *Session) Active() bool {
	return s.EndedAt == nil
}
