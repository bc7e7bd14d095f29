package transfer

import (
	"context"

	"github.com/google/uuid"
)

// Repository persists transfer sessions.
type Repository interface {
	// Start opens a session, failing with ErrAlreadyActive when the
	// account already has an open one. The check and insert run in one
	// transaction.
	Start(ctx context.Context, s *Session) (*Session, error)

	// End closes the account's active session, stamping EndedAt.
	End(ctx context.Context, accountID uuid.UUID) (*Session, error)

	// GetActive returns the open session, or (nil, nil) when there is none.
	GetActive(ctx context.Context, accountID uuid.UUID) (*Session, error)
}
