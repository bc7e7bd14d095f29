package voyage

import "errors"

var (
	ErrNotFound          = errors.New("voyage not found")
	ErrShipNotFound      = errors.New("ship not found")
	ErrInvalidTransition = errors.New("invalid voyage status transition")
)
