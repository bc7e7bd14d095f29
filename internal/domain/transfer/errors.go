package transfer

import "errors"

var (
	ErrAlreadyActive = errors.New("a transfer is already active, end it first")
	ErrNoActive      = errors.New("no active transfer to end")
)
