package device

import "errors"

var (
	ErrNotFound         = errors.New("device not found")
	ErrMissingDeviceID  = errors.New("device_id is required")
	ErrContainerMissing = errors.New("container not found")
)
