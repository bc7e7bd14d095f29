package container

import "errors"

var (
	ErrNotFound      = errors.New("container not found")
	ErrInvalidID     = errors.New("invalid container id")
	ErrUnknownShip   = errors.New("no ship with this IMO on the account")
	ErrDeviceUnbound = errors.New("device is not bound to a container")
)
