package device

import "context"

// Repository persists devices and their container bindings.
type Repository interface {
	// Upsert registers a device, coalescing non-null fields over an
	// existing registration with the same hardware id.
	Upsert(ctx context.Context, d *Device) (*Device, error)

	GetByDeviceID(ctx context.Context, deviceID string) (*Device, error)
	List(ctx context.Context, limit int) ([]*Device, error)

	// AttachToContainer binds the device to the container, detaching it
	// from any container it was previously bound to. Transactional.
	AttachToContainer(ctx context.Context, containerID, deviceID string) error

	UpdateLastSeen(ctx context.Context, deviceID string) error
}
