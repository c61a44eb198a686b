package device

import (
	"context"

	"irrigation_gateway/internal/models"
)

// Driver is the low-level controller protocol. The gateway treats it as a black box:
// it may fail any call for any reason and performs no retries of its own.
type Driver interface {
	StartZone(ctx context.Context, zone, minutes int) (models.Ack, error)
	// StopIrrigation halts every zone; the protocol has no per-zone stop.
	StopIrrigation(ctx context.Context) (models.Ack, error)
	ModelAndVersion(ctx context.Context) (models.Identity, error)
	ActiveZones(ctx context.Context) ([]int, error)
}

// Connector performs the one-time authenticated setup against a controller.
type Connector func(ctx context.Context, address, pin string) (Driver, error)
