package device

import "errors"

var (
	// ErrNotInitialized is returned by every operation of a session that failed to open.
	ErrNotInitialized = errors.New("controller not initialized")

	// ErrDevice matches every *Error via errors.Is.
	ErrDevice = errors.New("device error")
)

// Device operation names, used in errors, logs and metrics.
const (
	OpStartZone   = "start_zone"
	OpStopAll     = "stop_all"
	OpIdentity    = "identity"
	OpActiveZones = "active_zones"
)

// Error is a single failed driver call. Its message is the driver's, unchanged.
type Error struct {
	Op  string
	Err error
}

func (e *Error) Error() string { return e.Err.Error() }

func (e *Error) Unwrap() error { return e.Err }

func (e *Error) Is(target error) bool { return target == ErrDevice }
