package device

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"time"

	"irrigation_gateway/internal/models"
)

// Session is the gateway's one handle to the controller.
//
// A session is either *Connected or *Unavailable. Both are created by Open and
// neither is ever replaced for the lifetime of the process.
type Session interface {
	// Exclusive runs fn with sole use of the controller. It is the serialization
	// point for all device traffic: at most one fn runs at any instant, and a caller
	// waits until the previous fn returns. Waiting honours ctx; once fn starts, the
	// context it receives is detached from cancellation.
	Exclusive(ctx context.Context, fn func(ctx context.Context, c *Conn) error) error
	Address() string
	Ready() bool
}

// Option configures a connected session.
type Option func(*Connected)

// WithWaitObserver reports how long each caller waited for the gate.
func WithWaitObserver(observe func(time.Duration)) Option {
	return func(s *Connected) { s.observeWait = observe }
}

// Open initializes the controller once. Failure yields an *Unavailable session
// rather than an error so the gateway can keep serving in a degraded state.
func Open(ctx context.Context, connect Connector, address, pin string, opts ...Option) Session {
	if connect == nil {
		return &Unavailable{address: address, cause: errors.New("no driver configured")}
	}
	drv, err := connect(ctx, address, pin)
	if err == nil && drv == nil {
		err = errors.New("driver returned no connection")
	}
	if err != nil {
		return &Unavailable{address: address, cause: err}
	}

	s := &Connected{
		address: address,
		conn:    &Conn{drv: drv},
		gate:    make(chan struct{}, 1),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Connected is an initialized session.
type Connected struct {
	address     string
	conn        *Conn
	gate        chan struct{} // single slot
	observeWait func(time.Duration)
}

func (s *Connected) Address() string { return s.address }

func (s *Connected) Ready() bool { return true }

func (s *Connected) Exclusive(ctx context.Context, fn func(ctx context.Context, c *Conn) error) error {
	start := time.Now()
	select {
	case s.gate <- struct{}{}:
	case <-ctx.Done():
		return ctx.Err()
	}
	defer func() { <-s.gate }()

	if s.observeWait != nil {
		s.observeWait(time.Since(start))
	}
	return fn(context.WithoutCancel(ctx), s.conn)
}

// Unavailable is a session whose initialization failed. Every operation fails fast.
type Unavailable struct {
	address string
	cause   error
}

func (s *Unavailable) Address() string { return s.address }

func (s *Unavailable) Ready() bool { return false }

// Cause is the initialization failure.
func (s *Unavailable) Cause() error { return s.cause }

func (s *Unavailable) Exclusive(context.Context, func(context.Context, *Conn) error) error {
	return fmt.Errorf("%w: %v", ErrNotInitialized, s.cause)
}

// Conn is the driver as seen from inside Exclusive. Driver failures come back as *Error.
type Conn struct {
	drv Driver
}

func (c *Conn) StartZone(ctx context.Context, zone, minutes int) (models.Ack, error) {
	ack, err := c.drv.StartZone(ctx, zone, minutes)
	if err != nil {
		return models.Ack{}, &Error{Op: OpStartZone, Err: err}
	}
	return ack, nil
}

// StopAll halts every zone on the controller.
func (c *Conn) StopAll(ctx context.Context) (models.Ack, error) {
	ack, err := c.drv.StopIrrigation(ctx)
	if err != nil {
		return models.Ack{}, &Error{Op: OpStopAll, Err: err}
	}
	return ack, nil
}

func (c *Conn) Identity(ctx context.Context) (models.Identity, error) {
	id, err := c.drv.ModelAndVersion(ctx)
	if err != nil {
		return models.Identity{}, &Error{Op: OpIdentity, Err: err}
	}
	return id, nil
}

// ActiveZones returns the controller's live zone set, sorted and without duplicates.
func (c *Conn) ActiveZones(ctx context.Context) ([]int, error) {
	zones, err := c.drv.ActiveZones(ctx)
	if err != nil {
		return nil, &Error{Op: OpActiveZones, Err: err}
	}
	out := slices.Clone(zones)
	slices.Sort(out)
	out = slices.Compact(out)
	if out == nil {
		out = []int{}
	}
	return out, nil
}
