package device

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"irrigation_gateway/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubDriver struct {
	delay    time.Duration
	err      error
	active   []int
	inFlight atomic.Int32
	maxSeen  atomic.Int32
	calls    atomic.Int32
	lastCtx  context.Context
}

func (d *stubDriver) enter() {
	d.calls.Add(1)
	n := d.inFlight.Add(1)
	for {
		m := d.maxSeen.Load()
		if n <= m || d.maxSeen.CompareAndSwap(m, n) {
			break
		}
	}
	time.Sleep(d.delay)
	d.inFlight.Add(-1)
}

func (d *stubDriver) StartZone(ctx context.Context, zone, minutes int) (models.Ack, error) {
	d.lastCtx = ctx
	d.enter()
	return models.Ack{Type: "AcknowledgeResponse", CommandEcho: 57}, d.err
}

func (d *stubDriver) StopIrrigation(ctx context.Context) (models.Ack, error) {
	d.enter()
	return models.Ack{Type: "AcknowledgeResponse", CommandEcho: 64}, d.err
}

func (d *stubDriver) ModelAndVersion(ctx context.Context) (models.Identity, error) {
	d.enter()
	return models.Identity{Model: "ESP-TM2"}, d.err
}

func (d *stubDriver) ActiveZones(ctx context.Context) ([]int, error) {
	d.enter()
	return d.active, d.err
}

func connectTo(d Driver) Connector {
	return func(ctx context.Context, address, pin string) (Driver, error) { return d, nil }
}

func TestOpen_FailureYieldsUnavailable(t *testing.T) {
	connect := func(ctx context.Context, address, pin string) (Driver, error) {
		return nil, errors.New("authentication rejected")
	}

	s := Open(context.Background(), connect, "192.168.5.17", "0000")

	require.IsType(t, &Unavailable{}, s)
	assert.False(t, s.Ready())
	assert.Equal(t, "192.168.5.17", s.Address())
	assert.EqualError(t, s.(*Unavailable).Cause(), "authentication rejected")
}

func TestOpen_NilConnectorOrDriverIsUnavailable(t *testing.T) {
	assert.False(t, Open(context.Background(), nil, "a", "p").Ready())

	nilDriver := func(ctx context.Context, address, pin string) (Driver, error) { return nil, nil }
	assert.False(t, Open(context.Background(), nilDriver, "a", "p").Ready())
}

func TestUnavailable_FailsFastWithoutCallingFn(t *testing.T) {
	s := Open(context.Background(), func(context.Context, string, string) (Driver, error) {
		return nil, errors.New("dial tcp: i/o timeout")
	}, "controller.local", "1234")

	called := false
	err := s.Exclusive(context.Background(), func(ctx context.Context, c *Conn) error {
		called = true
		return nil
	})

	assert.False(t, called)
	assert.ErrorIs(t, err, ErrNotInitialized)
	assert.Contains(t, err.Error(), "dial tcp: i/o timeout")
}

func TestConnected_WrapsDriverErrors(t *testing.T) {
	drv := &stubDriver{err: errors.New("zone busy")}
	s := Open(context.Background(), connectTo(drv), "a", "p")
	require.True(t, s.Ready())

	err := s.Exclusive(context.Background(), func(ctx context.Context, c *Conn) error {
		_, err := c.StartZone(ctx, 2, 5)
		return err
	})

	assert.ErrorIs(t, err, ErrDevice)
	var devErr *Error
	require.ErrorAs(t, err, &devErr)
	assert.Equal(t, OpStartZone, devErr.Op)
	assert.EqualError(t, err, "zone busy", "driver message passes through verbatim")
}

func TestConnected_ActiveZonesSortedAndDeduplicated(t *testing.T) {
	drv := &stubDriver{active: []int{5, 2, 5}}
	s := Open(context.Background(), connectTo(drv), "a", "p")

	var got []int
	err := s.Exclusive(context.Background(), func(ctx context.Context, c *Conn) (err error) {
		got, err = c.ActiveZones(ctx)
		return err
	})

	require.NoError(t, err)
	assert.Equal(t, []int{2, 5}, got)
	assert.Equal(t, []int{5, 2, 5}, drv.active, "driver slice is not modified")
}

func TestConnected_ActiveZonesEmptyIsNotNil(t *testing.T) {
	s := Open(context.Background(), connectTo(&stubDriver{}), "a", "p")

	var got []int
	_ = s.Exclusive(context.Background(), func(ctx context.Context, c *Conn) (err error) {
		got, err = c.ActiveZones(ctx)
		return err
	})
	assert.NotNil(t, got)
	assert.Empty(t, got)
}

func TestConnected_SerializesDeviceCalls(t *testing.T) {
	drv := &stubDriver{delay: 20 * time.Millisecond}
	s := Open(context.Background(), connectTo(drv), "a", "p")

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_ = s.Exclusive(context.Background(), func(ctx context.Context, c *Conn) error {
				_, err := c.StopAll(ctx)
				return err
			})
		}()
	}
	wg.Wait()

	assert.EqualValues(t, 8, drv.calls.Load())
	assert.EqualValues(t, 1, drv.maxSeen.Load(), "never more than one call in flight")
}

func TestConnected_GateHeldForWholeCallback(t *testing.T) {
	drv := &stubDriver{}
	s := Open(context.Background(), connectTo(drv), "a", "p")

	release := make(chan struct{})
	entered := make(chan struct{})
	go func() {
		_ = s.Exclusive(context.Background(), func(ctx context.Context, c *Conn) error {
			close(entered)
			<-release
			return nil
		})
	}()
	<-entered

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Millisecond)
	defer cancel()
	called := false
	err := s.Exclusive(ctx, func(ctx context.Context, c *Conn) error {
		called = true
		return nil
	})
	close(release)

	assert.ErrorIs(t, err, context.DeadlineExceeded)
	assert.False(t, called, "a waiter that gives up never reaches the device")
}

func TestConnected_DriverContextIsNotCancelled(t *testing.T) {
	drv := &stubDriver{}
	s := Open(context.Background(), connectTo(drv), "a", "p")

	ctx, cancel := context.WithCancel(context.Background())
	err := s.Exclusive(ctx, func(inner context.Context, c *Conn) error {
		cancel()
		_, err := c.StartZone(inner, 1, 1)
		return err
	})

	require.NoError(t, err)
	require.NotNil(t, drv.lastCtx)
	assert.NoError(t, drv.lastCtx.Err())
}

func TestConnected_ReportsGateWait(t *testing.T) {
	var waits []time.Duration
	s := Open(context.Background(), connectTo(&stubDriver{}), "a", "p",
		WithWaitObserver(func(d time.Duration) { waits = append(waits, d) }))

	_ = s.Exclusive(context.Background(), func(context.Context, *Conn) error { return nil })
	_ = s.Exclusive(context.Background(), func(context.Context, *Conn) error { return nil })

	assert.Len(t, waits, 2)
}
