package simulator

import (
	"context"
	"errors"
	"fmt"
	"math/rand/v2"
	"strings"
	"sync"
	"time"

	"irrigation_gateway/internal/device"
	"irrigation_gateway/internal/models"
)

// ----------- Simulation defaults -----------
const (
	DefaultZones   = 7
	DefaultModel   = "ESP-TM2"
	DefaultVersion = "3.0"

	ackType       = "AcknowledgeResponse"
	echoStartZone = 0x39 // ManuallyRunStation
	echoStopAll   = 0x40 // StopIrrigation
	maxRunMinutes = 180
)

var (
	errInjected    = errors.New("simulated transport failure: connection reset by peer")
	errMissingAddr = errors.New("controller address is empty")
	errMissingPIN  = errors.New("controller PIN is empty")
)

// Config tunes the simulated controller.
type Config struct {
	Zones       int
	Model       string
	Latency     time.Duration // added to every call
	FailureRate float64       // 0..1 chance that a call fails before reaching the "hardware"
}

// Simulator is an in-memory irrigation controller. Like the hardware it runs one
// zone at a time and rejects starting a different zone while one is running.
type Simulator struct {
	cfg Config
	now func() time.Time

	mu      sync.Mutex
	running int       // active zone, 0 when idle
	endsAt  time.Time // when the active zone finishes
	rnd     *rand.Rand
}

// New returns a simulator with defaults filled in.
func New(cfg Config) *Simulator {
	if cfg.Zones <= 0 {
		cfg.Zones = DefaultZones
	}
	if cfg.Model == "" {
		cfg.Model = DefaultModel
	}
	return &Simulator{
		cfg: cfg,
		now: time.Now,
		rnd: rand.New(rand.NewPCG(uint64(time.Now().UnixNano()), 0x5eed)),
	}
}

// Connect satisfies device.Connector. Like the real handshake it refuses empty credentials.
func (s *Simulator) Connect(ctx context.Context, address, pin string) (device.Driver, error) {
	if strings.TrimSpace(address) == "" {
		return nil, errMissingAddr
	}
	if strings.TrimSpace(pin) == "" {
		return nil, errMissingPIN
	}
	if err := s.call(ctx); err != nil {
		return nil, fmt.Errorf("handshake with %s: %w", address, err)
	}
	return s, nil
}

// StartZone runs zone for the given minutes.
func (s *Simulator) StartZone(ctx context.Context, zone, minutes int) (models.Ack, error) {
	if err := s.call(ctx); err != nil {
		return models.Ack{}, err
	}
	if zone < 1 || zone > s.cfg.Zones {
		return models.Ack{}, fmt.Errorf("invalid zone %d: controller has zones 1-%d", zone, s.cfg.Zones)
	}
	if minutes < 1 || minutes > maxRunMinutes {
		return models.Ack{}, fmt.Errorf("invalid duration %d: must be 1-%d minutes", minutes, maxRunMinutes)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.expireLocked(s.now())
	if s.running != 0 && s.running != zone {
		return models.Ack{}, fmt.Errorf("zone busy: zone %d is running", s.running)
	}
	s.running = zone
	s.endsAt = s.now().Add(time.Duration(minutes) * time.Minute)
	return models.Ack{Type: ackType, CommandEcho: echoStartZone}, nil
}

// StopIrrigation halts whatever is running.
func (s *Simulator) StopIrrigation(ctx context.Context) (models.Ack, error) {
	if err := s.call(ctx); err != nil {
		return models.Ack{}, err
	}
	s.mu.Lock()
	s.running = 0
	s.endsAt = time.Time{}
	s.mu.Unlock()
	return models.Ack{Type: ackType, CommandEcho: echoStopAll}, nil
}

func (s *Simulator) ModelAndVersion(ctx context.Context) (models.Identity, error) {
	if err := s.call(ctx); err != nil {
		return models.Identity{}, err
	}
	return models.Identity{Model: s.cfg.Model, Version: DefaultVersion}, nil
}

func (s *Simulator) ActiveZones(ctx context.Context) ([]int, error) {
	if err := s.call(ctx); err != nil {
		return nil, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.expireLocked(s.now())
	if s.running == 0 {
		return []int{}, nil
	}
	return []int{s.running}, nil
}

// Run ticks at the given interval until ctx is canceled, ending zones whose time is up.
func (s *Simulator) Run(ctx context.Context, tick time.Duration) {
	t := time.NewTicker(tick)
	defer t.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case now := <-t.C:
			s.mu.Lock()
			s.expireLocked(now)
			s.mu.Unlock()
		}
	}
}

// expireLocked clears the running zone once its duration has elapsed. Caller holds mu.
func (s *Simulator) expireLocked(now time.Time) {
	if s.running != 0 && !now.Before(s.endsAt) {
		s.running = 0
		s.endsAt = time.Time{}
	}
}

// call models the network round trip: latency plus an optional injected failure.
func (s *Simulator) call(ctx context.Context) error {
	if s.cfg.Latency > 0 {
		select {
		case <-time.After(s.cfg.Latency):
		case <-ctx.Done():
			return ctx.Err()
		}
	}
	if s.cfg.FailureRate <= 0 {
		return nil
	}
	s.mu.Lock()
	roll := s.rnd.Float64()
	s.mu.Unlock()
	if roll < s.cfg.FailureRate {
		return errInjected
	}
	return nil
}
