package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	gw "irrigation_gateway"
	"irrigation_gateway/internal/device"
	"irrigation_gateway/internal/logger"
	"irrigation_gateway/internal/models"
	"irrigation_gateway/internal/repository"
	"irrigation_gateway/internal/retry"

	"github.com/google/uuid"
)

// ZoneConfig wires a ZoneService. Session and Retry are required; the rest is optional.
type ZoneConfig struct {
	Session  device.Session
	Retry    *retry.Executor
	Catalog  repository.ZoneRepo // supplies default durations when a start omits one
	Notifier Notifier
	Observe  ResponseObserver
	Log      *logger.Logger
}

// ZoneService runs zone commands against the controller session, retrying device
// failures under the session gate so a retry sequence is never interleaved.
type ZoneService struct {
	session  device.Session
	retry    *retry.Executor
	catalog  repository.ZoneRepo
	notifier Notifier
	observe  ResponseObserver
	log      *logger.Logger
	now      func() time.Time
}

func NewZoneService(cfg ZoneConfig) *ZoneService {
	s := &ZoneService{
		session:  cfg.Session,
		retry:    cfg.Retry,
		catalog:  cfg.Catalog,
		notifier: cfg.Notifier,
		observe:  cfg.Observe,
		log:      cfg.Log,
		now:      nowUTC,
	}
	if s.retry == nil {
		s.retry = retry.NewExecutor(retry.DefaultPolicy())
	}
	if s.notifier == nil {
		s.notifier = NopNotifier()
	}
	if s.observe == nil {
		s.observe = func(string, bool) {}
	}
	if s.log == nil {
		s.log = logger.Nop()
	}
	return s
}

// Ready reports whether the controller session initialized.
func (s *ZoneService) Ready() bool {
	return s.session != nil && s.session.Ready()
}

// RequestStart runs zone for duration minutes. A nil duration falls back to the
// zone's catalog default.
func (s *ZoneService) RequestStart(ctx context.Context, zoneIn, durationIn any) gw.Response {
	zone, minutes, err := s.startArgs(ctx, zoneIn, durationIn)
	if err != nil {
		return s.fail(opStartZone, msgStartFailed, err, "zone", zoneIn, "duration", durationIn)
	}

	ack, err := exclusive(ctx, s, device.OpStartZone, func(ctx context.Context, c *device.Conn) (models.Ack, error) {
		return c.StartZone(ctx, zone, minutes)
	})
	s.notify(ctx, models.EventZoneStart,
		fmt.Sprintf("Zone %d start for %d minutes", zone, minutes),
		map[string]any{"zone": zone, "minutes": minutes}, err)
	if err != nil {
		return s.fail(opStartZone, msgStartFailed, err, "zone", zone, "minutes", minutes)
	}

	s.log.Infow("zone_started", "zone", zone, "minutes", minutes, "address", s.address())
	return s.succeed(opStartZone, fmt.Sprintf("Zone %d started for %d minutes", zone, minutes), ack)
}

// RequestStopAll halts every zone. The controller has no per-zone stop, so zone
// only shapes the message.
func (s *ZoneService) RequestStopAll(ctx context.Context, zoneIn any) gw.Response {
	label := zoneLabel(zoneIn)

	ack, err := exclusive(ctx, s, device.OpStopAll, func(ctx context.Context, c *device.Conn) (models.Ack, error) {
		return c.StopAll(ctx)
	})
	s.notify(ctx, models.EventStopAll, "All zones stop",
		map[string]any{"requested_zone": label}, err)
	if err != nil {
		return s.fail(opStopZone, msgStopFailed, err, "requested_zone", label)
	}

	msg := msgAllStopped
	if label != "" {
		msg = fmt.Sprintf("Zone %s stopped (all zones halted)", label)
	}
	s.log.Infow("zones_stopped", "requested_zone", label, "address", s.address())
	return s.succeed(opStopZone, msg, ack)
}

// RequestInfo reports the controller model and where it lives. The PIN never leaves the session.
func (s *ZoneService) RequestInfo(ctx context.Context) gw.Response {
	id, err := exclusive(ctx, s, device.OpIdentity, func(ctx context.Context, c *device.Conn) (models.Identity, error) {
		return c.Identity(ctx)
	})
	if err != nil {
		return s.fail(opControllerInfo, msgInfoFailed, err)
	}
	return s.succeed(opControllerInfo, msgInfoRetrieved, models.ControllerInfo{
		Model:     modelString(id),
		Connected: true,
		Address:   s.address(),
	})
}

// RequestStatus reports the zones running right now.
func (s *ZoneService) RequestStatus(ctx context.Context) gw.Response {
	zones, err := exclusive(ctx, s, device.OpActiveZones, func(ctx context.Context, c *device.Conn) ([]int, error) {
		return c.ActiveZones(ctx)
	})
	if err != nil {
		return s.fail(opZoneStatus, msgStatusFailed, err)
	}
	return s.succeed(opZoneStatus, msgStatusRetrieved, models.ZoneStatus{
		ActiveZones: zones,
		Timestamp:   s.now().UTC().Format(isoMillis),
	})
}

// exclusive holds the session gate for the whole retry sequence of fn.
func exclusive[T any](ctx context.Context, s *ZoneService, op string,
	fn func(ctx context.Context, c *device.Conn) (T, error)) (T, error) {
	var out T
	if s.session == nil {
		return out, fmt.Errorf("%w: no session", device.ErrNotInitialized)
	}
	err := s.session.Exclusive(ctx, func(ctx context.Context, c *device.Conn) error {
		v, err := retry.Do(ctx, s.retry, op, func(ctx context.Context) (T, error) {
			return fn(ctx, c)
		})
		out = v
		return err
	})
	return out, err
}

func (s *ZoneService) startArgs(ctx context.Context, zoneIn, durationIn any) (int, int, error) {
	zone, err := positiveInt("zone", zoneIn)
	if err != nil {
		return 0, 0, err
	}
	if durationIn == nil && s.catalog != nil {
		z, err := s.catalog.Get(ctx, zone)
		if err != nil {
			return 0, 0, fmt.Errorf("look up default duration for zone %d: %w", zone, err)
		}
		if z != nil {
			return zone, z.DefaultMinutes, nil
		}
	}
	minutes, err := positiveInt("duration", durationIn)
	if err != nil {
		return 0, 0, err
	}
	return zone, minutes, nil
}

// notify runs after the gate is released so a slow sink never delays device traffic.
func (s *ZoneService) notify(ctx context.Context, typ, what string, meta map[string]any, err error) {
	outcome := "succeeded"
	if err != nil {
		outcome = "failed"
		meta["error"] = errorDetail(err)
	}
	s.notifier.Notify(context.WithoutCancel(ctx), models.ZoneEvent{
		EventID:     uuid.NewString(),
		OccurredAt:  s.now().UTC(),
		Type:        typ,
		Description: what + " " + outcome,
		Metadata:    meta,
	})
}

func (s *ZoneService) succeed(op, msg string, data any) gw.Response {
	s.observe(op, true)
	return gw.Succeeded(msg, data)
}

func (s *ZoneService) fail(op, msg string, err error, kv ...any) gw.Response {
	s.observe(op, false)
	fields := append([]any{"operation", op, "err", err}, kv...)
	switch {
	case errors.Is(err, ErrInvalidArgument):
		s.log.Infow("request_rejected", fields...)
	case errors.Is(err, device.ErrNotInitialized):
		s.log.Warnw("controller_unavailable", fields...)
	default:
		s.log.Errorw("request_failed", fields...)
	}
	return gw.Failed(msg, errorDetail(err), err)
}

func (s *ZoneService) address() string {
	if s.session == nil {
		return ""
	}
	return s.session.Address()
}

func modelString(id models.Identity) string {
	if id.Version == "" {
		return id.Model
	}
	return id.Model + " v" + id.Version
}
