package service

import (
	"context"
	"time"

	gw "irrigation_gateway"
	"irrigation_gateway/internal/device"
	"irrigation_gateway/internal/logger"
	"irrigation_gateway/internal/models"
	"irrigation_gateway/internal/repository"
	"irrigation_gateway/internal/retry"
)

// ZoneController issues commands to the irrigation controller. Every method
// returns an envelope; none of them returns an error or panics.
type ZoneController interface {
	RequestStart(ctx context.Context, zone, duration any) gw.Response
	RequestStopAll(ctx context.Context, zone any) gw.Response
	RequestInfo(ctx context.Context) gw.Response
	RequestStatus(ctx context.Context) gw.Response
	Ready() bool
}

// Catalog manages zone names and default run lengths.
type Catalog interface {
	ListZones(ctx context.Context) gw.Response
	SaveZone(ctx context.Context, id any, p ZoneParams) gw.Response
	Seed(ctx context.Context, zones []models.Zone) (int, error)
}

// Notifier receives an event after each zone command. Delivery is best effort.
type Notifier interface {
	Notify(ctx context.Context, ev models.ZoneEvent)
}

// ResponseObserver counts operation outcomes, e.g. metrics.Recorder.ObserveResponse.
type ResponseObserver func(operation string, success bool)

// Service aggregates the gateway's operations.
type Service struct {
	Zones   ZoneController
	Catalog Catalog
}

// Deps is everything the services need from the outside world.
type Deps struct {
	Session  device.Session
	Retry    *retry.Executor
	Repos    *repository.Repository
	Notifier Notifier
	Observe  ResponseObserver
	Log      *logger.Logger
}

func NewService(d Deps) *Service {
	var zones repository.ZoneRepo
	if d.Repos != nil {
		zones = d.Repos.Zones
	}
	return &Service{
		Zones: NewZoneService(ZoneConfig{
			Session:  d.Session,
			Retry:    d.Retry,
			Catalog:  zones,
			Notifier: d.Notifier,
			Observe:  d.Observe,
			Log:      d.Log,
		}),
		Catalog: NewCatalogService(zones, d.Observe, d.Log),
	}
}

type nopNotifier struct{}

func (nopNotifier) Notify(context.Context, models.ZoneEvent) {}

// NopNotifier discards every event.
func NopNotifier() Notifier { return nopNotifier{} }

// LogAttempts returns a retry observer that writes one log entry per device attempt.
func LogAttempts(log *logger.Logger) retry.Observer {
	return func(a retry.Attempt) {
		fields := []any{
			"operation", a.Operation,
			"op_id", a.OpID,
			"attempt", a.Number,
			"max_attempts", a.Max,
			"elapsed", a.Elapsed,
		}
		switch {
		case a.Succeeded():
			log.Debugw("device_attempt_succeeded", fields...)
		case a.Final():
			log.Errorw("device_attempt_failed", append(fields, "err", a.Err, "final", true)...)
		default:
			log.Warnw("device_attempt_failed", append(fields, "err", a.Err, "final", false)...)
		}
	}
}

func nowUTC() time.Time { return time.Now().UTC() }
