package main

import (
	"context"
	"database/sql"
	"fmt"

	"irrigation_gateway/internal/config"
	"irrigation_gateway/internal/device"
	"irrigation_gateway/internal/device/simulator"
	"irrigation_gateway/internal/logger"
	"irrigation_gateway/internal/metrics"
	"irrigation_gateway/internal/notify"
	"irrigation_gateway/internal/repository"
	"irrigation_gateway/internal/retry"
	"irrigation_gateway/internal/service"
)

// loadConfig reads config and builds the process logger from it.
func loadConfig() (*config.Config, *logger.Logger, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, nil, err
	}
	return cfg, logger.Get(cfg.LogLevel, cfg.LogFormat), nil
}

// newConnector picks the controller driver.
func newConnector(cfg *config.Config) (device.Connector, *simulator.Simulator, error) {
	switch cfg.Controller.Driver {
	case config.DriverSimulator:
		sim := simulator.New(cfg.SimulatorConfig())
		return sim.Connect, sim, nil
	default:
		return nil, nil, fmt.Errorf("unknown controller driver %q", cfg.Controller.Driver)
	}
}

// openSession initializes the controller once. A failed handshake is logged and
// the gateway keeps running with an unavailable session.
func openSession(ctx context.Context, cfg *config.Config, connect device.Connector, log *logger.Logger, opts ...device.Option) device.Session {
	session := device.Open(ctx, connect, cfg.Controller.Address, cfg.Controller.PIN, opts...)
	if u, ok := session.(*device.Unavailable); ok {
		log.Warnw("controller_init_failed", "address", cfg.Controller.Address, "err", u.Cause())
	} else {
		log.Infow("controller_connected", "address", cfg.Controller.Address, "driver", cfg.Controller.Driver)
	}
	return session
}

func newExecutor(cfg *config.Config, log *logger.Logger, rec *metrics.Recorder) *retry.Executor {
	opts := []retry.Option{retry.WithObserver(service.LogAttempts(log.Named("retry")))}
	if rec != nil {
		opts = append(opts, retry.WithObserver(rec.ObserveAttempt))
	}
	return retry.NewExecutor(cfg.RetryPolicy(), opts...)
}

// openDB initializes the SQLite zone catalog.
func openDB(cfg *config.Config) (*sql.DB, error) {
	return repository.InitDB(cfg.DB.Path)
}

// newNotifier connects to MQTT when enabled. Notifications are best effort, so a
// broker that cannot be reached only costs a warning.
func newNotifier(cfg *config.Config, log *logger.Logger) (service.Notifier, func()) {
	if !cfg.MQTT.Enabled {
		return service.NopNotifier(), func() {}
	}
	m, err := notify.NewMQTT(cfg.NotifyConfig(), log.Named("mqtt"))
	if err != nil {
		log.Warnw("mqtt_unavailable", "broker", cfg.MQTT.Broker, "err", err)
		return service.NopNotifier(), func() {}
	}
	log.Infow("mqtt_connected", "broker", cfg.MQTT.Broker, "topic", cfg.MQTT.Topic)
	return m, m.Close
}
