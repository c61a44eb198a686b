package main

import (
	"context"
	"fmt"
	"os/signal"
	"syscall"
	"time"

	"irrigation_gateway/internal/device"
	"irrigation_gateway/internal/handlers"
	"irrigation_gateway/internal/logger"
	"irrigation_gateway/internal/metrics"
	"irrigation_gateway/internal/repository"
	"irrigation_gateway/internal/server"
	"irrigation_gateway/internal/service"

	"github.com/spf13/cobra"
)

const shutdownTimeout = 10 * time.Second

func newServeCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP gateway",
		Example: `  gateway serve
  GATEWAY_CONTROLLER_PIN=1234 gateway serve --config /etc/gateway/config.yml`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()
			return serve(ctx)
		},
	}
}

func serve(ctx context.Context) error {
	cfg, log, err := loadConfig()
	if err != nil {
		return err
	}

	db, err := openDB(cfg)
	if err != nil {
		return fmt.Errorf("init sqlite: %w", err)
	}
	defer func() {
		if cerr := db.Close(); cerr != nil {
			log.Errorw("failed to close sqlite", "err", cerr)
		}
	}()

	connect, sim, err := newConnector(cfg)
	if err != nil {
		return err
	}
	// background goroutines stop with ctx
	if sim != nil {
		go sim.Run(ctx, cfg.Simulator.Tick)
	}

	rec := metrics.New()
	session := openSession(ctx, cfg, connect, log, device.WithWaitObserver(rec.ObserveGateWait))
	notifier, closeNotifier := newNotifier(cfg, log)
	defer closeNotifier()

	services := service.NewService(service.Deps{
		Session:  session,
		Retry:    newExecutor(cfg, log, rec),
		Repos:    repository.NewRepository(db),
		Notifier: notifier,
		Observe:  rec.ObserveResponse,
		Log:      log.Named("zones"),
	})

	n, err := services.Catalog.Seed(ctx, cfg.CatalogSeed())
	if err != nil {
		return fmt.Errorf("seed zone catalog: %w", err)
	}
	log.Infow("zone_catalog_seeded", "inserted", n, "configured", len(cfg.Zones))

	apiHandler := handlers.NewHandler(services, log.Named("http"),
		handlers.WithMetrics(rec.Handler()),
		handlers.WithStream(handlers.StreamConfig{
			DefaultInterval: cfg.Stream.DefaultInterval,
			MaxInterval:     cfg.Stream.MaxInterval,
		}),
	)

	srv := server.New(cfg.ServerConfig())
	errc := runHTTPServer(srv, cfg.Port, apiHandler, log)

	return waitForShutdown(ctx, errc, srv, log)
}

// runHTTPServer runs the HTTP server in a separate goroutine.
func runHTTPServer(srv *server.Server, port string, handler *handlers.Handler, log *logger.Logger) <-chan error {
	errc := make(chan error, 1)
	go func() {
		log.Infow("http_listening", "port", port)
		errc <- srv.Run(port, handler.InitRoutes())
	}()
	return errc
}

// waitForShutdown blocks until a termination signal or a server failure, then
// drains in-flight requests.
func waitForShutdown(ctx context.Context, errc <-chan error, srv *server.Server, log *logger.Logger) error {
	select {
	case err := <-errc:
		if err != nil {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	log.Infow("shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server forced to shutdown: %w", err)
	}
	return nil
}
