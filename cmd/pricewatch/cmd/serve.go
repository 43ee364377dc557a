package cmd

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/danielgtaylor/huma/v2"
	"github.com/danielgtaylor/huma/v2/adapters/humaecho"
	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"

	"github.com/donaldgifford/pricewatch/internal/api/handlers"
	mw "github.com/donaldgifford/pricewatch/internal/api/middleware"
	"github.com/donaldgifford/pricewatch/internal/engine"
	"github.com/donaldgifford/pricewatch/internal/tracing"
)

const shutdownTimeout = 30 * time.Second

func serveCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the cycle scheduler and the operations server",
		RunE:  runServe,
	}
}

func runServe(cmd *cobra.Command, _ []string) error {
	cfg, log, err := loadConfig()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	shutdownTracing, err := tracing.Setup(ctx, tracing.Config{
		Enabled:     cfg.Tracing.Enabled,
		Endpoint:    cfg.Tracing.Endpoint,
		Insecure:    cfg.Tracing.Insecure,
		ServiceName: cfg.Tracing.ServiceName,
		Version:     Version,
		SampleRatio: cfg.Tracing.SampleRatio,
	})
	if err != nil {
		return err
	}

	svc, err := buildServices(ctx, cfg, log)
	if err != nil {
		return err
	}
	defer closeServices(svc, log)

	if err := svc.store.Migrate(ctx); err != nil {
		return fmt.Errorf("running migrations: %w", err)
	}

	sched, err := engine.NewScheduler(svc.engine, svc.store, cfg.Schedule.Spec(), cfg.Worker.CycleTimeout, log)
	if err != nil {
		return err
	}

	e := newServer(svc, sched, log)
	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	srv := &http.Server{
		Addr:         addr,
		Handler:      e,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	sched.Start(ctx)

	errCh := make(chan error, 1)
	go func() {
		log.Info("starting server", "addr", addr, "schedule", cfg.Schedule.Spec())
		if err := e.StartServer(srv); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case <-ctx.Done():
	case err := <-errCh:
		if err != nil {
			log.Error("server error", "error", err)
		}
	}

	return shutdown(e, sched, shutdownTracing, log)
}

func newServer(svc *services, sched *engine.Scheduler, log *slog.Logger) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Use(mw.Recovery(log), mw.RequestLog(log), mw.Metrics())

	health := handlers.NewHealthHandler(svc.store)
	e.GET("/healthz", health.Healthz)
	e.GET("/readyz", health.Readyz)
	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))

	api := humaecho.New(e, huma.DefaultConfig("pricewatch", Version))
	handlers.RegisterCycleRoutes(api, handlers.NewCyclesHandler(sched, svc.store))
	handlers.RegisterHistoryRoutes(api, handlers.NewHistoryHandler(svc.store))

	return e
}

func shutdown(
	e *echo.Echo,
	sched *engine.Scheduler,
	shutdownTracing tracing.ShutdownFunc,
	log *slog.Logger,
) error {
	log.Info("shutting down")

	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	var errs []error
	if err := e.Shutdown(ctx); err != nil {
		errs = append(errs, fmt.Errorf("shutting down server: %w", err))
	}

	select {
	case <-sched.Stop().Done():
	case <-ctx.Done():
		log.Warn("running cycle did not finish before shutdown deadline")
	}

	if err := shutdownTracing(ctx); err != nil {
		errs = append(errs, fmt.Errorf("flushing traces: %w", err))
	}

	log.Info("stopped")
	return errors.Join(errs...)
}

