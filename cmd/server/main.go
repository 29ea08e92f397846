// Package main is the entry point for the industry overview dashboard API.
//
// Startup order:
//  1. Configuration and logging
//  2. Dataset source and store, loaded once before serving
//  3. Event bus, telemetry and the reload scheduler
//  4. HTTP server, stopped gracefully on SIGINT/SIGTERM
package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/aristath/industry-overview/internal/config"
	"github.com/aristath/industry-overview/internal/dataset"
	"github.com/aristath/industry-overview/internal/events"
	"github.com/aristath/industry-overview/internal/modules/catalog"
	"github.com/aristath/industry-overview/internal/modules/dashboard"
	dashboardhandlers "github.com/aristath/industry-overview/internal/modules/dashboard/handlers"
	"github.com/aristath/industry-overview/internal/scheduler"
	"github.com/aristath/industry-overview/internal/server"
	"github.com/aristath/industry-overview/internal/telemetry"
	"github.com/aristath/industry-overview/pkg/logger"
)

func main() {
	// Load configuration first to get log level
	cfg, err := config.Load()
	if err != nil {
		// Use fallback logger if config fails
		fallbackLog := logger.New(logger.Config{
			Level:  "info",
			Pretty: true,
		})
		fallbackLog.Fatal().Err(err).Msg("Failed to load configuration")
	}

	log := logger.New(logger.Config{
		Level:  cfg.LogLevel,
		Pretty: cfg.DevMode,
	})
	logger.SetGlobalLogger(log)

	log.Info().Msg("Starting industry overview")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var src dataset.Source
	if cfg.S3 != nil {
		s3src, err := dataset.NewS3Source(ctx, cfg.S3.ToSourceConfig())
		if err != nil {
			log.Fatal().Err(err).Msg("Failed to configure S3 dataset source")
		}
		src = s3src
	} else {
		src = dataset.NewFileSource(cfg.DataDir)
	}
	log.Info().Str("source", src.String()).Msg("Dataset source configured")

	cat := catalog.Default()
	if cfg.MetricCatalogPath != "" {
		cat, err = catalog.Load(cfg.MetricCatalogPath)
		if err != nil {
			log.Fatal().Err(err).Str("path", cfg.MetricCatalogPath).Msg("Failed to load metric catalog")
		}
	}

	store := dataset.NewStore(src, cfg.Files(), log)

	bus := events.NewBus(log)
	eventManager := events.NewManager(bus, log)

	recorder := telemetry.NewRecorder()
	recorder.Attach(bus)

	reloadJob := scheduler.NewReloadJob(store, eventManager, cfg.ReloadTimeout, log)

	// The server still starts without data; views answer 503 until a reload succeeds.
	loadCtx, loadCancel := context.WithTimeout(ctx, cfg.ReloadTimeout)
	if _, err := reloadJob.Trigger(loadCtx, "startup"); err != nil {
		log.Error().Err(err).Msg("Initial dataset load failed")
	}
	loadCancel()

	sched := scheduler.New(log)
	if cfg.ReloadSchedule != "" {
		if err := sched.AddJob(cfg.ReloadSchedule, reloadJob); err != nil {
			log.Fatal().Err(err).Msg("Failed to register reload job")
		}
	}
	sched.Start()

	service := dashboard.NewService(store, cat, recorder, log)

	srv := server.New(server.Config{
		Log:            log,
		Port:           cfg.Port,
		DevMode:        cfg.DevMode,
		AllowedOrigins: cfg.AllowedOrigins,
		Dashboard:      dashboardhandlers.NewHandler(service, log),
		Snapshots:      store,
		Reloader:       reloadJob,
		EventBus:       bus,
		Metrics:        recorder.Handler(),
	})

	go func() {
		if err := srv.Start(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("Failed to start server")
		}
	}()

	log.Info().Int("port", cfg.Port).Msg("Server started successfully")

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("Shutting down server...")

	cancel()
	sched.Stop()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("Server forced to shutdown")
	}

	log.Info().Msg("Server stopped")
}
