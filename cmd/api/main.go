package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"rentcar-backend/internal/activitylog"
	"rentcar-backend/internal/adapters/storage"
	"rentcar-backend/internal/auth"
	"rentcar-backend/internal/booking"
	"rentcar-backend/internal/catalog"
	"rentcar-backend/internal/content"
	"rentcar-backend/internal/events"
	"rentcar-backend/internal/fleet"
	apphttp "rentcar-backend/internal/http"
	"rentcar-backend/internal/http/router"
	"rentcar-backend/internal/leads"
	"rentcar-backend/internal/notification"
	"rentcar-backend/internal/rates"
	"rentcar-backend/internal/scheduler"
	"rentcar-backend/internal/settings"
	"rentcar-backend/internal/whatsapp"
	"rentcar-backend/platform/config"
	"rentcar-backend/platform/db"
	"rentcar-backend/platform/logger"
	"rentcar-backend/platform/validator"

	"github.com/jackc/pgx/v5/pgxpool"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("failed to load config: " + err.Error())
	}

	log := logger.New(cfg.Env)
	log.Info("starting server", "env", cfg.Env, "addr", cfg.HTTPAddr)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// ========================================================================
	// Infrastructure Layer
	// ========================================================================

	if err := withRetry(ctx, log, "database migrations", 5, 2*time.Second, func() error {
		return db.RunMigrations(ctx, cfg, "migrations")
	}); err != nil {
		log.Error("failed to run database migrations", "error", err)
		panic("failed to run database migrations: " + err.Error())
	}
	log.Info("database migrations complete")

	var pool *pgxpool.Pool
	if err := withRetry(ctx, log, "database connection", 5, 2*time.Second, func() error {
		p, err := db.NewPool(ctx, cfg)
		if err != nil {
			return err
		}
		pool = p
		return nil
	}); err != nil {
		log.Error("failed to connect to database", "error", err)
		panic("failed to connect to database: " + err.Error())
	}
	defer pool.Close()
	log.Info("database connection established")

	// Event bus for decoupled communication between modules
	eventBus := events.NewInMemoryBus(log)

	// Shared validator instance for dependency injection
	val := validator.New()

	retryScheduler, closeScheduler := initRetryScheduler(cfg, log)
	if closeScheduler != nil {
		defer closeScheduler()
	}

	// Storage service for car image uploads (MinIO, optional)
	var imageStore storage.ImageStore
	if cfg.IsMinIOEnabled() {
		storageSvc, err := storage.NewMinIOService(cfg)
		if err != nil {
			log.Error("failed to initialize storage service", "error", err)
			panic("failed to initialize storage service: " + err.Error())
		}
		if err := withRetry(ctx, log, "ensure car images bucket", 5, 2*time.Second, func() error {
			return storageSvc.EnsureBucketExists(ctx)
		}); err != nil {
			log.Error("failed to ensure storage bucket exists", "error", err)
			panic("failed to ensure storage bucket exists: " + err.Error())
		}
		imageStore = storageSvc
		log.Info("storage service initialized", "bucket", cfg.GetMinioBucketCarImages())
	} else {
		log.Warn("MINIO_ENDPOINT not configured; image uploads disabled")
	}

	// ========================================================================
	// Domain Modules (Composition Root)
	// ========================================================================

	activityModule := activitylog.NewModule(pool, eventBus, log)
	recorder := activityModule.Recorder()

	catalogModule := catalog.NewModule(pool, recorder, val, log)
	ratesModule := rates.NewModule(pool, recorder, val, log)
	fleetModule := fleet.NewModule(pool, ratesModule.Service(), imageStore, recorder, val, log)
	leadsModule := leads.NewModule(pool, eventBus, val, log)
	settingsModule := settings.NewModule(pool, cfg, recorder, val, log)
	contentModule := content.NewModule(pool, recorder, val)
	authModule := auth.NewModule(pool, cfg, val, log)

	bookingModule := booking.NewModule(
		fleetModule.Service(),
		ratesModule.Service(),
		catalogModule.Service(),
		settingsModule.Service(),
		leadsModule.Repository(),
		retryScheduler,
		eventBus,
		val,
		log,
	)

	// Notification module subscribes to domain events (not HTTP-facing)
	whatsappClient := whatsapp.NewClient(cfg, log)
	notification.New(eventBus, whatsappClient, settingsModule.Service(), log)

	// ========================================================================
	// HTTP Layer
	// ========================================================================

	app := &apphttp.App{
		Config:   cfg,
		Logger:   log,
		Health:   pool,
		EventBus: eventBus,
		Modules: []apphttp.Module{
			authModule,
			fleetModule,
			ratesModule,
			catalogModule,
			bookingModule,
			leadsModule,
			settingsModule,
			contentModule,
			activityModule,
		},
	}

	engine := router.New(app)

	srvErr := make(chan error, 1)
	go func() {
		log.Info("server listening", "addr", cfg.HTTPAddr)
		srvErr <- engine.Run(cfg.HTTPAddr)
	}()

	select {
	case <-ctx.Done():
		log.Info("shutdown signal received, gracefully shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		_ = shutdownCtx
	case err := <-srvErr:
		if err != nil {
			log.Error("server error", "error", err)
			panic("server error: " + err.Error())
		}
	}
}

func initRetryScheduler(cfg config.SchedulerConfig, log *logger.Logger) (scheduler.LeadRetryScheduler, func()) {
	if cfg.GetRedisURL() == "" {
		log.Warn("REDIS_URL not configured; lead persistence retries disabled")
		return nil, nil
	}

	client, err := scheduler.NewClient(cfg)
	if err != nil {
		log.Error("failed to initialize retry scheduler client", "error", err)
		return nil, nil
	}

	return client, func() {
		_ = client.Close()
	}
}

func withRetry(ctx context.Context, log *logger.Logger, name string, attempts int, baseDelay time.Duration, fn func() error) error {
	if attempts < 1 {
		return fmt.Errorf("%s: invalid retry attempts", name)
	}

	var lastErr error
	for attempt := 1; attempt <= attempts; attempt++ {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		if err := fn(); err == nil {
			return nil
		} else {
			lastErr = err
			log.Warn("retryable operation failed", "operation", name, "attempt", attempt, "error", err)
		}

		if attempt < attempts {
			delay := time.Duration(attempt*attempt) * baseDelay
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(delay):
			}
		}
	}

	return errors.New(name + ": " + lastErr.Error())
}
