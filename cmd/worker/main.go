// The worker replays lead inserts that failed during submission. It is a
// separate process so a database outage that queues retries does not keep
// the API from serving quotes and WhatsApp links.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	leadsrepo "rentcar-backend/internal/leads/repository"
	"rentcar-backend/internal/scheduler"
	"rentcar-backend/platform/config"
	"rentcar-backend/platform/db"
	"rentcar-backend/platform/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("failed to load config: " + err.Error())
	}

	log := logger.New(cfg.Env)
	log.Info("starting worker", "env", cfg.Env)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	pool, err := db.NewPool(ctx, cfg)
	if err != nil {
		log.Error("failed to connect to database", "error", err)
		panic("failed to connect to database: " + err.Error())
	}
	defer pool.Close()

	repo := leadsrepo.New(pool)

	worker, err := scheduler.NewWorker(cfg, log, func(ctx context.Context, payload scheduler.LeadPersistRetryPayload) error {
		_, err := repo.CreateLead(ctx, leadsrepo.CreateLeadParams{
			CarID:              payload.CarID,
			CustomerName:       payload.CustomerName,
			CustomerPhone:      payload.CustomerPhone,
			CustomerEmail:      payload.CustomerEmail,
			PickupDate:         payload.PickupDate,
			ReturnDate:         payload.ReturnDate,
			PickupLocation:     payload.PickupLocation,
			ReturnLocation:     payload.ReturnLocation,
			QuoteSnapshot:      payload.QuoteSnapshot,
			TotalEstimateCents: payload.TotalEstimateCents,
			Extras:             payload.Extras,
			InsurancePlanID:    payload.InsurancePlanID,
			Notes:              payload.Notes,
			Source:             payload.Source,
		})
		return err
	})
	if err != nil {
		log.Error("failed to initialize worker", "error", err)
		panic("failed to initialize worker: " + err.Error())
	}

	go func() {
		<-ctx.Done()
		log.Info("shutdown signal received, stopping worker")
		worker.Shutdown()
	}()

	if err := worker.Run(); err != nil {
		log.Error("worker error", "error", err)
		panic("worker error: " + err.Error())
	}
}
