package scheduler

import (
	"context"
	"encoding/json"
	"fmt"

	"rentcar-backend/platform/config"
	"rentcar-backend/platform/logger"

	"github.com/hibiken/asynq"
)

// LeadPersistFunc stores a lead from a retry payload. The worker binary wires
// this to the leads repository.
type LeadPersistFunc func(ctx context.Context, payload LeadPersistRetryPayload) error

// Worker processes background tasks from the queue.
type Worker struct {
	server      *asynq.Server
	mux         *asynq.ServeMux
	log         *logger.Logger
	persistLead LeadPersistFunc
}

// NewWorker creates an asynq worker bound to the configured redis queue.
func NewWorker(cfg config.SchedulerConfig, log *logger.Logger, persistLead LeadPersistFunc) (*Worker, error) {
	redisURL := cfg.GetRedisURL()
	if redisURL == "" {
		return nil, fmt.Errorf("redis url not configured")
	}

	opt, err := redisClientOpt(redisURL)
	if err != nil {
		return nil, err
	}

	queue := cfg.GetAsynqQueueName()
	if queue == "" {
		queue = "default"
	}

	server := asynq.NewServer(opt, asynq.Config{
		Concurrency: 5,
		Queues:      map[string]int{queue: 1},
	})

	w := &Worker{
		server:      server,
		mux:         asynq.NewServeMux(),
		log:         log,
		persistLead: persistLead,
	}
	w.mux.HandleFunc(TaskLeadPersistRetry, w.handleLeadPersistRetry)

	return w, nil
}

// Run blocks processing tasks until Shutdown is called.
func (w *Worker) Run() error {
	return w.server.Run(w.mux)
}

// Shutdown stops the worker gracefully.
func (w *Worker) Shutdown() {
	w.server.Shutdown()
}

func (w *Worker) handleLeadPersistRetry(ctx context.Context, task *asynq.Task) error {
	var payload LeadPersistRetryPayload
	if err := json.Unmarshal(task.Payload(), &payload); err != nil {
		// Malformed payloads never become valid; skip retrying them.
		w.log.Error("lead persist retry payload unmarshal failed", "error", err)
		return fmt.Errorf("unmarshal payload: %v: %w", err, asynq.SkipRetry)
	}

	if err := w.persistLead(ctx, payload); err != nil {
		w.log.Error("lead persist retry failed", "error", err, "customer", payload.CustomerName)
		return err
	}

	w.log.Info("lead persisted on retry", "customer", payload.CustomerName, "totalCents", payload.TotalEstimateCents)
	return nil
}
