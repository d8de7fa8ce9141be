package scheduler

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/google/uuid"
)

type testSchedulerConfig struct {
	redisURL string
}

func (c testSchedulerConfig) GetRedisURL() string       { return c.redisURL }
func (c testSchedulerConfig) GetAsynqQueueName() string { return "test" }

func TestNewClientRequiresRedisURL(t *testing.T) {
	if _, err := NewClient(testSchedulerConfig{}); err == nil {
		t.Fatal("expected error without redis url")
	}
}

func TestNilClientDropsTasks(t *testing.T) {
	var c *Client
	err := c.ScheduleLeadPersistRetry(context.Background(), LeadPersistRetryPayload{})
	if err != nil {
		t.Fatalf("nil client should no-op, got %v", err)
	}
}

func TestScheduleLeadPersistRetryEnqueues(t *testing.T) {
	mr := miniredis.RunT(t)

	client, err := NewClient(testSchedulerConfig{redisURL: "redis://" + mr.Addr()})
	if err != nil {
		t.Fatalf("new client: %v", err)
	}
	defer client.Close()

	payload := LeadPersistRetryPayload{
		CarID:              uuid.New(),
		CustomerName:       "Mario Rossi",
		CustomerPhone:      "+41791234567",
		PickupDate:         time.Date(2025, 6, 1, 9, 0, 0, 0, time.UTC),
		ReturnDate:         time.Date(2025, 6, 4, 9, 0, 0, 0, time.UTC),
		TotalEstimateCents: 34200,
		Source:             "web",
	}

	if err := client.ScheduleLeadPersistRetry(context.Background(), payload); err != nil {
		t.Fatalf("enqueue failed: %v", err)
	}

	// asynq stores pending tasks under an asynq:{queue} key space.
	keys := mr.Keys()
	if len(keys) == 0 {
		t.Fatal("expected enqueued task keys in redis")
	}
}
