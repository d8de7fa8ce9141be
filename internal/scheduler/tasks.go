package scheduler

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/hibiken/asynq"
)

// TaskLeadPersistRetry retries a lead insert that failed during submission.
// The payload carries everything needed to recreate the record so the retry
// does not depend on any in-process state.
const TaskLeadPersistRetry = "leads.persist.retry"

type LeadPersistRetryPayload struct {
	CarID              uuid.UUID       `json:"carId"`
	CustomerName       string          `json:"customerName"`
	CustomerPhone      string          `json:"customerPhone"`
	CustomerEmail      *string         `json:"customerEmail,omitempty"`
	PickupDate         time.Time       `json:"pickupDate"`
	ReturnDate         time.Time       `json:"returnDate"`
	PickupLocation     string          `json:"pickupLocation"`
	ReturnLocation     string          `json:"returnLocation"`
	QuoteSnapshot      json.RawMessage `json:"quoteSnapshot"`
	TotalEstimateCents int64           `json:"totalEstimateCents"`
	Extras             json.RawMessage `json:"extras,omitempty"`
	InsurancePlanID    *uuid.UUID      `json:"insurancePlanId,omitempty"`
	Notes              *string         `json:"notes,omitempty"`
	Source             string          `json:"source"`
}

func NewLeadPersistRetryTask(payload LeadPersistRetryPayload) (*asynq.Task, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TaskLeadPersistRetry, data, asynq.MaxRetry(5), asynq.Timeout(30*time.Second)), nil
}
