// Package events provides domain event definitions for decoupled,
// event-driven communication between modules.
// Infrastructure (Bus, Handler) is in platform/events.
package events

import (
	"rentcar-backend/platform/events"
	"rentcar-backend/platform/logger"

	"github.com/google/uuid"
)

// Re-export platform types for convenience
type (
	Event       = events.Event
	Bus         = events.Bus
	Handler     = events.Handler
	HandlerFunc = events.HandlerFunc
	BaseEvent   = events.BaseEvent
	InMemoryBus = events.InMemoryBus
)

// Re-export platform functions
var NewBaseEvent = events.NewBaseEvent

// NewInMemoryBus creates a new in-memory event bus.
func NewInMemoryBus(log *logger.Logger) *InMemoryBus {
	return events.NewInMemoryBus(log)
}

// =============================================================================
// Booking Domain Events
// =============================================================================

// LeadSubmitted is published when a customer submits a rental request.
// LeadID is nil when the synchronous persistence attempt failed and the
// record was handed to the retry queue instead.
type LeadSubmitted struct {
	BaseEvent
	LeadID        *uuid.UUID `json:"leadId,omitempty"`
	CarID         uuid.UUID  `json:"carId"`
	CarLabel      string     `json:"carLabel"`
	CustomerName  string     `json:"customerName"`
	CustomerPhone string     `json:"customerPhone"`
	TotalCents    int64      `json:"totalCents"`
	Message       string     `json:"message"`
}

func (e LeadSubmitted) EventName() string { return "booking.lead.submitted" }

// LeadStatusChanged is published when staff move a lead through the workflow.
type LeadStatusChanged struct {
	BaseEvent
	LeadID    uuid.UUID `json:"leadId"`
	OldStatus string    `json:"oldStatus"`
	NewStatus string    `json:"newStatus"`
	ChangedBy uuid.UUID `json:"changedBy"`
}

func (e LeadStatusChanged) EventName() string { return "leads.lead.status_changed" }
