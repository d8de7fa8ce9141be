// Package notification forwards new rental requests to the operator.
// The customer handoff happens on their own device via the click-to-chat
// link; this module additionally pushes the inquiry to the business
// number when a gowa gateway is configured.
package notification

import (
	"context"
	"fmt"

	"rentcar-backend/internal/events"
	"rentcar-backend/internal/whatsapp"
	"rentcar-backend/platform/logger"
)

// ContactSource resolves the operator destination number at send time so
// settings changes take effect without a restart.
type ContactSource interface {
	WhatsAppNumber(ctx context.Context) string
}

type Notifier struct {
	client  *whatsapp.Client
	contact ContactSource
	log     *logger.Logger
}

func New(bus events.Bus, client *whatsapp.Client, contact ContactSource, log *logger.Logger) *Notifier {
	n := &Notifier{client: client, contact: contact, log: log}
	bus.Subscribe(events.LeadSubmitted{}.EventName(), events.HandlerFunc(n.HandleLeadSubmitted))
	return n
}

func (n *Notifier) HandleLeadSubmitted(ctx context.Context, event events.Event) error {
	e, ok := event.(events.LeadSubmitted)
	if !ok {
		return nil
	}

	leadID := "pending"
	if e.LeadID != nil {
		leadID = e.LeadID.String()
	}

	n.log.Info("lead submitted",
		"lead_id", leadID,
		"car", e.CarLabel,
		"customer", e.CustomerName,
		"total_cents", e.TotalCents,
	)

	if n.client == nil {
		return nil
	}

	number := n.contact.WhatsAppNumber(ctx)
	if number == "" {
		return nil
	}

	notice := fmt.Sprintf("Nuova richiesta: %s (%s, %s)\n\n%s",
		e.CustomerName, e.CustomerPhone, e.CarLabel, e.Message)

	if err := n.client.SendMessage(ctx, number, notice); err != nil {
		n.log.Warn("failed to push lead notification", "lead_id", leadID, "error", err)
	}
	return nil
}
