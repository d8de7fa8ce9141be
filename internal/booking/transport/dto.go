package transport

import (
	"time"

	"github.com/google/uuid"

	"rentcar-backend/internal/booking/quote"
)

type ExtraSelectionDTO struct {
	ID       uuid.UUID `json:"id" validate:"required"`
	Quantity int       `json:"quantity" validate:"required,min=1"`
}

// QuoteRequest is the public price calculation request. It carries the whole
// rental configuration; the server recomputes everything from it.
type QuoteRequest struct {
	CarID           uuid.UUID           `json:"carId" validate:"required"`
	PickupAt        time.Time           `json:"pickupAt" validate:"required"`
	ReturnAt        time.Time           `json:"returnAt" validate:"required"`
	Mileage         string              `json:"mileage" validate:"omitempty,oneof=INCLUDED UNLIMITED"`
	Extras          []ExtraSelectionDTO `json:"extras" validate:"omitempty,max=20,dive"`
	InsurancePlanID *uuid.UUID          `json:"insurancePlanId"`
}

func (r QuoteRequest) ToQuoteConfig() quote.Config {
	mileage := quote.MileageIncluded
	if r.Mileage == string(quote.MileageUnlimited) {
		mileage = quote.MileageUnlimited
	}

	extras := make([]quote.ExtraSelection, 0, len(r.Extras))
	for _, e := range r.Extras {
		extras = append(extras, quote.ExtraSelection{ID: e.ID, Quantity: e.Quantity})
	}

	return quote.Config{
		PickupAt:        r.PickupAt,
		ReturnAt:        r.ReturnAt,
		Mileage:         mileage,
		Extras:          extras,
		InsurancePlanID: r.InsurancePlanID,
	}
}

// QuoteResponse wraps the computed breakdown.
type QuoteResponse struct {
	Quote *quote.Breakdown `json:"quote"`
}

// SubmitLeadRequest is the public rental request submission. Terms and
// privacy acceptance are hard requirements, not soft warnings.
type SubmitLeadRequest struct {
	QuoteRequest

	CustomerName     string     `json:"customerName" validate:"required,min=2,max=120"`
	CustomerPhone    string     `json:"customerPhone" validate:"required,min=6,max=32"`
	CustomerEmail    *string    `json:"customerEmail" validate:"omitempty,email"`
	PickupLocationID *uuid.UUID `json:"pickupLocationId"`
	ReturnLocationID *uuid.UUID `json:"returnLocationId"`
	Notes            *string    `json:"notes" validate:"omitempty,max=2000"`
	TermsAccepted    bool       `json:"termsAccepted" validate:"eq=true"`
	PrivacyAccepted  bool       `json:"privacyAccepted" validate:"eq=true"`
}

// SubmitLeadResponse reports the outcome of a submission. LeadID is null when
// the record could not be stored synchronously and was queued for retry; the
// WhatsApp hand-off still succeeds in that case.
type SubmitLeadResponse struct {
	LeadID      *uuid.UUID       `json:"leadId"`
	WhatsAppURL string           `json:"whatsappUrl"`
	Message     string           `json:"message"`
	Quote       *quote.Breakdown `json:"quote"`
}
