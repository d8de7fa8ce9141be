package transport

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"

	"rentcar-backend/internal/leads/repository"
)

type LeadResponse struct {
	ID                 uuid.UUID       `json:"id"`
	CarID              *uuid.UUID      `json:"carId,omitempty"`
	CustomerName       string          `json:"customerName"`
	CustomerPhone      string          `json:"customerPhone"`
	CustomerEmail      *string         `json:"customerEmail,omitempty"`
	PickupDate         time.Time       `json:"pickupDate"`
	ReturnDate         time.Time       `json:"returnDate"`
	PickupLocation     string          `json:"pickupLocation"`
	ReturnLocation     string          `json:"returnLocation"`
	QuoteSnapshot      json.RawMessage `json:"quoteSnapshot,omitempty"`
	TotalEstimateCents int64           `json:"totalEstimateCents"`
	Extras             json.RawMessage `json:"extras,omitempty"`
	InsurancePlanID    *uuid.UUID      `json:"insurancePlanId,omitempty"`
	Notes              *string         `json:"notes,omitempty"`
	Status             string          `json:"status"`
	Source             string          `json:"source"`
	InternalNotes      *string         `json:"internalNotes,omitempty"`
	CreatedAt          time.Time       `json:"createdAt"`
	UpdatedAt          time.Time       `json:"updatedAt"`
}

func ToLeadResponse(lead repository.Lead) LeadResponse {
	return LeadResponse{
		ID:                 lead.ID,
		CarID:              lead.CarID,
		CustomerName:       lead.CustomerName,
		CustomerPhone:      lead.CustomerPhone,
		CustomerEmail:      lead.CustomerEmail,
		PickupDate:         lead.PickupDate,
		ReturnDate:         lead.ReturnDate,
		PickupLocation:     lead.PickupLocation,
		ReturnLocation:     lead.ReturnLocation,
		QuoteSnapshot:      lead.QuoteSnapshot,
		TotalEstimateCents: lead.TotalEstimateCents,
		Extras:             lead.Extras,
		InsurancePlanID:    lead.InsurancePlanID,
		Notes:              lead.Notes,
		Status:             lead.Status,
		Source:             lead.Source,
		InternalNotes:      lead.InternalNotes,
		CreatedAt:          lead.CreatedAt,
		UpdatedAt:          lead.UpdatedAt,
	}
}

func ToLeadResponses(leads []repository.Lead) []LeadResponse {
	out := make([]LeadResponse, 0, len(leads))
	for _, lead := range leads {
		out = append(out, ToLeadResponse(lead))
	}
	return out
}

type UpdateStatusRequest struct {
	Status        string  `json:"status" validate:"required,oneof=NEW CONTACTED CONFIRMED LOST"`
	InternalNotes *string `json:"internalNotes" validate:"omitempty,max=5000"`
}
