package transport

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"

	"rentcar-backend/internal/catalog/repository"
)

type ExtraResponse struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	Description *string   `json:"description,omitempty"`
	PriceType   string    `json:"priceType"`
	PriceCents  int64     `json:"priceCents"`
	MaxQuantity int       `json:"maxQuantity"`
	Active      bool      `json:"active"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

func ToExtraResponses(extras []repository.Extra) []ExtraResponse {
	out := make([]ExtraResponse, 0, len(extras))
	for _, e := range extras {
		out = append(out, ExtraResponse{
			ID:          e.ID,
			Name:        e.Name,
			Description: e.Description,
			PriceType:   e.PriceType,
			PriceCents:  e.PriceCents,
			MaxQuantity: e.MaxQuantity,
			Active:      e.Active,
			CreatedAt:   e.CreatedAt,
			UpdatedAt:   e.UpdatedAt,
		})
	}
	return out
}

func ToExtraResponse(e repository.Extra) ExtraResponse {
	return ToExtraResponses([]repository.Extra{e})[0]
}

type ExtraRequest struct {
	Name        string  `json:"name" validate:"required,min=1,max=120"`
	Description *string `json:"description" validate:"omitempty,max=1000"`
	PriceType   string  `json:"priceType" validate:"required,oneof=PER_DAY ONE_TIME"`
	PriceCents  int64   `json:"priceCents" validate:"min=0"`
	MaxQuantity int     `json:"maxQuantity" validate:"min=1,max=20"`
	Active      bool    `json:"active"`
}

func (r ExtraRequest) ToParams() repository.ExtraParams {
	return repository.ExtraParams{
		Name:        r.Name,
		Description: r.Description,
		PriceType:   r.PriceType,
		PriceCents:  r.PriceCents,
		MaxQuantity: r.MaxQuantity,
		Active:      r.Active,
	}
}

type InsurancePlanResponse struct {
	ID               uuid.UUID `json:"id"`
	Name             string    `json:"name"`
	Description      *string   `json:"description,omitempty"`
	PricePerDayCents int64     `json:"pricePerDayCents"`
	FranchiseCents   int64     `json:"franchiseCents"`
	Active           bool      `json:"active"`
	CreatedAt        time.Time `json:"createdAt"`
	UpdatedAt        time.Time `json:"updatedAt"`
}

func ToInsurancePlanResponses(plans []repository.InsurancePlan) []InsurancePlanResponse {
	out := make([]InsurancePlanResponse, 0, len(plans))
	for _, p := range plans {
		out = append(out, InsurancePlanResponse{
			ID:               p.ID,
			Name:             p.Name,
			Description:      p.Description,
			PricePerDayCents: p.PricePerDayCents,
			FranchiseCents:   p.FranchiseCents,
			Active:           p.Active,
			CreatedAt:        p.CreatedAt,
			UpdatedAt:        p.UpdatedAt,
		})
	}
	return out
}

func ToInsurancePlanResponse(p repository.InsurancePlan) InsurancePlanResponse {
	return ToInsurancePlanResponses([]repository.InsurancePlan{p})[0]
}

type InsurancePlanRequest struct {
	Name             string  `json:"name" validate:"required,min=1,max=120"`
	Description      *string `json:"description" validate:"omitempty,max=1000"`
	PricePerDayCents int64   `json:"pricePerDayCents" validate:"min=0"`
	FranchiseCents   int64   `json:"franchiseCents" validate:"min=0"`
	Active           bool    `json:"active"`
}

func (r InsurancePlanRequest) ToParams() repository.InsurancePlanParams {
	return repository.InsurancePlanParams{
		Name:             r.Name,
		Description:      r.Description,
		PricePerDayCents: r.PricePerDayCents,
		FranchiseCents:   r.FranchiseCents,
		Active:           r.Active,
	}
}

type LocationResponse struct {
	ID           uuid.UUID       `json:"id"`
	Name         string          `json:"name"`
	Address      string          `json:"address"`
	City         string          `json:"city"`
	Canton       string          `json:"canton"`
	OpeningHours json.RawMessage `json:"openingHours,omitempty"`
	Active       bool            `json:"active"`
	CreatedAt    time.Time       `json:"createdAt"`
	UpdatedAt    time.Time       `json:"updatedAt"`
}

func ToLocationResponses(locations []repository.Location) []LocationResponse {
	out := make([]LocationResponse, 0, len(locations))
	for _, l := range locations {
		out = append(out, LocationResponse{
			ID:           l.ID,
			Name:         l.Name,
			Address:      l.Address,
			City:         l.City,
			Canton:       l.Canton,
			OpeningHours: l.OpeningHours,
			Active:       l.Active,
			CreatedAt:    l.CreatedAt,
			UpdatedAt:    l.UpdatedAt,
		})
	}
	return out
}

func ToLocationResponse(l repository.Location) LocationResponse {
	return ToLocationResponses([]repository.Location{l})[0]
}

type LocationRequest struct {
	Name         string          `json:"name" validate:"required,min=1,max=120"`
	Address      string          `json:"address" validate:"max=200"`
	City         string          `json:"city" validate:"max=80"`
	Canton       string          `json:"canton" validate:"max=40"`
	OpeningHours json.RawMessage `json:"openingHours"`
	Active       bool            `json:"active"`
}

func (r LocationRequest) ToParams() repository.LocationParams {
	return repository.LocationParams{
		Name:         r.Name,
		Address:      r.Address,
		City:         r.City,
		Canton:       r.Canton,
		OpeningHours: r.OpeningHours,
		Active:       r.Active,
	}
}
