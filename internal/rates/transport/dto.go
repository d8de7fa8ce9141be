package transport

import (
	"time"

	"github.com/google/uuid"

	"rentcar-backend/internal/rates/repository"
)

type RatePlanResponse struct {
	ID                uuid.UUID `json:"id"`
	CarID             uuid.UUID `json:"carId"`
	DailyPriceCents   int64     `json:"dailyPriceCents"`
	WeeklyPriceCents  *int64    `json:"weeklyPriceCents,omitempty"`
	MonthlyPriceCents *int64    `json:"monthlyPriceCents,omitempty"`
	Discount3DaysBps  *int      `json:"discount3DaysBps,omitempty"`
	Discount7DaysBps  *int      `json:"discount7DaysBps,omitempty"`
	Discount30DaysBps *int      `json:"discount30DaysBps,omitempty"`
	KmIncluded        int       `json:"kmIncluded"`
	ExtraKmPriceCents int64     `json:"extraKmPriceCents"`
	UnlimitedKm       bool      `json:"unlimitedKm"`
	DepositCents      int64     `json:"depositCents"`
	DepositNotes      *string   `json:"depositNotes,omitempty"`
	Active            bool      `json:"active"`
	CreatedAt         time.Time `json:"createdAt"`
	UpdatedAt         time.Time `json:"updatedAt"`
}

func ToRatePlanResponse(p repository.RatePlan) RatePlanResponse {
	return RatePlanResponse{
		ID:                p.ID,
		CarID:             p.CarID,
		DailyPriceCents:   p.DailyPriceCents,
		WeeklyPriceCents:  p.WeeklyPriceCents,
		MonthlyPriceCents: p.MonthlyPriceCents,
		Discount3DaysBps:  p.Discount3DaysBps,
		Discount7DaysBps:  p.Discount7DaysBps,
		Discount30DaysBps: p.Discount30DaysBps,
		KmIncluded:        p.KmIncluded,
		ExtraKmPriceCents: p.ExtraKmPriceCents,
		UnlimitedKm:       p.UnlimitedKm,
		DepositCents:      p.DepositCents,
		DepositNotes:      p.DepositNotes,
		Active:            p.Active,
		CreatedAt:         p.CreatedAt,
		UpdatedAt:         p.UpdatedAt,
	}
}

func ToRatePlanResponses(plans []repository.RatePlan) []RatePlanResponse {
	out := make([]RatePlanResponse, 0, len(plans))
	for _, p := range plans {
		out = append(out, ToRatePlanResponse(p))
	}
	return out
}

type RatePlanRequest struct {
	CarID             uuid.UUID `json:"carId" validate:"required"`
	DailyPriceCents   int64     `json:"dailyPriceCents" validate:"required,min=1"`
	WeeklyPriceCents  *int64    `json:"weeklyPriceCents" validate:"omitempty,min=1"`
	MonthlyPriceCents *int64    `json:"monthlyPriceCents" validate:"omitempty,min=1"`
	Discount3DaysBps  *int      `json:"discount3DaysBps" validate:"omitempty,min=0,max=10000"`
	Discount7DaysBps  *int      `json:"discount7DaysBps" validate:"omitempty,min=0,max=10000"`
	Discount30DaysBps *int      `json:"discount30DaysBps" validate:"omitempty,min=0,max=10000"`
	KmIncluded        int       `json:"kmIncluded" validate:"min=0"`
	ExtraKmPriceCents int64     `json:"extraKmPriceCents" validate:"min=0"`
	UnlimitedKm       bool      `json:"unlimitedKm"`
	DepositCents      int64     `json:"depositCents" validate:"min=0"`
	DepositNotes      *string   `json:"depositNotes" validate:"omitempty,max=500"`
	Active            bool      `json:"active"`
}

func (r RatePlanRequest) ToParams() repository.RatePlanParams {
	return repository.RatePlanParams{
		CarID:             r.CarID,
		DailyPriceCents:   r.DailyPriceCents,
		WeeklyPriceCents:  r.WeeklyPriceCents,
		MonthlyPriceCents: r.MonthlyPriceCents,
		Discount3DaysBps:  r.Discount3DaysBps,
		Discount7DaysBps:  r.Discount7DaysBps,
		Discount30DaysBps: r.Discount30DaysBps,
		KmIncluded:        r.KmIncluded,
		ExtraKmPriceCents: r.ExtraKmPriceCents,
		UnlimitedKm:       r.UnlimitedKm,
		DepositCents:      r.DepositCents,
		DepositNotes:      r.DepositNotes,
		Active:            r.Active,
	}
}
