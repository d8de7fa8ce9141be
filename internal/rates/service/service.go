// Package service implements rate plan management and exposes the quoted
// pricing terms to the booking flow and the public catalog.
package service

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"rentcar-backend/internal/booking/quote"
	"rentcar-backend/internal/rates/repository"
	"rentcar-backend/platform/apperr"
	"rentcar-backend/platform/logger"
)

type RateRepository interface {
	ListByCar(ctx context.Context, carID uuid.UUID) ([]repository.RatePlan, error)
	GetByID(ctx context.Context, id uuid.UUID) (repository.RatePlan, error)
	ActiveRateForCar(ctx context.Context, carID uuid.UUID) (repository.RatePlan, error)
	ActiveRateBySlug(ctx context.Context, slug string) (repository.RatePlan, error)
	Create(ctx context.Context, p repository.RatePlanParams) (uuid.UUID, error)
	Update(ctx context.Context, id uuid.UUID, p repository.RatePlanParams) error
	Delete(ctx context.Context, id uuid.UUID) error
}

// ActivityRecorder records back-office mutations.
type ActivityRecorder interface {
	Record(ctx context.Context, userID *uuid.UUID, action, entity, entityID, details string)
}

type Service struct {
	repo     RateRepository
	activity ActivityRecorder
	log      *logger.Logger
}

func New(repo RateRepository, activity ActivityRecorder, log *logger.Logger) *Service {
	return &Service{repo: repo, activity: activity, log: log}
}

// ActiveRateForCar implements the booking flow's rate lookup. A car without
// an active plan yields nil, not an error.
func (s *Service) ActiveRateForCar(ctx context.Context, carID uuid.UUID) (*quote.RateModel, error) {
	plan, err := s.repo.ActiveRateForCar(ctx, carID)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return toRateModel(plan), nil
}

// DailyPriceForCar implements the fleet listing's price lookup.
func (s *Service) DailyPriceForCar(ctx context.Context, carID uuid.UUID) (*int64, error) {
	plan, err := s.repo.ActiveRateForCar(ctx, carID)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	price := plan.DailyPriceCents
	return &price, nil
}

// PublicRateBySlug returns the quoted rate plan for a public car page.
func (s *Service) PublicRateBySlug(ctx context.Context, slug string) (repository.RatePlan, error) {
	plan, err := s.repo.ActiveRateBySlug(ctx, slug)
	if errors.Is(err, repository.ErrNotFound) {
		return repository.RatePlan{}, apperr.NotFound("rate plan not found")
	}
	if err != nil {
		return repository.RatePlan{}, apperr.Wrap(apperr.KindInternal, "failed to load rate plan", err)
	}
	return plan, nil
}

// ListByCar returns all rate plans of one car for the back office.
func (s *Service) ListByCar(ctx context.Context, carID uuid.UUID) ([]repository.RatePlan, error) {
	plans, err := s.repo.ListByCar(ctx, carID)
	if err != nil {
		return nil, apperr.Wrap(apperr.KindInternal, "failed to list rate plans", err)
	}
	return plans, nil
}

// GetByID returns one rate plan.
func (s *Service) GetByID(ctx context.Context, id uuid.UUID) (repository.RatePlan, error) {
	plan, err := s.repo.GetByID(ctx, id)
	if errors.Is(err, repository.ErrNotFound) {
		return repository.RatePlan{}, apperr.NotFound("rate plan not found")
	}
	if err != nil {
		return repository.RatePlan{}, apperr.Wrap(apperr.KindInternal, "failed to load rate plan", err)
	}
	return plan, nil
}

// Create adds a rate plan for a car.
func (s *Service) Create(ctx context.Context, actorID uuid.UUID, p repository.RatePlanParams) (repository.RatePlan, error) {
	if err := validateParams(p); err != nil {
		return repository.RatePlan{}, err
	}

	id, err := s.repo.Create(ctx, p)
	if err != nil {
		return repository.RatePlan{}, apperr.Wrap(apperr.KindInternal, "failed to create rate plan", err)
	}

	s.record(ctx, actorID, "create", "rate_plan", id.String())
	return s.GetByID(ctx, id)
}

// Update replaces a rate plan's terms.
func (s *Service) Update(ctx context.Context, actorID uuid.UUID, id uuid.UUID, p repository.RatePlanParams) (repository.RatePlan, error) {
	if err := validateParams(p); err != nil {
		return repository.RatePlan{}, err
	}

	if err := s.repo.Update(ctx, id, p); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return repository.RatePlan{}, apperr.NotFound("rate plan not found")
		}
		return repository.RatePlan{}, apperr.Wrap(apperr.KindInternal, "failed to update rate plan", err)
	}

	s.record(ctx, actorID, "update", "rate_plan", id.String())
	return s.GetByID(ctx, id)
}

// Delete removes a rate plan.
func (s *Service) Delete(ctx context.Context, actorID uuid.UUID, id uuid.UUID) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return apperr.NotFound("rate plan not found")
		}
		return apperr.Wrap(apperr.KindInternal, "failed to delete rate plan", err)
	}

	s.record(ctx, actorID, "delete", "rate_plan", id.String())
	return nil
}

func validateParams(p repository.RatePlanParams) error {
	if p.DailyPriceCents <= 0 {
		return apperr.Validation("daily price must be positive")
	}
	for _, bps := range []*int{p.Discount3DaysBps, p.Discount7DaysBps, p.Discount30DaysBps} {
		if bps != nil && (*bps < 0 || *bps > 10000) {
			return apperr.Validation("discounts must be between 0 and 10000 basis points")
		}
	}
	if p.DepositCents < 0 || p.ExtraKmPriceCents < 0 {
		return apperr.Validation("amounts must not be negative")
	}
	return nil
}

func toRateModel(p repository.RatePlan) *quote.RateModel {
	return &quote.RateModel{
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
	}
}

func (s *Service) record(ctx context.Context, actorID uuid.UUID, action, entity, entityID string) {
	if s.activity == nil {
		return
	}
	s.activity.Record(ctx, &actorID, action, entity, entityID, "")
}
