// Package service implements catalog management: extras, insurance plans,
// and pickup locations, plus the catalog views the booking flow quotes from.
package service

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"rentcar-backend/internal/booking/quote"
	"rentcar-backend/internal/catalog/repository"
	"rentcar-backend/platform/apperr"
	"rentcar-backend/platform/logger"
)

type CatalogRepository interface {
	ListExtras(ctx context.Context, onlyActive bool) ([]repository.Extra, error)
	GetExtraByID(ctx context.Context, id uuid.UUID) (repository.Extra, error)
	CreateExtra(ctx context.Context, p repository.ExtraParams) (uuid.UUID, error)
	UpdateExtra(ctx context.Context, id uuid.UUID, p repository.ExtraParams) error
	DeleteExtra(ctx context.Context, id uuid.UUID) error
	ListInsurancePlans(ctx context.Context, onlyActive bool) ([]repository.InsurancePlan, error)
	GetInsurancePlanByID(ctx context.Context, id uuid.UUID) (repository.InsurancePlan, error)
	CreateInsurancePlan(ctx context.Context, p repository.InsurancePlanParams) (uuid.UUID, error)
	UpdateInsurancePlan(ctx context.Context, id uuid.UUID, p repository.InsurancePlanParams) error
	DeleteInsurancePlan(ctx context.Context, id uuid.UUID) error
	ListLocations(ctx context.Context, onlyActive bool) ([]repository.Location, error)
	GetLocationByID(ctx context.Context, id uuid.UUID) (repository.Location, error)
	CreateLocation(ctx context.Context, p repository.LocationParams) (uuid.UUID, error)
	UpdateLocation(ctx context.Context, id uuid.UUID, p repository.LocationParams) error
	DeleteLocation(ctx context.Context, id uuid.UUID) error
}

// ActivityRecorder records back-office mutations.
type ActivityRecorder interface {
	Record(ctx context.Context, userID *uuid.UUID, action, entity, entityID, details string)
}

type Service struct {
	repo     CatalogRepository
	activity ActivityRecorder
	log      *logger.Logger
}

func New(repo CatalogRepository, activity ActivityRecorder, log *logger.Logger) *Service {
	return &Service{repo: repo, activity: activity, log: log}
}

// ActiveExtras implements the booking flow's extras catalog.
func (s *Service) ActiveExtras(ctx context.Context) ([]quote.Extra, error) {
	extras, err := s.repo.ListExtras(ctx, true)
	if err != nil {
		return nil, err
	}

	out := make([]quote.Extra, 0, len(extras))
	for _, e := range extras {
		out = append(out, quote.Extra{
			ID:          e.ID,
			Name:        e.Name,
			PriceType:   e.PriceType,
			PriceCents:  e.PriceCents,
			MaxQuantity: e.MaxQuantity,
		})
	}
	return out, nil
}

// ActiveInsurancePlans implements the booking flow's insurance catalog.
func (s *Service) ActiveInsurancePlans(ctx context.Context) ([]quote.InsurancePlan, error) {
	plans, err := s.repo.ListInsurancePlans(ctx, true)
	if err != nil {
		return nil, err
	}

	out := make([]quote.InsurancePlan, 0, len(plans))
	for _, p := range plans {
		out = append(out, quote.InsurancePlan{
			ID:               p.ID,
			Name:             p.Name,
			PricePerDayCents: p.PricePerDayCents,
			FranchiseCents:   p.FranchiseCents,
		})
	}
	return out, nil
}

// LocationName resolves a location id to its display name. Unknown ids
// resolve to "" rather than an error.
func (s *Service) LocationName(ctx context.Context, id uuid.UUID) (string, error) {
	location, err := s.repo.GetLocationByID(ctx, id)
	if errors.Is(err, repository.ErrNotFound) {
		return "", nil
	}
	if err != nil {
		return "", err
	}
	return location.Name, nil
}

// ListExtras returns extras for the public site or back office.
func (s *Service) ListExtras(ctx context.Context, onlyActive bool) ([]repository.Extra, error) {
	extras, err := s.repo.ListExtras(ctx, onlyActive)
	if err != nil {
		return nil, apperr.Wrap(apperr.KindInternal, "failed to list extras", err)
	}
	return extras, nil
}

func (s *Service) CreateExtra(ctx context.Context, actorID uuid.UUID, p repository.ExtraParams) (repository.Extra, error) {
	if p.PriceType != quote.PriceTypePerDay && p.PriceType != quote.PriceTypeOneTime {
		return repository.Extra{}, apperr.Validation("unknown price type")
	}
	if p.MaxQuantity < 1 {
		p.MaxQuantity = 1
	}

	id, err := s.repo.CreateExtra(ctx, p)
	if err != nil {
		return repository.Extra{}, apperr.Wrap(apperr.KindInternal, "failed to create extra", err)
	}

	s.record(ctx, actorID, "create", "extra", id.String(), p.Name)
	return s.getExtra(ctx, id)
}

func (s *Service) UpdateExtra(ctx context.Context, actorID uuid.UUID, id uuid.UUID, p repository.ExtraParams) (repository.Extra, error) {
	if p.PriceType != quote.PriceTypePerDay && p.PriceType != quote.PriceTypeOneTime {
		return repository.Extra{}, apperr.Validation("unknown price type")
	}

	if err := s.repo.UpdateExtra(ctx, id, p); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return repository.Extra{}, apperr.NotFound("extra not found")
		}
		return repository.Extra{}, apperr.Wrap(apperr.KindInternal, "failed to update extra", err)
	}

	s.record(ctx, actorID, "update", "extra", id.String(), p.Name)
	return s.getExtra(ctx, id)
}

func (s *Service) DeleteExtra(ctx context.Context, actorID uuid.UUID, id uuid.UUID) error {
	if err := s.repo.DeleteExtra(ctx, id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return apperr.NotFound("extra not found")
		}
		return apperr.Wrap(apperr.KindInternal, "failed to delete extra", err)
	}

	s.record(ctx, actorID, "delete", "extra", id.String(), "")
	return nil
}

// ListInsurancePlans returns insurance plans for the public site or back office.
func (s *Service) ListInsurancePlans(ctx context.Context, onlyActive bool) ([]repository.InsurancePlan, error) {
	plans, err := s.repo.ListInsurancePlans(ctx, onlyActive)
	if err != nil {
		return nil, apperr.Wrap(apperr.KindInternal, "failed to list insurance plans", err)
	}
	return plans, nil
}

func (s *Service) CreateInsurancePlan(ctx context.Context, actorID uuid.UUID, p repository.InsurancePlanParams) (repository.InsurancePlan, error) {
	id, err := s.repo.CreateInsurancePlan(ctx, p)
	if err != nil {
		return repository.InsurancePlan{}, apperr.Wrap(apperr.KindInternal, "failed to create insurance plan", err)
	}

	s.record(ctx, actorID, "create", "insurance_plan", id.String(), p.Name)
	return s.getInsurancePlan(ctx, id)
}

func (s *Service) UpdateInsurancePlan(ctx context.Context, actorID uuid.UUID, id uuid.UUID, p repository.InsurancePlanParams) (repository.InsurancePlan, error) {
	if err := s.repo.UpdateInsurancePlan(ctx, id, p); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return repository.InsurancePlan{}, apperr.NotFound("insurance plan not found")
		}
		return repository.InsurancePlan{}, apperr.Wrap(apperr.KindInternal, "failed to update insurance plan", err)
	}

	s.record(ctx, actorID, "update", "insurance_plan", id.String(), p.Name)
	return s.getInsurancePlan(ctx, id)
}

func (s *Service) DeleteInsurancePlan(ctx context.Context, actorID uuid.UUID, id uuid.UUID) error {
	if err := s.repo.DeleteInsurancePlan(ctx, id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return apperr.NotFound("insurance plan not found")
		}
		return apperr.Wrap(apperr.KindInternal, "failed to delete insurance plan", err)
	}

	s.record(ctx, actorID, "delete", "insurance_plan", id.String(), "")
	return nil
}

// ListLocations returns locations for the public site or back office.
func (s *Service) ListLocations(ctx context.Context, onlyActive bool) ([]repository.Location, error) {
	locations, err := s.repo.ListLocations(ctx, onlyActive)
	if err != nil {
		return nil, apperr.Wrap(apperr.KindInternal, "failed to list locations", err)
	}
	return locations, nil
}

func (s *Service) CreateLocation(ctx context.Context, actorID uuid.UUID, p repository.LocationParams) (repository.Location, error) {
	id, err := s.repo.CreateLocation(ctx, p)
	if err != nil {
		return repository.Location{}, apperr.Wrap(apperr.KindInternal, "failed to create location", err)
	}

	s.record(ctx, actorID, "create", "location", id.String(), p.Name)
	return s.getLocation(ctx, id)
}

func (s *Service) UpdateLocation(ctx context.Context, actorID uuid.UUID, id uuid.UUID, p repository.LocationParams) (repository.Location, error) {
	if err := s.repo.UpdateLocation(ctx, id, p); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return repository.Location{}, apperr.NotFound("location not found")
		}
		return repository.Location{}, apperr.Wrap(apperr.KindInternal, "failed to update location", err)
	}

	s.record(ctx, actorID, "update", "location", id.String(), p.Name)
	return s.getLocation(ctx, id)
}

func (s *Service) DeleteLocation(ctx context.Context, actorID uuid.UUID, id uuid.UUID) error {
	if err := s.repo.DeleteLocation(ctx, id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return apperr.NotFound("location not found")
		}
		return apperr.Wrap(apperr.KindInternal, "failed to delete location", err)
	}

	s.record(ctx, actorID, "delete", "location", id.String(), "")
	return nil
}

func (s *Service) getExtra(ctx context.Context, id uuid.UUID) (repository.Extra, error) {
	extra, err := s.repo.GetExtraByID(ctx, id)
	if err != nil {
		return repository.Extra{}, apperr.Wrap(apperr.KindInternal, "failed to load extra", err)
	}
	return extra, nil
}

func (s *Service) getInsurancePlan(ctx context.Context, id uuid.UUID) (repository.InsurancePlan, error) {
	plan, err := s.repo.GetInsurancePlanByID(ctx, id)
	if err != nil {
		return repository.InsurancePlan{}, apperr.Wrap(apperr.KindInternal, "failed to load insurance plan", err)
	}
	return plan, nil
}

func (s *Service) getLocation(ctx context.Context, id uuid.UUID) (repository.Location, error) {
	location, err := s.repo.GetLocationByID(ctx, id)
	if err != nil {
		return repository.Location{}, apperr.Wrap(apperr.KindInternal, "failed to load location", err)
	}
	return location, nil
}

func (s *Service) record(ctx context.Context, actorID uuid.UUID, action, entity, entityID, details string) {
	if s.activity == nil {
		return
	}
	s.activity.Record(ctx, &actorID, action, entity, entityID, details)
}
