package service

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"rentcar-backend/internal/events"
	"rentcar-backend/internal/leads/repository"
	"rentcar-backend/platform/apperr"
	"rentcar-backend/platform/logger"
)

type LeadRepository interface {
	CreateLead(ctx context.Context, p repository.CreateLeadParams) (uuid.UUID, error)
	ListLeads(ctx context.Context, status string, limit int) ([]repository.Lead, error)
	GetLeadByID(ctx context.Context, id uuid.UUID) (repository.Lead, error)
	UpdateLeadStatus(ctx context.Context, id uuid.UUID, status string, internalNotes *string) (string, error)
	CountByStatus(ctx context.Context) (map[string]int, error)
}

type Service struct {
	repo LeadRepository
	bus  events.Bus
	log  *logger.Logger
}

func NewService(repo LeadRepository, bus events.Bus, log *logger.Logger) *Service {
	return &Service{repo: repo, bus: bus, log: log}
}

func (s *Service) ListLeads(ctx context.Context, status string, limit int) ([]repository.Lead, error) {
	if status != "" && !repository.ValidStatus(status) {
		return nil, apperr.Validation("unknown lead status")
	}
	items, err := s.repo.ListLeads(ctx, status, limit)
	if err != nil {
		return nil, apperr.Wrap(apperr.KindInternal, "failed to list leads", err)
	}
	return items, nil
}

func (s *Service) GetLead(ctx context.Context, id uuid.UUID) (repository.Lead, error) {
	lead, err := s.repo.GetLeadByID(ctx, id)
	if errors.Is(err, repository.ErrNotFound) {
		return repository.Lead{}, apperr.NotFound("lead not found")
	}
	if err != nil {
		return repository.Lead{}, apperr.Wrap(apperr.KindInternal, "failed to load lead", err)
	}
	return lead, nil
}

// UpdateStatus moves a lead through its workflow and publishes the
// transition so the activity log can record it.
func (s *Service) UpdateStatus(ctx context.Context, actorID uuid.UUID, id uuid.UUID, status string, internalNotes *string) (repository.Lead, error) {
	if !repository.ValidStatus(status) {
		return repository.Lead{}, apperr.Validation("unknown lead status")
	}

	oldStatus, err := s.repo.UpdateLeadStatus(ctx, id, status, internalNotes)
	if errors.Is(err, repository.ErrNotFound) {
		return repository.Lead{}, apperr.NotFound("lead not found")
	}
	if err != nil {
		return repository.Lead{}, apperr.Wrap(apperr.KindInternal, "failed to update lead status", err)
	}

	if s.bus != nil && oldStatus != status {
		s.bus.Publish(ctx, events.LeadStatusChanged{
			BaseEvent: events.NewBaseEvent(),
			LeadID:    id,
			OldStatus: oldStatus,
			NewStatus: status,
			ChangedBy: actorID,
		})
	}

	return s.GetLead(ctx, id)
}

func (s *Service) CountByStatus(ctx context.Context) (map[string]int, error) {
	counts, err := s.repo.CountByStatus(ctx)
	if err != nil {
		return nil, apperr.Wrap(apperr.KindInternal, "failed to count leads", err)
	}
	return counts, nil
}
