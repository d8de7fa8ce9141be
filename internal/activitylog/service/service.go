// Package service records admin actions without ever failing the action
// that triggered them.
package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"rentcar-backend/internal/activitylog/repository"
	"rentcar-backend/internal/events"
	"rentcar-backend/platform/apperr"
	"rentcar-backend/platform/logger"
)

type ActivityRepository interface {
	Insert(ctx context.Context, userID *uuid.UUID, action, entity string, entityID, details *string) error
	ListRecent(ctx context.Context, limit int) ([]repository.Entry, error)
}

type Service struct {
	repo ActivityRepository
	log  *logger.Logger
}

func New(repo ActivityRepository, log *logger.Logger) *Service {
	return &Service{repo: repo, log: log}
}

// Record writes an activity entry. Failures are logged and swallowed so
// the admin operation itself never rolls back over its audit trail.
func (s *Service) Record(ctx context.Context, userID *uuid.UUID, action, entity, entityID, details string) {
	var idPtr, detailsPtr *string
	if entityID != "" {
		idPtr = &entityID
	}
	if details != "" {
		detailsPtr = &details
	}

	if err := s.repo.Insert(ctx, userID, action, entity, idPtr, detailsPtr); err != nil {
		s.log.Warn("failed to record activity", "action", action, "entity", entity, "error", err)
	}
}

func (s *Service) ListRecent(ctx context.Context, limit int) ([]repository.Entry, error) {
	entries, err := s.repo.ListRecent(ctx, limit)
	if err != nil {
		return nil, apperr.Wrap(apperr.KindInternal, "failed to list activity", err)
	}
	return entries, nil
}

// HandleLeadStatusChanged mirrors lead status transitions into the trail.
func (s *Service) HandleLeadStatusChanged(ctx context.Context, event events.Event) error {
	e, ok := event.(events.LeadStatusChanged)
	if !ok {
		return nil
	}

	actor := e.ChangedBy
	s.Record(ctx, &actor, "leads.status_change", "lead", e.LeadID.String(),
		fmt.Sprintf("%s -> %s", e.OldStatus, e.NewStatus))
	return nil
}
