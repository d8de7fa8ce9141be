// Package service manages site-wide settings and exposes the configured
// WhatsApp contact number to the booking flow.
package service

import (
	"context"
	"errors"
	"regexp"

	"github.com/google/uuid"

	"rentcar-backend/internal/settings/repository"
	"rentcar-backend/platform/apperr"
	"rentcar-backend/platform/config"
	"rentcar-backend/platform/logger"
)

// WhatsAppNumberKey stores the operator destination number for the
// click-to-chat handoff.
const WhatsAppNumberKey = "whatsapp_number"

var keyPattern = regexp.MustCompile(`^[a-z][a-z0-9_]{1,63}$`)

type SettingsRepository interface {
	Get(ctx context.Context, key string) (repository.Setting, error)
	List(ctx context.Context) ([]repository.Setting, error)
	Upsert(ctx context.Context, key, value string) error
}

// ActivityRecorder records admin actions. Implementations must not fail
// the calling operation.
type ActivityRecorder interface {
	Record(ctx context.Context, userID *uuid.UUID, action, entity, entityID, details string)
}

type Service struct {
	repo     SettingsRepository
	cfg      config.WhatsAppConfig
	activity ActivityRecorder
	log      *logger.Logger
}

func New(repo SettingsRepository, cfg config.WhatsAppConfig, activity ActivityRecorder, log *logger.Logger) *Service {
	return &Service{repo: repo, cfg: cfg, activity: activity, log: log}
}

func (s *Service) List(ctx context.Context) ([]repository.Setting, error) {
	settings, err := s.repo.List(ctx)
	if err != nil {
		return nil, apperr.Wrap(apperr.KindInternal, "failed to list settings", err)
	}
	return settings, nil
}

func (s *Service) Get(ctx context.Context, key string) (repository.Setting, error) {
	setting, err := s.repo.Get(ctx, key)
	if errors.Is(err, repository.ErrNotFound) {
		return repository.Setting{}, apperr.NotFound("setting not found")
	}
	if err != nil {
		return repository.Setting{}, apperr.Wrap(apperr.KindInternal, "failed to load setting", err)
	}
	return setting, nil
}

func (s *Service) Upsert(ctx context.Context, actorID uuid.UUID, key, value string) (repository.Setting, error) {
	if !keyPattern.MatchString(key) {
		return repository.Setting{}, apperr.Validation("invalid setting key")
	}

	if err := s.repo.Upsert(ctx, key, value); err != nil {
		return repository.Setting{}, apperr.Wrap(apperr.KindInternal, "failed to save setting", err)
	}

	if s.activity != nil {
		s.activity.Record(ctx, &actorID, "settings.update", "setting", key, value)
	}

	return s.Get(ctx, key)
}

// WhatsAppNumber returns the operator number from settings, falling back
// to the WHATSAPP_NUMBER environment value when the setting is empty.
func (s *Service) WhatsAppNumber(ctx context.Context) string {
	setting, err := s.repo.Get(ctx, WhatsAppNumberKey)
	if err == nil && setting.Value != "" {
		return setting.Value
	}
	if err != nil && !errors.Is(err, repository.ErrNotFound) {
		s.log.Warn("failed to read whatsapp number setting", "error", err)
	}
	return s.cfg.GetWhatsAppNumber()
}
