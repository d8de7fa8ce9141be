// Package service manages editorial pages shown on the public site.
package service

import (
	"context"
	"errors"
	"regexp"

	"github.com/google/uuid"

	"rentcar-backend/internal/content/repository"
	"rentcar-backend/platform/apperr"
)

var slugPattern = regexp.MustCompile(`^[a-z0-9]+(?:-[a-z0-9]+)*$`)

type PageRepository interface {
	ListPages(ctx context.Context) ([]repository.Page, error)
	GetByID(ctx context.Context, id uuid.UUID) (repository.Page, error)
	GetActiveBySlug(ctx context.Context, slug string) (repository.Page, error)
	SlugExists(ctx context.Context, slug string) (bool, error)
	CreatePage(ctx context.Context, p repository.PageParams) (uuid.UUID, error)
	UpdatePage(ctx context.Context, id uuid.UUID, p repository.PageParams) error
	DeletePage(ctx context.Context, id uuid.UUID) error
}

// ActivityRecorder records admin actions. Implementations must not fail
// the calling operation.
type ActivityRecorder interface {
	Record(ctx context.Context, userID *uuid.UUID, action, entity, entityID, details string)
}

type Service struct {
	repo     PageRepository
	activity ActivityRecorder
}

func New(repo PageRepository, activity ActivityRecorder) *Service {
	return &Service{repo: repo, activity: activity}
}

// GetPublicPage returns a published page by slug.
func (s *Service) GetPublicPage(ctx context.Context, slug string) (repository.Page, error) {
	page, err := s.repo.GetActiveBySlug(ctx, slug)
	if errors.Is(err, repository.ErrNotFound) {
		return repository.Page{}, apperr.NotFound("page not found")
	}
	if err != nil {
		return repository.Page{}, apperr.Wrap(apperr.KindInternal, "failed to load page", err)
	}
	return page, nil
}

func (s *Service) ListPages(ctx context.Context) ([]repository.Page, error) {
	pages, err := s.repo.ListPages(ctx)
	if err != nil {
		return nil, apperr.Wrap(apperr.KindInternal, "failed to list pages", err)
	}
	return pages, nil
}

func (s *Service) GetPage(ctx context.Context, id uuid.UUID) (repository.Page, error) {
	page, err := s.repo.GetByID(ctx, id)
	if errors.Is(err, repository.ErrNotFound) {
		return repository.Page{}, apperr.NotFound("page not found")
	}
	if err != nil {
		return repository.Page{}, apperr.Wrap(apperr.KindInternal, "failed to load page", err)
	}
	return page, nil
}

func (s *Service) CreatePage(ctx context.Context, actorID uuid.UUID, p repository.PageParams) (repository.Page, error) {
	if !slugPattern.MatchString(p.Slug) {
		return repository.Page{}, apperr.Validation("slug must be lowercase words separated by dashes")
	}

	exists, err := s.repo.SlugExists(ctx, p.Slug)
	if err != nil {
		return repository.Page{}, apperr.Wrap(apperr.KindInternal, "failed to check slug", err)
	}
	if exists {
		return repository.Page{}, apperr.Conflict("a page with this slug already exists")
	}

	id, err := s.repo.CreatePage(ctx, p)
	if err != nil {
		return repository.Page{}, apperr.Wrap(apperr.KindInternal, "failed to create page", err)
	}

	s.record(ctx, actorID, "content.create", id.String(), p.Title)
	return s.GetPage(ctx, id)
}

func (s *Service) UpdatePage(ctx context.Context, actorID, id uuid.UUID, p repository.PageParams) (repository.Page, error) {
	if !slugPattern.MatchString(p.Slug) {
		return repository.Page{}, apperr.Validation("slug must be lowercase words separated by dashes")
	}

	current, err := s.GetPage(ctx, id)
	if err != nil {
		return repository.Page{}, err
	}

	if p.Slug != current.Slug {
		exists, err := s.repo.SlugExists(ctx, p.Slug)
		if err != nil {
			return repository.Page{}, apperr.Wrap(apperr.KindInternal, "failed to check slug", err)
		}
		if exists {
			return repository.Page{}, apperr.Conflict("a page with this slug already exists")
		}
	}

	if err := s.repo.UpdatePage(ctx, id, p); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return repository.Page{}, apperr.NotFound("page not found")
		}
		return repository.Page{}, apperr.Wrap(apperr.KindInternal, "failed to update page", err)
	}

	s.record(ctx, actorID, "content.update", id.String(), p.Title)
	return s.GetPage(ctx, id)
}

func (s *Service) DeletePage(ctx context.Context, actorID, id uuid.UUID) error {
	if err := s.repo.DeletePage(ctx, id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return apperr.NotFound("page not found")
		}
		return apperr.Wrap(apperr.KindInternal, "failed to delete page", err)
	}

	s.record(ctx, actorID, "content.delete", id.String(), "")
	return nil
}

func (s *Service) record(ctx context.Context, actorID uuid.UUID, action, entityID, details string) {
	if s.activity == nil {
		return
	}
	s.activity.Record(ctx, &actorID, action, "content_page", entityID, details)
}
