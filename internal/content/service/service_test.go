package service

import (
	"context"
	"testing"

	"github.com/google/uuid"

	"rentcar-backend/internal/content/repository"
	"rentcar-backend/platform/apperr"
)

type stubPages struct {
	pages map[uuid.UUID]repository.Page
}

func newStubPages() *stubPages {
	return &stubPages{pages: map[uuid.UUID]repository.Page{}}
}

func (r *stubPages) ListPages(ctx context.Context) ([]repository.Page, error) {
	out := make([]repository.Page, 0, len(r.pages))
	for _, p := range r.pages {
		out = append(out, p)
	}
	return out, nil
}

func (r *stubPages) GetByID(ctx context.Context, id uuid.UUID) (repository.Page, error) {
	p, ok := r.pages[id]
	if !ok {
		return repository.Page{}, repository.ErrNotFound
	}
	return p, nil
}

func (r *stubPages) GetActiveBySlug(ctx context.Context, slug string) (repository.Page, error) {
	for _, p := range r.pages {
		if p.Slug == slug && p.Active {
			return p, nil
		}
	}
	return repository.Page{}, repository.ErrNotFound
}

func (r *stubPages) SlugExists(ctx context.Context, slug string) (bool, error) {
	for _, p := range r.pages {
		if p.Slug == slug {
			return true, nil
		}
	}
	return false, nil
}

func (r *stubPages) CreatePage(ctx context.Context, params repository.PageParams) (uuid.UUID, error) {
	id := uuid.New()
	r.pages[id] = repository.Page{
		ID:      id,
		Slug:    params.Slug,
		Title:   params.Title,
		Content: params.Content,
		Active:  params.Active,
	}
	return id, nil
}

func (r *stubPages) UpdatePage(ctx context.Context, id uuid.UUID, params repository.PageParams) error {
	p, ok := r.pages[id]
	if !ok {
		return repository.ErrNotFound
	}
	p.Slug = params.Slug
	p.Title = params.Title
	p.Content = params.Content
	p.Active = params.Active
	r.pages[id] = p
	return nil
}

func (r *stubPages) DeletePage(ctx context.Context, id uuid.UUID) error {
	if _, ok := r.pages[id]; !ok {
		return repository.ErrNotFound
	}
	delete(r.pages, id)
	return nil
}

func TestCreatePageRejectsBadSlug(t *testing.T) {
	svc := New(newStubPages(), nil)

	for _, slug := range []string{"", "Has Spaces", "UPPER", "trailing-", "-leading", "double--dash"} {
		_, err := svc.CreatePage(context.Background(), uuid.New(), repository.PageParams{Slug: slug, Title: "T"})
		if !apperr.Is(err, apperr.KindValidation) {
			t.Fatalf("slug %q: expected validation error, got %v", slug, err)
		}
	}
}

func TestCreatePageRejectsDuplicateSlug(t *testing.T) {
	repo := newStubPages()
	svc := New(repo, nil)
	actor := uuid.New()

	if _, err := svc.CreatePage(context.Background(), actor, repository.PageParams{Slug: "terms", Title: "Termini", Active: true}); err != nil {
		t.Fatalf("CreatePage: %v", err)
	}

	_, err := svc.CreatePage(context.Background(), actor, repository.PageParams{Slug: "terms", Title: "Again"})
	if !apperr.Is(err, apperr.KindConflict) {
		t.Fatalf("expected conflict, got %v", err)
	}
}

func TestGetPublicPageSkipsInactive(t *testing.T) {
	repo := newStubPages()
	svc := New(repo, nil)
	actor := uuid.New()

	page, err := svc.CreatePage(context.Background(), actor, repository.PageParams{Slug: "privacy", Title: "Privacy", Active: true})
	if err != nil {
		t.Fatalf("CreatePage: %v", err)
	}

	if _, err := svc.GetPublicPage(context.Background(), "privacy"); err != nil {
		t.Fatalf("GetPublicPage: %v", err)
	}

	params := repository.PageParams{Slug: "privacy", Title: "Privacy", Active: false}
	if _, err := svc.UpdatePage(context.Background(), actor, page.ID, params); err != nil {
		t.Fatalf("UpdatePage: %v", err)
	}

	_, err = svc.GetPublicPage(context.Background(), "privacy")
	if !apperr.Is(err, apperr.KindNotFound) {
		t.Fatalf("expected not found for inactive page, got %v", err)
	}
}
