package transport

import (
	"time"

	"github.com/google/uuid"

	"rentcar-backend/internal/content/repository"
)

type PageResponse struct {
	ID        uuid.UUID `json:"id"`
	Slug      string    `json:"slug"`
	Title     string    `json:"title"`
	Content   string    `json:"content"`
	Active    bool      `json:"active"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func ToPageResponse(p repository.Page) PageResponse {
	return PageResponse{
		ID:        p.ID,
		Slug:      p.Slug,
		Title:     p.Title,
		Content:   p.Content,
		Active:    p.Active,
		CreatedAt: p.CreatedAt,
		UpdatedAt: p.UpdatedAt,
	}
}

func ToPageResponses(pages []repository.Page) []PageResponse {
	out := make([]PageResponse, len(pages))
	for i, p := range pages {
		out[i] = ToPageResponse(p)
	}
	return out
}

// PublicPageResponse omits admin-only fields.
type PublicPageResponse struct {
	Slug    string `json:"slug"`
	Title   string `json:"title"`
	Content string `json:"content"`
}

func ToPublicPageResponse(p repository.Page) PublicPageResponse {
	return PublicPageResponse{Slug: p.Slug, Title: p.Title, Content: p.Content}
}

type PageRequest struct {
	Slug    string `json:"slug" validate:"required,min=2,max=80"`
	Title   string `json:"title" validate:"required,min=2,max=200"`
	Content string `json:"content" validate:"max=100000"`
	Active  *bool  `json:"active"`
}

func (r PageRequest) ToParams() repository.PageParams {
	active := true
	if r.Active != nil {
		active = *r.Active
	}
	return repository.PageParams{
		Slug:    r.Slug,
		Title:   r.Title,
		Content: r.Content,
		Active:  active,
	}
}
