// Package repository persists editorial content pages.
package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

var ErrNotFound = errors.New("page not found")

type Page struct {
	ID        uuid.UUID
	Slug      string
	Title     string
	Content   string
	Active    bool
	CreatedAt time.Time
	UpdatedAt time.Time
}

type PageParams struct {
	Slug    string
	Title   string
	Content string
	Active  bool
}

const pageColumns = `id, slug, title, content, active, created_at, updated_at`

type Repository struct {
	pool *pgxpool.Pool
}

func New(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

func (r *Repository) ListPages(ctx context.Context) ([]Page, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT `+pageColumns+` FROM content_pages ORDER BY slug`)
	if err != nil {
		return nil, fmt.Errorf("list pages: %w", err)
	}
	defer rows.Close()

	var out []Page
	for rows.Next() {
		p, err := scanPage(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

func (r *Repository) GetByID(ctx context.Context, id uuid.UUID) (Page, error) {
	return r.get(ctx, `SELECT `+pageColumns+` FROM content_pages WHERE id = $1`, id)
}

// GetActiveBySlug returns a published page for the public site.
func (r *Repository) GetActiveBySlug(ctx context.Context, slug string) (Page, error) {
	return r.get(ctx, `SELECT `+pageColumns+` FROM content_pages WHERE slug = $1 AND active`, slug)
}

func (r *Repository) SlugExists(ctx context.Context, slug string) (bool, error) {
	var exists bool
	err := r.pool.QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM content_pages WHERE slug = $1)`, slug,
	).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("check page slug: %w", err)
	}
	return exists, nil
}

func (r *Repository) CreatePage(ctx context.Context, p PageParams) (uuid.UUID, error) {
	var id uuid.UUID
	err := r.pool.QueryRow(ctx,
		`INSERT INTO content_pages (slug, title, content, active)
		 VALUES ($1, $2, $3, $4)
		 RETURNING id`,
		p.Slug, p.Title, p.Content, p.Active,
	).Scan(&id)
	if err != nil {
		return uuid.Nil, fmt.Errorf("create page: %w", err)
	}
	return id, nil
}

func (r *Repository) UpdatePage(ctx context.Context, id uuid.UUID, p PageParams) error {
	tag, err := r.pool.Exec(ctx,
		`UPDATE content_pages
		 SET slug = $2, title = $3, content = $4, active = $5, updated_at = now()
		 WHERE id = $1`,
		id, p.Slug, p.Title, p.Content, p.Active)
	if err != nil {
		return fmt.Errorf("update page: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *Repository) DeletePage(ctx context.Context, id uuid.UUID) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM content_pages WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete page: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *Repository) get(ctx context.Context, query string, arg any) (Page, error) {
	p, err := scanPage(r.pool.QueryRow(ctx, query, arg))
	if errors.Is(err, pgx.ErrNoRows) {
		return Page{}, ErrNotFound
	}
	if err != nil {
		return Page{}, fmt.Errorf("get page: %w", err)
	}
	return p, nil
}

func scanPage(row pgx.Row) (Page, error) {
	var p Page
	err := row.Scan(&p.ID, &p.Slug, &p.Title, &p.Content, &p.Active, &p.CreatedAt, &p.UpdatedAt)
	return p, err
}
