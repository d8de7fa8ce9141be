package repository

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

var ErrNotFound = errors.New("lead not found")

// Lead statuses. Status is the only field staff may change after creation;
// the quote snapshot and total estimate are an immutable audit record of
// what the customer saw.
const (
	StatusNew       = "NEW"
	StatusContacted = "CONTACTED"
	StatusConfirmed = "CONFIRMED"
	StatusLost      = "LOST"
)

// ValidStatus reports whether s is a known lead status.
func ValidStatus(s string) bool {
	switch s {
	case StatusNew, StatusContacted, StatusConfirmed, StatusLost:
		return true
	}
	return false
}

type Lead struct {
	ID                 uuid.UUID
	CarID              *uuid.UUID
	CustomerName       string
	CustomerPhone      string
	CustomerEmail      *string
	PickupDate         time.Time
	ReturnDate         time.Time
	PickupLocation     string
	ReturnLocation     string
	QuoteSnapshot      json.RawMessage
	TotalEstimateCents int64
	Extras             json.RawMessage
	InsurancePlanID    *uuid.UUID
	Notes              *string
	Status             string
	Source             string
	InternalNotes      *string
	CreatedAt          time.Time
	UpdatedAt          time.Time
}

type CreateLeadParams struct {
	CarID              uuid.UUID
	CustomerName       string
	CustomerPhone      string
	CustomerEmail      *string
	PickupDate         time.Time
	ReturnDate         time.Time
	PickupLocation     string
	ReturnLocation     string
	QuoteSnapshot      json.RawMessage
	TotalEstimateCents int64
	Extras             json.RawMessage
	InsurancePlanID    *uuid.UUID
	Notes              *string
	Source             string
}

type Repository struct {
	pool *pgxpool.Pool
}

func New(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

// CreateLead inserts a new lead with status NEW. The snapshot is stored
// verbatim and never rewritten afterwards.
func (r *Repository) CreateLead(ctx context.Context, p CreateLeadParams) (uuid.UUID, error) {
	source := p.Source
	if source == "" {
		source = "web"
	}

	var id uuid.UUID
	err := r.pool.QueryRow(ctx, `
		INSERT INTO leads (
			car_id, customer_name, customer_phone, customer_email,
			pickup_date, return_date, pickup_location, return_location,
			quote_snapshot, total_estimate_cents, extras, insurance_plan_id,
			notes, status, source
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, 'NEW', $14)
		RETURNING id
	`,
		p.CarID, p.CustomerName, p.CustomerPhone, p.CustomerEmail,
		p.PickupDate, p.ReturnDate, p.PickupLocation, p.ReturnLocation,
		p.QuoteSnapshot, p.TotalEstimateCents, p.Extras, p.InsurancePlanID,
		p.Notes, source,
	).Scan(&id)
	if err != nil {
		return uuid.Nil, err
	}
	return id, nil
}

// ListLeads returns leads newest-first, optionally filtered by status.
func (r *Repository) ListLeads(ctx context.Context, status string, limit int) ([]Lead, error) {
	if limit < 1 || limit > 500 {
		limit = 200
	}

	query := `
		SELECT id, car_id, customer_name, customer_phone, customer_email,
		       pickup_date, return_date, pickup_location, return_location,
		       quote_snapshot, total_estimate_cents, extras, insurance_plan_id,
		       notes, status, source, internal_notes, created_at, updated_at
		FROM leads
	`
	args := []any{}
	if status != "" {
		query += ` WHERE status = $1 ORDER BY created_at DESC LIMIT $2`
		args = append(args, status, limit)
	} else {
		query += ` ORDER BY created_at DESC LIMIT $1`
		args = append(args, limit)
	}

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := make([]Lead, 0)
	for rows.Next() {
		lead, err := scanLead(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, lead)
	}

	return items, rows.Err()
}

// GetLeadByID returns one lead or ErrNotFound.
func (r *Repository) GetLeadByID(ctx context.Context, id uuid.UUID) (Lead, error) {
	row := r.pool.QueryRow(ctx, `
		SELECT id, car_id, customer_name, customer_phone, customer_email,
		       pickup_date, return_date, pickup_location, return_location,
		       quote_snapshot, total_estimate_cents, extras, insurance_plan_id,
		       notes, status, source, internal_notes, created_at, updated_at
		FROM leads
		WHERE id = $1
	`, id)

	lead, err := scanLead(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return Lead{}, ErrNotFound
	}
	return lead, err
}

// UpdateLeadStatus changes the workflow status and internal notes. Nothing
// else is updatable by design. Returns the previous status.
func (r *Repository) UpdateLeadStatus(ctx context.Context, id uuid.UUID, status string, internalNotes *string) (string, error) {
	var oldStatus string
	err := r.pool.QueryRow(ctx, `
		UPDATE leads
		SET status = $2,
		    internal_notes = COALESCE($3, internal_notes),
		    updated_at = now()
		FROM (SELECT status AS old_status FROM leads WHERE id = $1) prev
		WHERE leads.id = $1
		RETURNING prev.old_status
	`, id, status, internalNotes).Scan(&oldStatus)
	if errors.Is(err, pgx.ErrNoRows) {
		return "", ErrNotFound
	}
	return oldStatus, err
}

// CountByStatus returns lead counts per status for the admin dashboard.
func (r *Repository) CountByStatus(ctx context.Context) (map[string]int, error) {
	rows, err := r.pool.Query(ctx, `SELECT status, COUNT(*) FROM leads GROUP BY status`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	counts := make(map[string]int)
	for rows.Next() {
		var status string
		var count int
		if err := rows.Scan(&status, &count); err != nil {
			return nil, err
		}
		counts[status] = count
	}
	return counts, rows.Err()
}

func scanLead(row pgx.Row) (Lead, error) {
	var lead Lead
	err := row.Scan(
		&lead.ID, &lead.CarID, &lead.CustomerName, &lead.CustomerPhone, &lead.CustomerEmail,
		&lead.PickupDate, &lead.ReturnDate, &lead.PickupLocation, &lead.ReturnLocation,
		&lead.QuoteSnapshot, &lead.TotalEstimateCents, &lead.Extras, &lead.InsurancePlanID,
		&lead.Notes, &lead.Status, &lead.Source, &lead.InternalNotes, &lead.CreatedAt, &lead.UpdatedAt,
	)
	return lead, err
}
