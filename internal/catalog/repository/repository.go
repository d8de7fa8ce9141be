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

var ErrNotFound = errors.New("catalog entry not found")

type Extra struct {
	ID          uuid.UUID
	Name        string
	Description *string
	PriceType   string
	PriceCents  int64
	MaxQuantity int
	Active      bool
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

type ExtraParams struct {
	Name        string
	Description *string
	PriceType   string
	PriceCents  int64
	MaxQuantity int
	Active      bool
}

type InsurancePlan struct {
	ID               uuid.UUID
	Name             string
	Description      *string
	PricePerDayCents int64
	FranchiseCents   int64
	Active           bool
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

type InsurancePlanParams struct {
	Name             string
	Description      *string
	PricePerDayCents int64
	FranchiseCents   int64
	Active           bool
}

type Location struct {
	ID           uuid.UUID
	Name         string
	Address      string
	City         string
	Canton       string
	OpeningHours json.RawMessage
	Active       bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

type LocationParams struct {
	Name         string
	Address      string
	City         string
	Canton       string
	OpeningHours json.RawMessage
	Active       bool
}

type Repository struct {
	pool *pgxpool.Pool
}

func New(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

// ListExtras returns extras, optionally only active ones, in name order.
func (r *Repository) ListExtras(ctx context.Context, onlyActive bool) ([]Extra, error) {
	query := `
		SELECT id, name, description, price_type, price_cents, max_quantity,
		       active, created_at, updated_at
		FROM extras
	`
	if onlyActive {
		query += ` WHERE active`
	}
	query += ` ORDER BY name`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	extras := make([]Extra, 0)
	for rows.Next() {
		var e Extra
		if err := rows.Scan(&e.ID, &e.Name, &e.Description, &e.PriceType, &e.PriceCents,
			&e.MaxQuantity, &e.Active, &e.CreatedAt, &e.UpdatedAt); err != nil {
			return nil, err
		}
		extras = append(extras, e)
	}
	return extras, rows.Err()
}

func (r *Repository) GetExtraByID(ctx context.Context, id uuid.UUID) (Extra, error) {
	var e Extra
	err := r.pool.QueryRow(ctx, `
		SELECT id, name, description, price_type, price_cents, max_quantity,
		       active, created_at, updated_at
		FROM extras WHERE id = $1
	`, id).Scan(&e.ID, &e.Name, &e.Description, &e.PriceType, &e.PriceCents,
		&e.MaxQuantity, &e.Active, &e.CreatedAt, &e.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return Extra{}, ErrNotFound
	}
	return e, err
}

func (r *Repository) CreateExtra(ctx context.Context, p ExtraParams) (uuid.UUID, error) {
	var id uuid.UUID
	err := r.pool.QueryRow(ctx, `
		INSERT INTO extras (name, description, price_type, price_cents, max_quantity, active)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id
	`, p.Name, p.Description, p.PriceType, p.PriceCents, p.MaxQuantity, p.Active).Scan(&id)
	if err != nil {
		return uuid.Nil, err
	}
	return id, nil
}

func (r *Repository) UpdateExtra(ctx context.Context, id uuid.UUID, p ExtraParams) error {
	tag, err := r.pool.Exec(ctx, `
		UPDATE extras SET
			name = $2, description = $3, price_type = $4, price_cents = $5,
			max_quantity = $6, active = $7, updated_at = now()
		WHERE id = $1
	`, id, p.Name, p.Description, p.PriceType, p.PriceCents, p.MaxQuantity, p.Active)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *Repository) DeleteExtra(ctx context.Context, id uuid.UUID) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM extras WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// ListInsurancePlans returns insurance plans, cheapest first.
func (r *Repository) ListInsurancePlans(ctx context.Context, onlyActive bool) ([]InsurancePlan, error) {
	query := `
		SELECT id, name, description, price_per_day_cents, franchise_cents,
		       active, created_at, updated_at
		FROM insurance_plans
	`
	if onlyActive {
		query += ` WHERE active`
	}
	query += ` ORDER BY price_per_day_cents`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	plans := make([]InsurancePlan, 0)
	for rows.Next() {
		var p InsurancePlan
		if err := rows.Scan(&p.ID, &p.Name, &p.Description, &p.PricePerDayCents,
			&p.FranchiseCents, &p.Active, &p.CreatedAt, &p.UpdatedAt); err != nil {
			return nil, err
		}
		plans = append(plans, p)
	}
	return plans, rows.Err()
}

func (r *Repository) GetInsurancePlanByID(ctx context.Context, id uuid.UUID) (InsurancePlan, error) {
	var p InsurancePlan
	err := r.pool.QueryRow(ctx, `
		SELECT id, name, description, price_per_day_cents, franchise_cents,
		       active, created_at, updated_at
		FROM insurance_plans WHERE id = $1
	`, id).Scan(&p.ID, &p.Name, &p.Description, &p.PricePerDayCents,
		&p.FranchiseCents, &p.Active, &p.CreatedAt, &p.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return InsurancePlan{}, ErrNotFound
	}
	return p, err
}

func (r *Repository) CreateInsurancePlan(ctx context.Context, p InsurancePlanParams) (uuid.UUID, error) {
	var id uuid.UUID
	err := r.pool.QueryRow(ctx, `
		INSERT INTO insurance_plans (name, description, price_per_day_cents, franchise_cents, active)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id
	`, p.Name, p.Description, p.PricePerDayCents, p.FranchiseCents, p.Active).Scan(&id)
	if err != nil {
		return uuid.Nil, err
	}
	return id, nil
}

func (r *Repository) UpdateInsurancePlan(ctx context.Context, id uuid.UUID, p InsurancePlanParams) error {
	tag, err := r.pool.Exec(ctx, `
		UPDATE insurance_plans SET
			name = $2, description = $3, price_per_day_cents = $4,
			franchise_cents = $5, active = $6, updated_at = now()
		WHERE id = $1
	`, id, p.Name, p.Description, p.PricePerDayCents, p.FranchiseCents, p.Active)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *Repository) DeleteInsurancePlan(ctx context.Context, id uuid.UUID) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM insurance_plans WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// ListLocations returns pickup locations in name order.
func (r *Repository) ListLocations(ctx context.Context, onlyActive bool) ([]Location, error) {
	query := `
		SELECT id, name, address, city, canton, opening_hours, active,
		       created_at, updated_at
		FROM locations
	`
	if onlyActive {
		query += ` WHERE active`
	}
	query += ` ORDER BY name`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	locations := make([]Location, 0)
	for rows.Next() {
		var l Location
		if err := rows.Scan(&l.ID, &l.Name, &l.Address, &l.City, &l.Canton,
			&l.OpeningHours, &l.Active, &l.CreatedAt, &l.UpdatedAt); err != nil {
			return nil, err
		}
		locations = append(locations, l)
	}
	return locations, rows.Err()
}

func (r *Repository) GetLocationByID(ctx context.Context, id uuid.UUID) (Location, error) {
	var l Location
	err := r.pool.QueryRow(ctx, `
		SELECT id, name, address, city, canton, opening_hours, active,
		       created_at, updated_at
		FROM locations WHERE id = $1
	`, id).Scan(&l.ID, &l.Name, &l.Address, &l.City, &l.Canton,
		&l.OpeningHours, &l.Active, &l.CreatedAt, &l.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return Location{}, ErrNotFound
	}
	return l, err
}

func (r *Repository) CreateLocation(ctx context.Context, p LocationParams) (uuid.UUID, error) {
	var id uuid.UUID
	err := r.pool.QueryRow(ctx, `
		INSERT INTO locations (name, address, city, canton, opening_hours, active)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id
	`, p.Name, p.Address, p.City, p.Canton, p.OpeningHours, p.Active).Scan(&id)
	if err != nil {
		return uuid.Nil, err
	}
	return id, nil
}

func (r *Repository) UpdateLocation(ctx context.Context, id uuid.UUID, p LocationParams) error {
	tag, err := r.pool.Exec(ctx, `
		UPDATE locations SET
			name = $2, address = $3, city = $4, canton = $5,
			opening_hours = $6, active = $7, updated_at = now()
		WHERE id = $1
	`, id, p.Name, p.Address, p.City, p.Canton, p.OpeningHours, p.Active)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *Repository) DeleteLocation(ctx context.Context, id uuid.UUID) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM locations WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
