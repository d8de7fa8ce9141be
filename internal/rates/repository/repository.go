package repository

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

var ErrNotFound = errors.New("rate plan not found")

type RatePlan struct {
	ID                uuid.UUID
	CarID             uuid.UUID
	DailyPriceCents   int64
	WeeklyPriceCents  *int64
	MonthlyPriceCents *int64
	Discount3DaysBps  *int
	Discount7DaysBps  *int
	Discount30DaysBps *int
	KmIncluded        int
	ExtraKmPriceCents int64
	UnlimitedKm       bool
	DepositCents      int64
	DepositNotes      *string
	Active            bool
	CreatedAt         time.Time
	UpdatedAt         time.Time
}

type RatePlanParams struct {
	CarID             uuid.UUID
	DailyPriceCents   int64
	WeeklyPriceCents  *int64
	MonthlyPriceCents *int64
	Discount3DaysBps  *int
	Discount7DaysBps  *int
	Discount30DaysBps *int
	KmIncluded        int
	ExtraKmPriceCents int64
	UnlimitedKm       bool
	DepositCents      int64
	DepositNotes      *string
	Active            bool
}

type Repository struct {
	pool *pgxpool.Pool
}

func New(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

const planColumns = `
	id, car_id, daily_price_cents, weekly_price_cents, monthly_price_cents,
	discount_3d_bps, discount_7d_bps, discount_30d_bps, km_included,
	extra_km_price_cents, unlimited_km, deposit_cents, deposit_notes, active,
	created_at, updated_at
`

// ListByCar returns all rate plans of one car, cheapest first.
func (r *Repository) ListByCar(ctx context.Context, carID uuid.UUID) ([]RatePlan, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT `+planColumns+`
		FROM rate_plans
		WHERE car_id = $1
		ORDER BY daily_price_cents, created_at
	`, carID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanPlans(rows)
}

// GetByID returns one rate plan or ErrNotFound.
func (r *Repository) GetByID(ctx context.Context, id uuid.UUID) (RatePlan, error) {
	row := r.pool.QueryRow(ctx, `SELECT `+planColumns+` FROM rate_plans WHERE id = $1`, id)
	return scanPlan(row)
}

// ActiveRateForCar returns the cheapest active rate plan for a car, or
// ErrNotFound when none exists. This is the plan the public site quotes with.
func (r *Repository) ActiveRateForCar(ctx context.Context, carID uuid.UUID) (RatePlan, error) {
	row := r.pool.QueryRow(ctx, `
		SELECT `+planColumns+`
		FROM rate_plans
		WHERE car_id = $1 AND active
		ORDER BY daily_price_cents, created_at
		LIMIT 1
	`, carID)
	return scanPlan(row)
}

// ActiveRateBySlug resolves the quoted rate plan through the car's slug.
func (r *Repository) ActiveRateBySlug(ctx context.Context, slug string) (RatePlan, error) {
	row := r.pool.QueryRow(ctx, `
		SELECT rp.id, rp.car_id, rp.daily_price_cents, rp.weekly_price_cents,
		       rp.monthly_price_cents, rp.discount_3d_bps, rp.discount_7d_bps,
		       rp.discount_30d_bps, rp.km_included, rp.extra_km_price_cents,
		       rp.unlimited_km, rp.deposit_cents, rp.deposit_notes, rp.active,
		       rp.created_at, rp.updated_at
		FROM rate_plans rp
		JOIN cars c ON c.id = rp.car_id
		WHERE c.slug = $1 AND c.status = 'ACTIVE' AND rp.active
		ORDER BY rp.daily_price_cents, rp.created_at
		LIMIT 1
	`, slug)
	return scanPlan(row)
}

func (r *Repository) Create(ctx context.Context, p RatePlanParams) (uuid.UUID, error) {
	var id uuid.UUID
	err := r.pool.QueryRow(ctx, `
		INSERT INTO rate_plans (
			car_id, daily_price_cents, weekly_price_cents, monthly_price_cents,
			discount_3d_bps, discount_7d_bps, discount_30d_bps, km_included,
			extra_km_price_cents, unlimited_km, deposit_cents, deposit_notes, active
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
		RETURNING id
	`,
		p.CarID, p.DailyPriceCents, p.WeeklyPriceCents, p.MonthlyPriceCents,
		p.Discount3DaysBps, p.Discount7DaysBps, p.Discount30DaysBps, p.KmIncluded,
		p.ExtraKmPriceCents, p.UnlimitedKm, p.DepositCents, p.DepositNotes, p.Active,
	).Scan(&id)
	if err != nil {
		return uuid.Nil, err
	}
	return id, nil
}

func (r *Repository) Update(ctx context.Context, id uuid.UUID, p RatePlanParams) error {
	tag, err := r.pool.Exec(ctx, `
		UPDATE rate_plans SET
			daily_price_cents = $2, weekly_price_cents = $3, monthly_price_cents = $4,
			discount_3d_bps = $5, discount_7d_bps = $6, discount_30d_bps = $7,
			km_included = $8, extra_km_price_cents = $9, unlimited_km = $10,
			deposit_cents = $11, deposit_notes = $12, active = $13, updated_at = now()
		WHERE id = $1
	`,
		id, p.DailyPriceCents, p.WeeklyPriceCents, p.MonthlyPriceCents,
		p.Discount3DaysBps, p.Discount7DaysBps, p.Discount30DaysBps,
		p.KmIncluded, p.ExtraKmPriceCents, p.UnlimitedKm,
		p.DepositCents, p.DepositNotes, p.Active,
	)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *Repository) Delete(ctx context.Context, id uuid.UUID) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM rate_plans WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func scanPlans(rows pgx.Rows) ([]RatePlan, error) {
	plans := make([]RatePlan, 0)
	for rows.Next() {
		plan, err := scanPlan(rows)
		if err != nil {
			return nil, err
		}
		plans = append(plans, plan)
	}
	return plans, rows.Err()
}

func scanPlan(row pgx.Row) (RatePlan, error) {
	var p RatePlan
	err := row.Scan(
		&p.ID, &p.CarID, &p.DailyPriceCents, &p.WeeklyPriceCents, &p.MonthlyPriceCents,
		&p.Discount3DaysBps, &p.Discount7DaysBps, &p.Discount30DaysBps, &p.KmIncluded,
		&p.ExtraKmPriceCents, &p.UnlimitedKm, &p.DepositCents, &p.DepositNotes, &p.Active,
		&p.CreatedAt, &p.UpdatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return RatePlan{}, ErrNotFound
	}
	return p, err
}
