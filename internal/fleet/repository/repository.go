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

var ErrNotFound = errors.New("car not found")

// Car statuses. Only ACTIVE cars are visible on the public site.
const (
	StatusActive      = "ACTIVE"
	StatusHidden      = "HIDDEN"
	StatusMaintenance = "MAINTENANCE"
)

// ValidStatus reports whether s is a known car status.
func ValidStatus(s string) bool {
	switch s {
	case StatusActive, StatusHidden, StatusMaintenance:
		return true
	}
	return false
}

type Car struct {
	ID                 uuid.UUID
	Slug               string
	Brand              string
	Model              string
	Trim               *string
	Year               int
	Category           string
	Transmission       string
	FuelType           string
	Drivetrain         string
	Seats              int
	Doors              int
	Luggage            int
	PowerKW            *int
	PowerHP            *int
	PlateNumber        *string
	InternalID         *string
	LocationID         *uuid.UUID
	MinAge             int
	MinLicenseYears    int
	BaseFranchiseCents *int64
	KmPerDay           int
	BaseInsurance      bool
	Status             string
	CoverImage         *string
	CreatedAt          time.Time
	UpdatedAt          time.Time
}

type CarImage struct {
	ID        uuid.UUID
	CarID     uuid.UUID
	URL       string
	AltText   *string
	SortOrder int
	CreatedAt time.Time
}

type AvailabilityBlock struct {
	ID        uuid.UUID
	CarID     uuid.UUID
	StartDate time.Time
	EndDate   time.Time
	Reason    string
	Note      *string
	CreatedAt time.Time
}

// ListFilter narrows the public car listing. Zero values mean "no filter".
type ListFilter struct {
	Category     string
	Transmission string
	FuelType     string
	MinSeats     int
	Search       string
}

type Repository struct {
	pool *pgxpool.Pool
}

func New(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

const carColumns = `
	id, slug, brand, model, trim, year, category, transmission, fuel_type,
	drivetrain, seats, doors, luggage, power_kw, power_hp, plate_number,
	internal_id, location_id, min_age, min_license_years, base_franchise_cents,
	km_per_day, base_insurance, status, cover_image, created_at, updated_at
`

// ListActiveCars returns ACTIVE cars matching the filter, newest first.
func (r *Repository) ListActiveCars(ctx context.Context, filter ListFilter) ([]Car, error) {
	query := `SELECT ` + carColumns + ` FROM cars WHERE status = 'ACTIVE'`
	args := []any{}
	idx := 1

	addFilter := func(clause string, value any) {
		query += fmt.Sprintf(" AND "+clause, idx)
		args = append(args, value)
		idx++
	}

	if filter.Category != "" {
		addFilter("category = $%d", filter.Category)
	}
	if filter.Transmission != "" {
		addFilter("transmission = $%d", filter.Transmission)
	}
	if filter.FuelType != "" {
		addFilter("fuel_type = $%d", filter.FuelType)
	}
	if filter.MinSeats > 0 {
		addFilter("seats >= $%d", filter.MinSeats)
	}
	if filter.Search != "" {
		query += fmt.Sprintf(" AND (brand ILIKE '%%' || $%d || '%%' OR model ILIKE '%%' || $%d || '%%')", idx, idx)
		args = append(args, filter.Search)
		idx++
	}

	query += " ORDER BY created_at DESC"

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanCars(rows)
}

// ListAllCars returns every car regardless of status, for the back office.
func (r *Repository) ListAllCars(ctx context.Context) ([]Car, error) {
	rows, err := r.pool.Query(ctx, `SELECT `+carColumns+` FROM cars ORDER BY created_at DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanCars(rows)
}

// GetCarByID returns one car or ErrNotFound.
func (r *Repository) GetCarByID(ctx context.Context, id uuid.UUID) (Car, error) {
	row := r.pool.QueryRow(ctx, `SELECT `+carColumns+` FROM cars WHERE id = $1`, id)
	return scanCar(row)
}

// GetActiveCarBySlug returns one publicly visible car or ErrNotFound.
// Hidden and maintenance cars behave as absent here.
func (r *Repository) GetActiveCarBySlug(ctx context.Context, slug string) (Car, error) {
	row := r.pool.QueryRow(ctx, `SELECT `+carColumns+` FROM cars WHERE slug = $1 AND status = 'ACTIVE'`, slug)
	return scanCar(row)
}

// SlugExists reports whether any car already uses the slug.
func (r *Repository) SlugExists(ctx context.Context, slug string) (bool, error) {
	var exists bool
	err := r.pool.QueryRow(ctx, `SELECT EXISTS(SELECT 1 FROM cars WHERE slug = $1)`, slug).Scan(&exists)
	return exists, err
}

type CarParams struct {
	Slug               string
	Brand              string
	Model              string
	Trim               *string
	Year               int
	Category           string
	Transmission       string
	FuelType           string
	Drivetrain         string
	Seats              int
	Doors              int
	Luggage            int
	PowerKW            *int
	PowerHP            *int
	PlateNumber        *string
	InternalID         *string
	LocationID         *uuid.UUID
	MinAge             int
	MinLicenseYears    int
	BaseFranchiseCents *int64
	KmPerDay           int
	BaseInsurance      bool
	Status             string
	CoverImage         *string
}

func (r *Repository) CreateCar(ctx context.Context, p CarParams) (uuid.UUID, error) {
	var id uuid.UUID
	err := r.pool.QueryRow(ctx, `
		INSERT INTO cars (
			slug, brand, model, trim, year, category, transmission, fuel_type,
			drivetrain, seats, doors, luggage, power_kw, power_hp, plate_number,
			internal_id, location_id, min_age, min_license_years,
			base_franchise_cents, km_per_day, base_insurance, status, cover_image
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14,
		        $15, $16, $17, $18, $19, $20, $21, $22, $23, $24)
		RETURNING id
	`,
		p.Slug, p.Brand, p.Model, p.Trim, p.Year, p.Category, p.Transmission, p.FuelType,
		p.Drivetrain, p.Seats, p.Doors, p.Luggage, p.PowerKW, p.PowerHP, p.PlateNumber,
		p.InternalID, p.LocationID, p.MinAge, p.MinLicenseYears,
		p.BaseFranchiseCents, p.KmPerDay, p.BaseInsurance, p.Status, p.CoverImage,
	).Scan(&id)
	if err != nil {
		return uuid.Nil, err
	}
	return id, nil
}

func (r *Repository) UpdateCar(ctx context.Context, id uuid.UUID, p CarParams) error {
	tag, err := r.pool.Exec(ctx, `
		UPDATE cars SET
			slug = $2, brand = $3, model = $4, trim = $5, year = $6, category = $7,
			transmission = $8, fuel_type = $9, drivetrain = $10, seats = $11,
			doors = $12, luggage = $13, power_kw = $14, power_hp = $15,
			plate_number = $16, internal_id = $17, location_id = $18, min_age = $19,
			min_license_years = $20, base_franchise_cents = $21, km_per_day = $22,
			base_insurance = $23, status = $24, cover_image = $25, updated_at = now()
		WHERE id = $1
	`,
		id, p.Slug, p.Brand, p.Model, p.Trim, p.Year, p.Category,
		p.Transmission, p.FuelType, p.Drivetrain, p.Seats,
		p.Doors, p.Luggage, p.PowerKW, p.PowerHP,
		p.PlateNumber, p.InternalID, p.LocationID, p.MinAge,
		p.MinLicenseYears, p.BaseFranchiseCents, p.KmPerDay,
		p.BaseInsurance, p.Status, p.CoverImage,
	)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *Repository) UpdateCarStatus(ctx context.Context, id uuid.UUID, status string) error {
	tag, err := r.pool.Exec(ctx, `UPDATE cars SET status = $2, updated_at = now() WHERE id = $1`, id, status)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *Repository) DeleteCar(ctx context.Context, id uuid.UUID) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM cars WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// ListImages returns a car's gallery ordered by sort order.
func (r *Repository) ListImages(ctx context.Context, carID uuid.UUID) ([]CarImage, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT id, car_id, url, alt_text, sort_order, created_at
		FROM car_images
		WHERE car_id = $1
		ORDER BY sort_order, created_at
	`, carID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	images := make([]CarImage, 0)
	for rows.Next() {
		var img CarImage
		if err := rows.Scan(&img.ID, &img.CarID, &img.URL, &img.AltText, &img.SortOrder, &img.CreatedAt); err != nil {
			return nil, err
		}
		images = append(images, img)
	}
	return images, rows.Err()
}

func (r *Repository) AddImage(ctx context.Context, carID uuid.UUID, url string, altText *string, sortOrder int) (uuid.UUID, error) {
	var id uuid.UUID
	err := r.pool.QueryRow(ctx, `
		INSERT INTO car_images (car_id, url, alt_text, sort_order)
		VALUES ($1, $2, $3, $4)
		RETURNING id
	`, carID, url, altText, sortOrder).Scan(&id)
	if err != nil {
		return uuid.Nil, err
	}
	return id, nil
}

func (r *Repository) DeleteImage(ctx context.Context, carID, imageID uuid.UUID) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM car_images WHERE id = $1 AND car_id = $2`, imageID, carID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// ListBlocks returns a car's availability blocks ordered by start date.
func (r *Repository) ListBlocks(ctx context.Context, carID uuid.UUID) ([]AvailabilityBlock, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT id, car_id, start_date, end_date, reason, note, created_at
		FROM availability_blocks
		WHERE car_id = $1
		ORDER BY start_date
	`, carID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	blocks := make([]AvailabilityBlock, 0)
	for rows.Next() {
		var b AvailabilityBlock
		if err := rows.Scan(&b.ID, &b.CarID, &b.StartDate, &b.EndDate, &b.Reason, &b.Note, &b.CreatedAt); err != nil {
			return nil, err
		}
		blocks = append(blocks, b)
	}
	return blocks, rows.Err()
}

func (r *Repository) CreateBlock(ctx context.Context, carID uuid.UUID, start, end time.Time, reason string, note *string) (uuid.UUID, error) {
	var id uuid.UUID
	err := r.pool.QueryRow(ctx, `
		INSERT INTO availability_blocks (car_id, start_date, end_date, reason, note)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id
	`, carID, start, end, reason, note).Scan(&id)
	if err != nil {
		return uuid.Nil, err
	}
	return id, nil
}

func (r *Repository) DeleteBlock(ctx context.Context, carID, blockID uuid.UUID) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM availability_blocks WHERE id = $1 AND car_id = $2`, blockID, carID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// HasOverlappingBlock reports whether any block intersects [start, end).
func (r *Repository) HasOverlappingBlock(ctx context.Context, carID uuid.UUID, start, end time.Time) (bool, error) {
	var overlapping bool
	err := r.pool.QueryRow(ctx, `
		SELECT EXISTS(
			SELECT 1 FROM availability_blocks
			WHERE car_id = $1 AND start_date < $3 AND end_date > $2
		)
	`, carID, start, end).Scan(&overlapping)
	return overlapping, err
}

func scanCars(rows pgx.Rows) ([]Car, error) {
	cars := make([]Car, 0)
	for rows.Next() {
		car, err := scanCar(rows)
		if err != nil {
			return nil, err
		}
		cars = append(cars, car)
	}
	return cars, rows.Err()
}

func scanCar(row pgx.Row) (Car, error) {
	var c Car
	err := row.Scan(
		&c.ID, &c.Slug, &c.Brand, &c.Model, &c.Trim, &c.Year, &c.Category,
		&c.Transmission, &c.FuelType, &c.Drivetrain, &c.Seats, &c.Doors,
		&c.Luggage, &c.PowerKW, &c.PowerHP, &c.PlateNumber, &c.InternalID,
		&c.LocationID, &c.MinAge, &c.MinLicenseYears, &c.BaseFranchiseCents,
		&c.KmPerDay, &c.BaseInsurance, &c.Status, &c.CoverImage,
		&c.CreatedAt, &c.UpdatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return Car{}, ErrNotFound
	}
	return c, err
}
