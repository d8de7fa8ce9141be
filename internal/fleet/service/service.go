// Package service implements fleet management: the public car catalog and
// the back-office CRUD for cars, photos, and availability blocks.
package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	bookingsvc "rentcar-backend/internal/booking/service"
	"rentcar-backend/internal/fleet/repository"
	"rentcar-backend/platform/apperr"
	"rentcar-backend/platform/logger"
)

// FleetRepository is the persistence surface the service depends on.
type FleetRepository interface {
	ListActiveCars(ctx context.Context, filter repository.ListFilter) ([]repository.Car, error)
	ListAllCars(ctx context.Context) ([]repository.Car, error)
	GetCarByID(ctx context.Context, id uuid.UUID) (repository.Car, error)
	GetActiveCarBySlug(ctx context.Context, slug string) (repository.Car, error)
	SlugExists(ctx context.Context, slug string) (bool, error)
	CreateCar(ctx context.Context, p repository.CarParams) (uuid.UUID, error)
	UpdateCar(ctx context.Context, id uuid.UUID, p repository.CarParams) error
	UpdateCarStatus(ctx context.Context, id uuid.UUID, status string) error
	DeleteCar(ctx context.Context, id uuid.UUID) error
	ListImages(ctx context.Context, carID uuid.UUID) ([]repository.CarImage, error)
	AddImage(ctx context.Context, carID uuid.UUID, url string, altText *string, sortOrder int) (uuid.UUID, error)
	DeleteImage(ctx context.Context, carID, imageID uuid.UUID) error
	ListBlocks(ctx context.Context, carID uuid.UUID) ([]repository.AvailabilityBlock, error)
	CreateBlock(ctx context.Context, carID uuid.UUID, start, end time.Time, reason string, note *string) (uuid.UUID, error)
	DeleteBlock(ctx context.Context, carID, blockID uuid.UUID) error
	HasOverlappingBlock(ctx context.Context, carID uuid.UUID, start, end time.Time) (bool, error)
}

// PriceResolver supplies the displayed daily price for listed cars.
// Nil means the car has no active rate plan and shows no price.
type PriceResolver interface {
	DailyPriceForCar(ctx context.Context, carID uuid.UUID) (*int64, error)
}

// UploadTicket is a presigned upload grant for one car photo.
type UploadTicket struct {
	URL       string    `json:"url"`
	FileKey   string    `json:"fileKey"`
	ExpiresAt time.Time `json:"expiresAt"`
}

// ImagePresigner is the slice of object storage the fleet needs.
type ImagePresigner interface {
	GenerateUploadURL(ctx context.Context, folder, fileName, contentType string, sizeBytes int64) (*UploadTicket, error)
}

// ActivityRecorder records back-office mutations. Implementations must not
// fail the calling operation.
type ActivityRecorder interface {
	Record(ctx context.Context, userID *uuid.UUID, action, entity, entityID, details string)
}

type Service struct {
	repo     FleetRepository
	prices   PriceResolver
	images   ImagePresigner
	activity ActivityRecorder
	log      *logger.Logger
}

func New(repo FleetRepository, prices PriceResolver, images ImagePresigner, activity ActivityRecorder, log *logger.Logger) *Service {
	return &Service{repo: repo, prices: prices, images: images, activity: activity, log: log}
}

// PublicCar is a listed car with its displayed price.
type PublicCar struct {
	Car             repository.Car
	DailyPriceCents *int64
}

// PublicCarDetail is the full public detail page payload.
type PublicCarDetail struct {
	Car             repository.Car
	Images          []repository.CarImage
	DailyPriceCents *int64
}

// ListPublicCars returns the ACTIVE fleet with prices resolved per car.
func (s *Service) ListPublicCars(ctx context.Context, filter repository.ListFilter) ([]PublicCar, error) {
	cars, err := s.repo.ListActiveCars(ctx, filter)
	if err != nil {
		return nil, apperr.Wrap(apperr.KindInternal, "failed to list cars", err)
	}

	out := make([]PublicCar, 0, len(cars))
	for _, car := range cars {
		out = append(out, PublicCar{Car: car, DailyPriceCents: s.dailyPrice(ctx, car.ID)})
	}
	return out, nil
}

// GetPublicCarBySlug returns the public detail for one ACTIVE car.
func (s *Service) GetPublicCarBySlug(ctx context.Context, slug string) (PublicCarDetail, error) {
	car, err := s.repo.GetActiveCarBySlug(ctx, slug)
	if errors.Is(err, repository.ErrNotFound) {
		return PublicCarDetail{}, apperr.NotFound("car not found")
	}
	if err != nil {
		return PublicCarDetail{}, apperr.Wrap(apperr.KindInternal, "failed to load car", err)
	}

	images, err := s.repo.ListImages(ctx, car.ID)
	if err != nil {
		return PublicCarDetail{}, apperr.Wrap(apperr.KindInternal, "failed to load car images", err)
	}

	return PublicCarDetail{
		Car:             car,
		Images:          images,
		DailyPriceCents: s.dailyPrice(ctx, car.ID),
	}, nil
}

// CheckAvailability reports whether a car is free of blocks in [from, to).
func (s *Service) CheckAvailability(ctx context.Context, slug string, from, to time.Time) (bool, error) {
	if !to.After(from) {
		return false, apperr.Validation("end must be after start")
	}

	car, err := s.repo.GetActiveCarBySlug(ctx, slug)
	if errors.Is(err, repository.ErrNotFound) {
		return false, apperr.NotFound("car not found")
	}
	if err != nil {
		return false, apperr.Wrap(apperr.KindInternal, "failed to load car", err)
	}

	blocked, err := s.repo.HasOverlappingBlock(ctx, car.ID, from, to)
	if err != nil {
		return false, apperr.Wrap(apperr.KindInternal, "failed to check availability", err)
	}
	return !blocked, nil
}

// ActiveCarSummary implements the booking flow's car lookup.
func (s *Service) ActiveCarSummary(ctx context.Context, id uuid.UUID) (bookingsvc.CarSummary, bool, error) {
	car, err := s.repo.GetCarByID(ctx, id)
	if errors.Is(err, repository.ErrNotFound) {
		return bookingsvc.CarSummary{}, false, nil
	}
	if err != nil {
		return bookingsvc.CarSummary{}, false, err
	}
	if car.Status != repository.StatusActive {
		return bookingsvc.CarSummary{}, false, nil
	}

	return bookingsvc.CarSummary{
		ID:       car.ID,
		Slug:     car.Slug,
		Brand:    car.Brand,
		Model:    car.Model,
		Trim:     car.Trim,
		Year:     car.Year,
		Category: car.Category,
	}, true, nil
}

// ListCars returns every car for the back office.
func (s *Service) ListCars(ctx context.Context) ([]repository.Car, error) {
	cars, err := s.repo.ListAllCars(ctx)
	if err != nil {
		return nil, apperr.Wrap(apperr.KindInternal, "failed to list cars", err)
	}
	return cars, nil
}

// GetCar returns one car regardless of status.
func (s *Service) GetCar(ctx context.Context, id uuid.UUID) (repository.Car, error) {
	car, err := s.repo.GetCarByID(ctx, id)
	if errors.Is(err, repository.ErrNotFound) {
		return repository.Car{}, apperr.NotFound("car not found")
	}
	if err != nil {
		return repository.Car{}, apperr.Wrap(apperr.KindInternal, "failed to load car", err)
	}
	return car, nil
}

// CreateCar creates a car with a generated unique slug.
func (s *Service) CreateCar(ctx context.Context, actorID uuid.UUID, p repository.CarParams) (repository.Car, error) {
	if p.Status == "" {
		p.Status = repository.StatusActive
	}
	if !repository.ValidStatus(p.Status) {
		return repository.Car{}, apperr.Validation("unknown car status")
	}

	slug, err := s.uniqueSlug(ctx, fmt.Sprintf("%s %s %d", p.Brand, p.Model, p.Year))
	if err != nil {
		return repository.Car{}, apperr.Wrap(apperr.KindInternal, "failed to generate slug", err)
	}
	p.Slug = slug

	id, err := s.repo.CreateCar(ctx, p)
	if err != nil {
		return repository.Car{}, apperr.Wrap(apperr.KindInternal, "failed to create car", err)
	}

	s.record(ctx, actorID, "create", "car", id.String(), slug)
	return s.GetCar(ctx, id)
}

// UpdateCar updates a car. The slug is regenerated only when brand, model,
// or year changed, so published URLs stay stable across minor edits.
func (s *Service) UpdateCar(ctx context.Context, actorID uuid.UUID, id uuid.UUID, p repository.CarParams) (repository.Car, error) {
	if !repository.ValidStatus(p.Status) {
		return repository.Car{}, apperr.Validation("unknown car status")
	}

	current, err := s.GetCar(ctx, id)
	if err != nil {
		return repository.Car{}, err
	}

	p.Slug = current.Slug
	if current.Brand != p.Brand || current.Model != p.Model || current.Year != p.Year {
		slug, err := s.uniqueSlug(ctx, fmt.Sprintf("%s %s %d", p.Brand, p.Model, p.Year))
		if err != nil {
			return repository.Car{}, apperr.Wrap(apperr.KindInternal, "failed to generate slug", err)
		}
		p.Slug = slug
	}

	if err := s.repo.UpdateCar(ctx, id, p); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return repository.Car{}, apperr.NotFound("car not found")
		}
		return repository.Car{}, apperr.Wrap(apperr.KindInternal, "failed to update car", err)
	}

	s.record(ctx, actorID, "update", "car", id.String(), p.Slug)
	return s.GetCar(ctx, id)
}

// UpdateStatus changes a car's visibility status.
func (s *Service) UpdateStatus(ctx context.Context, actorID uuid.UUID, id uuid.UUID, status string) error {
	if !repository.ValidStatus(status) {
		return apperr.Validation("unknown car status")
	}

	if err := s.repo.UpdateCarStatus(ctx, id, status); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return apperr.NotFound("car not found")
		}
		return apperr.Wrap(apperr.KindInternal, "failed to update car status", err)
	}

	s.record(ctx, actorID, "status", "car", id.String(), status)
	return nil
}

// DeleteCar removes a car. Its leads survive with car_id set to null.
func (s *Service) DeleteCar(ctx context.Context, actorID uuid.UUID, id uuid.UUID) error {
	if err := s.repo.DeleteCar(ctx, id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return apperr.NotFound("car not found")
		}
		return apperr.Wrap(apperr.KindInternal, "failed to delete car", err)
	}

	s.record(ctx, actorID, "delete", "car", id.String(), "")
	return nil
}

// PresignImageUpload issues a presigned PUT URL for a car photo.
func (s *Service) PresignImageUpload(ctx context.Context, carID uuid.UUID, fileName, contentType string, sizeBytes int64) (*UploadTicket, error) {
	if s.images == nil {
		return nil, apperr.New(apperr.KindInternal, "image storage is not configured")
	}

	if _, err := s.GetCar(ctx, carID); err != nil {
		return nil, err
	}

	ticket, err := s.images.GenerateUploadURL(ctx, carID.String(), fileName, contentType, sizeBytes)
	if err != nil {
		return nil, apperr.Wrap(apperr.KindBadRequest, err.Error(), err)
	}
	return ticket, nil
}

// ListImages returns a car's gallery.
func (s *Service) ListImages(ctx context.Context, carID uuid.UUID) ([]repository.CarImage, error) {
	images, err := s.repo.ListImages(ctx, carID)
	if err != nil {
		return nil, apperr.Wrap(apperr.KindInternal, "failed to list images", err)
	}
	return images, nil
}

// AddImage registers an uploaded photo in a car's gallery.
func (s *Service) AddImage(ctx context.Context, actorID, carID uuid.UUID, url string, altText *string, sortOrder int) (uuid.UUID, error) {
	if _, err := s.GetCar(ctx, carID); err != nil {
		return uuid.Nil, err
	}

	id, err := s.repo.AddImage(ctx, carID, url, altText, sortOrder)
	if err != nil {
		return uuid.Nil, apperr.Wrap(apperr.KindInternal, "failed to add image", err)
	}

	s.record(ctx, actorID, "add-image", "car", carID.String(), url)
	return id, nil
}

// DeleteImage removes a photo from a car's gallery.
func (s *Service) DeleteImage(ctx context.Context, actorID, carID, imageID uuid.UUID) error {
	if err := s.repo.DeleteImage(ctx, carID, imageID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return apperr.NotFound("image not found")
		}
		return apperr.Wrap(apperr.KindInternal, "failed to delete image", err)
	}

	s.record(ctx, actorID, "delete-image", "car", carID.String(), imageID.String())
	return nil
}

// ListBlocks returns a car's availability blocks.
func (s *Service) ListBlocks(ctx context.Context, carID uuid.UUID) ([]repository.AvailabilityBlock, error) {
	blocks, err := s.repo.ListBlocks(ctx, carID)
	if err != nil {
		return nil, apperr.Wrap(apperr.KindInternal, "failed to list availability blocks", err)
	}
	return blocks, nil
}

// CreateBlock adds an availability block for a car.
func (s *Service) CreateBlock(ctx context.Context, actorID, carID uuid.UUID, start, end time.Time, reason string, note *string) (uuid.UUID, error) {
	if !end.After(start) {
		return uuid.Nil, apperr.Validation("end must be after start")
	}
	switch reason {
	case "MAINTENANCE", "BOOKED", "OTHER":
	default:
		return uuid.Nil, apperr.Validation("unknown block reason")
	}

	if _, err := s.GetCar(ctx, carID); err != nil {
		return uuid.Nil, err
	}

	id, err := s.repo.CreateBlock(ctx, carID, start, end, reason, note)
	if err != nil {
		return uuid.Nil, apperr.Wrap(apperr.KindInternal, "failed to create availability block", err)
	}

	s.record(ctx, actorID, "block", "car", carID.String(), reason)
	return id, nil
}

// DeleteBlock removes an availability block.
func (s *Service) DeleteBlock(ctx context.Context, actorID, carID, blockID uuid.UUID) error {
	if err := s.repo.DeleteBlock(ctx, carID, blockID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return apperr.NotFound("availability block not found")
		}
		return apperr.Wrap(apperr.KindInternal, "failed to delete availability block", err)
	}

	s.record(ctx, actorID, "unblock", "car", carID.String(), blockID.String())
	return nil
}

// uniqueSlug appends a numeric suffix until the slug is free.
func (s *Service) uniqueSlug(ctx context.Context, text string) (string, error) {
	base := Slugify(text)
	if base == "" {
		base = "car"
	}

	slug := base
	for counter := 2; ; counter++ {
		exists, err := s.repo.SlugExists(ctx, slug)
		if err != nil {
			return "", err
		}
		if !exists {
			return slug, nil
		}
		slug = fmt.Sprintf("%s-%d", base, counter)
	}
}

func (s *Service) dailyPrice(ctx context.Context, carID uuid.UUID) *int64 {
	if s.prices == nil {
		return nil
	}
	price, err := s.prices.DailyPriceForCar(ctx, carID)
	if err != nil {
		s.log.Warn("price lookup failed", "error", err, "carId", carID)
		return nil
	}
	return price
}

func (s *Service) record(ctx context.Context, actorID uuid.UUID, action, entity, entityID, details string) {
	if s.activity == nil {
		return
	}
	s.activity.Record(ctx, &actorID, action, entity, entityID, details)
}
