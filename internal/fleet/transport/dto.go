package transport

import (
	"time"

	"github.com/google/uuid"

	"rentcar-backend/internal/fleet/repository"
	"rentcar-backend/internal/fleet/service"
)

type CarResponse struct {
	ID                 uuid.UUID  `json:"id"`
	Slug               string     `json:"slug"`
	Brand              string     `json:"brand"`
	Model              string     `json:"model"`
	Trim               *string    `json:"trim,omitempty"`
	Year               int        `json:"year"`
	Category           string     `json:"category"`
	Transmission       string     `json:"transmission"`
	FuelType           string     `json:"fuelType"`
	Drivetrain         string     `json:"drivetrain"`
	Seats              int        `json:"seats"`
	Doors              int        `json:"doors"`
	Luggage            int        `json:"luggage"`
	PowerKW            *int       `json:"powerKw,omitempty"`
	PowerHP            *int       `json:"powerHp,omitempty"`
	PlateNumber        *string    `json:"plateNumber,omitempty"`
	InternalID         *string    `json:"internalId,omitempty"`
	LocationID         *uuid.UUID `json:"locationId,omitempty"`
	MinAge             int        `json:"minAge"`
	MinLicenseYears    int        `json:"minLicenseYears"`
	BaseFranchiseCents *int64     `json:"baseFranchiseCents,omitempty"`
	KmPerDay           int        `json:"kmPerDay"`
	BaseInsurance      bool       `json:"baseInsurance"`
	Status             string     `json:"status"`
	CoverImage         *string    `json:"coverImage,omitempty"`
	DailyPriceCents    *int64     `json:"dailyPriceCents,omitempty"`
	CreatedAt          time.Time  `json:"createdAt"`
	UpdatedAt          time.Time  `json:"updatedAt"`
}

type ImageResponse struct {
	ID        uuid.UUID `json:"id"`
	URL       string    `json:"url"`
	AltText   *string   `json:"altText,omitempty"`
	SortOrder int       `json:"sortOrder"`
}

type CarDetailResponse struct {
	CarResponse
	Images []ImageResponse `json:"images"`
}

type BlockResponse struct {
	ID        uuid.UUID `json:"id"`
	CarID     uuid.UUID `json:"carId"`
	StartDate time.Time `json:"startDate"`
	EndDate   time.Time `json:"endDate"`
	Reason    string    `json:"reason"`
	Note      *string   `json:"note,omitempty"`
}

func ToCarResponse(car repository.Car, dailyPriceCents *int64) CarResponse {
	return CarResponse{
		ID:                 car.ID,
		Slug:               car.Slug,
		Brand:              car.Brand,
		Model:              car.Model,
		Trim:               car.Trim,
		Year:               car.Year,
		Category:           car.Category,
		Transmission:       car.Transmission,
		FuelType:           car.FuelType,
		Drivetrain:         car.Drivetrain,
		Seats:              car.Seats,
		Doors:              car.Doors,
		Luggage:            car.Luggage,
		PowerKW:            car.PowerKW,
		PowerHP:            car.PowerHP,
		PlateNumber:        car.PlateNumber,
		InternalID:         car.InternalID,
		LocationID:         car.LocationID,
		MinAge:             car.MinAge,
		MinLicenseYears:    car.MinLicenseYears,
		BaseFranchiseCents: car.BaseFranchiseCents,
		KmPerDay:           car.KmPerDay,
		BaseInsurance:      car.BaseInsurance,
		Status:             car.Status,
		CoverImage:         car.CoverImage,
		DailyPriceCents:    dailyPriceCents,
		CreatedAt:          car.CreatedAt,
		UpdatedAt:          car.UpdatedAt,
	}
}

// ToPublicCarResponse hides back-office-only fields from the public payload.
func ToPublicCarResponse(pub service.PublicCar) CarResponse {
	resp := ToCarResponse(pub.Car, pub.DailyPriceCents)
	resp.PlateNumber = nil
	resp.InternalID = nil
	return resp
}

func ToPublicCarDetailResponse(detail service.PublicCarDetail) CarDetailResponse {
	resp := ToCarResponse(detail.Car, detail.DailyPriceCents)
	resp.PlateNumber = nil
	resp.InternalID = nil

	images := make([]ImageResponse, 0, len(detail.Images))
	for _, img := range detail.Images {
		images = append(images, ImageResponse{
			ID:        img.ID,
			URL:       img.URL,
			AltText:   img.AltText,
			SortOrder: img.SortOrder,
		})
	}

	return CarDetailResponse{CarResponse: resp, Images: images}
}

func ToImageResponses(images []repository.CarImage) []ImageResponse {
	out := make([]ImageResponse, 0, len(images))
	for _, img := range images {
		out = append(out, ImageResponse{
			ID:        img.ID,
			URL:       img.URL,
			AltText:   img.AltText,
			SortOrder: img.SortOrder,
		})
	}
	return out
}

func ToBlockResponses(blocks []repository.AvailabilityBlock) []BlockResponse {
	out := make([]BlockResponse, 0, len(blocks))
	for _, b := range blocks {
		out = append(out, BlockResponse{
			ID:        b.ID,
			CarID:     b.CarID,
			StartDate: b.StartDate,
			EndDate:   b.EndDate,
			Reason:    b.Reason,
			Note:      b.Note,
		})
	}
	return out
}

type CarRequest struct {
	Brand              string     `json:"brand" validate:"required,min=1,max=60"`
	Model              string     `json:"model" validate:"required,min=1,max=60"`
	Trim               *string    `json:"trim" validate:"omitempty,max=60"`
	Year               int        `json:"year" validate:"required,min=1980,max=2100"`
	Category           string     `json:"category" validate:"required,oneof=CITY SEDAN SUV LUXURY VAN SPORTS CONVERTIBLE WAGON"`
	Transmission       string     `json:"transmission" validate:"required,oneof=MANUAL AUTOMATIC"`
	FuelType           string     `json:"fuelType" validate:"required,oneof=PETROL DIESEL HYBRID ELECTRIC"`
	Drivetrain         string     `json:"drivetrain" validate:"required,oneof=FWD RWD AWD"`
	Seats              int        `json:"seats" validate:"required,min=1,max=12"`
	Doors              int        `json:"doors" validate:"required,min=2,max=6"`
	Luggage            int        `json:"luggage" validate:"min=0,max=10"`
	PowerKW            *int       `json:"powerKw" validate:"omitempty,min=1"`
	PowerHP            *int       `json:"powerHp" validate:"omitempty,min=1"`
	PlateNumber        *string    `json:"plateNumber" validate:"omitempty,max=16"`
	InternalID         *string    `json:"internalId" validate:"omitempty,max=32"`
	LocationID         *uuid.UUID `json:"locationId"`
	MinAge             int        `json:"minAge" validate:"min=18,max=99"`
	MinLicenseYears    int        `json:"minLicenseYears" validate:"min=0,max=50"`
	BaseFranchiseCents *int64     `json:"baseFranchiseCents" validate:"omitempty,min=0"`
	KmPerDay           int        `json:"kmPerDay" validate:"min=0"`
	BaseInsurance      bool       `json:"baseInsurance"`
	Status             string     `json:"status" validate:"omitempty,oneof=ACTIVE HIDDEN MAINTENANCE"`
	CoverImage         *string    `json:"coverImage" validate:"omitempty,max=512"`
}

func (r CarRequest) ToParams() repository.CarParams {
	minAge := r.MinAge
	if minAge == 0 {
		minAge = 21
	}
	kmPerDay := r.KmPerDay
	if kmPerDay == 0 {
		kmPerDay = 100
	}

	return repository.CarParams{
		Brand:              r.Brand,
		Model:              r.Model,
		Trim:               r.Trim,
		Year:               r.Year,
		Category:           r.Category,
		Transmission:       r.Transmission,
		FuelType:           r.FuelType,
		Drivetrain:         r.Drivetrain,
		Seats:              r.Seats,
		Doors:              r.Doors,
		Luggage:            r.Luggage,
		PowerKW:            r.PowerKW,
		PowerHP:            r.PowerHP,
		PlateNumber:        r.PlateNumber,
		InternalID:         r.InternalID,
		LocationID:         r.LocationID,
		MinAge:             minAge,
		MinLicenseYears:    r.MinLicenseYears,
		BaseFranchiseCents: r.BaseFranchiseCents,
		KmPerDay:           kmPerDay,
		BaseInsurance:      r.BaseInsurance,
		Status:             r.Status,
		CoverImage:         r.CoverImage,
	}
}

type UpdateCarStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=ACTIVE HIDDEN MAINTENANCE"`
}

type PresignImageRequest struct {
	FileName    string `json:"fileName" validate:"required,max=200"`
	ContentType string `json:"contentType" validate:"required,max=100"`
	SizeBytes   int64  `json:"sizeBytes" validate:"required,min=1"`
}

type AddImageRequest struct {
	URL       string  `json:"url" validate:"required,max=512"`
	AltText   *string `json:"altText" validate:"omitempty,max=200"`
	SortOrder int     `json:"sortOrder" validate:"min=0"`
}

type CreateBlockRequest struct {
	StartDate time.Time `json:"startDate" validate:"required"`
	EndDate   time.Time `json:"endDate" validate:"required"`
	Reason    string    `json:"reason" validate:"required,oneof=MAINTENANCE BOOKED OTHER"`
	Note      *string   `json:"note" validate:"omitempty,max=500"`
}
