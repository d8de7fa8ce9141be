// Package service implements the public booking flow: price quotes and
// rental request submission with the WhatsApp hand-off.
package service

import (
	"context"
	"encoding/json"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"rentcar-backend/internal/booking/quote"
	"rentcar-backend/internal/booking/transport"
	"rentcar-backend/internal/events"
	"rentcar-backend/internal/leads/repository"
	"rentcar-backend/internal/scheduler"
	"rentcar-backend/internal/whatsapp"
	"rentcar-backend/platform/apperr"
	"rentcar-backend/platform/logger"
	"rentcar-backend/platform/phone"
)

// CarSummary is the slice of car data the booking flow needs.
type CarSummary struct {
	ID       uuid.UUID
	Slug     string
	Brand    string
	Model    string
	Trim     *string
	Year     int
	Category string
}

// CarProvider resolves publicly rentable cars. Hidden and maintenance cars
// behave as absent.
type CarProvider interface {
	ActiveCarSummary(ctx context.Context, id uuid.UUID) (CarSummary, bool, error)
}

// RateProvider resolves the pricing terms used for quoting. Returns nil when
// the car has no active rate plan.
type RateProvider interface {
	ActiveRateForCar(ctx context.Context, carID uuid.UUID) (*quote.RateModel, error)
}

// CatalogProvider supplies the extras and insurance catalogs and resolves
// location names.
type CatalogProvider interface {
	ActiveExtras(ctx context.Context) ([]quote.Extra, error)
	ActiveInsurancePlans(ctx context.Context) ([]quote.InsurancePlan, error)
	LocationName(ctx context.Context, id uuid.UUID) (string, error)
}

// ContactProvider resolves the business WhatsApp number leads are handed to.
type ContactProvider interface {
	WhatsAppNumber(ctx context.Context) string
}

// LeadWriter persists submitted leads.
type LeadWriter interface {
	CreateLead(ctx context.Context, p repository.CreateLeadParams) (uuid.UUID, error)
}

type Service struct {
	cars    CarProvider
	rates   RateProvider
	catalog CatalogProvider
	contact ContactProvider
	leads   LeadWriter
	retry   scheduler.LeadRetryScheduler
	bus     events.Bus
	log     *logger.Logger
}

func New(
	cars CarProvider,
	rates RateProvider,
	catalog CatalogProvider,
	contact ContactProvider,
	leads LeadWriter,
	retry scheduler.LeadRetryScheduler,
	bus events.Bus,
	log *logger.Logger,
) *Service {
	return &Service{
		cars:    cars,
		rates:   rates,
		catalog: catalog,
		contact: contact,
		leads:   leads,
		retry:   retry,
		bus:     bus,
		log:     log,
	}
}

// Quote computes the price breakdown for a rental configuration.
func (s *Service) Quote(ctx context.Context, req transport.QuoteRequest) (*quote.Breakdown, error) {
	_, breakdown, err := s.quoteForCar(ctx, req)
	return breakdown, err
}

func (s *Service) quoteForCar(ctx context.Context, req transport.QuoteRequest) (CarSummary, *quote.Breakdown, error) {
	car, found, err := s.cars.ActiveCarSummary(ctx, req.CarID)
	if err != nil {
		return CarSummary{}, nil, apperr.Wrap(apperr.KindInternal, "failed to load car", err)
	}
	if !found {
		return CarSummary{}, nil, apperr.NotFound("car not found")
	}

	var (
		rate   *quote.RateModel
		extras []quote.Extra
		plans  []quote.InsurancePlan
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		if rate, err = s.rates.ActiveRateForCar(gctx, car.ID); err != nil {
			return apperr.Wrap(apperr.KindInternal, "failed to load rate plan", err)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		if extras, err = s.catalog.ActiveExtras(gctx); err != nil {
			return apperr.Wrap(apperr.KindInternal, "failed to load extras", err)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		if plans, err = s.catalog.ActiveInsurancePlans(gctx); err != nil {
			return apperr.Wrap(apperr.KindInternal, "failed to load insurance plans", err)
		}
		return nil
	})
	if err := g.Wait(); err != nil {
		return CarSummary{}, nil, err
	}
	if rate == nil {
		return CarSummary{}, nil, apperr.NotFound("car has no active rate plan")
	}

	breakdown := quote.Compute(req.ToQuoteConfig(), rate, extras, plans)
	if breakdown == nil {
		return CarSummary{}, nil, apperr.Validation("return date must be after pickup date")
	}

	return car, breakdown, nil
}

// Submit handles a rental request: the quote is recomputed server-side from
// the submitted configuration, the lead is persisted best-effort, and the
// WhatsApp hand-off is built regardless of persistence outcome. A failed
// write goes to the retry queue instead of failing the submission.
func (s *Service) Submit(ctx context.Context, req transport.SubmitLeadRequest) (transport.SubmitLeadResponse, error) {
	req.CustomerPhone = phone.NormalizeE164(req.CustomerPhone)

	car, breakdown, err := s.quoteForCar(ctx, req.QuoteRequest)
	if err != nil {
		return transport.SubmitLeadResponse{}, err
	}

	pickupLocation := s.locationName(ctx, req.PickupLocationID)
	returnLocation := s.locationName(ctx, req.ReturnLocationID)
	if returnLocation == "" {
		returnLocation = pickupLocation
	}

	snapshot, err := json.Marshal(breakdown)
	if err != nil {
		return transport.SubmitLeadResponse{}, apperr.Wrap(apperr.KindInternal, "failed to snapshot quote", err)
	}
	extrasJSON, err := json.Marshal(req.Extras)
	if err != nil {
		return transport.SubmitLeadResponse{}, apperr.Wrap(apperr.KindInternal, "failed to encode extras", err)
	}

	params := repository.CreateLeadParams{
		CarID:              car.ID,
		CustomerName:       req.CustomerName,
		CustomerPhone:      req.CustomerPhone,
		CustomerEmail:      req.CustomerEmail,
		PickupDate:         req.PickupAt,
		ReturnDate:         req.ReturnAt,
		PickupLocation:     pickupLocation,
		ReturnLocation:     returnLocation,
		QuoteSnapshot:      snapshot,
		TotalEstimateCents: breakdown.TotalCents,
		Extras:             extrasJSON,
		InsurancePlanID:    req.InsurancePlanID,
		Notes:              req.Notes,
		Source:             "web",
	}

	var leadID *uuid.UUID
	if id, err := s.leads.CreateLead(ctx, params); err != nil {
		s.log.Error("lead persistence failed, queueing retry", "error", err, "carId", car.ID)
		if retryErr := s.scheduleRetry(ctx, params); retryErr != nil {
			s.log.Error("lead retry scheduling failed", "error", retryErr, "carId", car.ID)
		}
	} else {
		leadID = &id
	}

	message := composeInquiryMessage(inquiry{
		Car:            car,
		PickupAt:       req.PickupAt,
		ReturnAt:       req.ReturnAt,
		PickupLocation: pickupLocation,
		ReturnLocation: returnLocation,
		Breakdown:      breakdown,
		CustomerName:   req.CustomerName,
		CustomerPhone:  req.CustomerPhone,
		CustomerEmail:  req.CustomerEmail,
		Notes:          req.Notes,
	})
	waURL := whatsapp.BuildClickToChatURL(s.contact.WhatsAppNumber(ctx), message)

	if s.bus != nil {
		s.bus.Publish(ctx, events.LeadSubmitted{
			BaseEvent:     events.NewBaseEvent(),
			LeadID:        leadID,
			CarID:         car.ID,
			CarLabel:      carLabel(car),
			CustomerName:  req.CustomerName,
			CustomerPhone: req.CustomerPhone,
			TotalCents:    breakdown.TotalCents,
			Message:       message,
		})
	}

	return transport.SubmitLeadResponse{
		LeadID:      leadID,
		WhatsAppURL: waURL,
		Message:     message,
		Quote:       breakdown,
	}, nil
}

// ChatQR renders the click-to-chat link for a submitted configuration as a
// PNG QR code, for customers browsing on desktop.
func (s *Service) ChatQR(ctx context.Context, message string, size int) ([]byte, error) {
	png, err := whatsapp.ChatQRPNG(s.contact.WhatsAppNumber(ctx), message, size)
	if err != nil {
		return nil, apperr.Wrap(apperr.KindInternal, "failed to render QR code", err)
	}
	if png == nil {
		return nil, apperr.NotFound("no contact number configured")
	}
	return png, nil
}

func (s *Service) scheduleRetry(ctx context.Context, p repository.CreateLeadParams) error {
	if s.retry == nil {
		return nil
	}
	return s.retry.ScheduleLeadPersistRetry(ctx, scheduler.LeadPersistRetryPayload{
		CarID:              p.CarID,
		CustomerName:       p.CustomerName,
		CustomerPhone:      p.CustomerPhone,
		CustomerEmail:      p.CustomerEmail,
		PickupDate:         p.PickupDate,
		ReturnDate:         p.ReturnDate,
		PickupLocation:     p.PickupLocation,
		ReturnLocation:     p.ReturnLocation,
		QuoteSnapshot:      p.QuoteSnapshot,
		TotalEstimateCents: p.TotalEstimateCents,
		Extras:             p.Extras,
		InsurancePlanID:    p.InsurancePlanID,
		Notes:              p.Notes,
		Source:             p.Source,
	})
}

func (s *Service) locationName(ctx context.Context, id *uuid.UUID) string {
	if id == nil {
		return ""
	}
	name, err := s.catalog.LocationName(ctx, *id)
	if err != nil {
		s.log.Warn("location lookup failed", "error", err, "locationId", *id)
		return ""
	}
	return name
}
