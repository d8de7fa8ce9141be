package service

import (
	"context"
	"encoding/json"
	"errors"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"

	"rentcar-backend/internal/booking/quote"
	"rentcar-backend/internal/booking/transport"
	"rentcar-backend/internal/events"
	"rentcar-backend/internal/leads/repository"
	"rentcar-backend/internal/scheduler"
	"rentcar-backend/platform/apperr"
	"rentcar-backend/platform/logger"
)

type stubCars struct {
	car   CarSummary
	found bool
}

func (s stubCars) ActiveCarSummary(ctx context.Context, id uuid.UUID) (CarSummary, bool, error) {
	return s.car, s.found, nil
}

type stubRates struct {
	rate *quote.RateModel
}

func (s stubRates) ActiveRateForCar(ctx context.Context, carID uuid.UUID) (*quote.RateModel, error) {
	return s.rate, nil
}

type stubCatalog struct {
	extras    []quote.Extra
	plans     []quote.InsurancePlan
	locations map[uuid.UUID]string
}

func (s stubCatalog) ActiveExtras(ctx context.Context) ([]quote.Extra, error) {
	return s.extras, nil
}

func (s stubCatalog) ActiveInsurancePlans(ctx context.Context) ([]quote.InsurancePlan, error) {
	return s.plans, nil
}

func (s stubCatalog) LocationName(ctx context.Context, id uuid.UUID) (string, error) {
	return s.locations[id], nil
}

type stubContact struct{ number string }

func (s stubContact) WhatsAppNumber(ctx context.Context) string { return s.number }

type stubLeads struct {
	err     error
	created []repository.CreateLeadParams
	id      uuid.UUID
}

func (s *stubLeads) CreateLead(ctx context.Context, p repository.CreateLeadParams) (uuid.UUID, error) {
	if s.err != nil {
		return uuid.Nil, s.err
	}
	s.created = append(s.created, p)
	return s.id, nil
}

type stubRetry struct {
	payloads []scheduler.LeadPersistRetryPayload
}

func (s *stubRetry) ScheduleLeadPersistRetry(ctx context.Context, p scheduler.LeadPersistRetryPayload) error {
	s.payloads = append(s.payloads, p)
	return nil
}

type recordingBus struct {
	published []events.Event
}

func (b *recordingBus) Publish(ctx context.Context, event events.Event) {
	b.published = append(b.published, event)
}

func (b *recordingBus) PublishSync(ctx context.Context, event events.Event) error {
	b.published = append(b.published, event)
	return nil
}

func (b *recordingBus) Subscribe(eventName string, handler events.Handler) {}

func testCar() CarSummary {
	return CarSummary{
		ID:       uuid.New(),
		Slug:     "bmw-320d-2022",
		Brand:    "BMW",
		Model:    "320d",
		Year:     2022,
		Category: "SEDAN",
	}
}

func testRate() *quote.RateModel {
	return &quote.RateModel{
		DailyPriceCents: 12000,
		DepositCents:    100000,
	}
}

func newTestService(cars CarProvider, rates RateProvider, catalog CatalogProvider, contact ContactProvider, leads LeadWriter, retry scheduler.LeadRetryScheduler, bus events.Bus) *Service {
	return New(cars, rates, catalog, contact, leads, retry, bus, logger.New("development"))
}

func baseRequest(carID uuid.UUID) transport.SubmitLeadRequest {
	return transport.SubmitLeadRequest{
		QuoteRequest: transport.QuoteRequest{
			CarID:    carID,
			PickupAt: time.Date(2026, 3, 2, 10, 0, 0, 0, time.UTC),
			ReturnAt: time.Date(2026, 3, 6, 10, 0, 0, 0, time.UTC),
		},
		CustomerName:    "Max Muster",
		CustomerPhone:   "079 123 45 67",
		TermsAccepted:   true,
		PrivacyAccepted: true,
	}
}

func TestQuoteUnknownCarIsNotFound(t *testing.T) {
	svc := newTestService(stubCars{}, stubRates{}, stubCatalog{}, stubContact{}, &stubLeads{}, nil, nil)

	_, err := svc.Quote(context.Background(), transport.QuoteRequest{
		CarID:    uuid.New(),
		PickupAt: time.Now(),
		ReturnAt: time.Now().Add(48 * time.Hour),
	})
	if !apperr.Is(err, apperr.KindNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestQuoteCarWithoutRatePlanIsNotFound(t *testing.T) {
	svc := newTestService(stubCars{car: testCar(), found: true}, stubRates{}, stubCatalog{}, stubContact{}, &stubLeads{}, nil, nil)

	_, err := svc.Quote(context.Background(), transport.QuoteRequest{
		CarID:    uuid.New(),
		PickupAt: time.Now(),
		ReturnAt: time.Now().Add(48 * time.Hour),
	})
	if !apperr.Is(err, apperr.KindNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestQuoteInvertedDatesIsValidationError(t *testing.T) {
	svc := newTestService(stubCars{car: testCar(), found: true}, stubRates{rate: testRate()}, stubCatalog{}, stubContact{}, &stubLeads{}, nil, nil)

	now := time.Now()
	_, err := svc.Quote(context.Background(), transport.QuoteRequest{
		CarID:    uuid.New(),
		PickupAt: now,
		ReturnAt: now.Add(-time.Hour),
	})
	if !apperr.Is(err, apperr.KindValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestSubmitPersistsRecomputedQuote(t *testing.T) {
	car := testCar()
	leads := &stubLeads{id: uuid.New()}
	bus := &recordingBus{}
	svc := newTestService(stubCars{car: car, found: true}, stubRates{rate: testRate()}, stubCatalog{}, stubContact{number: "+41790000000"}, leads, nil, bus)

	resp, err := svc.Submit(context.Background(), baseRequest(car.ID))
	if err != nil {
		t.Fatalf("Submit: %v", err)
	}

	if resp.LeadID == nil || *resp.LeadID != leads.id {
		t.Fatalf("expected lead id %s, got %v", leads.id, resp.LeadID)
	}
	if len(leads.created) != 1 {
		t.Fatalf("expected 1 persisted lead, got %d", len(leads.created))
	}

	// 4 days at 120.00 with the 3-day discount absent
	created := leads.created[0]
	if created.TotalEstimateCents != 48000 {
		t.Fatalf("expected recomputed total 48000, got %d", created.TotalEstimateCents)
	}
	var snapshot quote.Breakdown
	if err := json.Unmarshal(created.QuoteSnapshot, &snapshot); err != nil {
		t.Fatalf("snapshot not valid JSON: %v", err)
	}
	if snapshot.RentalDays != 4 || snapshot.TotalCents != 48000 {
		t.Fatalf("unexpected snapshot: days=%d total=%d", snapshot.RentalDays, snapshot.TotalCents)
	}

	if created.CustomerPhone != "+41791234567" {
		t.Fatalf("expected normalized phone, got %q", created.CustomerPhone)
	}

	if len(bus.published) != 1 {
		t.Fatalf("expected 1 event, got %d", len(bus.published))
	}
	submitted, ok := bus.published[0].(events.LeadSubmitted)
	if !ok {
		t.Fatalf("unexpected event type %T", bus.published[0])
	}
	if submitted.LeadID == nil || submitted.CarLabel != "BMW 320d" {
		t.Fatalf("unexpected event payload: %+v", submitted)
	}
}

func TestSubmitFailedPersistenceStillReturnsLink(t *testing.T) {
	car := testCar()
	leads := &stubLeads{err: errors.New("connection refused")}
	retry := &stubRetry{}
	bus := &recordingBus{}
	svc := newTestService(stubCars{car: car, found: true}, stubRates{rate: testRate()}, stubCatalog{}, stubContact{number: "+41790000000"}, leads, retry, bus)

	resp, err := svc.Submit(context.Background(), baseRequest(car.ID))
	if err != nil {
		t.Fatalf("Submit must not fail on persistence errors: %v", err)
	}

	if resp.LeadID != nil {
		t.Fatalf("expected nil lead id, got %v", resp.LeadID)
	}
	if resp.WhatsAppURL == "" || !strings.HasPrefix(resp.WhatsAppURL, "https://wa.me/41790000000?text=") {
		t.Fatalf("unexpected WhatsApp URL %q", resp.WhatsAppURL)
	}
	if resp.Message == "" {
		t.Fatalf("expected composed message")
	}

	if len(retry.payloads) != 1 {
		t.Fatalf("expected 1 retry payload, got %d", len(retry.payloads))
	}
	if retry.payloads[0].TotalEstimateCents != 48000 {
		t.Fatalf("retry payload total = %d", retry.payloads[0].TotalEstimateCents)
	}

	if len(bus.published) != 1 {
		t.Fatalf("expected LeadSubmitted even on failed persistence, got %d events", len(bus.published))
	}
	if submitted := bus.published[0].(events.LeadSubmitted); submitted.LeadID != nil {
		t.Fatalf("event lead id should be nil, got %v", submitted.LeadID)
	}
}

func TestSubmitMessageContainsQuoteAndCustomer(t *testing.T) {
	car := testCar()
	rate := testRate()
	threeDay := 500
	rate.Discount3DaysBps = &threeDay

	extraID := uuid.New()
	planID := uuid.New()
	locID := uuid.New()
	catalog := stubCatalog{
		extras: []quote.Extra{
			{ID: extraID, Name: "Seggiolino bambini", PriceType: quote.PriceTypeOneTime, PriceCents: 2500, MaxQuantity: 2},
		},
		plans: []quote.InsurancePlan{
			{ID: planID, Name: "Kasko Totale", PricePerDayCents: 2500},
		},
		locations: map[uuid.UUID]string{locID: "Lugano Centro"},
	}

	leads := &stubLeads{id: uuid.New()}
	svc := newTestService(stubCars{car: car, found: true}, stubRates{rate: rate}, catalog, stubContact{number: "+41 79 000 00 00"}, leads, nil, nil)

	req := baseRequest(car.ID)
	req.Extras = []transport.ExtraSelectionDTO{{ID: extraID, Quantity: 1}}
	req.InsurancePlanID = &planID
	req.PickupLocationID = &locID
	notes := "Volo in arrivo alle 9"
	req.Notes = &notes

	resp, err := svc.Submit(context.Background(), req)
	if err != nil {
		t.Fatalf("Submit: %v", err)
	}

	for _, want := range []string{
		"RICHIESTA NOLEGGIO",
		"*Auto:* BMW 320d (2022)",
		"*ID:* bmw-320d-2022",
		"*Categoria:* Berlina",
		"*Ritiro:* 02.03.2026 ore 10:00",
		"*Sede ritiro:* Lugano Centro",
		"*Sede riconsegna:* Lugano Centro",
		"Prezzo base (4 giorni): CHF 456.00",
		"Seggiolino bambini: CHF 25.00",
		"Assicurazione (Kasko Totale): CHF 100.00",
		"*TOTALE: CHF 581.00*",
		"Deposito cauzionale: CHF 1'000.00",
		"Nome: Max Muster",
		"Tel: +41791234567",
		"Note: Volo in arrivo alle 9",
	} {
		if !strings.Contains(resp.Message, want) {
			t.Fatalf("message missing %q:\n%s", want, resp.Message)
		}
	}

	// The deep link must round-trip to the exact message.
	parsed, err := url.Parse(resp.WhatsAppURL)
	if err != nil {
		t.Fatalf("parse url: %v", err)
	}
	if got := parsed.Query().Get("text"); got != resp.Message {
		t.Fatalf("url text does not round-trip:\n%q\n%q", got, resp.Message)
	}

	// Persisted lead stores the resolved location names.
	if leads.created[0].PickupLocation != "Lugano Centro" || leads.created[0].ReturnLocation != "Lugano Centro" {
		t.Fatalf("unexpected locations: %+v", leads.created[0])
	}
}
