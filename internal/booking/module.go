// Package booking provides the public rental flow bounded context module:
// price quotes, lead submission, and the WhatsApp hand-off.
package booking

import (
	"rentcar-backend/internal/booking/handler"
	"rentcar-backend/internal/booking/service"
	"rentcar-backend/internal/events"
	apphttp "rentcar-backend/internal/http"
	"rentcar-backend/internal/scheduler"
	"rentcar-backend/platform/logger"
	"rentcar-backend/platform/validator"
)

// Module is the booking bounded context module implementing http.Module.
type Module struct {
	handler *handler.Handler
	service *service.Service
}

// NewModule wires the booking flow from the providers exposed by the fleet,
// rates, catalog, settings, and leads modules.
func NewModule(
	cars service.CarProvider,
	rates service.RateProvider,
	catalog service.CatalogProvider,
	contact service.ContactProvider,
	leads service.LeadWriter,
	retry scheduler.LeadRetryScheduler,
	eventBus events.Bus,
	val *validator.Validator,
	log *logger.Logger,
) *Module {
	svc := service.New(cars, rates, catalog, contact, leads, retry, eventBus, log)
	h := handler.New(svc, val)

	return &Module{
		handler: h,
		service: svc,
	}
}

// Name returns the module identifier.
func (m *Module) Name() string {
	return "booking"
}

// Service returns the booking service for external use.
func (m *Module) Service() *service.Service {
	return m.service
}

// RegisterRoutes mounts the public booking routes.
func (m *Module) RegisterRoutes(ctx *apphttp.RouterContext) {
	m.handler.RegisterRoutes(ctx.V1)
}

// Compile-time check that Module implements http.Module
var _ apphttp.Module = (*Module)(nil)
