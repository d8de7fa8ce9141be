// Package leads provides the lead back-office bounded context module.
// Customers never hit these routes; leads are created by the booking
// module and worked by staff here.
package leads

import (
	"github.com/jackc/pgx/v5/pgxpool"

	"rentcar-backend/internal/events"
	apphttp "rentcar-backend/internal/http"
	"rentcar-backend/internal/leads/handler"
	"rentcar-backend/internal/leads/repository"
	"rentcar-backend/internal/leads/service"
	"rentcar-backend/platform/logger"
	"rentcar-backend/platform/validator"
)

// Module is the leads bounded context module implementing http.Module.
type Module struct {
	handler *handler.Handler
	service *service.Service
	repo    *repository.Repository
}

// NewModule creates and initializes the leads module with all its dependencies.
func NewModule(pool *pgxpool.Pool, eventBus events.Bus, val *validator.Validator, log *logger.Logger) *Module {
	repo := repository.New(pool)
	svc := service.NewService(repo, eventBus, log)
	h := handler.New(svc, val)

	return &Module{
		handler: h,
		service: svc,
		repo:    repo,
	}
}

// Name returns the module identifier.
func (m *Module) Name() string {
	return "leads"
}

// Service returns the lead service for external use.
func (m *Module) Service() *service.Service {
	return m.service
}

// Repository returns the lead repository. The booking module persists
// submitted leads through it, and the retry worker replays failed writes.
func (m *Module) Repository() *repository.Repository {
	return m.repo
}

// RegisterRoutes mounts lead routes on the provided router context.
func (m *Module) RegisterRoutes(ctx *apphttp.RouterContext) {
	// All lead routes require an authenticated staff user
	leadsGroup := ctx.Protected.Group("/leads")
	m.handler.RegisterRoutes(leadsGroup)
}

// Compile-time check that Module implements http.Module
var _ apphttp.Module = (*Module)(nil)
