// Package rates provides the pricing bounded context module: rate plan
// management and the quoted pricing terms for the public site.
package rates

import (
	"github.com/jackc/pgx/v5/pgxpool"

	apphttp "rentcar-backend/internal/http"
	"rentcar-backend/internal/rates/handler"
	"rentcar-backend/internal/rates/repository"
	"rentcar-backend/internal/rates/service"
	"rentcar-backend/platform/logger"
	"rentcar-backend/platform/validator"
)

// Module is the rates bounded context module implementing http.Module.
type Module struct {
	handler *handler.Handler
	service *service.Service
}

// NewModule creates and initializes the rates module.
func NewModule(pool *pgxpool.Pool, activity service.ActivityRecorder, val *validator.Validator, log *logger.Logger) *Module {
	repo := repository.New(pool)
	svc := service.New(repo, activity, log)
	h := handler.New(svc, val)

	return &Module{
		handler: h,
		service: svc,
	}
}

// Name returns the module identifier.
func (m *Module) Name() string {
	return "rates"
}

// Service returns the rates service. The booking and fleet modules consume
// it as their rate and price providers.
func (m *Module) Service() *service.Service {
	return m.service
}

// RegisterRoutes mounts rate routes on the provided router context.
func (m *Module) RegisterRoutes(ctx *apphttp.RouterContext) {
	m.handler.RegisterPublicRoutes(ctx.V1)
	m.handler.RegisterAdminRoutes(ctx.Protected.Group("/rate-plans"))
}

// Compile-time check that Module implements http.Module
var _ apphttp.Module = (*Module)(nil)
