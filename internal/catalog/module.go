// Package catalog provides the catalog bounded context module: extras,
// insurance plans, and pickup locations.
package catalog

import (
	"github.com/jackc/pgx/v5/pgxpool"

	"rentcar-backend/internal/catalog/handler"
	"rentcar-backend/internal/catalog/repository"
	"rentcar-backend/internal/catalog/service"
	apphttp "rentcar-backend/internal/http"
	"rentcar-backend/platform/logger"
	"rentcar-backend/platform/validator"
)

// Module is the catalog bounded context module implementing http.Module.
type Module struct {
	handler *handler.Handler
	service *service.Service
}

// NewModule creates and initializes the catalog module.
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
	return "catalog"
}

// Service returns the catalog service. The booking module consumes it as
// its catalog provider.
func (m *Module) Service() *service.Service {
	return m.service
}

// RegisterRoutes mounts catalog routes on the provided router context.
func (m *Module) RegisterRoutes(ctx *apphttp.RouterContext) {
	m.handler.RegisterPublicRoutes(ctx.V1)
	m.handler.RegisterAdminRoutes(ctx.Protected.Group("/catalog"))
}

// Compile-time check that Module implements http.Module
var _ apphttp.Module = (*Module)(nil)
