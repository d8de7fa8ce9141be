// Package settings wires site-wide key/value settings management.
package settings

import (
	"github.com/jackc/pgx/v5/pgxpool"

	apphttp "rentcar-backend/internal/http"
	"rentcar-backend/internal/settings/handler"
	"rentcar-backend/internal/settings/repository"
	"rentcar-backend/internal/settings/service"
	"rentcar-backend/platform/config"
	"rentcar-backend/platform/logger"
	"rentcar-backend/platform/validator"
)

type Module struct {
	svc     *service.Service
	handler *handler.Handler
}

func NewModule(pool *pgxpool.Pool, cfg config.WhatsAppConfig, activity service.ActivityRecorder, val *validator.Validator, log *logger.Logger) *Module {
	repo := repository.New(pool)
	svc := service.New(repo, cfg, activity, log)

	return &Module{
		svc:     svc,
		handler: handler.NewHandler(svc, val),
	}
}

func (m *Module) Name() string { return "settings" }

// Service exposes the settings service as the booking contact provider.
func (m *Module) Service() *service.Service { return m.svc }

func (m *Module) RegisterRoutes(ctx *apphttp.RouterContext) {
	m.handler.RegisterAdminRoutes(ctx.Admin.Group("/settings"))
}

var _ apphttp.Module = (*Module)(nil)
