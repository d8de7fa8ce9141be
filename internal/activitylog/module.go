// Package activitylog wires the admin activity trail.
package activitylog

import (
	"github.com/jackc/pgx/v5/pgxpool"

	"rentcar-backend/internal/activitylog/handler"
	"rentcar-backend/internal/activitylog/repository"
	"rentcar-backend/internal/activitylog/service"
	"rentcar-backend/internal/events"
	apphttp "rentcar-backend/internal/http"
	"rentcar-backend/platform/logger"
)

type Module struct {
	svc     *service.Service
	handler *handler.Handler
}

func NewModule(pool *pgxpool.Pool, eventBus events.Bus, log *logger.Logger) *Module {
	repo := repository.New(pool)
	svc := service.New(repo, log)

	eventBus.Subscribe(events.LeadStatusChanged{}.EventName(), events.HandlerFunc(svc.HandleLeadStatusChanged))

	return &Module{
		svc:     svc,
		handler: handler.NewHandler(svc),
	}
}

func (m *Module) Name() string { return "activitylog" }

// Recorder exposes the service for modules that record admin actions.
func (m *Module) Recorder() *service.Service { return m.svc }

func (m *Module) RegisterRoutes(ctx *apphttp.RouterContext) {
	m.handler.RegisterAdminRoutes(ctx.Admin.Group("/activity"))
}

var _ apphttp.Module = (*Module)(nil)
