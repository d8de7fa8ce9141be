// Package content wires editorial pages for the public site.
package content

import (
	"github.com/jackc/pgx/v5/pgxpool"

	"rentcar-backend/internal/content/handler"
	"rentcar-backend/internal/content/repository"
	"rentcar-backend/internal/content/service"
	apphttp "rentcar-backend/internal/http"
	"rentcar-backend/platform/validator"
)

type Module struct {
	handler *handler.Handler
}

func NewModule(pool *pgxpool.Pool, activity service.ActivityRecorder, val *validator.Validator) *Module {
	repo := repository.New(pool)
	svc := service.New(repo, activity)

	return &Module{handler: handler.NewHandler(svc, val)}
}

func (m *Module) Name() string { return "content" }

func (m *Module) RegisterRoutes(ctx *apphttp.RouterContext) {
	m.handler.RegisterPublicRoutes(ctx.V1)
	m.handler.RegisterAdminRoutes(ctx.Admin.Group("/pages"))
}

var _ apphttp.Module = (*Module)(nil)
