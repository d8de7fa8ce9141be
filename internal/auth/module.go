// Package auth wires staff authentication and account management.
package auth

import (
	"github.com/jackc/pgx/v5/pgxpool"

	"rentcar-backend/internal/auth/handler"
	"rentcar-backend/internal/auth/repository"
	"rentcar-backend/internal/auth/service"
	apphttp "rentcar-backend/internal/http"
	"rentcar-backend/platform/logger"
	"rentcar-backend/platform/validator"
)

type Module struct {
	svc     *service.Service
	handler *handler.Handler
}

func NewModule(pool *pgxpool.Pool, cfg service.Config, val *validator.Validator, log *logger.Logger) *Module {
	repo := repository.New(pool)
	svc := service.New(repo, cfg, log)

	return &Module{
		svc:     svc,
		handler: handler.NewHandler(svc, val),
	}
}

func (m *Module) Name() string { return "auth" }

// Service exposes the auth service for seeding the first admin account.
func (m *Module) Service() *service.Service { return m.svc }

func (m *Module) RegisterRoutes(ctx *apphttp.RouterContext) {
	m.handler.RegisterPublicRoutes(ctx.V1, ctx.AuthRateLimiter)
	m.handler.RegisterProtectedRoutes(ctx.Protected)
	m.handler.RegisterAdminRoutes(ctx.Admin)
}

var _ apphttp.Module = (*Module)(nil)
