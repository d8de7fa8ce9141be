// Package fleet provides the fleet bounded context module: the public car
// catalog and the back-office car, photo, and availability management.
package fleet

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"rentcar-backend/internal/adapters/storage"
	"rentcar-backend/internal/fleet/handler"
	"rentcar-backend/internal/fleet/repository"
	"rentcar-backend/internal/fleet/service"
	apphttp "rentcar-backend/internal/http"
	"rentcar-backend/platform/logger"
	"rentcar-backend/platform/validator"
)

// Module is the fleet bounded context module implementing http.Module.
type Module struct {
	handler *handler.Handler
	service *service.Service
}

// NewModule creates and initializes the fleet module. The image store and
// activity recorder are optional; pass nil to disable uploads or auditing.
func NewModule(pool *pgxpool.Pool, prices service.PriceResolver, images storage.ImageStore, activity service.ActivityRecorder, val *validator.Validator, log *logger.Logger) *Module {
	repo := repository.New(pool)

	var presigner service.ImagePresigner
	if images != nil {
		presigner = storeAdapter{store: images}
	}

	svc := service.New(repo, prices, presigner, activity, log)
	h := handler.New(svc, val)

	return &Module{
		handler: h,
		service: svc,
	}
}

// Name returns the module identifier.
func (m *Module) Name() string {
	return "fleet"
}

// Service returns the fleet service. The booking module consumes it as its
// car provider.
func (m *Module) Service() *service.Service {
	return m.service
}

// RegisterRoutes mounts fleet routes on the provided router context.
func (m *Module) RegisterRoutes(ctx *apphttp.RouterContext) {
	m.handler.RegisterPublicRoutes(ctx.V1)
	m.handler.RegisterAdminRoutes(ctx.Protected.Group("/cars"))
}

// storeAdapter narrows the object storage interface to what the service needs.
type storeAdapter struct {
	store storage.ImageStore
}

func (a storeAdapter) GenerateUploadURL(ctx context.Context, folder, fileName, contentType string, sizeBytes int64) (*service.UploadTicket, error) {
	presigned, err := a.store.GenerateUploadURL(ctx, folder, fileName, contentType, sizeBytes)
	if err != nil {
		return nil, err
	}
	return &service.UploadTicket{
		URL:       presigned.URL,
		FileKey:   presigned.FileKey,
		ExpiresAt: presigned.ExpiresAt,
	}, nil
}

// Compile-time check that Module implements http.Module
var _ apphttp.Module = (*Module)(nil)
