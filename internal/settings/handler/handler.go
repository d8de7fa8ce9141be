package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"rentcar-backend/internal/settings/service"
	"rentcar-backend/internal/settings/transport"
	"rentcar-backend/platform/httpkit"
	"rentcar-backend/platform/validator"
)

const (
	msgInvalidRequest   = "Invalid request payload"
	msgValidationFailed = "Validation failed"
)

type Handler struct {
	svc      *service.Service
	validate *validator.Validator
}

func NewHandler(svc *service.Service, validate *validator.Validator) *Handler {
	return &Handler{svc: svc, validate: validate}
}

// RegisterAdminRoutes mounts settings management. Only admins can change
// site-wide settings.
func (h *Handler) RegisterAdminRoutes(rg *gin.RouterGroup) {
	rg.GET("", h.List)
	rg.GET("/:key", h.Get)
	rg.PUT("/:key", h.Upsert)
}

func (h *Handler) List(c *gin.Context) {
	settings, err := h.svc.List(c.Request.Context())
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, transport.ToSettingResponses(settings))
}

func (h *Handler) Get(c *gin.Context) {
	setting, err := h.svc.Get(c.Request.Context(), c.Param("key"))
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, transport.ToSettingResponse(setting))
}

func (h *Handler) Upsert(c *gin.Context) {
	identity := httpkit.MustGetIdentity(c)
	if identity == nil {
		return
	}

	var req transport.UpsertSettingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidRequest, nil)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgValidationFailed, err.Error())
		return
	}

	setting, err := h.svc.Upsert(c.Request.Context(), identity.UserID(), c.Param("key"), req.Value)
	if httpkit.HandleError(c, err) {
		return
	}

	httpkit.OK(c, transport.ToSettingResponse(setting))
}
