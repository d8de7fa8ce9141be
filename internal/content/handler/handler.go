package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"rentcar-backend/internal/content/service"
	"rentcar-backend/internal/content/transport"
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

// RegisterPublicRoutes mounts the published-page lookup.
func (h *Handler) RegisterPublicRoutes(rg *gin.RouterGroup) {
	rg.GET("/pages/:slug", h.GetPublicPage)
}

// RegisterAdminRoutes mounts page management.
func (h *Handler) RegisterAdminRoutes(rg *gin.RouterGroup) {
	rg.GET("", h.ListPages)
	rg.POST("", h.CreatePage)
	rg.GET("/:id", h.GetPage)
	rg.PUT("/:id", h.UpdatePage)
	rg.DELETE("/:id", h.DeletePage)
}

func (h *Handler) GetPublicPage(c *gin.Context) {
	page, err := h.svc.GetPublicPage(c.Request.Context(), c.Param("slug"))
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, transport.ToPublicPageResponse(page))
}

func (h *Handler) ListPages(c *gin.Context) {
	pages, err := h.svc.ListPages(c.Request.Context())
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, transport.ToPageResponses(pages))
}

func (h *Handler) GetPage(c *gin.Context) {
	id, ok := h.pageID(c)
	if !ok {
		return
	}

	page, err := h.svc.GetPage(c.Request.Context(), id)
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, transport.ToPageResponse(page))
}

func (h *Handler) CreatePage(c *gin.Context) {
	identity := httpkit.MustGetIdentity(c)
	if identity == nil {
		return
	}

	req, ok := h.bindPage(c)
	if !ok {
		return
	}

	page, err := h.svc.CreatePage(c.Request.Context(), identity.UserID(), req.ToParams())
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.JSON(c, http.StatusCreated, transport.ToPageResponse(page))
}

func (h *Handler) UpdatePage(c *gin.Context) {
	identity := httpkit.MustGetIdentity(c)
	if identity == nil {
		return
	}

	id, ok := h.pageID(c)
	if !ok {
		return
	}

	req, ok := h.bindPage(c)
	if !ok {
		return
	}

	page, err := h.svc.UpdatePage(c.Request.Context(), identity.UserID(), id, req.ToParams())
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, transport.ToPageResponse(page))
}

func (h *Handler) DeletePage(c *gin.Context) {
	identity := httpkit.MustGetIdentity(c)
	if identity == nil {
		return
	}

	id, ok := h.pageID(c)
	if !ok {
		return
	}

	if err := h.svc.DeletePage(c.Request.Context(), identity.UserID(), id); httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, gin.H{"deleted": true})
}

func (h *Handler) bindPage(c *gin.Context) (transport.PageRequest, bool) {
	var req transport.PageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidRequest, nil)
		return req, false
	}
	if err := h.validate.Struct(req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgValidationFailed, err.Error())
		return req, false
	}
	return req, true
}

func (h *Handler) pageID(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httpkit.Error(c, http.StatusBadRequest, "Invalid page ID", nil)
		return uuid.Nil, false
	}
	return id, true
}
