package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"rentcar-backend/internal/catalog/service"
	"rentcar-backend/internal/catalog/transport"
	"rentcar-backend/platform/httpkit"
	"rentcar-backend/platform/validator"
)

const (
	msgInvalidRequest   = "invalid request"
	msgValidationFailed = "validation failed"
)

type Handler struct {
	svc      *service.Service
	validate *validator.Validator
}

func New(svc *service.Service, validate *validator.Validator) *Handler {
	return &Handler{svc: svc, validate: validate}
}

// RegisterPublicRoutes mounts the active-only public catalog endpoints.
func (h *Handler) RegisterPublicRoutes(rg *gin.RouterGroup) {
	rg.GET("/extras", h.ListPublicExtras)
	rg.GET("/insurance-plans", h.ListPublicInsurancePlans)
	rg.GET("/locations", h.ListPublicLocations)
}

// RegisterAdminRoutes mounts the back-office catalog endpoints.
func (h *Handler) RegisterAdminRoutes(rg *gin.RouterGroup) {
	rg.GET("/extras", h.ListExtras)
	rg.POST("/extras", h.CreateExtra)
	rg.PUT("/extras/:id", h.UpdateExtra)
	rg.DELETE("/extras/:id", h.DeleteExtra)

	rg.GET("/insurance-plans", h.ListInsurancePlans)
	rg.POST("/insurance-plans", h.CreateInsurancePlan)
	rg.PUT("/insurance-plans/:id", h.UpdateInsurancePlan)
	rg.DELETE("/insurance-plans/:id", h.DeleteInsurancePlan)

	rg.GET("/locations", h.ListLocations)
	rg.POST("/locations", h.CreateLocation)
	rg.PUT("/locations/:id", h.UpdateLocation)
	rg.DELETE("/locations/:id", h.DeleteLocation)
}

func (h *Handler) ListPublicExtras(c *gin.Context) {
	extras, err := h.svc.ListExtras(c.Request.Context(), true)
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, transport.ToExtraResponses(extras))
}

func (h *Handler) ListPublicInsurancePlans(c *gin.Context) {
	plans, err := h.svc.ListInsurancePlans(c.Request.Context(), true)
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, transport.ToInsurancePlanResponses(plans))
}

func (h *Handler) ListPublicLocations(c *gin.Context) {
	locations, err := h.svc.ListLocations(c.Request.Context(), true)
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, transport.ToLocationResponses(locations))
}

func (h *Handler) ListExtras(c *gin.Context) {
	extras, err := h.svc.ListExtras(c.Request.Context(), false)
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, transport.ToExtraResponses(extras))
}

func (h *Handler) CreateExtra(c *gin.Context) {
	var req transport.ExtraRequest
	if !h.bind(c, &req) {
		return
	}

	identity := httpkit.MustGetIdentity(c)
	if identity == nil {
		return
	}

	extra, err := h.svc.CreateExtra(c.Request.Context(), identity.UserID(), req.ToParams())
	if httpkit.HandleError(c, err) {
		return
	}

	httpkit.JSON(c, http.StatusCreated, transport.ToExtraResponse(extra))
}

func (h *Handler) UpdateExtra(c *gin.Context) {
	id, ok := h.parseID(c)
	if !ok {
		return
	}

	var req transport.ExtraRequest
	if !h.bind(c, &req) {
		return
	}

	identity := httpkit.MustGetIdentity(c)
	if identity == nil {
		return
	}

	extra, err := h.svc.UpdateExtra(c.Request.Context(), identity.UserID(), id, req.ToParams())
	if httpkit.HandleError(c, err) {
		return
	}

	httpkit.OK(c, transport.ToExtraResponse(extra))
}

func (h *Handler) DeleteExtra(c *gin.Context) {
	id, ok := h.parseID(c)
	if !ok {
		return
	}

	identity := httpkit.MustGetIdentity(c)
	if identity == nil {
		return
	}

	if err := h.svc.DeleteExtra(c.Request.Context(), identity.UserID(), id); httpkit.HandleError(c, err) {
		return
	}

	c.Status(http.StatusNoContent)
}

func (h *Handler) ListInsurancePlans(c *gin.Context) {
	plans, err := h.svc.ListInsurancePlans(c.Request.Context(), false)
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, transport.ToInsurancePlanResponses(plans))
}

func (h *Handler) CreateInsurancePlan(c *gin.Context) {
	var req transport.InsurancePlanRequest
	if !h.bind(c, &req) {
		return
	}

	identity := httpkit.MustGetIdentity(c)
	if identity == nil {
		return
	}

	plan, err := h.svc.CreateInsurancePlan(c.Request.Context(), identity.UserID(), req.ToParams())
	if httpkit.HandleError(c, err) {
		return
	}

	httpkit.JSON(c, http.StatusCreated, transport.ToInsurancePlanResponse(plan))
}

func (h *Handler) UpdateInsurancePlan(c *gin.Context) {
	id, ok := h.parseID(c)
	if !ok {
		return
	}

	var req transport.InsurancePlanRequest
	if !h.bind(c, &req) {
		return
	}

	identity := httpkit.MustGetIdentity(c)
	if identity == nil {
		return
	}

	plan, err := h.svc.UpdateInsurancePlan(c.Request.Context(), identity.UserID(), id, req.ToParams())
	if httpkit.HandleError(c, err) {
		return
	}

	httpkit.OK(c, transport.ToInsurancePlanResponse(plan))
}

func (h *Handler) DeleteInsurancePlan(c *gin.Context) {
	id, ok := h.parseID(c)
	if !ok {
		return
	}

	identity := httpkit.MustGetIdentity(c)
	if identity == nil {
		return
	}

	if err := h.svc.DeleteInsurancePlan(c.Request.Context(), identity.UserID(), id); httpkit.HandleError(c, err) {
		return
	}

	c.Status(http.StatusNoContent)
}

func (h *Handler) ListLocations(c *gin.Context) {
	locations, err := h.svc.ListLocations(c.Request.Context(), false)
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, transport.ToLocationResponses(locations))
}

func (h *Handler) CreateLocation(c *gin.Context) {
	var req transport.LocationRequest
	if !h.bind(c, &req) {
		return
	}

	identity := httpkit.MustGetIdentity(c)
	if identity == nil {
		return
	}

	location, err := h.svc.CreateLocation(c.Request.Context(), identity.UserID(), req.ToParams())
	if httpkit.HandleError(c, err) {
		return
	}

	httpkit.JSON(c, http.StatusCreated, transport.ToLocationResponse(location))
}

func (h *Handler) UpdateLocation(c *gin.Context) {
	id, ok := h.parseID(c)
	if !ok {
		return
	}

	var req transport.LocationRequest
	if !h.bind(c, &req) {
		return
	}

	identity := httpkit.MustGetIdentity(c)
	if identity == nil {
		return
	}

	location, err := h.svc.UpdateLocation(c.Request.Context(), identity.UserID(), id, req.ToParams())
	if httpkit.HandleError(c, err) {
		return
	}

	httpkit.OK(c, transport.ToLocationResponse(location))
}

func (h *Handler) DeleteLocation(c *gin.Context) {
	id, ok := h.parseID(c)
	if !ok {
		return
	}

	identity := httpkit.MustGetIdentity(c)
	if identity == nil {
		return
	}

	if err := h.svc.DeleteLocation(c.Request.Context(), identity.UserID(), id); httpkit.HandleError(c, err) {
		return
	}

	c.Status(http.StatusNoContent)
}

func (h *Handler) bind(c *gin.Context, req interface{}) bool {
	if err := c.ShouldBindJSON(req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidRequest, nil)
		return false
	}
	if err := h.validate.Struct(req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgValidationFailed, err.Error())
		return false
	}
	return true
}

func (h *Handler) parseID(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidRequest, nil)
		return uuid.Nil, false
	}
	return id, true
}
