package handler

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"rentcar-backend/internal/activitylog/service"
	"rentcar-backend/internal/activitylog/transport"
	"rentcar-backend/platform/httpkit"
)

type Handler struct {
	svc *service.Service
}

func NewHandler(svc *service.Service) *Handler {
	return &Handler{svc: svc}
}

// RegisterAdminRoutes mounts the activity trail listing.
func (h *Handler) RegisterAdminRoutes(rg *gin.RouterGroup) {
	rg.GET("", h.ListRecent)
}

func (h *Handler) ListRecent(c *gin.Context) {
	limit, _ := strconv.Atoi(c.Query("limit"))

	entries, err := h.svc.ListRecent(c.Request.Context(), limit)
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, transport.ToEntryResponses(entries))
}
