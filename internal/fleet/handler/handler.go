package handler

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"rentcar-backend/internal/fleet/repository"
	"rentcar-backend/internal/fleet/service"
	"rentcar-backend/internal/fleet/transport"
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

// RegisterPublicRoutes mounts the public catalog endpoints.
func (h *Handler) RegisterPublicRoutes(rg *gin.RouterGroup) {
	rg.GET("/cars", h.ListPublic)
	rg.GET("/cars/:slug", h.GetPublicBySlug)
	rg.GET("/cars/:slug/availability", h.CheckAvailability)
}

// RegisterAdminRoutes mounts the back-office fleet endpoints.
func (h *Handler) RegisterAdminRoutes(rg *gin.RouterGroup) {
	rg.GET("", h.List)
	rg.POST("", h.Create)
	rg.GET("/:id", h.GetByID)
	rg.PUT("/:id", h.Update)
	rg.PUT("/:id/status", h.UpdateStatus)
	rg.DELETE("/:id", h.Delete)

	rg.GET("/:id/images", h.ListImages)
	rg.POST("/:id/images/presign", h.PresignImage)
	rg.POST("/:id/images", h.AddImage)
	rg.DELETE("/:id/images/:imageId", h.DeleteImage)

	rg.GET("/:id/blocks", h.ListBlocks)
	rg.POST("/:id/blocks", h.CreateBlock)
	rg.DELETE("/:id/blocks/:blockId", h.DeleteBlock)
}

func (h *Handler) ListPublic(c *gin.Context) {
	filter := repository.ListFilter{
		Category:     c.Query("category"),
		Transmission: c.Query("transmission"),
		FuelType:     c.Query("fuel"),
		Search:       c.Query("q"),
	}

	cars, err := h.svc.ListPublicCars(c.Request.Context(), filter)
	if httpkit.HandleError(c, err) {
		return
	}

	out := make([]transport.CarResponse, 0, len(cars))
	for _, car := range cars {
		out = append(out, transport.ToPublicCarResponse(car))
	}
	httpkit.OK(c, out)
}

func (h *Handler) GetPublicBySlug(c *gin.Context) {
	detail, err := h.svc.GetPublicCarBySlug(c.Request.Context(), c.Param("slug"))
	if httpkit.HandleError(c, err) {
		return
	}

	httpkit.OK(c, transport.ToPublicCarDetailResponse(detail))
}

func (h *Handler) CheckAvailability(c *gin.Context) {
	from, err := time.Parse(time.RFC3339, c.Query("from"))
	if err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidRequest, nil)
		return
	}
	to, err := time.Parse(time.RFC3339, c.Query("to"))
	if err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidRequest, nil)
		return
	}

	available, err := h.svc.CheckAvailability(c.Request.Context(), c.Param("slug"), from, to)
	if httpkit.HandleError(c, err) {
		return
	}

	httpkit.OK(c, gin.H{"available": available})
}

func (h *Handler) List(c *gin.Context) {
	cars, err := h.svc.ListCars(c.Request.Context())
	if httpkit.HandleError(c, err) {
		return
	}

	out := make([]transport.CarResponse, 0, len(cars))
	for _, car := range cars {
		out = append(out, transport.ToCarResponse(car, nil))
	}
	httpkit.OK(c, out)
}

func (h *Handler) GetByID(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidRequest, nil)
		return
	}

	car, err := h.svc.GetCar(c.Request.Context(), id)
	if httpkit.HandleError(c, err) {
		return
	}

	httpkit.OK(c, transport.ToCarResponse(car, nil))
}

func (h *Handler) Create(c *gin.Context) {
	var req transport.CarRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidRequest, nil)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgValidationFailed, err.Error())
		return
	}

	identity := httpkit.MustGetIdentity(c)
	if identity == nil {
		return
	}

	car, err := h.svc.CreateCar(c.Request.Context(), identity.UserID(), req.ToParams())
	if httpkit.HandleError(c, err) {
		return
	}

	httpkit.JSON(c, http.StatusCreated, transport.ToCarResponse(car, nil))
}

func (h *Handler) Update(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidRequest, nil)
		return
	}

	var req transport.CarRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidRequest, nil)
		return
	}
	if req.Status == "" {
		req.Status = repository.StatusActive
	}
	if err := h.validate.Struct(req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgValidationFailed, err.Error())
		return
	}

	identity := httpkit.MustGetIdentity(c)
	if identity == nil {
		return
	}

	car, err := h.svc.UpdateCar(c.Request.Context(), identity.UserID(), id, req.ToParams())
	if httpkit.HandleError(c, err) {
		return
	}

	httpkit.OK(c, transport.ToCarResponse(car, nil))
}

func (h *Handler) UpdateStatus(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidRequest, nil)
		return
	}

	var req transport.UpdateCarStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidRequest, nil)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgValidationFailed, err.Error())
		return
	}

	identity := httpkit.MustGetIdentity(c)
	if identity == nil {
		return
	}

	if err := h.svc.UpdateStatus(c.Request.Context(), identity.UserID(), id, req.Status); httpkit.HandleError(c, err) {
		return
	}

	httpkit.OK(c, gin.H{"status": req.Status})
}

func (h *Handler) Delete(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidRequest, nil)
		return
	}

	identity := httpkit.MustGetIdentity(c)
	if identity == nil {
		return
	}

	if err := h.svc.DeleteCar(c.Request.Context(), identity.UserID(), id); httpkit.HandleError(c, err) {
		return
	}

	c.Status(http.StatusNoContent)
}

func (h *Handler) ListImages(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidRequest, nil)
		return
	}

	images, err := h.svc.ListImages(c.Request.Context(), id)
	if httpkit.HandleError(c, err) {
		return
	}

	httpkit.OK(c, transport.ToImageResponses(images))
}

func (h *Handler) PresignImage(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidRequest, nil)
		return
	}

	var req transport.PresignImageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidRequest, nil)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgValidationFailed, err.Error())
		return
	}

	ticket, err := h.svc.PresignImageUpload(c.Request.Context(), id, req.FileName, req.ContentType, req.SizeBytes)
	if httpkit.HandleError(c, err) {
		return
	}

	httpkit.OK(c, ticket)
}

func (h *Handler) AddImage(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidRequest, nil)
		return
	}

	var req transport.AddImageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidRequest, nil)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgValidationFailed, err.Error())
		return
	}

	identity := httpkit.MustGetIdentity(c)
	if identity == nil {
		return
	}

	imageID, err := h.svc.AddImage(c.Request.Context(), identity.UserID(), id, req.URL, req.AltText, req.SortOrder)
	if httpkit.HandleError(c, err) {
		return
	}

	httpkit.JSON(c, http.StatusCreated, gin.H{"id": imageID})
}

func (h *Handler) DeleteImage(c *gin.Context) {
	carID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidRequest, nil)
		return
	}
	imageID, err := uuid.Parse(c.Param("imageId"))
	if err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidRequest, nil)
		return
	}

	identity := httpkit.MustGetIdentity(c)
	if identity == nil {
		return
	}

	if err := h.svc.DeleteImage(c.Request.Context(), identity.UserID(), carID, imageID); httpkit.HandleError(c, err) {
		return
	}

	c.Status(http.StatusNoContent)
}

func (h *Handler) ListBlocks(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidRequest, nil)
		return
	}

	blocks, err := h.svc.ListBlocks(c.Request.Context(), id)
	if httpkit.HandleError(c, err) {
		return
	}

	httpkit.OK(c, transport.ToBlockResponses(blocks))
}

func (h *Handler) CreateBlock(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidRequest, nil)
		return
	}

	var req transport.CreateBlockRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidRequest, nil)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgValidationFailed, err.Error())
		return
	}

	identity := httpkit.MustGetIdentity(c)
	if identity == nil {
		return
	}

	blockID, err := h.svc.CreateBlock(c.Request.Context(), identity.UserID(), id, req.StartDate, req.EndDate, req.Reason, req.Note)
	if httpkit.HandleError(c, err) {
		return
	}

	httpkit.JSON(c, http.StatusCreated, gin.H{"id": blockID})
}

func (h *Handler) DeleteBlock(c *gin.Context) {
	carID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidRequest, nil)
		return
	}
	blockID, err := uuid.Parse(c.Param("blockId"))
	if err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidRequest, nil)
		return
	}

	identity := httpkit.MustGetIdentity(c)
	if identity == nil {
		return
	}

	if err := h.svc.DeleteBlock(c.Request.Context(), identity.UserID(), carID, blockID); httpkit.HandleError(c, err) {
		return
	}

	c.Status(http.StatusNoContent)
}
