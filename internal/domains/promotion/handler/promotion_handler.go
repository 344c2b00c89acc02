package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/google/uuid"

	"souvenir-shop-backend/internal/domains/promotion/model"
	"souvenir-shop-backend/internal/domains/promotion/service"
	"souvenir-shop-backend/internal/shared/middleware"
	"souvenir-shop-backend/internal/shared/response"
	"souvenir-shop-backend/pkg/logger"
)

// Handler exposes promotion endpoints: a public active listing and the
// admin CRUD surface.
type Handler struct {
	service service.ServiceInterface
}

func NewHandler(service service.ServiceInterface) *Handler {
	return &Handler{service: service}
}

// ListActive - GET /v1/promotions
// Returns promotions visible to the caller's audience, ordered by
// priority. Anonymous callers see only ALL-audience promotions.
func (h *Handler) ListActive(c *gin.Context) {
	audienceTag := middleware.GetAudienceTag(c)

	promos, err := h.service.ListActivePromotions(c.Request.Context(), audienceTag)
	if err != nil {
		logger.Error("list active promotions failed", err)
		response.InternalServerError(c, "failed to list promotions")
		return
	}

	response.Success(c, http.StatusOK, promos)
}

// Create - POST /v1/admin/promotions
func (h *Handler) Create(c *gin.Context) {
	var req model.CreatePromotionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request body")
		return
	}

	promo, err := h.service.CreatePromotion(c.Request.Context(), &req)
	if err != nil {
		if isValidationError(err) {
			response.BadRequest(c, err.Error())
			return
		}
		logger.Error("create promotion failed", err)
		response.InternalServerError(c, "failed to create promotion")
		return
	}

	response.Success(c, http.StatusCreated, promo.ToResponse())
}

// Get - GET /v1/admin/promotions/:id
func (h *Handler) Get(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "invalid promotion id")
		return
	}

	promo, err := h.service.GetPromotionByID(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, model.ErrPromotionNotFound) {
			response.NotFound(c, "promotion not found")
			return
		}
		logger.Error("get promotion failed", err)
		response.InternalServerError(c, "failed to get promotion")
		return
	}

	response.Success(c, http.StatusOK, promo.ToResponse())
}

// List - GET /v1/admin/promotions
func (h *Handler) List(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))

	promos, total, err := h.service.ListPromotions(c.Request.Context(), page, limit)
	if err != nil {
		logger.Error("list promotions failed", err)
		response.InternalServerError(c, "failed to list promotions")
		return
	}

	responses := make([]*model.PromotionResponse, len(promos))
	for i, p := range promos {
		responses[i] = p.ToResponse()
	}

	response.SuccessWithMeta(c, http.StatusOK, responses, response.NewMeta(page, limit, total))
}

// Update - PUT /v1/admin/promotions/:id
func (h *Handler) Update(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "invalid promotion id")
		return
	}

	var req model.UpdatePromotionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request body")
		return
	}

	promo, err := h.service.UpdatePromotion(c.Request.Context(), id, &req)
	if err != nil {
		switch {
		case errors.Is(err, model.ErrPromotionNotFound):
			response.NotFound(c, "promotion not found")
		case isValidationError(err):
			response.BadRequest(c, err.Error())
		default:
			logger.Error("update promotion failed", err)
			response.InternalServerError(c, "failed to update promotion")
		}
		return
	}

	response.Success(c, http.StatusOK, promo.ToResponse())
}

// UpdateStatus - PATCH /v1/admin/promotions/:id/status
func (h *Handler) UpdateStatus(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "invalid promotion id")
		return
	}

	var req struct {
		IsActive *bool `json:"is_active"`
	}
	if err := c.ShouldBindJSON(&req); err != nil || req.IsActive == nil {
		response.BadRequest(c, "is_active is required")
		return
	}

	if err := h.service.UpdatePromotionStatus(c.Request.Context(), id, *req.IsActive); err != nil {
		if errors.Is(err, model.ErrPromotionNotFound) {
			response.NotFound(c, "promotion not found")
			return
		}
		logger.Error("update promotion status failed", err)
		response.InternalServerError(c, "failed to update promotion status")
		return
	}

	response.Success(c, http.StatusOK, gin.H{"id": id, "is_active": *req.IsActive})
}

// Delete - DELETE /v1/admin/promotions/:id
func (h *Handler) Delete(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "invalid promotion id")
		return
	}

	if err := h.service.DeletePromotion(c.Request.Context(), id); err != nil {
		if errors.Is(err, model.ErrPromotionNotFound) {
			response.NotFound(c, "promotion not found")
			return
		}
		logger.Error("delete promotion failed", err)
		response.InternalServerError(c, "failed to delete promotion")
		return
	}

	response.Success(c, http.StatusOK, gin.H{"id": id})
}

func isValidationError(err error) bool {
	switch {
	case errors.Is(err, model.ErrInvalidType),
		errors.Is(err, model.ErrInvalidTargetType),
		errors.Is(err, model.ErrInvalidValue),
		errors.Is(err, model.ErrPercentageOutOfRange),
		errors.Is(err, model.ErrTargetIDRequired),
		errors.Is(err, model.ErrInvalidWindow):
		return true
	}
	var vErrs validation.Errors
	return errors.As(err, &vErrs)
}
