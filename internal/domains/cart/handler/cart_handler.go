package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/google/uuid"

	"souvenir-shop-backend/internal/domains/cart/model"
	"souvenir-shop-backend/internal/domains/cart/service"
	catalogModel "souvenir-shop-backend/internal/domains/catalog/model"
	"souvenir-shop-backend/internal/shared/middleware"
	"souvenir-shop-backend/internal/shared/response"
	"souvenir-shop-backend/pkg/logger"
)

// Handler exposes the cart endpoints. All routes require auth.
type Handler struct {
	service service.ServiceInterface
}

func NewHandler(service service.ServiceInterface) *Handler {
	return &Handler{service: service}
}

// GetCart - GET /v1/cart
func (h *Handler) GetCart(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		response.Unauthorized(c, "authentication required")
		return
	}

	cart, err := h.service.GetCart(c.Request.Context(), userID, middleware.GetAudienceTag(c))
	if err != nil {
		logger.Error("get cart failed", err)
		response.InternalServerError(c, "failed to get cart")
		return
	}

	response.Success(c, http.StatusOK, cart)
}

// AddItem - POST /v1/cart/items
func (h *Handler) AddItem(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		response.Unauthorized(c, "authentication required")
		return
	}

	var req model.AddItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request body")
		return
	}

	if err := h.service.AddItem(c.Request.Context(), userID, &req); err != nil {
		switch {
		case errors.Is(err, catalogModel.ErrProductNotFound):
			response.NotFound(c, "product not found")
		case errors.Is(err, model.ErrProductUnavailable):
			response.Conflict(c, "product is not available")
		case errors.Is(err, model.ErrInsufficientStock):
			response.Conflict(c, "insufficient stock")
		case isValidationError(err):
			response.BadRequest(c, err.Error())
		default:
			logger.Error("add cart item failed", err)
			response.InternalServerError(c, "failed to add item")
		}
		return
	}

	response.Success(c, http.StatusCreated, gin.H{"product_id": req.ProductID, "quantity": req.Quantity})
}

// UpdateItem - PUT /v1/cart/items/:id
func (h *Handler) UpdateItem(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		response.Unauthorized(c, "authentication required")
		return
	}

	itemID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "invalid item id")
		return
	}

	var req model.UpdateItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request body")
		return
	}

	if err := h.service.UpdateItemQuantity(c.Request.Context(), userID, itemID, &req); err != nil {
		switch {
		case errors.Is(err, model.ErrCartItemNotFound):
			response.NotFound(c, "cart item not found")
		case isValidationError(err):
			response.BadRequest(c, err.Error())
		default:
			logger.Error("update cart item failed", err)
			response.InternalServerError(c, "failed to update item")
		}
		return
	}

	response.Success(c, http.StatusOK, gin.H{"item_id": itemID, "quantity": req.Quantity})
}

// RemoveItem - DELETE /v1/cart/items/:id
func (h *Handler) RemoveItem(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		response.Unauthorized(c, "authentication required")
		return
	}

	itemID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "invalid item id")
		return
	}

	if err := h.service.RemoveItem(c.Request.Context(), userID, itemID); err != nil {
		if errors.Is(err, model.ErrCartItemNotFound) {
			response.NotFound(c, "cart item not found")
			return
		}
		logger.Error("remove cart item failed", err)
		response.InternalServerError(c, "failed to remove item")
		return
	}

	response.Success(c, http.StatusOK, gin.H{"item_id": itemID})
}

// ClearCart - DELETE /v1/cart
func (h *Handler) ClearCart(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		response.Unauthorized(c, "authentication required")
		return
	}

	if err := h.service.ClearCart(c.Request.Context(), userID); err != nil {
		logger.Error("clear cart failed", err)
		response.InternalServerError(c, "failed to clear cart")
		return
	}

	response.Success(c, http.StatusOK, gin.H{"cleared": true})
}

func isValidationError(err error) bool {
	var vErrs validation.Errors
	return errors.As(err, &vErrs)
}
