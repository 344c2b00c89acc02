package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/google/uuid"

	"souvenir-shop-backend/internal/domains/order/model"
	"souvenir-shop-backend/internal/domains/order/service"
	"souvenir-shop-backend/internal/shared/middleware"
	"souvenir-shop-backend/internal/shared/response"
	"souvenir-shop-backend/pkg/logger"
)

// Handler exposes checkout and order history. All routes require auth.
type Handler struct {
	service service.ServiceInterface
}

func NewHandler(service service.ServiceInterface) *Handler {
	return &Handler{service: service}
}

// Checkout - POST /v1/orders/checkout
func (h *Handler) Checkout(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		response.Unauthorized(c, "authentication required")
		return
	}

	var req model.CheckoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request body")
		return
	}

	result, err := h.service.Checkout(c.Request.Context(), userID, &req)
	if err != nil {
		switch {
		case errors.Is(err, model.ErrCartEmpty):
			response.BadRequest(c, "cart is empty")
		case errors.Is(err, model.ErrInsufficientStock):
			response.Conflict(c, "insufficient stock")
		case errors.Is(err, model.ErrProductInactive):
			response.Conflict(c, "a product in the cart is no longer available")
		case isValidationError(err):
			response.BadRequest(c, err.Error())
		default:
			logger.Error("checkout failed", err)
			response.InternalServerError(c, "checkout failed")
		}
		return
	}

	response.Success(c, http.StatusCreated, result)
}

// ListOrders - GET /v1/orders
func (h *Handler) ListOrders(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		response.Unauthorized(c, "authentication required")
		return
	}

	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))

	orders, total, err := h.service.ListOrders(c.Request.Context(), userID, page, limit)
	if err != nil {
		logger.Error("list orders failed", err)
		response.InternalServerError(c, "failed to list orders")
		return
	}

	response.SuccessWithMeta(c, http.StatusOK, orders, response.NewMeta(page, limit, total))
}

// GetOrder - GET /v1/orders/:id
func (h *Handler) GetOrder(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		response.Unauthorized(c, "authentication required")
		return
	}

	orderID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "invalid order id")
		return
	}

	detail, err := h.service.GetOrder(c.Request.Context(), orderID, userID)
	if err != nil {
		if errors.Is(err, model.ErrOrderNotFound) {
			response.NotFound(c, "order not found")
			return
		}
		logger.Error("get order failed", err)
		response.InternalServerError(c, "failed to get order")
		return
	}

	response.Success(c, http.StatusOK, detail)
}

func isValidationError(err error) bool {
	var vErrs validation.Errors
	return errors.As(err, &vErrs)
}
