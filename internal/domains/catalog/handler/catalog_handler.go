package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"souvenir-shop-backend/internal/domains/catalog/model"
	"souvenir-shop-backend/internal/domains/catalog/service"
	"souvenir-shop-backend/internal/shared/middleware"
	"souvenir-shop-backend/internal/shared/response"
	"souvenir-shop-backend/pkg/logger"
)

// Handler exposes the public catalog read endpoints. Prices in every
// response reflect the promotions visible to the caller's audience.
type Handler struct {
	service service.ServiceInterface
}

func NewHandler(service service.ServiceInterface) *Handler {
	return &Handler{service: service}
}

// ListProducts - GET /v1/products
// Query params: search, category, page, limit
func (h *Handler) ListProducts(c *gin.Context) {
	req := model.ListProductsRequest{
		Search: c.Query("search"),
		Page:   1,
		Limit:  20,
	}

	if categoryStr := c.Query("category"); categoryStr != "" {
		categoryID, err := uuid.Parse(categoryStr)
		if err != nil {
			response.BadRequest(c, "invalid category id")
			return
		}
		req.CategoryID = &categoryID
	}

	if pageStr := c.Query("page"); pageStr != "" {
		if p, err := strconv.Atoi(pageStr); err == nil && p > 0 {
			req.Page = p
		}
	}
	if limitStr := c.Query("limit"); limitStr != "" {
		if l, err := strconv.Atoi(limitStr); err == nil && l > 0 && l <= 100 {
			req.Limit = l
		}
	}

	products, total, err := h.service.ListProducts(c.Request.Context(), &req, middleware.GetAudienceTag(c))
	if err != nil {
		logger.Error("list products failed", err)
		response.InternalServerError(c, "failed to list products")
		return
	}

	response.SuccessWithMeta(c, http.StatusOK, products, response.NewMeta(req.Page, req.Limit, total))
}

// GetProduct - GET /v1/products/:id
func (h *Handler) GetProduct(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "invalid product id")
		return
	}

	product, err := h.service.GetProduct(c.Request.Context(), id, middleware.GetAudienceTag(c))
	if err != nil {
		if errors.Is(err, model.ErrProductNotFound) {
			response.NotFound(c, "product not found")
			return
		}
		logger.Error("get product failed", err)
		response.InternalServerError(c, "failed to get product")
		return
	}

	response.Success(c, http.StatusOK, product)
}

// ListCategories - GET /v1/categories
func (h *Handler) ListCategories(c *gin.Context) {
	categories, err := h.service.ListCategories(c.Request.Context())
	if err != nil {
		logger.Error("list categories failed", err)
		response.InternalServerError(c, "failed to list categories")
		return
	}

	response.Success(c, http.StatusOK, categories)
}
