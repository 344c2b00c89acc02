package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/google/uuid"

	"souvenir-shop-backend/internal/domains/catalog/model"
	"souvenir-shop-backend/internal/domains/catalog/service"
	"souvenir-shop-backend/internal/shared/response"
	"souvenir-shop-backend/pkg/logger"
)

// AdminHandler exposes the catalog write surface, mounted behind the
// admin middleware.
type AdminHandler struct {
	service service.ServiceInterface
}

func NewAdminHandler(service service.ServiceInterface) *AdminHandler {
	return &AdminHandler{service: service}
}

// CreateProduct - POST /v1/admin/products
func (h *AdminHandler) CreateProduct(c *gin.Context) {
	var req model.CreateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request body")
		return
	}

	product, err := h.service.CreateProduct(c.Request.Context(), &req)
	if err != nil {
		switch {
		case errors.Is(err, model.ErrCategoryNotFound):
			response.BadRequest(c, "category not found")
		case isValidationError(err):
			response.BadRequest(c, err.Error())
		default:
			logger.Error("create product failed", err)
			response.InternalServerError(c, "failed to create product")
		}
		return
	}

	response.Success(c, http.StatusCreated, product)
}

// UpdateProduct - PUT /v1/admin/products/:id
func (h *AdminHandler) UpdateProduct(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "invalid product id")
		return
	}

	var req model.UpdateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request body")
		return
	}

	product, err := h.service.UpdateProduct(c.Request.Context(), id, &req)
	if err != nil {
		switch {
		case errors.Is(err, model.ErrProductNotFound):
			response.NotFound(c, "product not found")
		case errors.Is(err, model.ErrCategoryNotFound):
			response.BadRequest(c, "category not found")
		case isValidationError(err):
			response.BadRequest(c, err.Error())
		default:
			logger.Error("update product failed", err)
			response.InternalServerError(c, "failed to update product")
		}
		return
	}

	response.Success(c, http.StatusOK, product)
}

// DeleteProduct - DELETE /v1/admin/products/:id
func (h *AdminHandler) DeleteProduct(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "invalid product id")
		return
	}

	if err := h.service.DeleteProduct(c.Request.Context(), id); err != nil {
		if errors.Is(err, model.ErrProductNotFound) {
			response.NotFound(c, "product not found")
			return
		}
		logger.Error("delete product failed", err)
		response.InternalServerError(c, "failed to delete product")
		return
	}

	response.Success(c, http.StatusOK, gin.H{"id": id})
}

func isValidationError(err error) bool {
	var vErrs validation.Errors
	return errors.As(err, &vErrs)
}

// CreateCategory - POST /v1/admin/categories
func (h *AdminHandler) CreateCategory(c *gin.Context) {
	var req model.CreateCategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request body")
		return
	}

	category, err := h.service.CreateCategory(c.Request.Context(), &req)
	if err != nil {
		if isValidationError(err) {
			response.BadRequest(c, err.Error())
			return
		}
		logger.Error("create category failed", err)
		response.InternalServerError(c, "failed to create category")
		return
	}

	response.Success(c, http.StatusCreated, category)
}

// DeleteCategory - DELETE /v1/admin/categories/:id
func (h *AdminHandler) DeleteCategory(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "invalid category id")
		return
	}

	if err := h.service.DeleteCategory(c.Request.Context(), id); err != nil {
		switch {
		case errors.Is(err, model.ErrCategoryNotFound):
			response.NotFound(c, "category not found")
		case errors.Is(err, model.ErrCategoryInUse):
			response.Conflict(c, "category still has products")
		default:
			logger.Error("delete category failed", err)
			response.InternalServerError(c, "failed to delete category")
		}
		return
	}

	response.Success(c, http.StatusOK, gin.H{"id": id})
}
