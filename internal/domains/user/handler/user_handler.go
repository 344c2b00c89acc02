package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	validation "github.com/go-ozzo/ozzo-validation/v4"

	"souvenir-shop-backend/internal/domains/user/model"
	"souvenir-shop-backend/internal/domains/user/service"
	"souvenir-shop-backend/internal/shared/middleware"
	"souvenir-shop-backend/internal/shared/response"
	"souvenir-shop-backend/pkg/logger"
)

// Handler exposes registration, authentication and profile endpoints.
type Handler struct {
	service service.ServiceInterface
}

func NewHandler(service service.ServiceInterface) *Handler {
	return &Handler{service: service}
}

// Register - POST /v1/auth/register
func (h *Handler) Register(c *gin.Context) {
	var req model.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request body")
		return
	}

	auth, err := h.service.Register(c.Request.Context(), &req)
	if err != nil {
		switch {
		case errors.Is(err, model.ErrEmailTaken):
			response.Conflict(c, "email is already registered")
		case errors.Is(err, model.ErrInvalidCampus), isValidationError(err):
			response.BadRequest(c, err.Error())
		default:
			logger.Error("register failed", err)
			response.InternalServerError(c, "registration failed")
		}
		return
	}

	response.Success(c, http.StatusCreated, auth)
}

// Login - POST /v1/auth/login
func (h *Handler) Login(c *gin.Context) {
	var req model.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request body")
		return
	}

	auth, err := h.service.Login(c.Request.Context(), &req)
	if err != nil {
		switch {
		case errors.Is(err, model.ErrInvalidCredentials):
			response.Unauthorized(c, "invalid email or password")
		case isValidationError(err):
			response.BadRequest(c, err.Error())
		default:
			logger.Error("login failed", err)
			response.InternalServerError(c, "login failed")
		}
		return
	}

	response.Success(c, http.StatusOK, auth)
}

// Refresh - POST /v1/auth/refresh
func (h *Handler) Refresh(c *gin.Context) {
	var req model.RefreshRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request body")
		return
	}

	auth, err := h.service.Refresh(c.Request.Context(), &req)
	if err != nil {
		if errors.Is(err, model.ErrInvalidCredentials) {
			response.Unauthorized(c, "invalid refresh token")
			return
		}
		if isValidationError(err) {
			response.BadRequest(c, err.Error())
			return
		}
		logger.Error("token refresh failed", err)
		response.InternalServerError(c, "token refresh failed")
		return
	}

	response.Success(c, http.StatusOK, auth)
}

// GetProfile - GET /v1/users/me
func (h *Handler) GetProfile(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		response.Unauthorized(c, "authentication required")
		return
	}

	profile, err := h.service.GetProfile(c.Request.Context(), userID)
	if err != nil {
		if errors.Is(err, model.ErrUserNotFound) {
			response.NotFound(c, "user not found")
			return
		}
		logger.Error("get profile failed", err)
		response.InternalServerError(c, "failed to get profile")
		return
	}

	response.Success(c, http.StatusOK, profile)
}

// UpdateProfile - PUT /v1/users/me
func (h *Handler) UpdateProfile(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		response.Unauthorized(c, "authentication required")
		return
	}

	var req model.UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request body")
		return
	}

	profile, err := h.service.UpdateProfile(c.Request.Context(), userID, &req)
	if err != nil {
		switch {
		case errors.Is(err, model.ErrUserNotFound):
			response.NotFound(c, "user not found")
		case errors.Is(err, model.ErrInvalidCampus), isValidationError(err):
			response.BadRequest(c, err.Error())
		default:
			logger.Error("update profile failed", err)
			response.InternalServerError(c, "failed to update profile")
		}
		return
	}

	response.Success(c, http.StatusOK, profile)
}

func isValidationError(err error) bool {
	var vErrs validation.Errors
	return errors.As(err, &vErrs)
}
