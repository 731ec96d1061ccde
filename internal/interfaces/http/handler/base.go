package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/stokku/backend/internal/domain/shared"
	"github.com/stokku/backend/internal/infrastructure/logger"
	"github.com/stokku/backend/internal/interfaces/http/dto"
	"github.com/stokku/backend/internal/interfaces/http/middleware"
	"go.uber.org/zap"
)

// BaseHandler provides common handler utilities
type BaseHandler struct{}

// getTenantID extracts the authenticated tenant ID
func getTenantID(c *gin.Context) (uuid.UUID, error) {
	tenantIDStr := middleware.GetTenantID(c)
	if tenantIDStr == "" {
		return uuid.Nil, errors.New("tenant ID not found in context")
	}
	return uuid.Parse(tenantIDStr)
}

// getUserID extracts the authenticated user ID
func getUserID(c *gin.Context) (uuid.UUID, error) {
	userIDStr := middleware.GetUserID(c)
	if userIDStr == "" {
		return uuid.Nil, errors.New("user ID not found in context")
	}
	return uuid.Parse(userIDStr)
}

// Success sends a 200 response
func (h *BaseHandler) Success(c *gin.Context, data any) {
	c.JSON(http.StatusOK, dto.NewSuccessResponse(data))
}

// Created sends a 201 response
func (h *BaseHandler) Created(c *gin.Context, data any) {
	c.JSON(http.StatusCreated, dto.NewSuccessResponse(data))
}

// NoContent sends a 204 response
func (h *BaseHandler) NoContent(c *gin.Context) {
	c.Status(http.StatusNoContent)
}

// Error sends an error response with an explicit status code
func (h *BaseHandler) Error(c *gin.Context, statusCode int, code, message string) {
	requestID := logger.GetRequestID(c.Request.Context())
	c.JSON(statusCode, dto.NewErrorResponseWithRequestID(code, message, requestID))
}

// BadRequest sends a 400 response
func (h *BaseHandler) BadRequest(c *gin.Context, message string) {
	h.Error(c, http.StatusBadRequest, dto.ErrCodeBadRequest, message)
}

// HandleBindingError sends a 400 response for a failed request binding, with
// per-field details when the failure came from validation tags.
func (h *BaseHandler) HandleBindingError(c *gin.Context, err error) {
	var validationErrors validator.ValidationErrors
	if errors.As(err, &validationErrors) {
		requestID := logger.GetRequestID(c.Request.Context())
		c.JSON(http.StatusBadRequest, middleware.FormatValidationErrors(validationErrors, requestID))
		return
	}
	h.BadRequest(c, "Malformed request body")
}

// Unauthorized sends a 401 response
func (h *BaseHandler) Unauthorized(c *gin.Context, message string) {
	h.Error(c, http.StatusUnauthorized, dto.ErrCodeUnauthorized, message)
}

// HandleError maps application and domain errors to HTTP responses.
// Unknown errors become opaque 500s; their details only go to the log.
func (h *BaseHandler) HandleError(c *gin.Context, err error) {
	var quotaErr *shared.QuotaExceededError
	if errors.As(err, &quotaErr) {
		h.Error(c, dto.GetHTTPStatus(dto.ErrCodeQuotaExceeded), dto.ErrCodeQuotaExceeded, quotaErr.Error())
		return
	}

	var domainErr *shared.DomainError
	if errors.As(err, &domainErr) {
		code := dto.MapDomainErrorCode(domainErr.Code)
		h.Error(c, dto.GetHTTPStatus(code), code, domainErr.Message)
		return
	}

	logger.L(c.Request.Context()).Error("Unhandled error in request", zap.Error(err))
	h.Error(c, http.StatusInternalServerError, dto.ErrCodeInternal, "Internal server error")
}
