package handlers

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/JuanseMastrangelo/asset-movements-console/internal/apperrors"
	"github.com/JuanseMastrangelo/asset-movements-console/internal/middleware"
	"github.com/JuanseMastrangelo/asset-movements-console/internal/utils/validation"
	"github.com/gin-gonic/gin"
)

// statusClientClosedRequest is reported when the caller went away mid-request.
const statusClientClosedRequest = 499

// ErrorResponse is the body of every failed request. Fields carries
// per-field validation messages.
type ErrorResponse struct {
	Error  string            `json:"error"`
	Fields map[string]string `json:"fields,omitempty"`
}

// respondError maps a service error onto an HTTP status. action names what
// failed for the generic 500 message.
func respondError(c *gin.Context, err error, action string) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context()).With(slog.String("error", err.Error()))
	var fieldErr *validation.FieldError

	switch {
	case errors.Is(err, apperrors.ErrUnauthorized):
		logger.Info("Backend rejected the session")
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Session expired, please log in again"})
	case errors.As(err, &fieldErr):
		logger.Warn("Validation failed")
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Validation failed", Fields: fieldErr.Fields})
	case errors.Is(err, apperrors.ErrValidation):
		logger.Warn("Validation failed")
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
	case errors.Is(err, apperrors.ErrNotFound):
		logger.Warn("Resource not found")
		c.JSON(http.StatusNotFound, ErrorResponse{Error: err.Error()})
	case errors.Is(err, apperrors.ErrWizardClosed):
		logger.Info("Wizard was discarded")
		c.JSON(http.StatusGone, ErrorResponse{Error: err.Error()})
	case errors.Is(err, apperrors.ErrStepOutOfOrder),
		errors.Is(err, apperrors.ErrActionInFlight),
		errors.Is(err, apperrors.ErrSuperseded),
		errors.Is(err, apperrors.ErrDuplicate):
		logger.Warn("Request conflicts with wizard state")
		c.JSON(http.StatusConflict, ErrorResponse{Error: err.Error()})
	case errors.Is(err, apperrors.ErrBusinessRule):
		logger.Warn("Business rule violated")
		c.JSON(http.StatusUnprocessableEntity, ErrorResponse{Error: err.Error()})
	case errors.Is(err, apperrors.ErrReferenceUnavailable), errors.Is(err, apperrors.ErrNetwork):
		logger.Error("Backend request failed")
		c.JSON(http.StatusBadGateway, ErrorResponse{Error: err.Error()})
	case errors.Is(err, context.Canceled):
		logger.Info("Request cancelled by client")
		c.JSON(statusClientClosedRequest, ErrorResponse{Error: "request cancelled"})
	case errors.Is(err, context.DeadlineExceeded):
		logger.Error("Backend request timed out")
		c.JSON(http.StatusGatewayTimeout, ErrorResponse{Error: "backend request timed out"})
	default:
		logger.Error("Failed to " + action)
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to " + action})
	}
}

// respondBindError answers a request that did not bind.
func respondBindError(c *gin.Context, err error) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	logger.Warn("Failed to bind request", slog.String("error", err.Error()))
	if fields := validation.FieldErrors(err); len(fields) > 0 {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request", Fields: fields})
		return
	}
	c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request format: " + err.Error()})
}

// sessionID returns the console session of the request or answers 401.
func sessionID(c *gin.Context) (string, bool) {
	id, ok := middleware.GetSessionIDFromContext(c)
	if !ok {
		middleware.GetLoggerFromCtx(c.Request.Context()).Error("Session ID not found in context")
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return "", false
	}
	return id, true
}
