package handlers

import (
	"errors"
	"net/http"

	"github.com/David2024patton/studio4-dance/internal/apperrors"
	"github.com/David2024patton/studio4-dance/internal/middleware"
	"github.com/gin-gonic/gin"
)

// ErrorResponse is the generic error envelope for handlers.
type ErrorResponse struct {
	Error string `json:"error"`
}

// respondError maps service-layer sentinel errors to HTTP statuses. Unknown
// errors become a 500 with a generic message; the detail stays in the log.
func respondError(c *gin.Context, err error, notFoundMsg string) {
	switch {
	case errors.Is(err, apperrors.ErrNotFound):
		c.JSON(http.StatusNotFound, ErrorResponse{Error: notFoundMsg})
	case errors.Is(err, apperrors.ErrValidation):
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
	case errors.Is(err, apperrors.ErrDuplicate), errors.Is(err, apperrors.ErrConflict):
		c.JSON(http.StatusConflict, ErrorResponse{Error: err.Error()})
	case errors.Is(err, apperrors.ErrForbidden):
		c.JSON(http.StatusForbidden, ErrorResponse{Error: "Forbidden"})
	case errors.Is(err, apperrors.ErrUnauthorized):
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
	default:
		middleware.GetLoggerFromCtx(c.Request.Context()).Error("Request failed", "error", err)
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Internal server error"})
	}
}
