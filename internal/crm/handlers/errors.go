package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	errs "github.com/velora/crm/internal/crm/errors"
	"go.uber.org/zap"
)

// errorResponse is the uniform error body. Fields carries one entry per
// invalid input field so a form can render per-field messages.
type errorResponse struct {
	Error  string            `json:"error"`
	Fields []errs.FieldError `json:"fields,omitempty"`
}

// writeServiceError maps domain errors to HTTP statuses. Anything
// unrecognized collapses to a generic message; storage details never leak to
// the caller.
func writeServiceError(c *gin.Context, logger *zap.Logger, err error) {
	var ve *errs.ValidationError
	switch {
	case errors.As(err, &ve):
		c.JSON(http.StatusBadRequest, errorResponse{Error: "validation failed", Fields: ve.Fields})
	case errors.Is(err, errs.ErrNotFound):
		c.JSON(http.StatusNotFound, errorResponse{Error: "not found"})
	case errors.Is(err, errs.ErrDuplicate):
		c.JSON(http.StatusConflict, errorResponse{Error: "duplicate value"})
	case errors.Is(err, errs.ErrInvalidInput):
		c.JSON(http.StatusBadRequest, errorResponse{Error: err.Error()})
	case errors.Is(err, errs.ErrUnauthorized):
		c.JSON(http.StatusUnauthorized, errorResponse{Error: "unauthorized"})
	default:
		logger.Error("Internal server error", zap.Error(err))
		c.JSON(http.StatusInternalServerError, errorResponse{Error: "operation failed"})
	}
}
