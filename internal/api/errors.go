package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/vsuet/accounting/internal/httputil"
	"github.com/vsuet/accounting/internal/metrics"
	"github.com/vsuet/accounting/internal/models"
)

// Error code constants for standardized API responses.
const (
	ErrCodeInvalidRequest   = "invalid_request"
	ErrCodeValidationError  = "validation_error"
	ErrCodeNotFound         = "not_found"
	ErrCodeConflict         = "conflict"
	ErrCodeInvalidReference = "invalid_reference"
	ErrCodeArchiveConflict  = "archive_conflict"
	ErrCodeUnavailable      = "unavailable"
	ErrCodeInternalError    = "internal_error"
)

// respondError writes a standardized JSON error response, pulling the request
// ID from the Gin context (set by the request ID middleware).
func respondError(c *gin.Context, status int, code, message string) {
	metrics.ErrorsTotal.WithLabelValues(code).Inc()
	httputil.RespondError(c, status, code, message)
}

// respondServiceError maps a service error onto its HTTP status. Errors
// without a mapping are logged and reported as 500.
func respondServiceError(c *gin.Context, log *logrus.Logger, err error, op string) {
	switch {
	case errors.Is(err, models.ErrNotFound):
		respondError(c, http.StatusNotFound, ErrCodeNotFound, err.Error())
	case errors.Is(err, models.ErrMissingField), errors.Is(err, models.ErrInvalidValue):
		respondError(c, http.StatusBadRequest, ErrCodeValidationError, err.Error())
	case errors.Is(err, models.ErrDuplicateKey):
		respondError(c, http.StatusConflict, ErrCodeConflict, "a record with the same unique value already exists")
	case errors.Is(err, models.ErrInvalidReference):
		respondError(c, http.StatusUnprocessableEntity, ErrCodeInvalidReference, "referenced record does not exist")
	case errors.Is(err, models.ErrArchiveConflict):
		respondError(c, http.StatusConflict, ErrCodeArchiveConflict, "concurrent archive run; nothing was moved, retry")
	case errors.Is(err, models.ErrStoreUnavailable):
		log.WithError(err).WithField("op", op).Warn("store unavailable")
		respondError(c, http.StatusServiceUnavailable, ErrCodeUnavailable, "database unavailable")
	default:
		log.WithError(err).Error(op)
		respondError(c, http.StatusInternalServerError, ErrCodeInternalError, "internal server error")
	}
}
