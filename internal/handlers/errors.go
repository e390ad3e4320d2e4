package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/bahadricoz/shift/internal/apperrors"
	"github.com/gin-gonic/gin"
)

// respondWithError maps service errors onto HTTP status codes. Rule
// violations carry their machine-readable reason so entry forms can react
// per rule.
func respondWithError(c *gin.Context, logger *slog.Logger, err error) {
	var violation *apperrors.RuleViolation
	if errors.As(err, &violation) {
		logger.Warn("Rule violation", slog.String("reason", string(violation.Reason)), slog.String("error", err.Error()))
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": violation.Detail, "reason": string(violation.Reason)})
		return
	}

	switch {
	case errors.Is(err, apperrors.ErrForbidden):
		logger.Warn("Forbidden", slog.String("error", err.Error()))
		c.JSON(http.StatusForbidden, gin.H{"error": "insufficient access"})
	case errors.Is(err, apperrors.ErrNotFound):
		logger.Warn("Not found", slog.String("error", err.Error()))
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, apperrors.ErrConflict):
		logger.Warn("Conflict", slog.String("error", err.Error()))
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	case errors.Is(err, apperrors.ErrValidation):
		logger.Warn("Validation failed", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, apperrors.ErrStorage):
		logger.Error("Storage failure", slog.String("error", err.Error()))
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "storage unavailable"})
	default:
		logger.Error("Unhandled error", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
	}
}
