package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/campbellchri/clara-backend/internal/apperrors"
	"github.com/gin-gonic/gin"
)

// respondError maps a service error onto an HTTP status and a JSON error body.
// A therapist or patient from another practice gets the same 404 as an unknown ID.
func respondError(c *gin.Context, logger *slog.Logger, err error, fallback string) {
	var resErr *apperrors.ResolutionError
	var persistErr *apperrors.PersistenceError

	switch {
	case errors.As(err, &resErr):
		logger = logger.With(slog.String("entity", resErr.Entity), slog.String("resolution", string(resErr.Kind)))
		switch {
		case resErr.Kind == apperrors.ResolutionInactive:
			logger.Warn("Inactive entity referenced")
			c.JSON(http.StatusConflict, gin.H{"error": resErr.Error()})
		case resErr.Kind == apperrors.ResolutionTenantMismatch && resErr.Entity == "practice":
			// Payload practice differs from the path practice.
			logger.Warn("Practice reference does not match request scope")
			c.JSON(http.StatusForbidden, gin.H{"error": "Forbidden"})
		default:
			// Foreign references answer exactly like unknown ones.
			logger.Warn("Referenced entity not found in practice")
			c.JSON(http.StatusNotFound, gin.H{"error": resErr.Entity + " not found"})
		}
	case errors.As(err, &persistErr):
		logger.Error("Storage unavailable", slog.String("error", err.Error()))
		c.Header("Retry-After", "1")
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Claim storage is temporarily unavailable, please retry"})
	case errors.Is(err, apperrors.ErrForbidden):
		logger.Warn("User forbidden", slog.String("error", err.Error()))
		c.JSON(http.StatusForbidden, gin.H{"error": "Forbidden"})
	case errors.Is(err, apperrors.ErrNotFound):
		logger.Warn("Resource not found", slog.String("error", err.Error()))
		c.JSON(http.StatusNotFound, gin.H{"error": "Claim not found"})
	case errors.Is(err, apperrors.ErrValidation):
		logger.Warn("Validation error", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, apperrors.ErrInvalidTransition), errors.Is(err, apperrors.ErrConflict), errors.Is(err, apperrors.ErrDuplicate):
		logger.Warn("Conflicting request", slog.String("error", err.Error()))
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	default:
		logger.Error(fallback, slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": fallback})
	}
}
