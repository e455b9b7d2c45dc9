package controllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"videogames-be/internal/service"
)

// respondError writes the status and body matching a service error. Errors
// without a mapping become a 500 whose body hides the cause; the cause is
// attached to the context for the request logger.
func respondError(c *gin.Context, err error) {
	var verr *service.ValidationError
	switch {
	case errors.As(err, &verr):
		c.JSON(http.StatusBadRequest, gin.H{
			"error":      "Validation failed",
			"violations": verr.Violations,
		})
	case errors.Is(err, service.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "Resource not found"})
	case errors.Is(err, service.ErrConflict):
		c.JSON(http.StatusConflict, gin.H{"error": "Resource is still referenced by another record"})
	case errors.Is(err, service.ErrInvalidCredentials):
		c.JSON(http.StatusUnauthorized, gin.H{"code": http.StatusUnauthorized, "message": "Invalid credentials."})
	default:
		_ = c.Error(err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
	}
}
