package middleware

import (
	"net/http"
	"slices"

	"github.com/gin-gonic/gin"

	"videogames-be/internal/entities"
)

// HasRole reports whether a caller holding roles is granted required.
// ROLE_ADMIN implies ROLE_USER.
func HasRole(roles []string, required string) bool {
	if slices.Contains(roles, required) {
		return true
	}
	return required == entities.RoleUser && slices.Contains(roles, entities.RoleAdmin)
}

// RequireRoles lets the request through when the caller holds any of the
// allowed roles and answers 403 otherwise. It must run after AuthMiddleware.
func RequireRoles(allowed ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		raw, exists := c.Get(RolesKey)
		if !exists {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "Access denied"})
			return
		}
		roles, ok := raw.([]string)
		if !ok {
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "Invalid roles format"})
			return
		}

		for _, role := range allowed {
			if HasRole(roles, role) {
				c.Next()
				return
			}
		}
		c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "Access denied"})
	}
}
