package middleware

import (
	"net/http"

	"siteworks/models"

	"github.com/gin-gonic/gin"
)

// RequireRole gates a route group to the given roles. It must run after
// JWTAuthMiddleware, which sets the role on the context.
func RequireRole(roles ...models.UserRole) gin.HandlerFunc {
	allowed := make(map[string]bool, len(roles))
	for _, r := range roles {
		allowed[string(r)] = true
	}
	return func(c *gin.Context) {
		if !allowed[c.GetString("role")] {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "Insufficient permissions"})
			return
		}
		c.Next()
	}
}
