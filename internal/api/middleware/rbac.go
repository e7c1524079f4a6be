package middleware

import (
	"net/http"
	"slices"

	"github.com/gin-gonic/gin"
)

// RequireRole lets through callers whose token role is one of roles, or "admin".
// It MUST be used AFTER RequireAuth.
func RequireRole(roles ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		role, _ := c.Get("user_role")
		roleStr, _ := role.(string)

		switch {
		case roleStr == "":
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Role context missing"})
		case roleStr == "admin", slices.Contains(roles, roleStr):
			c.Next()
		default:
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{
				"error": "Forbidden: You lack the required permissions.",
			})
		}
	}
}
