package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// RoleRequired rejects requests whose authenticated user lacks one of
// the given roles. It expects an auth middleware to have set the role.
func RoleRequired(roles ...string) gin.HandlerFunc {
	allowed := make(map[string]bool)
	for _, r := range roles {
		allowed[r] = true
	}
	return func(c *gin.Context) {
		roleVal, exists := c.Get("role")
		if !exists {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"success": false, "msg": "login required"})
			return
		}
		role, ok := roleVal.(string)
		if !ok || !allowed[role] {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"success": false, "msg": "forbidden"})
			return
		}
		c.Next()
	}
}
