package middleware

import (
	"net/http"

	"github.com/David2024patton/studio4-dance/internal/core/authz"
	"github.com/gin-gonic/gin"
)

// RequirePolicy creates a Gin middleware that rejects callers whose role is
// not allowed the given operation on the given resource. It must run after
// AuthMiddleware.
func RequirePolicy(resource authz.Resource, operation authz.Operation) gin.HandlerFunc {
	return func(c *gin.Context) {
		caller, ok := GetCallerFromContext(c)
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Authentication required"})
			return
		}
		if !authz.Allowed(caller.Role, resource, operation) {
			GetLoggerFromCtx(c.Request.Context()).Warn("Caller role not permitted",
				"resource", string(resource), "operation", string(operation))
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "Insufficient permissions"})
			return
		}
		c.Next()
	}
}
