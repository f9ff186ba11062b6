package middleware

import (
	"github.com/David2024patton/studio4-dance/internal/core/domain"
	"github.com/gin-gonic/gin"
)

const callerKey = contextKey("caller")

// GetCallerFromContext retrieves the authenticated caller from the request
// context. It returns the caller and a boolean indicating if it was found.
func GetCallerFromContext(c *gin.Context) (domain.Caller, bool) {
	caller, ok := c.Request.Context().Value(callerKey).(domain.Caller)
	return caller, ok
}
