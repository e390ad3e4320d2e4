package middleware

import (
	"github.com/bahadricoz/shift/internal/core/domain"
	"github.com/gin-gonic/gin"
)

const capabilityCtxKey = contextKey("capability")

// GetCapabilityFromContext retrieves the capability resolved for this
// request. The zero capability (no access) is returned when the caller
// supplied no token or an unknown one.
func GetCapabilityFromContext(c *gin.Context) domain.Capability {
	if capability, ok := c.Request.Context().Value(capabilityCtxKey).(domain.Capability); ok {
		return capability
	}
	return domain.Capability{}
}
