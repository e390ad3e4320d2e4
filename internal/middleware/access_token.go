package middleware

import (
	"context"
	"log/slog"
	"net/http"
	"strings"

	portssvc "github.com/bahadricoz/shift/internal/core/ports/services"
	"github.com/gin-gonic/gin"
)

// CapabilityResolver resolves the bearer token of every request into a
// capability and stores it in the request context. Tokens come from the
// Authorization header or, matching the shareable-link flow, from the
// "token" query parameter. Requests without a token continue with the zero
// capability; the handlers decide what that is allowed to do.
func CapabilityResolver(accessSvc portssvc.AccessService) gin.HandlerFunc {
	return func(c *gin.Context) {
		logger := GetLoggerFromCtx(c.Request.Context())

		token := bearerToken(c)
		if token == "" {
			c.Next()
			return
		}

		capability, err := accessSvc.ResolveToken(c.Request.Context(), token)
		if err != nil {
			logger.Error("Failed to resolve bearer token", slog.String("error", err.Error()))
			c.AbortWithStatusJSON(http.StatusServiceUnavailable, gin.H{"error": "Token resolution unavailable"})
			return
		}
		if !capability.HasAccess() {
			// Unknown token: proceed unauthenticated rather than leaking
			// whether the token ever existed.
			c.Next()
			return
		}

		enrichedLogger := logger.With(
			slog.String("capability_role", string(capability.Role)),
			slog.String("capability_department", capability.DepartmentID),
			slog.Bool("capability_global", capability.Global),
		)

		ctx := context.WithValue(c.Request.Context(), capabilityCtxKey, capability)
		ctx = context.WithValue(ctx, loggerCtxKey, enrichedLogger)
		c.Request = c.Request.WithContext(ctx)

		c.Next()
	}
}

func bearerToken(c *gin.Context) string {
	authHeader := c.GetHeader("Authorization")
	if authHeader != "" {
		parts := strings.Split(authHeader, " ")
		if len(parts) == 2 && strings.EqualFold(parts[0], "bearer") {
			return parts[1]
		}
	}
	return c.Query("token")
}
