package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/stocktrack/backend/internal/domain/identity"
)

// RoleConfig holds configuration for role middleware
type RoleConfig struct {
	// Logger for middleware logging
	Logger *zap.Logger
}

// RequireRole creates middleware that allows only the listed roles.
// The authenticated user must hold one of them to proceed.
func RequireRole(roles ...identity.Role) gin.HandlerFunc {
	return RequireRoleWithConfig(RoleConfig{}, roles...)
}

// RequireRoleWithConfig creates role middleware with custom config
func RequireRoleWithConfig(cfg RoleConfig, roles ...identity.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		claims := GetJWTClaims(c)
		if claims == nil {
			handleRoleDenied(c, cfg, "no authentication claims found")
			return
		}

		actual := identity.Role(claims.Role)
		for _, role := range roles {
			if actual == role {
				c.Next()
				return
			}
		}

		handleRoleDenied(c, cfg, "user lacks required role")
	}
}

func handleRoleDenied(c *gin.Context, cfg RoleConfig, message string) {
	if cfg.Logger != nil {
		cfg.Logger.Warn("role check failed",
			zap.String("message", message),
			zap.String("path", c.Request.URL.Path),
		)
	}

	c.AbortWithStatusJSON(http.StatusForbidden, gin.H{
		"success": false,
		"error": gin.H{
			"code":    "FORBIDDEN",
			"message": "Insufficient permissions",
		},
	})
}
