package middleware

import (
	"strings"

	"hangul_edu_backend/internal/config"
	"hangul_edu_backend/internal/model"
	"hangul_edu_backend/internal/util"
	"hangul_edu_backend/pkg/logger"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func AuthMiddleware(cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString := ""
		authHeader := c.GetHeader("Authorization")
		if authHeader != "" {
			tokenString = strings.TrimPrefix(authHeader, "Bearer ")
		}

		if tokenString == "" {
			util.Unauthorized(c)
			c.Abort()
			return
		}

		claims, err := util.ParseJWT(tokenString, cfg.JWT.Secret)
		if err != nil {
			logger.Log.Debug("token rejected", zap.Error(err))
			util.Unauthorized(c)
			c.Abort()
			return
		}

		c.Set("user", claims)
		c.Next()
	}
}

// RoleMiddleware gates a route group on roles. Admins pass every gate.
func RoleMiddleware(roles ...model.UserRole) gin.HandlerFunc {
	return func(c *gin.Context) {
		user := util.GetUserFromContext(c)
		if user == nil {
			util.Unauthorized(c)
			c.Abort()
			return
		}

		hasRole := user.Role == model.Admin
		if !hasRole {
			for _, role := range roles {
				if user.Role == role {
					hasRole = true
					break
				}
			}
		}

		if !hasRole {
			util.Forbidden(c)
			c.Abort()
			return
		}
		c.Next()
	}
}
