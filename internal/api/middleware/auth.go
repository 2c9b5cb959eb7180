package middleware

import (
	"context"
	"strings"

	"github.com/foodie-app/foodie-backend/internal/cms"
	"github.com/foodie-app/foodie-backend/internal/config"
	"github.com/foodie-app/foodie-backend/internal/utils"
	"github.com/gin-gonic/gin"
)

// IdentityVerifier resolves bearer tokens we did not issue ourselves. The CMS
// client satisfies this with its /api/users/me round-trip, so users carrying a
// CMS-issued token can write reviews without re-registering.
type IdentityVerifier interface {
	Me(ctx context.Context, userToken string) (*cms.User, error)
}

func AuthMiddleware(cfg *config.Config, verifier IdentityVerifier) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			utils.SendUnauthorized(c, "Authorization header required")
			c.Abort()
			return
		}

		tokenString := strings.TrimPrefix(authHeader, "Bearer ")
		if tokenString == authHeader {
			utils.SendUnauthorized(c, "Bearer token required")
			c.Abort()
			return
		}

		claims, err := utils.ValidateToken(tokenString, cfg.JWTSecret)
		if err == nil {
			c.Set("user_id", claims.UserID)
			c.Set("user_email", claims.Email)
			c.Set("user_role", claims.Role)
			c.Next()
			return
		}

		// Not one of our JWTs. Accept a CMS-issued user token by round-tripping
		// it to the CMS identity endpoint.
		if verifier != nil {
			if user, meErr := verifier.Me(c.Request.Context(), tokenString); meErr == nil {
				c.Set("user_id", user.ID)
				c.Set("user_email", user.Email)
				c.Set("user_role", "customer")
				c.Next()
				return
			}
		}

		utils.SendUnauthorized(c, "Invalid token")
		c.Abort()
	}
}

func AdminOnly() gin.HandlerFunc {
	return func(c *gin.Context) {
		role := c.GetString("user_role")
		if role != "admin" {
			utils.SendForbidden(c, "Admin access required")
			c.Abort()
			return
		}
		c.Next()
	}
}

func CustomerOrAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		role := c.GetString("user_role")
		if role != "admin" && role != "customer" {
			utils.SendForbidden(c, "Valid user role required")
			c.Abort()
			return
		}
		c.Next()
	}
}
