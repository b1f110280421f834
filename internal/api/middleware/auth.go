package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/aubrey-sherman/baby-bootcamp-be/pkg/jwt"
	"github.com/aubrey-sherman/baby-bootcamp-be/pkg/response"
)

// JWTAuth extracts and verifies the access token from
// Authorization: Bearer <token> and injects the username into the context.
func JWTAuth(jwtMgr *jwt.Manager) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			response.Unauthorized(c, 10002, "missing authorization header")
			c.Abort()
			return
		}

		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || parts[0] != "Bearer" {
			response.Unauthorized(c, 10002, "malformed authorization header")
			c.Abort()
			return
		}

		claims, err := jwtMgr.ParseToken(parts[1])
		if err != nil {
			response.Unauthorized(c, 10002, "token invalid or expired")
			c.Abort()
			return
		}

		if claims.TokenType != "access" {
			response.Unauthorized(c, 10002, "token type invalid")
			c.Abort()
			return
		}

		c.Set("username", claims.Username)

		c.Next()
	}
}
