package middleware

import (
	"net/http"
	"strings"

	"base97/pkg/context"
	"base97/pkg/jwt"
	"base97/pkg/response"

	"github.com/gin-gonic/gin"
)

func Auth(secret []byte) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			response.Abort(c, http.StatusUnauthorized, "Not authorized, no token")
			return
		}

		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || parts[0] != "Bearer" {
			response.Abort(c, http.StatusUnauthorized, "Not authorized, no token")
			return
		}

		claims, err := jwt.ParseToken(secret, parts[1])
		if err != nil {
			response.Abort(c, http.StatusUnauthorized, "Not authorized, token failed")
			return
		}

		c.Set(context.CtxUserID, claims.UserID)
		c.Set(context.CtxIsAdmin, claims.IsAdmin)

		c.Next()
	}
}

// AdminOnly 必须在 Auth 之后挂载
func AdminOnly() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !context.IsAdmin(c) {
			response.Abort(c, http.StatusForbidden, "Admin only")
			return
		}
		c.Next()
	}
}
