package middlewares

import (
	"context"
	"net/http"

	"github.com/garnishedge/garnishedge_backend/utils"
	"github.com/gin-gonic/gin"
)

// AuthMiddleware validates the optional JWT and stores the caller's
// identity in the request context. Identity is only used to attribute
// generated-file metadata; requests without a token pass through.
func AuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		token := c.Request.Header.Get("token")
		if token == "" {
			c.Next()
			return
		}

		parsed, err := utils.JwtValidate(token)
		if err != nil || !parsed.Valid {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
			c.Abort()
			return
		}

		ctx := context.WithValue(c.Request.Context(), utils.ContextKeyToken, token)
		if claims, ok := parsed.Claims.(*utils.JwtCustomClaim); ok {
			ctx = context.WithValue(ctx, utils.ContextKeyUserId, claims.ID)
			ctx = context.WithValue(ctx, utils.ContextKeyUsername, claims.Username)
		}
		c.Request = c.Request.WithContext(ctx)
		c.Next()
	}
}
