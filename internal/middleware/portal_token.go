package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// PortalTokenHeader carries a membership portal token.
const PortalTokenHeader = "X-Portal-Token"

// PortalTokenMiddleware captures the membership portal token from the header or the
// access_token query parameter and rejects requests that carry neither.
func PortalTokenMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		token := c.GetHeader(PortalTokenHeader)
		if token == "" {
			token = c.Query("access_token")
		}
		if token == "" {
			GetLoggerFromCtx(c.Request.Context()).Warn("Portal token missing")
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Portal access token required"})
			return
		}
		c.Set(string(portalTokenKey), token)
		c.Next()
	}
}
