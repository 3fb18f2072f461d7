package middleware

import "github.com/gin-gonic/gin"

// userIDKey is the key used to store the authenticated user's ID.
const userIDKey = contextKey("userID")

// portalTokenKey is the key used to store a presented membership portal token.
const portalTokenKey = contextKey("portalToken")

// GetUserIDFromContext retrieves the authenticated user ID from the Gin context.
// It returns the user ID and a boolean indicating if it was found.
func GetUserIDFromContext(c *gin.Context) (string, bool) {
	userIDVal, exists := c.Get(string(userIDKey))
	if !exists {
		// check in the request context as well
		if userID, ok := c.Request.Context().Value(userIDKey).(string); ok && userID != "" {
			return userID, true
		}
		return "", false
	}

	userID, ok := userIDVal.(string)
	if !ok {
		return "", false
	}

	return userID, true
}

// GetPortalTokenFromContext retrieves the portal token captured by PortalTokenMiddleware.
func GetPortalTokenFromContext(c *gin.Context) (string, bool) {
	token, ok := c.Get(string(portalTokenKey))
	if !ok {
		return "", false
	}
	s, ok := token.(string)
	return s, ok && s != ""
}
