package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

const userIDKey = "shelfmate.userID"

// Identity requires the X-User-ID header on every /api request. The value is
// injected by the upstream authentication layer; this service trusts it and
// only scopes data access by it.
func Identity() gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := c.GetHeader("X-User-ID")
		if userID == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error": "Missing user identity",
				"code":  "UNAUTHENTICATED",
			})
			return
		}
		c.Set(userIDKey, userID)
		c.Next()
	}
}

// UserID returns the authenticated user id set by Identity.
func UserID(c *gin.Context) string {
	return c.GetString(userIDKey)
}
