package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"
)

const (
	UserIDHeader = "X-User-ID"
	UserIDKey    = "userID"
)

// Participant puts the caller's self-declared user id into the context.
// Nothing is verified: the id only keys votes.
func Participant() gin.HandlerFunc {
	return func(c *gin.Context) {
		if id := strings.TrimSpace(c.GetHeader(UserIDHeader)); id != "" {
			c.Set(UserIDKey, id)
		}
		c.Next()
	}
}

// UserID returns the id set by Participant.
func UserID(c *gin.Context) (string, bool) {
	id := c.GetString(UserIDKey)
	return id, id != ""
}
