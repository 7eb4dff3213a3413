package middleware

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const sessionContextKey = "session_id"

// Session ensures every request carries a browser session id. A missing
// cookie gets a fresh uuid; the id is stashed in the gin context for
// handlers. The cookie is HttpOnly but not Secure: the session is an
// advisory one-post marker, not an auth credential.
func Session(cookieName string, ttl time.Duration) gin.HandlerFunc {
	return func(c *gin.Context) {
		sid, err := c.Cookie(cookieName)
		if err != nil || sid == "" {
			sid = uuid.New().String()
			c.SetCookie(cookieName, sid, int(ttl.Seconds()), "/", "", false, true)
		}
		c.Set(sessionContextKey, sid)
		c.Next()
	}
}

// SessionID returns the session id minted or read by the Session middleware.
func SessionID(c *gin.Context) string {
	return c.GetString(sessionContextKey)
}
