package middleware

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const SessionIDKey = "session_id"

// SessionMiddleware makes sure every request carries a view session id cookie
func SessionMiddleware(cookieName string, ttl time.Duration) gin.HandlerFunc {
	return func(c *gin.Context) {
		sessionID, err := c.Cookie(cookieName)
		if err != nil || !validSessionID(sessionID) {
			sessionID = uuid.NewString()
		}

		http.SetCookie(c.Writer, &http.Cookie{
			Name:     cookieName,
			Value:    sessionID,
			Path:     "/",
			MaxAge:   int(ttl.Seconds()),
			HttpOnly: true,
			SameSite: http.SameSiteLaxMode,
		})
		c.Set(SessionIDKey, sessionID)
		c.Next()
	}
}

// SessionID returns the id set by SessionMiddleware
func SessionID(c *gin.Context) string {
	return c.GetString(SessionIDKey)
}

func validSessionID(id string) bool {
	_, err := uuid.Parse(id)
	return err == nil
}
