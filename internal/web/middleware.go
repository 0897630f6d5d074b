package web

import (
	"crypto/subtle"
	"log"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const (
	CookieName   = "dp_session"
	sessionIDKey = "sessionID"
)

// SessionMiddleware resolves the session ID from the signed cookie. Missing or
// invalid cookies start a new session. The cookie is re-issued on every
// request so an active session never outlives its cookie.
func SessionMiddleware(tokens *SessionTokens) gin.HandlerFunc {
	return func(c *gin.Context) {
		id := ""
		if raw, err := c.Cookie(CookieName); err == nil {
			id, _ = tokens.Parse(raw)
		}
		if id == "" {
			id = uuid.NewString()
		}

		signed, err := tokens.Issue(id)
		if err != nil {
			log.Printf("Failed to issue session token: %v", err)
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "failed to start session"})
			return
		}
		c.SetSameSite(http.SameSiteLaxMode)
		c.SetCookie(CookieName, signed, int(tokens.ttl.Seconds()), "/", "", false, true)
		c.Set(sessionIDKey, id)
		c.Next()
	}
}

// AdminMiddleware requires "Authorization: Bearer <token>". With no token
// configured every admin request is refused.
func AdminMiddleware(token string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if token == "" {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "admin API disabled"})
			return
		}

		got, ok := strings.CutPrefix(c.GetHeader("Authorization"), "Bearer ")
		if !ok || subtle.ConstantTimeCompare([]byte(got), []byte(token)) != 1 {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
			return
		}
		c.Next()
	}
}

func sessionID(c *gin.Context) string {
	return c.GetString(sessionIDKey)
}
