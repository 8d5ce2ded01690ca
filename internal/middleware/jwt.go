package middleware

import (
	"log"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"scanpay_back_end/internal/session"
	"scanpay_back_end/internal/utils"
)

const sessionKey = "session"

// SessionRequired accepts a bearer token (or ?token= for websockets) that names a live session.
func SessionRequired(secret string, sessions *session.Registry) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString := bearerToken(c)
		if tokenString == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Missing token"})
			c.Abort()
			return
		}

		claims, err := utils.ParseSessionToken(secret, tokenString)
		if err != nil {
			log.Printf("❌ JWT rejected: %v", err)
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid token"})
			c.Abort()
			return
		}

		sess, ok := sessions.Get(claims.SessionID)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Session expired"})
			c.Abort()
			return
		}
		sess.Touch()

		c.Set(sessionKey, sess)
		c.Set("session_id", sess.ID)
		c.Set("email", sess.Email)
		c.Set("role", sess.Role)
		c.Next()
	}
}

// CurrentSession returns the session stored by SessionRequired.
func CurrentSession(c *gin.Context) *session.Session {
	v, ok := c.Get(sessionKey)
	if !ok {
		return nil
	}
	sess, _ := v.(*session.Session)
	return sess
}

func bearerToken(c *gin.Context) string {
	authHeader := c.GetHeader("Authorization")
	if authHeader != "" {
		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) == 2 && parts[0] == "Bearer" {
			return strings.TrimSpace(parts[1])
		}
		return ""
	}
	return c.Query("token")
}
