package api

import (
	"net/http"
	"os"
	"time"

	"github.com/eracards/eraclash/internal/constants"
	"github.com/gin-gonic/gin"
)

// Context keys under which AuthRequired publishes the caller identity.
const (
	ctxUserEmail = "userEmail"
	ctxUserName  = "userName"
)

// setSessionCookie stores the session token. The Secure flag is opt-in
// so local development over plain HTTP keeps working.
func setSessionCookie(c *gin.Context, token string, ttl time.Duration) {
	secure := os.Getenv(constants.EnvSessionSecureCookie) == "1"
	c.SetCookie(constants.CookieSessionName, token, int(ttl.Seconds()), "/", "", secure, true)
}

func clearSessionCookie(c *gin.Context) {
	c.SetCookie(constants.CookieSessionName, "", -1, "/", "", false, true)
}

// AuthRequired validates the session cookie and publishes the player's
// email and display name on the request context. Requests without a
// valid session are rejected before reaching the handler.
func AuthRequired() gin.HandlerFunc {
	return func(c *gin.Context) {
		token, err := c.Cookie(constants.CookieSessionName)
		if err != nil || token == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{constants.JSONKeyError: constants.ErrAuthRequired})
			return
		}
		claims, err := parseAndValidateSession(token)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{constants.JSONKeyError: constants.ErrInvalidSession})
			return
		}
		c.Set(ctxUserEmail, claims.Sub)
		c.Set(ctxUserName, claims.Name)
		c.Next()
	}
}
