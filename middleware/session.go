package middleware

import (
	"net/http"
	"time"

	"villafinder/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// SessionMiddleware resolves the browser session from its signed cookie.
// A missing, expired or forged cookie starts a fresh session.
func SessionMiddleware(signer *utils.SessionSigner, ttl time.Duration, secure bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		var sessionID string
		if cookie, err := c.Cookie(utils.SessionCookieName); err == nil && cookie != "" {
			id, err := signer.ExtractSessionID(cookie)
			if err != nil {
				zap.L().Debug("Discarding invalid session cookie", zap.Error(err))
			} else {
				sessionID = id
			}
		}

		if sessionID == "" {
			sessionID = uuid.NewString()
			token, err := signer.GenerateToken(sessionID, ttl)
			if err != nil {
				utils.JSONError(c, http.StatusInternalServerError, "Failed to start session", err.Error())
				c.Abort()
				return
			}
			c.SetSameSite(http.SameSiteLaxMode)
			c.SetCookie(utils.SessionCookieName, token, int(ttl.Seconds()), "/", "", secure, true)
		}

		c.Set(utils.SessionContextKey, sessionID)
		c.Next()
	}
}

// SessionID returns the session resolved by SessionMiddleware.
func SessionID(c *gin.Context) string {
	return c.GetString(utils.SessionContextKey)
}
