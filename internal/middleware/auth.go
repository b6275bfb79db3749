package middleware

import (
	"crypto/subtle"

	"septic-canary/internal/apperrors"
	"septic-canary/internal/handler"

	"github.com/gin-gonic/gin"
)

// BasicAuth rejects requests whose Basic credentials do not match username and password.
// Both comparisons always run so the response time does not reveal which one failed.
func BasicAuth(username, password string) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, pass, ok := c.Request.BasicAuth()

		userOK := subtle.ConstantTimeCompare([]byte(user), []byte(username)) == 1
		passOK := subtle.ConstantTimeCompare([]byte(pass), []byte(password)) == 1
		if !ok || !userOK || !passOK {
			handler.RespondError(c, apperrors.Unauthorized())
			return
		}

		c.Next()
	}
}
