package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"

	"inkwell/pkg/jwt"
	"inkwell/pkg/log"
	"inkwell/pkg/response"
)

// UsernameKey is the gin context key under which the authenticated
// username is stored.
const UsernameKey = "username"

// Auth validates the Bearer access token and stores the authenticated
// username on the request context. Refresh tokens are rejected here.
func Auth(tokens *jwt.Manager) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		parts := strings.SplitN(header, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			response.Unauthorized(c, "missing or malformed authorization header")
			c.Abort()
			return
		}

		claims, err := tokens.ValidateToken(parts[1])
		if err != nil {
			response.Unauthorized(c, "invalid or expired token")
			c.Abort()
			return
		}
		if claims.Type != "access" {
			response.Unauthorized(c, "access token required")
			c.Abort()
			return
		}

		c.Set(UsernameKey, claims.Username)

		// attach the actor to the request logger
		logger := log.Ctx(c.Request.Context()).With().
			Str(log.FieldUsername, claims.Username).
			Logger()
		c.Request = c.Request.WithContext(log.WithLogger(c.Request.Context(), logger))

		c.Next()
	}
}

// Username returns the authenticated username set by Auth, or "" when the
// request is unauthenticated.
func Username(c *gin.Context) string {
	return c.GetString(UsernameKey)
}
