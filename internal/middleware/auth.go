package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"tacocloud/internal/order"
	"tacocloud/internal/session"
)

// RoleKey is the gin context key holding the caller's session.Role.
const RoleKey = "role"

// SessionAuth requires a valid "Bearer <token>" header and attaches the
// session ID and role to the request context.
func SessionAuth(issuer *session.Issuer) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")

		if authHeader == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "missing authorization header"})
			c.Abort()
			return
		}

		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || parts[0] != "Bearer" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid authorization format, use 'Bearer <token>'"})
			c.Abort()
			return
		}

		claims, err := issuer.Parse(parts[1])
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
			c.Abort()
			return
		}

		c.Set(order.SessionKey, claims.SessionID)
		c.Set(RoleKey, claims.Role)
		c.Next()
	}
}
