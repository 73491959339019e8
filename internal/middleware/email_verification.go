package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// RequireVerifiedEmail blocks users whose email is not verified. It reads the
// verification flag that AuthMiddleware stored from the token claims, so it
// must run after AuthMiddleware.
func RequireVerifiedEmail() gin.HandlerFunc {
	return func(c *gin.Context) {
		verified, exists := c.Get("email_verified")
		if !exists {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
			c.Abort()
			return
		}

		if ok, _ := verified.(bool); !ok {
			c.JSON(http.StatusForbidden, gin.H{
				"error":   "email verification required",
				"message": "Please verify your email address to log meals",
			})
			c.Abort()
			return
		}

		c.Next()
	}
}
