package middleware

import (
	"crypto/subtle"
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "finfacil/internal/errors"
)

// APIKeyAuth guards state-changing requests with the X-API-Key header.
// Reads always pass. An empty apiKey disables the check.
func APIKeyAuth(apiKey string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if apiKey == "" {
			c.Next()
			return
		}
		switch c.Request.Method {
		case http.MethodGet, http.MethodHead, http.MethodOptions:
			c.Next()
			return
		}

		key := c.GetHeader("X-API-Key")
		if subtle.ConstantTimeCompare([]byte(key), []byte(apiKey)) != 1 {
			c.AbortWithStatusJSON(apperrors.ErrInvalidAPIKey.StatusCode, gin.H{
				"error": gin.H{
					"code":    apperrors.ErrInvalidAPIKey.Code,
					"message": apperrors.ErrInvalidAPIKey.Message,
				},
			})
			return
		}
		c.Next()
	}
}
