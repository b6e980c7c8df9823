package middleware

import (
	"errors"

	"github.com/gin-gonic/gin"

	apperrors "finfacil/internal/errors"
	"finfacil/internal/logger"
)

// ErrorHandler converts errors attached to the gin context into the JSON
// error envelope. AppErrors keep their code and message; anything else is
// logged and reported as INTERNAL_ERROR. Responses a handler already wrote
// are left untouched.
func ErrorHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) == 0 {
			return
		}

		// Process the last error (most relevant in a middleware chain)
		err := c.Errors.Last().Err

		if c.Writer.Written() {
			logger.Get().Debugw("error after response was written",
				"error", err.Error(),
				"path", c.Request.URL.Path,
			)
			return
		}

		var appErr *apperrors.AppError
		if errors.As(err, &appErr) {
			if appErr.Internal != nil {
				logger.Get().Errorw("app error",
					"code", appErr.Code,
					"message", appErr.Message,
					"internal", appErr.Internal.Error(),
					"path", c.Request.URL.Path,
				)
			}
			c.JSON(appErr.StatusCode, gin.H{
				"error": gin.H{
					"code":    appErr.Code,
					"message": appErr.Message,
				},
			})
			return
		}

		// Unexpected error: log full details, return generic message
		logger.Get().Errorw("unexpected error",
			"error", err.Error(),
			"path", c.Request.URL.Path,
			"method", c.Request.Method,
		)
		c.JSON(apperrors.ErrInternalServer.StatusCode, gin.H{
			"error": gin.H{
				"code":    apperrors.ErrInternalServer.Code,
				"message": apperrors.ErrInternalServer.Message,
			},
		})
	}
}
