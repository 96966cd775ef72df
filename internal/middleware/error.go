package middleware

import (
	"errors"

	"github.com/gin-gonic/gin"

	apperrors "guardrails/internal/errors"
	"guardrails/internal/logger"
)

// ErrorHandler returns a Gin middleware that converts errors set on the Gin
// context into the failure envelope. AppErrors are returned with their status
// and message; unexpected errors are logged and return a generic internal
// error to avoid leaking details.
func ErrorHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) == 0 || c.Writer.Written() {
			return
		}

		// Process the last error (most relevant in a middleware chain)
		err := c.Errors.Last().Err

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
			c.JSON(appErr.StatusCode, gin.H{"success": false, "error": appErr.Message})
			return
		}

		logger.Get().Errorw("unexpected error",
			"error", err.Error(),
			"path", c.Request.URL.Path,
			"method", c.Request.Method,
		)
		c.JSON(apperrors.ErrInternalServer.StatusCode, gin.H{
			"success": false,
			"error":   apperrors.ErrInternalServer.Message,
		})
	}
}

// Recovery returns a Gin middleware that turns a panic into a 500 failure
// envelope. The panic value is logged, never returned.
func Recovery() gin.HandlerFunc {
	return gin.CustomRecovery(func(c *gin.Context, recovered any) {
		logger.Get().Errorw("panic recovered",
			"panic", recovered,
			"path", c.Request.URL.Path,
			"method", c.Request.Method,
		)
		c.AbortWithStatusJSON(apperrors.ErrInternalServer.StatusCode, gin.H{
			"success": false,
			"error":   apperrors.ErrInternalServer.Message,
		})
	})
}
