package middleware

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"briefly/internal/api/errors"
)

// ErrorHandler recovers from panics raised by handlers and renders them as APIError
func ErrorHandler(logger *zap.Logger) gin.HandlerFunc {
	return gin.CustomRecovery(func(c *gin.Context, recovered interface{}) {
		requestID := c.GetString(RequestIDKey)

		var apiErr *errors.APIError

		switch err := recovered.(type) {
		case *errors.APIError:
			apiErr = err
		case error:
			logger.Error("Internal server error",
				zap.Error(err),
				zap.String("request_id", requestID),
				zap.String("path", c.Request.URL.Path),
				zap.String("method", c.Request.Method),
			)
			apiErr = errors.NewInternalError("Internal server error")
		default:
			logger.Error("Unknown panic occurred",
				zap.Any("recovered", recovered),
				zap.String("request_id", requestID),
			)
			apiErr = errors.NewInternalError("Internal server error")
		}

		apiErr.RequestID = requestID
		c.Header("Content-Type", "application/json")
		c.AbortWithStatusJSON(apiErr.HTTPStatus(), apiErr)
	})
}

// HandleError renders err for handlers. Errors without an API mapping are
// re-panicked so ErrorHandler logs them and answers 500.
func HandleError(c *gin.Context, err error) {
	if err == nil {
		return
	}

	apiErr, ok := errors.FromDomainError(err)
	if !ok {
		panic(err)
	}

	_ = c.Error(err)
	apiErr.RequestID = c.GetString(RequestIDKey)
	c.Header("Content-Type", "application/json")
	c.AbortWithStatusJSON(apiErr.HTTPStatus(), apiErr)
}
