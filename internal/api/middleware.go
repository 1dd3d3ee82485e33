package api

import (
	"crypto/subtle"

	"livekit-henryk/internal/apierrors"
	"livekit-henryk/internal/observability"

	"github.com/gin-gonic/gin"
)

// APIKeyHeader carries the operator key on protected routes
const APIKeyHeader = "X-API-Key"

// APIKeyMiddleware rejects requests whose X-API-Key does not match key.
// An empty key rejects everything.
func APIKeyMiddleware(key string, logger *observability.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := c.Request.Context()

		apiKey := c.GetHeader(APIKeyHeader)
		if apiKey == "" {
			apierrors.RespondWithError(c, apierrors.Unauthorized(apierrors.CodeUnauthorized, "missing API key"))
			return
		}

		if key == "" || subtle.ConstantTimeCompare([]byte(apiKey), []byte(key)) != 1 {
			logger.Warn(ctx, "invalid API key for "+c.FullPath())
			apierrors.RespondWithError(c, apierrors.Unauthorized(apierrors.CodeUnauthorized, "invalid API key"))
			return
		}

		c.Next()
	}
}
