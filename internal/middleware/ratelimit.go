package middleware

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/ulule/limiter/v3"
)

// RateLimit throttles requests per client IP against the given limiter.
// A limiter store failure fails closed with a 500 rather than letting
// unmetered traffic through.
func RateLimit(l *limiter.Limiter) gin.HandlerFunc {
	return func(c *gin.Context) {
		logger := GetLoggerFromCtx(c.Request.Context())
		clientIP := c.ClientIP()

		lctx, err := l.Get(c.Request.Context(), clientIP)
		if err != nil {
			logger.Error("Rate limiter store lookup failed", slog.String("client_ip", clientIP), slog.String("error", err.Error()))
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
			return
		}

		if lctx.Reached {
			logger.Warn("Client rate limited", slog.String("client_ip", clientIP), slog.Int64("limit", lctx.Limit), slog.Int64("remaining", lctx.Remaining))
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{"error": "Too many requests. Please try again later."})
			return
		}

		c.Next()
	}
}
