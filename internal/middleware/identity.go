package middleware

import (
	"context"
	"log/slog"

	"github.com/gin-gonic/gin"
)

// SystemUserID is the actor recorded for requests that carry no identity
// header and for internally triggered writes.
const SystemUserID = "system"

// IdentityMiddleware resolves the acting user from the X-User-ID header set
// by the authenticating gateway. Requests without the header run as the
// system user; authentication itself happens upstream of this service.
func IdentityMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := c.GetHeader("X-User-ID")
		if userID == "" {
			userID = SystemUserID
		}

		c.Set(string(userIDKey), userID)
		ctx := context.WithValue(c.Request.Context(), userIDKey, userID)
		c.Request = c.Request.WithContext(ctx)

		if userID != SystemUserID {
			enriched := GetLoggerFromContext(c).With(slog.String("user_id", userID))
			c.Set(string(loggerKey), enriched)
			c.Request = c.Request.WithContext(context.WithValue(c.Request.Context(), loggerKey, enriched))
		}

		c.Next()
	}
}
