package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/pulseboard-app/pulseboard/internal/domain/user"
	"go.uber.org/zap"
)

// NewAPIKeyMiddleware authenticates ingest requests by API key. The key is
// read from the Authorization bearer header or the X-API-Key header and
// resolved to a user; the user is stored in the context for handlers.
func NewAPIKeyMiddleware(users user.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		apiKey := c.GetHeader("X-API-Key")
		if apiKey == "" {
			authHeader := c.GetHeader("Authorization")
			if strings.HasPrefix(authHeader, bearerSchema) {
				apiKey = authHeader[len(bearerSchema):]
			}
		}

		if apiKey == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "api key is required"})
			c.Abort()
			return
		}

		u, err := users.GetByAPIKey(c.Request.Context(), apiKey)
		if err != nil {
			log.Error("API key lookup failed", zap.Error(err))
			c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid api key"})
			c.Abort()
			return
		}

		c.Set("user_id", u.ID)
		c.Set("email", u.Email)
		c.Set("plan", string(u.Plan))

		c.Next()
	}
}
