package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/pulseboard-app/pulseboard/internal/api/handlers"
	"github.com/pulseboard-app/pulseboard/internal/api/middleware"
	"github.com/pulseboard-app/pulseboard/internal/domain/user"
	"github.com/pulseboard-app/pulseboard/pkg/security/auth"
)

type IngestRoutes struct {
	handler *handlers.IngestHandler
	users   user.Service
	limiter auth.RateLimiter
}

func NewIngestRoutes(handler *handlers.IngestHandler, users user.Service, limiter auth.RateLimiter) *IngestRoutes {
	return &IngestRoutes{
		handler: handler,
		users:   users,
		limiter: limiter,
	}
}

// RegisterRoutes registers the public ingestion route. Ingest is
// authenticated by API key and rate limited per client.
func (r *IngestRoutes) RegisterRoutes(router *gin.Engine) {
	events := router.Group("/api/v1/events")
	events.Use(middleware.RateLimitMiddleware(r.limiter))
	events.Use(middleware.NewAPIKeyMiddleware(r.users))

	events.POST("", r.handler.IngestEvent)
}
