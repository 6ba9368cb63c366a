package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/pulseboard-app/pulseboard/internal/api/handlers"
	"github.com/pulseboard-app/pulseboard/internal/api/middleware"
)

type AuthRoutes struct {
	handler   *handlers.AuthHandler
	jwtSecret string
}

func NewAuthRoutes(handler *handlers.AuthHandler, jwtSecret string) *AuthRoutes {
	return &AuthRoutes{
		handler:   handler,
		jwtSecret: jwtSecret,
	}
}

// RegisterRoutes registers all auth routes
func (r *AuthRoutes) RegisterRoutes(router *gin.Engine) {
	authGroup := router.Group("/api/auth")
	authGroup.Use(middleware.NewAuthMiddleware(r.jwtSecret))

	authGroup.POST("/refresh", r.handler.RefreshToken)
}
