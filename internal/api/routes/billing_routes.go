package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/pulseboard-app/pulseboard/internal/api/handlers"
	"github.com/pulseboard-app/pulseboard/internal/api/middleware"
)

type BillingRoutes struct {
	handler   *handlers.BillingHandler
	jwtSecret string
}

func NewBillingRoutes(handler *handlers.BillingHandler, jwtSecret string) *BillingRoutes {
	return &BillingRoutes{
		handler:   handler,
		jwtSecret: jwtSecret,
	}
}

// RegisterRoutes registers all billing routes
func (r *BillingRoutes) RegisterRoutes(router *gin.Engine) {
	billing := router.Group("/api/billing")
	billing.Use(middleware.NewAuthMiddleware(r.jwtSecret))

	billing.POST("/checkout", r.handler.CreateCheckoutSession)
}
