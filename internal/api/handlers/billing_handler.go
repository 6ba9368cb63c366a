package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/pulseboard-app/pulseboard/internal/api/dto"
	"github.com/pulseboard-app/pulseboard/internal/api/middleware"
	"github.com/pulseboard-app/pulseboard/internal/domain/billing"
)

// BillingHandler handles HTTP requests for billing operations
type BillingHandler struct {
	billing billing.Service
}

// NewBillingHandler creates a new BillingHandler instance
func NewBillingHandler(billing billing.Service) *BillingHandler {
	return &BillingHandler{billing: billing}
}

// CreateCheckoutSession godoc
// @Summary Start a subscription checkout
// @Description Create a checkout session for the pro plan and return its URL
// @Tags billing
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.CheckoutSessionResponse "Checkout session created"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 502 {object} map[string]string "Payment provider error"
// @Router /api/billing/checkout [post]
func (h *BillingHandler) CreateCheckoutSession(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not authenticated"})
		return
	}
	email, _ := middleware.GetUserEmail(c)

	url, err := h.billing.CreateCheckoutSession(c.Request.Context(), billing.CheckoutInput{
		UserID:    userID,
		UserEmail: email,
	})
	if err != nil {
		c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": dto.CheckoutSessionResponse{URL: url}})
}
