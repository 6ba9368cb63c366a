package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/pulseboard-app/pulseboard/internal/api/dto"
	"github.com/pulseboard-app/pulseboard/internal/api/middleware"
	"github.com/pulseboard-app/pulseboard/pkg/security/auth"
)

// AuthHandler handles HTTP requests for token lifecycle operations
type AuthHandler struct {
	jwt *auth.JWTService
}

// NewAuthHandler creates a new AuthHandler instance
func NewAuthHandler(jwt *auth.JWTService) *AuthHandler {
	return &AuthHandler{jwt: jwt}
}

// RefreshToken godoc
// @Summary Refresh the caller's access token
// @Description Reissue the bearer token when it is close to expiry; a token with plenty of life left is returned unchanged
// @Tags auth
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.TokenResponse "Token refreshed successfully"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Router /api/auth/refresh [post]
func (h *AuthHandler) RefreshToken(c *gin.Context) {
	tokenString, exists := middleware.GetToken(c)
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not authenticated"})
		return
	}

	refreshed, err := h.jwt.RefreshToken(tokenString)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid token"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": dto.TokenResponse{Token: refreshed}})
}
