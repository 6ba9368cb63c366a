package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/pulseboard-app/pulseboard/internal/api/dto"
	"github.com/pulseboard-app/pulseboard/internal/api/middleware"
	"github.com/pulseboard-app/pulseboard/internal/domain/category"
	"github.com/pulseboard-app/pulseboard/internal/domain/event"
)

// IngestHandler handles HTTP requests for event ingestion
type IngestHandler struct {
	categories category.Service
	events     event.Service
}

// NewIngestHandler creates a new IngestHandler instance
func NewIngestHandler(categories category.Service, events event.Service) *IngestHandler {
	return &IngestHandler{categories: categories, events: events}
}

// IngestEvent godoc
// @Summary Record an event
// @Description Record a new event into one of the caller's categories
// @Tags events
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param event body dto.IngestEventRequest true "Event ingestion request"
// @Success 201 {object} dto.EventResponse "Event recorded successfully"
// @Failure 400 {object} map[string]string "Invalid request"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "Category not found"
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /api/v1/events [post]
func (h *IngestHandler) IngestEvent(c *gin.Context) {
	var req dto.IngestEventRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.TrackIngestedEvent(false)
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	userID, exists := middleware.GetUserID(c)
	if !exists {
		middleware.TrackIngestedEvent(false)
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not authenticated"})
		return
	}

	cat, err := h.categories.GetByName(c.Request.Context(), req.Category, userID)
	if err != nil {
		middleware.TrackIngestedEvent(false)
		statusCode := http.StatusInternalServerError
		if errors.Is(err, category.ErrCategoryNotFound) {
			statusCode = http.StatusNotFound
		}
		c.JSON(statusCode, gin.H{"error": err.Error()})
		return
	}

	created, err := h.events.Ingest(c.Request.Context(), event.IngestInput{
		UserID:       userID,
		CategoryID:   cat.ID,
		CategoryName: cat.Name,
		Fields:       req.Fields,
		Status:       event.DeliveryStatus(req.Status),
	})
	if err != nil {
		middleware.TrackIngestedEvent(false)
		statusCode := http.StatusInternalServerError
		if errors.Is(err, event.ErrInvalidInput) || errors.Is(err, event.ErrNonScalarField) {
			statusCode = http.StatusBadRequest
		}
		c.JSON(statusCode, gin.H{"error": err.Error()})
		return
	}

	middleware.TrackIngestedEvent(true)
	c.JSON(http.StatusCreated, gin.H{"data": EventToResponse(created, cat.Name)})
}
