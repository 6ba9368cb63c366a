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

// CategoryHandler handles HTTP requests for category operations
type CategoryHandler struct {
	categories category.Service
	events     event.Service
}

// NewCategoryHandler creates a new CategoryHandler instance
func NewCategoryHandler(categories category.Service, events event.Service) *CategoryHandler {
	return &CategoryHandler{categories: categories, events: events}
}

// ListCategories godoc
// @Summary List categories with stats
// @Description List the caller's categories annotated with monthly counters
// @Tags categories
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.CategoryListResponse "Categories retrieved successfully"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /api/categories [get]
func (h *CategoryHandler) ListCategories(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not authenticated"})
		return
	}

	categories, err := h.categories.ListWithStats(c.Request.Context(), userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": dto.CategoryListResponse{
		Categories: CategoriesToResponse(categories),
		TotalCount: len(categories),
	}})
}

// CreateCategory godoc
// @Summary Create a new category
// @Description Create a new event category for the caller
// @Tags categories
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param category body dto.CreateCategoryRequest true "Category creation request"
// @Success 201 {object} dto.CategoryResponse "Category created successfully"
// @Failure 400 {object} map[string]string "Invalid request"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 409 {object} map[string]string "Category already exists"
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /api/categories [post]
func (h *CategoryHandler) CreateCategory(c *gin.Context) {
	var req dto.CreateCategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	userID, exists := middleware.GetUserID(c)
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not authenticated"})
		return
	}

	created, err := h.categories.Create(c.Request.Context(), category.CreateInput{
		Name:   req.Name,
		Color:  req.Color,
		Emoji:  req.Emoji,
		UserID: userID,
	})
	if err != nil {
		statusCode := http.StatusInternalServerError
		switch {
		case errors.Is(err, category.ErrInvalidName),
			errors.Is(err, category.ErrInvalidColor),
			errors.Is(err, category.ErrInvalidEmoji):
			statusCode = http.StatusBadRequest
		case errors.Is(err, category.ErrDuplicateCategory):
			statusCode = http.StatusConflict
		}
		c.JSON(statusCode, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"data": CategoryToResponse(created)})
}

// GetCategory godoc
// @Summary Get a category by name
// @Description Get a single category plus whether it has any events
// @Tags categories
// @Produce json
// @Security BearerAuth
// @Param name path string true "Category name"
// @Success 200 {object} dto.CategoryDetailResponse "Category retrieved successfully"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "Category not found"
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /api/categories/{name} [get]
func (h *CategoryHandler) GetCategory(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not authenticated"})
		return
	}

	cat, err := h.categories.GetByName(c.Request.Context(), c.Param("name"), userID)
	if err != nil {
		statusCode := http.StatusInternalServerError
		if errors.Is(err, category.ErrCategoryNotFound) {
			statusCode = http.StatusNotFound
		}
		c.JSON(statusCode, gin.H{"error": err.Error()})
		return
	}

	hasEvents, err := h.events.HasEvents(c.Request.Context(), cat.ID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": dto.CategoryDetailResponse{
		Category:  *CategoryToResponse(cat),
		HasEvents: hasEvents,
	}})
}

// DeleteCategory godoc
// @Summary Delete a category
// @Description Delete a category and all of its events
// @Tags categories
// @Produce json
// @Security BearerAuth
// @Param name path string true "Category name"
// @Success 200 {object} map[string]string "Category deleted successfully"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "Category not found"
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /api/categories/{name} [delete]
func (h *CategoryHandler) DeleteCategory(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not authenticated"})
		return
	}

	if err := h.categories.Delete(c.Request.Context(), c.Param("name"), userID); err != nil {
		statusCode := http.StatusInternalServerError
		if errors.Is(err, category.ErrCategoryNotFound) {
			statusCode = http.StatusNotFound
		}
		c.JSON(statusCode, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "category deleted"})
}
