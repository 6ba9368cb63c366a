package dto

import (
	"time"

	"github.com/google/uuid"
)

// CreateCategoryRequest represents the request to create a new event category
type CreateCategoryRequest struct {
	Name  string `json:"name" binding:"required"`
	Color string `json:"color" binding:"required"`
	Emoji string `json:"emoji" binding:"required"`
}

// CategoryResponse represents an event category in API responses
type CategoryResponse struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	Color     string    `json:"color"`
	Emoji     string    `json:"emoji"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// CategoryWithStatsResponse is a category annotated with the monthly
// counters shown on the dashboard list
type CategoryWithStatsResponse struct {
	CategoryResponse
	UniqueFieldCount int        `json:"unique_field_count"`
	EventsCount      int64      `json:"events_count"`
	LastPing         *time.Time `json:"last_ping,omitempty"`
}

// CategoryListResponse represents the response for listing categories
type CategoryListResponse struct {
	Categories []CategoryWithStatsResponse `json:"categories"`
	TotalCount int                         `json:"total_count"`
}

// CategoryDetailResponse is a single category plus its first-load flags
type CategoryDetailResponse struct {
	Category  CategoryResponse `json:"category"`
	HasEvents bool             `json:"has_events"`
}
