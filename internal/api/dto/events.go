package dto

import (
	"time"

	"github.com/google/uuid"
)

// IngestEventRequest represents the request to record a new event
type IngestEventRequest struct {
	Category string                 `json:"category" binding:"required"`
	Fields   map[string]interface{} `json:"fields" binding:"required"`
	Status   string                 `json:"status"`
}

// EventResponse represents an event in API responses
type EventResponse struct {
	ID             uuid.UUID              `json:"id"`
	Category       string                 `json:"category"`
	Fields         map[string]interface{} `json:"fields"`
	DeliveryStatus string                 `json:"delivery_status"`
	BadgeVariant   string                 `json:"badge_variant,omitempty"`
	CreatedAt      time.Time              `json:"created_at"`
}

// EventsPageResponse represents one page of a category's events
type EventsPageResponse struct {
	Events     []EventResponse `json:"events"`
	TotalCount int64           `json:"total_count"`
	Page       int             `json:"page"`
	PageSize   int             `json:"page_size"`
	Range      string          `json:"range"`
}

// ColumnResponse describes one table column of the report view
type ColumnResponse struct {
	Key      string `json:"key"`
	Title    string `json:"title"`
	Kind     string `json:"kind"`
	Sortable bool   `json:"sortable"`
}

// FieldSumResponse holds the windowed sums of one numeric field
type FieldSumResponse struct {
	Total     float64 `json:"total"`
	ThisWeek  float64 `json:"this_week"`
	ThisMonth float64 `json:"this_month"`
	Today     float64 `json:"today"`
}

// ReportResponse is the full render description of the report view
type ReportResponse struct {
	Category      string                      `json:"category"`
	State         string                      `json:"state"`
	ActiveRange   string                      `json:"active_range"`
	Page          int                         `json:"page"`
	PageSize      int                         `json:"page_size"`
	PageCount     int                         `json:"page_count"`
	EventsCount   int64                       `json:"events_count"`
	Columns       []ColumnResponse            `json:"columns"`
	Events        []EventResponse             `json:"events"`
	FieldSums     map[string]FieldSumResponse `json:"field_sums"`
	DisplayedSums map[string]float64          `json:"displayed_sums"`
	SkeletonRows  int                         `json:"skeleton_rows,omitempty"`
	Error         string                      `json:"error,omitempty"`
}
