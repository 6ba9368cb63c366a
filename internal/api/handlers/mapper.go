package handlers

import (
	"github.com/pulseboard-app/pulseboard/internal/api/dto"
	"github.com/pulseboard-app/pulseboard/internal/domain/category"
	"github.com/pulseboard-app/pulseboard/internal/domain/event"
	"github.com/pulseboard-app/pulseboard/internal/domain/report"
)

// Categories
func CategoryToResponse(c *category.EventCategory) *dto.CategoryResponse {
	if c == nil {
		return nil
	}
	return &dto.CategoryResponse{
		ID:        c.ID,
		Name:      c.Name,
		Color:     c.HexColor(),
		Emoji:     c.Emoji,
		CreatedAt: c.CreatedAt,
		UpdatedAt: c.UpdatedAt,
	}
}

func CategoryWithStatsToResponse(c *category.WithStats) *dto.CategoryWithStatsResponse {
	if c == nil {
		return nil
	}
	return &dto.CategoryWithStatsResponse{
		CategoryResponse: *CategoryToResponse(&c.EventCategory),
		UniqueFieldCount: c.UniqueFieldCount,
		EventsCount:      c.EventsCount,
		LastPing:         c.LastPing,
	}
}

func CategoriesToResponse(categories []category.WithStats) []dto.CategoryWithStatsResponse {
	response := make([]dto.CategoryWithStatsResponse, len(categories))
	for i := range categories {
		response[i] = *CategoryWithStatsToResponse(&categories[i])
	}
	return response
}

// Events
func EventToResponse(e *event.Event, categoryName string) *dto.EventResponse {
	if e == nil {
		return nil
	}
	return &dto.EventResponse{
		ID:             e.ID,
		Category:       categoryName,
		Fields:         e.Fields,
		DeliveryStatus: string(e.DeliveryStatus),
		BadgeVariant:   report.BadgeVariant(e.DeliveryStatus),
		CreatedAt:      e.CreatedAt,
	}
}

func EventsToResponse(events []event.Event, categoryName string) []dto.EventResponse {
	response := make([]dto.EventResponse, len(events))
	for i := range events {
		response[i] = *EventToResponse(&events[i], categoryName)
	}
	return response
}

// Report
func ColumnsToResponse(columns []report.Column) []dto.ColumnResponse {
	response := make([]dto.ColumnResponse, len(columns))
	for i, col := range columns {
		response[i] = dto.ColumnResponse{
			Key:      col.Key,
			Title:    col.Title,
			Kind:     string(col.Kind),
			Sortable: col.Sortable,
		}
	}
	return response
}

func FieldSumsToResponse(sums map[string]report.FieldSum) map[string]dto.FieldSumResponse {
	response := make(map[string]dto.FieldSumResponse, len(sums))
	for name, sum := range sums {
		response[name] = dto.FieldSumResponse{
			Total:     sum.Total,
			ThisWeek:  sum.ThisWeek,
			ThisMonth: sum.ThisMonth,
			Today:     sum.Today,
		}
	}
	return response
}

func ReportSnapshotToResponse(snap report.Snapshot) *dto.ReportResponse {
	return &dto.ReportResponse{
		Category:      snap.Category,
		State:         string(snap.State),
		ActiveRange:   string(snap.ActiveRange),
		Page:          snap.Pagination.PageIndex + 1,
		PageSize:      snap.Pagination.PageSize,
		PageCount:     snap.PageCount,
		EventsCount:   snap.EventsCount,
		Columns:       ColumnsToResponse(snap.Columns),
		Events:        EventsToResponse(snap.Events, snap.Category),
		FieldSums:     FieldSumsToResponse(snap.FieldSums),
		DisplayedSums: snap.DisplayedSums,
		SkeletonRows:  snap.SkeletonRows,
		Error:         snap.Error,
	}
}
