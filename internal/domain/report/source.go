package report

import (
	"context"

	"github.com/google/uuid"
	"github.com/pulseboard-app/pulseboard/internal/domain/event"
)

// PageRequest identifies one fetch of the event table. A view considers a
// fetch current only while the (page, size, range) tuple it was issued for
// is still the active one.
type PageRequest struct {
	Category  string          `json:"category"`
	PageIndex int             `json:"page_index"`
	PageSize  int             `json:"page_size"`
	Range     event.TimeRange `json:"range"`
}

// PageResult is one page of events plus the total count for the window.
type PageResult struct {
	Events []event.Event
	Total  int64
}

// EventSource fetches event pages for the report view.
type EventSource interface {
	FetchPage(ctx context.Context, req PageRequest) (PageResult, error)
}

// ServiceSource adapts the event service to the view's fetch interface for
// one resolved, already-authorized category.
type ServiceSource struct {
	Events     event.Service
	CategoryID uuid.UUID
}

func (s ServiceSource) FetchPage(ctx context.Context, req PageRequest) (PageResult, error) {
	events, total, err := s.Events.GetPage(ctx, s.CategoryID, req.Range, req.PageIndex, req.PageSize)
	if err != nil {
		return PageResult{}, err
	}
	return PageResult{Events: events, Total: total}, nil
}
